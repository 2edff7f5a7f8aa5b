package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func replySchema() *Schema {
	return &Schema{
		Name: "test-reply",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"reply": map[string]any{"type": "string"},
			},
			"required":             []any{"reply"},
			"additionalProperties": false,
		},
	}
}

func chatRequest() Request {
	return Request{
		System: "You are a counsellor.",
		Messages: []Message{
			{Role: RoleUser, Content: "hi"},
			{Role: RoleAssistant, Content: "Hello!"},
			{Role: RoleUser, Content: "Which program suits me?"},
		},
		Schema:      replySchema(),
		MaxTokens:   200,
		Temperature: 0.4,
	}
}

func openAIServer(t *testing.T, status int, body string, seen *map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"), r.URL.Path)
		if seen != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(seen))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

const openAIOK = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "model": "gpt-4.1-mini",
  "choices": [{"index": 0, "message": {"role": "assistant", "content": "{\"reply\":\"Try General Science.\"}"}, "finish_reason": "stop"}],
  "usage": {"prompt_tokens": 40, "completion_tokens": 9, "total_tokens": 49}
}`

func TestOpenAIProvider_Generate(t *testing.T) {
	var sent map[string]any
	srv := openAIServer(t, http.StatusOK, openAIOK, &sent)

	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "k", Model: "gpt-mini", BaseURL: srv.URL + "/v1"})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4.1-mini", p.ModelID())
	assert.Equal(t, "openai", p.Name())

	resp, err := p.Generate(context.Background(), chatRequest())
	require.NoError(t, err)
	assert.JSONEq(t, `{"reply":"Try General Science."}`, string(resp.Content))
	assert.Equal(t, Usage{InputTokens: 40, OutputTokens: 9, TotalTokens: 49}, resp.Usage)
	assert.Equal(t, "end", resp.StopReason)
	assert.Equal(t, "gpt-4.1-mini", resp.Model)

	msgs, ok := sent["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 4)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	assert.Equal(t, "assistant", msgs[2].(map[string]any)["role"])

	format := sent["response_format"].(map[string]any)
	assert.Equal(t, "json_schema", format["type"])
	assert.Equal(t, "test-reply", format["json_schema"].(map[string]any)["name"])
}

func TestOpenAIProvider_Errors(t *testing.T) {
	t.Run("rate limit", func(t *testing.T) {
		srv := openAIServer(t, http.StatusTooManyRequests, `{"error":{"message":"slow down","type":"rate_limit"}}`, nil)
		p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "k", Model: "gpt-4o", BaseURL: srv.URL + "/v1"})
		require.NoError(t, err)

		_, err = p.Generate(context.Background(), chatRequest())
		var rl *ErrRateLimit
		assert.ErrorAs(t, err, &rl)
	})

	t.Run("server error", func(t *testing.T) {
		srv := openAIServer(t, http.StatusBadGateway, `{"error":{"message":"upstream","type":"server_error"}}`, nil)
		p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "k", Model: "gpt-4o", BaseURL: srv.URL + "/v1"})
		require.NoError(t, err)

		_, err = p.Generate(context.Background(), chatRequest())
		var un *ErrProviderUnavailable
		assert.ErrorAs(t, err, &un)
	})

	t.Run("schema mismatch", func(t *testing.T) {
		body := strings.Replace(openAIOK, `{\"reply\":\"Try General Science.\"}`, `{\"answer\":1}`, 1)
		srv := openAIServer(t, http.StatusOK, body, nil)
		p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "k", Model: "gpt-4o", BaseURL: srv.URL + "/v1"})
		require.NoError(t, err)

		_, err = p.Generate(context.Background(), chatRequest())
		var inv *ErrInvalidResponse
		assert.ErrorAs(t, err, &inv)
	})

	t.Run("no choices", func(t *testing.T) {
		srv := openAIServer(t, http.StatusOK, `{"id":"x","object":"chat.completion","model":"gpt-4o","choices":[]}`, nil)
		p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "k", Model: "gpt-4o", BaseURL: srv.URL + "/v1"})
		require.NoError(t, err)

		_, err = p.Generate(context.Background(), chatRequest())
		var inv *ErrInvalidResponse
		assert.ErrorAs(t, err, &inv)
	})

	t.Run("truncated", func(t *testing.T) {
		body := strings.Replace(openAIOK, `"finish_reason": "stop"`, `"finish_reason": "length"`, 1)
		srv := openAIServer(t, http.StatusOK, body, nil)
		p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "k", Model: "gpt-4o", BaseURL: srv.URL + "/v1"})
		require.NoError(t, err)

		resp, err := p.Generate(context.Background(), chatRequest())
		require.NoError(t, err)
		assert.Equal(t, "max_tokens", resp.StopReason)
	})
}

func TestOpenRouterProvider(t *testing.T) {
	var sent map[string]any
	srv := openAIServer(t, http.StatusOK, openAIOK, &sent)

	p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "k", Model: "google/gemini-2.5-flash", BaseURL: srv.URL + "/api/v1"})
	require.NoError(t, err)
	assert.Equal(t, "google/gemini-2.5-flash", p.ModelID())
	assert.Equal(t, "openrouter", p.Name())

	_, err = p.Generate(context.Background(), chatRequest())
	require.NoError(t, err)
	assert.Equal(t, "google/gemini-2.5-flash", sent["model"])
}

func TestProviderConstructors_RequireKey(t *testing.T) {
	_, err := NewOpenAIProvider(OpenAIConfig{Model: "gpt-4o"})
	assert.Error(t, err)
	_, err = NewOpenRouterProvider(OpenRouterConfig{Model: "x"})
	assert.Error(t, err)
	_, err = NewAnthropicProvider(AnthropicConfig{Model: "claude-haiku"})
	assert.Error(t, err)
	_, err = NewGeminiProvider(context.Background(), GeminiConfig{Model: "gemini-flash"})
	assert.Error(t, err)
}

func anthropicServer(t *testing.T, status int, body string, seen *map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/messages"), r.URL.Path)
		if seen != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(seen))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAnthropicProvider_Generate(t *testing.T) {
	var sent map[string]any
	srv := anthropicServer(t, http.StatusOK, `{
  "id": "msg_1",
  "type": "message",
  "role": "assistant",
  "model": "claude-haiku-4-5-20251001",
  "content": [{"type": "text", "text": "{\"reply\":\"Talk to your counsellor.\"}"}],
  "stop_reason": "end_turn",
  "usage": {"input_tokens": 30, "output_tokens": 8}
}`, &sent)

	p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "k", Model: "claude-haiku"},
		option.WithBaseURL(srv.URL), option.WithMaxRetries(0))
	require.NoError(t, err)
	assert.Equal(t, "claude-haiku-4-5-20251001", p.ModelID())

	resp, err := p.Generate(context.Background(), chatRequest())
	require.NoError(t, err)
	assert.JSONEq(t, `{"reply":"Talk to your counsellor."}`, string(resp.Content))
	assert.Equal(t, Usage{InputTokens: 30, OutputTokens: 8, TotalTokens: 38}, resp.Usage)
	assert.Equal(t, "end", resp.StopReason)

	assert.Equal(t, "claude-haiku-4-5-20251001", sent["model"])
	assert.Len(t, sent["messages"], 3)
	assert.NotNil(t, sent["system"])
}

func TestAnthropicProvider_RateLimit(t *testing.T) {
	srv := anthropicServer(t, http.StatusTooManyRequests,
		`{"type":"error","error":{"type":"rate_limit_error","message":"slow down"}}`, nil)

	p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "k", Model: "claude-sonnet"},
		option.WithBaseURL(srv.URL), option.WithMaxRetries(0))
	require.NoError(t, err)

	_, err = p.Generate(context.Background(), chatRequest())
	var rl *ErrRateLimit
	assert.ErrorAs(t, err, &rl)
}

func TestAnthropicProvider_NoText(t *testing.T) {
	srv := anthropicServer(t, http.StatusOK, `{
  "id": "msg_2", "type": "message", "role": "assistant", "model": "claude-haiku-4-5-20251001",
  "content": [], "stop_reason": "end_turn", "usage": {"input_tokens": 1, "output_tokens": 0}
}`, nil)

	p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "k", Model: "claude-haiku"},
		option.WithBaseURL(srv.URL), option.WithMaxRetries(0))
	require.NoError(t, err)

	_, err = p.Generate(context.Background(), chatRequest())
	var inv *ErrInvalidResponse
	assert.ErrorAs(t, err, &inv)
}

func TestResolveModel(t *testing.T) {
	assert.Equal(t, "gemini-2.5-flash", resolveModel("gemini-flash", geminiModels))
	assert.Equal(t, "gemini-2.5-pro", resolveModel("gemini-pro", geminiModels))
	assert.Equal(t, "claude-sonnet-4-5-20250929", resolveModel("claude-sonnet", anthropicModels))
	assert.Equal(t, "custom-model", resolveModel("custom-model", openaiModels))
}

func TestBuildGeminiSchema(t *testing.T) {
	s := buildGeminiSchema(map[string]any{
		"type":        "object",
		"description": "reply",
		"properties": map[string]any{
			"reply": map[string]any{"type": "string"},
			"topic": map[string]any{"type": "string", "enum": []any{"career", "academic"}},
			"score": map[string]any{"type": "integer"},
			"tags":  map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		},
		"required":             []any{"reply", "topic"},
		"additionalProperties": false,
	})

	assert.Equal(t, genai.TypeObject, s.Type)
	assert.Equal(t, "reply", s.Description)
	assert.Equal(t, []string{"reply", "topic"}, s.Required)
	require.Len(t, s.Properties, 4)
	assert.Equal(t, genai.TypeString, s.Properties["reply"].Type)
	assert.Equal(t, []string{"career", "academic"}, s.Properties["topic"].Enum)
	assert.Equal(t, genai.TypeInteger, s.Properties["score"].Type)
	assert.Equal(t, genai.TypeArray, s.Properties["tags"].Type)
	assert.Equal(t, genai.TypeString, s.Properties["tags"].Items.Type)
}

func TestProviderName(t *testing.T) {
	mock := NewMockProvider()
	wrapped := WithTimeout(WithRetry(WithLogging(mock, nil, nil), RetryConfig{MaxAttempts: 1}), 0)
	assert.Equal(t, "mock", ProviderName(wrapped))
	assert.Equal(t, "mock", ProviderName(WithTimeout(mock, 1)))
}

func TestModelCost(t *testing.T) {
	c := LookupCost("gpt-4o-mini")
	require.NotNil(t, c)
	assert.InDelta(t, 0.15+0.6, c.Cost(1_000_000, 1_000_000), 1e-9)

	c = LookupCost("google/gemini-2.5-flash")
	require.NotNil(t, c)
	assert.InDelta(t, 0.3, c.InputPerMTok, 1e-9)

	assert.Nil(t, LookupCost("unknown-model"))
}

func TestFinish_TruncatedInvalid(t *testing.T) {
	_, err := finish(Request{Schema: replySchema()}, json.RawMessage(`{"reply":"cut`), Usage{}, "m", "max_tokens")
	var mt *ErrMaxTokensExceeded
	assert.ErrorAs(t, err, &mt)

	resp, err := finish(Request{}, json.RawMessage(`"x"`), Usage{InputTokens: 2, OutputTokens: 3}, "m", "end")
	require.NoError(t, err)
	assert.Equal(t, 5, resp.Usage.TotalTokens)
}
