package advice

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/abhisek/edupath/internal/llm"
)

// AdviceSchema is the structured reply requested from the model.
var AdviceSchema = &llm.Schema{
	Name:        "edubot-reply",
	Description: "A short guidance reply to a junior high school student",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"reply": map[string]any{
				"type":        "string",
				"description": "The reply shown to the student. Plain text, at most five sentences.",
			},
			"topic": map[string]any{
				"type": "string",
				"enum": []any{
					string(TopicMentalHealth), string(TopicAcademic), string(TopicCareer),
					string(TopicProgram), string(TopicHelp), string(TopicGreeting), string(TopicOther),
				},
				"description": "The guidance area the message belongs to",
			},
		},
		"required":             []any{"reply", "topic"},
		"additionalProperties": false,
	},
}

const advisorSystemPrompt = `You are EduBot, a friendly guidance counsellor for junior high school students in Ghana who are choosing a Senior High School (SHS) program.

Instructions:
- Help with study habits, career planning, mental wellbeing and SHS program choice.
- The SHS programs are General Science, General Arts, Business, Visual Arts, Agriculture and Home Economics.
- If a student mentions distress, encourage them to talk to a school counsellor or a trusted adult.
- Keep replies warm, concrete and no longer than five sentences.
- Classify the message into one topic.`

// LLMAdvisorConfig holds generation settings for the LLM advisor.
type LLMAdvisorConfig struct {
	MaxTokens   int
	Temperature float64
	// MaxHistory caps the number of prior messages sent with each request.
	MaxHistory int
}

// DefaultLLMAdvisorConfig returns sensible defaults.
func DefaultLLMAdvisorConfig() LLMAdvisorConfig {
	return LLMAdvisorConfig{
		MaxTokens:   400,
		Temperature: 0.5,
		MaxHistory:  12,
	}
}

// LLMAdvisor answers with a language model and falls back to the keyword
// responder when the provider fails.
type LLMAdvisor struct {
	provider llm.Provider
	fallback *Responder
	cfg      LLMAdvisorConfig
	logger   *zap.Logger

	mu      sync.Mutex
	history []llm.Message
}

// NewLLMAdvisor creates an advisor backed by provider.
func NewLLMAdvisor(provider llm.Provider, fallback *Responder, cfg LLMAdvisorConfig, logger *zap.Logger) *LLMAdvisor {
	if fallback == nil {
		fallback = NewDefaultResponder()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LLMAdvisor{provider: provider, fallback: fallback, cfg: cfg, logger: logger}
}

type adviceOutput struct {
	Reply string `json:"reply"`
	Topic Topic  `json:"topic"`
}

// Advise sends the conversation so far plus text to the model. It never
// returns an error; provider failures produce a rules reply.
func (a *LLMAdvisor) Advise(ctx context.Context, text string) (Reply, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeAdvice)

	a.mu.Lock()
	msgs := make([]llm.Message, 0, len(a.history)+1)
	msgs = append(msgs, a.history...)
	a.mu.Unlock()
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: text})

	resp, err := a.provider.Generate(ctx, llm.Request{
		System:      advisorSystemPrompt,
		Messages:    msgs,
		Schema:      AdviceSchema,
		MaxTokens:   a.cfg.MaxTokens,
		Temperature: a.cfg.Temperature,
	})
	if err != nil {
		a.logger.Warn("llm advice failed, using rules", zap.Error(err))
		return a.fallbackReply(ctx, text)
	}

	var out adviceOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil || strings.TrimSpace(out.Reply) == "" {
		a.logger.Warn("llm advice unusable, using rules", zap.Error(err), zap.ByteString("content", resp.Content))
		return a.fallbackReply(ctx, text)
	}
	if out.Topic == "" {
		out.Topic = TopicOther
	}

	a.remember(text, out.Reply)
	return Reply{Text: out.Reply, Topic: out.Topic, Source: SourceLLM}, nil
}

// Reset clears the conversation history.
func (a *LLMAdvisor) Reset() {
	a.mu.Lock()
	a.history = nil
	a.mu.Unlock()
}

// History returns a copy of the recorded conversation.
func (a *LLMAdvisor) History() []llm.Message {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]llm.Message, len(a.history))
	copy(out, a.history)
	return out
}

func (a *LLMAdvisor) fallbackReply(ctx context.Context, text string) (Reply, error) {
	r, _ := a.fallback.Advise(ctx, text)
	a.remember(text, r.Text)
	return r, nil
}

func (a *LLMAdvisor) remember(user, bot string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.history = append(a.history,
		llm.Message{Role: llm.RoleUser, Content: user},
		llm.Message{Role: llm.RoleAssistant, Content: bot},
	)
	if n := a.cfg.MaxHistory; n > 0 && len(a.history) > n {
		a.history = a.history[len(a.history)-n:]
	}
}
