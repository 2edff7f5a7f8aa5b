package advice

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/edupath/internal/llm"
)

func TestRespond_Topics(t *testing.T) {
	r := NewDefaultResponder()

	tests := []struct {
		name  string
		input string
		topic Topic
	}{
		{"stress lower", "I feel so much stress lately", TopicMentalHealth},
		{"stress upper", "STRESS", TopicMentalHealth},
		{"anxiety mixed", "Exam AnXiEtY", TopicMentalHealth},
		{"mental health phrase", "I need help with mental health", TopicMentalHealth},
		{"academic", "I need academic advice", TopicAcademic},
		{"study", "how should I study for BECE", TopicAcademic},
		{"career", "Tell me about career choices", TopicCareer},
		{"job", "what job pays well", TopicCareer},
		{"program", "Which SHS is best?", TopicProgram},
		{"business", "is Business hard", TopicProgram},
		{"help", "please help", TopicHelp},
		{"greeting", "hey there", TopicGreeting},
		{"hi inside word", "this", TopicGreeting},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			topic, resp, ok := r.Match(tt.input)
			if !ok {
				t.Fatalf("Match(%q) fell back", tt.input)
			}
			if topic != tt.topic {
				t.Errorf("topic = %q, want %q", topic, tt.topic)
			}
			if resp == "" {
				t.Error("empty response")
			}
		})
	}
}

func TestRespond_PriorityOrder(t *testing.T) {
	r := NewDefaultResponder()

	// "stress" outranks "school" and "career".
	topic, _, _ := r.Match("school and career stress")
	assert.Equal(t, TopicMentalHealth, topic)

	// "study" outranks "science".
	topic, _, _ = r.Match("how do I study science")
	assert.Equal(t, TopicAcademic, topic)

	// "future" outranks "hello".
	topic, _, _ = r.Match("hello, what about my future")
	assert.Equal(t, TopicCareer, topic)
}

func TestRespond_Fallback(t *testing.T) {
	r := NewDefaultResponder()

	for _, in := range []string{"", "   ", "what is 2 plus 2", "xyz"} {
		topic, resp, ok := r.Match(in)
		assert.False(t, ok, "input %q", in)
		assert.Equal(t, TopicOther, topic)
		assert.Equal(t, Fallback, resp)
		assert.Equal(t, Fallback, r.Respond(in))
	}
}

func TestRespond_IsPure(t *testing.T) {
	r := NewDefaultResponder()
	first := r.Respond("I need academic advice")
	for range 5 {
		assert.Equal(t, first, r.Respond("I need academic advice"))
	}
}

func TestQuickActionsMatchTheirTopics(t *testing.T) {
	r := NewDefaultResponder()
	want := []Topic{TopicMentalHealth, TopicAcademic, TopicCareer}
	require.Len(t, QuickActions, len(want))
	for i, q := range QuickActions {
		topic, _, _ := r.Match(q)
		assert.Equal(t, want[i], topic, q)
	}
}

func TestCustomRulesAreFolded(t *testing.T) {
	r := NewResponder([]Rule{{Topic: "sports", Keywords: []string{"FOOTBALL"}, Response: "Kick it."}}, "nope")
	assert.Equal(t, "Kick it.", r.Respond("I love football"))
	assert.Equal(t, "nope", r.Respond("I love chess"))
}

func TestLLMAdvisor_UsesModelReply(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"reply":"Try a weekly timetable.","topic":"academic"}`),
	})
	a := NewLLMAdvisor(mock, nil, DefaultLLMAdvisorConfig(), nil)

	reply, err := a.Advise(context.Background(), "How do I plan revision?")
	require.NoError(t, err)
	assert.Equal(t, Reply{Text: "Try a weekly timetable.", Topic: TopicAcademic, Source: SourceLLM}, reply)

	require.Equal(t, 1, mock.CallCount())
	req := mock.Calls[0]
	assert.Equal(t, AdviceSchema, req.Schema)
	assert.True(t, strings.Contains(req.System, "EduBot"))
	require.Len(t, req.Messages, 1)
	assert.Equal(t, "How do I plan revision?", req.Messages[0].Content)
}

func TestLLMAdvisor_SendsHistory(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{"reply":"First.","topic":"greeting"}`)},
		llm.MockResponse{Content: json.RawMessage(`{"reply":"Second.","topic":"career"}`)},
	)
	a := NewLLMAdvisor(mock, nil, DefaultLLMAdvisorConfig(), nil)

	_, err := a.Advise(context.Background(), "hi")
	require.NoError(t, err)
	_, err = a.Advise(context.Background(), "what about careers")
	require.NoError(t, err)

	msgs := mock.Calls[1].Messages
	require.Len(t, msgs, 3)
	assert.Equal(t, llm.RoleUser, msgs[0].Role)
	assert.Equal(t, llm.RoleAssistant, msgs[1].Role)
	assert.Equal(t, "First.", msgs[1].Content)
	assert.Len(t, a.History(), 4)

	a.Reset()
	assert.Empty(t, a.History())
}

func TestLLMAdvisor_HistoryIsCapped(t *testing.T) {
	mock := llm.NewMockProvider()
	for range 5 {
		mock.AddResponse(llm.MockResponse{Content: json.RawMessage(`{"reply":"ok","topic":"other"}`)})
	}
	cfg := DefaultLLMAdvisorConfig()
	cfg.MaxHistory = 4
	a := NewLLMAdvisor(mock, nil, cfg, nil)

	for range 5 {
		_, err := a.Advise(context.Background(), "anything")
		require.NoError(t, err)
	}
	assert.Len(t, a.History(), 4)
}

func TestLLMAdvisor_FallsBackOnError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("boom")})
	a := NewLLMAdvisor(mock, nil, DefaultLLMAdvisorConfig(), nil)

	reply, err := a.Advise(context.Background(), "I have anxiety")
	require.NoError(t, err)
	assert.Equal(t, SourceRules, reply.Source)
	assert.Equal(t, TopicMentalHealth, reply.Topic)
}

func TestLLMAdvisor_FallsBackOnBadContent(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`not json`)},
		llm.MockResponse{Content: json.RawMessage(`{"reply":"  ","topic":"career"}`)},
	)
	a := NewLLMAdvisor(mock, nil, DefaultLLMAdvisorConfig(), nil)

	for range 2 {
		reply, err := a.Advise(context.Background(), "random words")
		require.NoError(t, err)
		assert.Equal(t, SourceRules, reply.Source)
		assert.Equal(t, Fallback, reply.Text)
	}
}
