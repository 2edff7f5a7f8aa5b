package advice

import "context"

// Source identifies which advisor produced a reply.
type Source string

const (
	SourceRules Source = "rules"
	SourceLLM   Source = "llm"
)

// Reply is one bot message.
type Reply struct {
	Text   string `json:"text"`
	Topic  Topic  `json:"topic"`
	Source Source `json:"source"`
}

// Advisor produces a reply to a user message.
type Advisor interface {
	Advise(ctx context.Context, text string) (Reply, error)
}

var _ Advisor = (*Responder)(nil)
var _ Advisor = (*LLMAdvisor)(nil)
