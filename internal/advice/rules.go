// Package advice answers free-text guidance questions.
package advice

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
)

// Topic is the guidance area a message was matched to.
type Topic string

const (
	TopicMentalHealth Topic = "mental-health"
	TopicAcademic     Topic = "academic"
	TopicCareer       Topic = "career"
	TopicProgram      Topic = "program"
	TopicHelp         Topic = "help"
	TopicGreeting     Topic = "greeting"
	TopicOther        Topic = "other"
)

// Greeting is the first message shown in a new conversation.
const Greeting = "Hello! How can I assist you today?"

// Fallback is returned when no rule matches.
const Fallback = "That's an interesting question! I specialize in educational guidance, career advice, and academic support. Could you tell me more about what specific area you'd like help with? I can assist with study tips, career planning, mental health, or choosing an SHS program."

// Rule maps a set of keywords to a canned response.
type Rule struct {
	Topic    Topic
	Keywords []string
	Response string
}

// DefaultRules returns the built-in rules in priority order.
func DefaultRules() []Rule {
	return []Rule{
		{
			Topic:    TopicMentalHealth,
			Keywords: []string{"mental health", "stress", "anxiety"},
			Response: "I understand you're looking for mental health support. It's important to take care of your mental wellbeing. Consider talking to a school counselor, practicing mindfulness, and maintaining a healthy work-life balance. Remember, seeking help is a sign of strength, not weakness.",
		},
		{
			Topic:    TopicAcademic,
			Keywords: []string{"academic", "study", "school"},
			Response: "For academic success, I recommend creating a structured study schedule, using active learning techniques like flashcards and practice tests, and forming study groups with classmates. Don't forget to take regular breaks and get enough sleep!",
		},
		{
			Topic:    TopicCareer,
			Keywords: []string{"career", "job", "future"},
			Response: "Career planning is exciting! Start by exploring your interests and strengths. Research different career paths, talk to professionals in fields that interest you, and consider gaining experience through internships or volunteering. Remember, career paths can evolve over time.",
		},
		{
			Topic:    TopicProgram,
			Keywords: []string{"shs", "program", "science", "arts", "business"},
			Response: "Choosing an SHS program is an important decision! Consider your favorite subjects, career interests, and learning style. General Science is great for future healthcare or engineering careers, General Arts for humanities and social sciences, Business for entrepreneurship, and Technical/Vocational for hands-on skills.",
		},
		{
			Topic:    TopicHelp,
			Keywords: []string{"tips", "advice", "help"},
			Response: "I'm here to help! I can provide advice on academic success, career planning, mental health, and choosing the right SHS program. What specific area would you like to explore? You can also use the quick action buttons below for common topics.",
		},
		{
			Topic:    TopicGreeting,
			Keywords: []string{"hello", "hi", "hey"},
			Response: "Hello! I'm EduBot, your educational guidance assistant. I'm here to help you with academic advice, career planning, mental health support, and choosing the right SHS program. What would you like to discuss today?",
		},
	}
}

// QuickActions are canned prompts offered next to the chat input.
var QuickActions = []string{
	"I need help with mental health",
	"I need academic advice",
	"Tell me about career choices",
}

// Responder matches text against rules in order. The first rule with a
// keyword contained in the text wins.
type Responder struct {
	rules    []Rule
	fallback string
}

// NewResponder builds a responder. Keywords are case folded up front.
func NewResponder(rules []Rule, fallback string) *Responder {
	fold := cases.Fold()
	folded := make([]Rule, len(rules))
	for i, r := range rules {
		folded[i] = r
		folded[i].Keywords = make([]string, len(r.Keywords))
		for j, k := range r.Keywords {
			folded[i].Keywords[j] = fold.String(k)
		}
	}
	return &Responder{rules: folded, fallback: fallback}
}

// NewDefaultResponder returns a responder over DefaultRules.
func NewDefaultResponder() *Responder {
	return NewResponder(DefaultRules(), Fallback)
}

// Match returns the topic and response for text. ok is false when the
// fallback was used.
func (r *Responder) Match(text string) (topic Topic, response string, ok bool) {
	msg := cases.Fold().String(text)
	for _, rule := range r.rules {
		for _, k := range rule.Keywords {
			if strings.Contains(msg, k) {
				return rule.Topic, rule.Response, true
			}
		}
	}
	return TopicOther, r.fallback, false
}

// Respond returns the canned response for text. It never returns "".
func (r *Responder) Respond(text string) string {
	_, resp, _ := r.Match(text)
	return resp
}

// Advise implements Advisor. It never fails.
func (r *Responder) Advise(_ context.Context, text string) (Reply, error) {
	topic, resp, _ := r.Match(text)
	return Reply{Text: resp, Topic: topic, Source: SourceRules}, nil
}
