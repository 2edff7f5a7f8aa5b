package quiz

// Kind distinguishes rating questions from single-choice questions.
type Kind string

const (
	KindRating Kind = "rating" // every subject needs a score 1-10
	KindChoice Kind = "choice" // exactly one option must be selected
)

// Rating bounds for rating questions. Zero means "not yet rated".
const (
	MinRating = 1
	MaxRating = 10
)

// Track is a recommended study programme. The set of valid labels comes
// from the engine configuration.
type Track string

// Question is one step of the questionnaire.
type Question struct {
	ID       string   `json:"id" yaml:"id"`
	Prompt   string   `json:"prompt" yaml:"prompt"`
	Kind     Kind     `json:"kind" yaml:"kind"`
	Subjects []string `json:"subjects,omitempty" yaml:"subjects,omitempty"`
	Options  []string `json:"options,omitempty" yaml:"options,omitempty"`
}

// Items returns the subjects of a rating question or the options of a
// choice question.
func (q Question) Items() []string {
	if q.Kind == KindRating {
		return q.Subjects
	}
	return q.Options
}

// HasItem reports whether name is one of the question's subjects or options.
func (q Question) HasItem(name string) bool {
	for _, it := range q.Items() {
		if it == name {
			return true
		}
	}
	return false
}
