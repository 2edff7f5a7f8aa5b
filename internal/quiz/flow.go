package quiz

import (
	"fmt"
	"maps"
)

// State identifies where a Flow is: at a question index, or complete.
type State struct {
	Index    int
	Complete bool
}

func (s State) String() string {
	if s.Complete {
		return "complete"
	}
	return fmt.Sprintf("question %d", s.Index)
}

// Event is reported to the listener after every transition. Track is only
// set on the transition into the complete state.
type Event struct {
	State           State
	PendingComplete bool
	Track           Track
}

// Recommender turns a finished answer set into a track.
type Recommender interface {
	Recommend(answers AnswerSet) (Track, error)
}

// FlowOption configures a Flow.
type FlowOption func(*Flow)

// WithListener registers a callback invoked after each transition.
func WithListener(fn func(Event)) FlowOption {
	return func(f *Flow) {
		f.listener = fn
	}
}

// Flow walks a catalog one question at a time. Answers are kept in an
// append-only log; cursor marks how many of them are live.
type Flow struct {
	catalog *Catalog
	engine  Recommender

	log    []Answer
	cursor int

	choice  string
	ratings map[string]int

	complete bool
	track    Track
	listener func(Event)
}

// NewFlow starts a quiz at the first question with no answers.
func NewFlow(catalog *Catalog, engine Recommender, opts ...FlowOption) *Flow {
	f := &Flow{
		catalog: catalog,
		engine:  engine,
		ratings: make(map[string]int),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// State returns the current position.
func (f *Flow) State() State {
	return State{Index: f.cursor, Complete: f.complete}
}

// Current returns the question being answered. ok is false once complete.
func (f *Flow) Current() (q Question, ok bool) {
	if f.complete {
		return Question{}, false
	}
	return f.catalog.At(f.cursor), true
}

// Total returns the number of questions in the flow.
func (f *Flow) Total() int {
	return f.catalog.Len()
}

// Track returns the recommended track once the flow is complete.
func (f *Flow) Track() (Track, bool) {
	return f.track, f.complete
}

// Answers returns a copy of the recorded answers.
func (f *Flow) Answers() AnswerSet {
	return AnswerSet(f.log[:f.cursor]).Clone()
}

// Selected returns the pending option of the current choice question.
func (f *Flow) Selected() string {
	return f.choice
}

// Rating returns the pending rating for a subject, or 0 if unrated.
func (f *Flow) Rating(subject string) int {
	return f.ratings[subject]
}

// SelectOption makes option the single selection for the current question.
func (f *Flow) SelectOption(option string) error {
	q, ok := f.Current()
	if !ok {
		return ErrFlowComplete
	}
	if q.Kind != KindChoice {
		return fmt.Errorf("select %q on %s question %q: %w", option, q.Kind, q.ID, ErrWrongKind)
	}
	if !q.HasItem(option) {
		return fmt.Errorf("question %q: %w: %q", q.ID, ErrUnknownOption, option)
	}
	f.choice = option
	return nil
}

// SetRating records a rating for one subject of the current question.
// A rating of 0 clears the subject.
func (f *Flow) SetRating(subject string, rating int) error {
	q, ok := f.Current()
	if !ok {
		return ErrFlowComplete
	}
	if q.Kind != KindRating {
		return fmt.Errorf("rate %q on %s question %q: %w", subject, q.Kind, q.ID, ErrWrongKind)
	}
	if !q.HasItem(subject) {
		return fmt.Errorf("question %q: %w: %q", q.ID, ErrUnknownSubject, subject)
	}
	if rating < 0 || rating > MaxRating {
		return fmt.Errorf("subject %q: %w: %d", subject, ErrRatingRange, rating)
	}
	if rating == 0 {
		delete(f.ratings, subject)
		return nil
	}
	f.ratings[subject] = rating
	return nil
}

// PendingComplete reports whether the pending input satisfies the current
// question: one selected option, or every subject rated.
func (f *Flow) PendingComplete() bool {
	q, ok := f.Current()
	if !ok {
		return false
	}
	switch q.Kind {
	case KindChoice:
		return f.choice != ""
	case KindRating:
		for _, s := range q.Subjects {
			if f.ratings[s] < MinRating {
				return false
			}
		}
		return true
	}
	return false
}

// Advance records the pending answer and moves to the next question. On the
// last question it runs the recommender and completes the flow. Advancing
// with incomplete input does nothing.
func (f *Flow) Advance() error {
	if f.complete {
		return ErrFlowComplete
	}
	if !f.PendingComplete() {
		return nil
	}

	answer := f.pendingAnswer()

	if f.cursor == f.catalog.Len()-1 {
		answers := append(AnswerSet(f.log[:f.cursor]).Clone(), answer)
		track, err := f.engine.Recommend(answers)
		if err != nil {
			return fmt.Errorf("recommend: %w", err)
		}
		f.record(answer)
		f.complete = true
		f.track = track
		f.emit(track)
		return nil
	}

	f.record(answer)
	f.emit("")
	return nil
}

// Retreat drops the last recorded answer and returns to its question.
// On the first question it returns exit=true and changes nothing, telling
// the caller to leave the quiz.
func (f *Flow) Retreat() (exit bool) {
	if f.complete {
		return false
	}
	if f.cursor == 0 {
		return true
	}
	f.cursor--
	f.clearPending()
	f.emit("")
	return false
}

func (f *Flow) pendingAnswer() Answer {
	q := f.catalog.At(f.cursor)
	if q.Kind == KindRating {
		return RatingAnswer(q.ID, f.ratings)
	}
	return ChoiceAnswer(q.ID, f.choice)
}

// record writes answer at the cursor, discarding any entries past it.
func (f *Flow) record(answer Answer) {
	f.log = append(f.log[:f.cursor], answer)
	f.cursor++
	f.clearPending()
}

func (f *Flow) clearPending() {
	f.choice = ""
	f.ratings = make(map[string]int)
}

func (f *Flow) emit(track Track) {
	if f.listener == nil {
		return
	}
	f.listener(Event{
		State:           f.State(),
		PendingComplete: f.PendingComplete(),
		Track:           track,
	})
}

// PendingRatings returns a copy of the ratings entered so far for the
// current rating question.
func (f *Flow) PendingRatings() map[string]int {
	return maps.Clone(f.ratings)
}
