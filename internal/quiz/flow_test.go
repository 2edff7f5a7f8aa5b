package quiz

import (
	"errors"
	"testing"
)

// stubEngine records what it was asked to score.
type stubEngine struct {
	track Track
	err   error
	calls []AnswerSet
}

func (s *stubEngine) Recommend(answers AnswerSet) (Track, error) {
	s.calls = append(s.calls, answers)
	return s.track, s.err
}

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog("v1.0.0", []Question{
		{ID: "marks", Prompt: "Rate", Kind: KindRating, Subjects: []string{"Maths", "Art"}},
		{ID: "career", Prompt: "Career?", Kind: KindChoice, Options: []string{"Doctor", "Painter"}},
		{ID: "goal", Prompt: "Goal?", Kind: KindChoice, Options: []string{"University", "Work"}},
	})
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}
	return c
}

func rateAll(t *testing.T, f *Flow, r int) {
	t.Helper()
	q, _ := f.Current()
	for _, s := range q.Subjects {
		if err := f.SetRating(s, r); err != nil {
			t.Fatalf("SetRating(%q): %v", s, err)
		}
	}
}

func TestFlow_InitialState(t *testing.T) {
	f := NewFlow(testCatalog(t), &stubEngine{})

	if got := f.State(); got != (State{Index: 0}) {
		t.Errorf("State() = %v, want question 0", got)
	}
	if f.PendingComplete() {
		t.Error("pending should be incomplete at start")
	}
	if len(f.Answers()) != 0 {
		t.Errorf("Answers() len = %d, want 0", len(f.Answers()))
	}
}

func TestFlow_AdvanceIncompleteIsNoop(t *testing.T) {
	f := NewFlow(testCatalog(t), &stubEngine{})

	if err := f.SetRating("Maths", 6); err != nil {
		t.Fatalf("SetRating: %v", err)
	}
	if err := f.Advance(); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if f.State().Index != 0 {
		t.Errorf("Index = %d, want 0", f.State().Index)
	}
	if len(f.Answers()) != 0 {
		t.Errorf("Answers() len = %d, want 0", len(f.Answers()))
	}
	if f.Rating("Maths") != 6 {
		t.Errorf("pending rating lost: got %d, want 6", f.Rating("Maths"))
	}
}

func TestFlow_RatingZeroClears(t *testing.T) {
	f := NewFlow(testCatalog(t), &stubEngine{})
	rateAll(t, f, 4)
	if !f.PendingComplete() {
		t.Fatal("expected complete after rating every subject")
	}
	if err := f.SetRating("Art", 0); err != nil {
		t.Fatalf("SetRating: %v", err)
	}
	if f.PendingComplete() {
		t.Error("clearing a rating should make the answer incomplete")
	}
}

func TestFlow_InputValidation(t *testing.T) {
	f := NewFlow(testCatalog(t), &stubEngine{})

	if err := f.SetRating("Music", 5); !errors.Is(err, ErrUnknownSubject) {
		t.Errorf("unknown subject: got %v, want ErrUnknownSubject", err)
	}
	if err := f.SetRating("Maths", 11); !errors.Is(err, ErrRatingRange) {
		t.Errorf("rating 11: got %v, want ErrRatingRange", err)
	}
	if err := f.SetRating("Maths", -1); !errors.Is(err, ErrRatingRange) {
		t.Errorf("rating -1: got %v, want ErrRatingRange", err)
	}
	if err := f.SelectOption("Doctor"); !errors.Is(err, ErrWrongKind) {
		t.Errorf("select on rating: got %v, want ErrWrongKind", err)
	}

	rateAll(t, f, 5)
	if err := f.Advance(); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if err := f.SelectOption("Astronaut"); !errors.Is(err, ErrUnknownOption) {
		t.Errorf("unknown option: got %v, want ErrUnknownOption", err)
	}
	if err := f.SetRating("Maths", 3); !errors.Is(err, ErrWrongKind) {
		t.Errorf("rate on choice: got %v, want ErrWrongKind", err)
	}
}

func TestFlow_SelectOptionReplaces(t *testing.T) {
	f := NewFlow(testCatalog(t), &stubEngine{})
	rateAll(t, f, 5)
	_ = f.Advance()

	_ = f.SelectOption("Doctor")
	_ = f.SelectOption("Painter")
	if f.Selected() != "Painter" {
		t.Errorf("Selected() = %q, want Painter", f.Selected())
	}
	_ = f.Advance()

	answers := f.Answers()
	if len(answers) != 2 {
		t.Fatalf("Answers() len = %d, want 2", len(answers))
	}
	if answers[1].Choice != "Painter" || answers[1].Kind != KindChoice {
		t.Errorf("answer = %+v, want choice Painter", answers[1])
	}
}

func TestFlow_RetreatUndoesOneStep(t *testing.T) {
	f := NewFlow(testCatalog(t), &stubEngine{})
	rateAll(t, f, 7)
	_ = f.Advance()
	_ = f.SelectOption("Doctor")
	_ = f.Advance()

	if f.State().Index != 2 {
		t.Fatalf("Index = %d, want 2", f.State().Index)
	}
	_ = f.SelectOption("Work")

	if exit := f.Retreat(); exit {
		t.Fatal("Retreat from question 2 should not exit")
	}
	if f.State().Index != 1 {
		t.Errorf("Index = %d, want 1", f.State().Index)
	}
	answers := f.Answers()
	if len(answers) != 1 {
		t.Fatalf("Answers() len = %d, want 1", len(answers))
	}
	if answers[0].QuestionID != "marks" || answers[0].Ratings["Maths"] != 7 {
		t.Errorf("earlier answer changed: %+v", answers[0])
	}
	if f.Selected() != "" {
		t.Errorf("pending input should be cleared, got %q", f.Selected())
	}

	// Re-answering overwrites the discarded log entry.
	_ = f.SelectOption("Painter")
	_ = f.Advance()
	answers = f.Answers()
	if len(answers) != 2 || answers[1].Choice != "Painter" {
		t.Errorf("Answers() = %+v, want Painter as second answer", answers)
	}
}

func TestFlow_RetreatAtFirstQuestionExits(t *testing.T) {
	f := NewFlow(testCatalog(t), &stubEngine{})
	_ = f.SetRating("Maths", 3)

	if exit := f.Retreat(); !exit {
		t.Fatal("Retreat at question 0 should signal exit")
	}
	if f.State().Index != 0 {
		t.Errorf("Index = %d, want 0", f.State().Index)
	}
	if f.Rating("Maths") != 3 {
		t.Error("exit must not modify state")
	}
}

func TestFlow_CompletesOnceWithTrack(t *testing.T) {
	engine := &stubEngine{track: "General Science"}
	var events []Event
	f := NewFlow(testCatalog(t), engine, WithListener(func(e Event) {
		events = append(events, e)
	}))

	rateAll(t, f, 9)
	_ = f.Advance()
	_ = f.SelectOption("Doctor")
	_ = f.Advance()
	_ = f.SelectOption("University")
	if err := f.Advance(); err != nil {
		t.Fatalf("final Advance: %v", err)
	}

	track, done := f.Track()
	if !done || track != "General Science" {
		t.Errorf("Track() = (%q, %v), want (General Science, true)", track, done)
	}
	if len(engine.calls) != 1 {
		t.Fatalf("engine called %d times, want 1", len(engine.calls))
	}
	if len(engine.calls[0]) != 3 {
		t.Errorf("engine saw %d answers, want 3", len(engine.calls[0]))
	}

	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	withTrack := 0
	for _, e := range events {
		if e.Track != "" {
			withTrack++
		}
	}
	if withTrack != 1 {
		t.Errorf("track emitted %d times, want 1", withTrack)
	}
	last := events[len(events)-1]
	if !last.State.Complete || last.Track != "General Science" {
		t.Errorf("last event = %+v, want complete with track", last)
	}

	// Complete is terminal.
	if err := f.Advance(); !errors.Is(err, ErrFlowComplete) {
		t.Errorf("Advance after complete: got %v, want ErrFlowComplete", err)
	}
	if f.Retreat() {
		t.Error("Retreat after complete should not exit")
	}
	if !f.State().Complete {
		t.Error("state should remain complete")
	}
	if err := f.SelectOption("Work"); !errors.Is(err, ErrFlowComplete) {
		t.Errorf("SelectOption after complete: got %v, want ErrFlowComplete", err)
	}
	if len(engine.calls) != 1 {
		t.Errorf("engine called again after complete")
	}
}

func TestFlow_EngineErrorKeepsLastQuestion(t *testing.T) {
	engine := &stubEngine{err: errors.New("bad table")}
	f := NewFlow(testCatalog(t), engine)

	rateAll(t, f, 2)
	_ = f.Advance()
	_ = f.SelectOption("Doctor")
	_ = f.Advance()
	_ = f.SelectOption("Work")

	if err := f.Advance(); err == nil {
		t.Fatal("expected engine error")
	}
	if f.State().Complete {
		t.Error("flow should not complete when the engine fails")
	}
	if f.State().Index != 2 {
		t.Errorf("Index = %d, want 2", f.State().Index)
	}
	if len(f.Answers()) != 2 {
		t.Errorf("Answers() len = %d, want 2", len(f.Answers()))
	}
}

func TestFlow_EventsReportPendingFlag(t *testing.T) {
	var events []Event
	f := NewFlow(testCatalog(t), &stubEngine{}, WithListener(func(e Event) {
		events = append(events, e)
	}))

	rateAll(t, f, 5)
	_ = f.Advance()
	_ = f.Retreat()

	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].State.Index != 1 || events[0].PendingComplete {
		t.Errorf("after advance: %+v, want question 1 incomplete", events[0])
	}
	if events[1].State.Index != 0 || events[1].PendingComplete {
		t.Errorf("after retreat: %+v, want question 0 incomplete", events[1])
	}
}

func TestFlow_AnswersAreCopies(t *testing.T) {
	f := NewFlow(testCatalog(t), &stubEngine{})
	rateAll(t, f, 5)
	_ = f.Advance()

	got := f.Answers()
	got[0].Ratings["Maths"] = 1

	if f.Answers()[0].Ratings["Maths"] != 5 {
		t.Error("mutating Answers() result should not affect the flow")
	}
}
