// Package quiz is the questionnaire screen.
package quiz

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	qz "github.com/abhisek/edupath/internal/quiz"
	"github.com/abhisek/edupath/internal/recommend"
	"github.com/abhisek/edupath/internal/router"
	"github.com/abhisek/edupath/internal/screen"
	"github.com/abhisek/edupath/internal/ui/components"
	"github.com/abhisek/edupath/internal/ui/layout"
)

// ResultsFactory builds the screen that shows a finished quiz.
type ResultsFactory func(res *recommend.Result, sessionID string) screen.Screen

// QuizScreen walks the student through the catalog one question at a time.
type QuizScreen struct {
	flow      *qz.Flow
	engine    *recommend.Engine
	results   ResultsFactory
	logger    *zap.Logger
	sessionID string
	started   time.Time

	choices     components.ChoiceList
	cursor      int // highlighted subject on rating questions
	confirmQuit bool
	errMsg      string
}

var (
	_ screen.Screen          = (*QuizScreen)(nil)
	_ screen.KeyHintProvider = (*QuizScreen)(nil)
	_ screen.BackInterceptor = (*QuizScreen)(nil)
)

// New starts a fresh quiz over the engine's catalog.
func New(engine *recommend.Engine, results ResultsFactory, logger *zap.Logger) *QuizScreen {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &QuizScreen{
		engine:    engine,
		results:   results,
		sessionID: uuid.NewString(),
		started:   time.Now(),
	}
	s.logger = logger.With(zap.String("session_id", s.sessionID))
	s.flow = qz.NewFlow(engine.Catalog(), engine, qz.WithListener(s.onTransition))
	s.resetInput()
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	s.logger.Info("quiz started", zap.Int("questions", s.flow.Total()))
	return nil
}

func (s *QuizScreen) Title() string {
	return "Program Quiz"
}

// SessionID identifies this quiz run in logs and reports.
func (s *QuizScreen) SessionID() string {
	return s.sessionID
}

// Flow exposes the underlying controller.
func (s *QuizScreen) Flow() *qz.Flow {
	return s.flow
}

// InterceptBack asks before throwing away answers.
func (s *QuizScreen) InterceptBack() bool {
	return true
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave quiz"},
			{Key: "N", Description: "Keep going"},
		}
	}
	q, ok := s.flow.Current()
	if !ok {
		return nil
	}
	hints := []layout.KeyHint{{Key: "↑↓", Description: "Move"}}
	if q.Kind == qz.KindRating {
		hints = append(hints, layout.KeyHint{Key: "←→ 1-0", Description: "Rate"})
	} else {
		hints = append(hints, layout.KeyHint{Key: "Space", Description: "Select"})
	}
	return append(hints,
		layout.KeyHint{Key: "N", Description: "Next"},
		layout.KeyHint{Key: "B", Description: "Back"},
		layout.KeyHint{Key: "Esc", Description: "Quit"},
	)
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	key := kmsg.String()

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.logger.Info("quiz abandoned", zap.Int("answered", len(s.flow.Answers())))
			return s, popScreen
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	switch key {
	case "esc":
		s.confirmQuit = true
		return s, nil
	case "n", "tab":
		return s.next()
	case "b", "backspace":
		return s.previous()
	}

	q, ok := s.flow.Current()
	if !ok {
		return s, nil
	}
	if q.Kind == qz.KindRating {
		return s.updateRating(q, key)
	}
	return s.updateChoice(kmsg)
}

func (s *QuizScreen) updateChoice(kmsg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if kmsg.String() == "enter" && s.flow.PendingComplete() && s.choices.Cursor == s.choices.Chosen {
		return s.next()
	}

	var chose bool
	s.choices, chose = s.choices.Update(kmsg)
	if chose {
		if err := s.flow.SelectOption(s.choices.ChosenLabel()); err != nil {
			s.errMsg = err.Error()
		} else {
			s.errMsg = ""
		}
	}
	return s, nil
}

func (s *QuizScreen) updateRating(q qz.Question, key string) (screen.Screen, tea.Cmd) {
	subject := q.Subjects[s.cursor]
	current := s.flow.Rating(subject)

	switch key {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(q.Subjects)-1 {
			s.cursor++
		}
	case "left", "h":
		s.rate(subject, max(current-1, qz.MinRating))
	case "right", "l":
		s.rate(subject, min(current+1, qz.MaxRating))
	case "enter":
		return s.next()
	default:
		if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
			r := int(key[0] - '0')
			if r == 0 {
				r = qz.MaxRating
			}
			s.rate(subject, r)
			if s.cursor < len(q.Subjects)-1 {
				s.cursor++
			}
		}
	}
	return s, nil
}

func (s *QuizScreen) rate(subject string, r int) {
	if err := s.flow.SetRating(subject, r); err != nil {
		s.errMsg = err.Error()
		return
	}
	s.errMsg = ""
}

func (s *QuizScreen) next() (screen.Screen, tea.Cmd) {
	if !s.flow.PendingComplete() {
		s.errMsg = incompleteHint(s.flow)
		return s, nil
	}
	if err := s.flow.Advance(); err != nil {
		s.logger.Error("advance failed", zap.Error(err))
		s.errMsg = err.Error()
		return s, nil
	}
	s.errMsg = ""

	if _, done := s.flow.Track(); done {
		return s, s.finish()
	}
	s.resetInput()
	return s, nil
}

func (s *QuizScreen) previous() (screen.Screen, tea.Cmd) {
	if s.flow.Retreat() {
		s.logger.Info("quiz left from first question")
		return s, popScreen
	}
	s.errMsg = ""
	s.resetInput()
	return s, nil
}

func (s *QuizScreen) finish() tea.Cmd {
	res, err := s.engine.Score(s.flow.Answers())
	if err != nil {
		s.logger.Error("scoring failed", zap.Error(err))
		s.errMsg = err.Error()
		return nil
	}
	s.logger.Info("quiz complete",
		zap.String("track", string(res.Track)),
		zap.Duration("duration", time.Since(s.started)),
	)
	if s.results == nil {
		return popScreen
	}
	next := s.results(res, s.sessionID)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

// resetInput rebuilds the per-question widgets after a transition.
func (s *QuizScreen) resetInput() {
	s.cursor = 0
	q, ok := s.flow.Current()
	if !ok || q.Kind != qz.KindChoice {
		s.choices = components.ChoiceList{Chosen: -1}
		return
	}
	s.choices = components.NewChoiceList(q.Options, s.flow.Selected())
}

func (s *QuizScreen) onTransition(ev qz.Event) {
	s.logger.Debug("quiz transition",
		zap.Stringer("state", ev.State),
		zap.Bool("pending_complete", ev.PendingComplete),
	)
}

func incompleteHint(f *qz.Flow) string {
	q, _ := f.Current()
	if q.Kind == qz.KindRating {
		return "Rate every subject before moving on."
	}
	return "Pick an option before moving on."
}

func popScreen() tea.Msg {
	return router.PopScreenMsg{}
}
