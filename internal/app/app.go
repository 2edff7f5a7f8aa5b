// Package app wires the screens into the root Bubble Tea model.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/edupath/internal/advice"
	"github.com/abhisek/edupath/internal/content"
	"github.com/abhisek/edupath/internal/recommend"
	"github.com/abhisek/edupath/internal/router"
	"github.com/abhisek/edupath/internal/screen"
	"github.com/abhisek/edupath/internal/screens/chat"
	"github.com/abhisek/edupath/internal/screens/home"
	quizscreen "github.com/abhisek/edupath/internal/screens/quiz"
	"github.com/abhisek/edupath/internal/screens/results"
	settingsscreen "github.com/abhisek/edupath/internal/screens/settings"
	"github.com/abhisek/edupath/internal/screens/tips"
	"github.com/abhisek/edupath/internal/screens/welcome"
	"github.com/abhisek/edupath/internal/settings"
	"github.com/abhisek/edupath/internal/ui/layout"
)

// Options holds the dependencies of the TUI.
type Options struct {
	Engine  *recommend.Engine
	Advisor advice.Advisor
	// Offline is set when Advisor answers from rules only.
	Offline bool

	SettingsRepo settings.Repo
	Settings     settings.Settings

	// Status is shown on the right of the header.
	Status string
	// StartOnQuiz skips the welcome splash and home menu.
	StartOnQuiz bool

	Logger *zap.Logger
	// Now overrides the clock for the quote of the day and greeting.
	Now func() time.Time
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	opts   Options
	width  int
	height int
}

// newAppModel creates an AppModel on the welcome screen, or on the quiz
// when StartOnQuiz is set.
func newAppModel(opts Options) AppModel {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Advisor == nil {
		opts.Advisor = advice.NewDefaultResponder()
		opts.Offline = true
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	settingsscreen.Apply(opts.Settings)

	m := AppModel{opts: opts}

	var first screen.Screen
	if opts.StartOnQuiz && opts.Engine != nil {
		first = m.newQuiz()
	} else {
		quote := content.QuoteOfTheDay(opts.Now())
		first = welcome.New(quote, func() screen.Screen { return m.newHome(quote) })
	}
	m.router = router.New(first)
	return m
}

func (m AppModel) newHome(quote content.Quote) screen.Screen {
	f := home.Factories{
		Chat: func() screen.Screen {
			return chat.New(m.opts.Advisor, chat.WithLogger(m.opts.Logger))
		},
		Tips: func() screen.Screen { return tips.New() },
		Settings: func() screen.Screen {
			current := m.opts.Settings
			if m.opts.SettingsRepo != nil {
				if s, err := m.opts.SettingsRepo.Load(context.Background()); err == nil {
					current = s
				} else {
					m.opts.Logger.Warn("loading settings", zap.Error(err))
				}
			}
			return settingsscreen.New(m.opts.SettingsRepo, current, m.opts.Logger)
		},
	}
	if m.opts.Engine != nil {
		f.Quiz = m.newQuiz
	}
	return home.New(f, home.Options{Quote: quote, Offline: m.opts.Offline, Now: m.opts.Now()})
}

func (m AppModel) newQuiz() screen.Screen {
	return quizscreen.New(m.opts.Engine, m.newResults, m.opts.Logger)
}

func (m AppModel) newResults(res *recommend.Result, sessionID string) screen.Screen {
	return results.New(res, sessionID, m.newQuiz)
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if bi, ok := m.router.Active().(screen.BackInterceptor); ok && bi.InterceptBack() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}

	case router.PopScreenMsg:
		if m.router.Depth() <= 1 {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the frame around the active screen.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	header := layout.RenderHeader(active.Title(), m.opts.Status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return append(p.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Any key", Description: "Continue"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
