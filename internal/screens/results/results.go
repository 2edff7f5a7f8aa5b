// Package results shows the recommended program after a quiz.
package results

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/edupath/internal/recommend"
	"github.com/abhisek/edupath/internal/router"
	"github.com/abhisek/edupath/internal/screen"
	"github.com/abhisek/edupath/internal/tracks"
	"github.com/abhisek/edupath/internal/ui/components"
	"github.com/abhisek/edupath/internal/ui/layout"
	"github.com/abhisek/edupath/internal/ui/theme"
)

// ResultsScreen displays the recommended track, its careers and the score
// breakdown.
type ResultsScreen struct {
	result    *recommend.Result
	details   tracks.Details
	sessionID string
	retake    func() screen.Screen
	showScore bool
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates a ResultsScreen. retake builds a fresh quiz and may be nil.
func New(result *recommend.Result, sessionID string, retake func() screen.Screen) *ResultsScreen {
	return &ResultsScreen{
		result:    result,
		details:   tracks.Lookup(result.Track),
		sessionID: sessionID,
		retake:    retake,
	}
}

func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultsScreen) Title() string {
	return "Your Recommendation"
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "S", Description: "Scores"}}
	if s.retake != nil {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Retake"})
	}
	return append(hints, layout.KeyHint{Key: "Enter", Description: "Home"})
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "s":
		s.showScore = !s.showScore
	case "r":
		if s.retake != nil {
			next := s.retake()
			return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		}
	case "enter", "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *ResultsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("We recommend"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render(string(s.result.Track)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Width(cw - 6).Foreground(theme.Text).Render(s.details.Description))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("Careers to explore"))
	b.WriteString("\n")
	for _, c := range s.details.Careers {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render("  • " + c))
		b.WriteString("\n")
	}

	if s.showScore {
		b.WriteString("\n")
		b.WriteString(s.renderScores(cw - 6))
	}

	card := components.Card(b.String(), cw)
	footer := theme.Hint.Render(fmt.Sprintf("session %s", shortID(s.sessionID)))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, card, footer))
}

func (s *ResultsScreen) renderScores(width int) string {
	ranked := s.result.Ranked()
	top := 0.0
	if len(ranked) > 0 {
		top = ranked[0].Total
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("Score breakdown"))
	b.WriteString("\n")
	for _, ts := range ranked {
		pct := 0.0
		if top > 0 {
			pct = ts.Total / top
		}
		label := fmt.Sprintf("%-16s %5.2f", ts.Track, ts.Total)
		b.WriteString(components.NewProgressBar(label, pct, false, width).View())
		b.WriteString("\n")
	}
	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
