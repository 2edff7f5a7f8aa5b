package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	qz "github.com/abhisek/edupath/internal/quiz"
	"github.com/abhisek/edupath/internal/ui/components"
	"github.com/abhisek/edupath/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	if s.confirmQuit {
		return renderQuitConfirm(width, height)
	}
	q, ok := s.flow.Current()
	if !ok {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Working out your program..."))
	}

	cw := components.ContentWidth(width)
	var b strings.Builder

	idx := s.flow.State().Index
	total := s.flow.Total()
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("Question %d of %d", idx+1, total)))
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar("", float64(idx+1)/float64(total), true, cw).View())
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(cw).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Prompt))
	b.WriteString("\n\n")

	if q.Kind == qz.KindRating {
		b.WriteString(s.renderRatings(q))
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("←/→ adjust, 1-9 set, 0 = 10"))
	} else {
		b.WriteString(s.choices.View())
	}
	b.WriteString("\n\n")

	nextLabel := "Next"
	if idx == total-1 {
		nextLabel = "See my program"
	}
	b.WriteString(components.NewButton("Previous", true).View())
	b.WriteString("  ")
	b.WriteString(components.NewButton(nextLabel, s.flow.PendingComplete()).View())

	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

func (s *QuizScreen) renderRatings(q qz.Question) string {
	labelWidth := 0
	for _, subj := range q.Subjects {
		labelWidth = max(labelWidth, lipgloss.Width(subj))
	}
	var b strings.Builder
	for i, subj := range q.Subjects {
		b.WriteString(components.RatingRow(subj, s.flow.Rating(subj), qz.MaxRating, labelWidth, i == s.cursor))
		b.WriteString("\n")
	}
	return b.String()
}

func renderQuitConfirm(width, height int) string {
	msg := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Leave the quiz?") +
		"\n\n" +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Your answers will not be saved.") +
		"\n\n" +
		lipgloss.NewStyle().Foreground(theme.Accent).Render("[Y] Leave   [N] Keep going")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
}
