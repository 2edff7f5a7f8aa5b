package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/edupath/internal/ui/theme"
)

// RatingRow renders one subject with a 1..max scale. value 0 is unrated.
func RatingRow(label string, value, maxValue, labelWidth int, focused bool) string {
	cursor := "  "
	labelStyle := lipgloss.NewStyle().Foreground(theme.Text)
	if focused {
		cursor = "▸ "
		labelStyle = labelStyle.Foreground(theme.Primary).Bold(true)
	}

	pad := max(labelWidth-lipgloss.Width(label), 0)
	head := labelStyle.Render(cursor + label + strings.Repeat(" ", pad))

	filled := lipgloss.NewStyle().Foreground(theme.Secondary).Render(strings.Repeat("■", value))
	empty := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("□", max(maxValue-value, 0)))

	score := lipgloss.NewStyle().Foreground(theme.TextDim).Render(" --")
	if value > 0 {
		score = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(fmt.Sprintf(" %2d", value))
	}
	return head + "  " + filled + empty + score
}
