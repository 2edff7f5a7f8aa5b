package home

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/edupath/internal/content"
	"github.com/abhisek/edupath/internal/ui/components"
	"github.com/abhisek/edupath/internal/ui/theme"
)

const titleCompact = "E · D · U · P · A · T · H"

const tagline = "Find the SHS program that fits you"

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 24

func renderTitle(cw int) string {
	title := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(titleCompact)
	sub := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(tagline)
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(title + "\n" + sub)
}

// renderGreeting places the mascot beside its greeting.
func renderGreeting(v MascotVariant, cw int) string {
	greeting := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		PaddingLeft(2).
		Render(v.Greeting() + "\nWhat would you like to do?")
	row := lipgloss.JoinHorizontal(lipgloss.Center, RenderMascot(v), greeting)
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(row)
}

func renderQuote(q content.Quote, cw int) string {
	if q.Text == "" {
		return ""
	}
	text := lipgloss.NewStyle().Foreground(theme.Text).Italic(true).Width(cw - 6).Render("“" + q.Text + "”")
	author := lipgloss.NewStyle().Foreground(theme.TextDim).Render("- " + q.Author)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw - 2).
		Padding(0, 2).
		Render(text + "\n" + author)
}

// renderMenu renders each menu item as a fixed-width button.
func renderMenu(items []string, selected, cw int, disabled map[int]bool) string {
	disabledBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	buttons := make([]string, 0, len(items))
	for i, label := range items {
		if disabled[i] {
			buttons = append(buttons, disabledBtn.Render(label))
			continue
		}
		buttons = append(buttons, components.MenuButton(label, i == selected, buttonWidth))
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderMenuCompact renders menu items as plain lines for terminals too
// short for bordered buttons.
func renderMenuCompact(items []string, selected, cw int, disabled map[int]bool) string {
	lines := make([]string, 0, len(items))
	for i, label := range items {
		var line string
		switch {
		case disabled[i]:
			line = lipgloss.NewStyle().Foreground(theme.TextDim).Render("   " + label)
		case i == selected:
			line = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Accent).
				Bold(true).
				Render(" ▸ " + label + " ")
		default:
			line = lipgloss.NewStyle().Foreground(theme.Text).Render("   " + label)
		}
		lines = append(lines, line)
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderOfflineNote explains that EduBot answers from built-in rules.
func renderOfflineNote(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(cw).
		Align(lipgloss.Center).
		Render("EduBot is offline. Set an LLM API key for richer answers (see edupath --help)")
}
