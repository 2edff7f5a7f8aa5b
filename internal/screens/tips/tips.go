// Package tips is the study tips browser.
package tips

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/edupath/internal/content"
	"github.com/abhisek/edupath/internal/screen"
	"github.com/abhisek/edupath/internal/ui/components"
	"github.com/abhisek/edupath/internal/ui/layout"
	"github.com/abhisek/edupath/internal/ui/theme"
)

var categoryLabels = map[content.Category]string{
	content.CategoryAll:          "All",
	content.CategoryAcademic:     "Academic",
	content.CategoryCareer:       "Career",
	content.CategoryMentalHealth: "Mental Health",
}

// TipsScreen lists tips with category tabs and a search box. Enter opens
// the highlighted tip.
type TipsScreen struct {
	category int
	search   components.TextInput
	results  []content.Tip
	cursor   int
	detail   *content.Tip
}

var (
	_ screen.Screen          = (*TipsScreen)(nil)
	_ screen.KeyHintProvider = (*TipsScreen)(nil)
	_ screen.BackInterceptor = (*TipsScreen)(nil)
)

// New creates a TipsScreen showing every tip.
func New() *TipsScreen {
	s := &TipsScreen{search: components.NewTextInput("Search tips...", 60)}
	s.search.Blur()
	s.refresh()
	return s
}

func (s *TipsScreen) Init() tea.Cmd {
	return nil
}

func (s *TipsScreen) Title() string {
	return "Study Tips"
}

// InterceptBack lets Esc close the detail view or leave the search box.
func (s *TipsScreen) InterceptBack() bool {
	return s.detail != nil || s.search.Focused()
}

func (s *TipsScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.detail != nil:
		return []layout.KeyHint{{Key: "Esc", Description: "Back to list"}}
	case s.search.Focused():
		return []layout.KeyHint{
			{Key: "Enter", Description: "Done"},
			{Key: "Esc", Description: "Done"},
		}
	}
	return []layout.KeyHint{
		{Key: "←→", Description: "Category"},
		{Key: "↑↓", Description: "Move"},
		{Key: "/", Description: "Search"},
		{Key: "Enter", Description: "Open"},
		{Key: "Esc", Description: "Back"},
	}
}

// Category returns the selected category filter.
func (s *TipsScreen) Category() content.Category {
	return content.Categories[s.category]
}

func (s *TipsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if s.search.Focused() {
			var cmd tea.Cmd
			s.search, cmd = s.search.Update(msg)
			return s, cmd
		}
		return s, nil
	}
	key := kmsg.String()

	if s.detail != nil {
		if key == "esc" || key == "backspace" || key == "enter" {
			s.detail = nil
		}
		return s, nil
	}

	if s.search.Focused() {
		switch key {
		case "esc", "enter", "down":
			s.search.Blur()
			return s, nil
		}
		var cmd tea.Cmd
		s.search, cmd = s.search.Update(msg)
		s.refresh()
		return s, cmd
	}

	switch key {
	case "/":
		return s, s.search.Focus()
	case "left", "h":
		s.category = (s.category + len(content.Categories) - 1) % len(content.Categories)
		s.refresh()
	case "right", "l":
		s.category = (s.category + 1) % len(content.Categories)
		s.refresh()
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.results)-1 {
			s.cursor++
		}
	case "enter":
		if s.cursor < len(s.results) {
			t := s.results[s.cursor]
			s.detail = &t
		}
	}
	return s, nil
}

func (s *TipsScreen) refresh() {
	s.results = content.FilterTips(s.Category(), s.search.Value())
	s.cursor = min(s.cursor, max(len(s.results)-1, 0))
}

func (s *TipsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	if s.detail != nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, renderDetail(*s.detail, cw))
	}

	var b strings.Builder
	b.WriteString(s.renderTabs())
	b.WriteString("\n\n")

	s.search.SetWidth(cw - 4)
	searchBorder := theme.Border
	if s.search.Focused() {
		searchBorder = theme.Primary
	}
	b.WriteString(lipgloss.NewStyle().
		Width(cw).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(searchBorder).
		Render(s.search.View()))
	b.WriteString("\n\n")

	if len(s.results) == 0 {
		b.WriteString(theme.Hint.Render("No tips found. Try a different search or category."))
	}
	for i, t := range s.results {
		style := lipgloss.NewStyle().Foreground(theme.Text)
		prefix := "  "
		if i == s.cursor {
			style = style.Foreground(theme.Primary).Bold(true)
			prefix = "▸ "
		}
		tag := lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("  [%s]", categoryLabels[t.Category]))
		b.WriteString(style.Render(prefix+t.Title) + tag)
		b.WriteString("\n")
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, b.String())
}

func (s *TipsScreen) renderTabs() string {
	tabs := make([]string, len(content.Categories))
	for i, c := range content.Categories {
		label := " " + categoryLabels[c] + " "
		if i == s.category {
			tabs[i] = lipgloss.NewStyle().Bold(true).Foreground(theme.BgDark).Background(theme.Secondary).Render(label)
		} else {
			tabs[i] = lipgloss.NewStyle().Foreground(theme.TextDim).Render(label)
		}
	}
	return strings.Join(tabs, " ")
}

func renderDetail(t content.Tip, cw int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(t.Title))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Render(categoryLabels[t.Category]))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Width(cw - 6).Foreground(theme.Text).Render(t.Content))
	if len(t.Tags) > 0 {
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render("#" + strings.Join(t.Tags, "  #")))
	}
	return components.Card(b.String(), cw)
}
