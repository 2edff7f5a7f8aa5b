package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/edupath/internal/ui/theme"
)

// ChoiceList is a single-select option list. Cursor is the highlighted row;
// Chosen is the selected option index or -1.
type ChoiceList struct {
	Options []string
	Cursor  int
	Chosen  int
}

// NewChoiceList creates a list with nothing chosen. chosen pre-selects an
// option by label when non-empty.
func NewChoiceList(options []string, chosen string) ChoiceList {
	c := ChoiceList{Options: options, Chosen: -1}
	for i, o := range options {
		if o == chosen {
			c.Chosen = i
			c.Cursor = i
		}
	}
	return c
}

// Update moves the cursor. Space and enter choose the highlighted option.
func (c ChoiceList) Update(msg tea.Msg) (ChoiceList, bool) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, false
	}
	switch kmsg.String() {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Options)-1 {
			c.Cursor++
		}
	case "space", "enter":
		if len(c.Options) > 0 {
			c.Chosen = c.Cursor
			return c, true
		}
	}
	return c, false
}

// ChosenLabel returns the chosen option, or "" if none.
func (c ChoiceList) ChosenLabel() string {
	if c.Chosen < 0 || c.Chosen >= len(c.Options) {
		return ""
	}
	return c.Options[c.Chosen]
}

// View renders the options with radio markers.
func (c ChoiceList) View() string {
	var b strings.Builder
	for i, opt := range c.Options {
		cursor := "  "
		if i == c.Cursor {
			cursor = "▸ "
		}
		mark := "○"
		if i == c.Chosen {
			mark = "●"
		}
		line := fmt.Sprintf("%s%s  %s", cursor, mark, opt)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case i == c.Chosen:
			style = style.Foreground(theme.Success).Bold(true)
		case i == c.Cursor:
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(style.Render(line) + "\n")
	}
	return b.String()
}
