// Package home is the main menu.
package home

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/edupath/internal/content"
	"github.com/abhisek/edupath/internal/router"
	"github.com/abhisek/edupath/internal/screen"
	"github.com/abhisek/edupath/internal/ui/components"
	"github.com/abhisek/edupath/internal/ui/layout"
)

// Factories build the screens reachable from the menu. A nil factory
// disables its entry.
type Factories struct {
	Quiz     func() screen.Screen
	Chat     func() screen.Screen
	Tips     func() screen.Screen
	Settings func() screen.Screen
}

// Options configures the home screen.
type Options struct {
	Quote content.Quote
	// Offline is set when EduBot answers from rules only.
	Offline bool
	// Now is used to pick the greeting; zero means time.Now.
	Now time.Time
}

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	menu       components.Menu
	menuLabels []string
	disabled   map[int]bool
	quote      content.Quote
	offline    bool
	mascot     MascotVariant
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// Menu labels in display order.
const (
	LabelQuiz     = "Take the Quiz"
	LabelChat     = "Ask EduBot"
	LabelTips     = "Study Tips"
	LabelSettings = "Settings"
	LabelExit     = "Exit"
)

// New creates a HomeScreen.
func New(f Factories, opts Options) *HomeScreen {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	push := func(build func() screen.Screen) func() tea.Cmd {
		if build == nil {
			return nil
		}
		return func() tea.Cmd {
			s := build()
			return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
		}
	}

	items := []components.MenuItem{
		{Label: LabelQuiz, Action: push(f.Quiz)},
		{Label: LabelChat, Action: push(f.Chat)},
		{Label: LabelTips, Action: push(f.Tips)},
		{Label: LabelSettings, Action: push(f.Settings)},
		{Label: LabelExit, Action: func() tea.Cmd { return tea.Quit }},
	}

	labels := make([]string, len(items))
	disabled := make(map[int]bool)
	for i := range items {
		labels[i] = items[i].Label
		if items[i].Action == nil {
			items[i].Disabled = true
			disabled[i] = true
		}
	}

	return &HomeScreen{
		menu:       components.NewMenu(items),
		menuLabels: labels,
		disabled:   disabled,
		quote:      opts.Quote,
		offline:    opts.Offline,
		mascot:     VariantFor(now),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "Enter", Description: "Select"},
		{Key: "Q", Description: "Quit"},
	}
}

// Selected returns the highlighted menu label.
func (h *HomeScreen) Selected() string {
	return h.menu.SelectedLabel()
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "q" {
		return h, tea.Quit
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header, footer and frame gaps.
	termHeight := height + 8
	compact := termHeight < 32 || width < 80

	cw := components.ContentWidth(width)

	sections := []string{renderTitle(cw)}
	if !compact {
		sections = append(sections, renderGreeting(h.mascot, cw))
		if q := renderQuote(h.quote, cw); q != "" {
			sections = append(sections, q)
		}
	}

	if compact {
		sections = append(sections, renderMenuCompact(h.menuLabels, h.menu.Selected, cw, h.disabled))
	} else {
		sections = append(sections, renderMenu(h.menuLabels, h.menu.Selected, cw, h.disabled))
	}

	if h.offline {
		sections = append(sections, renderOfflineNote(cw))
	}

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}
