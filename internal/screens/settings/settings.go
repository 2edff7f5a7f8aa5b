// Package settings is the preferences screen.
package settings

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	prefs "github.com/abhisek/edupath/internal/settings"
	"github.com/abhisek/edupath/internal/screen"
	"github.com/abhisek/edupath/internal/ui/components"
	"github.com/abhisek/edupath/internal/ui/layout"
	"github.com/abhisek/edupath/internal/ui/theme"
)

type row int

const (
	rowDarkMode row = iota
	rowNotifications
	rowLanguage
	rowFontSize
	rowReset
	rowCount
)

// savedMsg reports the outcome of a background save.
type savedMsg struct {
	settings prefs.Settings
	err      error
}

// SettingsScreen edits preferences. Every change is applied to the theme
// at once and saved through the repo.
type SettingsScreen struct {
	repo    prefs.Repo
	logger  *zap.Logger
	current prefs.Settings
	cursor  row
	status  string
	failed  bool
}

var _ screen.Screen = (*SettingsScreen)(nil)
var _ screen.KeyHintProvider = (*SettingsScreen)(nil)

// New creates a SettingsScreen starting from current. repo may be nil, in
// which case changes only last for the session.
func New(repo prefs.Repo, current prefs.Settings, logger *zap.Logger) *SettingsScreen {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsScreen{repo: repo, logger: logger, current: current}
}

// Apply pushes the display preferences into the theme.
func Apply(s prefs.Settings) {
	theme.Apply(theme.ForMode(s.DarkMode))
	theme.SetFontSize(string(s.FontSize))
}

func (s *SettingsScreen) Init() tea.Cmd {
	return nil
}

func (s *SettingsScreen) Title() string {
	return "Settings"
}

// Settings returns the preferences as currently edited.
func (s *SettingsScreen) Settings() prefs.Settings {
	return s.current
}

func (s *SettingsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "Enter", Description: "Change"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SettingsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		if msg.err != nil {
			s.logger.Error("saving settings", zap.Error(msg.err))
			s.status = "Could not save: " + msg.err.Error()
			s.failed = true
		} else {
			s.status = "Saved"
			s.failed = false
		}
		return s, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			s.cursor = (s.cursor + rowCount - 1) % rowCount
		case "down", "j", "tab":
			s.cursor = (s.cursor + 1) % rowCount
		case "enter", "space", "right", "l":
			return s, s.change(1)
		case "left", "h":
			return s, s.change(-1)
		}
	}
	return s, nil
}

func (s *SettingsScreen) change(dir int) tea.Cmd {
	next := s.current
	switch s.cursor {
	case rowDarkMode:
		next.DarkMode = !next.DarkMode
	case rowNotifications:
		next.Notifications = !next.Notifications
	case rowLanguage:
		next.Language = cycleLanguage(next.Language, dir)
	case rowFontSize:
		next.FontSize = cycleFontSize(next.FontSize, dir)
	case rowReset:
		if dir < 0 {
			return nil
		}
		next = prefs.Defaults()
	}
	s.current = next
	Apply(next)
	s.logger.Info("settings changed",
		zap.Bool("dark_mode", next.DarkMode),
		zap.Bool("notifications", next.Notifications),
		zap.String("language", next.Language),
		zap.String("font_size", string(next.FontSize)),
	)
	return s.save(next)
}

func (s *SettingsScreen) save(next prefs.Settings) tea.Cmd {
	if s.repo == nil {
		s.status = "Changes apply to this session only"
		return nil
	}
	s.status = "Saving..."
	repo := s.repo
	return func() tea.Msg {
		return savedMsg{settings: next, err: repo.Save(context.Background(), next)}
	}
}

func cycleLanguage(code string, dir int) string {
	codes := []string{"en", "tw"}
	i := 0
	for j, c := range codes {
		if c == code {
			i = j
		}
	}
	return codes[(i+dir+len(codes))%len(codes)]
}

func cycleFontSize(f prefs.FontSize, dir int) prefs.FontSize {
	if dir > 0 {
		return f.Next()
	}
	return f.Next().Next()
}

func fontLabel(f prefs.FontSize) string {
	switch f {
	case prefs.FontSmall:
		return "Small"
	case prefs.FontLarge:
		return "Large"
	}
	return "Medium"
}

func onOff(b bool) string {
	if b {
		return "On"
	}
	return "Off"
}

func (s *SettingsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	labelWidth := 16

	rows := []struct {
		label string
		value string
		help  string
	}{
		{"Dark Mode", onOff(s.current.DarkMode), "Switch between light and dark colours"},
		{"Notifications", onOff(s.current.Notifications), "Study reminders and new tips"},
		{"Language", s.current.LanguageName(), "English or Twi"},
		{"Font Size", fontLabel(s.current.FontSize), "Spacing between lines"},
		{"Reset", "", "Restore the default settings"},
	}

	var b strings.Builder
	for i, r := range rows {
		focused := row(i) == s.cursor
		labelStyle := lipgloss.NewStyle().Width(labelWidth).Foreground(theme.Text)
		valueStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
		prefix := "  "
		if focused {
			labelStyle = labelStyle.Foreground(theme.Primary).Bold(true)
			prefix = "▸ "
		}
		value := r.value
		if value != "" {
			value = "‹ " + value + " ›"
		}
		b.WriteString(prefix + labelStyle.Render(r.label) + valueStyle.Render(value))
		b.WriteString("\n")
		if focused {
			b.WriteString(theme.Hint.Render("  " + r.help))
			b.WriteString("\n")
		}
		b.WriteString(strings.Repeat("\n", theme.LineGap))
	}

	card := components.Card(b.String(), cw)
	out := card
	if s.status != "" {
		style := lipgloss.NewStyle().Foreground(theme.Success)
		if s.failed {
			style = lipgloss.NewStyle().Foreground(theme.Error)
		}
		out = lipgloss.JoinVertical(lipgloss.Center, card, "", style.Render(s.status))
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, out)
}
