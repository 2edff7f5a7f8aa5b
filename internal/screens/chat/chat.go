// Package chat is the EduBot conversation screen.
package chat

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/edupath/internal/advice"
	"github.com/abhisek/edupath/internal/screen"
	"github.com/abhisek/edupath/internal/ui/components"
	"github.com/abhisek/edupath/internal/ui/layout"
	"github.com/abhisek/edupath/internal/ui/theme"
)

const (
	// DefaultTypingDelay is the minimum time the typing indicator shows.
	DefaultTypingDelay = time.Second
	dotsInterval       = 300 * time.Millisecond
	maxMessageLen      = 500
)

type sender int

const (
	fromBot sender = iota
	fromUser
)

type message struct {
	from sender
	text string
	at   time.Time
}

// replyMsg carries the advisor's answer back to the screen.
type replyMsg struct {
	reply advice.Reply
	err   error
}

type dotsTickMsg struct{}

// resetter is implemented by advisors that keep conversation history.
type resetter interface {
	Reset()
}

// ChatScreen sends the student's questions to an advisor and shows the
// replies.
type ChatScreen struct {
	advisor     advice.Advisor
	logger      *zap.Logger
	typingDelay time.Duration

	messages []message
	input    components.TextInput
	pending  bool
	dots     int
	quickIdx int
}

var _ screen.Screen = (*ChatScreen)(nil)
var _ screen.KeyHintProvider = (*ChatScreen)(nil)

// Option configures a ChatScreen.
type Option func(*ChatScreen)

// WithTypingDelay overrides DefaultTypingDelay.
func WithTypingDelay(d time.Duration) Option {
	return func(s *ChatScreen) { s.typingDelay = d }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *ChatScreen) { s.logger = l }
}

// New creates a ChatScreen that opens with the greeting.
func New(advisor advice.Advisor, opts ...Option) *ChatScreen {
	s := &ChatScreen{
		advisor:     advisor,
		logger:      zap.NewNop(),
		typingDelay: DefaultTypingDelay,
		input:       components.NewTextInput("Type your message...", maxMessageLen),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.greet()
	return s
}

func (s *ChatScreen) greet() {
	s.messages = []message{{from: fromBot, text: advice.Greeting, at: time.Now()}}
}

func (s *ChatScreen) Init() tea.Cmd {
	return s.input.Focus()
}

func (s *ChatScreen) Title() string {
	return "Ask EduBot"
}

func (s *ChatScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Tab", Description: "Suggestion"},
		{Key: "Ctrl+L", Description: "Clear"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case replyMsg:
		s.pending = false
		if msg.err != nil {
			s.logger.Warn("advisor failed", zap.Error(msg.err))
			s.append(fromBot, advice.Fallback)
			return s, nil
		}
		s.logger.Debug("advisor replied",
			zap.String("topic", string(msg.reply.Topic)),
			zap.String("source", string(msg.reply.Source)),
		)
		s.append(fromBot, msg.reply.Text)
		return s, nil

	case dotsTickMsg:
		if !s.pending {
			return s, nil
		}
		s.dots = (s.dots + 1) % 4
		return s, dotsTick()

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			return s, s.send()
		case "tab":
			s.input.SetValue(advice.QuickActions[s.quickIdx%len(advice.QuickActions)])
			s.quickIdx++
			return s, nil
		case "ctrl+l":
			if s.pending {
				return s, nil
			}
			if r, ok := s.advisor.(resetter); ok {
				r.Reset()
			}
			s.greet()
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// send posts the input and asks the advisor in the background.
func (s *ChatScreen) send() tea.Cmd {
	text := s.input.Value()
	if text == "" || s.pending {
		return nil
	}
	s.input.Reset()
	s.append(fromUser, text)
	s.pending = true
	s.dots = 0

	advisor, delay := s.advisor, s.typingDelay
	ask := func() tea.Msg {
		start := time.Now()
		reply, err := advisor.Advise(context.Background(), text)
		if wait := delay - time.Since(start); wait > 0 {
			time.Sleep(wait)
		}
		return replyMsg{reply: reply, err: err}
	}
	return tea.Batch(ask, dotsTick())
}

func (s *ChatScreen) append(from sender, text string) {
	s.messages = append(s.messages, message{from: from, text: text, at: time.Now()})
}

func dotsTick() tea.Cmd {
	return tea.Tick(dotsInterval, func(time.Time) tea.Msg { return dotsTickMsg{} })
}

func (s *ChatScreen) View(width, height int) string {
	bubbleWidth := max(width*2/3, 20)

	var blocks []string
	for _, m := range s.messages {
		blocks = append(blocks, renderMessage(m, width, bubbleWidth))
	}
	if s.pending {
		blocks = append(blocks, lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("  EduBot is typing"+strings.Repeat(".", s.dots)))
	}
	if len(s.messages) == 1 && !s.pending {
		blocks = append(blocks, renderQuickActions())
	}

	gap := "\n" + strings.Repeat("\n", theme.LineGap)
	history := strings.Join(blocks, gap)

	s.input.SetWidth(max(width-8, 10))
	inputBox := lipgloss.NewStyle().
		Width(width-2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Render(s.input.View())

	// Keep the newest lines visible above the input.
	avail := max(height-lipgloss.Height(inputBox)-1, 0)
	lines := strings.Split(history, "\n")
	if len(lines) > avail {
		lines = lines[len(lines)-avail:]
	}
	top := lipgloss.NewStyle().Height(avail).Render(strings.Join(lines, "\n"))

	return top + "\n" + inputBox
}

func renderMessage(m message, width, bubbleWidth int) string {
	stamp := theme.Hint.Render(m.at.Format("15:04"))
	if m.from == fromUser {
		body := lipgloss.NewStyle().
			MaxWidth(bubbleWidth).
			Foreground(theme.Text).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Secondary).
			Padding(0, 1).
			Render(wrap(m.text, bubbleWidth-4))
		return lipgloss.PlaceHorizontal(width, lipgloss.Right,
			lipgloss.JoinVertical(lipgloss.Right, body, stamp))
	}
	name := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("EduBot")
	body := lipgloss.NewStyle().
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Render(wrap(m.text, bubbleWidth-4))
	return lipgloss.JoinVertical(lipgloss.Left, name, body, stamp)
}

func renderQuickActions() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("  Try asking:"))
	for _, q := range advice.QuickActions {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("    • " + q))
	}
	return b.String()
}

func wrap(text string, width int) string {
	width = max(width, 10)
	if lipgloss.Width(text) <= width {
		return text
	}
	return lipgloss.NewStyle().Width(width).Render(text)
}
