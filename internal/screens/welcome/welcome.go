package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/edupath/internal/content"
	"github.com/abhisek/edupath/internal/router"
	"github.com/abhisek/edupath/internal/screen"
	"github.com/abhisek/edupath/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

const capArt = `      ▄▄▄▄▄▄▄
  ▄▄▀▀       ▀▀▄▄
 ▀▀▄▄▄▄▄▄▄▄▄▄▄▄▄▀▀▄
     █▄▄▄▄▄▄▄█    █
                  ▀`

var sparkleFrames = []string{"★", "✦"}

type tickMsg time.Time

// WelcomeScreen shows the banner and the quote of the day, then hands over
// to the home screen on the first key press.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	quote        content.Quote
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen showing quote. The screen produced by
// homeFactory replaces it.
func New(quote content.Quote, homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{homeFactory: homeFactory, quote: quote}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}
	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	art := lipgloss.NewStyle().Foreground(theme.Primary).Render(capArt)
	if w.elapsed >= phase1End {
		sparkle := sparkleFrames[w.tickCount%len(sparkleFrames)]
		s1 := lipgloss.NewStyle().Foreground(theme.Accent).Render(sparkle)
		s2 := lipgloss.NewStyle().Foreground(theme.Secondary).Render(sparkle)
		lines := strings.Split(art, "\n")
		lines[0] = s1 + "  " + lines[0]
		lines[len(lines)-2] = lines[len(lines)-2] + "  " + s2
		art = strings.Join(lines, "\n")
	}
	sections = append(sections, art)

	if w.elapsed >= phase2End {
		sections = append(sections, "", RenderBanner(width), "")
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("Find your Senior High School path"))

		if w.quote.Text != "" {
			quoteWidth := min(width-8, 60)
			sections = append(sections, "",
				lipgloss.NewStyle().
					Width(quoteWidth).
					Align(lipgloss.Center).
					Foreground(theme.Secondary).
					Italic(true).
					Render("“"+w.quote.Text+"”"),
				lipgloss.NewStyle().
					Foreground(theme.TextDim).
					Render("- "+w.quote.Author))
		}

		sections = append(sections, "", lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("press any key to continue"))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
