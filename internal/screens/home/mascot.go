package home

import (
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/edupath/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotMorning   MascotVariant = iota // Cap on, sun
	MascotAfternoon                      // Cap on, book
	MascotEvening                        // Sleepy eyes, moon
)

const mascotMorning = `  ▄███▄   ☼
 ┌─────┐
 │ ◉ ◉ │
 │  ◡  │
 └─────┘`

const mascotAfternoon = `  ▄███▄
 ┌─────┐
 │ ◉ ◉ │
 │  ◡  │
 └─┬─┬─┘
  [===]`

const mascotEvening = `  ▄███▄   ☾
 ┌─────┐
 │ - - │
 │  ◡  │
 └─────┘`

// VariantFor picks the mascot for the time of day.
func VariantFor(t time.Time) MascotVariant {
	switch h := t.Hour(); {
	case h < 12:
		return MascotMorning
	case h < 17:
		return MascotAfternoon
	default:
		return MascotEvening
	}
}

// Greeting returns the salutation shown next to the mascot.
func (v MascotVariant) Greeting() string {
	switch v {
	case MascotMorning:
		return "Good morning!"
	case MascotAfternoon:
		return "Good afternoon!"
	default:
		return "Good evening!"
	}
}

// RenderMascot returns the mascot art for the given variant.
func RenderMascot(v MascotVariant) string {
	art := mascotMorning
	fg := theme.Primary

	switch v {
	case MascotAfternoon:
		art = mascotAfternoon
		fg = theme.Secondary
	case MascotEvening:
		art = mascotEvening
		fg = theme.Accent
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
