package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/edupath/internal/ui/theme"
)

const bannerArt = `
 ███████╗██████╗ ██╗   ██╗██████╗  █████╗ ████████╗██╗  ██╗
 ██╔════╝██╔══██╗██║   ██║██╔══██╗██╔══██╗╚══██╔══╝██║  ██║
 █████╗  ██║  ██║██║   ██║██████╔╝███████║   ██║   ███████║
 ██╔══╝  ██║  ██║██║   ██║██╔═══╝ ██╔══██║   ██║   ██╔══██║
 ███████╗██████╔╝╚██████╔╝██║     ██║  ██║   ██║   ██║  ██║
 ╚══════╝╚═════╝  ╚═════╝ ╚═╝     ╚═╝  ╚═╝   ╚═╝   ╚═╝  ╚═╝`

const bannerCompact = "E D U P A T H"

// bannerMinWidth is the narrowest area the block-letter banner fits in.
const bannerMinWidth = 62

// RenderBanner returns the banner in the primary colour, or a spaced-out
// word when the area is too narrow.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerMinWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
