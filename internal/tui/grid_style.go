package tui

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// gridLevels is how many fade steps each grid color is quantized into.
const gridLevels = 6

var (
	gridStylesMu   sync.Mutex
	gridStylesDark *bool
	gridStylesMemo []lipgloss.Style
)

// gridStyles returns vertical-line styles followed by horizontal-line styles,
// gridLevels each, from faint to full strength.
func gridStyles() []lipgloss.Style {
	dark := lipgloss.HasDarkBackground()

	gridStylesMu.Lock()
	defer gridStylesMu.Unlock()
	if gridStylesDark != nil && *gridStylesDark == dark {
		return gridStylesMemo
	}

	bgHex := gridLightBgHex
	if dark {
		bgHex = gridDarkBgHex
	}
	bg, _ := colorful.Hex(bgHex)
	out := make([]lipgloss.Style, 0, 2*gridLevels)
	for _, hex := range []string{gridPrimaryHex, gridSecondaryHex} {
		fg, _ := colorful.Hex(hex)
		for lvl := 0; lvl < gridLevels; lvl++ {
			// Lines never fade out completely; the far end keeps a quarter.
			t := 0.25 + 0.75*float64(lvl)/float64(gridLevels-1)
			c := bg.BlendRgb(fg, t)
			out = append(out, lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())))
		}
	}
	gridStylesDark = &dark
	gridStylesMemo = out
	return out
}
