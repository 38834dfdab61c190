package tui

import (
	"folio-cli/internal/palette"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	Palette  key.Binding
	Trigger  key.Binding
	Focus    key.Binding
	Down     key.Binding
	Up       key.Binding
	Enter    key.Binding
	Escape   key.Binding
	Quit     key.Binding
	Refresh  key.Binding
	Contact  key.Binding
	Top      key.Binding
	Bottom   key.Binding
	PageDown key.Binding
	PageUp   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Palette:  key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("ctrl+k", "palette")),
		Trigger:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Focus:    key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "focus")),
		Down:     key.NewBinding(key.WithKeys("down", "ctrl+n", "j")),
		Up:       key.NewBinding(key.WithKeys("up", "ctrl+p", "k")),
		Enter:    key.NewBinding(key.WithKeys("enter")),
		Escape:   key.NewBinding(key.WithKeys("esc")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh log")),
		Contact:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "contact")),
		Top:      key.NewBinding(key.WithKeys("g", "home")),
		Bottom:   key.NewBinding(key.WithKeys("G", "end")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", " ")),
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
	}
}

// paletteKey maps a key event onto the palette's inputs. While the palette
// is open j/k are text, so only arrows and ctrl+n/p move the selection.
func (k keyMap) paletteKey(msg tea.KeyMsg) palette.Key {
	switch msg.String() {
	case "ctrl+k":
		return palette.KeyShortcut
	case "down", "ctrl+n":
		return palette.KeyDown
	case "up", "ctrl+p":
		return palette.KeyUp
	case "enter":
		return palette.KeyEnter
	case "esc":
		return palette.KeyEscape
	}
	return palette.KeyNone
}

func (k keyMap) helpLine() string {
	out := ""
	for i, b := range []key.Binding{k.Palette, k.Focus, k.Refresh, k.Contact, k.Quit} {
		if i > 0 {
			out += "  "
		}
		h := b.Help()
		out += h.Key + " " + h.Desc
	}
	return out
}
