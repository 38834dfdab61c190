package tui

import (
	"time"

	"folio-cli/internal/site"
	"folio-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

type focusArea int

const (
	focusPage focusArea = iota
	focusTrigger
	focusPaletteInput
	focusContact
)

func (f focusArea) String() string {
	switch f {
	case focusTrigger:
		return "trigger"
	case focusPaletteInput:
		return "palette"
	case focusContact:
		return "contact"
	default:
		return "page"
	}
}

// frameInterval is one animation frame at ~60fps.
const frameInterval = time.Second / 60

type frameMsg time.Time

// paletteFlushMsg runs the palette's deferred callbacks once the current
// update has been rendered.
type paletteFlushMsg struct{}

type minibufferDoneMsg struct{ seq int }

type contentMsg struct {
	content site.Content
	err     error
}

type inboxSavedMsg struct {
	req store.ContactRequest
	err error
}

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func flushPalette() tea.Msg { return paletteFlushMsg{} }

func waitForContent(ch <-chan contentMsg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}
