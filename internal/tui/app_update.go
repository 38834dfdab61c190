package tui

import (
	"context"
	"strings"
	"time"

	"folio-cli/internal/palette"
	"folio-cli/internal/site"
	"folio-cli/internal/store"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	mm, cmd := m.update(msg)
	next := mm.(appModel)
	if next.pal.IsOpen() {
		next.paletteStart = next.paletteBox().start
	}
	return next, cmd
}

func (m appModel) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case frameMsg:
		m.now = time.Time(msg)
		m.frame++
		m.gridOffset = m.grid.Advance(m.gridOffset)
		cmd := m.apply(m.sched.Flush())
		m.rebuildPage()
		return m, tea.Batch(frameTick(), cmd)

	case paletteFlushMsg:
		return m, m.apply(m.sched.Flush())

	case minibufferDoneMsg:
		if msg.seq == m.minibufferSeq {
			m.minibufferText = ""
		}
		return m, nil

	case urlOpenDoneMsg:
		if msg.err != nil {
			m.logger.Warn("open external link", zap.String("url", msg.url), zap.Error(msg.err))
			return m, m.showMinibuffer("Could not open " + msg.url + ": " + msg.err.Error())
		}
		return m, nil

	case inboxSavedMsg:
		if msg.err != nil {
			m.logger.Error("store contact request", zap.Error(msg.err))
			return m, m.showMinibuffer("Could not save request: " + msg.err.Error())
		}
		m.logger.Info("contact request stored", zap.String("id", msg.req.ID), zap.String("source", msg.req.Source))
		return m, nil

	case contentMsg:
		next := waitForContent(m.reloads)
		if msg.err != nil {
			m.logger.Warn("content reload failed", zap.Error(msg.err))
			return m, tea.Batch(next, m.showMinibuffer("Content reload failed: "+msg.err.Error()))
		}
		if m.pal.IsOpen() {
			c := msg.content
			m.pendingContent = &c
			return m, next
		}
		m.setContent(msg.content)
		return m, tea.Batch(next, m.showMinibuffer("Content reloaded"))

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m appModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// The palette listens on the global key stream; the shortcut works from
	// any focus, including the contact field.
	if pk := m.keys.paletteKey(msg); pk == palette.KeyShortcut || m.pal.IsOpen() {
		if pk != palette.KeyNone {
			return m, m.apply(m.pal.HandleKey(pk))
		}
		if m.focus != focusPaletteInput {
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.pal.Input(m.input.Value())
		return m, cmd
	}

	switch m.focus {
	case focusContact:
		switch {
		case key.Matches(msg, m.keys.Enter):
			return m, m.submitContact()
		case key.Matches(msg, m.keys.Escape):
			m.email.Blur()
			m.focus = focusPage
			return m, nil
		case key.Matches(msg, m.keys.Focus):
			m.email.Blur()
			m.focus = focusPage
			return m, nil
		}
		var cmd tea.Cmd
		m.email, cmd = m.email.Update(msg)
		m.contactErr = ""
		return m, cmd

	case focusTrigger:
		switch msg.String() {
		case "enter", " ":
			return m, m.apply(m.pal.Activate())
		case "esc":
			m.focus = focusPage
			return m, nil
		case "tab":
			m.location = "#" + site.SectionContact
			m.scrollTo(site.SectionContact)
			m.focus = focusContact
			return m, m.email.Focus()
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Trigger):
		return m, m.apply(m.pal.Activate())
	case key.Matches(msg, m.keys.Focus):
		m.focus = focusTrigger
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		m.refreshActivity()
		return m, nil
	case key.Matches(msg, m.keys.Contact):
		m.navigate("#" + site.SectionContact)
		m.focus = focusContact
		return m, m.email.Focus()
	case key.Matches(msg, m.keys.Down):
		m.page.LineDown(1)
	case key.Matches(msg, m.keys.Up):
		m.page.LineUp(1)
	case key.Matches(msg, m.keys.PageDown):
		m.page.ViewDown()
	case key.Matches(msg, m.keys.PageUp):
		m.page.ViewUp()
	case key.Matches(msg, m.keys.Top):
		m.page.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.page.GotoBottom()
	}
	return m, nil
}

// apply carries out palette effects against the terminal UI.
func (m *appModel) apply(effects []palette.Effect) tea.Cmd {
	var cmds []tea.Cmd
	for _, e := range effects {
		m.logger.Debug("palette effect", zap.Stringer("effect", e))
		switch e.Kind {
		case palette.EffectShow:
			m.paletteStart = 0
			m.email.Blur()
			m.input.Reset()
			m.input.Blur()
			m.hoverCard = -1
		case palette.EffectHide:
			m.input.Blur()
			if m.pendingContent != nil {
				c := *m.pendingContent
				m.pendingContent = nil
				m.setContent(c)
			}
		case palette.EffectFocusInput:
			m.focus = focusPaletteInput
			cmds = append(cmds, m.input.Focus())
		case palette.EffectFocusTrigger:
			m.focus = focusTrigger
		case palette.EffectNavigate:
			m.navigate(e.Target)
		case palette.EffectOpenExternal:
			m.logger.Info("open external link", zap.String("url", e.Target))
			cmds = append(cmds, openURL(e.Target), m.showMinibuffer("Opening "+e.Target))
		}
	}
	if m.sched.Pending() > 0 {
		cmds = append(cmds, flushPalette)
	}
	return tea.Batch(cmds...)
}

// navigate is the terminal's location.hash: it records the anchor and
// scrolls its section into view. Unknown anchors only update the location.
func (m *appModel) navigate(anchor string) {
	anchor = palette.NormalizeAnchor(anchor)
	if anchor == "" {
		return
	}
	m.location = anchor
	if !m.scrollTo(strings.TrimPrefix(anchor, "#")) {
		m.logger.Debug("navigate to unknown section", zap.String("anchor", anchor))
	}
}

func (m *appModel) scrollTo(id string) bool {
	line, ok := m.layout.anchors[id]
	if !ok {
		return false
	}
	m.page.SetYOffset(line)
	return true
}

func (m *appModel) refreshActivity() {
	m.events = site.Shuffle(m.content.Events, m.rng)
	m.spinUntil = m.clock().Add(site.SpinFor)
	m.rebuildPage()
}

func (m *appModel) submitContact() tea.Cmd {
	now := m.clock()
	email, ok, err := m.contact.Submit(m.email.Value(), now)
	if err != nil {
		m.contactErr = err.Error()
		return nil
	}
	if !ok {
		return nil
	}
	m.contactErr = ""
	m.email.Reset()
	m.rebuildPage()
	return saveContactRequest(m.ctx, m.inbox, email, now)
}

func saveContactRequest(ctx context.Context, inbox *store.Inbox, email string, now time.Time) tea.Cmd {
	if inbox == nil {
		return nil
	}
	return func() tea.Msg {
		req, err := inbox.Add(ctx, email, store.SourceTUI, now)
		return inboxSavedMsg{req: req, err: err}
	}
}

func (m appModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.pal.IsOpen() {
		box := m.paletteBox()
		row, onRow := box.rowAt(msg.X, msg.Y)
		switch msg.Action {
		case tea.MouseActionMotion:
			if onRow {
				m.pal.Hover(row)
			}
		case tea.MouseActionPress:
			if msg.Button != tea.MouseButtonLeft {
				return m, nil
			}
			if onRow {
				return m, m.apply(m.pal.Click(row))
			}
			if !box.contains(msg.X, msg.Y) {
				return m, m.apply(m.pal.Backdrop())
			}
		}
		return m, nil
	}

	hdr := m.headerLayout()
	switch msg.Action {
	case tea.MouseActionMotion:
		m.contact.Hover(msg.Y == 0 && hdr.onBadge(msg.X))
		m.tiltCardAt(msg.X, msg.Y)
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.page.LineUp(3)
		case tea.MouseButtonWheelDown:
			m.page.LineDown(3)
		case tea.MouseButtonLeft:
			if msg.Y == 0 && hdr.onTrigger(msg.X) {
				return m, m.apply(m.pal.Activate())
			}
			if line, ok := m.pageLine(msg.Y); ok {
				if line == m.layout.emailLine {
					m.focus = focusContact
					return m, m.email.Focus()
				}
				if i := m.layout.cardAt(msg.X, line); i >= 0 {
					if u := strings.TrimSpace(m.content.Projects[i].URL); u != "" {
						return m, tea.Batch(openURL(u), m.showMinibuffer("Opening "+u))
					}
				}
			}
		}
	}
	return m, nil
}

// pageLine maps a screen row onto a line of the page content.
func (m appModel) pageLine(y int) (int, bool) {
	if y < headerHeight || y >= headerHeight+m.page.Height {
		return 0, false
	}
	return y - headerHeight + m.page.YOffset, true
}

func (m *appModel) tiltCardAt(x, y int) {
	m.hoverCard = -1
	m.tiltX, m.tiltY = 0, 0
	line, ok := m.pageLine(y)
	if !ok {
		return
	}
	i := m.layout.cardAt(x, line)
	if i < 0 {
		return
	}
	m.hoverCard = i
	m.tiltX, m.tiltY = site.Tilt(m.layout.cards[i], float64(x)+0.5, float64(line)+0.5)
}
