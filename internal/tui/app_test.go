package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	"folio-cli/internal/palette"
	"folio-cli/internal/site"
	"folio-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

var testNow = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func newTestModel(t *testing.T, opts Options) appModel {
	t.Helper()
	if opts.Content.Brand == "" {
		opts.Content = site.Default()
	}
	if opts.clock == nil {
		opts.clock = func() time.Time { return testNow }
	}
	opts.seed = 7
	m := newAppModel(context.Background(), opts)
	return send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
}

func send(t *testing.T, m appModel, msg tea.Msg) appModel {
	t.Helper()
	mm, _ := m.Update(msg)
	out, ok := mm.(appModel)
	if !ok {
		t.Fatalf("Update returned %T", mm)
	}
	return out
}

func sendCmd(t *testing.T, m appModel, msg tea.Msg) (appModel, tea.Cmd) {
	t.Helper()
	mm, cmd := m.Update(msg)
	return mm.(appModel), cmd
}

func keyRunes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	keyCtrlK = tea.KeyMsg{Type: tea.KeyCtrlK}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
)

// openPalette presses the shortcut and lets the deferred focus run.
func openPalette(t *testing.T, m appModel) appModel {
	t.Helper()
	m = send(t, m, keyCtrlK)
	return send(t, m, paletteFlushMsg{})
}

func stubOpenURL(t *testing.T) *[]string {
	t.Helper()
	var opened []string
	prev := openURL
	openURL = func(u string) tea.Cmd {
		opened = append(opened, u)
		return nil
	}
	t.Cleanup(func() { openURL = prev })
	return &opened
}

func TestShortcutOpensPaletteAndFocusesInputOnNextFrame(t *testing.T) {
	m := newTestModel(t, Options{})

	m, cmd := sendCmd(t, m, keyCtrlK)
	if !m.pal.IsOpen() {
		t.Fatalf("expected palette open")
	}
	if m.focus == focusPaletteInput || m.input.Focused() {
		t.Fatalf("input focused before the deferred callback ran")
	}
	if cmd == nil {
		t.Fatalf("expected a flush command")
	}

	m = send(t, m, paletteFlushMsg{})
	if m.focus != focusPaletteInput || !m.input.Focused() {
		t.Fatalf("focus=%v focused=%v; want palette input", m.focus, m.input.Focused())
	}
	if v := m.View(); !strings.Contains(v, "Command palette") || !strings.Contains(v, "Open GitHub") {
		t.Fatalf("palette not rendered:\n%s", v)
	}
}

func TestFrameFlushesDeferredFocus(t *testing.T) {
	m := newTestModel(t, Options{})
	m = send(t, m, keyCtrlK)
	m = send(t, m, frameMsg(testNow))
	if !m.input.Focused() {
		t.Fatalf("expected frame to flush deferred focus")
	}
}

func TestTypingFiltersAndEnterOpensExternalLink(t *testing.T) {
	opened := stubOpenURL(t)
	m := openPalette(t, newTestModel(t, Options{}))

	m = send(t, m, keyRunes("git"))
	if got := m.pal.Session().Filter; got != "git" {
		t.Fatalf("filter=%q", got)
	}
	rows := m.pal.Rows()
	if len(rows) != 1 || rows[0].Title != "Open GitHub" || !rows[0].Selected {
		t.Fatalf("rows=%+v", rows)
	}

	m = send(t, m, keyEnter)
	if m.pal.IsOpen() {
		t.Fatalf("expected palette closed")
	}
	if m.focus != focusTrigger {
		t.Fatalf("focus=%v; want trigger", m.focus)
	}
	if len(*opened) != 1 || (*opened)[0] != "https://github.com" {
		t.Fatalf("opened=%v", *opened)
	}
	if m.location != "" {
		t.Fatalf("external link changed location to %q", m.location)
	}
}

func TestEnterNavigatesToSection(t *testing.T) {
	opened := stubOpenURL(t)
	m := newTestModel(t, Options{})
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 20})
	m = openPalette(t, m)

	m = send(t, m, keyRunes("work"))
	m = send(t, m, keyEnter)
	if m.location != "#projects" {
		t.Fatalf("location=%q", m.location)
	}
	want := minInt(m.layout.anchors[site.SectionProjects], m.layout.lines-m.page.Height)
	if want <= 0 || m.page.YOffset != want {
		t.Fatalf("YOffset=%d; want %d", m.page.YOffset, want)
	}
	if len(*opened) != 0 {
		t.Fatalf("internal action opened %v", *opened)
	}
}

func TestNoMatchesEnterDoesNothing(t *testing.T) {
	m := openPalette(t, newTestModel(t, Options{}))
	m = send(t, m, keyRunes("zzz"))
	rows := m.pal.Rows()
	if len(rows) != 1 || !rows[0].Placeholder || rows[0].Title != palette.NoMatches {
		t.Fatalf("rows=%+v", rows)
	}
	m = send(t, m, keyEnter)
	if !m.pal.IsOpen() {
		t.Fatalf("enter with no matches closed the palette")
	}
	if !strings.Contains(m.View(), palette.NoMatches) {
		t.Fatalf("placeholder not rendered")
	}
}

func TestEscapeClosesAndFocusesTrigger(t *testing.T) {
	m := openPalette(t, newTestModel(t, Options{}))
	m = send(t, m, keyDown)
	m = send(t, m, keyEsc)
	if m.pal.IsOpen() || m.focus != focusTrigger || m.input.Focused() {
		t.Fatalf("open=%v focus=%v focused=%v", m.pal.IsOpen(), m.focus, m.input.Focused())
	}

	// Reopening starts from a clean session.
	m = openPalette(t, m)
	if s := m.pal.Session(); s.Active != 0 || s.Filter != "" || m.input.Value() != "" {
		t.Fatalf("session not reset: %+v input=%q", s, m.input.Value())
	}
}

func TestShortcutTogglesClosed(t *testing.T) {
	m := openPalette(t, newTestModel(t, Options{}))
	m = send(t, m, keyCtrlK)
	if m.pal.IsOpen() {
		t.Fatalf("second shortcut should close")
	}
}

func TestTabFocusesTriggerAndEnterActivates(t *testing.T) {
	m := newTestModel(t, Options{})
	m = send(t, m, keyTab)
	if m.focus != focusTrigger {
		t.Fatalf("focus=%v", m.focus)
	}
	m = send(t, m, keyEnter)
	if !m.pal.IsOpen() {
		t.Fatalf("trigger enter should open the palette")
	}
}

func TestSlashActivatesPalette(t *testing.T) {
	m := newTestModel(t, Options{})
	m = send(t, m, keyRunes("/"))
	if !m.pal.IsOpen() {
		t.Fatalf("expected palette open")
	}
	// Typed text goes to the filter, not the page shortcuts.
	m = send(t, m, paletteFlushMsg{})
	m = send(t, m, keyRunes("q"))
	if !m.pal.IsOpen() || m.pal.Session().Filter != "q" {
		t.Fatalf("open=%v filter=%q", m.pal.IsOpen(), m.pal.Session().Filter)
	}
}

func TestArrowKeysIgnoredByClosedPalette(t *testing.T) {
	m := newTestModel(t, Options{})
	m = send(t, m, keyDown)
	if m.pal.IsOpen() || m.pal.Session().Active != 0 {
		t.Fatalf("closed palette reacted to a key")
	}
}

func TestMouseHoverClickAndBackdrop(t *testing.T) {
	stubOpenURL(t)
	m := openPalette(t, newTestModel(t, Options{}))

	box := m.paletteBox()
	m = send(t, m, tea.MouseMsg{X: box.x + 3, Y: box.rowsY + 2*paletteRowLines, Action: tea.MouseActionMotion})
	if got := m.pal.Session().Active; got != 2 {
		t.Fatalf("hover active=%d; want 2", got)
	}

	m = send(t, m, tea.MouseMsg{X: box.x + 3, Y: box.rowsY + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.pal.IsOpen() || m.location != "#contact" {
		t.Fatalf("click row 0: open=%v location=%q", m.pal.IsOpen(), m.location)
	}

	m = openPalette(t, m)
	m = send(t, m, tea.MouseMsg{X: box.x + 3, Y: box.y + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if !m.pal.IsOpen() {
		t.Fatalf("click inside the dialog should not dismiss")
	}
	m = send(t, m, tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.pal.IsOpen() || m.focus != focusTrigger {
		t.Fatalf("backdrop: open=%v focus=%v", m.pal.IsOpen(), m.focus)
	}
}

func TestHeaderTriggerClickOpensPalette(t *testing.T) {
	m := newTestModel(t, Options{})
	hdr := m.headerLayout()
	m = send(t, m, tea.MouseMsg{X: hdr.triggerX0 + 1, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if !m.pal.IsOpen() {
		t.Fatalf("expected palette open")
	}
}

func TestBadgeHoverShowsLatency(t *testing.T) {
	m := newTestModel(t, Options{})
	hdr := m.headerLayout()
	m = send(t, m, tea.MouseMsg{X: hdr.badgeX0, Y: 0, Action: tea.MouseActionMotion})
	if got := m.contact.Status(testNow); got != site.StatusLatency {
		t.Fatalf("status=%q", got)
	}
	m = send(t, m, tea.MouseMsg{X: 0, Y: 10, Action: tea.MouseActionMotion})
	if got := m.contact.Status(testNow); got != site.StatusOnline {
		t.Fatalf("status=%q", got)
	}
}

func TestContactSubmitStoresRequest(t *testing.T) {
	ctx := context.Background()
	inbox, err := store.Store{Dir: t.TempDir()}.Open(ctx)
	if err != nil {
		t.Fatalf("open inbox: %v", err)
	}
	t.Cleanup(func() { _ = inbox.Close() })

	m := newTestModel(t, Options{Inbox: inbox})
	m = send(t, m, keyRunes("c"))
	if m.focus != focusContact || m.location != "#contact" {
		t.Fatalf("focus=%v location=%q", m.focus, m.location)
	}
	m = send(t, m, keyRunes(" ada@example.com "))

	m, cmd := sendCmd(t, m, keyEnter)
	if cmd == nil {
		t.Fatalf("expected a store command")
	}
	saved, ok := cmd().(inboxSavedMsg)
	if !ok || saved.err != nil {
		t.Fatalf("saved=%+v ok=%v", saved, ok)
	}
	if saved.req.Email != "ada@example.com" || saved.req.Source != store.SourceTUI {
		t.Fatalf("req=%+v", saved.req)
	}
	if n, err := inbox.Count(ctx); err != nil || n != 1 {
		t.Fatalf("count=%d err=%v", n, err)
	}

	if m.email.Value() != "" {
		t.Fatalf("input not reset: %q", m.email.Value())
	}
	if got := m.contact.Status(testNow); got != site.StatusEngaged {
		t.Fatalf("status=%q", got)
	}
	if v := m.View(); !strings.Contains(v, "Request received") {
		t.Fatalf("toast not rendered:\n%s", v)
	}
}

func TestContactRejectsInvalidEmail(t *testing.T) {
	m := newTestModel(t, Options{})
	m = send(t, m, keyRunes("c"))
	m = send(t, m, keyRunes("not-an-email"))
	m, cmd := sendCmd(t, m, keyEnter)
	if cmd != nil {
		t.Fatalf("invalid email produced a command")
	}
	if m.contactErr != site.ErrInvalidEmail.Error() {
		t.Fatalf("contactErr=%q", m.contactErr)
	}
	if m.contact.Status(testNow) != site.StatusOnline {
		t.Fatalf("status changed on invalid submit")
	}
}

func TestRefreshShufflesActivity(t *testing.T) {
	m := newTestModel(t, Options{})
	m = send(t, m, keyRunes("r"))
	if len(m.events) != site.LogSize {
		t.Fatalf("events=%d", len(m.events))
	}
	known := map[string]bool{}
	for _, ev := range m.content.Events {
		known[ev.Message] = true
	}
	for _, ev := range m.events {
		if !known[ev.Message] {
			t.Fatalf("unknown event %q", ev.Message)
		}
	}
	if !m.spinUntil.Equal(testNow.Add(site.SpinFor)) {
		t.Fatalf("spinUntil=%v", m.spinUntil)
	}
}

func TestFrameAdvancesGridAndCounters(t *testing.T) {
	m := newTestModel(t, Options{})
	before := m.View()
	m, cmd := sendCmd(t, m, frameMsg(testNow.Add(site.CountDuration)))
	if cmd == nil {
		t.Fatalf("frame must schedule the next frame")
	}
	if want := m.grid.Advance(0); m.gridOffset != want {
		t.Fatalf("gridOffset=%v; want %v", m.gridOffset, want)
	}
	after := m.View()
	if before == after {
		t.Fatalf("frame did not change the page")
	}
	if !strings.Contains(after, m.content.Metrics[0].Final()) {
		t.Fatalf("counter not at final value")
	}
}

func TestContentReloadWaitsForPaletteToClose(t *testing.T) {
	m := openPalette(t, newTestModel(t, Options{}))

	next := site.Default()
	next.Brand = "southwind.dev"
	next.Actions = next.Actions[:1]
	m = send(t, m, contentMsg{content: next})
	if m.content.Brand != "northwind.dev" || m.pendingContent == nil {
		t.Fatalf("content swapped while palette open")
	}

	m = send(t, m, keyEsc)
	if m.content.Brand != "southwind.dev" || m.pendingContent != nil {
		t.Fatalf("pending content not applied: %q", m.content.Brand)
	}
	if got := len(m.pal.Actions()); got != 1 {
		t.Fatalf("actions=%d", got)
	}
}

func TestHoverOnScrolledPaletteKeepsRowUnderPointer(t *testing.T) {
	m := newTestModel(t, Options{})
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 13})
	m = openPalette(t, m)

	for i := 0; i < 3; i++ {
		m = send(t, m, keyDown)
	}
	box := m.paletteBox()
	if box.count != 2 || box.start != 2 || m.pal.Session().Active != 3 {
		t.Fatalf("count=%d start=%d active=%d; want 2, 2, 3", box.count, box.start, m.pal.Session().Active)
	}

	// Repeated motion over the top visible row must not walk the window up.
	for i := 0; i < 3; i++ {
		m = send(t, m, tea.MouseMsg{X: box.x + 3, Y: box.rowsY, Action: tea.MouseActionMotion})
		now := m.paletteBox()
		under, ok := now.rowAt(box.x+3, box.rowsY)
		if !ok {
			t.Fatalf("motion %d: no row under pointer", i)
		}
		if active := m.pal.Session().Active; active != 2 || under != active {
			t.Fatalf("motion %d: active=%d rowUnderPointer=%d start=%d; want 2", i, active, under, now.start)
		}
	}

	// Moving past the window edge scrolls it by one.
	m = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if got := m.paletteBox().start; got != 0 || m.pal.Session().Active != 0 {
		t.Fatalf("start=%d active=%d; want 0, 0", got, m.pal.Session().Active)
	}
}

func TestReopenResetsPaletteScroll(t *testing.T) {
	m := newTestModel(t, Options{})
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 13})
	m = openPalette(t, m)
	for i := 0; i < 3; i++ {
		m = send(t, m, keyDown)
	}
	m = send(t, m, keyEsc)
	m = openPalette(t, m)
	if m.paletteStart != 0 || m.paletteBox().start != 0 {
		t.Fatalf("paletteStart=%d; want 0 after reopen", m.paletteStart)
	}
}
