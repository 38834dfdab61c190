package tui

import (
	"strings"

	"folio-cli/internal/palette"
	"folio-cli/internal/site"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

func (m appModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	base := strings.Join([]string{m.renderHeader(), m.page.View(), m.renderFooter()}, "\n")
	base = normalizePane(base, m.width, m.height)
	base = m.overlayToasts(base)
	if m.pal.IsOpen() {
		box := m.paletteBox()
		base = overlay(dim(base), m.renderPalette(box), box.x, box.y)
	}
	return base
}

type headerLayout struct {
	badgeX0, badgeX1     int
	triggerX0, triggerX1 int
}

func (h headerLayout) onBadge(x int) bool   { return x >= h.badgeX0 && x < h.badgeX1 }
func (h headerLayout) onTrigger(x int) bool { return x >= h.triggerX0 && x < h.triggerX1 }

func (m appModel) badgeText() string {
	return g().dot + " " + m.contact.Status(m.clock())
}

func triggerText() string { return "[ ctrl+k  Search ]" }

func (m appModel) headerLayout() headerLayout {
	tw := xansi.StringWidth(triggerText())
	bw := xansi.StringWidth(m.badgeText())
	tx := m.width - tw
	bx := tx - 2 - bw
	return headerLayout{badgeX0: bx, badgeX1: bx + bw, triggerX0: tx, triggerX1: m.width}
}

func (m appModel) renderHeader() string {
	lay := m.headerLayout()

	left := styleHeading().Render(m.content.Brand)
	if m.content.Tagline != "" {
		left += styleMuted().Render(" " + g().sep + " " + m.content.Tagline)
	}
	left = fitLine(left, maxInt(0, lay.badgeX0-1))

	badgeColor := colorSignal
	switch m.contact.Status(m.clock()) {
	case site.StatusEngaged:
		badgeColor = colorAccent
	case site.StatusLatency:
		badgeColor = colorMuted
	}
	badge := lipgloss.NewStyle().Foreground(badgeColor).Render(m.badgeText())

	trigger := styleMuted().Render(triggerText())
	if m.focus == focusTrigger && !m.pal.IsOpen() {
		trigger = lipgloss.NewStyle().Foreground(colorAccentFg).Background(colorAccent).Bold(true).Render(triggerText())
	}

	line := left + " " + badge + "  " + trigger
	rule := styleMuted().Render(strings.Repeat(ruleGlyph(), maxInt(0, m.width)))
	return fitLine(line, m.width) + "\n" + rule
}

func ruleGlyph() string {
	if glyphs() == glyphSetASCII {
		return "-"
	}
	return "─"
}

func (m appModel) renderFooter() string {
	left := m.location
	if left == "" {
		left = "#" + site.SectionHero
	}
	left = styleAccent().Render(left)
	if m.minibufferText != "" {
		left += "  " + m.minibufferText
	}
	right := styleMuted().Render(m.keys.helpLine())
	gap := m.width - xansi.StringWidth(left) - xansi.StringWidth(right)
	if gap < 1 {
		return fitLine(left, m.width)
	}
	return left + strings.Repeat(" ", gap) + right
}

const toastWidth = 44

func (m appModel) overlayToasts(base string) string {
	now := m.clock()
	toasts := m.contact.Toasts(now)
	if len(toasts) == 0 || m.width < toastWidth+2 {
		return base
	}
	var boxes []string
	for _, t := range toasts {
		st := lipgloss.NewStyle().
			Border(cardBorder()).
			BorderForeground(colorSignal).
			Padding(0, 1).
			Width(toastWidth - 2)
		title := styleHeading().Render(t.Title)
		body := t.Body
		if !t.Visible(now) {
			st = st.BorderForeground(colorMuted)
			title = styleMuted().Render(t.Title)
			body = styleMuted().Render(body)
		}
		boxes = append(boxes, st.Render(title+"\n"+body))
	}
	stack := lipgloss.JoinVertical(lipgloss.Right, boxes...)
	h := lipgloss.Height(stack)
	y := m.height - footerHeight - h
	if y < headerHeight {
		y = headerHeight
	}
	return overlay(base, stack, m.width-toastWidth-1, y)
}

// paletteBox is the modal's on-screen geometry. View and the mouse handler
// both derive it from the same inputs so hit-testing matches what is drawn.
type paletteBox struct {
	x, y, w, h int
	start      int
	count      int
	rowsY      int
	rows       []palette.Row
}

const (
	paletteRowLines = 2
	// title, input, blank above rows; blank, help below.
	paletteChromeLines = 5
)

func paletteWidth(width int) int {
	w := 68
	if w > width-4 {
		w = width - 4
	}
	if w < 24 {
		w = minInt(24, width)
	}
	return w
}

func paletteInnerWidth(width int) int { return maxInt(10, paletteWidth(width)-4) }

func (m appModel) paletteBox() paletteBox {
	rows := m.pal.Rows()
	active := m.pal.Session().Active

	maxRows := (m.height - paletteChromeLines - 4) / paletteRowLines
	if maxRows < 1 {
		maxRows = 1
	}
	count := len(rows)
	if count > maxRows {
		count = maxRows
	}
	start := m.paletteStart
	if start > len(rows)-count {
		start = len(rows) - count
	}
	if active < start {
		start = active
	}
	if active >= start+count {
		start = active - count + 1
	}
	if start < 0 {
		start = 0
	}

	w := paletteWidth(m.width)
	h := paletteChromeLines + count*paletteRowLines + 2
	y := (m.height - h) / 3
	if y < 1 {
		y = minInt(1, maxInt(0, m.height-h))
	}
	return paletteBox{
		x:     (m.width - w) / 2,
		y:     y,
		w:     w,
		h:     h,
		start: start,
		count: count,
		rowsY: y + 1 + 3,
		rows:  rows,
	}
}

func (b paletteBox) contains(x, y int) bool {
	return x >= b.x && x < b.x+b.w && y >= b.y && y < b.y+b.h
}

// rowAt returns the action index under (x, y). The empty-state row is not
// an action.
func (b paletteBox) rowAt(x, y int) (int, bool) {
	if x <= b.x || x >= b.x+b.w-1 {
		return 0, false
	}
	rel := y - b.rowsY
	if rel < 0 || rel >= b.count*paletteRowLines {
		return 0, false
	}
	i := b.start + rel/paletteRowLines
	if i >= len(b.rows) || b.rows[i].Placeholder {
		return 0, false
	}
	return b.rows[i].Index, true
}

func (m appModel) renderPalette(box paletteBox) string {
	inner := box.w - 4
	lines := make([]string, 0, paletteChromeLines+box.count*paletteRowLines)

	title := styleHeading().Render("Command palette")
	esc := styleMuted().Render("esc")
	gap := inner - xansi.StringWidth(title) - xansi.StringWidth(esc)
	lines = append(lines, title+strings.Repeat(" ", maxInt(1, gap))+esc)
	lines = append(lines, renderInputLine(inner, m.input.View()))
	lines = append(lines, "")

	for i := box.start; i < box.start+box.count && i < len(box.rows); i++ {
		r := box.rows[i]
		if r.Placeholder {
			lines = append(lines, styleMuted().Render(r.Title), "")
			continue
		}
		title := "  " + r.Title
		desc := "  " + r.Description
		if r.Selected {
			title = styleSelected().Render(fitLine(g().pointer+" "+r.Title, inner))
			desc = lipgloss.NewStyle().Foreground(colorMuted).Background(colorSelectedBg).Render(fitLine(desc, inner))
		} else {
			desc = styleMuted().Render(desc)
		}
		lines = append(lines, title, desc)
	}

	lines = append(lines, "")
	lines = append(lines, styleMuted().Render("↑/↓ move  enter run  esc close"))

	for i := range lines {
		lines[i] = fitLine(lines[i], inner)
	}
	return lipgloss.NewStyle().
		Border(cardBorder()).
		BorderForeground(colorAccent).
		Background(colorSurfaceBg).
		Padding(0, 1).
		Width(box.w - 2).
		Render(strings.Join(lines, "\n"))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
