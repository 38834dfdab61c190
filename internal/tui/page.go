package tui

import (
	"math"
	"strings"

	"folio-cli/internal/site"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

const (
	heroRows  = 9
	cellPxW   = 8.0
	cellPxH   = 16.0
	cardWidth = 34
	cardGap   = 2
)

// pageLayout is where things landed on the last page render, in page-content
// coordinates (x = column, y = line).
type pageLayout struct {
	anchors   map[string]int
	cards     []site.Rect
	emailLine int
	lines     int
}

// cardAt returns the project index under (x, line), or -1.
func (l pageLayout) cardAt(x, line int) int {
	for i, r := range l.cards {
		if r.Contains(float64(x)+0.5, float64(line)+0.5) {
			return i
		}
	}
	return -1
}

type pageBuilder struct {
	lines  []string
	layout pageLayout
}

func (b *pageBuilder) add(block string) {
	if block == "" {
		b.lines = append(b.lines, "")
		return
	}
	b.lines = append(b.lines, strings.Split(block, "\n")...)
}

func (b *pageBuilder) addMarkdown(md string, w int) {
	if out := renderMarkdown(md, w); out != "" {
		b.add(out)
	}
}

func (b *pageBuilder) next() int { return len(b.lines) }

// rebuildPage renders the page into the viewport. It runs every frame, so
// the expensive parts (markdown) are cached.
func (m *appModel) rebuildPage() {
	if m.width <= 0 {
		return
	}
	w := m.width
	b := &pageBuilder{layout: pageLayout{anchors: map[string]int{}, emailLine: -1}}

	for i, sec := range m.content.Sections {
		if i > 0 {
			b.add("")
		}
		b.layout.anchors[sec.ID] = b.next()
		switch sec.ID {
		case site.SectionHero:
			m.renderHero(b, sec, w)
		case site.SectionProjects:
			b.add(sectionHeading(sec))
			b.addMarkdown(sec.Body, w)
			m.renderProjects(b, w)
		case site.SectionActivity:
			b.add(m.activityHeading(sec))
			b.addMarkdown(sec.Body, w)
			m.renderActivity(b, w)
		case site.SectionContact:
			m.renderContact(b, sec, w)
		default:
			b.add(sectionHeading(sec))
			b.addMarkdown(sec.Body, w)
		}
	}

	b.layout.lines = len(b.lines)
	m.layout = b.layout
	m.page.SetContent(strings.Join(b.lines, "\n"))
}

func sectionHeading(sec site.Section) string {
	title := sec.Title
	if strings.TrimSpace(title) == "" {
		title = sec.ID
	}
	return styleHeading().Render(strings.ToUpper(title)) + "  " + styleMuted().Render("#"+sec.ID)
}

func (m *appModel) renderHero(b *pageBuilder, sec site.Section, w int) {
	banner := renderGrid(m.grid.Raster(m.gridOffset, w, heroRows, cellPxW, cellPxH))

	hero := m.content.Hero
	var text []string
	if hero.Eyebrow != "" {
		text = append(text, styleAccent().Render(hero.Eyebrow))
	}
	if hero.Headline != "" {
		text = append(text, styleHeading().Render(hero.Headline))
	}
	if hero.Lede != "" {
		text = append(text, styleMuted().Render(hero.Lede))
	}
	if len(text) > 0 {
		block := lipgloss.NewStyle().Padding(0, 2).Render(strings.Join(text, "\n"))
		bw := lipgloss.Width(block)
		if bw > w {
			bw = w
		}
		y := (heroRows - len(text)) / 2
		banner = overlay(banner, normalizePane(block, bw, len(text)), (w-bw)/2, y)
	}
	b.add(banner)
	b.add("")
	b.add(m.renderMetrics(w))
	if sec.Body != "" {
		b.add("")
		b.addMarkdown(sec.Body, w)
	}
}

func (m *appModel) renderMetrics(w int) string {
	elapsed := m.now.Sub(m.startedAt)
	cell := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 2)
	var cards []string
	for i, mt := range m.content.Metrics {
		if i > 0 {
			cards = append(cards, strings.Repeat(" ", cardGap))
		}
		v := lipgloss.NewStyle().Bold(true).Foreground(colorSignal).Render(mt.ValueAt(elapsed))
		cards = append(cards, cell.Render(v+"\n"+styleMuted().Render(mt.Label)))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	return normalizePane(row, w, lipgloss.Height(row))
}

func (m *appModel) renderProjects(b *pageBuilder, w int) {
	projects := m.content.Projects
	if len(projects) == 0 {
		return
	}
	perRow := (w + cardGap) / (cardWidth + cardGap)
	if perRow < 1 {
		perRow = 1
	}
	cw := cardWidth
	if cw > w {
		cw = w
	}

	b.add("")
	for start := 0; start < len(projects); start += perRow {
		end := start + perRow
		if end > len(projects) {
			end = len(projects)
		}
		var rendered []string
		height := 0
		for i := start; i < end; i++ {
			card := m.renderCard(i, projects[i], cw)
			rendered = append(rendered, card)
			if h := lipgloss.Height(card); h > height {
				height = h
			}
		}
		top := b.next()
		var parts []string
		for j, card := range rendered {
			if j > 0 {
				parts = append(parts, strings.Repeat(" ", cardGap))
			}
			parts = append(parts, normalizePane(card, cw, height))
			b.layout.cards = append(b.layout.cards, site.Rect{
				X: float64(j * (cw + cardGap)),
				Y: float64(top),
				W: float64(cw),
				H: float64(height),
			})
		}
		b.add(lipgloss.JoinHorizontal(lipgloss.Top, parts...))
		if end < len(projects) {
			b.add("")
		}
	}
}

func (m *appModel) renderCard(i int, p site.Project, w int) string {
	st := lipgloss.NewStyle().
		Border(cardBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1).
		Width(w - 2)
	title := styleHeading().Render(p.Title)
	if i == m.hoverCard {
		st = st.BorderForeground(colorAccent)
		title += " " + styleAccent().Render(leanGlyph(m.tiltX, m.tiltY))
	}
	lines := []string{title, p.Summary}
	if len(p.Tags) > 0 {
		tags := make([]string, len(p.Tags))
		for j, t := range p.Tags {
			tags[j] = "#" + t
		}
		lines = append(lines, styleMuted().Render(strings.Join(tags, " ")))
	}
	if p.URL != "" {
		lines = append(lines, styleMuted().Render(xansi.Truncate(p.URL, w-4, "…")))
	}
	return st.Render(strings.Join(lines, "\n"))
}

func cardBorder() lipgloss.Border {
	if glyphs() == glyphSetASCII {
		return lipgloss.Border{
			Top: "-", Bottom: "-", Left: "|", Right: "|",
			TopLeft: "+", TopRight: "+", BottomLeft: "+", BottomRight: "+",
		}
	}
	return lipgloss.RoundedBorder()
}

// leanGlyph points the way a tilted card leans: rotateY tips it left or
// right, rotateX up or down.
func leanGlyph(rotX, rotY float64) string {
	const dead = site.MaxTilt / 3
	col, row := 1, 1
	if rotY > dead {
		col = 2
	} else if rotY < -dead {
		col = 0
	}
	if rotX > dead {
		row = 0
	} else if rotX < -dead {
		row = 2
	}
	if glyphs() == glyphSetASCII {
		return [3][3]string{{`\`, "^", "/"}, {"<", ".", ">"}, {"/", "v", `\`}}[row][col]
	}
	return [3][3]string{{"↖", "↑", "↗"}, {"←", "·", "→"}, {"↙", "↓", "↘"}}[row][col]
}

func (m *appModel) activityHeading(sec site.Section) string {
	icon := "↻"
	if glyphs() == glyphSetASCII {
		icon = "@"
	}
	if m.clock().Before(m.spinUntil) {
		frames := g().spinner
		icon = frames[m.frame%len(frames)]
	}
	return sectionHeading(sec) + "  " + styleAccent().Render(icon) + styleMuted().Render(" r refresh")
}

func (m *appModel) renderActivity(b *pageBuilder, w int) {
	for _, ev := range m.events {
		b.add(fitLine(styleAccent().Render(g().bullet)+" "+ev.Message, w))
		b.add(fitLine("  "+styleMuted().Render(strings.ReplaceAll(ev.StatusLine(), "·", g().sep)), w))
	}
}

func (m *appModel) renderContact(b *pageBuilder, sec site.Section, w int) {
	copyText := m.content.Contact
	head := sec
	if copyText.Heading != "" {
		head.Title = copyText.Heading
	}
	b.add(sectionHeading(head))
	b.addMarkdown(sec.Body, w)
	b.add("")

	fieldW := 48
	if fieldW > w-12 {
		fieldW = w - 12
	}
	now := m.clock()
	button := styleSelected().Render(" Send ")
	if m.contact.Submitted(now) {
		button = lipgloss.NewStyle().Foreground(colorSignal).Render(checkGlyph() + " Sent")
	}
	b.layout.emailLine = b.next()
	prefix := "  "
	if m.focus == focusContact {
		prefix = styleAccent().Render(g().pointer) + " "
	}
	b.add(prefix + renderInputLine(fieldW, m.email.View()) + "  " + button)
	if m.contactErr != "" {
		b.add("  " + lipgloss.NewStyle().Foreground(colorError).Render(m.contactErr))
	}
}

func checkGlyph() string {
	if glyphs() == glyphSetASCII {
		return "ok"
	}
	return "✓"
}

// renderGrid draws rasterized grid cells, batching runs that share a style.
func renderGrid(cells [][]site.Cell) string {
	styles := gridStyles()
	var out strings.Builder
	for r, row := range cells {
		if r > 0 {
			out.WriteByte('\n')
		}
		var run strings.Builder
		runStyle := -1
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runStyle < 0 {
				out.WriteString(run.String())
			} else {
				out.WriteString(styles[runStyle].Render(run.String()))
			}
			run.Reset()
		}
		for _, c := range row {
			glyph, style := " ", -1
			if !c.Empty() {
				glyph, style = gridCell(c)
			}
			if style != runStyle {
				flush()
				runStyle = style
			}
			run.WriteString(glyph)
		}
		flush()
	}
	return out.String()
}

// gridCell picks the glyph and the style index (kind*levels + fade level).
func gridCell(c site.Cell) (string, int) {
	gl := g()
	level := int(math.Round(c.Fade * float64(gridLevels-1)))
	if level < 0 {
		level = 0
	}
	if level >= gridLevels {
		level = gridLevels - 1
	}
	switch {
	case c.Vertical && c.Horizontal:
		return gl.gridX, level
	case c.Vertical:
		return gl.gridV, level
	default:
		return gl.gridH, gridLevels + level
	}
}
