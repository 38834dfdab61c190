package tui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// normalizePane forces s to be exactly width columns wide (ANSI-aware) and
// height lines tall, so overlays can be spliced in by column.
func normalizePane(s string, width, height int) string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	lines := strings.Split(s, "\n")
	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}
	for i := range lines {
		lines[i] = fitLine(lines[i], width)
	}
	return strings.Join(lines, "\n")
}

func fitLine(ln string, width int) string {
	w := xansi.StringWidth(ln)
	if w > width {
		switch {
		case width <= 0:
			ln = ""
		case width == 1:
			ln = xansi.Cut(ln, 0, 1)
		default:
			ln = xansi.Cut(ln, 0, width-1) + "…"
		}
		w = xansi.StringWidth(ln)
	}
	if w < width {
		ln += strings.Repeat(" ", width-w)
	}
	return ln
}

// overlay splices box onto bg with its top-left corner at (x, y). Both are
// multi-line strings; bg lines are padded as needed.
func overlay(bg, box string, x, y int) string {
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	bgLines := strings.Split(bg, "\n")
	boxLines := strings.Split(box, "\n")
	for i, bl := range boxLines {
		row := y + i
		for len(bgLines) <= row {
			bgLines = append(bgLines, "")
		}
		base := bgLines[row]
		bw := xansi.StringWidth(bl)
		if w := xansi.StringWidth(base); w < x+bw {
			base += strings.Repeat(" ", x+bw-w)
		}
		left := xansi.Cut(base, 0, x)
		right := xansi.Cut(base, x+bw, xansi.StringWidth(base))
		// Terminate styling on both sides so the box does not inherit or leak colors.
		bgLines[row] = left + "\x1b[0m" + bl + "\x1b[0m" + right
	}
	return strings.Join(bgLines, "\n")
}

// dim flattens styled lines to plain muted text; used as the modal backdrop.
func dim(s string) string {
	lines := strings.Split(s, "\n")
	st := styleMuted()
	for i, ln := range lines {
		plain := xansi.Strip(ln)
		if strings.TrimSpace(plain) == "" {
			lines[i] = plain
			continue
		}
		lines[i] = st.Render(plain)
	}
	return strings.Join(lines, "\n")
}
