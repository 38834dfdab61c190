package tui

import (
	"strings"
	"testing"

	xansi "github.com/charmbracelet/x/ansi"
)

func TestNormalizePane(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		in    string
		w, h  int
		lines []string
	}{
		{name: "pads", in: "ab", w: 4, h: 2, lines: []string{"ab  ", "    "}},
		{name: "truncates", in: "abcdef\nx\ny", w: 4, h: 2, lines: []string{"abc…", "x   "}},
		{name: "zero width", in: "abc", w: 0, h: 1, lines: []string{""}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := strings.Split(normalizePane(tc.in, tc.w, tc.h), "\n")
			if strings.Join(got, "|") != strings.Join(tc.lines, "|") {
				t.Fatalf("got %q want %q", got, tc.lines)
			}
		})
	}
}

func TestOverlaySplicesByColumn(t *testing.T) {
	t.Parallel()

	bg := "..........\n..........\n.........."
	got := overlay(bg, "AB\nCD", 3, 1)
	lines := strings.Split(xansi.Strip(got), "\n")
	want := []string{"..........", "...AB.....", "...CD....."}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d: got %q want %q", i, lines[i], want[i])
		}
	}
}

func TestDimStripsStyling(t *testing.T) {
	t.Parallel()

	got := xansi.Strip(dim("\x1b[1mbold\x1b[0m\n  "))
	if got != "bold\n  " {
		t.Fatalf("got %q", got)
	}
}

func TestLeanGlyph(t *testing.T) {
	setGlyphs(glyphSetUnicode)
	if got := leanGlyph(0, 0); got != "·" {
		t.Fatalf("center=%q", got)
	}
	if got := leanGlyph(5, 5); got != "↗" {
		t.Fatalf("up-right=%q", got)
	}
	if got := leanGlyph(-5, -5); got != "↙" {
		t.Fatalf("down-left=%q", got)
	}
}
