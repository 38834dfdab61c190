package tui

import (
	"os"
	"strings"
	"sync"
)

// Terminals can't change the user's font, so the UI chooses between Unicode
// and ASCII glyphs for grid lines, separators and markers.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

func applyGlyphPreference(pref string) {
	v := strings.ToLower(strings.TrimSpace(pref))
	if env := strings.TrimSpace(os.Getenv("FOLIO_TUI_GLYPHS")); env != "" {
		v = strings.ToLower(env)
	}
	switch v {
	case "", "unicode", "utf8":
		setGlyphs(glyphSetUnicode)
	case "ascii":
		setGlyphs(glyphSetASCII)
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

type glyphTable struct {
	gridV, gridH, gridX string
	pointer, bullet     string
	dot, sep            string
	spinner             []string
}

var (
	unicodeGlyphs = glyphTable{
		gridV: "│", gridH: "─", gridX: "┼",
		pointer: "▸", bullet: "•",
		dot: "●", sep: "·",
		spinner: []string{"◐", "◓", "◑", "◒"},
	}
	asciiGlyphs = glyphTable{
		gridV: "|", gridH: "-", gridX: "+",
		pointer: ">", bullet: "*",
		dot: "o", sep: "-",
		spinner: []string{"|", "/", "-", `\`},
	}
)

func g() glyphTable {
	if glyphs() == glyphSetASCII {
		return asciiGlyphs
	}
	return unicodeGlyphs
}
