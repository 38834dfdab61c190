package site

import "math"

// GridConfig drives the animated background grid. Units are pixels; the
// terminal maps them onto cells with a fixed cell size.
type GridConfig struct {
	Spacing   float64
	Speed     float64
	Amplitude float64
	// Frequency scales the wave along the line position.
	Frequency float64
}

func DefaultGrid() GridConfig {
	return GridConfig{Spacing: 120, Speed: 0.015, Amplitude: 16, Frequency: 0.008}
}

// Advance returns the wave offset for the next frame.
func (c GridConfig) Advance(offset float64) float64 {
	return offset + c.Speed*120
}

// Segment is one straight grid line from (X0,Y0) to (X1,Y1).
type Segment struct {
	X0, Y0, X1, Y1 float64
	Vertical       bool
}

// Frame returns the grid lines for a w×h viewport at the given offset.
// Vertical lines lean by sin((x+offset)·f)·amplitude at the bottom edge,
// horizontal lines by cos((y+offset)·f)·amplitude at the right edge.
func (c GridConfig) Frame(offset, w, h float64) []Segment {
	if c.Spacing <= 0 || w <= 0 || h <= 0 {
		return nil
	}
	var segs []Segment
	for x := -c.Spacing; x < w+c.Spacing; x += c.Spacing {
		d := math.Sin((x+offset)*c.Frequency) * c.Amplitude
		segs = append(segs, Segment{X0: x, Y0: 0, X1: x + d, Y1: h, Vertical: true})
	}
	for y := -c.Spacing; y < h+c.Spacing; y += c.Spacing {
		d := math.Cos((y+offset)*c.Frequency) * c.Amplitude
		segs = append(segs, Segment{X0: 0, Y0: y, X1: w, Y1: y + d})
	}
	return segs
}

// Cell is one rasterized grid cell. Fade runs from 1 at a line's origin edge
// to 0 at the far edge, matching the linear gradient each line is stroked with.
type Cell struct {
	Vertical   bool
	Horizontal bool
	Fade       float64
}

func (c Cell) Empty() bool { return !c.Vertical && !c.Horizontal }

// Raster draws a frame onto cols×rows cells of cellW×cellH pixels each.
func (c GridConfig) Raster(offset float64, cols, rows int, cellW, cellH float64) [][]Cell {
	if cols <= 0 || rows <= 0 || cellW <= 0 || cellH <= 0 {
		return nil
	}
	w := float64(cols) * cellW
	h := float64(rows) * cellH
	out := make([][]Cell, rows)
	for r := range out {
		out[r] = make([]Cell, cols)
	}

	for _, s := range c.Frame(offset, w, h) {
		if s.Vertical {
			for r := 0; r < rows; r++ {
				y := (float64(r) + 0.5) * cellH
				t := y / h
				x := s.X0 + (s.X1-s.X0)*t
				col := int(math.Floor(x / cellW))
				if col < 0 || col >= cols {
					continue
				}
				cell := &out[r][col]
				cell.Vertical = true
				cell.Fade = math.Max(cell.Fade, 1-t)
			}
			continue
		}
		for col := 0; col < cols; col++ {
			x := (float64(col) + 0.5) * cellW
			t := x / w
			y := s.Y0 + (s.Y1-s.Y0)*t
			r := int(math.Floor(y / cellH))
			if r < 0 || r >= rows {
				continue
			}
			cell := &out[r][col]
			cell.Horizontal = true
			cell.Fade = math.Max(cell.Fade, 1-t)
		}
	}
	return out
}
