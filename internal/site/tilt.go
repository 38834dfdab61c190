package site

// MaxTilt is the largest rotation, in degrees, a card leans toward the pointer.
const MaxTilt = 6.0

// Rect is a card's bounding box in whatever units the host uses (pixels on
// the web, cells in the terminal).
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Contains(px, py float64) bool {
	return px >= r.X && px < r.X+r.W && py >= r.Y && py < r.Y+r.H
}

// Tilt returns the card rotation for a pointer at (px, py). The card leans
// toward the pointer: rotateY follows the horizontal position, rotateX the
// inverted vertical position. A degenerate rect does not tilt.
func Tilt(r Rect, px, py float64) (rotateX, rotateY float64) {
	if r.W <= 0 || r.H <= 0 {
		return 0, 0
	}
	x := (px - r.X) / r.W
	y := (py - r.Y) / r.H
	rotateY = (x - 0.5) * MaxTilt * 2
	rotateX = (0.5 - y) * MaxTilt * 2
	return rotateX, rotateY
}
