// Package game implements the Sapientino grid-world simulation: a robot
// moves over a finite grid of colored cells, may beep to mark the cell it
// occupies, and receives a scalar reward per step. The package holds only
// pure in-memory state transitions; rendering and the agent-facing adapter
// live elsewhere and consume the read-only accessors exposed here.
package game

// Direction is one of the four axis-aligned headings, stored in degrees.
// Rotation is closed over {0, 90, 180, 270}; an arbitrary angle is never
// representable.
type Direction int

const (
	East  Direction = 0
	North Direction = 90
	West  Direction = 180
	South Direction = 270
)

// RotateLeft returns the heading advanced 90° counter-clockwise.
func (d Direction) RotateLeft() Direction {
	return (d + 90) % 360
}

// RotateRight returns the heading advanced 90° clockwise. Rotating right
// from East wraps to South (270), never a negative angle.
func (d Direction) RotateRight() Direction {
	return (d + 270) % 360
}

// Encode maps the heading to {0,1,2,3} for observations.
func (d Direction) Encode() int {
	return int(d) / 90
}

// Color enumerates cell colors. Declaration order fixes the color-to-integer
// bijection used in observations; it is part of the external contract and
// must not be reordered.
type Color int

const (
	Blank Color = iota
	Red
	Green
	Blue
	Pink
	Brown
	Gray
	Purple
)

// NbColors is the size of the color enumeration, Blank included.
const NbColors = 8

var colorNames = [NbColors]string{
	"blank",
	"red",
	"green",
	"blue",
	"pink",
	"brown",
	"gray",
	"purple",
}

func (c Color) String() string {
	if c < 0 || int(c) >= NbColors {
		return "unknown"
	}
	return colorNames[c]
}

// Encode returns the stable integer code of the color.
func (c Color) Encode() int {
	return int(c)
}

// colorChars maps single-character map glyphs to colors, for parsing ASCII
// board layouts. The glyphs match the token id prefixes of the default layout.
var colorChars = map[rune]Color{
	' ': Blank,
	'r': Red,
	'g': Green,
	'b': Blue,
	'p': Pink,
	'n': Brown,
	'y': Gray,
	'u': Purple,
}

// Glyph returns the single-character map glyph of the color, the inverse of
// the layout parser's glyph table.
func (c Color) Glyph() rune {
	for glyph, color := range colorChars {
		if color == c {
			return glyph
		}
	}
	return '?'
}
