package game

import (
	"fmt"
	"strings"
)

// Token is one marker placement of the board layout: a colored spot at a
// fixed coordinate. Everything not covered by a token is a blank cell.
type Token struct {
	ID    string
	Color Color
	X, Y  int
}

// DefaultTokens is the classical Sapientino board: three markers of each of
// seven colors on the 7x5 grid.
var DefaultTokens = []Token{
	{"r1", Red, 0, 0},
	{"r2", Red, 1, 1},
	{"r3", Red, 6, 3},
	{"g1", Green, 4, 0},
	{"g2", Green, 5, 2},
	{"g3", Green, 5, 4},
	{"b1", Blue, 1, 3},
	{"b2", Blue, 2, 4},
	{"b3", Blue, 6, 0},
	{"p1", Pink, 2, 1},
	{"p2", Pink, 2, 3},
	{"p3", Pink, 4, 2},
	{"n1", Brown, 3, 0},
	{"n2", Brown, 3, 4},
	{"n3", Brown, 6, 1},
	{"y1", Gray, 0, 2},
	{"y2", Gray, 3, 1},
	{"y3", Gray, 4, 3},
	{"u1", Purple, 0, 4},
	{"u2", Purple, 1, 0},
	{"u3", Purple, 5, 1},
}

// Cell is one grid coordinate. Color is fixed at grid construction;
// BeepCount is incremented only by a beep executed on this cell and is
// zeroed on grid reset.
type Cell struct {
	X, Y      int
	Color     Color
	BeepCount int
}

// EncodedColor returns the stable integer code of the cell color.
func (c *Cell) EncodedColor() int {
	return c.Color.Encode()
}

// Grid owns exactly one cell per coordinate of the configured extent, plus
// per-color aggregate beep counts for the non-blank cells.
type Grid struct {
	rows, columns int
	cells         []Cell
	colorCount    map[Color]int
}

// NewGrid builds the grid by blank-filling every coordinate and overwriting
// the token placements. A token outside the configured bounds is a broken
// layout and fails construction.
func NewGrid(rows, columns int, tokens []Token) (*Grid, error) {
	g := &Grid{
		rows:       rows,
		columns:    columns,
		cells:      make([]Cell, rows*columns),
		colorCount: map[Color]int{},
	}
	for y := 0; y < rows; y++ {
		for x := 0; x < columns; x++ {
			g.cells[y*columns+x] = Cell{X: x, Y: y, Color: Blank}
		}
	}
	for _, t := range tokens {
		if t.X < 0 || t.X >= columns || t.Y < 0 || t.Y >= rows {
			return nil, fmt.Errorf("token %q at (%d,%d) lies outside the %dx%d grid", t.ID, t.X, t.Y, columns, rows)
		}
		g.cells[t.Y*columns+t.X].Color = t.Color
	}
	return g, nil
}

// Rows returns the vertical extent.
func (g *Grid) Rows() int { return g.rows }

// Columns returns the horizontal extent.
func (g *Grid) Columns() int { return g.columns }

// CellAt returns the cell at (x,y). Callers are responsible for bounds:
// every lookup in the simulation happens after clamping, so an out-of-range
// coordinate here is a programming error and panics via the slice index.
func (g *Grid) CellAt(x, y int) *Cell {
	return &g.cells[y*g.columns+x]
}

// RegisterBeep increments the beep count of the cell at (x,y) and, for a
// colored cell, the per-color aggregate. It returns the cell's new count.
func (g *Grid) RegisterBeep(x, y int) int {
	cell := g.CellAt(x, y)
	cell.BeepCount++
	if cell.Color != Blank {
		g.colorCount[cell.Color]++
	}
	return cell.BeepCount
}

// ColorCount returns the number of beeps registered on cells of the given
// color this episode.
func (g *Grid) ColorCount(c Color) int {
	return g.colorCount[c]
}

// Reset zeroes every beep count while keeping the layout. The canonical
// episode lifecycle rebuilds the grid wholesale, which makes this idempotent
// and secondary; it exists for callers that reuse a grid.
func (g *Grid) Reset() {
	for i := range g.cells {
		g.cells[i].BeepCount = 0
	}
	g.colorCount = map[Color]int{}
}

// ParseMap parses an ASCII board layout into tokens plus the board extent.
// Rows are listed top to bottom, one glyph per cell; glyphs follow the
// colorChars table. All rows must have equal length.
func ParseMap(layout []string) (tokens []Token, rows, columns int, err error) {
	rows = len(layout)
	if rows == 0 {
		return nil, 0, 0, fmt.Errorf("empty map")
	}
	columns = len(layout[0])
	if columns == 0 {
		return nil, 0, 0, fmt.Errorf("empty map row")
	}
	for i, line := range layout {
		if len(line) != columns {
			return nil, 0, 0, fmt.Errorf("map row %d has %d cells, want %d", i, len(line), columns)
		}
		// Row 0 of the map text is the visual top, which is the highest y.
		y := rows - i - 1
		for x, ch := range line {
			color, ok := colorChars[ch]
			if !ok {
				return nil, 0, 0, fmt.Errorf("unknown map glyph %q at (%d,%d)", ch, x, y)
			}
			if color == Blank {
				continue
			}
			tokens = append(tokens, Token{
				ID:    fmt.Sprintf("%c%d", ch, len(tokens)+1),
				Color: color,
				X:     x,
				Y:     y,
			})
		}
	}
	return tokens, rows, columns, nil
}

// ParseMapString splits a newline-separated layout and parses it.
func ParseMapString(layout string) ([]Token, int, int, error) {
	trimmed := strings.Trim(layout, "\n")
	return ParseMap(strings.Split(trimmed, "\n"))
}
