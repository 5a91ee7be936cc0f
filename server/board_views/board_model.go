// Package board_views contains views derived from the Board view-model: the
// colored grid with the robot, and the learned value/policy grid.
package board_views

import (
	"sapientino/env"
	"sapientino/game"
	"sapientino/reinforcement"
)

// BoardCell flattens one grid cell for template consumption: coordinates are
// svg-oriented, so [0][0] is rendered top left, whereas game coordinates put
// y zero at the bottom. Fields should be immediately usable as view
// parameters.
type BoardCell struct {
	X, Y        int
	Fill        string
	BeepCount   int
	Max         float64
	PolicyGlyph string
}

// Board is the complete view-model for one update: the flattened cells plus
// the robot pose and the episode counters.
type Board struct {
	Cells       [][]BoardCell // indexed [x][y], y in svg orientation
	Columns     int
	Rows        int
	RobotX      int // svg orientation
	RobotY      int
	RobotGlyph  string
	Score       float64
	Steps       int
	Episode     int
	LastCommand string
}

// fills maps cell colors to svg fill values. Blank cells render white so the
// grid lines carry the structure.
var fills = map[game.Color]string{
	game.Blank:  "white",
	game.Red:    "red",
	game.Green:  "green",
	game.Blue:   "royalblue",
	game.Pink:   "pink",
	game.Brown:  "sienna",
	game.Gray:   "lightgray",
	game.Purple: "purple",
}

// robotGlyphs is indexed by the encoded robot direction.
var robotGlyphs = [4]string{">", "^", "<", "v"}

// Convert transforms a training progress report into the Board view-model.
// The y indices are flipped per svg y-axis orientation, where 0 is the top of
// the coordinate system.
func Convert(p reinforcement.Progress) Board {
	rows, columns := p.Snapshot.Rows, p.Snapshot.Columns
	cells := make([][]BoardCell, columns)
	for x := range cells {
		cells[x] = make([]BoardCell, rows)
	}

	for x := 0; x < columns; x++ {
		for y := 0; y < rows; y++ {
			cell := p.Snapshot.CellAt(x, y)
			maxVal, bestAction := cellPolicy(p, x, y)
			cells[x][rows-y-1] = BoardCell{
				X:           x,
				Y:           rows - y - 1,
				Fill:        fills[cell.Color],
				BeepCount:   cell.BeepCount,
				Max:         maxVal,
				PolicyGlyph: bestAction.String(),
			}
		}
	}

	return Board{
		Cells:       cells,
		Columns:     columns,
		Rows:        rows,
		RobotX:      p.Snapshot.RobotX,
		RobotY:      rows - p.Snapshot.RobotY - 1,
		RobotGlyph:  robotGlyphs[p.Snapshot.Theta%len(robotGlyphs)],
		Score:       p.Snapshot.Score,
		Steps:       p.Snapshot.Steps,
		Episode:     p.EpisodeCount,
		LastCommand: p.Snapshot.LastCommand.String(),
	}
}

// cellPolicy projects the value function onto the position plane: the best
// value and action at (x,y) over every orientation, beep flag and color
// component sharing that position.
func cellPolicy(p reinforcement.Progress, x, y int) (float64, game.Command) {
	if p.Q == nil || len(p.Sizes) != 5 {
		return 0, game.Nop
	}

	best := game.Nop
	maxVal := 0.0
	first := true
	for theta := 0; theta < p.Sizes[2]; theta++ {
		for beep := 0; beep < p.Sizes[3]; beep++ {
			for color := 0; color < p.Sizes[4]; color++ {
				state := env.Encode(game.Observation{
					X:     x,
					Y:     y,
					Theta: theta,
					Beep:  beep,
					Color: color,
				}, p.Sizes)
				action, val := p.Q.BestAction(state)
				if first || val > maxVal {
					maxVal = val
					best = game.Command(action)
					first = false
				}
			}
		}
	}
	return maxVal, best
}
