package board_views

import (
	"fmt"
	"html/template"

	"sapientino/server/fastview"

	channerics "github.com/niceyeti/channerics/channels"
)

// cellDim is the rendered cell height/width in pixels, shared by the views so
// their grids align on the page.
const cellDim = 80

// BoardView renders the grid itself: colored cells, beep counters, the robot
// marker and the score line.
type BoardView struct {
	id      string
	updates <-chan []fastview.EleUpdate
}

func NewBoardView(
	done <-chan struct{},
	boards <-chan Board,
) (bv *BoardView) {
	bv = &BoardView{id: template.HTMLEscapeString("boardview")}
	bv.updates = channerics.Convert(done, boards, bv.onUpdate)
	return
}

func (bv *BoardView) Updates() <-chan []fastview.EleUpdate {
	return bv.updates
}

// onUpdate returns the set of view updates needed for the view to reflect the
// current board.
func (bv *BoardView) onUpdate(board Board) (ops []fastview.EleUpdate) {
	for _, col := range board.Cells {
		for _, cell := range col {
			ops = append(ops, fastview.EleUpdate{
				EleId: fmt.Sprintf("%d-%d-board-cell", cell.X, cell.Y),
				Ops: []fastview.Op{
					{Key: "fill", Value: cell.Fill},
				},
			})
			beeps := ""
			if cell.BeepCount > 0 {
				beeps = fmt.Sprintf("%d", cell.BeepCount)
			}
			ops = append(ops, fastview.EleUpdate{
				EleId: fmt.Sprintf("%d-%d-beep-count", cell.X, cell.Y),
				Ops: []fastview.Op{
					{Key: "textContent", Value: beeps},
				},
			})
		}
	}

	half := cellDim / 2
	ops = append(ops,
		fastview.EleUpdate{
			EleId: "robot-marker",
			Ops: []fastview.Op{
				{Key: "x", Value: fmt.Sprintf("%d", board.RobotX*cellDim+half)},
				{Key: "y", Value: fmt.Sprintf("%d", board.RobotY*cellDim+half)},
				{Key: "textContent", Value: board.RobotGlyph},
			},
		},
		fastview.EleUpdate{
			EleId: "board-status",
			Ops: []fastview.Op{
				{Key: "textContent", Value: fmt.Sprintf(
					"episode %d  steps %d  score %.2f  last %s",
					board.Episode, board.Steps, board.Score, board.LastCommand)},
			},
		})
	return
}

// Parse adds the board svg to the parent template and returns its name.
func (bv *BoardView) Parse(
	t *template.Template,
) (name string, err error) {
	name = bv.id
	_, err = t.Parse(
		`{{ define "` + name + `" }}
		<div style="padding:10px;">
			{{ $x_cells := len .Cells }}
			{{ $y_cells := len (index .Cells 0) }}
			{{ $cell_width := ` + fmt.Sprintf("%d", cellDim) + ` }}
			{{ $cell_height := $cell_width }}
			{{ $width := mult $cell_width $x_cells }}
			{{ $height := mult $cell_height $y_cells }}
			{{ $half_height := div $cell_height 2 }}
			{{ $half_width := div $cell_width 2 }}
			<svg id="` + bv.id + `"
				width="{{ add $width 1 }}px"
				height="{{ add $height 41 }}px"
				style="shape-rendering: crispEdges;">
				{{ range $col := .Cells }}
					{{ range $cell := $col }}
					<g>
						<rect id="{{$cell.X}}-{{$cell.Y}}-board-cell"
							x="{{ mult $cell.X $cell_width }}"
							y="{{ mult $cell.Y $cell_height }}"
							width="{{ $cell_width }}"
							height="{{ $cell_height }}"
							fill="{{ $cell.Fill }}"
							stroke="black"
							stroke-width="1"/>
						<text id="{{$cell.X}}-{{$cell.Y}}-beep-count"
							x="{{ add (mult $cell.X $cell_width) 8 }}"
							y="{{ add (mult $cell.Y $cell_height) 16 }}"
							stroke="black"
							>{{ if gt $cell.BeepCount 0 }}{{ $cell.BeepCount }}{{ end }}</text>
					</g>
					{{ end }}
				{{ end }}
				<text id="robot-marker"
					x="{{ add (mult .RobotX $cell_width) $half_width }}"
					y="{{ add (mult .RobotY $cell_height) $half_height }}"
					font-size="32"
					dominant-baseline="central" text-anchor="middle"
					>{{ .RobotGlyph }}</text>
				<text id="board-status"
					x="4" y="{{ add $height 24 }}"
					>episode {{ .Episode }}  steps {{ .Steps }}  score {{ printf "%.2f" .Score }}  last {{ .LastCommand }}</text>
			</svg>
		</div>
		{{ end }}`)
	return
}
