package board_views

import (
	"fmt"
	"html/template"

	"sapientino/server/fastview"

	channerics "github.com/niceyeti/channerics/channels"
)

// PolicyGrid renders the learned values: per position, the best value over
// every orientation/beep/color component at that position, and the glyph of
// the greedy action.
type PolicyGrid struct {
	id      string
	updates <-chan []fastview.EleUpdate
}

func NewPolicyGrid(
	done <-chan struct{},
	boards <-chan Board,
) (pg *PolicyGrid) {
	pg = &PolicyGrid{id: template.HTMLEscapeString("policygrid")}
	pg.updates = channerics.Convert(done, boards, pg.onUpdate)
	return
}

func (pg *PolicyGrid) Updates() <-chan []fastview.EleUpdate {
	return pg.updates
}

// onUpdate returns the set of view updates needed for the view to reflect the
// current values.
func (pg *PolicyGrid) onUpdate(board Board) (ops []fastview.EleUpdate) {
	for _, col := range board.Cells {
		for _, cell := range col {
			ops = append(ops, fastview.EleUpdate{
				EleId: fmt.Sprintf("%d-%d-value-text", cell.X, cell.Y),
				Ops: []fastview.Op{
					{Key: "textContent", Value: fmt.Sprintf("%.2f", cell.Max)},
				},
			})
			ops = append(ops, fastview.EleUpdate{
				EleId: fmt.Sprintf("%d-%d-policy-glyph", cell.X, cell.Y),
				Ops: []fastview.Op{
					{Key: "textContent", Value: cell.PolicyGlyph},
				},
			})
		}
	}
	return
}

// Parse adds the value grid svg to the parent template and returns its name.
func (pg *PolicyGrid) Parse(
	t *template.Template,
) (name string, err error) {
	name = pg.id
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
			<svg id="` + pg.id + `"
				width="{{ add $width 1 }}px"
				height="{{ add $height 1 }}px"
				style="shape-rendering: crispEdges;">
				{{ range $col := .Cells }}
					{{ range $cell := $col }}
					<g>
						<rect
							x="{{ mult $cell.X $cell_width }}"
							y="{{ mult $cell.Y $cell_height }}"
							width="{{ $cell_width }}"
							height="{{ $cell_height }}"
							fill="none"
							stroke="black"
							stroke-width="1"/>
						<text id="{{$cell.X}}-{{$cell.Y}}-value-text"
							x="{{ add (mult $cell.X $cell_width) $half_width }}"
							y="{{ add (mult $cell.Y $cell_height) (sub $half_height 10) }}"
							stroke="blue"
							dominant-baseline="text-top" text-anchor="middle"
							>{{ printf "%.2f" $cell.Max }}</text>
						<text id="{{$cell.X}}-{{$cell.Y}}-policy-glyph"
							x="{{ add (mult $cell.X $cell_width) $half_width }}"
							y="{{ add (mult $cell.Y $cell_height) (add $half_height 20) }}"
							stroke="blue" stroke-width="1"
							dominant-baseline="central" text-anchor="middle"
							>{{ $cell.PolicyGlyph }}</text>
					</g>
					{{ end }}
				{{ end }}
			</svg>
		</div>
		{{ end }}`)
	return
}
