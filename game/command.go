package game

import "errors"

// CommandMode selects which movement semantics a Command value carries.
// The mode is fixed at construction for the lifetime of an environment.
type CommandMode int

const (
	// Normal moves the robot one cell along the cardinal directions.
	Normal CommandMode = iota
	// Differential rotates the robot in place and translates it along its
	// current heading.
	Differential
)

func (m CommandMode) String() string {
	if m == Differential {
		return "differential"
	}
	return "normal"
}

// ParseMode parses a mode name from configuration.
func ParseMode(s string) (CommandMode, error) {
	switch s {
	case "", "normal":
		return Normal, nil
	case "differential":
		return Differential, nil
	}
	return Normal, errors.New("unknown command mode: " + s)
}

// Command is one discrete action. The integer values form the wire encoding
// consumed by trained policies and must remain stable. The same six codes are
// reused by both modes; codes 0..3 change meaning with the mode, Beep and Nop
// do not.
type Command int

const (
	Left Command = iota
	Up
	Right
	Down
	Beep
	Nop
)

// Differential-mode readings of the movement codes: Left/Right rotate,
// Forward/Backward translate along the current heading.
const (
	Forward  = Up
	Backward = Down
)

// ActionSpaceSize is the number of commands per mode: four movement or
// rotation codes, beep, and no-op.
const ActionSpaceSize = 6

// ErrInvalidCommand is returned by State.Step for a command value outside
// the 6-element command set. No state is mutated in that case.
var ErrInvalidCommand = errors.New("command outside the valid action set")

// Valid reports whether c belongs to the command set of either mode.
func (c Command) Valid() bool {
	return c >= Left && c <= Nop
}

// String renders the command glyph used by the board views and the play loop.
func (c Command) String() string {
	switch c {
	case Left:
		return "<"
	case Up:
		return "^"
	case Right:
		return ">"
	case Down:
		return "v"
	case Beep:
		return "o"
	case Nop:
		return "_"
	}
	return "?"
}
