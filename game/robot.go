package game

// The fixed pose every robot starts from, reused on every reset.
const (
	initialX         = 3
	initialY         = 2
	initialDirection = North
)

// Robot is the mutable position and heading of the agent. Coordinates may
// transiently leave the grid right after a move; the simulation clamps them
// within the same step. The heading is tracked in both modes but only
// Differential commands read it.
type Robot struct {
	X, Y int
	Dir  Direction
}

// NewRobot returns a robot at the fixed starting pose.
func NewRobot() *Robot {
	return &Robot{X: initialX, Y: initialY, Dir: initialDirection}
}

// Apply mutates the robot per the command under the given mode. No command
// moves the robot more than one unit along any axis. Beep and Nop change
// nothing.
func (r *Robot) Apply(mode CommandMode, cmd Command) {
	if mode == Differential {
		r.applyDifferential(cmd)
		return
	}
	switch cmd {
	case Left:
		r.X--
	case Right:
		r.X++
	case Up:
		r.Y++
	case Down:
		r.Y--
	}
}

func (r *Robot) applyDifferential(cmd Command) {
	switch cmd {
	case Left:
		r.Dir = r.Dir.RotateLeft()
	case Right:
		r.Dir = r.Dir.RotateRight()
	case Forward:
		dx, dy := r.heading()
		r.X += dx
		r.Y += dy
	case Backward:
		dx, dy := r.heading()
		r.X -= dx
		r.Y -= dy
	}
}

// heading resolves the unit displacement implied by the current direction.
// Exactly one axis is ever non-zero.
func (r *Robot) heading() (dx, dy int) {
	switch r.Dir {
	case East:
		dx = 1
	case West:
		dx = -1
	case North:
		dy = 1
	case South:
		dy = -1
	}
	return
}

// EncodedDirection returns the heading as a value in {0,1,2,3}.
func (r *Robot) EncodedDirection() int {
	return r.Dir.Encode()
}
