package game

import "fmt"

// Observation is the full state surface exposed to the adapter layer: robot
// position, encoded heading, whether the last command was a beep, and the
// encoded color of the occupied cell. Nothing else is observable.
type Observation struct {
	X     int
	Y     int
	Theta int
	Beep  int
	Color int
}

// State composes one grid and one robot with the step counter, the score
// accumulator and the last executed command. It is mutated only by Step and
// replaced wholesale by Reset; a single State must not be shared between
// concurrent callers.
type State struct {
	cfg         Configuration
	grid        *Grid
	robot       *Robot
	steps       int
	score       float64
	lastCommand Command
}

// NewState constructs a fresh episode state from the configuration. Only the
// single-robot game is implemented; a multi-robot configuration is a
// repeated instantiation concern of the caller.
func NewState(cfg Configuration) (*State, error) {
	if cfg.NbRobots != 1 {
		return nil, fmt.Errorf("single-robot state cannot host %d robots", cfg.NbRobots)
	}
	grid, err := NewGrid(cfg.Rows, cfg.Columns, cfg.Tokens())
	if err != nil {
		return nil, err
	}
	return &State{
		cfg:         cfg,
		grid:        grid,
		robot:       NewRobot(),
		lastCommand: Nop,
	}, nil
}

// Step executes one command and returns the reward earned this step. The
// reward terms are additive: a move that leaves the grid while beeping
// accrues both penalties plus the per-step constant. An invalid command
// fails before any mutation.
func (s *State) Step(cmd Command) (float64, error) {
	if !cmd.Valid() {
		return 0, fmt.Errorf("step %d: %w: %d", s.steps, ErrInvalidCommand, int(cmd))
	}

	reward := 0.0
	s.steps++
	s.robot.Apply(s.cfg.CommandMode(), cmd)
	s.lastCommand = cmd

	// Clamp each axis independently, charging the boundary penalty once per
	// violated axis.
	if s.robot.X < 0 || s.robot.X >= s.cfg.Columns {
		reward += s.cfg.RewardOutsideGrid
		s.robot.X = clamp(s.robot.X, 0, s.cfg.Columns-1)
	}
	if s.robot.Y < 0 || s.robot.Y >= s.cfg.Rows {
		reward += s.cfg.RewardOutsideGrid
		s.robot.Y = clamp(s.robot.Y, 0, s.cfg.Rows-1)
	}

	if cmd == Beep {
		if count := s.grid.RegisterBeep(s.robot.X, s.robot.Y); count >= 2 {
			reward += s.cfg.RewardDuplicateBeep
		}
	}

	reward += s.cfg.RewardPerStep
	s.score += reward
	return reward, nil
}

// IsFinished reports episode termination: strictly more steps than the
// horizon. A horizon of H therefore admits H+1 steps before this turns true,
// a fixed policy choice trained policies depend on.
func (s *State) IsFinished() bool {
	return s.steps > s.cfg.Horizon
}

// Observe extracts the observation of the current state.
func (s *State) Observe() Observation {
	return Observation{
		X:     s.robot.X,
		Y:     s.robot.Y,
		Theta: s.robot.EncodedDirection(),
		Beep:  boolToInt(s.lastCommand == Beep),
		Color: s.grid.CellAt(s.robot.X, s.robot.Y).EncodedColor(),
	}
}

// Reset discards the grid and robot and rebuilds them from the
// configuration, so no beep counts leak between episodes.
func (s *State) Reset() error {
	fresh, err := NewState(s.cfg)
	if err != nil {
		return err
	}
	*s = *fresh
	return nil
}

// Steps returns the number of executed steps this episode.
func (s *State) Steps() int { return s.steps }

// Score returns the accumulated reward this episode.
func (s *State) Score() float64 { return s.score }

// LastCommand returns the most recently executed command, or the no-op
// sentinel right after a reset.
func (s *State) LastCommand() Command { return s.lastCommand }

// Grid exposes the grid for read-only inspection by renderers.
func (s *State) Grid() *Grid { return s.grid }

// Robot exposes the robot for read-only inspection by renderers.
func (s *State) Robot() *Robot { return s.robot }

// Snapshot is a value copy of everything a renderer needs, safe to hand to
// another goroutine.
type Snapshot struct {
	Rows, Columns int
	Cells         []Cell
	RobotX        int
	RobotY        int
	Theta         int
	Score         float64
	Steps         int
	LastCommand   Command
}

// Snapshot copies the observable state.
func (s *State) Snapshot() Snapshot {
	cells := make([]Cell, len(s.grid.cells))
	copy(cells, s.grid.cells)
	return Snapshot{
		Rows:        s.cfg.Rows,
		Columns:     s.cfg.Columns,
		Cells:       cells,
		RobotX:      s.robot.X,
		RobotY:      s.robot.Y,
		Theta:       s.robot.EncodedDirection(),
		Score:       s.score,
		Steps:       s.steps,
		LastCommand: s.lastCommand,
	}
}

// CellAt returns the snapshot cell at (x,y).
func (snap Snapshot) CellAt(x, y int) Cell {
	return snap.Cells[y*snap.Columns+x]
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
