// Package env adapts the game simulation to the conventional
// agent-environment interface: integer actions in, observation/reward/done
// out. The integer action mapping and the observation encoding are frozen
// contracts; trained policies depend on both.
package env

import (
	"fmt"

	"sapientino/game"
)

// Env is a single-agent episodic environment over one game.State. An Env is
// not safe for concurrent use; run parallel rollouts by constructing one Env
// per goroutine over a shared Configuration.
type Env struct {
	cfg   game.Configuration
	state *game.State
}

// New validates the configuration and returns an environment positioned at
// the start of a fresh episode.
func New(cfg game.Configuration) (*Env, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("environment config: %w", err)
	}
	state, err := game.NewState(cfg)
	if err != nil {
		return nil, err
	}
	return &Env{cfg: cfg, state: state}, nil
}

// Reset discards the episode and returns the initial observation. It may be
// called at any time and always succeeds for a validated configuration.
func (e *Env) Reset() game.Observation {
	// The configuration was validated in New; a fresh state from the same
	// configuration cannot fail.
	if err := e.state.Reset(); err != nil {
		panic(err)
	}
	return e.state.Observe()
}

// Step executes one integer action and returns the next observation, the
// step reward, and whether the episode has reached its horizon. An action
// outside [0, ActionSpaceSize) is the caller's contract violation and
// returns an error without mutating the episode.
func (e *Env) Step(action int) (game.Observation, float64, bool, error) {
	reward, err := e.state.Step(game.Command(action))
	if err != nil {
		return game.Observation{}, 0, false, err
	}
	return e.state.Observe(), reward, e.state.IsFinished(), nil
}

// ActionSpaceSize is the number of valid integer actions.
func (e *Env) ActionSpaceSize() int {
	return e.cfg.ActionSpaceSize()
}

// ObservationSpaceSizes returns the cardinality of each observation
// component, in the component order used by Encode: x, y, heading, beep
// flag, cell color.
func (e *Env) ObservationSpaceSizes() []int {
	return []int{
		e.cfg.Columns,
		e.cfg.Rows,
		e.cfg.NbOrientations(),
		2,
		e.cfg.NbColors(),
	}
}

// Config returns the environment's immutable configuration.
func (e *Env) Config() game.Configuration {
	return e.cfg
}

// Snapshot exposes a render-ready value copy of the current episode.
func (e *Env) Snapshot() game.Snapshot {
	return e.state.Snapshot()
}

// Score returns the reward accumulated this episode.
func (e *Env) Score() float64 {
	return e.state.Score()
}
