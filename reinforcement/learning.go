// Package reinforcement trains tabular Q-learning policies against the
// sapientino environment. Worker agents each own a private environment over
// the shared read-only configuration and generate episodes; a single
// estimator consumes the fanned-in episodes and updates the Q-table.
package reinforcement

import (
	"context"
	"math/rand"
	"time"

	"sapientino/env"
	"sapientino/game"

	channerics "github.com/niceyeti/channerics/channels"
)

// Step is a single time step of an agent: doing action a for the encoded
// state s yielded reward r and encoded successor s'.
type Step struct {
	State     int
	Action    int
	Reward    float64
	Successor int
	Done      bool
}

// Episode is a sequence of Steps.
type Episode []Step

// Progress is handed to the progress callback after each processed episode:
// the board the episode finished on, the live table, and the component sizes
// needed to decode its states.
type Progress struct {
	EpisodeCount int
	Snapshot     game.Snapshot
	Q            *QTable
	Sizes        []int
}

// ProgressFunc is a callback by which the training method lends progress
// details. It is synchronous and should complete quickly.
type ProgressFunc func(context.Context, Progress)

// episodeBundle pairs a finished episode with the snapshot taken at its end,
// so views can show the board the episode finished on.
type episodeBundle struct {
	episode  Episode
	snapshot game.Snapshot
}

// Train starts nworkers agents plus one estimator and returns the live
// Q-table immediately; training proceeds until ctx is done. Views may read
// the table concurrently while the estimator writes it.
func Train(
	ctx context.Context,
	envCfg game.Configuration,
	cfg *TrainingConfig,
	nworkers int,
	progressFn ProgressFunc,
) (*QTable, error) {
	probe, err := env.New(envCfg)
	if err != nil {
		return nil, err
	}
	sizes := probe.ObservationSpaceSizes()
	qtable := NewQTable(env.SpaceSize(sizes), probe.ActionSpaceSize(), envCfg.RewardPerStep)

	// Epsilon: the agent exploration/exploitation policy param.
	epsilon := cfg.GetHyperParamOrDefault("epsilon", 0.1)
	// Eta: the learning rate.
	eta := cfg.GetHyperParamOrDefault("eta", 0.1)
	// Gamma: how much to value future state values.
	gamma := cfg.GetHyperParamOrDefault("gamma", 0.9)

	workers := make([]<-chan episodeBundle, 0, nworkers)
	for i := 0; i < nworkers; i++ {
		worker, err := agentWorker(ctx.Done(), envCfg, qtable, sizes, epsilon, int64(i))
		if err != nil {
			return nil, err
		}
		workers = append(workers, worker)
	}
	bundles := channerics.Merge(ctx.Done(), workers...)

	// Estimator updates Q-values from agent experiences. It is the only
	// writer of the table; serialization comes from the single fan-in chan.
	go func() {
		epCount := 0
		for bundle := range bundles {
			for _, step := range bundle.episode {
				target := step.Reward
				if !step.Done {
					target += gamma * qtable.MaxValue(step.Successor)
				}
				cell := qtable.At(step.State, step.Action)
				delta := eta * (target - cell.AtomicRead())
				// Rejected deltas cannot occur with a single writer.
				_, _ = cell.AtomicAdd(delta)
			}

			epCount++
			if progressFn == nil {
				continue
			}
			progressFn(ctx, Progress{
				EpisodeCount: epCount,
				Snapshot:     bundle.snapshot,
				Q:            qtable,
				Sizes:        sizes,
			})
		}
	}()

	return qtable, nil
}

// agentWorker owns one environment and generates episodes with an
// epsilon-greedy policy over the shared Q-table until cancellation.
func agentWorker(
	done <-chan struct{},
	envCfg game.Configuration,
	qtable *QTable,
	sizes []int,
	epsilon float64,
	seed int64,
) (<-chan episodeBundle, error) {
	e, err := env.New(envCfg)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano() ^ seed))

	bundles := make(chan episodeBundle)
	go func() {
		defer close(bundles)

		for {
			// done-guard
			select {
			case <-done:
				return
			default:
			}

			episode := Episode{}
			obs := e.Reset()
			state := env.Encode(obs, sizes)
			for {
				action := pickAction(rng, qtable, state, epsilon)
				next, reward, finished, stepErr := e.Step(action)
				if stepErr != nil {
					// Actions are drawn from the table's own range; a step
					// error means the contract is broken, stop this worker.
					return
				}
				successor := env.Encode(next, sizes)
				episode = append(episode, Step{
					State:     state,
					Action:    action,
					Reward:    reward,
					Successor: successor,
					Done:      finished,
				})
				state = successor
				if finished {
					break
				}
			}

			select {
			case bundles <- episodeBundle{episode: episode, snapshot: e.Snapshot()}:
			case <-done:
				return
			}
		}
	}()

	return bundles, nil
}

// pickAction is the epsilon-greedy policy: explore uniformly with
// probability epsilon, otherwise exploit the greedy action.
func pickAction(rng *rand.Rand, qtable *QTable, state int, epsilon float64) int {
	if rng.Float64() <= epsilon {
		return rng.Intn(qtable.Actions())
	}
	action, _ := qtable.BestAction(state)
	return action
}
