/*
Sapientino is a discrete grid-world reinforcement learning application: a
robot on a grid of colored markers, trained with tabular Q-learning, with the
training boards and the learned value function visualized in realtime in the
browser. The simulation itself lives in the game package; everything here is
wiring between config, training and the view server. A -play flag runs the
environment interactively on the console instead.
*/

package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"

	"sapientino/env"
	"sapientino/game"
	"sapientino/reinforcement"
	"sapientino/server"
)

var (
	progress chan reinforcement.Progress = make(chan reinforcement.Progress)

	configPath *string
	nworkers   *int
	host       *string
	port       *string
	play       *bool

	snapshotMu   sync.Mutex
	lastSnapshot game.Snapshot
)

func init() {
	configPath = flag.String("config", "./config.yaml", "path to the yaml config")
	nworkers = flag.Int("nworkers", runtime.NumCPU(), "number of worker training routines")
	host = flag.String("host", "", "The host ip")
	port = flag.String("port", "8080", "The host port")
	play = flag.Bool("play", false, "play the environment interactively on the console instead of training")
}

func runApp() (err error) {
	var envCfg game.Configuration
	if envCfg, err = game.ConfigFromYaml(*configPath); err != nil {
		return
	}

	if *play {
		return playLoop(envCfg)
	}

	var algConfig *reinforcement.TrainingConfig
	if algConfig, err = reinforcement.FromYaml(*configPath); err != nil {
		return
	}

	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	trainingCtx, trainingCancel, err := algConfig.WithTrainingDeadline(appCtx)
	if err != nil {
		return
	}
	defer trainingCancel()

	// The probe env provides the initial board and the observation space.
	var probe *env.Env
	if probe, err = env.New(envCfg); err != nil {
		return
	}
	setSnapshot(probe.Snapshot())

	// Start training.
	var qtable *reinforcement.QTable
	if qtable, err = reinforcement.Train(
		trainingCtx,
		envCfg,
		algConfig,
		*nworkers,
		exportProgress); err != nil {
		return
	}

	initial := reinforcement.Progress{
		Snapshot: probe.Snapshot(),
		Q:        qtable,
		Sizes:    probe.ObservationSpaceSizes(),
	}

	// Run server.
	var srv *server.Server
	if srv, err = server.NewServer(
		appCtx,
		*host+":"+*port,
		initial,
		progress,
		getSnapshot,
	); err != nil {
		return
	}

	err = srv.Serve()
	return
}

// exportProgress forwards training progress to the view server. Sends are
// non-blocking so a slow or absent client never stalls the estimator; the
// boards are idempotent, dropping some loses nothing.
func exportProgress(_ context.Context, p reinforcement.Progress) {
	setSnapshot(p.Snapshot)

	if p.EpisodeCount%100 != 1 {
		return
	}
	select {
	case progress <- p:
	default:
	}
}

func setSnapshot(snap game.Snapshot) {
	snapshotMu.Lock()
	lastSnapshot = snap
	snapshotMu.Unlock()
}

func getSnapshot() game.Snapshot {
	snapshotMu.Lock()
	defer snapshotMu.Unlock()
	return lastSnapshot
}

// playLoop runs the environment interactively: one key per line, board
// printed after every step.
func playLoop(cfg game.Configuration) error {
	e, err := env.New(cfg)
	if err != nil {
		return err
	}

	_ = e.Reset()
	writeBoard(os.Stdout, e.Snapshot())
	fmt.Println("keys: a=left w=up/forward d=right s=down/backward b=beep n=nop q=quit")

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		var cmd game.Command
		if scanner.Text() == " " {
			// A lone space beeps; check before trimming eats it.
			cmd = game.Beep
		} else {
			switch strings.TrimSpace(scanner.Text()) {
			case "a":
				cmd = game.Left
			case "w":
				cmd = game.Up
			case "d":
				cmd = game.Right
			case "s":
				cmd = game.Down
			case "b":
				cmd = game.Beep
			case "n", "":
				cmd = game.Nop
			case "q":
				return nil
			default:
				fmt.Println("unknown key, one of: a w d s b n q space")
				continue
			}
		}

		obs, reward, done, err := e.Step(int(cmd))
		if err != nil {
			return err
		}
		writeBoard(os.Stdout, e.Snapshot())
		fmt.Printf("x=%d y=%d theta=%d beep=%d color=%d reward=%.2f score=%.2f\n",
			obs.X, obs.Y, obs.Theta, obs.Beep, obs.Color, reward, e.Score())
		if done {
			fmt.Printf("episode finished, score %.2f\n", e.Score())
			return nil
		}
	}
	return scanner.Err()
}

var consoleRobotGlyphs = [4]rune{'>', '^', '<', 'v'}

// writeBoard prints the board with y zero at the bottom, the way the grid is
// oriented. Marker cells print their color initial, uppercased once beeped.
func writeBoard(w io.Writer, snap game.Snapshot) {
	for y := snap.Rows - 1; y >= 0; y-- {
		for x := 0; x < snap.Columns; x++ {
			if x == snap.RobotX && y == snap.RobotY {
				fmt.Fprintf(w, " %c", consoleRobotGlyphs[snap.Theta%4])
				continue
			}
			cell := snap.CellAt(x, y)
			glyph := "."
			if cell.Color != game.Blank {
				glyph = string(cell.Color.Glyph())
				if cell.BeepCount > 0 {
					glyph = strings.ToUpper(glyph)
				}
			}
			fmt.Fprintf(w, " %s", glyph)
		}
		fmt.Fprintln(w)
	}
}

func main() {
	// Parsing happens here rather than in init so the test binary can
	// register its own flags first.
	flag.Parse()
	if err := runApp(); err != nil {
		fmt.Println(err)
	}
}
