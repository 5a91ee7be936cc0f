package env

import (
	"testing"

	"sapientino/game"

	. "github.com/smartystreets/goconvey/convey"
)

func TestEnvSurface(t *testing.T) {
	Convey("Given a default environment", t, func() {
		e, err := New(game.DefaultConfiguration())
		So(err, ShouldBeNil)

		Convey("The spaces match the configuration", func() {
			So(e.ActionSpaceSize(), ShouldEqual, 6)
			So(e.ObservationSpaceSizes(), ShouldResemble, []int{7, 5, 4, 2, game.NbColors})
		})

		Convey("Reset yields the fixed initial observation", func() {
			obs := e.Reset()
			So(obs.X, ShouldEqual, 3)
			So(obs.Y, ShouldEqual, 2)
			So(obs.Theta, ShouldEqual, 1)
			So(obs.Beep, ShouldEqual, 0)
		})

		Convey("Step returns observation, reward and done", func() {
			obs, reward, done, err := e.Step(int(game.Right))
			So(err, ShouldBeNil)
			So(obs.X, ShouldEqual, 4)
			So(reward, ShouldAlmostEqual, -0.01)
			So(done, ShouldBeFalse)
		})

		Convey("An out-of-range action is an error, not a coerced step", func() {
			_, _, _, err := e.Step(6)
			So(err, ShouldNotBeNil)
			So(e.Snapshot().Steps, ShouldEqual, 0)

			_, _, _, err = e.Step(-1)
			So(err, ShouldNotBeNil)
		})

		Convey("Done turns true only past the horizon", func() {
			cfg := game.DefaultConfiguration()
			cfg.Horizon = 2
			short, err := New(cfg)
			So(err, ShouldBeNil)

			_, _, done, _ := short.Step(int(game.Nop))
			So(done, ShouldBeFalse)
			_, _, done, _ = short.Step(int(game.Nop))
			So(done, ShouldBeFalse)
			_, _, done, _ = short.Step(int(game.Nop))
			So(done, ShouldBeTrue)

			Convey("And reset starts over at step zero", func() {
				obs := short.Reset()
				So(obs.X, ShouldEqual, 3)
				So(short.Snapshot().Steps, ShouldEqual, 0)
			})
		})

		Convey("An invalid configuration fails construction", func() {
			bad := game.DefaultConfiguration()
			bad.Rows = -1
			_, err := New(bad)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestObservationEncoding(t *testing.T) {
	Convey("Given the default observation space", t, func() {
		e, err := New(game.DefaultConfiguration())
		So(err, ShouldBeNil)
		sizes := e.ObservationSpaceSizes()

		Convey("The zero observation encodes to zero", func() {
			So(Encode(game.Observation{}, sizes), ShouldEqual, 0)
		})

		Convey("The first component is least significant", func() {
			So(Encode(game.Observation{X: 1}, sizes), ShouldEqual, 1)
			So(Encode(game.Observation{Y: 1}, sizes), ShouldEqual, sizes[0])
			So(Encode(game.Observation{Theta: 1}, sizes), ShouldEqual, sizes[0]*sizes[1])
		})

		Convey("Encode and Decode are inverses on live observations", func() {
			e.Reset()
			commands := []int{int(game.Right), int(game.Up), int(game.Beep), int(game.Left), int(game.Down)}
			for _, action := range commands {
				obs, _, _, err := e.Step(action)
				So(err, ShouldBeNil)

				decoded, err := Decode(Encode(obs, sizes), sizes)
				So(err, ShouldBeNil)
				So(decoded, ShouldResemble, obs)
			}
		})

		Convey("Every encoding is below the space size", func() {
			total := SpaceSize(sizes)
			So(total, ShouldEqual, 7*5*4*2*game.NbColors)
			maxObs := game.Observation{X: 6, Y: 4, Theta: 3, Beep: 1, Color: game.NbColors - 1}
			So(Encode(maxObs, sizes), ShouldEqual, total-1)
		})

		Convey("Decoding an out-of-range value fails", func() {
			_, err := Decode(SpaceSize(sizes), sizes)
			So(err, ShouldNotBeNil)
		})
	})
}
