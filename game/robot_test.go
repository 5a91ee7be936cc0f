package game

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestRobotNormalMode(t *testing.T) {
	Convey("Given a robot at the starting pose", t, func() {
		r := NewRobot()
		So(r.X, ShouldEqual, 3)
		So(r.Y, ShouldEqual, 2)
		So(r.Dir, ShouldEqual, North)

		Convey("Cardinal moves shift one unit along one axis", func() {
			r.Apply(Normal, Right)
			So(r.X, ShouldEqual, 4)
			So(r.Y, ShouldEqual, 2)

			r.Apply(Normal, Up)
			So(r.X, ShouldEqual, 4)
			So(r.Y, ShouldEqual, 3)

			r.Apply(Normal, Left)
			r.Apply(Normal, Down)
			So(r.X, ShouldEqual, 3)
			So(r.Y, ShouldEqual, 2)
		})

		Convey("Beep and Nop change nothing", func() {
			r.Apply(Normal, Beep)
			r.Apply(Normal, Nop)
			So(r.X, ShouldEqual, 3)
			So(r.Y, ShouldEqual, 2)
			So(r.Dir, ShouldEqual, North)
		})

		Convey("The heading is tracked but never consulted", func() {
			r.Apply(Normal, Left)
			So(r.Dir, ShouldEqual, North)
			So(r.X, ShouldEqual, 2)
		})
	})
}

func TestRobotDifferentialMode(t *testing.T) {
	Convey("Given a robot heading north", t, func() {
		r := NewRobot()

		Convey("Left and Right rotate in place", func() {
			r.Apply(Differential, Left)
			So(r.Dir, ShouldEqual, West)
			So(r.X, ShouldEqual, 3)
			So(r.Y, ShouldEqual, 2)

			r.Apply(Differential, Right)
			r.Apply(Differential, Right)
			So(r.Dir, ShouldEqual, East)
		})

		Convey("Forward advances along the heading, one axis only", func() {
			r.Apply(Differential, Forward)
			So(r.X, ShouldEqual, 3)
			So(r.Y, ShouldEqual, 3)

			r.Apply(Differential, Right) // now east
			r.Apply(Differential, Forward)
			So(r.X, ShouldEqual, 4)
			So(r.Y, ShouldEqual, 3)
		})

		Convey("Backward retreats along the heading", func() {
			r.Apply(Differential, Backward)
			So(r.Y, ShouldEqual, 1)
			So(r.X, ShouldEqual, 3)
		})

		Convey("Beep and Nop change nothing", func() {
			r.Apply(Differential, Beep)
			r.Apply(Differential, Nop)
			So(r.X, ShouldEqual, 3)
			So(r.Y, ShouldEqual, 2)
			So(r.Dir, ShouldEqual, North)
		})
	})

	Convey("EncodedDirection tracks rotation", t, func() {
		r := NewRobot()
		So(r.EncodedDirection(), ShouldEqual, 1)
		r.Apply(Differential, Left)
		So(r.EncodedDirection(), ShouldEqual, 2)
		r.Apply(Differential, Left)
		So(r.EncodedDirection(), ShouldEqual, 3)
		r.Apply(Differential, Left)
		So(r.EncodedDirection(), ShouldEqual, 0)
	})
}
