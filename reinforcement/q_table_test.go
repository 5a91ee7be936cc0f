package reinforcement

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestQTable(t *testing.T) {
	Convey("Given a freshly initialized table", t, func() {
		qtable := NewQTable(6, 3, -0.5)

		Convey("Dimensions and initial values are as constructed", func() {
			So(qtable.States(), ShouldEqual, 6)
			So(qtable.Actions(), ShouldEqual, 3)
			for s := 0; s < qtable.States(); s++ {
				for a := 0; a < qtable.Actions(); a++ {
					So(qtable.At(s, a).AtomicRead(), ShouldEqual, -0.5)
				}
			}
		})

		Convey("When one action is raised above the rest", func() {
			qtable.At(2, 1).AtomicSet(1.25)

			Convey("BestAction returns that action and value", func() {
				action, val := qtable.BestAction(2)
				So(action, ShouldEqual, 1)
				So(val, ShouldEqual, 1.25)
			})

			Convey("MaxValue agrees with BestAction", func() {
				So(qtable.MaxValue(2), ShouldEqual, 1.25)
			})

			Convey("Other states are unaffected", func() {
				So(qtable.MaxValue(3), ShouldEqual, -0.5)
			})
		})

		Convey("When values are tied, BestAction returns the lowest action", func() {
			action, val := qtable.BestAction(0)
			So(action, ShouldEqual, 0)
			So(val, ShouldEqual, -0.5)
		})
	})
}
