package atomic_float

import (
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestAtomicAdd(t *testing.T) {
	Convey("When multiple writers add to the float concurrently", t, func() {
		af := NewAtomicFloat64(0.0)
		numOps := 3000
		numWriters := 100

		start := make(chan struct{})
		wg := sync.WaitGroup{}
		wg.Add(numWriters)
		adder := func() {
			<-start
			for i := 0; i < numOps; i++ {
				for succeeded := false; !succeeded; _, succeeded = af.AtomicAdd(1.0) {
				}
			}
			wg.Done()
		}

		for i := 0; i < numWriters; i++ {
			go adder()
		}

		// Wait for goroutines to begin
		time.Sleep(time.Millisecond * 10)
		close(start)
		wg.Wait()
		So(af.AtomicRead(), ShouldEqual, float64(numOps*numWriters))
	})

	Convey("When writers increment and decrement concurrently", t, func() {
		af := NewAtomicFloat64(0.0)
		numOps := 3000
		numWriters := 100

		start := make(chan struct{})
		wg := sync.WaitGroup{}
		wg.Add(numWriters * 2)
		stepper := func(delta float64) {
			<-start
			for i := 0; i < numOps; i++ {
				for succeeded := false; !succeeded; _, succeeded = af.AtomicAdd(delta) {
				}
			}
			wg.Done()
		}

		for i := 0; i < numWriters; i++ {
			go stepper(1.0)
			go stepper(-1.0)
		}

		time.Sleep(time.Millisecond * 10)
		close(start)
		wg.Wait()
		So(af.AtomicRead(), ShouldEqual, 0.0)
	})
}

func TestAtomicSet(t *testing.T) {
	Convey("AtomicSet replaces the value when uncontended", t, func() {
		af := NewAtomicFloat64(1.5)
		So(af.AtomicSet(-2.5), ShouldBeTrue)
		So(af.AtomicRead(), ShouldEqual, -2.5)
	})
}
