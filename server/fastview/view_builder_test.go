package fastview

import (
	"context"
	"fmt"
	"html/template"
	"testing"
	"time"

	channerics "github.com/niceyeti/channerics/channels"
	. "github.com/smartystreets/goconvey/convey"
)

// testView is a minimal view component echoing its view-model as a single
// ele-update.
type testView struct {
	id      string
	updates <-chan []EleUpdate
}

func newTestView(id string, done <-chan struct{}, vms <-chan string) *testView {
	tv := &testView{id: id}
	tv.updates = channerics.Convert(done, vms, func(vm string) []EleUpdate {
		return []EleUpdate{
			{EleId: tv.id, Ops: []Op{{Key: "textContent", Value: vm}}},
		}
	})
	return tv
}

func (tv *testView) Updates() <-chan []EleUpdate { return tv.updates }

func (tv *testView) Parse(t *template.Template) (string, error) {
	_, err := t.Parse(`{{ define "` + tv.id + `" }}<div id="` + tv.id + `"></div>{{ end }}`)
	return tv.id, err
}

func recvUpdates(t *testing.T, ch <-chan []EleUpdate) []EleUpdate {
	t.Helper()
	select {
	case updates := <-ch:
		return updates
	case <-time.After(5 * time.Second):
		t.Fatal("timed out awaiting view updates")
		return nil
	}
}

func TestViewBuilder(t *testing.T) {
	Convey("Given a data source and two views", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		source := make(chan int)

		builderFn := func(id string) ViewBuilderFunc[string] {
			return func(done <-chan struct{}, vms <-chan string) ViewComponent {
				return newTestView(id, done, vms)
			}
		}

		Convey("Build wires the conversion and broadcast", func() {
			views, err := NewViewBuilder[int, string]().
				WithContext(ctx).
				WithModel(source, func(n int) string { return fmt.Sprintf("%d", n) }).
				WithView(builderFn("first")).
				WithView(builderFn("second")).
				Build()
			So(err, ShouldBeNil)
			So(len(views), ShouldEqual, 2)

			go func() { source <- 42 }()

			// Both views observe the same converted view-model. Consume
			// concurrently since the broadcast may await all receivers.
			results := make(chan []EleUpdate, len(views))
			for _, view := range views {
				go func(ch <-chan []EleUpdate) { results <- <-ch }(view.Updates())
			}
			for range views {
				updates := recvUpdates(t, results)
				So(len(updates), ShouldEqual, 1)
				So(updates[0].Ops[0].Value, ShouldEqual, "42")
			}
		})

		Convey("Build without views fails", func() {
			_, err := NewViewBuilder[int, string]().
				WithModel(source, func(n int) string { return "" }).
				Build()
			So(err, ShouldEqual, ErrNoViews)
		})

		Convey("Build without a model fails", func() {
			_, err := NewViewBuilder[int, string]().
				WithView(builderFn("lonely")).
				Build()
			So(err, ShouldEqual, ErrNoModel)
		})
	})
}
