// Package server serves the realtime training views: the main page, a
// websocket pushing element updates to it, and a json snapshot endpoint.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"

	"sapientino/game"
	"sapientino/reinforcement"
	"sapientino/server/board_views"
	"sapientino/server/fastview"
	"sapientino/server/root_view"

	"github.com/gorilla/mux"
)

// SnapshotFunc returns the current board state, for the json endpoint.
type SnapshotFunc func() game.Snapshot

// Server serves the page to a single client over a single websocket. That is
// intentionally little generalization: the ele-update channel feeds one
// listener, which is sufficient for watching a training run.
type Server struct {
	addr       string
	firstBoard board_views.Board
	rootView   *root_view.RootView
	snapshotFn SnapshotFunc
}

// NewServer builds all of the views and returns a server.
func NewServer(
	ctx context.Context,
	addr string,
	initial reinforcement.Progress,
	progress <-chan reinforcement.Progress,
	snapshotFn SnapshotFunc,
) (*Server, error) {
	rootView, err := root_view.NewRootView(ctx, progress)
	if err != nil {
		return nil, err
	}

	return &Server{
		addr:       addr,
		firstBoard: board_views.Convert(initial),
		rootView:   rootView,
		snapshotFn: snapshotFn,
	}, nil
}

// Serve blocks, serving the views at the configured address.
func (server *Server) Serve() error {
	router := mux.NewRouter()
	router.HandleFunc("/", server.serveIndex).Methods(http.MethodGet)
	router.HandleFunc("/ws", server.serveWebsocket).Methods(http.MethodGet)
	router.HandleFunc("/snapshot", server.serveSnapshot).Methods(http.MethodGet)

	if err := http.ListenAndServe(server.addr, router); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// serveWebsocket publishes view updates to the client via websocket.
func (server *Server) serveWebsocket(w http.ResponseWriter, r *http.Request) {
	client, err := fastview.NewClient(server.rootView.Updates(), w, r)
	if err != nil {
		log.Println("upgrade:", err)
		return
	}

	if err := client.Sync(); err != nil {
		log.Println("websocket closed:", err)
	}
}

// serveSnapshot returns the current board as json.
func (server *Server) serveSnapshot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(server.snapshotFn()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// serveIndex serves the main page.
func (server *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	if err := renderTemplate(w, server.rootView, server.firstBoard); err != nil {
		_, _ = w.Write([]byte(err.Error()))
	}
}

func renderTemplate(
	w io.Writer,
	vc fastview.ViewComponent,
	data interface{},
) (err error) {
	t := template.New("index.html")
	var tname string
	if tname, err = vc.Parse(t); err != nil {
		return
	}
	if _, err = t.Parse(`{{ template "` + tname + `" . }}`); err != nil {
		return
	}

	err = t.Execute(w, data)
	return
}
