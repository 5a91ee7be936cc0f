package fastview

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	. "github.com/smartystreets/goconvey/convey"
)

// dialTestSocket stands up a websocket pair, returning the server side
// wrapped in a websock and the raw peer connection.
func dialTestSocket(t *testing.T) (*websock, *websocket.Conn) {
	t.Helper()

	conns := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conns <- ws
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	peer, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = peer.Close() })

	return NewWebSocket(<-conns), peer
}

func TestWebsockClose(t *testing.T) {
	Convey("Given a connected websocket", t, func() {
		sock, peer := dialTestSocket(t)

		Convey("Close sends the close handshake to the peer", func() {
			go sock.Close()

			So(peer.SetReadDeadline(time.Now().Add(5*time.Second)), ShouldBeNil)
			_, _, err := peer.ReadMessage()
			So(websocket.IsCloseError(err, websocket.CloseNormalClosure), ShouldBeTrue)
		})
	})
}
