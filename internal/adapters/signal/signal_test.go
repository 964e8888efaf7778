package signal

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dkeye/coderoom/internal/app"
	"github.com/dkeye/coderoom/internal/app/orch"
	"github.com/dkeye/coderoom/internal/core"
	"github.com/dkeye/coderoom/internal/protocol"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, limiter *RateLimiter) (*httptest.Server, *orch.Orchestrator) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	o := orch.New(app.NewRegistry(app.NewSettingsStore()), app.NewSessions(), app.SimplePolicy{})
	ctl := NewSignalWSController(o, Options{
		ReadLimit:  1 << 16,
		PingPeriod: time.Second,
		PongWait:   5 * time.Second,
		WriteWait:  time.Second,
		SendBuffer: 16,
	}, limiter)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	r := gin.New()
	r.GET("/api/ws", func(c *gin.Context) { ctl.HandleSignal(ctx, c) })
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, o
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ws.Close() })
	return ws
}

func sendEvent(t *testing.T, ws *websocket.Conn, event protocol.Event, payload any) {
	t.Helper()
	frame, err := protocol.Encode(event, payload)
	require.NoError(t, err)
	require.NoError(t, ws.WriteMessage(websocket.TextMessage, frame))
}

// expect reads frames until one carries event.
func expect(t *testing.T, ws *websocket.Conn, event protocol.Event) json.RawMessage {
	t.Helper()
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	for {
		_, data, err := ws.ReadMessage()
		require.NoError(t, err)
		var env protocol.Envelope
		require.NoError(t, json.Unmarshal(data, &env))
		if env.Event == event {
			return env.Data
		}
	}
}

func TestSignal_JoinAndDisconnect(t *testing.T) {
	req := require.New(t)
	srv, o := newTestServer(t, NewRateLimiter(10, time.Minute))

	alice := dial(t, srv)
	sendEvent(t, alice, protocol.EventJoinRequest, map[string]string{"roomId": "room", "username": "alice"})
	var accepted protocol.JoinAccepted
	req.NoError(json.Unmarshal(expect(t, alice, protocol.EventJoinAccepted), &accepted))
	req.Equal("alice", accepted.User.Username)
	expect(t, alice, protocol.EventUserJoined)

	bob := dial(t, srv)
	sendEvent(t, bob, protocol.EventJoinRequest, map[string]string{"roomId": "room", "username": "bob"})
	expect(t, bob, protocol.EventJoinAccepted)
	var joined protocol.UserJoined
	req.NoError(json.Unmarshal(expect(t, alice, protocol.EventUserJoined), &joined))
	req.Equal("bob", joined.User.Username)

	// Garbage is dropped and the connection stays usable
	req.NoError(bob.WriteMessage(websocket.TextMessage, []byte(`{"event":`)))
	sendEvent(t, bob, protocol.EventPing, nil)
	expect(t, bob, protocol.EventPong)

	// When bob goes away alice hears about it
	req.NoError(bob.Close())
	var left protocol.UserRef
	req.NoError(json.Unmarshal(expect(t, alice, protocol.EventUserDisconnected), &left))
	req.Equal("bob", left.User.Username)
	req.Eventually(func() bool { return o.Sessions.Len() == 1 }, time.Second, 10*time.Millisecond)
}

func TestSignal_JoinRateLimited(t *testing.T) {
	req := require.New(t)
	srv, o := newTestServer(t, NewRateLimiter(1, time.Minute))

	ws := dial(t, srv)
	sendEvent(t, ws, protocol.EventJoinRequest, map[string]string{"roomId": "a", "username": "alice"})
	expect(t, ws, protocol.EventJoinAccepted)

	// The second join inside the window is ignored
	sendEvent(t, ws, protocol.EventJoinRequest, map[string]string{"roomId": "b", "username": "alice"})
	sendEvent(t, ws, protocol.EventPing, nil)
	expect(t, ws, protocol.EventPong)

	rooms := o.Registry.Rooms()
	req.Len(rooms, 1)
	req.Equal("a", string(rooms[0].ID))
}

func TestWsSignalConn_TrySendErrors(t *testing.T) {
	req := require.New(t)

	closed := &WsSignalConn{send: make(chan core.Frame, 1), closed: true}
	req.ErrorIs(closed.TrySend(core.Frame("x")), core.ErrConnClosed)

	full := &WsSignalConn{send: make(chan core.Frame)}
	req.ErrorIs(full.TrySend(core.Frame("x")), ErrBackpressure)
}
