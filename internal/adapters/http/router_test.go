package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dkeye/coderoom/internal/app"
	"github.com/dkeye/coderoom/internal/app/orch"
	"github.com/dkeye/coderoom/internal/config"
	"github.com/dkeye/coderoom/internal/core"
	"github.com/dkeye/coderoom/internal/domain"
	"github.com/dkeye/coderoom/internal/protocol"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type nopConn struct{}

func (nopConn) TrySend(core.Frame) error { return nil }
func (nopConn) Close()                   {}

func newRouter(t *testing.T) (*gin.Engine, *orch.Orchestrator) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	o := orch.New(app.NewRegistry(app.NewSettingsStore()), app.NewSessions(), app.SimplePolicy{})
	cfg := &config.Config{
		Mode:       "test",
		StaticPath: t.TempDir(),
		Secret:     "test-secret",
		SendBuffer: 8,
		ICEServers: []string{"stun:stun.example.org:3478"},
	}
	return SetupRouter(context.Background(), cfg, o), o
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestRouter_Healthz(t *testing.T) {
	req := require.New(t)
	r, _ := newRouter(t)

	w := get(r, "/healthz")
	req.Equal(http.StatusOK, w.Code)
	req.JSONEq(`{"status":"ok"}`, w.Body.String())
	req.NotEmpty(w.Header().Get("Set-Cookie"))
	req.NotEmpty(w.Header().Get("X-Request-ID"))
}

func TestRouter_Rooms(t *testing.T) {
	req := require.New(t)
	r, o := newRouter(t)

	// Given two members in one room
	for _, id := range []domain.ConnectionID{"c1", "c2"} {
		o.Connect(id, nopConn{}, func() {})
	}
	o.Dispatch("c1", protocol.JoinRequest{RoomID: "room", Username: "alice"})
	o.Dispatch("c2", protocol.JoinRequest{RoomID: "room", Username: "bob"})

	w := get(r, "/api/rooms")
	req.Equal(http.StatusOK, w.Code)
	req.JSONEq(`{"rooms":[{"roomId":"room","memberCount":2,"everyoneCanEdit":false}]}`, w.Body.String())

	w = get(r, "/api/rooms/room/members")
	req.Equal(http.StatusOK, w.Code)
	var body struct {
		Members []domain.Participant `json:"members"`
	}
	req.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	req.Len(body.Members, 2)
	req.Equal(domain.RoleAdmin, body.Members[0].Role)
	req.Equal("bob", body.Members[1].Username)

	w = get(r, "/api/rooms/nope/members")
	req.Equal(http.StatusNotFound, w.Code)
}

func TestRouter_ICEServers(t *testing.T) {
	req := require.New(t)
	r, _ := newRouter(t)

	w := get(r, "/api/ice-servers")
	req.Equal(http.StatusOK, w.Code)
	var body struct {
		ICEServers []struct {
			URLs []string `json:"urls"`
		} `json:"iceServers"`
	}
	req.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	req.Len(body.ICEServers, 1)
	req.Equal([]string{"stun:stun.example.org:3478"}, body.ICEServers[0].URLs)
}
