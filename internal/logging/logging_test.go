package logging

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	req := require.New(t)
	req.Equal(zerolog.DebugLevel, parseLevel("DEBUG"))
	req.Equal(zerolog.WarnLevel, parseLevel(" warning "))
	req.Equal(zerolog.InfoLevel, parseLevel(""))
	req.Equal(zerolog.InfoLevel, parseLevel("nonsense"))
}

func TestNew_AddsServiceField(t *testing.T) {
	req := require.New(t)
	var buf bytes.Buffer

	logger := New(Config{Level: "info", ServiceName: "coderoom"}, &buf)
	logger.Info().Msg("hello")

	var line map[string]any
	req.NoError(json.Unmarshal(buf.Bytes(), &line))
	req.Equal("coderoom", line[FieldService])
	req.Equal("hello", line["message"])
}

func TestGinMiddleware_SetsRequestID(t *testing.T) {
	req := require.New(t)
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer

	r := gin.New()
	r.Use(GinMiddleware(New(Config{Level: "info"}, &buf)))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	// Given a request without an id
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	// Then one is generated and the completion is logged
	req.NotEmpty(w.Header().Get(headerRequestID))
	var line map[string]any
	req.NoError(json.Unmarshal(buf.Bytes(), &line))
	req.Equal("request completed", line["message"])
	req.Equal(w.Header().Get(headerRequestID), line[FieldRequestID])
	req.EqualValues(http.StatusNoContent, line[FieldStatus])

	// Given a request carrying an id, it is echoed back
	w = httptest.NewRecorder()
	r2 := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r2.Header.Set(headerRequestID, "abc")
	r.ServeHTTP(w, r2)
	req.Equal("abc", w.Header().Get(headerRequestID))
}

func TestLatencyMS_KeepsFraction(t *testing.T) {
	req := require.New(t)
	req.InDelta(1.5, latencyMS(1500*time.Microsecond), 1e-9)
	req.InDelta(0.25, latencyMS(250*time.Microsecond), 1e-9)
	req.InDelta(0.0, latencyMS(0), 1e-9)
}
