package http

import (
	"context"
	"net/http"

	"github.com/dkeye/coderoom/internal/adapters/signal"
	"github.com/dkeye/coderoom/internal/app/orch"
	"github.com/dkeye/coderoom/internal/config"
	"github.com/dkeye/coderoom/internal/domain"
	"github.com/dkeye/coderoom/internal/logging"
	"github.com/dkeye/coderoom/internal/protocol"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	sessionName       = "CodeRoomSession"
	clientTokenKey    = "ct"
	clientTokenMaxAge = 3600 * 24 * 7
)

// ClientTokenMiddleware keeps a stable per-browser token in the signed session cookie.
// It only correlates logs; it is not an identity.
func ClientTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		token, _ := session.Get(clientTokenKey).(string)
		if token == "" {
			token = uuid.NewString()
			session.Set(clientTokenKey, token)
			if err := session.Save(); err != nil {
				log.Warn().Err(err).Str("module", "adapters.http").Msg("save session")
			}
		}
		c.Set(logging.FieldClient, token)
		c.Next()
	}
}

func SetupRouter(ctx context.Context, cfg *config.Config, o *orch.Orchestrator) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logging.GinMiddleware(log.Logger))

	store := cookie.NewStore([]byte(cfg.Secret))
	store.Options(sessions.Options{Path: "/", MaxAge: clientTokenMaxAge, HttpOnly: true})
	r.Use(sessions.Sessions(sessionName, store))
	r.Use(ClientTokenMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.Static("/static", cfg.StaticPath)
	r.GET("/", func(c *gin.Context) {
		c.File(cfg.StaticPath + "/index.html")
	})

	log.Info().Str("module", "adapters.http").Str("static", cfg.StaticPath).Msg("router setup")

	api := r.Group("/api")

	api.GET("/rooms", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"rooms": o.Registry.Rooms()})
	})

	api.GET("/rooms/:id/members", func(c *gin.Context) {
		members := o.Registry.ListByRoom(domain.RoomID(c.Param("id")))
		if len(members) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"members": members})
	})

	api.GET("/ice-servers", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"iceServers": protocol.ICEServers(cfg.ICEServers)})
	})

	ctrl := signal.NewSignalWSController(o, signal.OptionsFromConfig(cfg),
		signal.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Interval))
	api.GET("/ws", func(c *gin.Context) {
		log.Debug().Str("module", "adapters.http").Str("client", c.GetString(logging.FieldClient)).Msg("ws endpoint hit")
		ctrl.HandleSignal(ctx, c)
	})

	return r
}
