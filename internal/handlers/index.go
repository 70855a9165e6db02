// Package handlers exposes sessions over a JSON HTTP API with live updates.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/aaronzipp/who-is-the-wolf/internal/config"
	"github.com/aaronzipp/who-is-the-wolf/internal/service"
)

// Context holds shared application dependencies
type Context struct {
	Manager *service.Manager
	Config  *config.Config
}

// SetupRouter builds the gin engine with every route mounted
func SetupRouter(cfg *config.Config, manager *service.Manager) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	ctx := &Context{Manager: manager, Config: cfg}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	store := cookie.NewStore([]byte(cfg.Secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int((30 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(identityCookie, store))
	r.Use(IdentityMiddleware())

	r.GET("/health", ctx.HandleHealth)

	api := r.Group("/api")
	api.POST("/identity", ctx.HandleSetIdentity)
	api.GET("/me", ctx.HandleMe)
	api.GET("/scores", ctx.HandleScores)

	api.GET("/sessions", ctx.HandleListLobbies)
	api.POST("/sessions", ctx.HandleCreateSession)

	s := api.Group("/sessions/:id")
	s.GET("", ctx.HandleGetSession)
	s.POST("/join", ctx.HandleJoin)
	s.POST("/leave", ctx.HandleLeave)
	s.POST("/bots", ctx.HandleAddBots)
	s.POST("/clues", ctx.HandleSubmitClues)
	s.POST("/vote", ctx.HandleVote)
	s.GET("/events", ctx.HandleSSE)
	s.GET("/ws", ctx.HandleWebSocket)
	s.GET("/qr", ctx.HandleQRCode)

	log.Info().Str("module", "handlers").Str("mode", cfg.Mode).Msg("router setup")
	return r
}

// HandleHealth reports liveness
func (ctx *Context) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

const defaultPingPeriod = 54 * time.Second

func (ctx *Context) pingPeriod() time.Duration {
	if ctx.Config.PingPeriod > 0 {
		return ctx.Config.PingPeriod
	}
	return defaultPingPeriod
}
