package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/docsync/relay/internal/config"
	"github.com/docsync/relay/internal/core"
)

// StatsResponse reports live relay counters.
type StatsResponse struct {
	Rooms       int `json:"rooms"`
	Members     int `json:"members"`
	Connections int `json:"connections"`
}

// NewServer builds the HTTP server: websocket endpoint plus health and stats.
func NewServer(registry *core.Registry, rooms *core.Manager, router *core.Router, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.GET("/health", func(c *gin.Context) {
		c.String(stdhttp.StatusOK, "ok")
	})

	engine.GET("/api/stats", func(c *gin.Context) {
		roomCount, memberCount := rooms.Stats()
		c.JSON(stdhttp.StatusOK, StatsResponse{
			Rooms:       roomCount,
			Members:     memberCount,
			Connections: registry.Count(),
		})
	})

	ws := NewWSHandler(registry, rooms, router, cfg.MaxMessageBytes, logger)
	engine.GET("/ws", gin.WrapH(ws))

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           engine,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}
