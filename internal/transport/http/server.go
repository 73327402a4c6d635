package http

import (
	"fmt"
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/planhub/chat-server/internal/auth"
	"github.com/planhub/chat-server/internal/config"
	"github.com/planhub/chat-server/internal/core"
	"github.com/planhub/chat-server/internal/metrics"
)

// NewServer builds the HTTP server carrying the websocket endpoint plus
// health and metrics routes.
func NewServer(hub *core.Hub, jwtCfg *auth.JWTConfig, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(LoggerMiddleware(logger))
	r.Use(metrics.GinMiddleware())

	r.GET("/health", healthHandler)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	ws := NewWSHandler(hub, jwtCfg, cfg.EventsPerMinute, logger)
	r.GET("/ws", gin.WrapH(ws))

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	fmt.Fprint(c.Writer, "ok")
}
