package middleware

import (
	"log/slog"
	"slices"
	"strings"

	"space-booking/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewCORSMiddleware treats "*" in CORS_ALLOW_ORIGINS as allow-all. Credentials
// are never allowed together with a wildcard origin. With no origins configured
// no CORS headers are sent, so only same-origin callers can read responses.
func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	origins := slices.DeleteFunc(slices.Clone(cfg.AllowOrigins), func(o string) bool {
		return strings.TrimSpace(o) == ""
	})
	if len(origins) == 0 {
		slog.Warn("CORS disabled: CORS_ALLOW_ORIGINS is empty")
		return func(c *gin.Context) { c.Next() }
	}

	corsCfg := cors.Config{
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     append(slices.Clone(cfg.AllowHeaders), requestIDHeader),
		ExposeHeaders:    append(slices.Clone(cfg.ExposeHeaders), requestIDHeader),
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}

	if slices.Contains(origins, "*") {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = origins
	}

	slog.Info("CORS middleware initialized",
		"allow_origins", origins,
		"allow_credentials", corsCfg.AllowCredentials)
	return cors.New(corsCfg)
}
