package main

import (
	"io"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func newLogger(cfg Config) zerolog.Logger {
	var w io.Writer = os.Stderr
	if cfg.PrettyLogs {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).Level(cfg.LogLevel).With().Timestamp().Logger()
}

// requestLogger replaces gin's default logger. Client IPs go through hashIP
// so raw addresses never reach the logs.
func requestLogger(logger zerolog.Logger) gin.HandlerFunc {
	logger = logger.With().Str("component", "http").Logger()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.Request.URL.Path
		if path == "/healthz" || path == "/metrics" {
			return
		}

		ev := logger.Info()
		if status := c.Writer.Status(); status >= 500 {
			ev = logger.Error()
		} else if status >= 400 {
			ev = logger.Warn()
		}
		ev.Str("method", c.Request.Method).
			Str("path", path).
			Int("status", c.Writer.Status()).
			Dur("took", time.Since(start)).
			Str("client", hashIP(c.ClientIP())).
			Msg("request")
	}
}
