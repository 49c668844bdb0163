package middleware

import (
	"io"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/sirupsen/logrus"
)

// RequestLogger writes one structured entry per request.
func RequestLogger(log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return handlers.CustomLoggingHandler(io.Discard, next, func(_ io.Writer, p handlers.LogFormatterParams) {
			log.WithFields(logrus.Fields{
				"method":   p.Request.Method,
				"path":     p.URL.Path,
				"status":   p.StatusCode,
				"size":     p.Size,
				"remote":   p.Request.RemoteAddr,
				"duration": time.Since(p.TimeStamp).String(),
			}).Info("request")
		})
	}
}

// Recover turns panics into 500 responses and logs them.
func Recover(log *logrus.Logger) func(http.Handler) http.Handler {
	return handlers.RecoveryHandler(
		handlers.RecoveryLogger(log),
		handlers.PrintRecoveryStack(true),
	)
}
