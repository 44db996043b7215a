// Package logging builds the zap loggers used by the server and the CLI.
package logging

import (
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// New returns a development logger when debug is set and a production logger
// otherwise.
func New(debug bool) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("can't initialize zap logger: %w", err)
	}
	return logger, nil
}

// Requests logs one line per request served by next.
func Requests(logger *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Info("Served request",
			zap.String("method", r.Method),
			zap.Stringer("url", r.URL),
			zap.Duration("elapsed", time.Since(start)))
	})
}
