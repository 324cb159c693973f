// Package health serves the liveness endpoint.
package health

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type healthInfo struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
	Time   string `json:"time"`
}

// NewRouter returns the liveness routes
func NewRouter(startedAt time.Time, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("I'm alive!"))
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		info := healthInfo{
			Status: "ok",
			Uptime: time.Since(startedAt).Truncate(time.Second).String(),
			Time:   time.Now().UTC().Format(time.RFC3339),
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(info); err != nil {
			logger.Warn("Failed to write health response", zap.Error(err))
		}
	})

	return r
}

// NewServer creates the liveness HTTP server on addr
func NewServer(addr string, startedAt time.Time, logger *zap.Logger) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           NewRouter(startedAt, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}
}
