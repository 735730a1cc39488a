// Package httpapi exposes the operator surface of the bot over HTTP:
// connection status, the recent-updates log, and Prometheus metrics.
// This is the JSON counterpart of the original admin status panel.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ypbrand/storebot/internal/config"
	"github.com/ypbrand/storebot/internal/feed"
	"github.com/ypbrand/storebot/internal/logger"
	"github.com/ypbrand/storebot/internal/telegram"
)

// Bot is the view of a session the API needs.
type Bot interface {
	Status() telegram.Status
	Identity() *telegram.Identity
	Recent() []feed.Entry
}

// Server serves the operator API.
type Server struct {
	cfg        config.HTTPConfig
	bot        Bot
	gatherer   prometheus.Gatherer
	logger     *logger.Logger
	httpServer *http.Server
}

// New creates a server for the given bot session.
func New(cfg config.HTTPConfig, bot Bot, gatherer prometheus.Gatherer, log *logger.Logger) *Server {
	return &Server{
		cfg:      cfg,
		bot:      bot,
		gatherer: gatherer,
		logger:   log,
	}
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/api/status", s.handleStatus)
	r.Get("/api/updates", s.handleUpdates)
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	return r
}

type statusResponse struct {
	Status   telegram.Status    `json:"status"`
	Identity *telegram.Identity `json:"identity,omitempty"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, statusResponse{
		Status:   s.bot.Status(),
		Identity: s.bot.Identity(),
	})
}

type updatesResponse struct {
	Updates []feed.Entry `json:"updates"`
}

func (s *Server) handleUpdates(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, updatesResponse{Updates: s.bot.Recent()})
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", err)
	}
}

// Handler returns the configured router; useful for tests.
func (s *Server) Handler() http.Handler {
	return s.buildRouter()
}

// Start begins listening on the configured address. It does not block.
func (s *Server) Start() {
	s.httpServer = &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.buildRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		s.logger.Info("http api listening", logger.Field{Key: "addr", Value: s.cfg.Listen})
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("http api stopped", err)
		}
	}()
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
