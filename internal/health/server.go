// Package health exposes a lightweight HTTP endpoint used by container
// probes and hosting keep-alive pings.
package health

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const (
	dbPingTimeout     = 2 * time.Second
	readHeaderTimeout = 2 * time.Second
)

// Pinger is the subset of store behavior the health check needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server hosts GET /healthz and owns the underlying HTTP server.
type Server struct {
	server *http.Server
	log    *slog.Logger
	db     Pinger
}

type response struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}

// NewServer constructs a health server listening on the given port.
func NewServer(port int, db Pinger, log *slog.Logger) *Server {
	srv := &Server{
		log: log.With("component", "health"),
		db:  db,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", srv.handleHealth)

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	return srv
}

// ListenAndServe starts the server and blocks until it is shut down.
func (s *Server) ListenAndServe() error {
	s.log.Info("Starting health server", "addr", s.server.Addr)

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("health server listen: %w", err)
	}

	s.log.Info("Health server stopped")
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := response{Status: "ok"}

	if s.db != nil {
		pingCtx, cancel := context.WithTimeout(r.Context(), dbPingTimeout)
		err := s.db.Ping(pingCtx)
		cancel()

		if err != nil {
			s.log.WarnContext(r.Context(), "Database ping failed during health check", "error", err)
			resp.Status = "degraded"
			resp.Database = "error"
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.log.Error("Failed to encode health response", "error", err)
	}
}
