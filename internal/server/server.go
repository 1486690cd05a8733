package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
)

// Start blocks serving HTTP until Shutdown is called or the listener
// fails.
func (s *implServer) Start() error {
	s.logger.Info(context.Background(), "HTTP server listening on %s", s.cfg.Server.ListenAddr)

	if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests up to the context deadline.
func (s *implServer) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

func (s *implServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *implServer) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error(context.Background(), "Failed to encode response: %v", err)
	}
}

func (s *implServer) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
