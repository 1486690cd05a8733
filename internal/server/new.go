package server

import (
	"net/http"
	"time"

	"github.com/medscribe/scribe-flow/internal/config"
	"github.com/medscribe/scribe-flow/internal/logger"
	"github.com/medscribe/scribe-flow/internal/pipeline"
)

type implServer struct {
	cfg      *config.Config
	pipeline pipeline.Pipeline
	logger   logger.Logger
	httpSrv  *http.Server
}

// New creates the HTTP server with all routes registered.
func New(cfg *config.Config, p pipeline.Pipeline, log logger.Logger) Server {
	s := &implServer{
		cfg:      cfg,
		pipeline: p,
		logger:   log,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/transcribe-and-summarize", s.handleUpload)
	mux.HandleFunc("GET /api/download/{name}", s.handleDownload)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	s.httpSrv = &http.Server{
		Addr:    cfg.Server.ListenAddr,
		Handler: mux,
		// Jobs poll the transcription service for a long time; keep the
		// write side open well past typical job durations.
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return s
}
