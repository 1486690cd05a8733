package server

import "context"

// Server exposes the HTTP API: upload-and-process plus transcript download.
type Server interface {
	Start() error
	Shutdown(ctx context.Context) error
}
