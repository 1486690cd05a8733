package media

import (
	"github.com/medscribe/scribe-flow/internal/config"
	"github.com/medscribe/scribe-flow/internal/logger"
	"github.com/medscribe/scribe-flow/pkg/executor"
)

type implEncoder struct {
	cfg      config.AudioConfig
	executor executor.Executor
	logger   logger.Logger
}

// New creates a new Encoder instance
func New(cfg config.AudioConfig, exec executor.Executor, log logger.Logger) Encoder {
	return &implEncoder{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}
