package summary

import (
	"github.com/medscribe/scribe-flow/internal/llm"
	"github.com/medscribe/scribe-flow/internal/logger"
)

// maxInputChars is the per-call input budget. Longer transcripts get the
// two-level chunked reduce.
const defaultMaxInputChars = 24000

type implGenerator struct {
	provider      llm.Provider
	logger        logger.Logger
	maxInputChars int
}

// New creates a Generator backed by a completion provider.
func New(provider llm.Provider, log logger.Logger) Generator {
	return &implGenerator{
		provider:      provider,
		logger:        log,
		maxInputChars: defaultMaxInputChars,
	}
}
