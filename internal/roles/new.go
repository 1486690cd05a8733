package roles

import (
	"github.com/medscribe/scribe-flow/internal/logger"
)

type implAssigner struct {
	classifier Classifier // nil: positional fallback instead of service calls
	logger     logger.Logger
}

// New creates an Assigner. A nil classifier limits assignment to heuristics
// plus the positional fallback.
func New(classifier Classifier, log logger.Logger) Assigner {
	return &implAssigner{
		classifier: classifier,
		logger:     log,
	}
}
