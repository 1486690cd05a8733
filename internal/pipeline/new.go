package pipeline

import (
	"github.com/medscribe/scribe-flow/internal/config"
	"github.com/medscribe/scribe-flow/internal/logger"
	"github.com/medscribe/scribe-flow/internal/media"
	"github.com/medscribe/scribe-flow/internal/roles"
	"github.com/medscribe/scribe-flow/internal/storage"
	"github.com/medscribe/scribe-flow/internal/summary"
	"github.com/medscribe/scribe-flow/internal/transcribe"
)

type implPipeline struct {
	cfg       *config.Config
	encoder   media.Encoder
	store     storage.Store
	backend   transcribe.Backend
	assigner  roles.Assigner
	generator summary.Generator
	logger    logger.Logger
}

// New creates a Pipeline instance wired with all its collaborators.
func New(
	cfg *config.Config,
	enc media.Encoder,
	store storage.Store,
	backend transcribe.Backend,
	assigner roles.Assigner,
	gen summary.Generator,
	log logger.Logger,
) Pipeline {
	return &implPipeline{
		cfg:       cfg,
		encoder:   enc,
		store:     store,
		backend:   backend,
		assigner:  assigner,
		generator: gen,
		logger:    log,
	}
}
