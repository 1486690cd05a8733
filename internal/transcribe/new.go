package transcribe

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	awstranscribe "github.com/aws/aws-sdk-go-v2/service/transcribe"

	"github.com/medscribe/scribe-flow/internal/config"
	"github.com/medscribe/scribe-flow/internal/logger"
	"github.com/medscribe/scribe-flow/internal/storage"
)

type implBackend struct {
	client *awstranscribe.Client
	cfg    config.TranscribeConfig
	bucket string
	store  storage.Store
	logger logger.Logger
}

// New creates an AWS Transcribe backed Backend. The store is used to fetch
// the result JSON the service writes on completion.
func New(awsCfg aws.Config, cfg config.TranscribeConfig, bucket string, store storage.Store, log logger.Logger) Backend {
	return &implBackend{
		client: awstranscribe.NewFromConfig(awsCfg),
		cfg:    cfg,
		bucket: bucket,
		store:  store,
		logger: log,
	}
}
