package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/medscribe/scribe-flow/internal/config"
	"github.com/medscribe/scribe-flow/internal/logger"
)

type implStore struct {
	client   *s3.Client
	uploader *manager.Uploader
	bucket   string
	region   string
	logger   logger.Logger
}

// New creates an S3-backed Store, making sure the bucket exists and has
// transfer acceleration enabled when configured.
func New(ctx context.Context, awsCfg aws.Config, cfg config.AWSConfig, log logger.Logger) (Store, error) {
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UseAccelerate = cfg.S3Accelerate
	})

	uploader := manager.NewUploader(client, func(u *manager.Uploader) {
		u.PartSize = int64(cfg.S3PartSizeMB) * 1024 * 1024
		u.Concurrency = cfg.S3MaxConcurrency
	})

	s := &implStore{
		client:   client,
		uploader: uploader,
		bucket:   cfg.Bucket,
		region:   cfg.Region,
		logger:   log,
	}

	if err := s.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("ensure bucket: %w", err)
	}
	if cfg.S3Accelerate {
		s.ensureAcceleration(ctx)
	}

	return s, nil
}

func (s *implStore) ensureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err == nil {
		return nil
	}

	input := &s3.CreateBucketInput{Bucket: aws.String(s.bucket)}
	if s.region != "us-east-1" {
		input.CreateBucketConfiguration = &s3types.CreateBucketConfiguration{
			LocationConstraint: s3types.BucketLocationConstraint(s.region),
		}
	}
	if _, err := s.client.CreateBucket(ctx, input); err != nil {
		return fmt.Errorf("create bucket %s: %w", s.bucket, err)
	}

	waiter := s3.NewBucketExistsWaiter(s.client)
	if err := waiter.Wait(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)}, time.Minute); err != nil {
		return fmt.Errorf("wait for bucket %s: %w", s.bucket, err)
	}

	s.logger.Info(ctx, "Created S3 bucket: %s", s.bucket)
	return nil
}

// ensureAcceleration enables transfer acceleration on the bucket. Failures
// are logged, not fatal: regular endpoints still work.
func (s *implStore) ensureAcceleration(ctx context.Context) {
	conf, err := s.client.GetBucketAccelerateConfiguration(ctx, &s3.GetBucketAccelerateConfigurationInput{
		Bucket: aws.String(s.bucket),
	})
	if err == nil && conf.Status == s3types.BucketAccelerateStatusEnabled {
		return
	}

	_, err = s.client.PutBucketAccelerateConfiguration(ctx, &s3.PutBucketAccelerateConfigurationInput{
		Bucket: aws.String(s.bucket),
		AccelerateConfiguration: &s3types.AccelerateConfiguration{
			Status: s3types.BucketAccelerateStatusEnabled,
		},
	})
	if err != nil {
		s.logger.Warn(ctx, "Could not enable S3 acceleration for %s: %v", s.bucket, err)
		return
	}
	s.logger.Info(ctx, "Enabled S3 transfer acceleration for bucket: %s", s.bucket)
}
