package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Put uploads a local file with the multipart uploader and returns its
// s3:// URI.
func (s *implStore) Put(ctx context.Context, localPath, key string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", localPath, err)
	}
	defer f.Close()

	contentType := mime.TypeByExtension(filepath.Ext(localPath))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	s.logger.Debug(ctx, "Uploading %s to s3://%s/%s", localPath, s.bucket, key)

	_, err = s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}

// Fetch reads the contents behind a URI. Transcription results come back as
// either s3:// URIs (medical jobs write into our bucket) or presigned
// amazonaws.com URLs (standard jobs).
func (s *implStore) Fetch(ctx context.Context, rawURI string) ([]byte, error) {
	if strings.HasPrefix(rawURI, "s3://") {
		trimmed := strings.TrimPrefix(rawURI, "s3://")
		bucket, key, ok := strings.Cut(trimmed, "/")
		if !ok {
			return nil, fmt.Errorf("malformed s3 uri: %s", rawURI)
		}
		return s.getObject(ctx, bucket, key)
	}

	if strings.Contains(rawURI, "amazonaws.com") {
		parsed, err := url.Parse(rawURI)
		if err != nil {
			return nil, fmt.Errorf("parse uri %s: %w", rawURI, err)
		}
		// Path-style URL: /<bucket>/<key>
		bucket, key, ok := strings.Cut(strings.TrimPrefix(parsed.Path, "/"), "/")
		if ok && bucket != "" && key != "" {
			if data, err := s.getObject(ctx, bucket, key); err == nil {
				return data, nil
			}
		}
		// Fall through to plain HTTP for presigned or virtual-hosted URLs.
	}

	return fetchHTTP(ctx, rawURI)
}

func (s *implStore) getObject(ctx context.Context, bucket, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	return io.ReadAll(out.Body)
}

func fetchHTTP(ctx context.Context, rawURI string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURI, nil)
	if err != nil {
		return nil, err
	}

	client := &http.Client{Timeout: 5 * time.Minute}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fetch %s: %s: %s", rawURI, resp.Status, string(body))
	}

	return io.ReadAll(resp.Body)
}
