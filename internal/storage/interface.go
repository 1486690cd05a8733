package storage

import "context"

// Store is the object-store contract the pipeline depends on: a durable put
// of the prepared audio and a fetch of the transcription result document.
type Store interface {
	// Put uploads a local file under key and returns a URI the
	// transcription service can read from.
	Put(ctx context.Context, localPath, key string) (string, error)

	// Fetch retrieves the contents behind an s3:// or https URI.
	Fetch(ctx context.Context, rawURI string) ([]byte, error)
}
