package transcribe

import (
	"context"
	"errors"
)

// ErrTranscriptionFailed wraps any service-side failure: a rejected job, a
// FAILED status, or a poll timeout. The whole job aborts on it.
var ErrTranscriptionFailed = errors.New("transcription failed")

// Backend is the transcription service contract: submit a media reference,
// wait for completion, return the parsed raw result.
type Backend interface {
	Transcribe(ctx context.Context, mediaURI, jobBase string) (*RawResult, error)
}
