package summary

import (
	"context"
	"errors"
)

// ErrSummaryUnavailable means the completion service could not produce a
// summary. The transcript file is still served; callers surface an explicit
// failure marker instead of empty text.
var ErrSummaryUnavailable = errors.New("summary unavailable")

// Generator produces the clinical summary of one composed transcript.
type Generator interface {
	Generate(ctx context.Context, transcriptText string) (string, error)
}
