package roles

import (
	"context"

	"github.com/medscribe/scribe-flow/internal/transcript"
)

// Classifier decides the clinical role of one speaker from everything that
// speaker said. It is the only externally-dependent decision in the
// pipeline, kept narrow so tests can substitute it.
type Classifier interface {
	Classify(ctx context.Context, speakerText string) (transcript.Role, error)
}

// Assigner maps every distinct speaker in a conversation to exactly one
// role. The mapping is total and stable for the whole job.
type Assigner interface {
	Assign(ctx context.Context, turns []transcript.Turn) map[string]transcript.Role
}
