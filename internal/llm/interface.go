package llm

import "context"

// Provider is the completion-service contract: one prompt in, generated
// text out. Both role classification and summarization go through it.
type Provider interface {
	Complete(ctx context.Context, system, user string) (string, error)
}
