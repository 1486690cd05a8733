package pipeline

import "context"

// Result is what one completed job hands back to the HTTP layer.
type Result struct {
	JobName            string
	Service            string // "medical" or "standard"
	DocumentConfidence float64
	TranscriptPath     string
	DownloadURL        string
	SummaryText        string
	SummaryFailed      bool
}

// Pipeline runs one uploaded recording end-to-end: normalize audio, store
// it, transcribe, assign roles, compose the transcript file, summarize.
type Pipeline interface {
	Process(ctx context.Context, audioPath, originalName string) (*Result, error)
}
