package watcher

import "context"

// Watcher monitors a drop folder and hands new audio files to a handler.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler processes one newly dropped audio file.
type EventHandler func(ctx context.Context, filePath string) error
