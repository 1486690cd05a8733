package media

import (
	"context"
	"errors"
)

// ErrUnsupportedInput is returned for uploads whose container format the
// pipeline does not accept.
var ErrUnsupportedInput = errors.New("unsupported audio input")

// Encoder normalizes uploaded audio into the format the transcription
// service works best with.
type Encoder interface {
	// ToMP3 re-encodes srcPath into a mono low-bitrate MP3 inside the temp
	// dir and returns the new path. May return srcPath unchanged when the
	// file is already a small MP3 and re-encoding is not forced.
	ToMP3(ctx context.Context, srcPath string) (string, error)
}
