package transcript

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile persists the composed transcript under outputDir as
// <jobName>_conversation.txt. The content goes into a temp file first, then
// the final name is claimed with a hard link, which fails on an existing
// file instead of replacing it. On a name collision the file is re-suffixed
// and the claim retried, so concurrent jobs can never clobber each other.
func WriteFile(outputDir, jobName, content string) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(outputDir, ".transcript-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("write transcript: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("close transcript: %w", err)
	}

	path := filepath.Join(outputDir, jobName+"_conversation.txt")
	for n := 1; ; n++ {
		err := os.Link(tmpName, path)
		if err == nil {
			break
		}
		if !errors.Is(err, os.ErrExist) {
			os.Remove(tmpName)
			return "", fmt.Errorf("finalize transcript: %w", err)
		}
		path = filepath.Join(outputDir, fmt.Sprintf("%s_%d_conversation.txt", jobName, n))
	}
	os.Remove(tmpName)

	return path, nil
}
