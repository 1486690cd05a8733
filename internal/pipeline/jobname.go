package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	slugMaxLen  = 20
	hashHexLen  = 6
	timeLayout  = "20060102_150405"
	defaultSlug = "conversation"
)

var slugCleaner = regexp.MustCompile(`[^a-z0-9]+`)

// slugify makes a short, URL-safe slug from a file name (extension
// dropped).
func slugify(name string) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	base = strings.ToLower(strings.TrimSpace(base))
	base = slugCleaner.ReplaceAllString(base, "_")
	base = strings.Trim(base, "_")
	if base == "" {
		return defaultSlug
	}
	if len(base) > slugMaxLen {
		base = base[:slugMaxLen]
	}
	return base
}

// jobName builds <slug>_<timestamp>_<hash>: unique across concurrent jobs
// via the timestamp plus a short hash of the audio content. The timestamp
// is UTC so names sort the same on every host.
func jobName(originalName, audioPath string) string {
	return slugify(originalName) + "_" +
		time.Now().UTC().Format(timeLayout) + "_" +
		contentHash(audioPath)
}

// contentHash returns a short hex hash of the audio bytes, falling back to
// a random id when the file cannot be read.
func contentHash(audioPath string) string {
	f, err := os.Open(audioPath)
	if err != nil {
		return randomID()
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return randomID()
	}
	return hex.EncodeToString(h.Sum(nil))[:hashHexLen]
}

func randomID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:hashHexLen]
}
