package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// smallMP3Bytes is the size below which an MP3 upload is sent to the
// transcription service as-is instead of being re-encoded.
const smallMP3Bytes = 3 * 1024 * 1024 / 2 // 1.5MB

// uploadExts are the container formats accepted from clients.
var uploadExts = map[string]bool{
	".mp3":  true,
	".webm": true,
	".wav":  true,
	".m4a":  true,
}

// SupportedUpload reports whether the file name carries an accepted audio
// extension.
func SupportedUpload(name string) bool {
	return uploadExts[strings.ToLower(filepath.Ext(name))]
}

// ToMP3 re-encodes the source audio into mono MP3 at the configured sample
// rate and bitrate. Small MP3 inputs skip the round trip unless
// force_reencode is set.
func (e *implEncoder) ToMP3(ctx context.Context, srcPath string) (string, error) {
	if !SupportedUpload(srcPath) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedInput, filepath.Ext(srcPath))
	}

	if !e.cfg.ForceReencode && e.isSmallMP3(srcPath) {
		e.logger.Info(ctx, "Skipping re-encode: already a small MP3: %s", srcPath)
		return srcPath, nil
	}

	if err := os.MkdirAll(e.cfg.TempDir, 0755); err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(srcPath), filepath.Ext(srcPath))
	mp3Path := filepath.Join(e.cfg.TempDir, base+".mp3")
	// Uploads are saved into the temp dir too; ffmpeg cannot write its
	// input file in place, so such sources get a distinct output name.
	if filepath.Clean(mp3Path) == filepath.Clean(srcPath) {
		mp3Path = filepath.Join(e.cfg.TempDir, base+"_enc.mp3")
	}

	e.logger.Info(ctx, "Re-encoding %s -> %s (%dHz, %dch, %s)",
		srcPath, mp3Path, e.cfg.SampleRate, e.cfg.Channels, e.cfg.Bitrate)

	// FFmpeg arguments for transcription-friendly audio
	// -vn: drop any video/cover-art stream
	// -ar: target sample rate
	// -ac: channel count (mono keeps diarization stable)
	// -b:a: audio bitrate
	// -y: overwrite output if present
	args := []string{
		"-i", srcPath,
		"-vn",
		"-ar", strconv.Itoa(e.cfg.SampleRate),
		"-ac", strconv.Itoa(e.cfg.Channels),
		"-b:a", e.cfg.Bitrate,
		"-y",
		mp3Path,
	}

	if _, err := e.executor.Execute(ctx, "ffmpeg", args...); err != nil {
		return "", fmt.Errorf("ffmpeg re-encode: %w", err)
	}

	e.logger.Info(ctx, "Re-encoded to optimized MP3: %s", mp3Path)
	return mp3Path, nil
}

func (e *implEncoder) isSmallMP3(path string) bool {
	if !strings.EqualFold(filepath.Ext(path), ".mp3") {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Size() < smallMP3Bytes
}
