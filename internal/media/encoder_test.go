package media

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/medscribe/scribe-flow/internal/config"
	"github.com/medscribe/scribe-flow/internal/logger"
)

type fakeExecutor struct {
	calls [][]string
	err   error
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	return "", f.err
}

func testConfig(tempDir string) config.AudioConfig {
	return config.AudioConfig{
		SampleRate: 16000,
		Channels:   1,
		Bitrate:    "64k",
		TempDir:    tempDir,
	}
}

func TestSupportedUpload(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"visit.mp3", true},
		{"visit.MP3", true},
		{"visit.wav", true},
		{"visit.m4a", true},
		{"visit.webm", true},
		{"visit.txt", false},
		{"visit.mp4", false},
		{"visit", false},
	}

	for _, tt := range tests {
		if got := SupportedUpload(tt.name); got != tt.want {
			t.Errorf("SupportedUpload(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestToMP3SkipsSmallMP3(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "clip.mp3")
	if err := os.WriteFile(src, bytes.Repeat([]byte("a"), 1024), 0644); err != nil {
		t.Fatal(err)
	}

	exec := &fakeExecutor{}
	enc := New(testConfig(dir), exec, logger.NewWithWriter(io.Discard, "error"))

	out, err := enc.ToMP3(context.Background(), src)
	if err != nil {
		t.Fatal(err)
	}
	if out != src {
		t.Errorf("ToMP3 = %q, want unchanged %q", out, src)
	}
	if len(exec.calls) != 0 {
		t.Errorf("ffmpeg should not run for a small MP3")
	}
}

func TestToMP3ReencodesOtherFormats(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "clip.wav")
	if err := os.WriteFile(src, []byte("riff bytes"), 0644); err != nil {
		t.Fatal(err)
	}

	exec := &fakeExecutor{}
	enc := New(testConfig(dir), exec, logger.NewWithWriter(io.Discard, "error"))

	out, err := enc.ToMP3(context.Background(), src)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Ext(out) != ".mp3" {
		t.Errorf("output = %q, want .mp3", out)
	}
	if len(exec.calls) != 1 {
		t.Fatalf("ffmpeg calls = %d, want 1", len(exec.calls))
	}

	call := exec.calls[0]
	if call[0] != "ffmpeg" {
		t.Errorf("command = %q, want ffmpeg", call[0])
	}
	wantArgs := map[string]string{"-ar": "16000", "-ac": "1", "-b:a": "64k"}
	for flag, value := range wantArgs {
		found := false
		for i := 1; i < len(call)-1; i++ {
			if call[i] == flag && call[i+1] == value {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("ffmpeg args missing %s %s: %v", flag, value, call[1:])
		}
	}
}

func TestToMP3LargeMP3InTempDirGetsDistinctOutput(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "upload-123456.mp3")
	if err := os.WriteFile(src, bytes.Repeat([]byte("a"), 2*1024*1024), 0644); err != nil {
		t.Fatal(err)
	}

	exec := &fakeExecutor{}
	enc := New(testConfig(dir), exec, logger.NewWithWriter(io.Discard, "error"))

	out, err := enc.ToMP3(context.Background(), src)
	if err != nil {
		t.Fatal(err)
	}
	if out == src {
		t.Fatalf("output path equals input path %q", src)
	}
	if len(exec.calls) != 1 {
		t.Fatalf("ffmpeg calls = %d, want 1", len(exec.calls))
	}

	call := exec.calls[0]
	inputArg, outputArg := call[2], call[len(call)-1]
	if inputArg != src {
		t.Errorf("ffmpeg input = %q, want %q", inputArg, src)
	}
	if outputArg == inputArg {
		t.Errorf("ffmpeg output equals input: %q", outputArg)
	}
}

func TestToMP3RejectsUnsupportedInput(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "clip.flac")
	if err := os.WriteFile(src, []byte("flac bytes"), 0644); err != nil {
		t.Fatal(err)
	}

	exec := &fakeExecutor{}
	enc := New(testConfig(dir), exec, logger.NewWithWriter(io.Discard, "error"))

	_, err := enc.ToMP3(context.Background(), src)
	if !errors.Is(err, ErrUnsupportedInput) {
		t.Errorf("err = %v, want ErrUnsupportedInput", err)
	}
	if len(exec.calls) != 0 {
		t.Errorf("ffmpeg should not run for unsupported input")
	}
}

func TestToMP3ForceReencode(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "clip.mp3")
	if err := os.WriteFile(src, []byte("tiny"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := testConfig(dir)
	cfg.ForceReencode = true
	exec := &fakeExecutor{}
	enc := New(cfg, exec, logger.NewWithWriter(io.Discard, "error"))

	out, err := enc.ToMP3(context.Background(), src)
	if err != nil {
		t.Fatal(err)
	}
	if len(exec.calls) != 1 {
		t.Fatalf("ffmpeg calls = %d, want 1 with force_reencode", len(exec.calls))
	}
	if got := exec.calls[0][len(exec.calls[0])-1]; got == src {
		t.Errorf("ffmpeg output equals input: %q", got)
	}
	if out == src {
		t.Errorf("output path equals input path %q", src)
	}
}
