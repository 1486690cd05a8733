package transcript

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestComposeMergesConsecutiveSameRole(t *testing.T) {
	turns := []Turn{
		{Speaker: "Speaker 1", Start: 0, End: 1, Text: "hello"},
		{Speaker: "Speaker 1", Start: 1.2, End: 2, Text: "world"},
		{Speaker: "Speaker 2", Start: 2.5, End: 3, Text: "hi"},
	}
	roles := map[string]Role{
		"Speaker 1": RoleDoctor,
		"Speaker 2": RolePatient,
	}

	blocks := Compose(turns, roles)
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2: %+v", len(blocks), blocks)
	}
	if blocks[0].Role != RoleDoctor {
		t.Errorf("block 0 role = %v, want doctor", blocks[0].Role)
	}
	joined := strings.Join(blocks[0].Lines, " ")
	if !strings.Contains(joined, "hello") || !strings.Contains(joined, "world") {
		t.Errorf("doctor block missing merged text: %q", joined)
	}
	if blocks[1].Role != RolePatient || strings.Join(blocks[1].Lines, " ") != "hi" {
		t.Errorf("patient block = %+v", blocks[1])
	}
}

func TestComposeSameSpeakersAlternatingRoles(t *testing.T) {
	turns := []Turn{
		{Speaker: "Speaker 1", Start: 0, End: 1, Text: "a"},
		{Speaker: "Speaker 2", Start: 1, End: 2, Text: "b"},
		{Speaker: "Speaker 1", Start: 2, End: 3, Text: "c"},
	}
	roles := map[string]Role{
		"Speaker 1": RoleDoctor,
		"Speaker 2": RolePatient,
	}

	blocks := Compose(turns, roles)
	if len(blocks) != 3 {
		t.Fatalf("got %d blocks, want 3", len(blocks))
	}
}

func TestComposePauseStartsNewLine(t *testing.T) {
	turns := []Turn{
		{Speaker: "Speaker 1", Start: 0, End: 1, Text: "first thought."},
		{Speaker: "Speaker 1", Start: 5, End: 6, Text: "second thought."},
	}
	roles := map[string]Role{"Speaker 1": RoleDoctor}

	blocks := Compose(turns, roles)
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	if len(blocks[0].Lines) != 2 {
		t.Fatalf("got %d lines, want pause to split into 2: %+v", len(blocks[0].Lines), blocks[0].Lines)
	}
}

func TestComposeUnknownSpeakerIsOther(t *testing.T) {
	turns := []Turn{{Speaker: "Speaker 9", Start: 0, End: 1, Text: "hm"}}
	blocks := Compose(turns, map[string]Role{})
	if len(blocks) != 1 || blocks[0].Role != RoleOther {
		t.Errorf("blocks = %+v, want single Other block", blocks)
	}
}

func TestComposeNilMappingUnlabeled(t *testing.T) {
	turns := []Turn{{Speaker: "Speaker 1", Text: "the whole conversation"}}
	blocks := Compose(turns, nil)
	if len(blocks) != 1 || blocks[0].Role != "" {
		t.Fatalf("blocks = %+v, want single unlabeled block", blocks)
	}

	out := Render(blocks, 0)
	if strings.Contains(out, "[") {
		t.Errorf("unlabeled render has role headers: %q", out)
	}
	if !strings.Contains(out, "the whole conversation") {
		t.Errorf("unlabeled render missing text: %q", out)
	}
}

func TestRenderFormat(t *testing.T) {
	blocks := []Block{
		{Role: RoleDoctor, Lines: []string{"What brings you in today?"}},
		{Role: RolePatient, Lines: []string{"I have a headache."}},
	}

	out := Render(blocks, 0.9532)
	if !strings.Contains(out, "Document confidence: 0.9532 (95.3%)") {
		t.Errorf("missing confidence header: %q", out)
	}
	if !strings.Contains(out, "[Doctor] What brings you in today?") {
		t.Errorf("missing doctor line: %q", out)
	}
	if !strings.Contains(out, "[Patient] I have a headache.") {
		t.Errorf("missing patient line: %q", out)
	}
}

func TestRenderIdempotent(t *testing.T) {
	turns := []Turn{
		{Speaker: "Speaker 1", Start: 0, End: 1, Text: "hello"},
		{Speaker: "Speaker 2", Start: 1.5, End: 2, Text: "hi"},
	}
	roles := map[string]Role{"Speaker 1": RoleDoctor, "Speaker 2": RolePatient}

	first := Render(Compose(turns, roles), 0.88)
	second := Render(Compose(turns, roles), 0.88)
	if first != second {
		t.Errorf("renders differ:\n%q\n%q", first, second)
	}
}

func TestWriteFileNoClobber(t *testing.T) {
	dir := t.TempDir()

	first, err := WriteFile(dir, "visit_20250101_abc123", "first")
	if err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	second, err := WriteFile(dir, "visit_20250101_abc123", "second")
	if err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if first == second {
		t.Fatalf("second write reused path %s", first)
	}

	data, err := os.ReadFile(first)
	if err != nil || string(data) != "first" {
		t.Errorf("first file content = %q, err = %v", data, err)
	}
	data, err = os.ReadFile(second)
	if err != nil || string(data) != "second" {
		t.Errorf("second file content = %q, err = %v", data, err)
	}

	if !strings.HasSuffix(filepath.Base(first), "_conversation.txt") {
		t.Errorf("file name %s missing _conversation.txt suffix", first)
	}
}

func TestWriteFileConcurrentSameName(t *testing.T) {
	dir := t.TempDir()
	const writers = 8

	paths := make([]string, writers)
	var wg sync.WaitGroup
	for i := range writers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			path, err := WriteFile(dir, "visit_20250101_abc123", fmt.Sprintf("content-%d", i))
			if err != nil {
				t.Errorf("writer %d: %v", i, err)
				return
			}
			paths[i] = path
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool)
	for i, path := range paths {
		if path == "" {
			continue
		}
		if seen[path] {
			t.Errorf("path %s claimed twice", path)
		}
		seen[path] = true

		data, err := os.ReadFile(path)
		if err != nil || string(data) != fmt.Sprintf("content-%d", i) {
			t.Errorf("writer %d content = %q, err = %v", i, data, err)
		}
	}
	if len(seen) != writers {
		t.Errorf("distinct files = %d, want %d", len(seen), writers)
	}
}
