package transcript

import (
	"fmt"
	"strings"
)

// pauseGapSec: a silence longer than this between merged turns starts a new
// line inside the block instead of joining with a space.
const pauseGapSec = 1.5

// Compose merges consecutive turns that resolved to the same role into
// blocks, in turn order. A nil role mapping (the no-diarization degrade
// path) produces a single unlabeled block.
func Compose(turns []Turn, roles map[string]Role) []Block {
	if len(turns) == 0 {
		return nil
	}

	if roles == nil {
		var lines []string
		for _, t := range turns {
			lines = append(lines, t.Text)
		}
		return []Block{{Role: "", Lines: lines}}
	}

	var blocks []Block
	var prevEnd float64

	resolve := func(speaker string) Role {
		if r, ok := roles[speaker]; ok {
			return r
		}
		return RoleOther
	}

	for i, t := range turns {
		role := resolve(t.Speaker)

		if i > 0 && len(blocks) > 0 && blocks[len(blocks)-1].Role == role {
			last := &blocks[len(blocks)-1]
			if t.Start-prevEnd > pauseGapSec {
				last.Lines = append(last.Lines, t.Text)
			} else {
				last.Lines[len(last.Lines)-1] += " " + t.Text
			}
		} else {
			blocks = append(blocks, Block{Role: role, Lines: []string{t.Text}})
		}
		prevEnd = t.End
	}

	return blocks
}

// Render produces the final human-readable transcript document. confidence
// above zero adds the document-confidence header line.
func Render(blocks []Block, confidence float64) string {
	var b strings.Builder

	if confidence > 0 && confidence < 1 {
		fmt.Fprintf(&b, "Document confidence: %.4f (%.1f%%)\n\n", confidence, confidence*100)
	}

	for i, block := range blocks {
		if i > 0 {
			b.WriteString("\n")
		}
		if block.Role == "" {
			b.WriteString(strings.Join(block.Lines, "\n"))
			b.WriteString("\n")
			continue
		}
		fmt.Fprintf(&b, "[%s] %s\n", block.Role.Display(), strings.Join(block.Lines, "\n"))
	}

	return b.String()
}
