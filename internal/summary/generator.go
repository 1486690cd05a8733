package summary

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

const summarySystemPrompt = "You are a medical consultant creating concise clinical summaries. " +
	"Treat every request as independent and stateless; do not rely on prior runs or any memory of earlier inputs."

const summaryInstructions = `You are a skilled medical professional creating a concise clinical summary for doctors.

MEDICAL CASE DATA:

=== HPI / TRANSCRIPT ===
%s

OUTPUT FORMAT:
- Return exactly one cohesive paragraph in plain text.
- No headings, lists, bullets, or labeled sections.
- Target length ~60-130 words (exceed slightly only for critical safety information).

CONTENT TO COVER (prioritized):
- Chief complaint and onset/mechanism with clear chronology.
- Key symptoms with severity, location/radiation, and functional impact.
- Pertinent past medical history, medications and allergies when clinically relevant.
- Pertinent social factors that affect risk or management.
- Critical exam or imaging findings and the working impression if implied by the data.
- Current treatment and practical next steps.

STYLE & SAFETY:
- Precise medical terminology, third-person, objective tone.
- Do not invent or infer facts not present in the input; omit unspecified details.
- Preserve units, dates, and timeframes as given.`

const chunkInstructions = `Summarize this portion of a clinical conversation transcript in one short
plain-text paragraph, preserving symptoms, timeframes, findings, and plans exactly as stated:

%s`

var (
	reBoldMd    = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	reItalicMd  = regexp.MustCompile(`\*([^*]+)\*`)
	reHeadingMd = regexp.MustCompile(`#+\s*`)
)

// Generate produces the summary of a composed transcript. Oversized input
// is reduced in two levels: each chunk summarized, then the concatenated
// chunk summaries summarized once more.
func (g *implGenerator) Generate(ctx context.Context, transcriptText string) (string, error) {
	if g.provider == nil {
		return "", fmt.Errorf("%w: no completion provider configured", ErrSummaryUnavailable)
	}

	text := strings.TrimSpace(transcriptText)
	if text == "" {
		return "", fmt.Errorf("%w: empty transcript", ErrSummaryUnavailable)
	}

	if len(text) > g.maxInputChars {
		reduced, err := g.reduceChunks(ctx, text)
		if err != nil {
			return "", err
		}
		text = reduced
	}

	out, err := g.provider.Complete(ctx, summarySystemPrompt, fmt.Sprintf(summaryInstructions, text))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSummaryUnavailable, err)
	}

	return cleanPlainText(out), nil
}

// reduceChunks summarizes each transcript chunk independently and returns
// the concatenation of the chunk summaries.
func (g *implGenerator) reduceChunks(ctx context.Context, text string) (string, error) {
	chunks := splitChunks(text, g.maxInputChars)
	g.logger.Info(ctx, "Transcript over input budget, reducing %d chunks", len(chunks))

	var parts []string
	for i, chunk := range chunks {
		out, err := g.provider.Complete(ctx, summarySystemPrompt, fmt.Sprintf(chunkInstructions, chunk))
		if err != nil {
			return "", fmt.Errorf("%w: chunk %d/%d: %v", ErrSummaryUnavailable, i+1, len(chunks), err)
		}
		parts = append(parts, strings.TrimSpace(out))
	}

	return strings.Join(parts, "\n\n"), nil
}

// splitChunks cuts text into pieces no longer than limit, preferring line
// boundaries so speaker turns stay whole.
func splitChunks(text string, limit int) []string {
	if len(text) <= limit {
		return []string{text}
	}

	var chunks []string
	remaining := text
	for len(remaining) > limit {
		cut := strings.LastIndexByte(remaining[:limit], '\n')
		if cut <= 0 {
			cut = limit
		}
		chunks = append(chunks, strings.TrimSpace(remaining[:cut]))
		remaining = strings.TrimSpace(remaining[cut:])
	}
	if remaining != "" {
		chunks = append(chunks, remaining)
	}
	return chunks
}

// cleanPlainText strips markdown artifacts models sometimes add despite the
// plain-text instruction.
func cleanPlainText(text string) string {
	text = reBoldMd.ReplaceAllString(text, "$1")
	text = reItalicMd.ReplaceAllString(text, "$1")
	text = reHeadingMd.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
