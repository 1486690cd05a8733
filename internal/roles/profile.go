package roles

import (
	"strings"

	"github.com/medscribe/scribe-flow/internal/transcript"
)

// excerptLimit caps how much of a speaker's aggregated text travels to the
// classification call.
const excerptLimit = 2000

// SpeakerProfile aggregates everything one speaker said in a job, in turn
// order. Lives only for the duration of one assignment.
type SpeakerProfile struct {
	Speaker   string
	Text      string // original case, for the classifier
	lowerText string // for heuristic matching
	questions int    // turns ending in a question mark
	turns     int
}

// buildProfiles collects one profile per distinct speaker, in order of
// first appearance.
func buildProfiles(turns []transcript.Turn) []*SpeakerProfile {
	index := make(map[string]*SpeakerProfile)
	var ordered []*SpeakerProfile

	for _, t := range turns {
		p, ok := index[t.Speaker]
		if !ok {
			p = &SpeakerProfile{Speaker: t.Speaker}
			index[t.Speaker] = p
			ordered = append(ordered, p)
		}
		if p.Text != "" {
			p.Text += " "
		}
		p.Text += t.Text
		p.turns++
		if strings.HasSuffix(strings.TrimSpace(t.Text), "?") {
			p.questions++
		}
	}

	for _, p := range ordered {
		p.lowerText = strings.ToLower(p.Text)
	}
	return ordered
}

// Excerpt returns the profile text truncated for a classification prompt.
func (p *SpeakerProfile) Excerpt() string {
	if len(p.Text) <= excerptLimit {
		return p.Text
	}
	return p.Text[:excerptLimit]
}
