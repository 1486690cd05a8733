package transcript

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/medscribe/scribe-flow/internal/transcribe"
)

// ErrNoSpeakerLabels means diarization produced nothing usable. Role
// assignment cannot proceed; callers degrade to a single unlabeled block.
var ErrNoSpeakerLabels = errors.New("transcript has no speaker labels")

// mergeGapSec: consecutive items from the same speaker closer than this are
// part of the same turn. Keeps one-word-per-turn fragmentation out of the
// composer.
const mergeGapSec = 1.0

// Normalize converts the raw transcription result into ordered turns and
// the mean word confidence of the document. Turns are sorted by start time,
// ties broken by original item order.
func Normalize(raw *transcribe.RawResult) ([]Turn, float64, error) {
	conf := documentConfidence(raw)

	if !raw.HasSpeakerLabels() {
		return nil, conf, ErrNoSpeakerLabels
	}

	speakerAt := speakerByStartTime(raw.Results.SpeakerLabels)
	names := newSpeakerNamer()

	var (
		turns   []Turn
		current *Turn
	)
	flush := func() {
		if current != nil && strings.TrimSpace(current.Text) != "" {
			current.Text = strings.TrimSpace(current.Text)
			turns = append(turns, *current)
		}
		current = nil
	}

	for _, item := range raw.Results.Items {
		switch item.Type {
		case transcribe.ItemPronunciation:
			if len(item.Alternatives) == 0 {
				continue
			}
			word := item.Alternatives[0].Content
			start := parseSeconds(item.StartTime)
			end := parseSeconds(item.EndTime)

			speaker := names.name(speakerAt[item.StartTime])
			if speaker == "" {
				if current != nil {
					speaker = current.Speaker
				} else {
					speaker = names.name("spk_0")
				}
			}

			switch {
			case current == nil:
				current = &Turn{Speaker: speaker, Start: start, End: end, Text: word}
			case speaker != current.Speaker || start-current.End > mergeGapSec:
				flush()
				current = &Turn{Speaker: speaker, Start: start, End: end, Text: word}
			default:
				current.Text += " " + word
				current.End = end
			}

		case transcribe.ItemPunctuation:
			if current != nil && len(item.Alternatives) > 0 {
				current.Text += item.Alternatives[0].Content
			}
		}
	}
	flush()

	if len(turns) == 0 {
		return nil, conf, fmt.Errorf("%w: no voiced items", ErrNoSpeakerLabels)
	}

	sort.SliceStable(turns, func(i, j int) bool { return turns[i].Start < turns[j].Start })
	return turns, conf, nil
}

// Unlabeled builds the degraded single-turn form used when diarization is
// absent: the whole transcript under one anonymous speaker.
func Unlabeled(raw *transcribe.RawResult) []Turn {
	text := strings.TrimSpace(raw.FullText())
	if text == "" {
		return nil
	}
	return []Turn{{Speaker: "Speaker 1", Text: text}}
}

// speakerByStartTime flattens the diarization segments into a start-time ->
// speaker-label index, the join key against pronunciation items.
func speakerByStartTime(labels *transcribe.SpeakerLabels) map[string]string {
	index := make(map[string]string)
	for _, seg := range labels.Segments {
		for _, item := range seg.Items {
			if item.StartTime != "" {
				label := item.SpeakerLabel
				if label == "" {
					label = seg.SpeakerLabel
				}
				index[item.StartTime] = label
			}
		}
	}
	return index
}

// speakerNamer maps raw diarization labels (spk_0, spk_1, ...) to stable
// display tags in order of first appearance.
type speakerNamer struct {
	index map[string]int
}

func newSpeakerNamer() *speakerNamer {
	return &speakerNamer{index: make(map[string]int)}
}

func (n *speakerNamer) name(label string) string {
	if label == "" {
		return ""
	}
	if _, ok := n.index[label]; !ok {
		n.index[label] = len(n.index) + 1
	}
	return fmt.Sprintf("Speaker %d", n.index[label])
}

func documentConfidence(raw *transcribe.RawResult) float64 {
	var sum float64
	var count int
	for _, item := range raw.Results.Items {
		if item.Type != transcribe.ItemPronunciation || len(item.Alternatives) == 0 {
			continue
		}
		c, err := strconv.ParseFloat(item.Alternatives[0].Confidence, 64)
		if err != nil {
			continue
		}
		sum += c
		count++
	}
	if count == 0 {
		return 1.0
	}
	return sum / float64(count)
}

func parseSeconds(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
