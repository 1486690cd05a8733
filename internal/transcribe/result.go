package transcribe

// RawResult models the transcript JSON document the service writes on job
// completion: the full text, word-level items and, when diarization was on,
// per-item speaker labels.
type RawResult struct {
	JobName string  `json:"jobName"`
	Results Results `json:"results"`
}

type Results struct {
	Transcripts   []TranscriptText `json:"transcripts"`
	Items         []Item           `json:"items"`
	SpeakerLabels *SpeakerLabels   `json:"speaker_labels,omitempty"`
}

type TranscriptText struct {
	Transcript string `json:"transcript"`
}

// Item is a single word ("pronunciation") or punctuation mark. Times and
// confidences arrive as decimal strings.
type Item struct {
	Type         string        `json:"type"`
	StartTime    string        `json:"start_time,omitempty"`
	EndTime      string        `json:"end_time,omitempty"`
	Alternatives []Alternative `json:"alternatives"`
}

const (
	ItemPronunciation = "pronunciation"
	ItemPunctuation   = "punctuation"
)

type Alternative struct {
	Content    string `json:"content"`
	Confidence string `json:"confidence,omitempty"`
}

type SpeakerLabels struct {
	Speakers int              `json:"speakers"`
	Segments []SpeakerSegment `json:"segments"`
}

type SpeakerSegment struct {
	SpeakerLabel string        `json:"speaker_label"`
	StartTime    string        `json:"start_time"`
	EndTime      string        `json:"end_time"`
	Items        []SegmentItem `json:"items"`
}

type SegmentItem struct {
	SpeakerLabel string `json:"speaker_label"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
}

// FullText returns the undivided transcript text, used when speaker labels
// are absent and the pipeline degrades to a single unlabeled block.
func (r *RawResult) FullText() string {
	if len(r.Results.Transcripts) == 0 {
		return ""
	}
	return r.Results.Transcripts[0].Transcript
}

// HasSpeakerLabels reports whether diarization produced usable segments.
func (r *RawResult) HasSpeakerLabels() bool {
	return r.Results.SpeakerLabels != nil && len(r.Results.SpeakerLabels.Segments) > 0
}
