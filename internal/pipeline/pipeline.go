package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/medscribe/scribe-flow/internal/summary"
	"github.com/medscribe/scribe-flow/internal/transcript"
)

// SummaryFailedMarker is returned in SummaryText when the summarization
// step fails but the transcript was produced. Callers can tell "summary
// step failed" apart from "no conversation content".
const SummaryFailedMarker = "[summary unavailable]"

// Process runs one job end-to-end.
func (p *implPipeline) Process(ctx context.Context, audioPath, originalName string) (*Result, error) {
	startTime := time.Now()
	job := jobName(originalName, audioPath)

	p.logger.Info(ctx, "Starting job %s (upload: %s)", job, originalName)

	// 1) Normalize audio for the transcription service
	mp3Path, err := p.encoder.ToMP3(ctx, audioPath)
	if err != nil {
		return nil, fmt.Errorf("encode audio: %w", err)
	}
	if mp3Path != audioPath {
		defer p.cleanupTempFile(ctx, mp3Path)
	}

	// 2) Durable put so the transcription service can read it
	mediaURI, err := p.store.Put(ctx, mp3Path, "input/"+job+filepath.Ext(mp3Path))
	if err != nil {
		return nil, fmt.Errorf("store audio: %w", err)
	}

	// 3) Transcribe (submit + poll)
	raw, err := p.backend.Transcribe(ctx, mediaURI, job)
	if err != nil {
		return nil, err
	}

	// 4) Normalize segments and assign roles
	turns, confidence, err := transcript.Normalize(raw)
	var roleMap map[string]transcript.Role
	if err != nil {
		if !errors.Is(err, transcript.ErrNoSpeakerLabels) {
			return nil, fmt.Errorf("normalize transcript: %w", err)
		}
		p.logger.Warn(ctx, "Job %s: no speaker labels, producing unlabeled transcript", job)
		turns = transcript.Unlabeled(raw)
	} else {
		roleMap = p.assigner.Assign(ctx, turns)
	}

	// 5) Compose and persist the transcript
	rendered := transcript.Render(transcript.Compose(turns, roleMap), confidence)
	path, err := transcript.WriteFile(p.cfg.Paths.Output, job, rendered)
	if err != nil {
		return nil, fmt.Errorf("write transcript: %w", err)
	}

	result := &Result{
		JobName:            job,
		Service:            p.serviceName(),
		DocumentConfidence: confidence,
		TranscriptPath:     path,
		DownloadURL:        "/api/download/" + filepath.Base(path),
	}

	// 6) Summarize. Failure here never takes the transcript down with it.
	summaryText, err := p.generator.Generate(ctx, rendered)
	if err != nil {
		p.logger.Error(ctx, "Job %s: summary failed: %v", job, err)
		result.SummaryText = SummaryFailedMarker
		result.SummaryFailed = true
	} else {
		result.SummaryText = summaryText
		p.exportDocx(ctx, job, summaryText)
	}

	p.logger.Info(ctx, "Job %s completed in %s (transcript: %s)", job, time.Since(startTime), path)
	return result, nil
}

func (p *implPipeline) serviceName() string {
	if p.cfg.Transcribe.Medical {
		return "medical"
	}
	return "standard"
}

// exportDocx writes the optional Word copy of the summary. Best effort.
func (p *implPipeline) exportDocx(ctx context.Context, job, summaryText string) {
	if !p.cfg.Summary.ExportDocx {
		return
	}
	docxPath := filepath.Join(p.cfg.Paths.Output, job+"_summary.docx")
	if err := summary.ExportDocx("Clinical Summary: "+job, summaryText, docxPath); err != nil {
		p.logger.Warn(ctx, "Job %s: docx export failed: %v", job, err)
	}
}

func (p *implPipeline) cleanupTempFile(ctx context.Context, filePath string) {
	if err := os.Remove(filePath); err != nil {
		p.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", filePath, err)
	} else {
		p.logger.Debug(ctx, "Cleaned up temp file: %s", filePath)
	}
}
