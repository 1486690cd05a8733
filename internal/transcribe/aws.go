package transcribe

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awstranscribe "github.com/aws/aws-sdk-go-v2/service/transcribe"
	trtypes "github.com/aws/aws-sdk-go-v2/service/transcribe/types"
	"github.com/google/uuid"
)

var jobNameSanitizer = regexp.MustCompile(`[^0-9a-zA-Z._-]`)

var specialties = map[string]trtypes.Specialty{
	"primarycare": trtypes.SpecialtyPrimarycare,
	"cardiology":  trtypes.Specialty("CARDIOLOGY"),
	"neurology":   trtypes.Specialty("NEUROLOGY"),
	"oncology":    trtypes.Specialty("ONCOLOGY"),
	"radiology":   trtypes.Specialty("RADIOLOGY"),
	"urology":     trtypes.Specialty("UROLOGY"),
}

// Transcribe submits the media for transcription, polls until the job
// finishes, then fetches and parses the result document.
func (b *implBackend) Transcribe(ctx context.Context, mediaURI, jobBase string) (*RawResult, error) {
	safeBase := jobNameSanitizer.ReplaceAllString(jobBase, "_")

	var (
		jobName string
		err     error
	)
	if b.cfg.Medical {
		jobName, err = b.startMedicalJob(ctx, mediaURI, safeBase)
	} else {
		jobName, err = b.startStandardJob(ctx, mediaURI, safeBase)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: start job: %v", ErrTranscriptionFailed, err)
	}

	b.logger.Info(ctx, "Transcription job started: %s (medical=%v)", jobName, b.cfg.Medical)

	transcriptURI, err := b.waitForJob(ctx, jobName)
	if err != nil {
		return nil, err
	}

	data, err := b.store.Fetch(ctx, transcriptURI)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch result: %v", ErrTranscriptionFailed, err)
	}

	var raw RawResult
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: parse result: %v", ErrTranscriptionFailed, err)
	}

	b.logger.Info(ctx, "Transcription job completed: %s (%d items)", jobName, len(raw.Results.Items))
	return &raw, nil
}

func (b *implBackend) startStandardJob(ctx context.Context, mediaURI, safeBase string) (string, error) {
	jobName := fmt.Sprintf("vt_std_%s_%s", safeBase, shortID())

	input := &awstranscribe.StartTranscriptionJobInput{
		TranscriptionJobName: aws.String(jobName),
		Media:                &trtypes.Media{MediaFileUri: aws.String(mediaURI)},
		Settings: &trtypes.Settings{
			ShowSpeakerLabels:     aws.Bool(!b.cfg.ChannelIdentification),
			ChannelIdentification: aws.Bool(b.cfg.ChannelIdentification),
			MaxSpeakerLabels:      aws.Int32(int32(max(2, b.cfg.MaxSpeakers))),
		},
	}

	if lang := b.cfg.Language; lang != "" && !strings.EqualFold(lang, "auto") {
		input.LanguageCode = trtypes.LanguageCode(lang)
	} else {
		input.IdentifyLanguage = aws.Bool(true)
	}

	if _, err := b.client.StartTranscriptionJob(ctx, input); err != nil {
		return "", err
	}
	return jobName, nil
}

func (b *implBackend) startMedicalJob(ctx context.Context, mediaURI, safeBase string) (string, error) {
	jobName := fmt.Sprintf("vt_med_%s_%s", safeBase, shortID())

	specialty, ok := specialties[strings.ToLower(b.cfg.Specialty)]
	if !ok {
		specialty = trtypes.SpecialtyPrimarycare
	}

	input := &awstranscribe.StartMedicalTranscriptionJobInput{
		MedicalTranscriptionJobName: aws.String(jobName),
		LanguageCode:                trtypes.LanguageCodeEnUs, // medical supports en-US only
		Media:                       &trtypes.Media{MediaFileUri: aws.String(mediaURI)},
		OutputBucketName:            aws.String(b.bucket),
		OutputKey:                   aws.String(fmt.Sprintf("transcripts/%s/medical/", safeBase)),
		Settings: &trtypes.MedicalTranscriptionSetting{
			ShowSpeakerLabels:     aws.Bool(!b.cfg.ChannelIdentification),
			ChannelIdentification: aws.Bool(b.cfg.ChannelIdentification),
			MaxSpeakerLabels:      aws.Int32(int32(max(2, b.cfg.MaxSpeakers))),
		},
		Specialty: specialty,
		Type:      trtypes.TypeConversation,
	}

	if _, err := b.client.StartMedicalTranscriptionJob(ctx, input); err != nil {
		return "", err
	}
	return jobName, nil
}

// waitForJob polls the job until it completes or the deadline passes and
// returns the transcript file URI.
func (b *implBackend) waitForJob(ctx context.Context, jobName string) (string, error) {
	interval := time.Duration(b.cfg.PollIntervalSec) * time.Second
	deadline := time.Now().Add(time.Duration(b.cfg.TimeoutMin) * time.Minute)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		status, failure, uri, err := b.jobStatus(ctx, jobName)
		if err != nil {
			return "", fmt.Errorf("%w: poll job %s: %v", ErrTranscriptionFailed, jobName, err)
		}

		switch status {
		case trtypes.TranscriptionJobStatusCompleted:
			return uri, nil
		case trtypes.TranscriptionJobStatusFailed:
			return "", fmt.Errorf("%w: job %s: %s", ErrTranscriptionFailed, jobName, failure)
		}

		if time.Now().After(deadline) {
			return "", fmt.Errorf("%w: job %s timed out after %dm", ErrTranscriptionFailed, jobName, b.cfg.TimeoutMin)
		}

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %v", ErrTranscriptionFailed, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (b *implBackend) jobStatus(ctx context.Context, jobName string) (trtypes.TranscriptionJobStatus, string, string, error) {
	if b.cfg.Medical {
		out, err := b.client.GetMedicalTranscriptionJob(ctx, &awstranscribe.GetMedicalTranscriptionJobInput{
			MedicalTranscriptionJobName: aws.String(jobName),
		})
		if err != nil {
			return "", "", "", err
		}
		job := out.MedicalTranscriptionJob
		return job.TranscriptionJobStatus,
			aws.ToString(job.FailureReason),
			medicalTranscriptURI(job),
			nil
	}

	out, err := b.client.GetTranscriptionJob(ctx, &awstranscribe.GetTranscriptionJobInput{
		TranscriptionJobName: aws.String(jobName),
	})
	if err != nil {
		return "", "", "", err
	}
	job := out.TranscriptionJob
	uri := ""
	if job.Transcript != nil {
		uri = aws.ToString(job.Transcript.TranscriptFileUri)
	}
	return job.TranscriptionJobStatus, aws.ToString(job.FailureReason), uri, nil
}

func medicalTranscriptURI(job *trtypes.MedicalTranscriptionJob) string {
	if job.Transcript == nil {
		return ""
	}
	return aws.ToString(job.Transcript.TranscriptFileUri)
}

func shortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
