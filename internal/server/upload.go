package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/medscribe/scribe-flow/internal/media"
	"github.com/medscribe/scribe-flow/internal/transcribe"
)

// uploadResponse is the JSON body of a completed job.
type uploadResponse struct {
	JobName            string  `json:"job_name"`
	Service            string  `json:"service"`
	DocumentConfidence float64 `json:"document_confidence"`
	SummaryText        string  `json:"summary_text"`
	SummaryFailed      bool    `json:"summary_failed,omitempty"`
	DownloadURL        string  `json:"download_url"`
}

// handleUpload accepts a multipart audio upload and runs the full job
// synchronously, replying with the summary and the transcript download
// link.
func (s *implServer) handleUpload(w http.ResponseWriter, r *http.Request) {
	maxBytes := int64(s.cfg.Server.MaxUploadMB) << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "missing or oversized 'file' form field")
		return
	}
	defer file.Close()

	if !media.SupportedUpload(header.Filename) {
		s.writeError(w, http.StatusBadRequest,
			fmt.Sprintf("unsupported file type: %s", filepath.Ext(header.Filename)))
		return
	}

	tmpPath, err := s.saveUpload(file, header.Filename)
	if err != nil {
		if errors.Is(err, errEmptyUpload) {
			s.writeError(w, http.StatusBadRequest, "uploaded file is empty")
			return
		}
		s.logger.Error(r.Context(), "Failed to save upload %s: %v", header.Filename, err)
		s.writeError(w, http.StatusInternalServerError, "failed to save upload")
		return
	}
	defer os.Remove(tmpPath)

	// A dropped client connection must not abort a job that is already
	// billing minutes against the transcription service.
	ctx := context.WithoutCancel(r.Context())

	result, err := s.pipeline.Process(ctx, tmpPath, header.Filename)
	if err != nil {
		s.logger.Error(ctx, "Job failed for %s: %v", header.Filename, err)
		s.writeError(w, statusForError(err), "processing failed: "+err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, uploadResponse{
		JobName:            result.JobName,
		Service:            result.Service,
		DocumentConfidence: result.DocumentConfidence,
		SummaryText:        result.SummaryText,
		SummaryFailed:      result.SummaryFailed,
		DownloadURL:        result.DownloadURL,
	})
}

var errEmptyUpload = errors.New("empty upload")

// saveUpload copies the multipart part to a temp file the encoder can
// read. The caller removes it when the job ends.
func (s *implServer) saveUpload(file io.Reader, originalName string) (string, error) {
	if err := os.MkdirAll(s.cfg.Audio.TempDir, 0755); err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.cfg.Audio.TempDir, "upload-*"+filepath.Ext(originalName))
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	written, err := io.Copy(tmp, file)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write upload: %w", err)
	}
	if written == 0 {
		os.Remove(tmp.Name())
		return "", errEmptyUpload
	}

	return tmp.Name(), nil
}

// statusForError maps pipeline failures onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, media.ErrUnsupportedInput):
		return http.StatusBadRequest
	case errors.Is(err, transcribe.ErrTranscriptionFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
