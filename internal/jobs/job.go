// Package jobs implements the asynchronous job lifecycle: submission, the
// concurrent result store, and the pipeline task that runs each analysis.
package jobs

import (
	"time"

	"meeting-analysis-service/internal/models"
)

// Status is the caller-visible lifecycle state of a job.
type Status string

const (
	StatusCreated    Status = "created"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// IsTerminal reports whether the job will not change state again.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Job is one meeting analysis submission. A job is mutated only by its own
// pipeline task and becomes immutable once the status is terminal.
type Job struct {
	ID          string                        `json:"job_id"`
	Status      Status                        `json:"status"`
	AudioPath   string                        `json:"audio_path"`
	TextPath    string                        `json:"text_file_path,omitempty"`
	SubmittedAt time.Time                     `json:"submitted_at"`
	Result      *models.MeetingAnalysisResult `json:"analysis,omitempty"`
	Error       string                        `json:"error,omitempty"`

	// Trace carries the stack captured at the failure boundary. It is kept
	// out of API responses and surfaces only in logs.
	Trace string `json:"-"`
}
