package jobs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"meeting-analysis-service/internal/inference"
	"meeting-analysis-service/internal/models"
	"meeting-analysis-service/internal/observability/logging"
	"meeting-analysis-service/internal/observability/metrics"
	"meeting-analysis-service/internal/service/align"
	"meeting-analysis-service/internal/service/analysis"
)

// Submission and lookup errors surfaced synchronously to the caller.
var (
	ErrMissingAudioPath = errors.New("audio path is required")
	ErrAudioNotFound    = errors.New("audio file not found")
	ErrNotFound         = errors.New("job not found")
)

// Archiver persists a snapshot of a completed analysis.
type Archiver interface {
	Save(jobID string, result models.MeetingAnalysisResult) (string, error)
}

// EventPublisher announces terminal job transitions.
type EventPublisher interface {
	PublishCompleted(ctx context.Context, key string, event any) error
	PublishFailed(ctx context.Context, key string, event any) error
}

// Orchestrator accepts submissions, spawns one pipeline task per job, and
// records every outcome in the store. Submission never blocks on pipeline
// work; there is deliberately no bound on concurrent tasks and no queue.
type Orchestrator struct {
	store       Store
	transcriber inference.Transcriber
	diarizer    inference.Diarizer
	analyzer    *analysis.Analyzer
	archiver    Archiver       // optional
	publisher   EventPublisher // optional
	metrics     *metrics.Metrics
}

// NewOrchestrator wires the pipeline. archiver and publisher may be nil.
func NewOrchestrator(
	store Store,
	transcriber inference.Transcriber,
	diarizer inference.Diarizer,
	analyzer *analysis.Analyzer,
	archiver Archiver,
	publisher EventPublisher,
	m *metrics.Metrics,
) *Orchestrator {
	if m == nil {
		m = metrics.DefaultMetrics
	}
	return &Orchestrator{
		store:       store,
		transcriber: transcriber,
		diarizer:    diarizer,
		analyzer:    analyzer,
		archiver:    archiver,
		publisher:   publisher,
		metrics:     m,
	}
}

// Submit validates the submission, allocates a job id, records the job as
// processing, and starts the pipeline task. It returns the id immediately.
//
// An inaccessible supplementary text file is dropped with a warning instead of
// failing the job; a missing audio file rejects the submission outright.
func (o *Orchestrator) Submit(audioPath, textPath string) (string, error) {
	if strings.TrimSpace(audioPath) == "" {
		return "", ErrMissingAudioPath
	}
	if _, err := os.Stat(audioPath); err != nil {
		return "", fmt.Errorf("%w: %s", ErrAudioNotFound, audioPath)
	}

	jobID := uuid.NewString()
	logger := logging.WithJob(jobID)

	if textPath != "" {
		if _, err := os.Stat(textPath); err != nil {
			logger.Warn().Str("textPath", textPath).Err(err).
				Msg("supplementary text not accessible, proceeding without it")
			textPath = ""
		}
	}

	job := Job{
		ID:          jobID,
		Status:      StatusProcessing,
		AudioPath:   audioPath,
		TextPath:    textPath,
		SubmittedAt: time.Now().UTC(),
	}
	o.store.Put(jobID, job)
	o.metrics.RecordJobStart()

	logger.Info().Str("audioPath", audioPath).Msg("job accepted, starting pipeline task")
	go o.runJob(job)

	return jobID, nil
}

// GetStatus returns the current status of a job.
func (o *Orchestrator) GetStatus(jobID string) (Status, error) {
	job, ok := o.store.Get(jobID)
	if !ok {
		return "", ErrNotFound
	}
	return job.Status, nil
}

// GetResult returns the stored job record. Callers decide how to present
// non-completed jobs; the result payload is only set once status is completed.
func (o *Orchestrator) GetResult(jobID string) (Job, error) {
	job, ok := o.store.Get(jobID)
	if !ok {
		return Job{}, ErrNotFound
	}
	return job, nil
}

// runJob executes the stage sequence for one job. It is the supervision
// boundary: any stage error or panic marks this job failed and nothing else.
func (o *Orchestrator) runJob(job Job) {
	logger := logging.WithJob(job.ID)
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			o.fail(job, start, fmt.Errorf("pipeline panic: %v", r), string(debug.Stack()))
		}
	}()

	// No cancellation at this layer: a stuck collaborator stalls only this
	// job's task.
	ctx := context.Background()

	transcript, chunks, err := o.transcribe(ctx, job)
	if err != nil {
		o.fail(job, start, err, string(debug.Stack()))
		return
	}
	logger.Info().Int("chunks", len(chunks)).Int("textLen", len(transcript)).Msg("transcription finished")

	speakers, err := o.diarize(ctx, job)
	if err != nil {
		o.fail(job, start, err, string(debug.Stack()))
		return
	}
	logger.Info().Int("speakerTurns", len(speakers)).Msg("diarization finished")

	alignStart := time.Now()
	aligned := align.Align(transcript, chunks, speakers)
	o.metrics.RecordStage("alignment", nil, time.Since(alignStart).Seconds())
	o.metrics.AlignedSegments.Add(float64(len(aligned)))
	logger.Info().Int("alignedSegments", len(aligned)).Msg("alignment finished")

	supplementary := o.readSupplementary(job, logger)

	analysisStart := time.Now()
	result := o.analyzer.Analyze(ctx, aligned, supplementary)
	o.metrics.RecordStage("analysis", nil, time.Since(analysisStart).Seconds())

	job.Status = StatusCompleted
	job.Result = &result
	o.store.Put(job.ID, job)
	o.metrics.RecordJobEnd(true, time.Since(start).Seconds())
	logger.Info().Dur("duration", time.Since(start)).Msg("job completed")

	o.archiveResult(job, result, logger)
	o.publishCompleted(ctx, job, result, time.Since(start))
}

func (o *Orchestrator) transcribe(ctx context.Context, job Job) (string, []models.TranscriptChunk, error) {
	start := time.Now()
	transcript, chunks, err := o.transcriber.Transcribe(ctx, job.AudioPath)
	o.metrics.RecordStage("transcription", err, time.Since(start).Seconds())
	if err != nil {
		return "", nil, fmt.Errorf("transcription: %w", err)
	}
	return transcript, chunks, nil
}

func (o *Orchestrator) diarize(ctx context.Context, job Job) ([]models.SpeakerSegment, error) {
	start := time.Now()
	speakers, err := o.diarizer.Diarize(ctx, job.AudioPath)
	o.metrics.RecordStage("diarization", err, time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("diarization: %w", err)
	}
	return speakers, nil
}

// readSupplementary loads the optional text file. Read failures degrade to an
// empty string; they never fail the job.
func (o *Orchestrator) readSupplementary(job Job, logger zerolog.Logger) string {
	if job.TextPath == "" {
		return ""
	}
	data, err := os.ReadFile(job.TextPath)
	if err != nil {
		logger.Warn().Str("textPath", job.TextPath).Err(err).
			Msg("failed to read supplementary text, proceeding without it")
		return ""
	}
	logger.Info().Int("bytes", len(data)).Msg("supplementary text loaded")
	return string(data)
}

// fail records a terminal failure for this job. No partial result is stored.
func (o *Orchestrator) fail(job Job, start time.Time, err error, trace string) {
	logger := logging.WithJob(job.ID)
	logger.Error().Err(err).Str("trace", trace).Msg("pipeline task failed")

	job.Status = StatusFailed
	job.Result = nil
	job.Error = err.Error()
	job.Trace = trace
	o.store.Put(job.ID, job)
	o.metrics.RecordJobEnd(false, time.Since(start).Seconds())

	if o.publisher != nil {
		event := models.JobFailedEvent{
			EventType:       "meeting.job.failed",
			JobID:           job.ID,
			Timestamp:       time.Now().UnixMilli(),
			Error:           err.Error(),
			DurationSeconds: time.Since(start).Seconds(),
		}
		if perr := o.publisher.PublishFailed(context.Background(), job.ID, event); perr != nil {
			logger.Warn().Err(perr).Msg("failed to publish job failure event")
		}
	}
}

func (o *Orchestrator) archiveResult(job Job, result models.MeetingAnalysisResult, logger zerolog.Logger) {
	if o.archiver == nil {
		return
	}
	path, err := o.archiver.Save(job.ID, result)
	if err != nil {
		// Archiving is best effort; the job already completed.
		o.metrics.ArchiveErrors.Inc()
		logger.Warn().Err(err).Msg("failed to archive analysis snapshot")
		return
	}
	o.metrics.ArchiveWrites.Inc()
	logger.Info().Str("path", path).Msg("analysis snapshot archived")
}

func (o *Orchestrator) publishCompleted(ctx context.Context, job Job, result models.MeetingAnalysisResult, elapsed time.Duration) {
	if o.publisher == nil {
		return
	}
	total := 0.0
	for _, s := range result.SpeakerStats {
		total += s.SpeakingTime
	}
	event := models.JobCompletedEvent{
		EventType:       "meeting.job.completed",
		JobID:           job.ID,
		Timestamp:       time.Now().UnixMilli(),
		Topic:           result.Topic,
		SpeakerCount:    len(result.SpeakerStats),
		TotalSpeechTime: total,
		DurationSeconds: elapsed.Seconds(),
	}
	if err := o.publisher.PublishCompleted(ctx, job.ID, event); err != nil {
		logger := logging.WithJob(job.ID)
		logger.Warn().Err(err).Msg("failed to publish job completion event")
	}
}
