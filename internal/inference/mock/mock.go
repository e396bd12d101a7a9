// Package mock provides deterministic in-memory inference collaborators for
// local development and tests, so the full pipeline can run without any model
// services. The same audio path always produces the same canned meeting.
package mock

import (
	"context"
	"fmt"
	"hash/fnv"
	"path/filepath"
	"strings"
	"time"

	"meeting-analysis-service/internal/models"
)

// scriptLine is one utterance of the canned meeting.
type scriptLine struct {
	speaker  string
	text     string
	duration float64
}

// defaultScript is a short two-speaker stand-up used for every simulated
// recording.
var defaultScript = []scriptLine{
	{"SPEAKER_00", "Good morning everyone let's get started", 4},
	{"SPEAKER_01", "Thanks I have an update on the rollout", 5},
	{"SPEAKER_00", "Great how did the deployment go", 3},
	{"SPEAKER_01", "The deployment went well we saw no regressions", 6},
	{"SPEAKER_00", "Perfect then let's plan the next milestone", 5},
	{"SPEAKER_01", "Agreed I will send the proposal this afternoon", 5},
}

// Collaborators implements every inference contract with canned data.
type Collaborators struct {
	// Delay simulates model latency on each call when positive.
	Delay time.Duration
}

// New returns a collaborator set with no artificial latency.
func New() *Collaborators {
	return &Collaborators{}
}

// Transcribe returns the canned transcript, offset deterministically by the
// audio path so different recordings produce distinguishable results.
func (m *Collaborators) Transcribe(ctx context.Context, audioPath string) (string, []models.TranscriptChunk, error) {
	if err := m.wait(ctx); err != nil {
		return "", nil, err
	}

	offset := pathOffset(audioPath)
	chunks := make([]models.TranscriptChunk, 0, len(defaultScript))
	texts := make([]string, 0, len(defaultScript))

	at := offset
	for _, line := range defaultScript {
		chunks = append(chunks, models.TranscriptChunk{
			Start: at,
			End:   at + line.duration,
			Text:  line.text,
		})
		texts = append(texts, line.text)
		at += line.duration
	}

	name := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	full := fmt.Sprintf("Recording %s. %s", name, strings.Join(texts, ". "))
	return full, chunks, nil
}

// Diarize returns speaker turns matching the canned script's timing.
func (m *Collaborators) Diarize(ctx context.Context, audioPath string) ([]models.SpeakerSegment, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}

	at := pathOffset(audioPath)
	segments := make([]models.SpeakerSegment, 0, len(defaultScript))
	for _, line := range defaultScript {
		segments = append(segments, models.SpeakerSegment{
			Speaker: line.speaker,
			Start:   at,
			End:     at + line.duration,
		})
		at += line.duration
	}
	return segments, nil
}

// Summarize returns a deterministic one-line topic.
func (m *Collaborators) Summarize(ctx context.Context, fullText string, segments []models.AlignedSegment, supplementary string) (string, error) {
	if err := m.wait(ctx); err != nil {
		return "", err
	}

	topic := fmt.Sprintf("Team status meeting covering %d utterances", len(segments))
	if supplementary != "" {
		topic += " with supplementary notes"
	}
	return topic, nil
}

// Classify reports a mildly positive meeting regardless of content.
func (m *Collaborators) Classify(ctx context.Context, segments []models.AlignedSegment) (models.SentimentResult, error) {
	if err := m.wait(ctx); err != nil {
		return models.SentimentResult{}, err
	}

	return models.SentimentResult{
		Overall:     models.SentimentPositive,
		Description: "positive and constructive",
		Score:       0.72,
	}, nil
}

func (m *Collaborators) wait(ctx context.Context) error {
	if m.Delay <= 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(m.Delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// pathOffset derives a small stable start offset from the audio path.
func pathOffset(audioPath string) float64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(audioPath))
	return float64(h.Sum32()%10) / 10
}
