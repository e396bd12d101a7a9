// Package inference defines the contracts for the external model services the
// pipeline depends on. Each collaborator is an opaque service that accepts
// audio or text and returns a typed result; providers live in subpackages
// (httpapi for real services, mock for local development and tests).
package inference

import (
	"context"

	"meeting-analysis-service/internal/models"
)

// Transcriber converts recorded audio to text with per-chunk timestamps.
type Transcriber interface {
	// Transcribe returns the flat transcript text and its timestamped chunks.
	Transcribe(ctx context.Context, audioPath string) (string, []models.TranscriptChunk, error)
}

// Diarizer partitions an audio timeline into speaker turns.
type Diarizer interface {
	Diarize(ctx context.Context, audioPath string) ([]models.SpeakerSegment, error)
}

// Summarizer produces an abstractive topic summary of a meeting.
//
// Implementations weight the opening and closing portions of the segment
// sequence more heavily and blend in the supplementary text when present.
type Summarizer interface {
	Summarize(ctx context.Context, fullText string, segments []models.AlignedSegment, supplementary string) (string, error)
}

// SentimentClassifier scores the overall tone of an aligned segment sequence.
type SentimentClassifier interface {
	Classify(ctx context.Context, segments []models.AlignedSegment) (models.SentimentResult, error)
}
