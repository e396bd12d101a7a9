// Package analysis aggregates a speaker-attributed timeline into participation
// statistics and delegates topic and sentiment summarization to external
// collaborators.
package analysis

import (
	"context"
	"strings"

	"meeting-analysis-service/internal/inference"
	"meeting-analysis-service/internal/models"
	"meeting-analysis-service/internal/observability/logging"
	"meeting-analysis-service/internal/observability/metrics"
)

// Fallback values substituted when a summarization collaborator fails.
// A collaborator failure inside aggregation degrades the affected field only;
// it never fails the job.
const (
	FallbackTopic                = "undetermined"
	fallbackSentimentDescription = "undetermined"
)

// supplementaryNote explains the flag in the result payload.
const supplementaryNote = "This summary was produced using additional caller-provided reference material."

// Analyzer computes the final MeetingAnalysisResult for one job.
type Analyzer struct {
	summarizer inference.Summarizer
	sentiment  inference.SentimentClassifier
	metrics    *metrics.Metrics
}

// NewAnalyzer wires the aggregator to its summarization collaborators.
func NewAnalyzer(summarizer inference.Summarizer, sentiment inference.SentimentClassifier, m *metrics.Metrics) *Analyzer {
	if m == nil {
		m = metrics.DefaultMetrics
	}
	return &Analyzer{
		summarizer: summarizer,
		sentiment:  sentiment,
		metrics:    m,
	}
}

// Analyze groups the aligned segments by speaker, computes speaking time,
// segment and word counts, participation ratios, and per-speaker dialogue
// lists, then asks the collaborators for a topic summary and an overall
// sentiment. Collaborator failures are substituted with fallback values.
func (a *Analyzer) Analyze(ctx context.Context, segments []models.AlignedSegment, supplementary string) models.MeetingAnalysisResult {
	logger := logging.WithComponent("analysis")

	stats := make(map[string]models.SpeakerStats)
	dialogues := make(map[string][]models.DialogueEntry)
	totalDuration := 0.0

	for _, seg := range segments {
		duration := seg.End - seg.Start
		totalDuration += duration

		s := stats[seg.Speaker]
		s.SpeakingTime += duration
		s.SegmentCount++
		s.WordCount += len(strings.Fields(seg.Text))
		stats[seg.Speaker] = s

		dialogues[seg.Speaker] = append(dialogues[seg.Speaker], models.DialogueEntry{
			Text:  seg.Text,
			Start: seg.Start,
			End:   seg.End,
		})
	}

	participation := make(map[string]float64, len(stats))
	for speaker, s := range stats {
		if totalDuration > 0 {
			participation[speaker] = s.SpeakingTime / totalDuration
		} else {
			participation[speaker] = 0
		}
	}

	texts := make([]string, 0, len(segments))
	for _, seg := range segments {
		texts = append(texts, seg.Text)
	}
	fullText := strings.Join(texts, " ")

	topic, err := a.summarizer.Summarize(ctx, fullText, segments, supplementary)
	if err != nil {
		logger.Warn().Err(err).Msg("topic summarization failed, using fallback")
		a.metrics.AnalysisFallbacks.WithLabelValues("topic").Inc()
		topic = FallbackTopic
	}

	sentiment, err := a.sentiment.Classify(ctx, segments)
	if err != nil {
		logger.Warn().Err(err).Msg("sentiment classification failed, using fallback")
		a.metrics.AnalysisFallbacks.WithLabelValues("sentiment").Inc()
		sentiment = models.SentimentResult{
			Overall:     models.SentimentUnknown,
			Description: fallbackSentimentDescription,
			Score:       0,
		}
	}

	result := models.MeetingAnalysisResult{
		Summary:          topic,
		Topic:            topic,
		Participation:    participation,
		SpeakerStats:     stats,
		Sentiment:        sentiment,
		SpeakerDialogues: dialogues,
	}

	if strings.TrimSpace(supplementary) != "" {
		result.UsedSupplementaryText = true
		result.SupplementaryTextInfo = &models.SupplementaryTextInfo{
			Used:    true,
			Message: supplementaryNote,
		}
	}

	return result
}
