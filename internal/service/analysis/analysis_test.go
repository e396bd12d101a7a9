package analysis

import (
	"context"
	"errors"
	"math"
	"testing"

	"meeting-analysis-service/internal/models"
)

// fakeSummarizer implements inference.Summarizer for testing.
type fakeSummarizer struct {
	topic       string
	err         error
	gotFullText string
	gotSegments int
	gotSuppText string
}

func (f *fakeSummarizer) Summarize(_ context.Context, fullText string, segments []models.AlignedSegment, supplementary string) (string, error) {
	f.gotFullText = fullText
	f.gotSegments = len(segments)
	f.gotSuppText = supplementary
	return f.topic, f.err
}

// fakeClassifier implements inference.SentimentClassifier for testing.
type fakeClassifier struct {
	result models.SentimentResult
	err    error
}

func (f *fakeClassifier) Classify(_ context.Context, _ []models.AlignedSegment) (models.SentimentResult, error) {
	return f.result, f.err
}

func seg(speaker, text string, start, end float64) models.AlignedSegment {
	return models.AlignedSegment{Speaker: speaker, Text: text, Start: start, End: end}
}

func newTestAnalyzer(s *fakeSummarizer, c *fakeClassifier) *Analyzer {
	return NewAnalyzer(s, c, nil)
}

func TestAnalyze_SpeakerStats(t *testing.T) {
	segments := []models.AlignedSegment{
		seg("SPEAKER_A", "hello there everyone", 0, 6),
		seg("SPEAKER_B", "hi", 6, 8),
		seg("SPEAKER_A", "let us begin", 8, 10),
	}

	a := newTestAnalyzer(&fakeSummarizer{topic: "standup"}, &fakeClassifier{
		result: models.SentimentResult{Overall: models.SentimentNeutral, Description: "neutral", Score: 0.5},
	})
	got := a.Analyze(context.Background(), segments, "")

	statsA := got.SpeakerStats["SPEAKER_A"]
	if statsA.SpeakingTime != 8 {
		t.Errorf("SPEAKER_A speaking time = %f, want 8", statsA.SpeakingTime)
	}
	if statsA.SegmentCount != 2 {
		t.Errorf("SPEAKER_A segments = %d, want 2", statsA.SegmentCount)
	}
	if statsA.WordCount != 6 {
		t.Errorf("SPEAKER_A words = %d, want 6", statsA.WordCount)
	}

	statsB := got.SpeakerStats["SPEAKER_B"]
	if statsB.SpeakingTime != 2 || statsB.SegmentCount != 1 || statsB.WordCount != 1 {
		t.Errorf("SPEAKER_B stats = %+v", statsB)
	}

	if len(got.SpeakerDialogues["SPEAKER_A"]) != 2 {
		t.Errorf("expected 2 dialogue entries for SPEAKER_A, got %d", len(got.SpeakerDialogues["SPEAKER_A"]))
	}
	if got.SpeakerDialogues["SPEAKER_A"][0].Text != "hello there everyone" {
		t.Errorf("dialogue order not preserved: %+v", got.SpeakerDialogues["SPEAKER_A"])
	}
}

func TestAnalyze_ParticipationSumsToOne(t *testing.T) {
	segments := []models.AlignedSegment{
		seg("SPEAKER_A", "a", 0, 3),
		seg("SPEAKER_B", "b", 3, 10),
		seg("SPEAKER_C", "c", 10, 11),
	}

	a := newTestAnalyzer(&fakeSummarizer{topic: "t"}, &fakeClassifier{})
	got := a.Analyze(context.Background(), segments, "")

	sum := 0.0
	for _, ratio := range got.Participation {
		if ratio < 0 || ratio > 1 {
			t.Errorf("ratio out of range: %f", ratio)
		}
		sum += ratio
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("participation sum = %f, want 1.0", sum)
	}
}

func TestAnalyze_ZeroDurationYieldsZeroRatios(t *testing.T) {
	segments := []models.AlignedSegment{
		seg("SPEAKER_A", "instant", 5, 5),
		seg("SPEAKER_B", "also instant", 7, 7),
	}

	a := newTestAnalyzer(&fakeSummarizer{topic: "t"}, &fakeClassifier{})
	got := a.Analyze(context.Background(), segments, "")

	for speaker, ratio := range got.Participation {
		if ratio != 0 {
			t.Errorf("speaker %s: ratio = %f, want 0", speaker, ratio)
		}
	}
}

func TestAnalyze_EmptySegments(t *testing.T) {
	a := newTestAnalyzer(&fakeSummarizer{topic: "t"}, &fakeClassifier{})
	got := a.Analyze(context.Background(), nil, "")

	if len(got.Participation) != 0 || len(got.SpeakerStats) != 0 {
		t.Errorf("expected empty maps, got %+v", got)
	}
}

func TestAnalyze_FullTextConcatenationOrder(t *testing.T) {
	segments := []models.AlignedSegment{
		seg("SPEAKER_B", "second speaker first", 0, 1),
		seg("SPEAKER_A", "then the other", 1, 2),
	}

	summarizer := &fakeSummarizer{topic: "t"}
	a := newTestAnalyzer(summarizer, &fakeClassifier{})
	a.Analyze(context.Background(), segments, "")

	if summarizer.gotFullText != "second speaker first then the other" {
		t.Errorf("full text = %q", summarizer.gotFullText)
	}
	if summarizer.gotSegments != 2 {
		t.Errorf("segments passed to summarizer = %d, want 2", summarizer.gotSegments)
	}
}

func TestAnalyze_SummarizerFailureDegradesTopicOnly(t *testing.T) {
	segments := []models.AlignedSegment{seg("SPEAKER_A", "hello", 0, 5)}

	a := newTestAnalyzer(
		&fakeSummarizer{err: errors.New("model unavailable")},
		&fakeClassifier{result: models.SentimentResult{Overall: models.SentimentPositive, Score: 0.8}},
	)
	got := a.Analyze(context.Background(), segments, "")

	if got.Topic != FallbackTopic {
		t.Errorf("topic = %q, want fallback", got.Topic)
	}
	if got.Sentiment.Overall != models.SentimentPositive {
		t.Errorf("sentiment should be untouched, got %+v", got.Sentiment)
	}
	if got.SpeakerStats["SPEAKER_A"].SpeakingTime != 5 {
		t.Errorf("stats should be untouched: %+v", got.SpeakerStats)
	}
}

func TestAnalyze_ClassifierFailureDegradesSentimentOnly(t *testing.T) {
	segments := []models.AlignedSegment{seg("SPEAKER_A", "hello", 0, 5)}

	a := newTestAnalyzer(
		&fakeSummarizer{topic: "planning"},
		&fakeClassifier{err: errors.New("model unavailable")},
	)
	got := a.Analyze(context.Background(), segments, "")

	if got.Topic != "planning" {
		t.Errorf("topic should be untouched, got %q", got.Topic)
	}
	if got.Sentiment.Overall != models.SentimentUnknown || got.Sentiment.Score != 0 {
		t.Errorf("sentiment fallback = %+v", got.Sentiment)
	}
}

func TestAnalyze_SupplementaryTextFlag(t *testing.T) {
	segments := []models.AlignedSegment{seg("SPEAKER_A", "hello", 0, 5)}
	summarizer := &fakeSummarizer{topic: "t"}

	a := newTestAnalyzer(summarizer, &fakeClassifier{})
	got := a.Analyze(context.Background(), segments, "agenda: budget review")

	if !got.UsedSupplementaryText {
		t.Error("expected supplementary text flag set")
	}
	if got.SupplementaryTextInfo == nil || !got.SupplementaryTextInfo.Used {
		t.Errorf("expected supplementary text info, got %+v", got.SupplementaryTextInfo)
	}
	if summarizer.gotSuppText != "agenda: budget review" {
		t.Errorf("supplementary text not forwarded: %q", summarizer.gotSuppText)
	}

	// Whitespace-only supplementary text does not count.
	got = a.Analyze(context.Background(), segments, "  \n ")
	if got.UsedSupplementaryText || got.SupplementaryTextInfo != nil {
		t.Errorf("blank supplementary text should not set the flag: %+v", got)
	}
}
