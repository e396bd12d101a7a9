// Package models defines the data structures shared across the analysis pipeline.
package models

// TranscriptChunk is one timestamped unit of transcribed text produced by the
// transcription service. Text may be empty when the chunk covers silence.
type TranscriptChunk struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// SpeakerSegment is one speaker turn produced by the diarization service.
// Segments of different speakers may overlap in time (simultaneous speech).
type SpeakerSegment struct {
	Speaker string  `json:"speaker"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
}

// AlignedSegment is a transcript chunk after speaker attribution.
type AlignedSegment struct {
	Speaker string  `json:"speaker"`
	Text    string  `json:"text"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
}

// SpeakerStats aggregates one speaker's contribution over a whole meeting.
type SpeakerStats struct {
	SpeakingTime float64 `json:"speaking_time"`
	SegmentCount int     `json:"segments"`
	WordCount    int     `json:"words"`
}

// DialogueEntry is one utterance in a speaker's ordered dialogue list.
type DialogueEntry struct {
	Text  string  `json:"text"`
	Start float64 `json:"start_time"`
	End   float64 `json:"end_time"`
}

// Overall sentiment labels reported by the sentiment service.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
	SentimentUnknown  = "unknown"
)

// SentimentResult is the meeting-level sentiment classification.
type SentimentResult struct {
	Overall     string  `json:"overall"`
	Description string  `json:"description"`
	Score       float64 `json:"score"`
}

// SupplementaryTextInfo explains how caller-provided reference material was used.
type SupplementaryTextInfo struct {
	Used    bool   `json:"used"`
	Message string `json:"message"`
}

// MeetingAnalysisResult is the final artifact of a completed job.
//
// Participation holds each speaker's share of total speaking time in [0,1];
// the shares sum to 1 when any speech was attributed and are all 0 otherwise.
type MeetingAnalysisResult struct {
	Summary               string                     `json:"summary"`
	Topic                 string                     `json:"topic"`
	Participation         map[string]float64         `json:"participation"`
	SpeakerStats          map[string]SpeakerStats    `json:"speaker_stats"`
	Sentiment             SentimentResult            `json:"sentiment"`
	SpeakerDialogues      map[string][]DialogueEntry `json:"speaker_dialogues"`
	UsedSupplementaryText bool                       `json:"used_additional_text"`
	SupplementaryTextInfo *SupplementaryTextInfo     `json:"additional_text_info,omitempty"`
}
