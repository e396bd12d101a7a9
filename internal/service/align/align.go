// Package align fuses a timestamped transcript with a speaker segmentation
// into a single speaker-attributed timeline. Align is a pure function: it has
// no shared state, performs no I/O, and the same inputs always produce the
// same output.
package align

import (
	"math"
	"strings"

	"meeting-analysis-service/internal/models"
)

const (
	// DefaultSpeaker labels synthetic segments when no diarization is available.
	DefaultSpeaker = "SPEAKER_01"

	// silentPlaceholder replaces empty chunk text so every chunk with valid
	// timing still yields a segment.
	silentPlaceholder = "[silent segment]"

	// syntheticDuration is the assumed length of a transcript with no timing
	// information at all.
	syntheticDuration = 60.0

	// secondsPerWord estimates speech duration from word count when the only
	// usable input is the flat transcript text.
	secondsPerWord = 0.5
)

// Align attributes each transcript chunk to the speaker segment it overlaps
// the most, in chunk order. The speaker decision for a chunk is an ordered
// table: maximum temporal overlap, then nearest by time gap when nothing
// overlaps, then the first segment in input order. All ties break toward the
// earlier segment in input order, so the result is deterministic.
//
// Degenerate inputs:
//   - no chunks and no speaker segments but non-empty transcript: one
//     synthetic segment covering [0, 60) under DefaultSpeaker;
//   - chunks present but no speaker segments: empty result (the upstream
//     system behaves this way; callers that want a synthetic fallback must
//     pass an empty chunk list instead);
//   - every chunk skipped but non-empty transcript: one synthetic segment
//     whose duration is estimated from the word count.
func Align(transcript string, chunks []models.TranscriptChunk, speakers []models.SpeakerSegment) []models.AlignedSegment {
	if len(chunks) == 0 || len(speakers) == 0 {
		if len(chunks) == 0 && strings.TrimSpace(transcript) != "" {
			return []models.AlignedSegment{syntheticSegment(transcript, syntheticDuration)}
		}
		return []models.AlignedSegment{}
	}

	aligned := make([]models.AlignedSegment, 0, len(chunks))
	for _, chunk := range chunks {
		if !validTiming(chunk) {
			// Broken chunk timing must not abort the rest of the transcript.
			continue
		}

		speaker := pickSpeaker(chunk, speakers)

		text := strings.TrimSpace(chunk.Text)
		if text == "" {
			text = silentPlaceholder
		}

		aligned = append(aligned, models.AlignedSegment{
			Speaker: speaker,
			Text:    text,
			Start:   chunk.Start,
			End:     chunk.End,
		})
	}

	if len(aligned) == 0 && strings.TrimSpace(transcript) != "" {
		end := float64(len(strings.Fields(transcript))) * secondsPerWord
		return []models.AlignedSegment{syntheticSegment(transcript, end)}
	}

	return aligned
}

// pickSpeaker applies the overlap → nearest-gap → first-in-list decision
// table. speakers must be non-empty.
func pickSpeaker(chunk models.TranscriptChunk, speakers []models.SpeakerSegment) string {
	best := -1
	maxOverlap := 0.0
	for i, seg := range speakers {
		overlap := math.Min(chunk.End, seg.End) - math.Max(chunk.Start, seg.Start)
		if overlap > maxOverlap {
			maxOverlap = overlap
			best = i
		}
	}
	if best >= 0 {
		return speakers[best].Speaker
	}

	// Nothing overlaps; fall back to the segment closest in time.
	best = -1
	minDistance := math.Inf(1)
	for i, seg := range speakers {
		var distance float64
		switch {
		case chunk.End <= seg.Start:
			distance = seg.Start - chunk.End
		case chunk.Start >= seg.End:
			distance = chunk.Start - seg.End
		default:
			distance = 0
		}
		if distance < minDistance {
			minDistance = distance
			best = i
		}
	}
	if best >= 0 {
		return speakers[best].Speaker
	}

	return speakers[0].Speaker
}

func validTiming(chunk models.TranscriptChunk) bool {
	if math.IsNaN(chunk.Start) || math.IsNaN(chunk.End) {
		return false
	}
	if math.IsInf(chunk.Start, 0) || math.IsInf(chunk.End, 0) {
		return false
	}
	return chunk.Start <= chunk.End
}

func syntheticSegment(transcript string, end float64) models.AlignedSegment {
	return models.AlignedSegment{
		Speaker: DefaultSpeaker,
		Text:    strings.TrimSpace(transcript),
		Start:   0,
		End:     end,
	}
}
