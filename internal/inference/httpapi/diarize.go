package httpapi

import (
	"context"
	"fmt"

	"meeting-analysis-service/internal/models"
)

type diarizeResponse struct {
	Segments []models.SpeakerSegment `json:"segments"`
}

// Diarize uploads the recording to the diarization service and returns the
// detected speaker turns.
func (c *Client) Diarize(ctx context.Context, audioPath string) ([]models.SpeakerSegment, error) {
	var out diarizeResponse
	if err := c.postAudio(ctx, c.cfg.DiarizeURL+"/diarize", audioPath, &out); err != nil {
		return nil, fmt.Errorf("diarize: %w", err)
	}
	return out.Segments, nil
}
