package httpapi

import (
	"context"
	"fmt"

	"meeting-analysis-service/internal/models"
)

type transcribeResponse struct {
	Text     string                   `json:"text"`
	Chunks   []models.TranscriptChunk `json:"chunks"`
	Language string                   `json:"language"`
}

// Transcribe uploads the recording to the transcription service.
func (c *Client) Transcribe(ctx context.Context, audioPath string) (string, []models.TranscriptChunk, error) {
	var out transcribeResponse
	if err := c.postAudio(ctx, c.cfg.TranscribeURL+"/transcribe", audioPath, &out); err != nil {
		return "", nil, fmt.Errorf("transcribe: %w", err)
	}
	return out.Text, out.Chunks, nil
}
