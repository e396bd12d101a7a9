package httpapi

import (
	"context"
	"fmt"

	"meeting-analysis-service/internal/models"
)

type sentimentRequest struct {
	Segments []models.AlignedSegment `json:"segments"`
}

// Classify sends the aligned segments to the sentiment service.
func (c *Client) Classify(ctx context.Context, segments []models.AlignedSegment) (models.SentimentResult, error) {
	var out models.SentimentResult
	if err := c.postJSON(ctx, c.cfg.SentimentURL+"/sentiment", sentimentRequest{Segments: segments}, &out); err != nil {
		return models.SentimentResult{}, fmt.Errorf("sentiment: %w", err)
	}
	return out, nil
}
