package httpapi

import (
	"context"
	"fmt"

	"meeting-analysis-service/internal/models"
)

type summarizeRequest struct {
	Text           string                  `json:"text"`
	Segments       []models.AlignedSegment `json:"segments,omitempty"`
	AdditionalText string                  `json:"additional_text,omitempty"`
}

type summarizeResponse struct {
	Topic string `json:"topic"`
}

// Summarize asks the topic service for an abstractive summary. The segment
// sequence is passed along so the service can weight the opening and closing
// portions of the meeting.
func (c *Client) Summarize(ctx context.Context, fullText string, segments []models.AlignedSegment, supplementary string) (string, error) {
	req := summarizeRequest{
		Text:           fullText,
		Segments:       segments,
		AdditionalText: supplementary,
	}
	var out summarizeResponse
	if err := c.postJSON(ctx, c.cfg.SummarizeURL+"/summarize", req, &out); err != nil {
		return "", fmt.Errorf("summarize: %w", err)
	}
	return out.Topic, nil
}
