// Package httpapi implements the inference contracts against HTTP model
// services: multipart uploads for the audio endpoints, JSON for the text ones.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// Config points the client at the four inference services.
type Config struct {
	TranscribeURL string
	DiarizeURL    string
	SummarizeURL  string
	SentimentURL  string
	Timeout       time.Duration
}

// Client talks to the external inference services. It implements all four
// collaborator interfaces so the provider can be swapped as a unit.
type Client struct {
	c   *http.Client
	cfg Config
}

// New builds a client with a shared HTTP transport. Model inference is slow;
// the default timeout leaves room for large recordings.
func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Minute
	}
	return &Client{
		c:   &http.Client{Timeout: cfg.Timeout},
		cfg: cfg,
	}
}

// postAudio uploads the file at audioPath as a multipart form and decodes the
// JSON response into out.
func (c *Client) postAudio(ctx context.Context, url, audioPath string, out any) error {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	fw, err := w.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return err
	}
	fd, err := os.Open(audioPath)
	if err != nil {
		return err
	}
	defer fd.Close()

	if _, err = io.Copy(fw, fd); err != nil {
		return err
	}
	if err = w.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	return c.do(req, out)
}

// postJSON sends a JSON payload and decodes the JSON response into out.
func (c *Client) postJSON(ctx context.Context, url string, payload, out any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s %s: %s", req.URL.Path, resp.Status, string(b))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s decode: %w", req.URL.Path, err)
	}
	return nil
}
