// Package summarize relays video-transcript summaries: it fetches the
// transcript from an external service and streams an LLM-generated summary
// back to the caller delta by delta.
package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrRelay marks a failure in either the transcript or the completion hop.
var ErrRelay = errors.New("summary relay failed")

// TranscriptRequest is the payload the transcript service expects.
type TranscriptRequest struct {
	URL               string `json:"url"`
	IncludeTimestamps bool   `json:"include_timestamps"`
	GroupingStrategy  string `json:"grouping_strategy"`
}

// TranscriptResponse is what the transcript service returns.
type TranscriptResponse struct {
	Text          string  `json:"text"`
	VideoTitle    string  `json:"video_title"`
	VideoID       string  `json:"video_id"`
	TotalDuration float64 `json:"total_duration"`
}

// TranscriptClient talks to the external transcript-fetch service.
type TranscriptClient struct {
	baseURL string
	client  *http.Client
}

func NewTranscriptClient(baseURL string) *TranscriptClient {
	return &TranscriptClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// Fetch retrieves the transcript for a video URL.
func (c *TranscriptClient) Fetch(ctx context.Context, videoURL string) (*TranscriptResponse, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("%w: transcript service not configured", ErrRelay)
	}
	payload, err := json.Marshal(TranscriptRequest{
		URL:              videoURL,
		GroupingStrategy: "smart",
	})
	if err != nil {
		return nil, fmt.Errorf("%w: marshal request: %v", ErrRelay, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transcript", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: new request: %v", ErrRelay, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRelay, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: transcript service status %d: %s", ErrRelay, resp.StatusCode, bytes.TrimSpace(body))
	}

	var out TranscriptResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decode transcript: %v", ErrRelay, err)
	}
	if out.Text == "" {
		return nil, fmt.Errorf("%w: empty transcript", ErrRelay)
	}
	return &out, nil
}

// Healthy probes the transcript service's health endpoint.
func (c *TranscriptClient) Healthy(ctx context.Context) bool {
	if c.baseURL == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
