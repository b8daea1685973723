package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// transcriptResponse is the provider's wire format: content on success,
// error/message on failure.
type transcriptResponse struct {
	Content string `json:"content"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

func (r transcriptResponse) errorMessage() string {
	if r.Error != "" {
		return r.Error
	}
	if r.Message != "" {
		return r.Message
	}
	return "error fetching transcript"
}

// TranscriptClient fetches plain-text transcripts from a Supadata-compatible
// API, attaching the server-side credential. HTTP status maps 1:1 to
// success/failure.
type TranscriptClient struct{}

// Fetch returns the transcript text for a video URL.
func (TranscriptClient) Fetch(ctx context.Context, videoURL string) (string, error) {
	IncrTranscriptRequests()

	q := url.Values{}
	q.Set("url", videoURL)
	q.Set("text", "true")
	reqURL := cfg.TranscriptAPIURL + "?" + q.Encode()

	resp, err := RetryHTTP(ctx, DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("x-api-key", cfg.TranscriptAPIKey)
		req.Header.Set("Accept", "application/json")
		return cfg.HTTPClient.Do(req)
	})
	if err != nil {
		IncrTranscriptErrors()
		return "", Wrap(ErrTranscript, err, "failed to fetch transcript")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4*1024*1024))
	if err != nil {
		IncrTranscriptErrors()
		return "", Wrap(ErrTranscript, err, "failed to read transcript response")
	}

	var tr transcriptResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		IncrTranscriptErrors()
		return "", Wrap(ErrTranscript, err, fmt.Sprintf("decode transcript response (status %d)", resp.StatusCode))
	}

	if resp.StatusCode != http.StatusOK {
		IncrTranscriptErrors()
		return "", Errorf(ErrTranscript, "%s", tr.errorMessage())
	}
	if tr.Content == "" {
		IncrTranscriptErrors()
		return "", Errorf(ErrTranscript, "no transcript found for this video")
	}
	return tr.Content, nil
}
