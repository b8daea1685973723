package engine

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

// VideoResult is one entry from the YouTube search engine.
type VideoResult struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Channel     string `json:"channel,omitempty"`
	Description string `json:"description,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	Views       int64  `json:"views,omitempty"`
	Length      string `json:"length,omitempty"`
}

// serpVideoResult mirrors the SerpAPI youtube engine response entries.
type serpVideoResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Channel struct {
		Name string `json:"name"`
	} `json:"channel"`
	Description string `json:"description"`
	Thumbnail   struct {
		Static string `json:"static"`
	} `json:"thumbnail"`
	Views  int64  `json:"views"`
	Length string `json:"length"`
}

type serpSearchResponse struct {
	VideoResults []serpVideoResult `json:"video_results"`
	Error        string            `json:"error"`
}

// SearchVideos queries the SerpAPI YouTube engine. This is a separate query
// surface consumed by the search endpoint only; the orchestration workflow
// never calls it.
func SearchVideos(ctx context.Context, query string) ([]VideoResult, error) {
	if query == "" {
		return nil, Errorf(ErrValidation, "search query is required")
	}
	IncrSearchRequests()

	q := url.Values{}
	q.Set("engine", "youtube")
	q.Set("search_query", query)
	q.Set("api_key", cfg.SerpAPIKey)
	reqURL := "https://serpapi.com/search.json?" + q.Encode()

	resp, err := RetryHTTP(ctx, DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		return cfg.HTTPClient.Do(req)
	})
	if err != nil {
		return nil, Wrap(ErrSearch, err, "failed to fetch search results")
	}
	defer resp.Body.Close()

	var sr serpSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, Wrap(ErrSearch, err, "decode search response")
	}
	if sr.Error != "" {
		return nil, Errorf(ErrSearch, "%s", sr.Error)
	}

	results := make([]VideoResult, 0, len(sr.VideoResults))
	for _, v := range sr.VideoResults {
		results = append(results, VideoResult{
			Title:       v.Title,
			Link:        v.Link,
			Channel:     v.Channel.Name,
			Description: v.Description,
			Thumbnail:   v.Thumbnail.Static,
			Views:       v.Views,
			Length:      v.Length,
		})
	}
	return results, nil
}
