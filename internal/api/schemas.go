package api

import (
	"tubenotes/internal/engine"
	"tubenotes/internal/store"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	UptimeS int64  `json:"uptime_s"`
}

type TranscriptResponse struct {
	Content string `json:"content"`
}

type SummarizeRequest struct {
	VideoURL string `json:"videoUrl"`
}

type ViewRequest struct {
	Kind       string `json:"kind"`
	Transcript string `json:"transcript"`
	Cached     string `json:"cached,omitempty"`
}

type ViewResponse struct {
	Content   string `json:"content"`
	Generated bool   `json:"generated"`
}

type TranslateRequest struct {
	Content  string   `json:"content,omitempty"`
	Points   []string `json:"points,omitempty"`
	Language string   `json:"language"`
}

type TranslateResponse struct {
	Content string   `json:"content,omitempty"`
	Points  []string `json:"points,omitempty"`
}

type AnalyzeRequest struct {
	VideoURL string `json:"videoUrl"`
	Title    string `json:"title"`
}

type GenerateRequest struct {
	Prompt  string   `json:"prompt"`
	Notes   string   `json:"notes,omitempty"`
	Summary string   `json:"summary,omitempty"`
	Points  []string `json:"points,omitempty"`
}

type SearchResponse struct {
	Results []engine.VideoResult `json:"results"`
}

type GeneratedResponse struct {
	Content string `json:"content"`
}

type CollectionResponse struct {
	Records []store.Record `json:"records"`
}

type SaveResponse struct {
	ID       string   `json:"id"`
	Warnings []string `json:"warnings,omitempty"`
}
