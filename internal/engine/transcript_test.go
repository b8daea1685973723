package engine

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// initTestEngine points the engine at a test server.
func initTestEngine(t *testing.T, srv *httptest.Server) {
	t.Helper()
	prev := cfg
	Init(Config{
		TranscriptAPIURL:   srv.URL,
		TranscriptAPIKey:   "test-key",
		HTTPClient:         srv.Client(),
		MaxTranscriptChars: 30000,
	})
	t.Cleanup(func() { Init(prev) })
}

func TestTranscriptClientFetch(t *testing.T) {
	var gotKey, gotURL string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		gotURL = r.URL.Query().Get("url")
		json.NewEncoder(w).Encode(map[string]string{"content": "Alice explains recursion."})
	}))
	defer srv.Close()
	initTestEngine(t, srv)

	text, err := TranscriptClient{}.Fetch(context.Background(), "https://www.youtube.com/watch?v=abc")
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if text != "Alice explains recursion." {
		t.Errorf("unexpected transcript: %q", text)
	}
	if gotKey != "test-key" {
		t.Errorf("api key not attached, got %q", gotKey)
	}
	if gotURL != "https://www.youtube.com/watch?v=abc" {
		t.Errorf("url not forwarded, got %q", gotURL)
	}
}

func TestTranscriptClientFetchAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "transcript unavailable"})
	}))
	defer srv.Close()
	initTestEngine(t, srv)

	_, err := TranscriptClient{}.Fetch(context.Background(), "https://www.youtube.com/watch?v=abc")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !IsCode(err, ErrTranscript) {
		t.Errorf("expected TRANSCRIPT_FAILED, got %v", CodeOf(err))
	}
}

func TestTranscriptClientFetchEmptyContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"content": ""})
	}))
	defer srv.Close()
	initTestEngine(t, srv)

	_, err := TranscriptClient{}.Fetch(context.Background(), "https://www.youtube.com/watch?v=abc")
	if err == nil {
		t.Fatal("expected error for empty content")
	}
	if !IsCode(err, ErrTranscript) {
		t.Errorf("expected TRANSCRIPT_FAILED, got %v", CodeOf(err))
	}
}
