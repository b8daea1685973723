package api

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tubenotes/internal/engine"
	"tubenotes/internal/store"
	"tubenotes/internal/workflow"
)

type stubSource struct {
	transcript string
	err        error
}

func (s *stubSource) Fetch(ctx context.Context, videoURL string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.transcript, nil
}

type stubGen struct{}

func (stubGen) Summarize(ctx context.Context, transcript string) (string, error) {
	return "summary of " + transcript, nil
}

func (stubGen) DetailedNotes(ctx context.Context, transcript string) (string, error) {
	return "<h2>Notes</h2>", nil
}

func (stubGen) KeyPoints(ctx context.Context, transcript string, n int) ([]string, error) {
	points := make([]string, n)
	for i := range points {
		points[i] = "point"
	}
	return points, nil
}

func (stubGen) Translate(ctx context.Context, text, language string) (string, error) {
	return text + " [" + language + "]", nil
}

func (stubGen) GenerateFromNotes(ctx context.Context, notes, userPrompt string) (string, error) {
	return "generated: " + userPrompt, nil
}

type memStore struct {
	records map[string]store.Record
	nextID  int
}

func newMemStore() *memStore {
	return &memStore{records: map[string]store.Record{}}
}

func (m *memStore) Save(ctx context.Context, userID string, rec store.Record) (string, error) {
	if userID == "" {
		return "", engine.Errorf(engine.ErrAuthRequired, "user id is required")
	}
	m.nextID++
	id := "rec-" + strconv.Itoa(m.nextID)
	rec.ID = id
	rec.UserID = userID
	rec.SavedAt = time.Now()
	m.records[id] = rec
	return id, nil
}

func (m *memStore) List(ctx context.Context, userID, sortBy, order string) ([]store.Record, error) {
	out := []store.Record{}
	for _, rec := range m.records {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *memStore) Delete(ctx context.Context, id string) error {
	if _, ok := m.records[id]; !ok {
		return engine.Errorf(engine.ErrNotFound, "record not found: %s", id)
	}
	delete(m.records, id)
	return nil
}

func (m *memStore) Close() error { return nil }

func newTestRouter(src *stubSource) (http.Handler, *memStore) {
	if src == nil {
		src = &stubSource{transcript: "hello transcript"}
	}
	col := newMemStore()
	w := workflow.New(src, stubGen{}, col, workflow.NewAnalysisCache())
	router := NewRouter(ServerConfig{
		Version:     "test",
		Workflow:    w,
		Source:      src,
		Collections: col,
		Logger:      slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)),
		StartTime:   time.Now(),
	})
	return router, col
}

func postJSON(t *testing.T, router http.Handler, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestHealthz(t *testing.T) {
	router, _ := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestTranscriptEndpoint(t *testing.T) {
	router, _ := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/transcript?url=https://www.youtube.com/watch?v=abc123", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp TranscriptResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "hello transcript", resp.Content)
}

func TestTranscriptEndpointRequiresURL(t *testing.T) {
	router, _ := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/transcript", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestTranscriptEndpointUpstreamFailure(t *testing.T) {
	router, _ := newTestRouter(&stubSource{
		err: engine.Errorf(engine.ErrTranscript, "no transcript found for this video"),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/transcript?url=x", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadGateway, rr.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "no transcript found for this video", resp.Error)
	assert.Equal(t, string(engine.ErrTranscript), resp.Code)
}

func TestSummarizeEndpoint(t *testing.T) {
	router, _ := newTestRouter(nil)

	rr := postJSON(t, router, "/api/summarize", SummarizeRequest{
		VideoURL: "https://www.youtube.com/watch?v=abc123",
	}, nil)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp workflow.SummarizeResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "hello transcript", resp.Transcript)
	assert.Equal(t, "summary of hello transcript", resp.Summary)
	assert.Equal(t, "<h2>Notes</h2>", resp.Notes)
}

func TestViewEndpointTranscript(t *testing.T) {
	router, _ := newTestRouter(nil)

	rr := postJSON(t, router, "/api/view", ViewRequest{
		Kind:       "transcript",
		Transcript: "raw transcript",
	}, nil)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp ViewResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "raw transcript", resp.Content)
	assert.False(t, resp.Generated)
}

func TestViewEndpointNoTranscript(t *testing.T) {
	router, _ := newTestRouter(nil)

	rr := postJSON(t, router, "/api/view", ViewRequest{Kind: "summary"}, nil)
	assert.Equal(t, http.StatusPreconditionFailed, rr.Code)
}

func TestTranslateEndpointPoints(t *testing.T) {
	router, _ := newTestRouter(nil)

	rr := postJSON(t, router, "/api/translate", TranslateRequest{
		Points:   []string{"one", "two"},
		Language: "German",
	}, nil)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp TranslateResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, []string{"one [German]", "two [German]"}, resp.Points)
}

func TestAnalyzeEndpoint(t *testing.T) {
	router, _ := newTestRouter(nil)

	rr := postJSON(t, router, "/api/analyze", AnalyzeRequest{
		VideoURL: "https://www.youtube.com/watch?v=abc123",
		Title:    "A Video",
	}, nil)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp workflow.VideoAnalysis
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "abc123", resp.VideoID)
	assert.Len(t, resp.Points, engine.KeyPointCount)
}

func TestAnalyzeEndpointBadURL(t *testing.T) {
	router, _ := newTestRouter(nil)

	rr := postJSON(t, router, "/api/analyze", AnalyzeRequest{
		VideoURL: "https://example.com/notavideo",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGenerateEndpoint(t *testing.T) {
	router, _ := newTestRouter(nil)

	rr := postJSON(t, router, "/api/generate", GenerateRequest{
		Prompt: "write a blog post",
		Notes:  "<h2>Notes</h2>",
	}, nil)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp GeneratedResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "generated: write a blog post", resp.Content)
}

func TestCollectionsRequireIdentity(t *testing.T) {
	router, _ := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/collections/", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = postJSON(t, router, "/api/collections/", workflow.Draft{
		VideoURL: "https://www.youtube.com/watch?v=abc123",
		Title:    "A Video",
		Type:     store.TypeSummary,
		Summary:  "a summary",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestCollectionsSaveListDelete(t *testing.T) {
	router, col := newTestRouter(nil)
	auth := map[string]string{"X-User-ID": "user-1"}

	rr := postJSON(t, router, "/api/collections/", workflow.Draft{
		VideoURL:   "https://www.youtube.com/watch?v=abc123",
		Title:      "A Video",
		Type:       store.TypeSummary,
		Transcript: "raw transcript",
		Summary:    "a summary",
	}, auth)
	require.Equal(t, http.StatusCreated, rr.Code)

	var saved SaveResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &saved))
	require.NotEmpty(t, saved.ID)
	assert.Len(t, col.records, 1)

	req := httptest.NewRequest(http.MethodGet, "/api/collections/", nil)
	req.Header.Set("X-User-ID", "user-1")
	lr := httptest.NewRecorder()
	router.ServeHTTP(lr, req)
	require.Equal(t, http.StatusOK, lr.Code)

	var listed CollectionResponse
	require.NoError(t, json.Unmarshal(lr.Body.Bytes(), &listed))
	require.Len(t, listed.Records, 1)
	assert.Equal(t, "A Video", listed.Records[0].Title)

	dreq := httptest.NewRequest(http.MethodDelete, "/api/collections/"+saved.ID, nil)
	dreq.Header.Set("X-User-ID", "user-1")
	dr := httptest.NewRecorder()
	router.ServeHTTP(dr, dreq)
	assert.Equal(t, http.StatusNoContent, dr.Code)
	assert.Empty(t, col.records)
}
