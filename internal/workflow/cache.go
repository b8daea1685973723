package workflow

import "sync"

// VideoAnalysis is the cached result of a key-point analysis. A non-empty
// entry always carries exactly six points; existence implies both the
// transcript fetch and the generation succeeded.
type VideoAnalysis struct {
	VideoID string   `json:"videoId"`
	Title   string   `json:"title"`
	Points  []string `json:"points"`
}

// AnalysisCache maps video ids to completed analyses for the lifetime of
// one session. Entries are never evicted and there is no delete path;
// removal only happens on the persisted-collection side.
//
// Writes go through Begin/Commit request tokens: each AnalyzeVideo
// invocation for an id takes the next token, and only the latest token may
// commit. A slow first call racing a fast second call for the same id can
// therefore never overwrite the newer result with a stale one.
type AnalysisCache struct {
	mu      sync.Mutex
	entries map[string]VideoAnalysis
	tokens  map[string]uint64
}

// NewAnalysisCache returns an empty session cache.
func NewAnalysisCache() *AnalysisCache {
	return &AnalysisCache{
		entries: make(map[string]VideoAnalysis),
		tokens:  make(map[string]uint64),
	}
}

// Get returns the cached analysis for a video id, if present.
func (c *AnalysisCache) Get(videoID string) (VideoAnalysis, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	va, ok := c.entries[videoID]
	return va, ok
}

// Begin issues the next request token for a video id. The caller must pass
// it back to Commit once the analysis completes.
func (c *AnalysisCache) Begin(videoID string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens[videoID]++
	return c.tokens[videoID]
}

// Commit stores an analysis if token is still the latest issued for the
// video id. Stale responses are discarded and Commit reports false.
func (c *AnalysisCache) Commit(videoID string, token uint64, va VideoAnalysis) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if token != c.tokens[videoID] {
		return false
	}
	c.entries[videoID] = va
	return true
}

// Len returns the number of cached analyses.
func (c *AnalysisCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
