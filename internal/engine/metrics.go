package engine

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	TranscriptRequests atomic.Int64
	TranscriptErrors   atomic.Int64
	LLMCalls           atomic.Int64
	LLMErrors          atomic.Int64
	SearchRequests     atomic.Int64
	AnalysisCacheHits  atomic.Int64
	AnalysisCacheMiss  atomic.Int64
	CollectionSaves    atomic.Int64
}

// GetMetrics returns a snapshot of all counters.
func GetMetrics() map[string]int64 {
	return map[string]int64{
		"transcript_requests":   metrics.TranscriptRequests.Load(),
		"transcript_errors":     metrics.TranscriptErrors.Load(),
		"llm_calls":             metrics.LLMCalls.Load(),
		"llm_errors":            metrics.LLMErrors.Load(),
		"search_requests":       metrics.SearchRequests.Load(),
		"analysis_cache_hits":   metrics.AnalysisCacheHits.Load(),
		"analysis_cache_misses": metrics.AnalysisCacheMiss.Load(),
		"collection_saves":      metrics.CollectionSaves.Load(),
	}
}

// FormatMetrics returns metrics as a simple text format for the /metrics endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	keys := []string{
		"transcript_requests", "transcript_errors",
		"llm_calls", "llm_errors",
		"search_requests",
		"analysis_cache_hits", "analysis_cache_misses",
		"collection_saves",
	}
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for the workflow and sub-packages.
func IncrTranscriptRequests() { metrics.TranscriptRequests.Add(1) }
func IncrTranscriptErrors()   { metrics.TranscriptErrors.Add(1) }
func IncrSearchRequests()     { metrics.SearchRequests.Add(1) }
func IncrAnalysisCacheHit()   { metrics.AnalysisCacheHits.Add(1) }
func IncrAnalysisCacheMiss()  { metrics.AnalysisCacheMiss.Add(1) }
func IncrCollectionSaves()    { metrics.CollectionSaves.Add(1) }
