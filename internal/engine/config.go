package engine

import (
	"net/http"

	"github.com/anatolykoptev/go-kit/llm"
	"golang.org/x/time/rate"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	TranscriptAPIURL string // Supadata-compatible transcript endpoint
	TranscriptAPIKey string
	SerpAPIKey       string // YouTube search via SerpAPI

	LLMAPIBase     string
	LLMAPIKey      string
	LLMModel       string
	LLMTemperature float64
	LLMMaxTokens   int
	LLMRateLimit   float64 // LLM calls per second; 0 = unlimited

	MaxTranscriptChars int // input cap before prompt submission

	HTTPClient *http.Client
	LLMClient  *llm.Client
}

var cfg Config

// Cfg exposes the engine configuration for sub-packages.
// Always points to the current cfg value.
var Cfg = &cfg

// llmLimiter throttles generation calls; set in Init.
var llmLimiter *rate.Limiter

// Init initializes the engine with the given configuration.
func Init(c Config) {
	if c.MaxTranscriptChars <= 0 {
		c.MaxTranscriptChars = 30000
	}
	cfg = c
	Cfg = &cfg

	if c.LLMRateLimit > 0 {
		llmLimiter = rate.NewLimiter(rate.Limit(c.LLMRateLimit), 1)
	} else {
		llmLimiter = nil
	}
}
