// tubenotes — YouTube transcript, summary & notes server.
//
// Fetches video transcripts, generates summaries, detailed notes and key
// points with an LLM, and persists composite records per user. Exposes an
// HTTP JSON API plus four MCP tools: video_summarize, video_analyze,
// text_translate, youtube_search.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-kit/llm"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"tubenotes/internal/api"
	"tubenotes/internal/engine"
	"tubenotes/internal/mcptools"
	"tubenotes/internal/store"
	"tubenotes/internal/workflow"
)

var (
	version = "dev"
	apiPort = env.Int("API_PORT", 8890)
	mcpPort = env.Str("MCP_PORT", "8891")
)

func main() {
	initEngine()

	logger := slog.Default()
	slog.Info("starting tubenotes",
		slog.Int("api_port", apiPort),
		slog.String("mcp_port", mcpPort),
	)

	collections, err := openStore()
	if err != nil {
		slog.Error("store init failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer collections.Close()

	w := workflow.New(
		&engine.TranscriptClient{},
		&engine.Generator{},
		collections,
		workflow.NewAnalysisCache(),
	)

	httpServer := api.NewServer(api.ServerConfig{
		Port:        apiPort,
		Version:     version,
		Workflow:    w,
		Source:      &engine.TranscriptClient{},
		Collections: collections,
		Logger:      logger,
		StartTime:   time.Now(),
	})
	go func() {
		if err := httpServer.Start(); err != nil {
			slog.Error("http server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "tubenotes",
		Version: version,
	}, nil)
	mcptools.RegisterTools(server, w)
	slog.Info("tools registered", slog.Int("count", 4))

	go handleShutdown(httpServer)

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "tubenotes",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 600 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}

func initEngine() {
	c := engine.Config{
		TranscriptAPIURL:   env.Str("TRANSCRIPT_API_URL", "https://api.supadata.ai/v1/youtube/transcript"),
		TranscriptAPIKey:   env.Str("TRANSCRIPT_API_KEY", ""),
		SerpAPIKey:         env.Str("SERPAPI_KEY", ""),
		LLMAPIBase:         env.Str("LLM_API_BASE", "https://generativelanguage.googleapis.com/v1beta/openai"),
		LLMAPIKey:          env.Str("LLM_API_KEY", ""),
		LLMModel:           env.Str("LLM_MODEL", "gemini-2.5-flash"),
		LLMTemperature:     env.Float("LLM_TEMPERATURE", 0.3),
		LLMMaxTokens:       env.Int("LLM_MAX_TOKENS", 8192),
		LLMRateLimit:       env.Float("LLM_RATE_LIMIT", 2),
		MaxTranscriptChars: env.Int("MAX_TRANSCRIPT_CHARS", 30000),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
		},
	}

	c.LLMClient = llm.NewClient(c.LLMAPIBase, c.LLMAPIKey, c.LLMModel,
		llm.WithMaxTokens(c.LLMMaxTokens),
		llm.WithTemperature(c.LLMTemperature),
		llm.WithHTTPClient(&http.Client{Timeout: 120 * time.Second}),
	)

	engine.Init(c)
}

func openStore() (store.Store, error) {
	if databaseURL := env.Str("DATABASE_URL", ""); databaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		slog.Info("using postgres store")
		return store.OpenPostgres(ctx, databaseURL)
	}
	path := env.Str("SQLITE_PATH", "data/collection.db")
	slog.Info("using sqlite store", slog.String("path", path))
	return store.OpenSQLite(path)
}

func handleShutdown(httpServer *api.Server) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		slog.Error("http shutdown failed", slog.Any("error", err))
	}
	os.Exit(0)
}
