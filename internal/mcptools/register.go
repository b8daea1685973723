// Package mcptools exposes the video workflow as MCP tools.
package mcptools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"tubenotes/internal/engine"
	"tubenotes/internal/workflow"
)

type VideoSummarizeInput struct {
	VideoURL string `json:"video_url" jsonschema:"YouTube video URL to summarize"`
}

type VideoSummarizeOutput struct {
	Transcript string `json:"transcript"`
	Summary    string `json:"summary,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

type VideoAnalyzeInput struct {
	VideoURL string `json:"video_url" jsonschema:"YouTube video URL to analyze"`
	Title    string `json:"title,omitempty" jsonschema:"Video title, attached to the analysis"`
}

type TextTranslateInput struct {
	Text     string `json:"text" jsonschema:"Text to translate. HTML markup is preserved"`
	Language string `json:"language" jsonschema:"Target language name, e.g. Spanish"`
}

type TextTranslateOutput struct {
	Text string `json:"text"`
}

type YoutubeSearchInput struct {
	Query string `json:"query" jsonschema:"YouTube search query"`
}

type YoutubeSearchOutput struct {
	Results []engine.VideoResult `json:"results"`
}

// RegisterTools registers the video tools on the given MCP server:
// video_summarize, video_analyze, text_translate, youtube_search.
func RegisterTools(server *mcp.Server, w *workflow.Workflow) {
	registerVideoSummarize(server, w)
	registerVideoAnalyze(server, w)
	registerTextTranslate(server, w)
	registerYoutubeSearch(server)
}

func registerVideoSummarize(server *mcp.Server, w *workflow.Workflow) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "video_summarize",
		Description: "Fetch the transcript of a YouTube video and generate a summary plus detailed HTML notes. Returns whatever succeeded: the transcript is always present, summary and notes may be missing if generation failed.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input VideoSummarizeInput) (*mcp.CallToolResult, VideoSummarizeOutput, error) {
		if input.VideoURL == "" {
			return nil, VideoSummarizeOutput{}, fmt.Errorf("video_url is required")
		}
		res, err := w.FetchAndSummarize(ctx, input.VideoURL)
		if err != nil && res.Transcript == "" {
			return nil, VideoSummarizeOutput{}, err
		}
		return nil, VideoSummarizeOutput{
			Transcript: res.Transcript,
			Summary:    res.Summary,
			Notes:      res.Notes,
		}, nil
	})
}

func registerVideoAnalyze(server *mcp.Server, w *workflow.Workflow) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "video_analyze",
		Description: "Extract the six most important key points from a YouTube video. Repeated calls for the same video are served from a session cache without refetching.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input VideoAnalyzeInput) (*mcp.CallToolResult, workflow.VideoAnalysis, error) {
		if input.VideoURL == "" {
			return nil, workflow.VideoAnalysis{}, fmt.Errorf("video_url is required")
		}
		analysis, err := w.AnalyzeVideo(ctx, input.VideoURL, input.Title)
		if err != nil {
			return nil, workflow.VideoAnalysis{}, err
		}
		return nil, analysis, nil
	})
}

func registerTextTranslate(server *mcp.Server, w *workflow.Workflow) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "text_translate",
		Description: "Translate text or HTML content into a target language, preserving any markup. Useful for translating generated summaries and notes.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input TextTranslateInput) (*mcp.CallToolResult, TextTranslateOutput, error) {
		out, err := w.Translate(ctx, input.Text, input.Language)
		if err != nil {
			return nil, TextTranslateOutput{}, err
		}
		return nil, TextTranslateOutput{Text: out}, nil
	})
}

func registerYoutubeSearch(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_search",
		Description: "Search YouTube for videos. Returns structured JSON with title, link, channel, description, thumbnail, view count and length per result.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input YoutubeSearchInput) (*mcp.CallToolResult, YoutubeSearchOutput, error) {
		results, err := engine.SearchVideos(ctx, input.Query)
		if err != nil {
			return nil, YoutubeSearchOutput{}, err
		}
		return nil, YoutubeSearchOutput{Results: results}, nil
	})
}
