package engine

import (
	"context"
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/anatolykoptev/go-kit/llm"
)

// KeyPointCount is the fixed number of points in a video analysis.
const KeyPointCount = 6

// stripFences removes markdown code fences from LLM output.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// CallLLM sends a prompt using the configured temperature and max_tokens.
// Calls are throttled by the configured rate limit.
func CallLLM(ctx context.Context, prompt string, opts ...llm.ChatOption) (string, error) {
	if llmLimiter != nil {
		if err := llmLimiter.Wait(ctx); err != nil {
			return "", err
		}
	}
	metrics.LLMCalls.Add(1)
	resp, err := cfg.LLMClient.Complete(ctx, "", prompt, opts...)
	if err != nil {
		metrics.LLMErrors.Add(1)
		return "", err
	}
	return stripFences(resp), nil
}

// Generator derives text artifacts from transcripts via the configured
// LLM client. The zero value is ready to use after Init.
type Generator struct{}

// Summarize produces a concise HTML summary of a transcript.
func (Generator) Summarize(ctx context.Context, transcript string) (string, error) {
	prompt := fmt.Sprintf(summaryPrompt, TruncateInput(transcript))
	raw, err := CallLLM(ctx, prompt)
	if err != nil {
		return "", Wrap(ErrGeneration, err, "failed to generate summary")
	}
	return RenderMarkup(raw), nil
}

// DetailedNotes produces comprehensive educational notes from a transcript.
func (Generator) DetailedNotes(ctx context.Context, transcript string) (string, error) {
	prompt := fmt.Sprintf(notesPrompt, TruncateInput(transcript))
	raw, err := CallLLM(ctx, prompt)
	if err != nil {
		return "", Wrap(ErrGeneration, err, "failed to generate detailed notes")
	}
	return RenderMarkup(raw), nil
}

// KeyPoints asks for exactly n numbered points and parses them out.
// A response that yields fewer than n usable items is unparsable content.
func (Generator) KeyPoints(ctx context.Context, transcript string, n int) ([]string, error) {
	prompt := fmt.Sprintf(keyPointsPrompt, n, n, TruncateInput(transcript))
	raw, err := CallLLM(ctx, prompt, llm.WithChatMaxTokens(512))
	if err != nil {
		return nil, Wrap(ErrGeneration, err, "failed to generate key points")
	}
	points := ParseNumberedPoints(raw, n)
	if len(points) < n {
		return nil, Errorf(ErrGeneration, "expected %d key points, parsed %d", n, len(points))
	}
	return points, nil
}

// Translate renders text in the target language, preserving the markup
// convention. No short-circuit when the target equals the source language;
// the model passes such text through.
func (Generator) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	prompt := fmt.Sprintf(translatePrompt, targetLanguage, text)
	raw, err := CallLLM(ctx, prompt, llm.WithChatTemperature(0.2))
	if err != nil {
		return "", Wrap(ErrGeneration, err, "failed to translate content")
	}
	return RenderMarkup(raw), nil
}

// GenerateFromNotes combines stored video notes with a user prompt.
// HTML notes are converted to markdown before prompting so the model sees
// clean text rather than tags.
func (Generator) GenerateFromNotes(ctx context.Context, notes, userPrompt string) (string, error) {
	if md, err := htmltomarkdown.ConvertString(notes); err == nil && strings.TrimSpace(md) != "" {
		notes = md
	}
	prompt := fmt.Sprintf(generatePrompt, TruncateInput(notes), userPrompt)
	raw, err := CallLLM(ctx, prompt)
	if err != nil {
		return "", Wrap(ErrGeneration, err, "failed to generate content")
	}
	return RenderMarkup(raw), nil
}
