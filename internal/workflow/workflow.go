// Package workflow orchestrates transcript retrieval, content generation
// and collection saves on top of the engine clients.
package workflow

import (
	"context"
	"strings"

	"tubenotes/internal/engine"
	"tubenotes/internal/store"
)

// TranscriptSource fetches the plain-text transcript for a video URL.
type TranscriptSource interface {
	Fetch(ctx context.Context, videoURL string) (string, error)
}

// ContentGenerator produces derived artifacts from a transcript.
type ContentGenerator interface {
	Summarize(ctx context.Context, transcript string) (string, error)
	DetailedNotes(ctx context.Context, transcript string) (string, error)
	KeyPoints(ctx context.Context, transcript string, n int) ([]string, error)
	Translate(ctx context.Context, text, language string) (string, error)
	GenerateFromNotes(ctx context.Context, notes, userPrompt string) (string, error)
}

// Collections is the subset of the store the workflow writes through.
type Collections interface {
	Save(ctx context.Context, userID string, rec store.Record) (string, error)
}

// Workflow ties the transcript source, the generator, the collection store
// and the session analysis cache together. All collaborators are injected.
type Workflow struct {
	source      TranscriptSource
	gen         ContentGenerator
	collections Collections
	cache       *AnalysisCache
}

// New builds a workflow. cache may not be nil; pass NewAnalysisCache().
func New(source TranscriptSource, gen ContentGenerator, collections Collections, cache *AnalysisCache) *Workflow {
	return &Workflow{source: source, gen: gen, collections: collections, cache: cache}
}

// SummarizeResult carries the transcript and whichever derived artifacts
// were generated. On partial failure Transcript is still populated.
type SummarizeResult struct {
	Transcript string `json:"transcript"`
	Summary    string `json:"summary,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// FetchAndSummarize fetches the transcript for videoURL, then generates the
// summary and the detailed notes concurrently. The transcript fetch is the
// gate: if it fails nothing is generated. A generation failure does not
// discard the transcript or the sibling artifact that succeeded.
func (w *Workflow) FetchAndSummarize(ctx context.Context, videoURL string) (SummarizeResult, error) {
	var res SummarizeResult
	if strings.TrimSpace(videoURL) == "" {
		return res, engine.Errorf(engine.ErrValidation, "please enter a YouTube URL")
	}

	transcript, err := w.source.Fetch(ctx, videoURL)
	if err != nil {
		return res, coerce(err, engine.ErrTranscript, "failed to fetch transcript")
	}
	res.Transcript = transcript

	type artifact struct {
		kind string
		text string
		err  error
	}
	ch := make(chan artifact, 2)
	go func() {
		text, err := w.gen.Summarize(ctx, transcript)
		ch <- artifact{"summary", text, err}
	}()
	go func() {
		text, err := w.gen.DetailedNotes(ctx, transcript)
		ch <- artifact{"notes", text, err}
	}()

	var firstErr error
	for i := 0; i < 2; i++ {
		a := <-ch
		if a.err != nil {
			if firstErr == nil {
				firstErr = coerce(a.err, engine.ErrGeneration, "failed to generate "+a.kind)
			}
			continue
		}
		if a.kind == "summary" {
			res.Summary = a.text
		} else {
			res.Notes = a.text
		}
	}
	return res, firstErr
}

// ArtifactKind names a viewable artifact of a video.
type ArtifactKind string

const (
	ArtifactTranscript ArtifactKind = "transcript"
	ArtifactSummary    ArtifactKind = "summary"
	ArtifactNotes      ArtifactKind = "notes"
)

// ViewArtifact returns the requested artifact, generating it on demand when
// no cached copy exists. The transcript is always returned verbatim and
// never regenerated. generated reports whether a fresh generation happened,
// so callers know to retain the result.
func (w *Workflow) ViewArtifact(ctx context.Context, kind ArtifactKind, transcript, cached string) (content string, generated bool, err error) {
	if transcript == "" {
		return "", false, engine.Errorf(engine.ErrNoTranscript, "no transcript available for this video")
	}
	switch kind {
	case ArtifactTranscript:
		return transcript, false, nil
	case ArtifactSummary:
		if cached != "" {
			return cached, false, nil
		}
		content, err = w.gen.Summarize(ctx, transcript)
	case ArtifactNotes:
		if cached != "" {
			return cached, false, nil
		}
		content, err = w.gen.DetailedNotes(ctx, transcript)
	default:
		return "", false, engine.Errorf(engine.ErrValidation, "unknown artifact %q", kind)
	}
	if err != nil {
		return "", false, coerce(err, engine.ErrGeneration, "failed to generate "+string(kind))
	}
	return content, true, nil
}

// Translate renders content in the target language, preserving any markup.
func (w *Workflow) Translate(ctx context.Context, content, language string) (string, error) {
	if content == "" {
		return "", engine.Errorf(engine.ErrNoContent, "no content available to translate")
	}
	if strings.TrimSpace(language) == "" {
		return "", engine.Errorf(engine.ErrValidation, "target language is required")
	}
	out, err := w.gen.Translate(ctx, content, language)
	if err != nil {
		return "", coerce(err, engine.ErrGeneration, "failed to translate content")
	}
	return out, nil
}

// TranslatePoints translates each point concurrently, preserving order.
// Any single failure fails the whole batch.
func (w *Workflow) TranslatePoints(ctx context.Context, points []string, language string) ([]string, error) {
	if len(points) == 0 {
		return nil, engine.Errorf(engine.ErrNoContent, "no key points available to translate")
	}
	out := make([]string, len(points))
	errs := make(chan error, len(points))
	for i, p := range points {
		go func(i int, p string) {
			text, err := w.gen.Translate(ctx, p, language)
			out[i] = text
			errs <- err
		}(i, p)
	}
	for range points {
		if err := <-errs; err != nil {
			return nil, coerce(err, engine.ErrGeneration, "failed to translate key points")
		}
	}
	return out, nil
}

// AnalyzeVideo extracts six key points for a video, serving repeats from the
// session cache. On a miss it fetches the transcript for the canonical watch
// URL and runs key-point generation; only a fully successful analysis is
// cached. Concurrent calls for the same id are resolved by request token,
// so a stale slow response never overwrites a newer one.
func (w *Workflow) AnalyzeVideo(ctx context.Context, videoURL, title string) (VideoAnalysis, error) {
	id, err := engine.ExtractVideoID(videoURL)
	if err != nil {
		return VideoAnalysis{}, err
	}

	if va, ok := w.cache.Get(id); ok {
		engine.IncrAnalysisCacheHit()
		return va, nil
	}
	engine.IncrAnalysisCacheMiss()
	token := w.cache.Begin(id)

	transcript, err := w.source.Fetch(ctx, engine.WatchURL(id))
	if err != nil {
		return VideoAnalysis{}, engine.Wrap(engine.ErrAnalysis, err, "failed to analyze video")
	}
	points, err := w.gen.KeyPoints(ctx, transcript, engine.KeyPointCount)
	if err != nil {
		return VideoAnalysis{}, engine.Wrap(engine.ErrAnalysis, err, "failed to analyze video")
	}

	va := VideoAnalysis{VideoID: id, Title: title, Points: points}
	w.cache.Commit(id, token, va)
	return va, nil
}

// GenerateContent produces new content from a saved record's material and a
// user instruction. Notes are preferred as source material, then the
// summary, then the joined key points.
func (w *Workflow) GenerateContent(ctx context.Context, rec store.Record, userPrompt string) (string, error) {
	if strings.TrimSpace(userPrompt) == "" {
		return "", engine.Errorf(engine.ErrValidation, "a prompt is required")
	}
	source := rec.Notes
	if source == "" {
		source = rec.Summary
	}
	if source == "" && len(rec.Points) > 0 {
		source = strings.Join(rec.Points, "\n\n")
	}
	if source == "" {
		return "", engine.Errorf(engine.ErrNoContent, "no notes or summary available for the selected video")
	}
	out, err := w.gen.GenerateFromNotes(ctx, source, userPrompt)
	if err != nil {
		return "", coerce(err, engine.ErrGeneration, "failed to generate content")
	}
	return out, nil
}

// coerce keeps an already typed error as is and wraps anything else with
// the given code.
func coerce(err error, code engine.ErrorCode, msg string) error {
	if engine.CodeOf(err) != engine.ErrInternal {
		return err
	}
	return engine.Wrap(code, err, msg)
}
