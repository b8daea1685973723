package workflow

import (
	"context"
	"errors"
	"strings"

	"tubenotes/internal/engine"
	"tubenotes/internal/store"
)

// Draft is the material a caller already has in hand when saving. Fields
// left empty are filled in by best-effort enrichment where possible.
type Draft struct {
	VideoURL   string           `json:"videoUrl"`
	Title      string           `json:"title"`
	Points     []string         `json:"points,omitempty"`
	Language   string           `json:"language,omitempty"`
	Thumbnail  string           `json:"thumbnail,omitempty"`
	Type       store.RecordType `json:"type"`
	Transcript string           `json:"transcript,omitempty"`
	Summary    string           `json:"summary,omitempty"`
	Notes      string           `json:"notes,omitempty"`
}

// SaveResult reports the persisted record id plus any enrichment steps that
// failed without blocking the save.
type SaveResult struct {
	ID       string   `json:"id"`
	Warnings []string `json:"warnings,omitempty"`
}

// SaveComposite persists whatever the caller has, enriching it first when
// the transcript is missing. Material already in the draft is reused as is
// and never refetched. Enrichment failures are collected as warnings; only
// the final persist call can fail the save.
func (w *Workflow) SaveComposite(ctx context.Context, userID string, d Draft) (SaveResult, error) {
	var res SaveResult
	if userID == "" {
		return res, engine.Errorf(engine.ErrAuthRequired, "please sign in to save to your collection")
	}

	videoID, err := engine.ExtractVideoID(d.VideoURL)
	if err != nil {
		videoID = "unknown"
	}

	rec := store.Record{
		VideoID:    videoID,
		Title:      d.Title,
		Points:     d.Points,
		Language:   d.Language,
		Thumbnail:  d.Thumbnail,
		Link:       d.VideoURL,
		Type:       d.Type,
		Transcript: d.Transcript,
		Summary:    d.Summary,
		Notes:      d.Notes,
	}
	if rec.Title == "" {
		rec.Title = "Untitled video"
	}
	if rec.Thumbnail == "" {
		rec.Thumbnail = engine.ThumbnailURL(videoID)
	}
	if rec.Link == "" && videoID != "unknown" {
		rec.Link = engine.WatchURL(videoID)
	}

	if rec.Transcript == "" && d.VideoURL != "" {
		res.Warnings = w.enrich(ctx, &rec, d.VideoURL)
	}

	// Analysis saves carry no points of their own only when the caller
	// passed none; derive them from the notes so the collection card has
	// something to show.
	if rec.Type == store.TypeAnalysis && len(rec.Points) == 0 && rec.Notes != "" {
		rec.Points = engine.ContentToPoints(rec.Notes)
	}

	if !rec.HasContent() {
		return res, engine.Errorf(engine.ErrValidation, "nothing to save for this video")
	}

	id, err := w.collections.Save(ctx, userID, rec)
	if err != nil {
		return res, coerce(err, engine.ErrSave, "failed to save to collection")
	}
	res.ID = id
	return res, nil
}

// enrich fetches the missing transcript and then generates whichever of
// summary and notes are absent, in parallel. Every failure becomes a
// warning; the record keeps whatever succeeded.
func (w *Workflow) enrich(ctx context.Context, rec *store.Record, videoURL string) []string {
	var warnings []string

	transcript, err := w.source.Fetch(ctx, videoURL)
	if err != nil {
		return append(warnings, "transcript unavailable: "+errMessage(err))
	}
	rec.Transcript = transcript

	type generated struct {
		kind string
		text string
		err  error
	}
	ch := make(chan generated, 2)
	pending := 0
	if rec.Summary == "" {
		pending++
		go func() {
			text, err := w.gen.Summarize(ctx, transcript)
			ch <- generated{"summary", text, err}
		}()
	}
	if rec.Notes == "" {
		pending++
		go func() {
			text, err := w.gen.DetailedNotes(ctx, transcript)
			ch <- generated{"notes", text, err}
		}()
	}
	for i := 0; i < pending; i++ {
		g := <-ch
		if g.err != nil {
			warnings = append(warnings, g.kind+" unavailable: "+errMessage(g.err))
			continue
		}
		if g.kind == "summary" {
			rec.Summary = g.text
		} else {
			rec.Notes = g.text
		}
	}
	return warnings
}

// errMessage prefers the typed message over the full wrapped chain.
func errMessage(err error) string {
	var e *engine.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return strings.TrimSpace(err.Error())
}
