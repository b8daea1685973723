package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tubenotes/internal/engine"
	"tubenotes/internal/store"
)

func TestSaveCompositeRequiresUser(t *testing.T) {
	src := &fakeSource{}
	gen := &fakeGen{}
	col := &fakeCollections{}
	w := newTestWorkflow(src, gen, col)

	_, err := w.SaveComposite(context.Background(), "", Draft{
		VideoURL: watchURL,
		Title:    "A Video",
		Type:     store.TypeSummary,
		Summary:  "a summary",
	})
	require.Error(t, err)
	assert.True(t, engine.IsCode(err, engine.ErrAuthRequired))
	assert.Equal(t, 0, src.calls)
	assert.Equal(t, 0, gen.summarizeCalls)
	assert.Empty(t, col.saves)
}

func TestSaveCompositeReusesExistingMaterial(t *testing.T) {
	src := &fakeSource{}
	gen := &fakeGen{}
	col := &fakeCollections{}
	w := newTestWorkflow(src, gen, col)

	res, err := w.SaveComposite(context.Background(), "user-1", Draft{
		VideoURL:   watchURL,
		Title:      "A Video",
		Type:       store.TypeNotes,
		Transcript: "raw transcript",
		Summary:    "a summary",
		Notes:      "<h2>Notes</h2>",
	})
	require.NoError(t, err)
	assert.Equal(t, "rec-1", res.ID)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, 0, src.calls)
	assert.Equal(t, 0, gen.summarizeCalls)
	assert.Equal(t, 0, gen.notesCalls)

	require.Len(t, col.saves, 1)
	rec := col.saves[0].rec
	assert.Equal(t, "user-1", col.saves[0].userID)
	assert.Equal(t, "abc123", rec.VideoID)
	assert.Equal(t, engine.ThumbnailURL("abc123"), rec.Thumbnail)
	assert.Equal(t, "raw transcript", rec.Transcript)
}

func TestSaveCompositeEnrichesMissingTranscript(t *testing.T) {
	src := &fakeSource{transcript: "fetched transcript"}
	gen := &fakeGen{}
	col := &fakeCollections{}
	w := newTestWorkflow(src, gen, col)

	res, err := w.SaveComposite(context.Background(), "user-1", Draft{
		VideoURL: watchURL,
		Title:    "A Video",
		Type:     store.TypeTranscript,
	})
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, 1, src.calls)
	assert.Equal(t, 1, gen.summarizeCalls)
	assert.Equal(t, 1, gen.notesCalls)

	rec := col.saves[0].rec
	assert.Equal(t, "fetched transcript", rec.Transcript)
	assert.Equal(t, "summary of fetched transcript", rec.Summary)
	assert.Equal(t, "<h2>Notes</h2>", rec.Notes)
}

func TestSaveCompositeEnrichesOnlyMissingArtifacts(t *testing.T) {
	src := &fakeSource{transcript: "fetched transcript"}
	gen := &fakeGen{}
	col := &fakeCollections{}
	w := newTestWorkflow(src, gen, col)

	_, err := w.SaveComposite(context.Background(), "user-1", Draft{
		VideoURL: watchURL,
		Title:    "A Video",
		Type:     store.TypeSummary,
		Summary:  "a summary I already had",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, gen.summarizeCalls)
	assert.Equal(t, 1, gen.notesCalls)
	assert.Equal(t, "a summary I already had", col.saves[0].rec.Summary)
}

func TestSaveCompositeSavesDespiteEnrichmentFailure(t *testing.T) {
	src := &fakeSource{err: engine.Errorf(engine.ErrTranscript, "no transcript found for this video")}
	gen := &fakeGen{}
	col := &fakeCollections{}
	w := newTestWorkflow(src, gen, col)

	res, err := w.SaveComposite(context.Background(), "user-1", Draft{
		VideoURL: watchURL,
		Title:    "A Video",
		Type:     store.TypeAnalysis,
		Points:   []string{"p1", "p2", "p3", "p4", "p5", "p6"},
	})
	require.NoError(t, err)
	assert.Equal(t, "rec-1", res.ID)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "transcript unavailable")
	assert.Equal(t, 0, gen.summarizeCalls)
	assert.Equal(t, 0, gen.notesCalls)
	require.Len(t, col.saves, 1)
}

func TestSaveCompositeCollectsGenerationWarnings(t *testing.T) {
	src := &fakeSource{transcript: "fetched transcript"}
	gen := &fakeGen{notesErr: errors.New("model overloaded")}
	col := &fakeCollections{}
	w := newTestWorkflow(src, gen, col)

	res, err := w.SaveComposite(context.Background(), "user-1", Draft{
		VideoURL: watchURL,
		Title:    "A Video",
		Type:     store.TypeTranscript,
	})
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "notes unavailable")

	rec := col.saves[0].rec
	assert.Equal(t, "fetched transcript", rec.Transcript)
	assert.Equal(t, "summary of fetched transcript", rec.Summary)
	assert.Empty(t, rec.Notes)
}

func TestSaveCompositeRejectsEmptyDraft(t *testing.T) {
	col := &fakeCollections{}
	w := newTestWorkflow(&fakeSource{err: errors.New("offline")}, nil, col)

	_, err := w.SaveComposite(context.Background(), "user-1", Draft{
		VideoURL: watchURL,
		Title:    "A Video",
		Type:     store.TypeSummary,
	})
	require.Error(t, err)
	assert.True(t, engine.IsCode(err, engine.ErrValidation))
	assert.Empty(t, col.saves)
}

func TestSaveCompositeUnknownVideoID(t *testing.T) {
	col := &fakeCollections{}
	w := newTestWorkflow(nil, nil, col)

	_, err := w.SaveComposite(context.Background(), "user-1", Draft{
		Title: "Pasted Text",
		Type:  store.TypeNotes,
		Notes: "<h2>Notes</h2>",
	})
	require.NoError(t, err)

	rec := col.saves[0].rec
	assert.Equal(t, "unknown", rec.VideoID)
	assert.Empty(t, rec.Thumbnail)
	assert.Empty(t, rec.Link)
}

func TestSaveCompositeStoreFailure(t *testing.T) {
	col := &fakeCollections{err: errors.New("disk full")}
	w := newTestWorkflow(nil, nil, col)

	_, err := w.SaveComposite(context.Background(), "user-1", Draft{
		VideoURL:   watchURL,
		Title:      "A Video",
		Type:       store.TypeTranscript,
		Transcript: "raw transcript",
	})
	require.Error(t, err)
	assert.True(t, engine.IsCode(err, engine.ErrSave))
}
