// Package store persists composite video records — a video's metadata plus
// whichever derived artifacts were available at save time — per user.
package store

import (
	"context"
	"crypto/rand"
	"sort"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// RecordType identifies what kind of content a saved record was built from.
type RecordType string

const (
	TypeTranscript RecordType = "transcript"
	TypeSummary    RecordType = "summary"
	TypeNotes      RecordType = "notes"
	TypeSearch     RecordType = "search"
	TypeAnalysis   RecordType = "analysis"
)

// ValidType reports whether t is a known record type.
func ValidType(t RecordType) bool {
	switch t {
	case TypeTranscript, TypeSummary, TypeNotes, TypeSearch, TypeAnalysis:
		return true
	}
	return false
}

// Record is the unit persisted to the collection. ID and SavedAt are
// assigned on persist; the rest is an immutable payload built by the
// workflow at save time.
type Record struct {
	ID         string     `json:"id,omitempty"`
	UserID     string     `json:"userId,omitempty"`
	VideoID    string     `json:"videoId"`
	Title      string     `json:"title"`
	Points     []string   `json:"points,omitempty"`
	Language   string     `json:"language,omitempty"`
	Thumbnail  string     `json:"thumbnail,omitempty"`
	Link       string     `json:"link,omitempty"`
	SavedAt    time.Time  `json:"savedAt,omitempty"`
	Type       RecordType `json:"type"`
	Transcript string     `json:"transcript,omitempty"`
	Summary    string     `json:"summary,omitempty"`
	Notes      string     `json:"notes,omitempty"`
}

// HasContent reports whether at least one content field is populated.
// Records without any content are rejected on save.
func (r Record) HasContent() bool {
	return len(r.Points) > 0 || r.Transcript != "" || r.Summary != "" || r.Notes != ""
}

// Sort fields and orders accepted by List.
const (
	SortBySavedAt = "savedAt"
	SortByTitle   = "title"
	OrderAsc      = "asc"
	OrderDesc     = "desc"
)

// Store persists and retrieves a user's saved video records.
type Store interface {
	// Save persists a record for a user and returns the assigned id.
	Save(ctx context.Context, userID string, rec Record) (string, error)
	// List returns the user's records sorted by savedAt or title.
	List(ctx context.Context, userID, sortBy, order string) ([]Record, error)
	// Delete removes a record by id.
	Delete(ctx context.Context, id string) error
	Close() error
}

// newRecordID mints a ULID for a saved record.
func newRecordID() string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// sortRecords orders records in memory, mirroring the sort the client
// applies: by title (case-insensitive) or by save date.
func sortRecords(recs []Record, sortBy, order string) {
	asc := order == OrderAsc
	sort.SliceStable(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if !asc {
			a, b = b, a
		}
		if sortBy == SortByTitle {
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		}
		return a.SavedAt.Before(b.SavedAt)
	})
}
