package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"tubenotes/internal/engine"
)

// SQLiteStore keeps saved videos in a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the collection database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("store: mkdir %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite: single writer
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: init schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS saved_videos (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL,
		video_id   TEXT NOT NULL,
		title      TEXT NOT NULL,
		points     TEXT,
		language   TEXT,
		thumbnail  TEXT,
		link       TEXT,
		saved_at   TEXT NOT NULL,
		type       TEXT NOT NULL,
		transcript TEXT,
		summary    TEXT,
		notes      TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_saved_videos_user ON saved_videos(user_id)`)
	return err
}

// Save persists a record and returns the assigned ULID.
func (s *SQLiteStore) Save(ctx context.Context, userID string, rec Record) (string, error) {
	if userID == "" {
		return "", engine.Errorf(engine.ErrAuthRequired, "user id is required")
	}
	if !rec.HasContent() {
		return "", engine.Errorf(engine.ErrValidation, "record has no content to save")
	}
	if !ValidType(rec.Type) {
		return "", engine.Errorf(engine.ErrValidation, "invalid record type %q", rec.Type)
	}

	points, err := json.Marshal(rec.Points)
	if err != nil {
		return "", fmt.Errorf("store: marshal points: %w", err)
	}

	id := newRecordID()
	savedAt := time.Now().UTC()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO saved_videos (id, user_id, video_id, title, points, language, thumbnail, link, saved_at, type, transcript, summary, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, userID, rec.VideoID, rec.Title, string(points), rec.Language,
		rec.Thumbnail, rec.Link, savedAt.Format(time.RFC3339), string(rec.Type),
		rec.Transcript, rec.Summary, rec.Notes,
	)
	if err != nil {
		return "", engine.Wrap(engine.ErrSave, err, "failed to save record")
	}
	engine.IncrCollectionSaves()
	return id, nil
}

// List returns the user's records, sorted in memory after the user filter.
func (s *SQLiteStore) List(ctx context.Context, userID, sortBy, order string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, video_id, title, points, language, thumbnail, link, saved_at, type, transcript, summary, notes
		 FROM saved_videos WHERE user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("store: query: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		var rec Record
		var points, savedAt, typ string
		var language, thumbnail, link, transcript, summary, notes sql.NullString
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.VideoID, &rec.Title, &points,
			&language, &thumbnail, &link, &savedAt, &typ, &transcript, &summary, &notes); err != nil {
			return nil, fmt.Errorf("store: scan: %w", err)
		}
		if points != "" {
			if err := json.Unmarshal([]byte(points), &rec.Points); err != nil {
				rec.Points = nil
			}
		}
		rec.Language = language.String
		rec.Thumbnail = thumbnail.String
		rec.Link = link.String
		rec.Transcript = transcript.String
		rec.Summary = summary.String
		rec.Notes = notes.String
		rec.Type = RecordType(typ)
		rec.SavedAt, _ = time.Parse(time.RFC3339, savedAt)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: rows: %w", err)
	}

	sortRecords(records, sortBy, order)
	return records, nil
}

// Delete removes a record by id.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM saved_videos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return engine.Errorf(engine.ErrNotFound, "record not found: %s", id)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }
