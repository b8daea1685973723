package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"tubenotes/internal/engine"
)

// PostgresStore keeps saved videos in PostgreSQL. Selected when a
// DATABASE_URL is configured; otherwise the SQLite store is used.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects to the database and ensures the schema.
func OpenPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("store: parse database url: %w", err)
	}
	config.MaxConns = 4

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("store: connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}

	_, err = pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS saved_videos (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL,
		video_id   TEXT NOT NULL,
		title      TEXT NOT NULL,
		points     JSONB,
		language   TEXT,
		thumbnail  TEXT,
		link       TEXT,
		saved_at   TIMESTAMPTZ NOT NULL,
		type       TEXT NOT NULL,
		transcript TEXT,
		summary    TEXT,
		notes      TEXT
	)`)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("store: init schema: %w", err)
	}
	_, err = pool.Exec(ctx, `CREATE INDEX IF NOT EXISTS idx_saved_videos_user ON saved_videos(user_id)`)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("store: init index: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Save persists a record and returns the assigned ULID.
func (s *PostgresStore) Save(ctx context.Context, userID string, rec Record) (string, error) {
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
	_, err = s.pool.Exec(ctx,
		`INSERT INTO saved_videos (id, user_id, video_id, title, points, language, thumbnail, link, saved_at, type, transcript, summary, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		id, userID, rec.VideoID, rec.Title, points, rec.Language,
		rec.Thumbnail, rec.Link, time.Now().UTC(), string(rec.Type),
		rec.Transcript, rec.Summary, rec.Notes,
	)
	if err != nil {
		return "", engine.Wrap(engine.ErrSave, err, "failed to save record")
	}
	engine.IncrCollectionSaves()
	return id, nil
}

// List returns the user's records, sorted in memory after the user filter.
func (s *PostgresStore) List(ctx context.Context, userID, sortBy, order string) ([]Record, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, video_id, title, points, coalesce(language,''), coalesce(thumbnail,''),
		        coalesce(link,''), saved_at, type, coalesce(transcript,''), coalesce(summary,''), coalesce(notes,'')
		 FROM saved_videos WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("store: query: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		var rec Record
		var points []byte
		var typ string
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.VideoID, &rec.Title, &points,
			&rec.Language, &rec.Thumbnail, &rec.Link, &rec.SavedAt, &typ,
			&rec.Transcript, &rec.Summary, &rec.Notes); err != nil {
			return nil, fmt.Errorf("store: scan: %w", err)
		}
		if len(points) > 0 {
			if err := json.Unmarshal(points, &rec.Points); err != nil {
				rec.Points = nil
			}
		}
		rec.Type = RecordType(typ)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: rows: %w", err)
	}

	sortRecords(records, sortBy, order)
	return records, nil
}

// Delete removes a record by id.
func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM saved_videos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("store: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return engine.Errorf(engine.ErrNotFound, "record not found: %s", id)
	}
	return nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
