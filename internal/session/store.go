package session

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; existing databases must be cleared after a bump.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the
// expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// ErrRankTaken indicates the session already has a placement at that rank.
var ErrRankTaken = errors.New("rank already placed")

// Record is one stored game session.
type Record struct {
	ID        string
	Topic     string
	StartedAt time.Time
}

// Placement is one ranked slot within a session.
type Placement struct {
	SessionID string
	Rank      int
	Label     string
	ImageURL  string
	PlacedAt  time.Time
}

// Store persists game sessions and their board placements in SQLite so an
// interrupted game can be resumed.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the session database.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("session database path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure session directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	err = s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to reset)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	return tx.Commit()
}

// NewSession creates a session for the named topic and returns its record.
func (s *Store) NewSession(ctx context.Context, topic string) (*Record, error) {
	if topic == "" {
		return nil, errors.New("topic must not be empty")
	}
	record := &Record{
		ID:        uuid.NewString(),
		Topic:     topic,
		StartedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO sessions (id, topic, started_at) VALUES (?, ?, ?)",
		record.ID, record.Topic, record.StartedAt.Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	return record, nil
}

// Place records a label at a rank slot within a session.
func (s *Store) Place(ctx context.Context, sessionID string, rank int, label, imageURL string) error {
	if rank < 1 || rank > 5 {
		return fmt.Errorf("rank %d out of range 1..5", rank)
	}
	if label == "" {
		return errors.New("label must not be empty")
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO placements (session_id, rank, label, image_url, placed_at) VALUES (?, ?, ?, ?, ?)",
		sessionID, rank, label, imageURL, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: session %s rank %d", ErrRankTaken, sessionID, rank)
		}
		return fmt.Errorf("insert placement: %w", err)
	}
	return nil
}

// Placements returns a session's placements ordered by rank.
func (s *Store) Placements(ctx context.Context, sessionID string) ([]Placement, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT session_id, rank, label, image_url, placed_at FROM placements WHERE session_id = ? ORDER BY rank",
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("query placements: %w", err)
	}
	defer rows.Close()

	var placements []Placement
	for rows.Next() {
		var p Placement
		var placedAt string
		if err := rows.Scan(&p.SessionID, &p.Rank, &p.Label, &p.ImageURL, &placedAt); err != nil {
			return nil, fmt.Errorf("scan placement: %w", err)
		}
		p.PlacedAt, _ = time.Parse(time.RFC3339Nano, placedAt)
		placements = append(placements, p)
	}
	return placements, rows.Err()
}

// Sessions returns all stored sessions, newest first.
func (s *Store) Sessions(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, topic, started_at FROM sessions ORDER BY started_at DESC")
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var record Record
		var startedAt string
		if err := rows.Scan(&record.ID, &record.Topic, &startedAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		record.StartedAt, _ = time.Parse(time.RFC3339Nano, startedAt)
		records = append(records, record)
	}
	return records, rows.Err()
}

// ClearSession removes a session and its placements.
func (s *Store) ClearSession(ctx context.Context, sessionID string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "constraint failed")
}
