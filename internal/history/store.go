// Package history keeps an audit log of completed evaluations in SQLite.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/f3rmion/smt/internal/pipeline"
	"github.com/f3rmion/smt/internal/render"
)

const schema = `
CREATE TABLE IF NOT EXISTS evaluations (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at       TEXT    NOT NULL,
	source_lang      TEXT    NOT NULL,
	target_lang      TEXT    NOT NULL,
	source_text      TEXT    NOT NULL,
	candidate        TEXT    NOT NULL,
	refs             TEXT    NOT NULL,
	bleu_score       REAL    NOT NULL,
	brevity_penalty  REAL    NOT NULL,
	quality          TEXT    NOT NULL
)`

// Entry is one recorded evaluation.
type Entry struct {
	ID             int64
	CreatedAt      time.Time
	SourceLang     string
	TargetLang     string
	SourceText     string
	Candidate      string
	References     []string
	BLEUScore      float64
	BrevityPenalty float64
	Quality        string
}

// Store is a SQLite-backed evaluation history.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the history database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// A single connection serializes writes from the TUI and batch runs.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts e. A zero CreatedAt is set to the current time.
func (s *Store) Record(ctx context.Context, e Entry) (int64, error) {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now()
	}
	if e.Quality == "" {
		e.Quality = render.Classify(e.BLEUScore).Label
	}

	refs, err := json.Marshal(e.References)
	if err != nil {
		return 0, fmt.Errorf("marshaling references: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO evaluations
			(created_at, source_lang, target_lang, source_text, candidate, refs, bleu_score, brevity_penalty, quality)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.CreatedAt.UTC().Format(time.RFC3339Nano), e.SourceLang, e.TargetLang, e.SourceText,
		e.Candidate, string(refs), e.BLEUScore, e.BrevityPenalty, e.Quality,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting evaluation: %w", err)
	}
	return res.LastInsertId()
}

// RecordEvaluation stores a completed pipeline evaluation.
func (s *Store) RecordEvaluation(rec pipeline.EvaluationRecord) error {
	_, err := s.Record(context.Background(), FromRecord(rec))
	return err
}

// FromRecord converts a pipeline record to an entry.
func FromRecord(rec pipeline.EvaluationRecord) Entry {
	return Entry{
		SourceLang:     rec.Source.SourceLang,
		TargetLang:     rec.Source.TargetLang,
		SourceText:     rec.Source.SourceText,
		Candidate:      rec.Request.Candidate,
		References:     rec.Request.References,
		BLEUScore:      rec.Result.BLEUScore,
		BrevityPenalty: rec.Result.BrevityPenalty,
	}
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, source_lang, target_lang, source_text, candidate, refs, bleu_score, brevity_penalty, quality
		FROM evaluations
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying evaluations: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e         Entry
			createdAt string
			refs      string
		)
		if err := rows.Scan(&e.ID, &createdAt, &e.SourceLang, &e.TargetLang, &e.SourceText,
			&e.Candidate, &refs, &e.BLEUScore, &e.BrevityPenalty, &e.Quality); err != nil {
			return nil, fmt.Errorf("scanning evaluation: %w", err)
		}
		if e.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("parsing created_at %q: %w", createdAt, err)
		}
		if err := json.Unmarshal([]byte(refs), &e.References); err != nil {
			return nil, fmt.Errorf("parsing references: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
