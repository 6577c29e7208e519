// Package store keeps a SQLite lookup index of an extracted report, so a
// portal can fetch one student by identifiers without loading the JSON file.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ukaji3/gradex-go/pkg/gradex/models"
)

// ErrNotFound indicates no record matches the requested identifiers.
var ErrNotFound = errors.New("record not found")

// Index is a SQLite database of student records keyed by composite key.
type Index struct {
	db *sql.DB
}

// Run describes one Save into the index.
type Run struct {
	ID        string
	Source    string
	CreatedAt time.Time
	Records   int
}

// Open opens or creates the index at path.
func Open(path string) (*Index, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating index directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	idx := &Index{db: db}
	if err := idx.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return idx, nil
}

// Close releases the database connection.
func (i *Index) Close() error {
	return i.db.Close()
}

func (i *Index) createSchema() error {
	_, err := i.db.Exec(`
CREATE TABLE IF NOT EXISTS students (
	key         TEXT PRIMARY KEY,
	student_id  TEXT NOT NULL,
	national_id TEXT NOT NULL,
	sheet       TEXT NOT NULL DEFAULT '',
	record_json TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_students_ids ON students(student_id, national_id);
CREATE TABLE IF NOT EXISTS runs (
	run_id     TEXT PRIMARY KEY,
	source     TEXT NOT NULL,
	created_at TEXT NOT NULL,
	records    INTEGER NOT NULL
);`)
	return err
}

// Save replaces the indexed records with the contents of report and records the run.
func (i *Index) Save(ctx context.Context, run Run, report *models.Report) error {
	tx, err := i.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM students`); err != nil {
		return fmt.Errorf("clearing students: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO students (key, student_id, national_id, sheet, record_json) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, key := range report.Keys() {
		e, _ := report.Entry(key)
		data, err := json.Marshal(e.Record)
		if err != nil {
			return fmt.Errorf("encoding record %s: %w", key, err)
		}
		if _, err := stmt.ExecContext(ctx, key, e.StudentID, e.NationalID, e.Sheet, string(data)); err != nil {
			return fmt.Errorf("inserting record %s: %w", key, err)
		}
	}

	created := run.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO runs (run_id, source, created_at, records) VALUES (?, ?, ?, ?)`,
		run.ID, run.Source, created.UTC().Format(time.RFC3339), report.Len()); err != nil {
		return fmt.Errorf("recording run: %w", err)
	}

	return tx.Commit()
}

// Lookup returns the record for the given identifiers.
func (i *Index) Lookup(ctx context.Context, studentID, nationalID string) (models.Entry, error) {
	e := models.Entry{StudentID: studentID, NationalID: nationalID}

	var data string
	err := i.db.QueryRowContext(ctx,
		`SELECT sheet, record_json FROM students WHERE key = ?`, e.Key()).Scan(&e.Sheet, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Entry{}, fmt.Errorf("%w: %s", ErrNotFound, e.Key())
	}
	if err != nil {
		return models.Entry{}, fmt.Errorf("querying record: %w", err)
	}

	if err := json.Unmarshal([]byte(data), &e.Record); err != nil {
		return models.Entry{}, fmt.Errorf("decoding record %s: %w", e.Key(), err)
	}
	return e, nil
}

// Count returns the number of indexed records.
func (i *Index) Count(ctx context.Context) (int, error) {
	var n int
	if err := i.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM students`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// LastRun returns the most recent Save.
func (i *Index) LastRun(ctx context.Context) (Run, error) {
	var r Run
	var created string
	err := i.db.QueryRowContext(ctx,
		`SELECT run_id, source, created_at, records FROM runs ORDER BY created_at DESC, rowid DESC LIMIT 1`).
		Scan(&r.ID, &r.Source, &created, &r.Records)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrNotFound
	}
	if err != nil {
		return Run{}, err
	}
	r.CreatedAt, err = time.Parse(time.RFC3339, created)
	if err != nil {
		return Run{}, fmt.Errorf("parsing run time: %w", err)
	}
	return r, nil
}
