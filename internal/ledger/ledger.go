// Package ledger keeps the durable record of submitted applications, keyed by
// listing URL, and answers the gatekeeping questions: has this URL been
// applied to, and is today's quota exhausted. Entries are written exactly once
// per URL, after a confirmed submission, and never updated or deleted.
package ledger

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure Go SQLite driver
)

//go:embed schema.sql
var schema string

// Entry is one successfully submitted application.
type Entry struct {
	URL             string    `db:"url"`
	Title           string    `db:"title"`
	Company         string    `db:"company"`
	Location        string    `db:"location"`
	Score           float64   `db:"score"`
	AppliedAt       time.Time `db:"applied_at"`
	ResumeUsed      string    `db:"resume_used"`
	CoverLetterUsed string    `db:"cover_letter_used"`
}

type Ledger struct {
	db        *sqlx.DB
	maxPerDay int

	// now is swapped in tests to probe the midnight boundary
	now func() time.Time
}

// Open opens (creating if needed) the ledger database at path. The store is
// owned by a single writer per run; concurrent runs must be serialized by the
// caller.
func Open(ctx context.Context, path string, maxPerDay int) (*Ledger, error) {
	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc", path)

	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open ledger database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("execute %s: %w", pragma, err)
		}
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init ledger schema: %w", err)
	}

	return &Ledger{db: db, maxPerDay: maxPerDay, now: time.Now}, nil
}

func (l *Ledger) Close() error {
	return l.db.Close()
}

// HasApplied reports whether an entry exists for the URL.
func (l *Ledger) HasApplied(ctx context.Context, url string) (bool, error) {
	var count int
	err := l.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM applications WHERE url = ?", url)
	if err != nil {
		return false, fmt.Errorf("check applied: %w", err)
	}
	return count > 0, nil
}

// ApplicationsToday counts entries applied within the current local calendar
// day [00:00, 24:00).
func (l *Ledger) ApplicationsToday(ctx context.Context) (int, error) {
	now := l.now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.Add(24 * time.Hour)

	var count int
	err := l.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM applications WHERE applied_at >= ? AND applied_at < ?",
		start.UTC(), end.UTC())
	if err != nil {
		return 0, fmt.Errorf("count today's applications: %w", err)
	}
	return count, nil
}

// CanApply reports whether the URL is eligible: not already applied to and
// under the daily quota. The answer must be re-checked before every
// submission attempt since the quota is consumed within a run.
func (l *Ledger) CanApply(ctx context.Context, url string) (bool, error) {
	applied, err := l.HasApplied(ctx, url)
	if err != nil {
		return false, err
	}
	if applied {
		return false, nil
	}

	today, err := l.ApplicationsToday(ctx)
	if err != nil {
		return false, err
	}

	return today < l.maxPerDay, nil
}

// Record commits a new entry. The caller must have checked CanApply; a
// duplicate URL fails on the primary key.
func (l *Ledger) Record(ctx context.Context, entry *Entry) error {
	if entry.AppliedAt.IsZero() {
		entry.AppliedAt = l.now()
	}
	// stored in UTC so range comparisons are not offset-sensitive
	entry.AppliedAt = entry.AppliedAt.UTC()

	_, err := l.db.NamedExecContext(ctx, `
		INSERT INTO applications (url, title, company, location, score, applied_at, resume_used, cover_letter_used)
		VALUES (:url, :title, :company, :location, :score, :applied_at, :resume_used, :cover_letter_used)`,
		entry)
	if err != nil {
		return fmt.Errorf("record application for %s: %w", entry.URL, err)
	}
	return nil
}

// Total returns the all-time number of recorded applications.
func (l *Ledger) Total(ctx context.Context) (int, error) {
	var count int
	if err := l.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM applications"); err != nil {
		return 0, fmt.Errorf("count applications: %w", err)
	}
	return count, nil
}

// Recent returns up to limit entries, newest first.
func (l *Ledger) Recent(ctx context.Context, limit int) ([]Entry, error) {
	var entries []Entry
	err := l.db.SelectContext(ctx, &entries,
		"SELECT * FROM applications ORDER BY applied_at DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("list recent applications: %w", err)
	}
	return entries, nil
}

// AppliedURLs returns every URL present in the ledger.
func (l *Ledger) AppliedURLs(ctx context.Context) ([]string, error) {
	var urls []string
	if err := l.db.SelectContext(ctx, &urls, "SELECT url FROM applications"); err != nil {
		return nil, fmt.Errorf("list applied urls: %w", err)
	}
	return urls, nil
}

// MaxPerDay returns the configured daily application quota.
func (l *Ledger) MaxPerDay() int {
	return l.maxPerDay
}
