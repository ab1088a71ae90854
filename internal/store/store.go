// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists finished research reports in SQLite, keyed by
// the company and industry pair. The research engine consults the store
// before running the pipeline, so a fresh report is served without
// spending another round of search and generation calls.
// Implements: prd004-report-store (R1-R4);
//
//	docs/ARCHITECTURE.md § Report Store.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/prospect-engine/pkg/types"
)

const dbFile = "reports.db"

// DefaultFreshness bounds how old a stored report may be before Get
// treats it as a miss (R2.1).
const DefaultFreshness = 24 * time.Hour

// Store manages the report SQLite database.
type Store struct {
	db        *sql.DB
	freshness time.Duration
}

// New opens or creates the report database at cfg.DataDir/reports.db.
// It creates the data directory and schema if they do not exist
// (R1.1, R1.2).
func New(cfg types.ReportConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	freshness := cfg.Freshness
	if freshness <= 0 {
		freshness = DefaultFreshness
	}

	s := &Store{db: db, freshness: freshness}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS reports (
			company TEXT NOT NULL,
			industry TEXT NOT NULL,
			payload TEXT NOT NULL,
			errors INTEGER NOT NULL DEFAULT 0,
			generated_at TEXT NOT NULL,
			PRIMARY KEY (company, industry)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_reports_generated_at ON reports(generated_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	return nil
}

// Put stores a report, replacing any earlier report for the same
// company and industry pair (R3.1). The pair match is exact; callers
// trim their inputs before researching.
func (s *Store) Put(ctx context.Context, rec types.Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO reports (company, industry, payload, errors, generated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(company, industry) DO UPDATE SET
			payload=excluded.payload, errors=excluded.errors,
			generated_at=excluded.generated_at`,
		rec.Company, rec.Industry, string(payload), len(rec.Errors),
		rec.GeneratedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("storing report: %w", err)
	}

	return nil
}

// Get returns the stored report for the pair when one exists and is
// younger than the freshness window (R2.1, R2.2). A stale report reads
// as a miss but stays stored; GetAny still serves it.
func (s *Store) Get(ctx context.Context, company, industry string) (types.Record, bool, error) {
	rec, generatedAt, ok, err := s.load(ctx, company, industry)
	if err != nil || !ok {
		return types.Record{}, false, err
	}
	if time.Since(generatedAt) > s.freshness {
		return types.Record{}, false, nil
	}
	return rec, true, nil
}

// GetAny returns the stored report for the pair regardless of age
// (R2.3).
func (s *Store) GetAny(ctx context.Context, company, industry string) (types.Record, bool, error) {
	rec, _, ok, err := s.load(ctx, company, industry)
	return rec, ok, err
}

func (s *Store) load(ctx context.Context, company, industry string) (types.Record, time.Time, bool, error) {
	var payload, stamp string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload, generated_at FROM reports WHERE company = ? AND industry = ?`,
		company, industry,
	).Scan(&payload, &stamp)
	if err == sql.ErrNoRows {
		return types.Record{}, time.Time{}, false, nil
	}
	if err != nil {
		return types.Record{}, time.Time{}, false, fmt.Errorf("querying report: %w", err)
	}

	var rec types.Record
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		return types.Record{}, time.Time{}, false, fmt.Errorf("decoding report payload: %w", err)
	}

	generatedAt, err := time.Parse(time.RFC3339Nano, stamp)
	if err != nil {
		return types.Record{}, time.Time{}, false, fmt.Errorf("parsing report timestamp: %w", err)
	}

	return rec, generatedAt, true, nil
}

// Summary identifies one stored report (R4.1).
type Summary struct {
	Company     string
	Industry    string
	GeneratedAt time.Time
	// Errors counts the stage errors recorded in the report.
	Errors int
}

// List returns a summary for every stored report, newest first (R4.1).
func (s *Store) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT company, industry, generated_at, errors FROM reports
		 ORDER BY generated_at DESC, company, industry`)
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	defer rows.Close()

	var summaries []Summary
	for rows.Next() {
		var sum Summary
		var stamp string
		if err := rows.Scan(&sum.Company, &sum.Industry, &stamp, &sum.Errors); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, stamp); err == nil {
			sum.GeneratedAt = t
		}
		summaries = append(summaries, sum)
	}

	return summaries, rows.Err()
}

// Delete removes the stored report for the pair. It reports whether a
// report existed (R4.2).
func (s *Store) Delete(ctx context.Context, company, industry string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM reports WHERE company = ? AND industry = ?`, company, industry)
	if err != nil {
		return false, fmt.Errorf("deleting report: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("counting deleted rows: %w", err)
	}

	return n > 0, nil
}

// Clear removes every stored report and returns how many were removed
// (R4.3).
func (s *Store) Clear(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM reports`)
	if err != nil {
		return 0, fmt.Errorf("clearing reports: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted rows: %w", err)
	}

	return int(n), nil
}
