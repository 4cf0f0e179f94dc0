package database

import (
	"database/sql"
	"fmt"
)

// RecordIngestRun stores the outcome of one ingestion pass.
func (db *DB) RecordIngestRun(run IngestRun) error {
	_, err := db.conn.Exec(`
		INSERT INTO ingest_runs (run_id, started_at, duration_ms, scanned, created, updated, unchanged, skipped, failed, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.StartedAt, run.DurationMS,
		run.Scanned, run.Created, run.Updated, run.Unchanged, run.Skipped, run.Failed,
		run.Status,
	)
	if err != nil {
		return fmt.Errorf("recording ingest run %s: %w", run.RunID, err)
	}
	return nil
}

// LastIngestRun returns the most recent ingestion run, or nil when the
// database has never been ingested into.
func (db *DB) LastIngestRun() (*IngestRun, error) {
	var run IngestRun
	err := db.conn.QueryRow(`
		SELECT id, run_id, started_at, duration_ms, scanned, created, updated, unchanged, skipped, failed, status
		FROM ingest_runs ORDER BY id DESC LIMIT 1`,
	).Scan(&run.ID, &run.RunID, &run.StartedAt, &run.DurationMS,
		&run.Scanned, &run.Created, &run.Updated, &run.Unchanged, &run.Skipped, &run.Failed,
		&run.Status)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading last ingest run: %w", err)
	}
	return &run, nil
}
