package database

import "database/sql"

// Migration represents a single schema migration step.
type Migration struct {
	Version     int
	Description string
	Up          func(tx *sql.Tx) error
}

// migrations is the ordered list of all schema migrations.
// Append new migrations to the end with incrementing Version numbers.
var migrations = []Migration{
	{
		Version:     1,
		Description: "initial schema",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS reports (
    id INTEGER PRIMARY KEY,
    date TEXT NOT NULL,
    slug TEXT NOT NULL,
    category TEXT,
    title TEXT,
    content TEXT,
    word_count INTEGER,
    file_path TEXT UNIQUE,
    file_hash TEXT,
    indexed_at TEXT,
    UNIQUE(date, slug)
);

CREATE TABLE IF NOT EXISTS entities (
    id INTEGER PRIMARY KEY,
    name TEXT UNIQUE NOT NULL,
    type TEXT,
    lat REAL,
    lng REAL
);

CREATE TABLE IF NOT EXISTS report_entities (
    report_id INTEGER REFERENCES reports(id),
    entity_id INTEGER REFERENCES entities(id),
    mention_count INTEGER DEFAULT 1,
    context TEXT,
    PRIMARY KEY (report_id, entity_id)
);

CREATE TABLE IF NOT EXISTS sources (
    id INTEGER PRIMARY KEY,
    report_id INTEGER REFERENCES reports(id),
    url TEXT,
    source_name TEXT,
    trust_rating TEXT,
    title TEXT,
    used_in_report INTEGER DEFAULT 1
);

CREATE TABLE IF NOT EXISTS connections (
    id INTEGER PRIMARY KEY,
    entity_id INTEGER REFERENCES entities(id),
    report_id_a INTEGER REFERENCES reports(id),
    report_id_b INTEGER REFERENCES reports(id),
    connection_type TEXT,
    strength REAL DEFAULT 1.0,
    UNIQUE(entity_id, report_id_a, report_id_b)
);

CREATE VIRTUAL TABLE IF NOT EXISTS reports_fts USING fts5(
    title, content, date, slug, category,
    content='reports',
    content_rowid='id'
);
`)
			return err
		},
	},
	{
		Version:     2,
		Description: "ingest run log and query indexes",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS ingest_runs (
    id INTEGER PRIMARY KEY,
    run_id TEXT UNIQUE NOT NULL,
    started_at TEXT NOT NULL,
    duration_ms INTEGER DEFAULT 0,
    scanned INTEGER DEFAULT 0,
    created INTEGER DEFAULT 0,
    updated INTEGER DEFAULT 0,
    unchanged INTEGER DEFAULT 0,
    skipped INTEGER DEFAULT 0,
    failed INTEGER DEFAULT 0,
    status TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_reports_date ON reports(date);
CREATE INDEX IF NOT EXISTS idx_reports_file_path ON reports(file_path);
CREATE INDEX IF NOT EXISTS idx_report_entities_entity ON report_entities(entity_id);
CREATE INDEX IF NOT EXISTS idx_sources_report ON sources(report_id);
CREATE INDEX IF NOT EXISTS idx_connections_entity ON connections(entity_id);
`)
			return err
		},
	},
}

// latestVersion returns the highest migration version number.
func latestVersion() int {
	if len(migrations) == 0 {
		return 0
	}
	return migrations[len(migrations)-1].Version
}
