package database

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

func TestMigrateNewDB(t *testing.T) {
	db := openTestDB(t)

	version, err := schemaVersion(db.conn)
	if err != nil {
		t.Fatalf("schemaVersion: %v", err)
	}
	if version != latestVersion() {
		t.Errorf("expected version %d, got %d", latestVersion(), version)
	}
}

func TestMigrateLegacyDB(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "legacy.db")

	// Simulate a database created before the migration system existed:
	// the original tables are present but user_version was never set.
	raw, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open raw db: %v", err)
	}
	_, err = raw.Exec(`
		CREATE TABLE reports (
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
		CREATE TABLE entities (id INTEGER PRIMARY KEY, name TEXT UNIQUE NOT NULL, type TEXT, lat REAL, lng REAL);
		CREATE TABLE report_entities (report_id INTEGER, entity_id INTEGER, mention_count INTEGER, context TEXT, PRIMARY KEY (report_id, entity_id));
		CREATE TABLE sources (id INTEGER PRIMARY KEY, report_id INTEGER, url TEXT, source_name TEXT, trust_rating TEXT, title TEXT, used_in_report INTEGER DEFAULT 1);
		CREATE TABLE connections (id INTEGER PRIMARY KEY, entity_id INTEGER, report_id_a INTEGER, report_id_b INTEGER, connection_type TEXT, strength REAL DEFAULT 1.0, UNIQUE(entity_id, report_id_a, report_id_b));
		CREATE VIRTUAL TABLE reports_fts USING fts5(title, content, date, slug, category, content='reports', content_rowid='id');
	`)
	if err != nil {
		t.Fatalf("create legacy tables: %v", err)
	}
	raw.Close()

	// Now open via the migration system.
	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	version, err := schemaVersion(db.conn)
	if err != nil {
		t.Fatalf("schemaVersion: %v", err)
	}
	if version != latestVersion() {
		t.Errorf("expected version %d after legacy migration, got %d", latestVersion(), version)
	}

	// The legacy schema must be usable as-is.
	if _, _, err := db.SaveReport(sampleRecord("2024-01-01", "mideast", "adopted database")); err != nil {
		t.Fatalf("SaveReport on adopted db: %v", err)
	}
	if err := db.RecordIngestRun(IngestRun{RunID: "run-1", StartedAt: "2024-01-01T00:00:00Z", Status: "ok"}); err != nil {
		t.Fatalf("RecordIngestRun on adopted db: %v", err)
	}
}

func TestMigrateIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "idem.db")

	db1, err := Open(dbPath)
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	db1.Close()

	db2, err := Open(dbPath)
	if err != nil {
		t.Fatalf("second Open: %v", err)
	}
	defer db2.Close()

	version, err := schemaVersion(db2.conn)
	if err != nil {
		t.Fatalf("schemaVersion: %v", err)
	}
	if version != latestVersion() {
		t.Errorf("expected version %d, got %d", latestVersion(), version)
	}
}

func TestSchemaVersionNewDB(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "empty.db")
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer conn.Close()

	version, err := schemaVersion(conn)
	if err != nil {
		t.Fatalf("schemaVersion: %v", err)
	}
	if version != 0 {
		t.Errorf("expected version 0 on new db, got %d", version)
	}
}

func TestIsLegacyDBFalseOnNew(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "fresh.db")
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer conn.Close()

	legacy, err := isLegacyDB(conn)
	if err != nil {
		t.Fatalf("isLegacyDB: %v", err)
	}
	if legacy {
		t.Error("expected isLegacyDB=false on empty database")
	}
}
