package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Outcome classifies what SaveReport did with a file's record.
type Outcome int

const (
	Unchanged Outcome = iota
	Created
	Updated
)

func (o Outcome) String() string {
	switch o {
	case Created:
		return "created"
	case Updated:
		return "updated"
	default:
		return "unchanged"
	}
}

// SaveReport stores one report and its derived relations in a single
// transaction. When the stored fingerprint for the file path already
// matches, nothing is written and the call reports Unchanged. On update
// the previous FTS entry and the report's entity links and sources are
// removed before the fresh ones are written, so nothing stale survives a
// content change.
func (db *DB) SaveReport(rec ReportRecord) (int64, Outcome, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return 0, Unchanged, fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	var (
		reportID int64
		oldHash  sql.NullString
	)
	outcome := Created
	err = tx.QueryRow(
		"SELECT id, file_hash FROM reports WHERE file_path = ?", rec.FilePath,
	).Scan(&reportID, &oldHash)
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		return 0, Unchanged, fmt.Errorf("looking up %s: %w", rec.FilePath, err)
	case oldHash.String == rec.FileHash:
		return reportID, Unchanged, nil
	default:
		outcome = Updated
	}

	now := time.Now().UTC().Format(time.RFC3339)

	if outcome == Updated {
		var oldTitle, oldContent, oldDate, oldSlug, oldCategory string
		err = tx.QueryRow(`
			SELECT COALESCE(title, ''), COALESCE(content, ''), date, slug, COALESCE(category, '')
			FROM reports WHERE id = ?`, reportID,
		).Scan(&oldTitle, &oldContent, &oldDate, &oldSlug, &oldCategory)
		if err != nil {
			return 0, Unchanged, fmt.Errorf("reading previous version of %s: %w", rec.FilePath, err)
		}

		// The external-content FTS table needs the outgoing row values to
		// drop its old entry.
		if _, err := tx.Exec(`
			INSERT INTO reports_fts (reports_fts, rowid, title, content, date, slug, category)
			VALUES ('delete', ?, ?, ?, ?, ?, ?)`,
			reportID, oldTitle, oldContent, oldDate, oldSlug, oldCategory,
		); err != nil {
			return 0, Unchanged, fmt.Errorf("dropping old index entry: %w", err)
		}

		if _, err := tx.Exec(`
			UPDATE reports
			SET content = ?, title = ?, word_count = ?, file_hash = ?, indexed_at = ?, category = ?
			WHERE id = ?`,
			rec.Content, rec.Title, rec.WordCount, rec.FileHash, now, rec.Category, reportID,
		); err != nil {
			return 0, Unchanged, fmt.Errorf("updating report %d: %w", reportID, err)
		}
		if _, err := tx.Exec("DELETE FROM report_entities WHERE report_id = ?", reportID); err != nil {
			return 0, Unchanged, fmt.Errorf("clearing entity links: %w", err)
		}
		if _, err := tx.Exec("DELETE FROM sources WHERE report_id = ?", reportID); err != nil {
			return 0, Unchanged, fmt.Errorf("clearing sources: %w", err)
		}
	} else {
		res, err := tx.Exec(`
			INSERT INTO reports (date, slug, category, title, content, word_count, file_path, file_hash, indexed_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.Date, rec.Slug, rec.Category, rec.Title, rec.Content, rec.WordCount,
			rec.FilePath, rec.FileHash, now,
		)
		if err != nil {
			return 0, Unchanged, fmt.Errorf("inserting report %s/%s: %w", rec.Date, rec.Slug, err)
		}
		reportID, err = res.LastInsertId()
		if err != nil {
			return 0, Unchanged, err
		}
	}

	for _, e := range rec.Entities {
		entityID, err := ensureEntity(tx, e.Name, e.Type, e.Lat, e.Lng)
		if err != nil {
			return 0, Unchanged, fmt.Errorf("ensuring entity %q: %w", e.Name, err)
		}
		if _, err := tx.Exec(`
			INSERT OR REPLACE INTO report_entities (report_id, entity_id, mention_count, context)
			VALUES (?, ?, ?, ?)`,
			reportID, entityID, e.Mentions, e.Context,
		); err != nil {
			return 0, Unchanged, fmt.Errorf("linking entity %q: %w", e.Name, err)
		}
	}

	for _, s := range rec.Sources {
		if _, err := tx.Exec(`
			INSERT INTO sources (report_id, url, source_name, trust_rating, title)
			VALUES (?, ?, ?, ?, ?)`,
			reportID, s.URL, s.Name, s.Trust, s.Title,
		); err != nil {
			return 0, Unchanged, fmt.Errorf("recording source %q: %w", s.Name, err)
		}
	}

	if _, err := tx.Exec(`
		INSERT INTO reports_fts (rowid, title, content, date, slug, category)
		VALUES (?, ?, ?, ?, ?, ?)`,
		reportID, rec.Title, rec.Content, rec.Date, rec.Slug, rec.Category,
	); err != nil {
		return 0, Unchanged, fmt.Errorf("indexing report %d: %w", reportID, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, Unchanged, fmt.Errorf("committing %s: %w", rec.FilePath, err)
	}
	return reportID, outcome, nil
}

// ensureEntity resolves an entity name to its row id, inserting the row on
// first sight. Names are stored lowercase so every alias of a place maps to
// one entity.
func ensureEntity(tx *sql.Tx, name, entityType string, lat, lng float64) (int64, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if _, err := tx.Exec(`
		INSERT INTO entities (name, type, lat, lng) VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO NOTHING`,
		name, entityType, lat, lng,
	); err != nil {
		return 0, err
	}
	var id int64
	err := tx.QueryRow("SELECT id FROM entities WHERE name = ?", name).Scan(&id)
	return id, err
}

// GetReport returns a single report by date and slug, or nil when absent.
func (db *DB) GetReport(date, slug string) (*Report, error) {
	var r Report
	err := db.conn.QueryRow(`
		SELECT id, date, slug, COALESCE(category, ''), COALESCE(title, ''), COALESCE(content, ''),
		       COALESCE(word_count, 0), COALESCE(file_path, ''), COALESCE(file_hash, ''), COALESCE(indexed_at, '')
		FROM reports WHERE date = ? AND slug = ?`, date, slug,
	).Scan(&r.ID, &r.Date, &r.Slug, &r.Category, &r.Title, &r.Content,
		&r.WordCount, &r.FilePath, &r.FileHash, &r.IndexedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading report %s/%s: %w", date, slug, err)
	}
	return &r, nil
}

// GetDates returns every date with at least one report, newest first.
func (db *DB) GetDates() ([]string, error) {
	rows, err := db.conn.Query("SELECT DISTINCT date FROM reports ORDER BY date DESC")
	if err != nil {
		return nil, fmt.Errorf("listing dates: %w", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

// GetReportsForDate lists one day's reports without their content, ordered
// by category then slug.
func (db *DB) GetReportsForDate(date string) ([]ReportSummary, error) {
	if err := ValidateDate(date); err != nil {
		return nil, err
	}

	rows, err := db.conn.Query(`
		SELECT id, date, slug, COALESCE(category, ''), COALESCE(title, ''), COALESCE(word_count, 0)
		FROM reports WHERE date = ? ORDER BY category, slug`, date)
	if err != nil {
		return nil, fmt.Errorf("listing reports for %s: %w", date, err)
	}
	defer rows.Close()

	var reports []ReportSummary
	for rows.Next() {
		var r ReportSummary
		if err := rows.Scan(&r.ID, &r.Date, &r.Slug, &r.Category, &r.Title, &r.WordCount); err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}
