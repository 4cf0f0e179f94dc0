package database

import (
	"database/sql"
	"fmt"
	"strings"
)

// FindConnections lists the reports mentioning an entity, newest first.
// The name may be any alias-normalized form; lookup is case-insensitive.
// Unknown entities return an empty list, not an error.
func (db *DB) FindConnections(entityName string) ([]EntityAppearance, error) {
	var entityID int64
	err := db.conn.QueryRow(
		"SELECT id FROM entities WHERE name = ?", strings.ToLower(strings.TrimSpace(entityName)),
	).Scan(&entityID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("looking up entity %q: %w", entityName, err)
	}

	rows, err := db.conn.Query(`
		SELECT r.date, r.slug, COALESCE(r.title, ''), COALESCE(r.category, ''),
		       re.mention_count, COALESCE(re.context, '')
		FROM report_entities re
		JOIN reports r ON r.id = re.report_id
		WHERE re.entity_id = ?
		ORDER BY r.date DESC, r.id DESC
		LIMIT ?`, entityID, MaxLimit)
	if err != nil {
		return nil, fmt.Errorf("listing appearances of %q: %w", entityName, err)
	}
	defer rows.Close()

	var appearances []EntityAppearance
	for rows.Next() {
		var a EntityAppearance
		if err := rows.Scan(&a.Date, &a.Slug, &a.Title, &a.Category, &a.MentionCount, &a.Context); err != nil {
			return nil, err
		}
		appearances = append(appearances, a)
	}
	return appearances, rows.Err()
}

// EntityTimeline returns an entity's appearances in date order, newest
// first. It is the same view FindConnections produces.
func (db *DB) EntityTimeline(entityName string) ([]EntityAppearance, error) {
	return db.FindConnections(entityName)
}

// RelatedReports lists distinct reports connected to the given one through
// a shared entity, strongest edge first, then newest. The report itself is
// never included.
func (db *DB) RelatedReports(reportID int64, limit int) ([]RelatedReport, error) {
	limit = clampLimit(limit)

	rows, err := db.conn.Query(`
		SELECT DISTINCT r.date, r.slug, COALESCE(r.title, ''), COALESCE(r.category, ''),
		       e.name, c.strength
		FROM connections c
		JOIN reports r ON (r.id = c.report_id_b AND c.report_id_a = ?)
		               OR (r.id = c.report_id_a AND c.report_id_b = ?)
		JOIN entities e ON e.id = c.entity_id
		WHERE r.id != ?
		ORDER BY c.strength DESC, r.date DESC
		LIMIT ?`, reportID, reportID, reportID, limit)
	if err != nil {
		return nil, fmt.Errorf("finding reports related to %d: %w", reportID, err)
	}
	defer rows.Close()

	var related []RelatedReport
	for rows.Next() {
		var r RelatedReport
		if err := rows.Scan(&r.Date, &r.Slug, &r.Title, &r.Category, &r.SharedEntity, &r.Strength); err != nil {
			return nil, err
		}
		related = append(related, r)
	}
	return related, rows.Err()
}

// TopEntities ranks entities by total mention count, optionally restricted
// to a single date. An empty date means all time.
func (db *DB) TopEntities(date string, limit int) ([]EntityCount, error) {
	limit = clampLimit(limit)

	var (
		rows *sql.Rows
		err  error
	)
	if date != "" {
		if err := ValidateDate(date); err != nil {
			return nil, err
		}
		rows, err = db.conn.Query(`
			SELECT e.name, e.type, e.lat, e.lng, SUM(re.mention_count) AS total_mentions
			FROM report_entities re
			JOIN entities e ON e.id = re.entity_id
			JOIN reports r ON r.id = re.report_id
			WHERE r.date = ?
			GROUP BY e.id
			ORDER BY total_mentions DESC
			LIMIT ?`, date, limit)
	} else {
		rows, err = db.conn.Query(`
			SELECT e.name, e.type, e.lat, e.lng, SUM(re.mention_count) AS total_mentions
			FROM report_entities re
			JOIN entities e ON e.id = re.entity_id
			GROUP BY e.id
			ORDER BY total_mentions DESC
			LIMIT ?`, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("ranking entities: %w", err)
	}
	defer rows.Close()

	var counts []EntityCount
	for rows.Next() {
		var c EntityCount
		if err := rows.Scan(&c.Name, &c.Type, &c.Lat, &c.Lng, &c.TotalMentions); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// SourceStats aggregates cited sources by name and trust rating, most
// cited first, optionally restricted to a single date.
func (db *DB) SourceStats(date string) ([]SourceStat, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if date != "" {
		if err := ValidateDate(date); err != nil {
			return nil, err
		}
		rows, err = db.conn.Query(`
			SELECT s.source_name, COALESCE(s.trust_rating, ''), COUNT(*) AS count
			FROM sources s
			JOIN reports r ON r.id = s.report_id
			WHERE r.date = ?
			GROUP BY s.source_name, s.trust_rating
			ORDER BY count DESC`, date)
	} else {
		rows, err = db.conn.Query(`
			SELECT source_name, COALESCE(trust_rating, ''), COUNT(*) AS count
			FROM sources
			GROUP BY source_name, trust_rating
			ORDER BY count DESC`)
	}
	if err != nil {
		return nil, fmt.Errorf("aggregating sources: %w", err)
	}
	defer rows.Close()

	var stats []SourceStat
	for rows.Next() {
		var s SourceStat
		if err := rows.Scan(&s.SourceName, &s.TrustRating, &s.Count); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// GetStats returns aggregate counts across the whole database.
func (db *DB) GetStats() (*Stats, error) {
	stats := &Stats{}
	queries := []struct {
		sql  string
		dest *int
	}{
		{"SELECT COUNT(*) FROM reports", &stats.Reports},
		{"SELECT COUNT(*) FROM entities", &stats.Entities},
		{"SELECT COUNT(*) FROM report_entities", &stats.ReportEntities},
		{"SELECT COUNT(*) FROM sources", &stats.Sources},
		{"SELECT COUNT(*) FROM connections", &stats.Connections},
		{"SELECT COUNT(DISTINCT date) FROM reports", &stats.Dates},
	}
	for _, q := range queries {
		if err := db.conn.QueryRow(q.sql).Scan(q.dest); err != nil {
			return nil, fmt.Errorf("computing stats: %w", err)
		}
	}
	return stats, nil
}
