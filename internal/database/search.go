package database

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Search runs a ranked full-text query over report content. Each hit's
// snippet is the stored content with matched terms wrapped in <mark> tags.
// A limit of zero or less means DefaultLimit; values above MaxLimit are
// clamped. The query string is passed to FTS5 as written, so operators
// like AND, OR and "quoted phrases" work.
func (db *DB) Search(query string, limit int) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < minQueryRunes {
		return nil, fmt.Errorf("%w: need at least %d characters", ErrQueryTooShort, minQueryRunes)
	}
	limit = clampLimit(limit)

	rows, err := db.conn.Query(`
		SELECT rowid, highlight(reports_fts, 1, '<mark>', '</mark>'), date, slug, category
		FROM reports_fts
		WHERE content MATCH ?
		ORDER BY rank
		LIMIT ?`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("searching %q: %w", query, err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.ReportID, &r.Snippet, &r.Date, &r.Slug, &r.Category); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
