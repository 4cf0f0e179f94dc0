package database

import "fmt"

// RebuildConnections derives the report-to-report connection graph from the
// current entity links. The existing edges are dropped and regenerated in
// one transaction: two reports sharing an entity are connected once with
// the lower report id first, as a follow_up (strength 2.0) when their dates
// differ and a same_day (strength 1.0) edge otherwise. Returns the number
// of edges written.
func (db *DB) RebuildConnections() (int, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin rebuild: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM connections"); err != nil {
		return 0, fmt.Errorf("clearing connections: %w", err)
	}

	res, err := tx.Exec(`
		INSERT OR IGNORE INTO connections (entity_id, report_id_a, report_id_b, connection_type, strength)
		SELECT a.entity_id, a.report_id, b.report_id,
		       CASE WHEN ra.date != rb.date THEN 'follow_up' ELSE 'same_day' END,
		       CASE WHEN ra.date != rb.date THEN 2.0 ELSE 1.0 END
		FROM report_entities a
		JOIN report_entities b ON a.entity_id = b.entity_id AND a.report_id < b.report_id
		JOIN reports ra ON ra.id = a.report_id
		JOIN reports rb ON rb.id = b.report_id`)
	if err != nil {
		return 0, fmt.Errorf("deriving connections: %w", err)
	}

	count, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing rebuild: %w", err)
	}
	return int(count), nil
}
