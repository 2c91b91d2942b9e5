package index

import (
	"fmt"

	"github.com/starford/eihwaz/internal/extract"
)

// SearchResult is one search hit.
type SearchResult struct {
	NodeID string
	ConvID string
	Title  string
	Role   string
}

// InsertRows bulk-inserts messages within a single transaction.
func (db *DB) InsertRows(rows []extract.Row) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	stmt, err := tx.Prepare(`INSERT INTO messages (node_id, conv_id, title, role, text) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("index: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.Exec(r.NodeID, r.ConvID, r.Title, r.Role, r.Text); err != nil {
			return fmt.Errorf("index: insert message: %w", err)
		}
		if err := ftsInsert(tx, r); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Count returns the number of indexed messages.
func (db *DB) Count() (int, error) {
	var n int
	if err := db.conn.QueryRow(`SELECT count(*) FROM messages`).Scan(&n); err != nil {
		return 0, fmt.Errorf("index: count: %w", err)
	}
	return n, nil
}
