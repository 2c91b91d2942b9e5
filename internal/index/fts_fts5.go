//go:build sqlite_fts5

package index

import (
	"database/sql"
	"fmt"

	"github.com/starford/eihwaz/internal/extract"
)

// Engine names the search backend compiled into this binary.
const Engine = "fts5"

func initFTS(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS messages_fts USING fts5(
			node_id UNINDEXED,
			conv_id UNINDEXED,
			title,
			role UNINDEXED,
			text,
			tokenize = 'unicode61 remove_diacritics 2'
		);
	`)
	return err
}

func ftsInsert(tx *sql.Tx, r extract.Row) error {
	_, err := tx.Exec(`INSERT INTO messages_fts (node_id, conv_id, title, role, text) VALUES (?, ?, ?, ?, ?)`,
		r.NodeID, r.ConvID, r.Title, r.Role, r.Text)
	if err != nil {
		return fmt.Errorf("index: insert fts: %w", err)
	}
	return nil
}

// Search performs an FTS5 full-text search over message text and titles.
func (db *DB) Search(query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := db.conn.Query(`
		SELECT node_id, conv_id, title, role
		FROM messages_fts
		WHERE messages_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("index: search: %w", err)
	}
	defer rows.Close()

	var out []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.NodeID, &r.ConvID, &r.Title, &r.Role); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
