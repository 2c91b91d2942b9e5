//go:build !sqlite_fts5

package index

import (
	"database/sql"
	"fmt"

	"github.com/starford/eihwaz/internal/extract"
)

// Engine names the search backend compiled into this binary.
const Engine = "like"

func initFTS(_ *sql.DB) error {
	// FTS5 not available; search falls back to LIKE over the messages table.
	return nil
}

func ftsInsert(_ *sql.Tx, _ extract.Row) error {
	// Text is already stored in the messages table; nothing extra to do.
	return nil
}

// Search performs a LIKE-based search (fallback when FTS5 is not compiled in).
func (db *DB) Search(query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 100
	}
	like := "%" + query + "%"
	rows, err := db.conn.Query(`
		SELECT node_id, conv_id, title, role
		FROM messages
		WHERE text LIKE ? OR title LIKE ?
		LIMIT ?
	`, like, like, limit)
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
