// Package snapshot loads conversation exports into identity-keyed maps
// and writes reconciled exports back to disk.
package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/starford/eihwaz/internal/apperr"
	"github.com/starford/eihwaz/internal/models"
)

// Snapshot is one loaded export file, keyed by conversation identity.
type Snapshot map[string]*models.Conversation

// Load parses the JSON export at path into a Snapshot.
//
// The document root must be an array of conversation records and every
// record must carry a conversation_id; either violation is fatal and
// wraps apperr.ErrInputFormat. When one file contains the same identity
// twice, the later record wins and the overwrite is logged.
func Load(path string, logger *slog.Logger) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("snapshot: read %s: %w", path, err)
	}

	// A null root would decode into a nil slice without error; require an
	// array up front so non-sequence documents are always fatal.
	if !bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
		return nil, fmt.Errorf("snapshot: %s: root value is not an array: %w", path, apperr.ErrInputFormat)
	}

	var convs []*models.Conversation
	if err := json.Unmarshal(data, &convs); err != nil {
		return nil, fmt.Errorf("snapshot: parse %s: %v: %w", path, err, apperr.ErrInputFormat)
	}

	snap := make(Snapshot, len(convs))
	for i, conv := range convs {
		if conv == nil || conv.ID == "" {
			return nil, fmt.Errorf("snapshot: %s: record %d has no conversation_id: %w", path, i, apperr.ErrInputFormat)
		}
		if _, dup := snap[conv.ID]; dup {
			logger.Warn("duplicate conversation_id, keeping later record",
				slog.String("path", path),
				slog.String("conversation_id", conv.ID))
		}
		snap[conv.ID] = conv
	}
	return snap, nil
}
