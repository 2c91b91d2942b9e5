// Package extract flattens conversation trees into the per-message rows
// the search index consumes. Only plain text content is extracted.
package extract

import (
	"fmt"
	"strings"

	"github.com/starford/eihwaz/internal/models"
	"github.com/starford/eihwaz/internal/snapshot"
)

// Row is one extracted message.
type Row struct {
	NodeID string
	ConvID string
	Title  string
	Role   string
	Text   string
}

// Messages returns every text message in the conversation. Parts are
// joined with single spaces; nodes without a message, non-text content,
// and blank texts are skipped. A missing author role becomes "unknown".
func Messages(conv *models.Conversation) []Row {
	var rows []Row
	for nodeID, node := range conv.Mapping {
		msg := node.Message
		if msg == nil || msg.Content.ContentType != "text" {
			continue
		}

		parts := make([]string, 0, len(msg.Content.Parts))
		for _, p := range msg.Content.Parts {
			if p == nil {
				continue
			}
			if s := fmt.Sprintf("%v", p); s != "" {
				parts = append(parts, s)
			}
		}
		text := strings.Join(parts, " ")
		if strings.TrimSpace(text) == "" {
			continue
		}

		role := msg.Author.Role
		if role == "" {
			role = "unknown"
		}
		rows = append(rows, Row{
			NodeID: nodeID,
			ConvID: conv.ID,
			Title:  conv.Title,
			Role:   role,
			Text:   text,
		})
	}
	return rows
}

// FromSnapshot extracts the rows of every conversation in snap.
func FromSnapshot(snap snapshot.Snapshot) []Row {
	var rows []Row
	for _, conv := range snap {
		rows = append(rows, Messages(conv)...)
	}
	return rows
}
