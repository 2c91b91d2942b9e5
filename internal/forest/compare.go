// Package forest implements the comparison and reconciliation engine
// for conversation-export snapshots. A snapshot is a directed forest:
// one tree per conversation, joined across snapshots by identity.
package forest

import (
	"github.com/starford/eihwaz/internal/snapshot"
)

// MissingConversation describes one conversation present in the past
// snapshot but absent from the present one.
type MissingConversation struct {
	ConversationID string `json:"conversation_id"`
	Title          string `json:"title"`
	Nodes          int    `json:"nodes"`
}

// Stats summarises the membership relation between two snapshots.
type Stats struct {
	PastTotal            int `json:"past_total"`
	PresentTotal         int `json:"present_total"`
	Common               int `json:"common"`
	MissingConversations int `json:"missing_conversations"`
}

// Comparison is the membership delta between a past and a present
// snapshot. MissingInPresent carries one enriched entry per
// conversation the present snapshot lost; MissingInPast is only a
// count, since conversations new in the present snapshot are expected
// growth, not loss.
type Comparison struct {
	MissingInPresent []MissingConversation `json:"missing_in_present"`
	MissingInPast    int                   `json:"missing_in_past"`
	Stats            Stats                 `json:"stats"`
}

// Compare computes the membership delta between past and present.
// MissingInPresent is returned in map-iteration order; display ordering
// is the renderer's concern so the comparison itself stays canonical.
// Comparing empty snapshots yields empty deltas.
func Compare(past, present snapshot.Snapshot) *Comparison {
	cmp := &Comparison{MissingInPresent: []MissingConversation{}}

	for id, conv := range past {
		if _, ok := present[id]; ok {
			cmp.Stats.Common++
			continue
		}
		// Titles are taken as decoded: absent titles already carry the
		// loader's default, an explicit empty title stays empty.
		cmp.MissingInPresent = append(cmp.MissingInPresent, MissingConversation{
			ConversationID: id,
			Title:          conv.Title,
			Nodes:          conv.NodeCount(),
		})
	}

	for id := range present {
		if _, ok := past[id]; !ok {
			cmp.MissingInPast++
		}
	}

	cmp.Stats.PastTotal = len(past)
	cmp.Stats.PresentTotal = len(present)
	cmp.Stats.MissingConversations = len(cmp.MissingInPresent)
	return cmp
}
