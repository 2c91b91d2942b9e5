package forest

import (
	"sort"

	"github.com/starford/eihwaz/internal/models"
	"github.com/starford/eihwaz/internal/snapshot"
)

// Merge reconciles two snapshots into a single forest holding every
// identity from either side exactly once.
//
// A conversation present on only one side is taken as-is. When both
// sides carry an identity the record with more mapping nodes wins; on
// equal node counts the past record wins. Selection is whole-record:
// the losing side's tree is discarded, never unioned node by node.
//
// The result is ordered by update_time descending. Records whose
// update_time was absent sort as 0; ties keep a stable relative order.
func Merge(past, present snapshot.Snapshot) []*models.Conversation {
	merged := make([]*models.Conversation, 0, len(past)+len(present))

	for id, pastConv := range past {
		presentConv, ok := present[id]
		if ok && presentConv.NodeCount() > pastConv.NodeCount() {
			merged = append(merged, presentConv)
		} else {
			merged = append(merged, pastConv)
		}
	}
	for id, conv := range present {
		if _, ok := past[id]; !ok {
			merged = append(merged, conv)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].UpdateTime > merged[j].UpdateTime
	})
	return merged
}
