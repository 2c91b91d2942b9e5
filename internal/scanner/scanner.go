// Package scanner classifies message payload content types in an
// export and reports which of them the rest of the toolchain handles.
// It is read-only: nothing it computes feeds back into reconciliation.
package scanner

import (
	"fmt"
	"sort"

	"github.com/starford/eihwaz/internal/snapshot"
)

// Config carries the recognised payload tags. The handled sets are
// configuration, not package state, so callers decide what counts as
// handled.
type Config struct {
	HandledContentTypes []string
	HandledPartTypes    []string
	SampleLimit         int
}

// Sample is one truncated example of an unrecognised payload type.
type Sample struct {
	Conversation string
	Keys         []string
	Text         string
}

// Result is the outcome of scanning one export file.
type Result struct {
	File                 string
	Conversations        int
	ContentTypes         map[string]int
	PartTypes            map[string]int
	AuthorRoles          map[string]int
	UnhandledSamples     map[string]Sample
	UnhandledPartSamples map[string]Sample

	handledContent map[string]struct{}
	handledParts   map[string]struct{}
}

// Scan walks every node of every conversation in snap, counting
// top-level content types, part types nested in multimodal_text, and
// author roles. The first occurrence of each unhandled type is kept as
// a truncated sample for inspection.
func Scan(file string, snap snapshot.Snapshot, cfg Config) *Result {
	res := &Result{
		File:                 file,
		Conversations:        len(snap),
		ContentTypes:         map[string]int{},
		PartTypes:            map[string]int{},
		AuthorRoles:          map[string]int{},
		UnhandledSamples:     map[string]Sample{},
		UnhandledPartSamples: map[string]Sample{},
		handledContent:       toSet(cfg.HandledContentTypes),
		handledParts:         toSet(cfg.HandledPartTypes),
	}

	limit := cfg.SampleLimit
	if limit <= 0 {
		limit = 400
	}

	for _, conv := range snap {
		for _, node := range conv.Mapping {
			msg := node.Message
			if msg == nil {
				continue
			}
			if role := msg.Author.Role; role != "" {
				res.AuthorRoles[role]++
			}

			ct := msg.Content.ContentType
			if ct == "" {
				continue
			}
			res.ContentTypes[ct]++

			if _, handled := res.handledContent[ct]; !handled {
				if _, seen := res.UnhandledSamples[ct]; !seen {
					res.UnhandledSamples[ct] = Sample{
						Conversation: conv.Title,
						Keys:         sortedKeys(msg.Content.Fields),
						Text:         truncate(fmt.Sprintf("%v", msg.Content.Fields), limit),
					}
				}
			}

			if ct != "multimodal_text" {
				continue
			}
			for _, part := range msg.Content.Parts {
				pm, ok := part.(map[string]any)
				if !ok {
					continue
				}
				pct, _ := pm["content_type"].(string)
				if pct == "" {
					continue
				}
				res.PartTypes[pct]++

				if _, handled := res.handledParts[pct]; !handled {
					if _, seen := res.UnhandledPartSamples[pct]; !seen {
						res.UnhandledPartSamples[pct] = Sample{
							Conversation: conv.Title,
							Keys:         sortedKeys(pm),
							Text:         truncate(fmt.Sprintf("%v", pm), limit),
						}
					}
				}
			}
		}
	}
	return res
}

// HandledPercent reports the share of counted top-level messages whose
// content type is handled, in percent. An empty scan reports 0.
func (r *Result) HandledPercent() float64 {
	total, unhandled := 0, 0
	for ct, n := range r.ContentTypes {
		total += n
		if _, ok := r.handledContent[ct]; !ok {
			unhandled += n
		}
	}
	if total == 0 {
		return 0
	}
	return float64(total-unhandled) / float64(total) * 100
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, s := range items {
		set[s] = struct{}{}
	}
	return set
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
