package scanner

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

var rule = strings.Repeat("=", 60)

// Render writes the scan report to w: count tables (highest first),
// samples of unrecognised types, and a handled-percentage summary.
func (r *Result) Render(w io.Writer) {
	fmt.Fprintf(w, "\n%s\n", rule)
	fmt.Fprintf(w, "SCAN REPORT: %s\n", r.File)
	fmt.Fprintf(w, "%s\n", rule)
	fmt.Fprintf(w, "Conversations: %d\n", r.Conversations)

	fmt.Fprintf(w, "\n--- Top-level content_types ---\n")
	renderCountTable(w, r.ContentTypes, r.handledContent)

	if len(r.PartTypes) > 0 {
		fmt.Fprintf(w, "\n--- Nested types in multimodal_text parts ---\n")
		renderCountTable(w, r.PartTypes, r.handledParts)
	}

	fmt.Fprintf(w, "\n--- Author roles ---\n")
	for _, e := range byCountDesc(r.AuthorRoles) {
		fmt.Fprintf(w, "%8d  %s\n", e.count, e.name)
	}

	renderSamples(w, "Samples of unhandled content_types", r.UnhandledSamples)
	renderSamples(w, "Samples of unhandled part types", r.UnhandledPartSamples)

	total, handled := 0, 0
	for ct, n := range r.ContentTypes {
		total += n
		if _, ok := r.handledContent[ct]; ok {
			handled += n
		}
	}
	fmt.Fprintf(w, "\n%s\n", rule)
	fmt.Fprintf(w, "SUMMARY: %.1f%% of messages handled (%d/%d)\n", r.HandledPercent(), handled, total)
	fmt.Fprintf(w, "%s\n\n", rule)
}

type countEntry struct {
	name  string
	count int
}

// byCountDesc orders a counter highest count first, name ascending on
// ties so the report is deterministic.
func byCountDesc(m map[string]int) []countEntry {
	entries := make([]countEntry, 0, len(m))
	for name, count := range m {
		entries = append(entries, countEntry{name, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].name < entries[j].name
	})
	return entries
}

func renderCountTable(w io.Writer, counts map[string]int, handled map[string]struct{}) {
	fmt.Fprintf(w, "%8s  %-35s  Status\n", "Count", "Type")
	fmt.Fprintf(w, "%s  %s  %s\n", strings.Repeat("-", 8), strings.Repeat("-", 35), strings.Repeat("-", 12))
	for _, e := range byCountDesc(counts) {
		status := "NOT HANDLED"
		if _, ok := handled[e.name]; ok {
			status = "HANDLED"
		}
		fmt.Fprintf(w, "%8d  %-35s  %s\n", e.count, e.name, status)
	}
}

func renderSamples(w io.Writer, heading string, samples map[string]Sample) {
	if len(samples) == 0 {
		return
	}
	fmt.Fprintf(w, "\n--- %s ---\n", heading)

	names := make([]string, 0, len(samples))
	for name := range samples {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		s := samples[name]
		fmt.Fprintf(w, "\n[%s]\n", name)
		fmt.Fprintf(w, "  Found in: %s\n", s.Conversation)
		fmt.Fprintf(w, "  Keys: %v\n", s.Keys)
		fmt.Fprintf(w, "  Sample: %s\n", s.Text)
	}
}
