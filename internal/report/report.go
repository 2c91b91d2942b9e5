// Package report renders comparison results for the console and for
// structured JSON persistence. It is pure formatting: all numbers come
// from the Comparison, none are recomputed here.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/starford/eihwaz/internal/forest"
)

var rule = strings.Repeat("=", 60)

// Render writes the human-readable comparison report to w. Missing
// conversations are listed largest tree first.
func Render(w io.Writer, cmp *forest.Comparison, pastPath, presentPath string) {
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "DIRECTED FOREST COMPARISON REPORT")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "\nPAST file:    %s\n", pastPath)
	fmt.Fprintf(w, "PRESENT file: %s\n", presentPath)
	fmt.Fprintf(w, "\n--- Summary ---\n")
	fmt.Fprintf(w, "PAST conversations:    %d\n", cmp.Stats.PastTotal)
	fmt.Fprintf(w, "PRESENT conversations: %d\n", cmp.Stats.PresentTotal)
	fmt.Fprintf(w, "Common conversations:  %d\n", cmp.Stats.Common)
	fmt.Fprintf(w, "Missing in PRESENT:    %d\n", cmp.Stats.MissingConversations)

	if len(cmp.MissingInPresent) > 0 {
		fmt.Fprintf(w, "\n--- Missing Conversations (in PAST but not PRESENT) ---\n")
		for _, mc := range sortedByNodes(cmp.MissingInPresent) {
			fmt.Fprintf(w, "  [%4d nodes] %s\n", mc.Nodes, truncate(mc.Title, 50))
			fmt.Fprintf(w, "             ID: %s\n", mc.ConversationID)
		}
	}

	fmt.Fprintf(w, "\n%s\n", rule)
}

// WriteJSON persists the comparison to path as indented JSON. The
// missing listing is written in the same order the console report uses,
// so repeated runs over the same inputs produce identical files.
func WriteJSON(path string, cmp *forest.Comparison) error {
	ordered := *cmp
	ordered.MissingInPresent = sortedByNodes(cmp.MissingInPresent)

	data, err := json.MarshalIndent(&ordered, "", "  ")
	if err != nil {
		return fmt.Errorf("report: encode: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("report: write %s: %w", path, err)
	}
	return nil
}

// sortedByNodes returns a copy ordered by node count descending; equal
// counts keep their incoming relative order.
func sortedByNodes(in []forest.MissingConversation) []forest.MissingConversation {
	out := append([]forest.MissingConversation(nil), in...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Nodes > out[j].Nodes })
	return out
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
