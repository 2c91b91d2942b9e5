package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/starford/eihwaz/internal/forest"
)

func sampleComparison() *forest.Comparison {
	return &forest.Comparison{
		MissingInPresent: []forest.MissingConversation{
			{ConversationID: "small", Title: "Small chat", Nodes: 2},
			{ConversationID: "big", Title: "Big chat", Nodes: 40},
		},
		MissingInPast: 3,
		Stats: forest.Stats{
			PastTotal:            10,
			PresentTotal:         11,
			Common:               8,
			MissingConversations: 2,
		},
	}
}

func TestRender_SummaryAndOrdering(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, sampleComparison(), "past.json", "present.json")
	out := buf.String()

	for _, want := range []string{
		"DIRECTED FOREST COMPARISON REPORT",
		"PAST file:    past.json",
		"PRESENT file: present.json",
		"PAST conversations:    10",
		"PRESENT conversations: 11",
		"Common conversations:  8",
		"Missing in PRESENT:    2",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}

	// Larger trees are listed first.
	if strings.Index(out, "Big chat") > strings.Index(out, "Small chat") {
		t.Errorf("missing listing not sorted by node count desc:\n%s", out)
	}
}

func TestRender_TruncatesLongTitles(t *testing.T) {
	cmp := &forest.Comparison{
		MissingInPresent: []forest.MissingConversation{
			{ConversationID: "x", Title: strings.Repeat("t", 80), Nodes: 1},
		},
		Stats: forest.Stats{PastTotal: 1, MissingConversations: 1},
	}
	var buf bytes.Buffer
	Render(&buf, cmp, "p", "q")
	if strings.Contains(buf.String(), strings.Repeat("t", 51)) {
		t.Error("title not truncated to 50 characters")
	}
	if !strings.Contains(buf.String(), strings.Repeat("t", 50)) {
		t.Error("truncated title missing entirely")
	}
}

func TestRender_NoMissingSection(t *testing.T) {
	cmp := &forest.Comparison{MissingInPresent: []forest.MissingConversation{}}
	var buf bytes.Buffer
	Render(&buf, cmp, "p", "q")
	if strings.Contains(buf.String(), "Missing Conversations (in PAST") {
		t.Error("missing section rendered for empty delta")
	}
}

func TestWriteJSON_Shape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	if err := WriteJSON(path, sampleComparison()); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var decoded struct {
		MissingInPresent []struct {
			ConversationID string `json:"conversation_id"`
			Title          string `json:"title"`
			Nodes          int    `json:"nodes"`
		} `json:"missing_in_present"`
		MissingInPast int `json:"missing_in_past"`
		Stats         struct {
			PastTotal            int `json:"past_total"`
			PresentTotal         int `json:"present_total"`
			Common               int `json:"common"`
			MissingConversations int `json:"missing_conversations"`
		} `json:"stats"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if decoded.MissingInPast != 3 || decoded.Stats.PastTotal != 10 {
		t.Errorf("decoded = %+v", decoded)
	}
	// Persisted order matches the console order: largest first.
	if decoded.MissingInPresent[0].ConversationID != "big" {
		t.Errorf("JSON listing not sorted: %+v", decoded.MissingInPresent)
	}
}
