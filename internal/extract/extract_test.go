package extract

import (
	"encoding/json"
	"testing"

	"github.com/starford/eihwaz/internal/models"
	"github.com/starford/eihwaz/internal/snapshot"
)

func conv(t *testing.T, raw string) *models.Conversation {
	t.Helper()
	var c models.Conversation
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		t.Fatalf("bad test record: %v", err)
	}
	return &c
}

func TestMessages_TextOnly(t *testing.T) {
	c := conv(t, `{"conversation_id":"a","title":"Chat","mapping":{
		"n1":{"message":{"author":{"role":"user"},"content":{"content_type":"text","parts":["hello","world"]}}},
		"n2":{"message":{"content":{"content_type":"code","parts":["print(1)"]}}},
		"n3":{}
	}}`)

	rows := Messages(c)
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
	r := rows[0]
	if r.NodeID != "n1" || r.ConvID != "a" || r.Title != "Chat" {
		t.Errorf("row = %+v", r)
	}
	if r.Text != "hello world" {
		t.Errorf("text = %q, want parts joined with spaces", r.Text)
	}
	if r.Role != "user" {
		t.Errorf("role = %q", r.Role)
	}
}

func TestMessages_SkipsBlankAndNullParts(t *testing.T) {
	c := conv(t, `{"conversation_id":"a","mapping":{
		"n1":{"message":{"content":{"content_type":"text","parts":["", null, "  "]}}},
		"n2":{"message":{"content":{"content_type":"text","parts":[]}}}
	}}`)

	if rows := Messages(c); len(rows) != 0 {
		t.Errorf("blank messages should be skipped, got %+v", rows)
	}
}

func TestMessages_DefaultRole(t *testing.T) {
	c := conv(t, `{"conversation_id":"a","mapping":{
		"n1":{"message":{"content":{"content_type":"text","parts":["hi"]}}}
	}}`)

	rows := Messages(c)
	if len(rows) != 1 || rows[0].Role != "unknown" {
		t.Errorf("rows = %+v, want role unknown", rows)
	}
}

func TestFromSnapshot(t *testing.T) {
	snap := snapshot.Snapshot{
		"a": conv(t, `{"conversation_id":"a","mapping":{"n1":{"message":{"content":{"content_type":"text","parts":["one"]}}}}}`),
		"b": conv(t, `{"conversation_id":"b","mapping":{"n1":{"message":{"content":{"content_type":"text","parts":["two"]}}}}}`),
	}

	rows := FromSnapshot(snap)
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
}
