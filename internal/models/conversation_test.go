package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func decode(t *testing.T, raw string) *Conversation {
	t.Helper()
	var c Conversation
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return &c
}

func TestUnmarshal_Defaults(t *testing.T) {
	c := decode(t, `{"conversation_id":"x"}`)
	if c.ID != "x" {
		t.Errorf("ID = %q, want %q", c.ID, "x")
	}
	if c.Title != DefaultTitle {
		t.Errorf("Title = %q, want %q", c.Title, DefaultTitle)
	}
	if c.UpdateTime != 0 {
		t.Errorf("UpdateTime = %v, want 0", c.UpdateTime)
	}
	if c.NodeCount() != 0 {
		t.Errorf("NodeCount = %d, want 0", c.NodeCount())
	}
}

func TestUnmarshal_WrongTypeUpdateTime(t *testing.T) {
	c := decode(t, `{"conversation_id":"x","update_time":"yesterday"}`)
	if c.UpdateTime != 0 {
		t.Errorf("UpdateTime = %v, want 0 for non-numeric value", c.UpdateTime)
	}
}

func TestUnmarshal_PopulatedFields(t *testing.T) {
	c := decode(t, `{"conversation_id":"x","title":"Trip notes","update_time":1700000000.5,"mapping":{"a":{},"b":{}}}`)
	if c.Title != "Trip notes" {
		t.Errorf("Title = %q", c.Title)
	}
	if c.UpdateTime != 1700000000.5 {
		t.Errorf("UpdateTime = %v", c.UpdateTime)
	}
	if c.NodeCount() != 2 {
		t.Errorf("NodeCount = %d, want 2", c.NodeCount())
	}
}

func TestMarshal_RawPassthrough(t *testing.T) {
	raw := `{"conversation_id":"x","custom_field":{"nested":[1,2,3]},"mapping":{"a":{}}}`
	c := decode(t, raw)

	out, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != raw {
		t.Errorf("marshal rewrote the record:\n got %s\nwant %s", out, raw)
	}
}

func TestMarshal_ConstructedConversation(t *testing.T) {
	c := &Conversation{ID: "y", Title: "Built", UpdateTime: 7}
	out, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(out), `"conversation_id":"y"`) {
		t.Errorf("output missing conversation_id: %s", out)
	}
}

func TestContent_NonObjectTolerated(t *testing.T) {
	c := decode(t, `{"conversation_id":"x","mapping":{"a":{"message":{"content":"plain string"}}}}`)
	node := c.Mapping["a"]
	if node.Message == nil {
		t.Fatal("message should decode")
	}
	if node.Message.Content.ContentType != "" {
		t.Errorf("ContentType = %q, want empty for non-object content", node.Message.Content.ContentType)
	}
}
