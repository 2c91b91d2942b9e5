// Package models defines the domain types for the conversation export schema.
package models

import "encoding/json"

// DefaultTitle is substituted when a conversation carries no title.
const DefaultTitle = "Untitled"

// Conversation is one tree in the export forest. The export format is
// loosely typed, so decoding applies fixed defaults: a missing title
// becomes DefaultTitle and a missing or non-numeric update_time becomes 0.
// The original record bytes are retained so that fields the engine does
// not interpret survive a merge unmodified.
type Conversation struct {
	ID         string
	Title      string
	UpdateTime float64
	Mapping    map[string]Node

	raw json.RawMessage
}

// convPayload mirrors the subset of the export schema the engine reads.
type convPayload struct {
	ID         string          `json:"conversation_id"`
	Title      *string         `json:"title"`
	UpdateTime any             `json:"update_time"`
	Mapping    map[string]Node `json:"mapping"`
}

// UnmarshalJSON decodes a conversation record, applying the documented
// defaults and keeping a copy of the raw payload.
func (c *Conversation) UnmarshalJSON(data []byte) error {
	var p convPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	c.ID = p.ID
	c.Title = DefaultTitle
	if p.Title != nil {
		c.Title = *p.Title
	}
	c.UpdateTime = 0
	if t, ok := p.UpdateTime.(float64); ok {
		c.UpdateTime = t
	}
	c.Mapping = p.Mapping
	c.raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON writes back the original record bytes when the
// conversation was decoded from an export; conversations constructed in
// code fall back to the interpreted fields.
func (c Conversation) MarshalJSON() ([]byte, error) {
	if c.raw != nil {
		return c.raw, nil
	}
	title := c.Title
	return json.Marshal(convPayload{
		ID:         c.ID,
		Title:      &title,
		UpdateTime: c.UpdateTime,
		Mapping:    c.Mapping,
	})
}

// NodeCount returns the number of nodes in the conversation's mapping.
// It is the completeness key used when reconciling snapshots and is
// always computed from the live mapping.
func (c *Conversation) NodeCount() int {
	return len(c.Mapping)
}

// Node is one vertex of a conversation tree. Parent/child edges are
// carried in fields the engine does not interpret.
type Node struct {
	Message *Message `json:"message"`
}

// Message is the payload attached to a node, when present.
type Message struct {
	Author  Author  `json:"author"`
	Content Content `json:"content"`
}

// Author identifies who produced a message.
type Author struct {
	Role string `json:"role"`
}

// Content is a message body. Beyond the interpreted fields the full
// decoded object is kept in Fields so reporting tools can show the
// shape of payload types they do not recognise.
type Content struct {
	ContentType string
	Parts       []any
	Fields      map[string]any
}

// UnmarshalJSON decodes a content object, tolerating arbitrary shapes.
func (c *Content) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		// Some export variants carry non-object content; treat it as opaque.
		return nil
	}
	c.Fields = m
	if s, ok := m["content_type"].(string); ok {
		c.ContentType = s
	}
	if p, ok := m["parts"].([]any); ok {
		c.Parts = p
	}
	return nil
}
