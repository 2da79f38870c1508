package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// TodoList is a named grouping of todo items.
type TodoList struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// TodoItem is a single todo entry. It belongs to exactly one list.
type TodoItem struct {
	ID              int64        `json:"id"`
	ListID          int64        `json:"list_id"`
	Title           string       `json:"title"`
	Description     *string      `json:"description"`
	DueDate         *Date        `json:"due_date"`
	Status          ItemStatus   `json:"status"`
	Priority        ItemPriority `json:"priority"`
	Metadata        Metadata     `json:"metadata"`
	FullDescription *string      `json:"full_description"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// Tag is a named label shared across items. Names are unique and case-sensitive.
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Metadata is an arbitrary JSON object attached to an item.
type Metadata map[string]any

// ParseMetadata decodes a stored JSON object. Empty input yields an empty object.
func ParseMetadata(raw string) (Metadata, error) {
	if raw == "" {
		return Metadata{}, nil
	}
	var out Metadata
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	if out == nil {
		out = Metadata{}
	}
	return out, nil
}

// Encode returns the JSON text stored for m.
func (m Metadata) Encode() (string, error) {
	if m == nil {
		return "{}", nil
	}
	data, err := json.Marshal(map[string]any(m))
	if err != nil {
		return "", fmt.Errorf("encode metadata: %w", err)
	}
	return string(data), nil
}

func (m Metadata) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]any(m))
}
