package api

import "todod/internal/models"

// ListCreateRequest is the payload for creating a list.
type ListCreateRequest struct {
	Title string `json:"title"`
}

// ItemCreateRequest is the payload for creating an item.
type ItemCreateRequest struct {
	ListID      int64          `json:"list_id"`
	Title       string         `json:"title"`
	Description *string        `json:"description,omitempty"`
	DueDate     *string        `json:"due_date,omitempty"`
	Priority    *string        `json:"priority,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// ItemUpdateRequest is a partial update. Absent and null fields are left
// unchanged; an empty description or due_date clears it.
type ItemUpdateRequest struct {
	Title       *string         `json:"title,omitempty"`
	Description *string         `json:"description,omitempty"`
	DueDate     *string         `json:"due_date,omitempty"`
	Status      *string         `json:"status,omitempty"`
	Priority    *string         `json:"priority,omitempty"`
	Metadata    *map[string]any `json:"metadata,omitempty"`
}

// TagCreateRequest is the payload for creating a tag.
type TagCreateRequest struct {
	Name string `json:"name"`
}

// ItemTagRequest links or unlinks a tag by name.
type ItemTagRequest struct {
	TodoItemID int64  `json:"todoItemId"`
	TagName    string `json:"tagName"`
}

// ItemTagResponse reports the outcome of an add or remove, with the item's tags afterwards.
type ItemTagResponse struct {
	ItemID  int64        `json:"item_id"`
	Tag     *models.Tag  `json:"tag,omitempty"`
	Changed bool         `json:"changed"`
	Tags    []models.Tag `json:"tags"`
}

// TagSyncRequest replaces an item's tag set.
type TagSyncRequest struct {
	Tags []models.Tag `json:"tags"`
}

// TagSyncFailure is a single tag operation that failed during sync.
type TagSyncFailure struct {
	Name  string `json:"name"`
	Op    string `json:"op"`
	Error string `json:"error"`
}

// TagSyncResponse reports a tag sync. Tags is always re-read from the store.
type TagSyncResponse struct {
	ItemID  int64            `json:"item_id"`
	Added   []models.Tag     `json:"added"`
	Removed []models.Tag     `json:"removed"`
	Failed  []TagSyncFailure `json:"failed"`
	Tags    []models.Tag     `json:"tags"`
}
