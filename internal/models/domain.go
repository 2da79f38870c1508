package models

import (
	"fmt"
	"strings"
)

// ItemStatus defines allowed lifecycle states for todo items.
type ItemStatus string

const (
	StatusPending    ItemStatus = "pending"
	StatusInProgress ItemStatus = "in_progress"
	StatusCompleted  ItemStatus = "completed"
	StatusCancelled  ItemStatus = "cancelled"
)

// ItemPriority defines allowed urgency levels for todo items.
type ItemPriority string

const (
	PriorityLow    ItemPriority = "low"
	PriorityMedium ItemPriority = "medium"
	PriorityHigh   ItemPriority = "high"
	PriorityUrgent ItemPriority = "urgent"
)

const (
	DefaultStatus   = StatusPending
	DefaultPriority = PriorityLow
)

var itemStatuses = []ItemStatus{
	StatusPending,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
}

var itemPriorities = []ItemPriority{
	PriorityLow,
	PriorityMedium,
	PriorityHigh,
	PriorityUrgent,
}

var validItemStatuses = map[ItemStatus]struct{}{
	StatusPending:    {},
	StatusInProgress: {},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

var validItemPriorities = map[ItemPriority]struct{}{
	PriorityLow:    {},
	PriorityMedium: {},
	PriorityHigh:   {},
	PriorityUrgent: {},
}

func IsValidItemStatus(status ItemStatus) bool {
	_, ok := validItemStatuses[status]
	return ok
}

func IsValidItemPriority(priority ItemPriority) bool {
	_, ok := validItemPriorities[priority]
	return ok
}

func ParseItemStatus(raw string) (ItemStatus, error) {
	value := ItemStatus(strings.ToLower(strings.TrimSpace(raw)))
	if value == "" {
		return "", fmt.Errorf("status is required")
	}
	if !IsValidItemStatus(value) {
		return "", fmt.Errorf("invalid status: %s (expected one of %s)", value, strings.Join(ItemStatusStrings(), ", "))
	}
	return value, nil
}

func ParseItemPriority(raw string) (ItemPriority, error) {
	value := ItemPriority(strings.ToLower(strings.TrimSpace(raw)))
	if value == "" {
		return "", fmt.Errorf("priority is required")
	}
	if !IsValidItemPriority(value) {
		return "", fmt.Errorf("invalid priority: %s (expected one of %s)", value, strings.Join(ItemPriorityStrings(), ", "))
	}
	return value, nil
}

// ItemStatusStrings returns the statuses in lifecycle order.
func ItemStatusStrings() []string {
	out := make([]string, 0, len(itemStatuses))
	for _, value := range itemStatuses {
		out = append(out, string(value))
	}
	return out
}

// ItemPriorityStrings returns the priorities from least to most urgent.
func ItemPriorityStrings() []string {
	out := make([]string, 0, len(itemPriorities))
	for _, value := range itemPriorities {
		out = append(out, string(value))
	}
	return out
}
