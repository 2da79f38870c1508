package store

import "errors"

var (
	// ErrListNotFound is returned when an operation requires an existing list.
	ErrListNotFound = errors.New("todo list not found")
	// ErrItemNotFound is returned when an operation requires an existing item.
	ErrItemNotFound = errors.New("todo item not found")
	// ErrListNotEmpty is returned when deleting a list that still owns items without cascade.
	ErrListNotEmpty = errors.New("todo list still has items")
)
