package store

import (
	"context"

	"todod/internal/models"
)

// ListStore persists todo lists.
type ListStore interface {
	CreateList(ctx context.Context, title string) (*models.TodoList, error)
	ListLists(ctx context.Context) ([]models.TodoList, error)
	GetList(ctx context.Context, id int64) (*models.TodoList, error)
	DeleteList(ctx context.Context, id int64, cascade bool) (bool, error)
}

// ItemStore persists todo items.
type ItemStore interface {
	CreateItem(ctx context.Context, input ItemCreate) (*models.TodoItem, error)
	GetItem(ctx context.Context, id int64) (*models.TodoItem, error)
	ListItems(ctx context.Context, filter ItemFilter) ([]models.TodoItem, error)
	UpdateItem(ctx context.Context, id int64, update ItemUpdate) (*models.TodoItem, error)
	DeleteItem(ctx context.Context, id int64) (bool, error)
}

// TagStore persists tags and their links to items.
type TagStore interface {
	CreateTag(ctx context.Context, name string) (*models.Tag, bool, error)
	ListTags(ctx context.Context) ([]models.Tag, error)
	ListItemTags(ctx context.Context, itemID int64) ([]models.Tag, error)
	AddTagToItem(ctx context.Context, itemID int64, name string) (*models.Tag, bool, error)
	RemoveTagFromItem(ctx context.Context, itemID int64, name string) (bool, error)
}

// TodoStore abstracts todo storage backends.
type TodoStore interface {
	ListStore
	ItemStore
	TagStore
	StoreInfo(ctx context.Context) (*StoreInfo, error)
}

var _ TodoStore = (*Store)(nil)
