package server

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"todod/internal/api"
	"todod/internal/models"
	"todod/internal/store"
)

// TodoService validates requests and maps them onto the store.
type TodoService struct {
	store  store.TodoStore
	logger *slog.Logger
}

// NewTodoService constructs a TodoService.
func NewTodoService(st store.TodoStore, logger *slog.Logger) *TodoService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TodoService{store: st, logger: logger}
}

// CreateList creates a list.
func (s *TodoService) CreateList(ctx context.Context, req api.ListCreateRequest) (models.TodoList, error) {
	title, err := normalizeTitle(req.Title)
	if err != nil {
		return models.TodoList{}, err
	}
	list, err := s.store.CreateList(ctx, title)
	if err != nil {
		return models.TodoList{}, classifyStoreError(err)
	}
	return *list, nil
}

// ListLists returns all lists, newest first.
func (s *TodoService) ListLists(ctx context.Context) ([]models.TodoList, error) {
	lists, err := s.store.ListLists(ctx)
	if err != nil {
		return nil, classifyStoreError(err)
	}
	return lists, nil
}

// GetList returns one list.
func (s *TodoService) GetList(ctx context.Context, id int64) (models.TodoList, error) {
	list, err := s.store.GetList(ctx, id)
	if err != nil {
		return models.TodoList{}, classifyStoreError(err)
	}
	if list == nil {
		return models.TodoList{}, listNotFound(id)
	}
	return *list, nil
}

// DeleteList removes a list. Without cascade a non-empty list is a conflict.
func (s *TodoService) DeleteList(ctx context.Context, id int64, cascade bool) error {
	removed, err := s.store.DeleteList(ctx, id, cascade)
	if err != nil {
		return classifyStoreError(err)
	}
	if !removed {
		return listNotFound(id)
	}
	return nil
}

// CreateItem creates an item in an existing list.
func (s *TodoService) CreateItem(ctx context.Context, req api.ItemCreateRequest) (models.TodoItem, error) {
	if req.ListID <= 0 {
		return models.TodoItem{}, badRequestCode(fmt.Errorf("list_id is required"), ErrCodeMissingRequired)
	}
	title, err := normalizeTitle(req.Title)
	if err != nil {
		return models.TodoItem{}, err
	}

	input := store.ItemCreate{
		ListID:      req.ListID,
		Title:       title,
		Description: valueOrEmpty(req.Description),
		Priority:    models.DefaultPriority,
		Metadata:    models.Metadata(req.Metadata),
	}
	if due := valueOrEmpty(req.DueDate); due != "" {
		date, err := normalizeDueDate(due)
		if err != nil {
			return models.TodoItem{}, err
		}
		input.DueDate = &date
	}
	if raw := valueOrEmpty(req.Priority); raw != "" {
		if input.Priority, err = normalizePriority(raw); err != nil {
			return models.TodoItem{}, err
		}
	}

	item, err := s.store.CreateItem(ctx, input)
	if err != nil {
		return models.TodoItem{}, classifyStoreError(err)
	}
	return *item, nil
}

// GetItem returns one item.
func (s *TodoService) GetItem(ctx context.Context, id int64) (models.TodoItem, error) {
	item, err := s.store.GetItem(ctx, id)
	if err != nil {
		return models.TodoItem{}, classifyStoreError(err)
	}
	if item == nil {
		return models.TodoItem{}, itemNotFound(id)
	}
	return *item, nil
}

// ListItems returns items matching every set criterion of filter.
func (s *TodoService) ListItems(ctx context.Context, filter store.ItemFilter) ([]models.TodoItem, error) {
	items, err := s.store.ListItems(ctx, filter)
	if err != nil {
		return nil, classifyStoreError(err)
	}
	return items, nil
}

// SearchItems matches query against title, description and full_description.
func (s *TodoService) SearchItems(ctx context.Context, query string) ([]models.TodoItem, error) {
	query, err := normalizeSearchQuery(query)
	if err != nil {
		return nil, err
	}
	return s.ListItems(ctx, store.ItemFilter{Query: query})
}

func (s *TodoService) ListItemsByStatus(ctx context.Context, raw string) ([]models.TodoItem, error) {
	status, err := normalizeStatus(raw)
	if err != nil {
		return nil, err
	}
	return s.ListItems(ctx, store.ItemFilter{Status: string(status)})
}

func (s *TodoService) ListItemsByPriority(ctx context.Context, raw string) ([]models.TodoItem, error) {
	priority, err := normalizePriority(raw)
	if err != nil {
		return nil, err
	}
	return s.ListItems(ctx, store.ItemFilter{Priority: string(priority)})
}

// ListItemsByTag returns the items carrying the tag. An unknown tag yields no items.
func (s *TodoService) ListItemsByTag(ctx context.Context, raw string) ([]models.TodoItem, error) {
	name, err := normalizeTagName(raw)
	if err != nil {
		return nil, err
	}
	return s.ListItems(ctx, store.ItemFilter{TagName: name})
}

// UpdateItem applies a partial update and returns the stored item.
func (s *TodoService) UpdateItem(ctx context.Context, id int64, req api.ItemUpdateRequest) (models.TodoItem, error) {
	update, err := s.itemUpdate(req)
	if err != nil {
		return models.TodoItem{}, err
	}
	item, err := s.store.UpdateItem(ctx, id, update)
	if err != nil {
		return models.TodoItem{}, classifyStoreError(err)
	}
	if item == nil {
		return models.TodoItem{}, itemNotFound(id)
	}
	return *item, nil
}

// DeleteItem removes an item and its tag links.
func (s *TodoService) DeleteItem(ctx context.Context, id int64) error {
	removed, err := s.store.DeleteItem(ctx, id)
	if err != nil {
		return classifyStoreError(err)
	}
	if !removed {
		return itemNotFound(id)
	}
	return nil
}

// Info reports database totals.
func (s *TodoService) Info(ctx context.Context) (api.InfoResponse, error) {
	info, err := s.store.StoreInfo(ctx)
	if err != nil {
		return api.InfoResponse{}, classifyStoreError(err)
	}
	return api.InfoResponse{
		SchemaVersion: info.SchemaVersion,
		TotalLists:    info.TotalLists,
		TotalItems:    info.TotalItems,
		TotalTags:     info.TotalTags,
		ItemCounts:    info.ItemCounts,
	}, nil
}

func (s *TodoService) itemUpdate(req api.ItemUpdateRequest) (store.ItemUpdate, error) {
	var update store.ItemUpdate

	if req.Title != nil {
		title, err := normalizeTitle(*req.Title)
		if err != nil {
			return update, err
		}
		update.Title = &title
	}
	if req.Description != nil {
		description := *req.Description
		update.Description = &description
	}
	if req.DueDate != nil {
		due := strings.TrimSpace(*req.DueDate)
		if due != "" {
			date, err := normalizeDueDate(due)
			if err != nil {
				return update, err
			}
			due = date.String()
		}
		update.DueDate = &due
	}
	if req.Status != nil {
		status, err := normalizeStatus(*req.Status)
		if err != nil {
			return update, err
		}
		update.Status = &status
	}
	if req.Priority != nil {
		priority, err := normalizePriority(*req.Priority)
		if err != nil {
			return update, err
		}
		update.Priority = &priority
	}
	if req.Metadata != nil {
		metadata := models.Metadata(*req.Metadata)
		if metadata == nil {
			metadata = models.Metadata{}
		}
		update.Metadata = &metadata
	}
	return update, nil
}

func listNotFound(id int64) error {
	return notFoundCode(fmt.Errorf("todo list %d not found", id), ErrCodeListNotFound)
}

func itemNotFound(id int64) error {
	return notFoundCode(fmt.Errorf("todo item %d not found", id), ErrCodeItemNotFound)
}

func valueOrEmpty(ptr *string) string {
	if ptr == nil {
		return ""
	}
	return strings.TrimSpace(*ptr)
}
