package store

import (
	"database/sql"
	"fmt"
	"time"

	"todod/internal/models"
)

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

const listColumns = "id, title, created_at"

const itemColumns = "id, list_id, title, description, due_date, status, priority, metadata, full_description, created_at, updated_at"

type listRow struct {
	ID        int64  `db:"id"`
	Title     string `db:"title"`
	CreatedAt string `db:"created_at"`
}

func (r listRow) toModel() (models.TodoList, error) {
	createdAt, err := parseTime(r.CreatedAt)
	if err != nil {
		return models.TodoList{}, fmt.Errorf("list %d created_at: %w", r.ID, err)
	}
	return models.TodoList{ID: r.ID, Title: r.Title, CreatedAt: createdAt}, nil
}

type itemRow struct {
	ID              int64          `db:"id"`
	ListID          int64          `db:"list_id"`
	Title           string         `db:"title"`
	Description     sql.NullString `db:"description"`
	DueDate         sql.NullString `db:"due_date"`
	Status          string         `db:"status"`
	Priority        string         `db:"priority"`
	Metadata        string         `db:"metadata"`
	FullDescription sql.NullString `db:"full_description"`
	CreatedAt       string         `db:"created_at"`
	UpdatedAt       string         `db:"updated_at"`
}

func (r itemRow) toModel() (models.TodoItem, error) {
	item := models.TodoItem{
		ID:              r.ID,
		ListID:          r.ListID,
		Title:           r.Title,
		Description:     stringPtr(r.Description),
		Status:          models.ItemStatus(r.Status),
		Priority:        models.ItemPriority(r.Priority),
		FullDescription: stringPtr(r.FullDescription),
	}

	if r.DueDate.Valid {
		due, err := models.ParseDate(r.DueDate.String)
		if err != nil {
			return models.TodoItem{}, fmt.Errorf("item %d due_date: %w", r.ID, err)
		}
		item.DueDate = &due
	}

	metadata, err := models.ParseMetadata(r.Metadata)
	if err != nil {
		return models.TodoItem{}, fmt.Errorf("item %d: %w", r.ID, err)
	}
	item.Metadata = metadata

	if item.CreatedAt, err = parseTime(r.CreatedAt); err != nil {
		return models.TodoItem{}, fmt.Errorf("item %d created_at: %w", r.ID, err)
	}
	if item.UpdatedAt, err = parseTime(r.UpdatedAt); err != nil {
		return models.TodoItem{}, fmt.Errorf("item %d updated_at: %w", r.ID, err)
	}
	return item, nil
}

func itemsFromRows(rows []itemRow) ([]models.TodoItem, error) {
	items := make([]models.TodoItem, 0, len(rows))
	for _, row := range rows {
		item, err := row.toModel()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func stringPtr(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	out := value.String
	return &out
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse(timeLayout, value)
}
