package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"todod/internal/models"
)

// ItemCreate holds the fields accepted when creating an item. Empty Description
// and nil or zero DueDate are stored as NULL; zero Priority and nil Metadata get defaults.
type ItemCreate struct {
	ListID      int64
	Title       string
	Description string
	DueDate     *models.Date
	Priority    models.ItemPriority
	Metadata    models.Metadata
}

// ItemUpdate is a partial update. Nil fields are left untouched. An empty
// Description or DueDate clears the column.
type ItemUpdate struct {
	Title       *string
	Description *string
	DueDate     *string
	Status      *models.ItemStatus
	Priority    *models.ItemPriority
	Metadata    *models.Metadata
}

// IsEmpty reports whether the update sets no field.
func (u ItemUpdate) IsEmpty() bool {
	return u.Title == nil &&
		u.Description == nil &&
		u.DueDate == nil &&
		u.Status == nil &&
		u.Priority == nil &&
		u.Metadata == nil
}

// CreateItem inserts an item into an existing list.
func (s *Store) CreateItem(ctx context.Context, input ItemCreate) (*models.TodoItem, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("title is required")
	}
	priority := input.Priority
	if priority == "" {
		priority = models.DefaultPriority
	}
	metadata, err := input.Metadata.Encode()
	if err != nil {
		return nil, err
	}
	var dueDate any
	if input.DueDate != nil && !input.DueDate.IsZero() {
		dueDate = input.DueDate.String()
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	exists, err := rowExists(ctx, tx, "SELECT 1 FROM todo_lists WHERE id = ? LIMIT 1", input.ListID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("list %d: %w", input.ListID, ErrListNotFound)
	}

	now := formatTime(s.timestamp())
	res, err := tx.ExecContext(ctx, `
		INSERT INTO todo_items (list_id, title, description, due_date, status, priority, metadata, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		input.ListID,
		input.Title,
		nullIfEmpty(input.Description),
		dueDate,
		models.DefaultStatus,
		priority,
		metadata,
		now,
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	item, err := getItem(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return item, nil
}

// GetItem returns an item by id, or nil when it does not exist.
func (s *Store) GetItem(ctx context.Context, id int64) (*models.TodoItem, error) {
	return getItem(ctx, s.db, id)
}

// ListItems returns items matching every set criterion of filter, newest first.
func (s *Store) ListItems(ctx context.Context, filter ItemFilter) ([]models.TodoItem, error) {
	query, args := buildItemQuery(filter)
	var rows []itemRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	return itemsFromRows(rows)
}

// UpdateItem applies a partial update and returns the stored row. It returns nil
// when the item does not exist. An empty update returns the row unchanged.
func (s *Store) UpdateItem(ctx context.Context, id int64, update ItemUpdate) (*models.TodoItem, error) {
	if update.IsEmpty() {
		return s.GetItem(ctx, id)
	}

	set, args, err := update.assignments()
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	current, err := getItem(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, nil
	}

	updatedAt := s.timestamp()
	if updatedAt.Before(current.CreatedAt) {
		updatedAt = current.CreatedAt
	}
	set = append(set, "updated_at = ?")
	args = append(args, formatTime(updatedAt), id)

	query := fmt.Sprintf("UPDATE todo_items SET %s WHERE id = ?", strings.Join(set, ", "))
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}

	item, err := getItem(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem removes an item and, through the foreign key, its tag links.
func (s *Store) DeleteItem(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM todo_items WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// assignments builds the SET clause from the fixed set of mutable columns.
func (u ItemUpdate) assignments() ([]string, []any, error) {
	set := []string{}
	args := []any{}

	if u.Title != nil {
		if strings.TrimSpace(*u.Title) == "" {
			return nil, nil, fmt.Errorf("title cannot be empty")
		}
		set = append(set, "title = ?")
		args = append(args, *u.Title)
	}
	if u.Description != nil {
		set = append(set, "description = ?")
		args = append(args, nullIfEmpty(*u.Description))
	}
	if u.DueDate != nil {
		if *u.DueDate != "" {
			if _, err := models.ParseDate(*u.DueDate); err != nil {
				return nil, nil, err
			}
		}
		set = append(set, "due_date = ?")
		args = append(args, nullIfEmpty(*u.DueDate))
	}
	if u.Status != nil {
		set = append(set, "status = ?")
		args = append(args, string(*u.Status))
	}
	if u.Priority != nil {
		set = append(set, "priority = ?")
		args = append(args, string(*u.Priority))
	}
	if u.Metadata != nil {
		encoded, err := u.Metadata.Encode()
		if err != nil {
			return nil, nil, err
		}
		set = append(set, "metadata = ?")
		args = append(args, encoded)
	}
	return set, args, nil
}

func getItem(ctx context.Context, q sqlx.QueryerContext, id int64) (*models.TodoItem, error) {
	var row itemRow
	err := sqlx.GetContext(ctx, q, &row, "SELECT "+itemColumns+" FROM todo_items WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	item, err := row.toModel()
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func rowExists(ctx context.Context, q sqlx.QueryerContext, query string, args ...any) (bool, error) {
	var exists int
	err := sqlx.GetContext(ctx, q, &exists, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
