package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"todod/internal/models"
)

// CreateList inserts a new list.
func (s *Store) CreateList(ctx context.Context, title string) (*models.TodoList, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("title is required")
	}

	now := s.timestamp()
	res, err := s.db.ExecContext(ctx, "INSERT INTO todo_lists (title, created_at) VALUES (?, ?)", title, formatTime(now))
	if err != nil {
		return nil, fmt.Errorf("insert list: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &models.TodoList{ID: id, Title: title, CreatedAt: now}, nil
}

// ListLists returns every list, newest first.
func (s *Store) ListLists(ctx context.Context) ([]models.TodoList, error) {
	var rows []listRow
	if err := s.db.SelectContext(ctx, &rows, "SELECT "+listColumns+" FROM todo_lists ORDER BY created_at DESC, id DESC"); err != nil {
		return nil, err
	}

	lists := make([]models.TodoList, 0, len(rows))
	for _, row := range rows {
		list, err := row.toModel()
		if err != nil {
			return nil, err
		}
		lists = append(lists, list)
	}
	return lists, nil
}

// GetList returns a list by id, or nil when it does not exist.
func (s *Store) GetList(ctx context.Context, id int64) (*models.TodoList, error) {
	var row listRow
	err := s.db.GetContext(ctx, &row, "SELECT "+listColumns+" FROM todo_lists WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	list, err := row.toModel()
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// DeleteList removes a list. A list that still owns items is only removed when
// cascade is set, in which case its items and their tag links go with it.
func (s *Store) DeleteList(ctx context.Context, id int64, cascade bool) (bool, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	exists, err := rowExists(ctx, tx, "SELECT 1 FROM todo_lists WHERE id = ? LIMIT 1", id)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}

	var itemCount int
	if err := tx.GetContext(ctx, &itemCount, "SELECT COUNT(*) FROM todo_items WHERE list_id = ?", id); err != nil {
		return false, err
	}
	if itemCount > 0 {
		if !cascade {
			return false, fmt.Errorf("list %d has %d items: %w", id, itemCount, ErrListNotEmpty)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM todo_items WHERE list_id = ?", id); err != nil {
			return false, fmt.Errorf("delete list items: %w", err)
		}
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM todo_lists WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("delete list: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	return affected > 0, nil
}
