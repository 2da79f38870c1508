package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"todod/internal/models"
)

// CreateTag returns the tag with the given name, creating it if needed. The
// boolean reports whether a new row was inserted.
func (s *Store) CreateTag(ctx context.Context, name string) (*models.Tag, bool, error) {
	if strings.TrimSpace(name) == "" {
		return nil, false, fmt.Errorf("tag name is required")
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, false, err
	}
	defer func() { _ = tx.Rollback() }()

	tag, created, err := upsertTag(ctx, tx, name)
	if err != nil {
		return nil, false, err
	}
	if err := tx.Commit(); err != nil {
		return nil, false, err
	}
	return tag, created, nil
}

// ListTags returns every tag ordered by name.
func (s *Store) ListTags(ctx context.Context) ([]models.Tag, error) {
	tags := []models.Tag{}
	if err := s.db.SelectContext(ctx, &tags, "SELECT id, name FROM tags ORDER BY name"); err != nil {
		return nil, err
	}
	return tags, nil
}

// ListItemTags returns the tags linked to an item ordered by name.
func (s *Store) ListItemTags(ctx context.Context, itemID int64) ([]models.Tag, error) {
	tags := []models.Tag{}
	err := s.db.SelectContext(ctx, &tags, `
		SELECT t.id, t.name
		FROM tags t
		JOIN todo_item_tags tit ON tit.tag_id = t.id
		WHERE tit.item_id = ?
		ORDER BY t.name
	`, itemID)
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// AddTagToItem upserts the tag and links it to the item in one transaction.
// The boolean reports whether a new link was created.
func (s *Store) AddTagToItem(ctx context.Context, itemID int64, name string) (*models.Tag, bool, error) {
	if strings.TrimSpace(name) == "" {
		return nil, false, fmt.Errorf("tag name is required")
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, false, err
	}
	defer func() { _ = tx.Rollback() }()

	exists, err := rowExists(ctx, tx, "SELECT 1 FROM todo_items WHERE id = ? LIMIT 1", itemID)
	if err != nil {
		return nil, false, err
	}
	if !exists {
		return nil, false, fmt.Errorf("item %d: %w", itemID, ErrItemNotFound)
	}

	tag, _, err := upsertTag(ctx, tx, name)
	if err != nil {
		return nil, false, err
	}

	res, err := tx.ExecContext(ctx, "INSERT OR IGNORE INTO todo_item_tags (item_id, tag_id) VALUES (?, ?)", itemID, tag.ID)
	if err != nil {
		return nil, false, fmt.Errorf("link tag: %w", err)
	}
	linked, err := res.RowsAffected()
	if err != nil {
		return nil, false, err
	}
	if err := tx.Commit(); err != nil {
		return nil, false, err
	}
	return tag, linked > 0, nil
}

// RemoveTagFromItem unlinks the named tag from the item. It reports false when
// no such link existed. The tag itself is kept.
func (s *Store) RemoveTagFromItem(ctx context.Context, itemID int64, name string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM todo_item_tags
		WHERE item_id = ? AND tag_id = (SELECT id FROM tags WHERE name = ?)
	`, itemID, name)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func upsertTag(ctx context.Context, tx *sqlx.Tx, name string) (*models.Tag, bool, error) {
	res, err := tx.ExecContext(ctx, "INSERT INTO tags (name) VALUES (?) ON CONFLICT(name) DO NOTHING", name)
	if err != nil {
		return nil, false, fmt.Errorf("upsert tag: %w", err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return nil, false, err
	}

	var tag models.Tag
	if err := tx.GetContext(ctx, &tag, "SELECT id, name FROM tags WHERE name = ?", name); err != nil {
		return nil, false, fmt.Errorf("load tag %q: %w", name, err)
	}
	return &tag, inserted > 0, nil
}
