package store

import (
	"context"

	"todod/internal/models"
)

// StoreInfo summarizes the database contents.
type StoreInfo struct {
	SchemaVersion int            `json:"schema_version"`
	TotalLists    int            `json:"total_lists"`
	TotalItems    int            `json:"total_items"`
	TotalTags     int            `json:"total_tags"`
	ItemCounts    map[string]int `json:"item_counts"`
}

type statusCount struct {
	Status string `db:"status"`
	Count  int    `db:"count"`
}

// StoreInfo reports the schema version, row totals and item counts per status.
func (s *Store) StoreInfo(ctx context.Context) (*StoreInfo, error) {
	info := &StoreInfo{ItemCounts: make(map[string]int)}
	for _, status := range models.ItemStatusStrings() {
		info.ItemCounts[status] = 0
	}

	if err := s.db.GetContext(ctx, &info.SchemaVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations"); err != nil {
		return nil, err
	}
	if err := s.db.GetContext(ctx, &info.TotalLists, "SELECT COUNT(*) FROM todo_lists"); err != nil {
		return nil, err
	}
	if err := s.db.GetContext(ctx, &info.TotalTags, "SELECT COUNT(*) FROM tags"); err != nil {
		return nil, err
	}

	var counts []statusCount
	if err := s.db.SelectContext(ctx, &counts, "SELECT status, COUNT(*) AS count FROM todo_items GROUP BY status"); err != nil {
		return nil, err
	}
	for _, c := range counts {
		info.ItemCounts[c.Status] = c.Count
		info.TotalItems += c.Count
	}
	return info, nil
}
