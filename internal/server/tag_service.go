package server

import (
	"context"
	"fmt"

	"todod/internal/api"
	"todod/internal/models"
)

const (
	tagSyncOpAdd    = "add"
	tagSyncOpRemove = "remove"
)

// CreateTag upserts a tag by name. The boolean reports whether it was new.
func (s *TodoService) CreateTag(ctx context.Context, req api.TagCreateRequest) (models.Tag, bool, error) {
	name, err := normalizeTagName(req.Name)
	if err != nil {
		return models.Tag{}, false, err
	}
	tag, created, err := s.store.CreateTag(ctx, name)
	if err != nil {
		return models.Tag{}, false, classifyStoreError(err)
	}
	return *tag, created, nil
}

// ListTags returns all tags ordered by name.
func (s *TodoService) ListTags(ctx context.Context) ([]models.Tag, error) {
	tags, err := s.store.ListTags(ctx)
	if err != nil {
		return nil, classifyStoreError(err)
	}
	return tags, nil
}

// ListItemTags returns an existing item's tags ordered by name.
func (s *TodoService) ListItemTags(ctx context.Context, itemID int64) ([]models.Tag, error) {
	if _, err := s.GetItem(ctx, itemID); err != nil {
		return nil, err
	}
	return s.itemTags(ctx, itemID)
}

// AddTagToItem links the named tag to the item, creating the tag if needed.
func (s *TodoService) AddTagToItem(ctx context.Context, req api.ItemTagRequest) (api.ItemTagResponse, error) {
	itemID, name, err := normalizeItemTagRequest(req)
	if err != nil {
		return api.ItemTagResponse{}, err
	}

	tag, linked, err := s.store.AddTagToItem(ctx, itemID, name)
	if err != nil {
		return api.ItemTagResponse{}, classifyStoreError(err)
	}
	tags, err := s.itemTags(ctx, itemID)
	if err != nil {
		return api.ItemTagResponse{}, err
	}
	return api.ItemTagResponse{ItemID: itemID, Tag: tag, Changed: linked, Tags: tags}, nil
}

// RemoveTagFromItem unlinks the named tag. A missing link is reported with
// Changed=false rather than an error.
func (s *TodoService) RemoveTagFromItem(ctx context.Context, req api.ItemTagRequest) (api.ItemTagResponse, error) {
	itemID, name, err := normalizeItemTagRequest(req)
	if err != nil {
		return api.ItemTagResponse{}, err
	}

	removed, err := s.store.RemoveTagFromItem(ctx, itemID, name)
	if err != nil {
		return api.ItemTagResponse{}, classifyStoreError(err)
	}
	if !removed {
		s.logger.Warn("tag link not found", "item_id", itemID, "tag", name)
	}
	tags, err := s.itemTags(ctx, itemID)
	if err != nil {
		return api.ItemTagResponse{}, err
	}
	return api.ItemTagResponse{ItemID: itemID, Changed: removed, Tags: tags}, nil
}

// SyncItemTags makes the item's tags equal to desired. Removals and additions
// are applied one by one and a failure does not stop the rest; the final tag
// set is always re-read.
func (s *TodoService) SyncItemTags(ctx context.Context, itemID int64, req api.TagSyncRequest) (api.TagSyncResponse, error) {
	if _, err := s.GetItem(ctx, itemID); err != nil {
		return api.TagSyncResponse{}, err
	}
	current, err := s.itemTags(ctx, itemID)
	if err != nil {
		return api.TagSyncResponse{}, err
	}

	toAdd, toRemove := models.ReconcileTags(current, req.Tags)
	resp := api.TagSyncResponse{
		ItemID:  itemID,
		Added:   []models.Tag{},
		Removed: []models.Tag{},
		Failed:  []api.TagSyncFailure{},
	}

	for _, tag := range toRemove {
		removed, err := s.store.RemoveTagFromItem(ctx, itemID, tag.Name)
		if err != nil {
			s.logger.Error("sync remove tag", "item_id", itemID, "tag", tag.Name, "error", err)
			resp.Failed = append(resp.Failed, api.TagSyncFailure{Name: tag.Name, Op: tagSyncOpRemove, Error: "internal error"})
			continue
		}
		if removed {
			resp.Removed = append(resp.Removed, tag)
		}
	}

	for _, tag := range toAdd {
		name, err := normalizeTagName(tag.Name)
		if err != nil {
			resp.Failed = append(resp.Failed, api.TagSyncFailure{Name: tag.Name, Op: tagSyncOpAdd, Error: err.Error()})
			continue
		}
		added, _, err := s.store.AddTagToItem(ctx, itemID, name)
		if err != nil {
			s.logger.Error("sync add tag", "item_id", itemID, "tag", name, "error", err)
			resp.Failed = append(resp.Failed, api.TagSyncFailure{Name: name, Op: tagSyncOpAdd, Error: "internal error"})
			continue
		}
		resp.Added = append(resp.Added, *added)
	}

	if resp.Tags, err = s.itemTags(ctx, itemID); err != nil {
		return api.TagSyncResponse{}, err
	}
	return resp, nil
}

func (s *TodoService) itemTags(ctx context.Context, itemID int64) ([]models.Tag, error) {
	tags, err := s.store.ListItemTags(ctx, itemID)
	if err != nil {
		return nil, classifyStoreError(err)
	}
	return tags, nil
}

func normalizeItemTagRequest(req api.ItemTagRequest) (int64, string, error) {
	if req.TodoItemID <= 0 {
		return 0, "", badRequestCode(fmt.Errorf("todoItemId is required"), ErrCodeMissingRequired)
	}
	name, err := normalizeTagName(req.TagName)
	if err != nil {
		return 0, "", err
	}
	return req.TodoItemID, name, nil
}
