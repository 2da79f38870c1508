package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"todod/internal/api"
	"todod/internal/config"
	"todod/internal/models"
)

func newItemCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage todo items",
	}

	cmd.AddCommand(
		newItemCreateCmd(cfg, jsonOutput),
		newItemLsCmd(cfg, jsonOutput),
		newItemShowCmd(cfg, jsonOutput),
		newItemUpdateCmd(cfg, jsonOutput),
		newItemRmCmd(cfg),
		newItemSearchCmd(cfg, jsonOutput),
	)
	return cmd
}

type itemCreateOptions struct {
	listID      int64
	description string
	dueDate     string
	priority    string
	tags        []string
	metaKV      []string
	metaJSON    string
	filePath    string
}

func newItemCreateCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	opts := &itemCreateOptions{}
	cmd := &cobra.Command{
		Use:   "create <title>",
		Short: "Create an item, or one item per bullet of a markdown file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				if opts.filePath != "" {
					return runItemCreateFromFile(cmd.Context(), client, opts, jsonOutput)
				}
				return runItemCreate(cmd, client, opts, jsonOutput, args)
			})
		},
	}

	cmd.Flags().Int64VarP(&opts.listID, "list", "l", 0, "list id")
	cmd.Flags().StringVarP(&opts.description, "description", "d", "", "description")
	cmd.Flags().StringVar(&opts.dueDate, "due", "", "due date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&opts.priority, "priority", "p", "", "priority (low, medium, high, urgent)")
	cmd.Flags().StringSliceVarP(&opts.tags, "tag", "t", nil, "tag to attach (repeatable)")
	cmd.Flags().StringSliceVar(&opts.metaKV, "meta", nil, "metadata key=value (repeatable)")
	cmd.Flags().StringVar(&opts.metaJSON, "meta-json", "", "metadata as a JSON object")
	cmd.Flags().StringVarP(&opts.filePath, "file", "f", "", "markdown file with one item per bullet")
	return cmd
}

func runItemCreate(cmd *cobra.Command, client *api.Client, opts *itemCreateOptions, jsonOutput *bool, args []string) error {
	if len(args) == 0 {
		return errors.New("title is required")
	}
	if opts.listID <= 0 {
		return errors.New("--list is required")
	}

	req := api.ItemCreateRequest{
		ListID: opts.listID,
		Title:  strings.Join(args, " "),
	}
	if cmd.Flags().Changed("description") {
		req.Description = &opts.description
	}
	if cmd.Flags().Changed("due") {
		req.DueDate = &opts.dueDate
	}
	if cmd.Flags().Changed("priority") {
		req.Priority = &opts.priority
	}
	if len(opts.metaKV) > 0 || opts.metaJSON != "" {
		meta, err := parseMetadataFlags(opts.metaKV, opts.metaJSON)
		if err != nil {
			return err
		}
		req.Metadata = meta
	}

	item, err := client.CreateItem(cmd.Context(), req)
	if err != nil {
		return err
	}
	if err := attachTags(cmd.Context(), client, item.ID, opts.tags); err != nil {
		return err
	}
	if *jsonOutput {
		return writeJSON(item)
	}
	return writePlain("%d\n", item.ID)
}

func runItemCreateFromFile(ctx context.Context, client *api.Client, opts *itemCreateOptions, jsonOutput *bool) error {
	data, err := os.ReadFile(opts.filePath)
	if err != nil {
		return err
	}

	defaults, bullets, err := parseMarkdown(string(data))
	if err != nil {
		return err
	}
	if len(bullets) == 0 {
		return fmt.Errorf("no list items found in %s", opts.filePath)
	}
	tags := append(append([]string{}, defaults.Tags...), opts.tags...)

	created := make([]models.TodoItem, 0, len(bullets))
	for _, bullet := range bullets {
		req := defaults.createRequest(bullet.Title, opts.listID)
		if req.ListID <= 0 {
			return errors.New("list id is required: pass --list or set list_id in front matter")
		}
		item, err := client.CreateItem(ctx, req)
		if err != nil {
			return fmt.Errorf("create %q: %w", bullet.Title, err)
		}
		if bullet.Done {
			status := string(models.StatusCompleted)
			if item, err = client.UpdateItem(ctx, item.ID, api.ItemUpdateRequest{Status: &status}); err != nil {
				return err
			}
		}
		if err := attachTags(ctx, client, item.ID, tags); err != nil {
			return err
		}
		created = append(created, item)
	}

	if *jsonOutput {
		return writeJSON(created)
	}
	for _, item := range created {
		if err := writePlain("%d\n", item.ID); err != nil {
			return err
		}
	}
	return nil
}

func attachTags(ctx context.Context, client *api.Client, itemID int64, tags []string) error {
	for _, name := range tags {
		if strings.TrimSpace(name) == "" {
			continue
		}
		if _, err := client.AddTagToItem(ctx, api.ItemTagRequest{TodoItemID: itemID, TagName: name}); err != nil {
			return fmt.Errorf("tag %q: %w", name, err)
		}
	}
	return nil
}

func newItemLsCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var (
		listID   int64
		status   string
		priority string
		tag      string
		query    string
	)

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List items, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				values := url.Values{}
				if listID > 0 {
					values.Set("list_id", strconv.FormatInt(listID, 10))
				}
				setIfNotEmpty(values, "status", status)
				setIfNotEmpty(values, "priority", priority)
				setIfNotEmpty(values, "tag", tag)
				setIfNotEmpty(values, "query", query)

				items, err := fetchItems(cmd.Context(), client, values)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(items)
				}
				return writeItems(items)
			})
		},
	}

	cmd.Flags().Int64VarP(&listID, "list", "l", 0, "list id filter")
	cmd.Flags().StringVar(&status, "status", "", "status filter")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "priority filter")
	cmd.Flags().StringVarP(&tag, "tag", "t", "", "tag name filter")
	cmd.Flags().StringVarP(&query, "query", "q", "", "text search")
	return cmd
}

// fetchItems uses the dedicated endpoint when exactly one of status, priority
// or tag is set, and the combined filter endpoint otherwise.
func fetchItems(ctx context.Context, client *api.Client, values url.Values) ([]models.TodoItem, error) {
	if len(values) == 1 {
		switch {
		case values.Has("status"):
			return client.ItemsByStatus(ctx, values.Get("status"))
		case values.Has("priority"):
			return client.ItemsByPriority(ctx, values.Get("priority"))
		case values.Has("tag"):
			return client.ItemsByTag(ctx, values.Get("tag"))
		}
	}
	return client.ListItems(ctx, values)
}

func newItemShowCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show item details and tags",
		Args:  requireExactlyArgs(1, "item id is required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0], "item id")
			if err != nil {
				return err
			}
			return withClient(cfg, func(client *api.Client) error {
				item, err := client.GetItem(cmd.Context(), id)
				if err != nil {
					return err
				}
				tags, err := client.ListItemTags(cmd.Context(), id)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(struct {
						models.TodoItem
						Tags []models.Tag `json:"tags"`
					}{item, tags})
				}
				return writeItemDetail(item, tags)
			})
		},
	}
}

type itemUpdateOptions struct {
	title       string
	description string
	dueDate     string
	status      string
	priority    string
	metaKV      []string
	metaJSON    string
}

func newItemUpdateCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	opts := &itemUpdateOptions{}
	cmd := &cobra.Command{
		Use:   "update <id> [<id>...]",
		Short: "Update items; only the given flags change",
		Args:  requireAtLeastArgs(1, "item id is required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDArgs(args, "item id")
			if err != nil {
				return err
			}
			req, err := buildItemUpdateRequest(cmd, opts)
			if err != nil {
				return err
			}
			if !hasItemUpdateFields(req) {
				return errors.New("no fields to update")
			}

			return withClient(cfg, func(client *api.Client) error {
				updated := make([]models.TodoItem, 0, len(ids))
				for _, id := range ids {
					item, err := client.UpdateItem(cmd.Context(), id, req)
					if err != nil {
						return err
					}
					updated = append(updated, item)
				}
				if *jsonOutput {
					if len(updated) == 1 {
						return writeJSON(updated[0])
					}
					return writeJSON(updated)
				}
				return writeItems(updated)
			})
		},
	}

	cmd.Flags().StringVar(&opts.title, "title", "", "new title")
	cmd.Flags().StringVarP(&opts.description, "description", "d", "", "description (empty clears)")
	cmd.Flags().StringVar(&opts.dueDate, "due", "", "due date YYYY-MM-DD (empty clears)")
	cmd.Flags().StringVarP(&opts.status, "status", "s", "", "status (pending, in_progress, completed, cancelled)")
	cmd.Flags().StringVarP(&opts.priority, "priority", "p", "", "priority (low, medium, high, urgent)")
	cmd.Flags().StringSliceVar(&opts.metaKV, "meta", nil, "replace metadata with key=value pairs (repeatable)")
	cmd.Flags().StringVar(&opts.metaJSON, "meta-json", "", "replace metadata with a JSON object")
	return cmd
}

func buildItemUpdateRequest(cmd *cobra.Command, opts *itemUpdateOptions) (api.ItemUpdateRequest, error) {
	req := api.ItemUpdateRequest{}
	if cmd.Flags().Changed("title") {
		req.Title = &opts.title
	}
	if cmd.Flags().Changed("description") {
		req.Description = &opts.description
	}
	if cmd.Flags().Changed("due") {
		req.DueDate = &opts.dueDate
	}
	if cmd.Flags().Changed("status") {
		req.Status = &opts.status
	}
	if cmd.Flags().Changed("priority") {
		req.Priority = &opts.priority
	}
	if cmd.Flags().Changed("meta") || cmd.Flags().Changed("meta-json") {
		meta, err := parseMetadataFlags(opts.metaKV, opts.metaJSON)
		if err != nil {
			return api.ItemUpdateRequest{}, err
		}
		req.Metadata = &meta
	}
	return req, nil
}

func hasItemUpdateFields(req api.ItemUpdateRequest) bool {
	return req.Title != nil ||
		req.Description != nil ||
		req.DueDate != nil ||
		req.Status != nil ||
		req.Priority != nil ||
		req.Metadata != nil
}

func newItemRmCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id> [<id>...]",
		Short: "Delete items",
		Args:  requireAtLeastArgs(1, "item id is required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDArgs(args, "item id")
			if err != nil {
				return err
			}
			return withClient(cfg, func(client *api.Client) error {
				var errs []error
				for _, id := range ids {
					if err := client.DeleteItem(cmd.Context(), id); err != nil {
						errs = append(errs, err)
						continue
					}
					_ = writePlain("%d\n", id)
				}
				return errors.Join(errs...)
			})
		},
	}
}

func newItemSearchCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "search <text>",
		Short: "Search titles and descriptions (case-insensitive substring)",
		Args:  requireAtLeastArgs(1, "search text is required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				items, err := client.SearchItems(cmd.Context(), strings.Join(args, " "))
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(items)
				}
				return writeItems(items)
			})
		},
	}
}
