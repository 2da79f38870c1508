package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"todod/internal/api"
	"todod/internal/config"
	"todod/internal/models"
)

func newTagCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Manage tags and item tag links",
	}

	cmd.AddCommand(
		newTagCreateCmd(cfg, jsonOutput),
		newTagLsCmd(cfg, jsonOutput),
		newTagAddCmd(cfg, jsonOutput),
		newTagRmCmd(cfg, jsonOutput),
		newTagSetCmd(cfg, jsonOutput),
	)
	return cmd
}

func newTagCreateCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create a tag (returns the existing one if present)",
		Args:  requireExactlyArgs(1, "tag name is required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				tag, err := client.CreateTag(cmd.Context(), api.TagCreateRequest{Name: args[0]})
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(tag)
				}
				return writeTags([]models.Tag{tag})
			})
		},
	}
}

func newTagLsCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:     "ls [<item-id>]",
		Aliases: []string{"list"},
		Short:   "List all tags, or the tags of one item",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var itemID int64
			if len(args) == 1 {
				id, err := parseIDArg(args[0], "item id")
				if err != nil {
					return err
				}
				itemID = id
			}
			return withClient(cfg, func(client *api.Client) error {
				var (
					tags []models.Tag
					err  error
				)
				if itemID > 0 {
					tags, err = client.ListItemTags(cmd.Context(), itemID)
				} else {
					tags, err = client.ListTags(cmd.Context())
				}
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(tags)
				}
				return writeTags(tags)
			})
		},
	}
}

func newTagAddCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "add <item-id> <tag>",
		Short: "Attach a tag to an item, creating the tag if needed",
		Args:  requireExactlyArgs(2, "item id and tag name are required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			itemID, err := parseIDArg(args[0], "item id")
			if err != nil {
				return err
			}
			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.AddTagToItem(cmd.Context(), api.ItemTagRequest{TodoItemID: itemID, TagName: args[1]})
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(resp)
				}
				return writeTagChange(resp, "add")
			})
		},
	}
}

func newTagRmCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <item-id> <tag>",
		Short: "Detach a tag from an item",
		Args:  requireExactlyArgs(2, "item id and tag name are required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			itemID, err := parseIDArg(args[0], "item id")
			if err != nil {
				return err
			}
			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.RemoveTagFromItem(cmd.Context(), api.ItemTagRequest{TodoItemID: itemID, TagName: args[1]})
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(resp)
				}
				return writeTagChange(resp, "remove")
			})
		},
	}
}

func newTagSetCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "set <item-id> [<tag>...]",
		Short: "Replace an item's tags with the given set",
		Args:  requireAtLeastArgs(1, "item id is required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			itemID, err := parseIDArg(args[0], "item id")
			if err != nil {
				return err
			}
			desired := make([]models.Tag, 0, len(args)-1)
			for _, name := range args[1:] {
				desired = append(desired, models.Tag{Name: name})
			}
			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.SyncItemTags(cmd.Context(), itemID, api.TagSyncRequest{Tags: desired})
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(resp)
				}
				_ = writePlain("item %d: %s\n", resp.ItemID, tagNames(resp.Tags))
				for _, failure := range resp.Failed {
					_ = writePlain("  failed to %s %q: %s\n", failure.Op, failure.Name, failure.Error)
				}
				if len(resp.Failed) > 0 {
					return fmt.Errorf("some tag changes failed: %s", failedNames(resp.Failed))
				}
				return nil
			})
		},
	}
}

func failedNames(failures []api.TagSyncFailure) string {
	names := make([]string, 0, len(failures))
	for _, failure := range failures {
		names = append(names, failure.Name)
	}
	return strings.Join(names, ", ")
}
