package main

import (
	"sort"

	"github.com/spf13/cobra"

	"todod/internal/api"
	"todod/internal/config"
)

func newInfoCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show database totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.GetInfo(cmd.Context())
				if err != nil {
					return err
				}
				if resp.DBPath == "" {
					resp.DBPath = cfg.DBPath
				}

				if *jsonOutput {
					return writeJSON(resp)
				}

				_ = writePlain("db_path: %s\n", resp.DBPath)
				_ = writePlain("schema_version: %d\n", resp.SchemaVersion)
				_ = writePlain("total_lists: %d\n", resp.TotalLists)
				_ = writePlain("total_tags: %d\n", resp.TotalTags)
				_ = writePlain("total_items: %d\n", resp.TotalItems)

				statuses := make([]string, 0, len(resp.ItemCounts))
				for status := range resp.ItemCounts {
					statuses = append(statuses, status)
				}
				sort.Strings(statuses)
				for _, status := range statuses {
					_ = writePlain("  %s: %d\n", status, resp.ItemCounts[status])
				}
				return nil
			})
		},
	}
}
