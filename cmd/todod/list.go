package main

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"todod/internal/api"
	"todod/internal/config"
	"todod/internal/models"
)

func newListCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Manage todo lists",
	}

	cmd.AddCommand(
		newListCreateCmd(cfg, jsonOutput),
		newListLsCmd(cfg, jsonOutput),
		newListShowCmd(cfg, jsonOutput),
		newListRmCmd(cfg),
	)
	return cmd
}

func newListCreateCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "create <title>",
		Short: "Create a list",
		Args:  requireAtLeastArgs(1, "title is required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				list, err := client.CreateList(cmd.Context(), api.ListCreateRequest{Title: strings.Join(args, " ")})
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(list)
				}
				return writePlain("%d\n", list.ID)
			})
		},
	}
}

func newListLsCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List all lists, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				lists, err := client.ListLists(cmd.Context())
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(lists)
				}
				return writeLists(lists)
			})
		},
	}
}

func newListShowCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a list and its items",
		Args:  requireExactlyArgs(1, "list id is required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0], "list id")
			if err != nil {
				return err
			}
			return withClient(cfg, func(client *api.Client) error {
				list, err := client.GetList(cmd.Context(), id)
				if err != nil {
					return err
				}
				items, err := client.ListItems(cmd.Context(), url.Values{"list_id": {strconv.FormatInt(id, 10)}})
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(struct {
						models.TodoList
						Items []models.TodoItem `json:"items"`
					}{list, items})
				}
				if err := writeLists([]models.TodoList{list}); err != nil {
					return err
				}
				return writeItems(items)
			})
		},
	}
}

func newListRmCmd(cfg *config.Config) *cobra.Command {
	var cascade bool

	cmd := &cobra.Command{
		Use:   "rm <id> [<id>...]",
		Short: "Delete lists",
		Args:  requireAtLeastArgs(1, "list id is required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDArgs(args, "list id")
			if err != nil {
				return err
			}
			return withClient(cfg, func(client *api.Client) error {
				var errs []error
				for _, id := range ids {
					if err := client.DeleteList(cmd.Context(), id, cascade); err != nil {
						errs = append(errs, err)
						continue
					}
					_ = writePlain("%d\n", id)
				}
				return errors.Join(errs...)
			})
		},
	}

	cmd.Flags().BoolVar(&cascade, "cascade", false, "also delete the list's items")
	return cmd
}
