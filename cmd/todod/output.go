package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"todod/internal/api"
	"todod/internal/format"
	"todod/internal/models"
)

var (
	outputFormatter format.Formatter = format.JSONFormatter{}
	stdout          io.Writer        = os.Stdout
	now                              = time.Now
)

func writeJSON(payload any) error {
	return outputFormatter.Write(stdout, payload)
}

func writePlain(format string, args ...any) error {
	_, err := fmt.Fprintf(stdout, format, args...)
	return err
}

func writeLists(lists []models.TodoList) error {
	for _, list := range lists {
		if err := writePlain("%d\t%s\t(%s)\n", list.ID, list.Title, relativeTime(list.CreatedAt)); err != nil {
			return err
		}
	}
	return nil
}

func writeItems(items []models.TodoItem) error {
	for _, item := range items {
		if err := writePlain("%s\n", formatItemLine(item)); err != nil {
			return err
		}
	}
	return nil
}

func writeTags(tags []models.Tag) error {
	for _, tag := range tags {
		if err := writePlain("%d\t%s\n", tag.ID, tag.Name); err != nil {
			return err
		}
	}
	return nil
}

func writeItemDetail(item models.TodoItem, tags []models.Tag) error {
	lines := []string{
		fmt.Sprintf("id: %d", item.ID),
		fmt.Sprintf("list_id: %d", item.ListID),
		fmt.Sprintf("title: %s", item.Title),
		fmt.Sprintf("status: %s", item.Status),
		fmt.Sprintf("priority: %s", item.Priority),
		fmt.Sprintf("created_at: %s (%s)", formatTime(item.CreatedAt), relativeTime(item.CreatedAt)),
		fmt.Sprintf("updated_at: %s (%s)", formatTime(item.UpdatedAt), relativeTime(item.UpdatedAt)),
	}

	if item.DueDate != nil {
		lines = append(lines, fmt.Sprintf("due_date: %s", item.DueDate))
	}
	if item.Description != nil && *item.Description != "" {
		lines = append(lines, fmt.Sprintf("description: %s", *item.Description))
	}
	if item.FullDescription != nil && *item.FullDescription != "" {
		lines = append(lines, fmt.Sprintf("full_description: %s", *item.FullDescription))
	}
	if len(tags) > 0 {
		names := make([]string, 0, len(tags))
		for _, tag := range tags {
			names = append(names, tag.Name)
		}
		lines = append(lines, fmt.Sprintf("tags: %s", strings.Join(names, ", ")))
	}
	if len(item.Metadata) > 0 {
		keys := make([]string, 0, len(item.Metadata))
		for key := range item.Metadata {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		lines = append(lines, "metadata:")
		for _, key := range keys {
			lines = append(lines, fmt.Sprintf("  %s: %v", key, item.Metadata[key]))
		}
	}

	return writePlain("%s\n", strings.Join(lines, "\n"))
}

func writeTagChange(resp api.ItemTagResponse, verb string) error {
	if !resp.Changed {
		return writePlain("item %d: nothing to %s\n", resp.ItemID, verb)
	}
	return writePlain("item %d: %s\n", resp.ItemID, tagNames(resp.Tags))
}

func tagNames(tags []models.Tag) string {
	if len(tags) == 0 {
		return "(no tags)"
	}
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	return strings.Join(names, ", ")
}

func formatItemLine(item models.TodoItem) string {
	line := fmt.Sprintf("%s %d [%s] %s", statusMarker(item.Status), item.ID, item.Priority, item.Title)
	if item.DueDate != nil {
		line += fmt.Sprintf(" (due %s)", item.DueDate)
	}
	return line
}

func statusMarker(status models.ItemStatus) string {
	switch status {
	case models.StatusCompleted:
		return "[x]"
	case models.StatusInProgress:
		return "[~]"
	case models.StatusCancelled:
		return "[-]"
	default:
		return "[ ]"
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func relativeTime(t time.Time) string {
	return humanize.RelTime(t, now(), "ago", "from now")
}
