package main

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"todod/internal/api"
)

var (
	listItemRegex = regexp.MustCompile(`^\s*[-*]\s+(.*)$`)
	checkboxRegex = regexp.MustCompile(`^\[([ xX])\]\s*(.*)$`)
)

// markdownItem is one bullet of an item file. Done is set for "- [x]" bullets.
type markdownItem struct {
	Title string
	Done  bool
}

// itemDefaults are the front matter fields applied to every bullet.
type itemDefaults struct {
	ListID      int64          `yaml:"list_id"`
	Description string         `yaml:"description"`
	DueDate     string         `yaml:"due_date"`
	Priority    string         `yaml:"priority"`
	Tags        []string       `yaml:"tags"`
	Metadata    map[string]any `yaml:"metadata"`
}

func parseMarkdown(input string) (itemDefaults, []markdownItem, error) {
	defaults := itemDefaults{}
	content := input

	lines := strings.Split(input, "\n")
	if len(lines) >= 3 && strings.TrimSpace(lines[0]) == "---" {
		end := -1
		for i := 1; i < len(lines); i++ {
			if strings.TrimSpace(lines[i]) == "---" {
				end = i
				break
			}
		}
		if end == -1 {
			return itemDefaults{}, nil, fmt.Errorf("front matter not closed")
		}
		frontText := strings.Join(lines[1:end], "\n")
		if err := yaml.Unmarshal([]byte(frontText), &defaults); err != nil {
			return itemDefaults{}, nil, fmt.Errorf("parse front matter: %w", err)
		}
		content = strings.Join(lines[end+1:], "\n")
	}

	items := []markdownItem{}
	for _, line := range strings.Split(content, "\n") {
		match := listItemRegex.FindStringSubmatch(line)
		if len(match) != 2 {
			continue
		}
		item := markdownItem{Title: strings.TrimSpace(match[1])}
		if box := checkboxRegex.FindStringSubmatch(item.Title); len(box) == 3 {
			item.Done = box[1] != " "
			item.Title = strings.TrimSpace(box[2])
		}
		if item.Title != "" {
			items = append(items, item)
		}
	}

	return defaults, items, nil
}

// createRequest builds the request for one bullet. A non-zero listID
// overrides the front matter's list_id.
func (d itemDefaults) createRequest(title string, listID int64) api.ItemCreateRequest {
	req := api.ItemCreateRequest{
		ListID:   d.ListID,
		Title:    title,
		Metadata: d.Metadata,
	}
	if listID > 0 {
		req.ListID = listID
	}
	if d.Description != "" {
		description := d.Description
		req.Description = &description
	}
	if d.DueDate != "" {
		due := d.DueDate
		req.DueDate = &due
	}
	if d.Priority != "" {
		priority := d.Priority
		req.Priority = &priority
	}
	return req
}
