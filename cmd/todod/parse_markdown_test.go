package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMarkdownWithFrontMatter(t *testing.T) {
	input := `---
list_id: 3
priority: high
due_date: 2024-03-15
tags: [errand, home]
metadata:
  store: corner
---
# Shopping

- Buy milk
* [ ] Buy bread
- [x] Return bottles
not a bullet
-
`
	defaults, items, err := parseMarkdown(input)
	require.NoError(t, err)

	assert.Equal(t, int64(3), defaults.ListID)
	assert.Equal(t, "high", defaults.Priority)
	assert.Equal(t, "2024-03-15", defaults.DueDate)
	assert.Equal(t, []string{"errand", "home"}, defaults.Tags)
	assert.Equal(t, "corner", defaults.Metadata["store"])

	assert.Equal(t, []markdownItem{
		{Title: "Buy milk"},
		{Title: "Buy bread"},
		{Title: "Return bottles", Done: true},
	}, items)
}

func TestParseMarkdownWithoutFrontMatter(t *testing.T) {
	defaults, items, err := parseMarkdown("- one\n- two\n")
	require.NoError(t, err)
	assert.Zero(t, defaults.ListID)
	assert.Len(t, items, 2)
}

func TestParseMarkdownUnclosedFrontMatter(t *testing.T) {
	_, _, err := parseMarkdown("---\nlist_id: 1\n- item\n")
	assert.Error(t, err)
}

func TestItemDefaultsCreateRequest(t *testing.T) {
	defaults := itemDefaults{ListID: 3, Priority: "low", DueDate: "2024-01-02"}

	req := defaults.createRequest("Buy milk", 0)
	assert.Equal(t, int64(3), req.ListID)
	assert.Equal(t, "Buy milk", req.Title)
	require.NotNil(t, req.Priority)
	assert.Equal(t, "low", *req.Priority)
	require.NotNil(t, req.DueDate)
	assert.Equal(t, "2024-01-02", *req.DueDate)
	assert.Nil(t, req.Description)

	req = defaults.createRequest("Other", 9)
	assert.Equal(t, int64(9), req.ListID)
}

func TestParseMetadataFlags(t *testing.T) {
	m, err := parseMetadataFlags([]string{"owner=me", "note=a=b"}, `{"owner":"you","count":2}`)
	require.NoError(t, err)
	assert.Equal(t, "me", m["owner"])
	assert.Equal(t, "a=b", m["note"])
	assert.Equal(t, float64(2), m["count"])

	_, err = parseMetadataFlags([]string{"novalue"}, "")
	assert.Error(t, err)

	_, err = parseMetadataFlags(nil, `[1,2]`)
	assert.Error(t, err)
}

func TestParseMetadataFlagsRejectsNull(t *testing.T) {
	for _, raw := range []string{"null", " null "} {
		assert.NotPanics(t, func() {
			_, err := parseMetadataFlags([]string{"a=b"}, raw)
			assert.ErrorContains(t, err, "must be a JSON object")
		})
		_, err := parseMetadataFlags(nil, raw)
		assert.Error(t, err, "null must not clear metadata")
	}

	m, err := parseMetadataFlags([]string{"a=b"}, "{}")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": "b"}, m)
}
