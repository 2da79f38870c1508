package format

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	ID    int64    `json:"id"`
	Title string   `json:"title"`
	Tags  []string `json:"tags"`
	Note  *string  `json:"note,omitempty"`
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSONFormatter{}.Write(&buf, sample{ID: 1, Title: "Buy milk", Tags: []string{"errand"}}))
	assert.Equal(t, `{"id":1,"title":"Buy milk","tags":["errand"]}`+"\n", buf.String())
}

func TestYAMLFormatterUsesJSONFieldNames(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, YAMLFormatter{}.Write(&buf, sample{ID: 1, Title: "Buy milk", Tags: []string{"errand"}}))
	assert.Equal(t, "id: 1\ntags:\n  - errand\ntitle: Buy milk\n", buf.String())
}

func TestForName(t *testing.T) {
	f, err := ForName("YAML")
	require.NoError(t, err)
	assert.IsType(t, YAMLFormatter{}, f)

	f, err = ForName("")
	require.NoError(t, err)
	assert.IsType(t, JSONFormatter{}, f)

	_, err = ForName("xml")
	assert.Error(t, err)
}
