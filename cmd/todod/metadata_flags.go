package main

import (
	"encoding/json"
	"fmt"
	"strings"
)

// parseMetadataFlags merges --meta-json and --meta key=value pairs into one
// object. Pairs are applied after the JSON, so they win on conflicts.
func parseMetadataFlags(kvPairs []string, rawJSON string) (map[string]any, error) {
	m := make(map[string]any)

	if strings.TrimSpace(rawJSON) != "" {
		if err := json.Unmarshal([]byte(rawJSON), &m); err != nil {
			return nil, fmt.Errorf("invalid --meta-json: must be a JSON object: %w", err)
		}
		if m == nil {
			return nil, fmt.Errorf("invalid --meta-json: must be a JSON object, not null")
		}
	}

	for _, pair := range kvPairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --meta format %q, expected key=value", pair)
		}
		m[key] = value
	}

	return m, nil
}
