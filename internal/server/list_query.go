package server

import (
	"net/http"
	"strings"

	"todod/internal/store"
)

// parseItemFilter reads list_id, status, priority, tag and query from the URL.
func parseItemFilter(r *http.Request) (store.ItemFilter, error) {
	values := r.URL.Query()
	filter := store.ItemFilter{}

	if raw := strings.TrimSpace(values.Get("list_id")); raw != "" {
		listID, err := parseID(raw, "list_id")
		if err != nil {
			return store.ItemFilter{}, err
		}
		filter.ListID = listID
	}
	if raw := values.Get("status"); strings.TrimSpace(raw) != "" {
		status, err := normalizeStatus(raw)
		if err != nil {
			return store.ItemFilter{}, err
		}
		filter.Status = string(status)
	}
	if raw := values.Get("priority"); strings.TrimSpace(raw) != "" {
		priority, err := normalizePriority(raw)
		if err != nil {
			return store.ItemFilter{}, err
		}
		filter.Priority = string(priority)
	}
	if raw := values.Get("tag"); strings.TrimSpace(raw) != "" {
		name, err := normalizeTagName(raw)
		if err != nil {
			return store.ItemFilter{}, err
		}
		filter.TagName = name
	}
	filter.Query = strings.TrimSpace(values.Get("query"))

	return filter, nil
}
