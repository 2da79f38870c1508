package main

import (
	"context"
	"errors"
	"net"
	"strings"

	"todod/internal/api"
	"todod/internal/models"
	"todod/internal/server"
)

// formatCLIError renders err followed by hints keyed on the server's numeric
// error code, then on transport failures.
func formatCLIError(err error) []string {
	if err == nil {
		return nil
	}
	lines := []string{err.Error()}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		lines = append(lines, apiHints(apiErr)...)
		return uniqueLines(lines)
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		lines = append(lines, "hint: request timed out; check server health or increase TODOD_HTTP_TIMEOUT.")
	case isNetError(err):
		lines = append(lines,
			"hint: ensure a todod server is running at TODOD_API_URL.",
			"hint: start local server manually with: todod srv",
		)
	}
	return uniqueLines(lines)
}

func apiHints(apiErr *api.APIError) []string {
	var hints []string
	switch apiErr.ErrorCode {
	case server.ErrCodeListNotFound:
		hints = append(hints, "hint: run `todod list ls` to see list ids.")
	case server.ErrCodeItemNotFound:
		hints = append(hints, "hint: run `todod item ls` to see item ids.")
	case server.ErrCodeListNotEmpty:
		hints = append(hints, "hint: the list still has items; pass --cascade to delete them too.")
	case server.ErrCodeInvalidDueDate:
		hints = append(hints, "hint: due dates are written YYYY-MM-DD; pass --due \"\" to clear one.")
	case server.ErrCodeInvalidStatus:
		hints = append(hints, "hint: status is one of "+strings.Join(models.ItemStatusStrings(), ", ")+".")
	case server.ErrCodeInvalidPriority:
		hints = append(hints, "hint: priority is one of "+strings.Join(models.ItemPriorityStrings(), ", ")+".")
	case server.ErrCodeResourceExhausted:
		hints = append(hints, "hint: too many concurrent searches; retry shortly.")
	}

	switch {
	case apiErr.Code == "":
		hints = append(hints, "hint: verify TODOD_API_URL points to a todod server.")
	case apiErr.Status >= 500:
		hints = append(hints, "hint: server returned an internal error; check `todod srv` logs for details.")
	}
	return hints
}

func isNetError(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr)
}

func uniqueLines(lines []string) []string {
	seen := make(map[string]struct{}, len(lines))
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if _, ok := seen[line]; ok || line == "" {
			continue
		}
		seen[line] = struct{}{}
		out = append(out, line)
	}
	return out
}
