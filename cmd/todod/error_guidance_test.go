package main

import (
	"context"
	"fmt"
	"net"
	"testing"

	"todod/internal/api"
	"todod/internal/server"
)

func TestFormatCLIError_NetworkGuidance(t *testing.T) {
	err := &net.DNSError{Err: "dial tcp: connection refused", Name: "127.0.0.1", IsTemporary: true}
	lines := formatCLIError(err)
	if !containsLine(lines, "hint: ensure a todod server is running at TODOD_API_URL.") {
		t.Fatalf("expected connectivity guidance, got %v", lines)
	}
	if !containsLine(lines, "hint: start local server manually with: todod srv") {
		t.Fatalf("expected manual-start guidance, got %v", lines)
	}
}

func TestFormatCLIError_APIUnknownServiceGuidance(t *testing.T) {
	err := &api.APIError{Status: 404, Message: "api error: 404 Not Found"}
	lines := formatCLIError(err)
	if !containsLine(lines, "hint: verify TODOD_API_URL points to a todod server.") {
		t.Fatalf("expected api-url guidance, got %v", lines)
	}
}

func TestFormatCLIError_ListNotEmptyGuidance(t *testing.T) {
	err := fmt.Errorf("delete list: %w", &api.APIError{Status: 409, Code: "conflict", ErrorCode: 2103, Message: "list 1 has items"})
	lines := formatCLIError(err)
	if !containsLine(lines, "hint: the list still has items; pass --cascade to delete them too.") {
		t.Fatalf("expected cascade guidance, got %v", lines)
	}
}

func TestFormatCLIError_APIInternalGuidance(t *testing.T) {
	err := &api.APIError{Status: 500, Code: "internal", Message: "internal error"}
	lines := formatCLIError(err)
	if !containsLine(lines, "hint: server returned an internal error; check `todod srv` logs for details.") {
		t.Fatalf("expected internal-error guidance, got %v", lines)
	}
}

func TestFormatCLIError_TodoCodeGuidance(t *testing.T) {
	cases := []struct {
		code int
		want string
	}{
		{server.ErrCodeListNotFound, "hint: run `todod list ls` to see list ids."},
		{server.ErrCodeItemNotFound, "hint: run `todod item ls` to see item ids."},
		{server.ErrCodeInvalidDueDate, "hint: due dates are written YYYY-MM-DD; pass --due \"\" to clear one."},
		{server.ErrCodeInvalidStatus, "hint: status is one of pending, in_progress, completed, cancelled."},
		{server.ErrCodeInvalidPriority, "hint: priority is one of low, medium, high, urgent."},
		{server.ErrCodeResourceExhausted, "hint: too many concurrent searches; retry shortly."},
	}
	for _, tc := range cases {
		err := &api.APIError{Status: 400, Code: "invalid_argument", ErrorCode: tc.code, Message: "rejected"}
		if lines := formatCLIError(err); !containsLine(lines, tc.want) {
			t.Fatalf("code %d: expected %q, got %v", tc.code, tc.want, lines)
		}
	}
}

func TestFormatCLIError_Timeout(t *testing.T) {
	lines := formatCLIError(fmt.Errorf("get: %w", context.DeadlineExceeded))
	if !containsLine(lines, "hint: request timed out; check server health or increase TODOD_HTTP_TIMEOUT.") {
		t.Fatalf("expected timeout guidance, got %v", lines)
	}
}

func containsLine(lines []string, expected string) bool {
	for _, line := range lines {
		if line == expected {
			return true
		}
	}
	return false
}
