package store

import (
	"net/url"
	"slices"
	"strings"
	"testing"
	"time"
)

func TestPoolEnvKnobs(t *testing.T) {
	intCases := []struct {
		raw  string
		want int
	}{
		{"", 3},
		{"4", 4},
		{"bad", 3},
		{"0", 3},
		{"-2", 3},
	}
	for _, tc := range intCases {
		t.Setenv(maxOpenConnsEnvKey, tc.raw)
		if got := intFromEnv(maxOpenConnsEnvKey, 3); got != tc.want {
			t.Fatalf("%s=%q: expected %d, got %d", maxOpenConnsEnvKey, tc.raw, tc.want, got)
		}
	}

	durationCases := []struct {
		raw  string
		want time.Duration
	}{
		{"", 2 * time.Minute},
		{"45s", 45 * time.Second},
		{"30", 30 * time.Second},
		{"0", 2 * time.Minute},
		{"invalid", 2 * time.Minute},
	}
	for _, tc := range durationCases {
		t.Setenv(connMaxLifetimeEnvKey, tc.raw)
		if got := durationFromEnv(connMaxLifetimeEnvKey, 2*time.Minute); got != tc.want {
			t.Fatalf("%s=%q: expected %v, got %v", connMaxLifetimeEnvKey, tc.raw, tc.want, got)
		}
	}
}

func TestSQLiteDSNCarriesPragmas(t *testing.T) {
	dsn, err := sqliteDSN("/tmp/todo lists.db")
	if err != nil {
		t.Fatalf("dsn: %v", err)
	}
	if !strings.HasPrefix(dsn, "file:") {
		t.Fatalf("expected file URI, got %q", dsn)
	}

	u, err := url.Parse(dsn)
	if err != nil {
		t.Fatalf("parse dsn: %v", err)
	}
	if u.Path != "/tmp/todo lists.db" {
		t.Fatalf("path not preserved: %q", u.Path)
	}
	pragmas := u.Query()["_pragma"]
	for _, want := range []string{"foreign_keys(1)", "journal_mode(WAL)", "busy_timeout(5000)"} {
		if !slices.Contains(pragmas, want) {
			t.Fatalf("missing pragma %s in %v", want, pragmas)
		}
	}
	if got := u.Query().Get("_txlock"); got != "immediate" {
		t.Fatalf("expected immediate transactions, got %q", got)
	}

	if _, err := sqliteDSN(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}
