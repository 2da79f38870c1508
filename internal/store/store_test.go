package store

import (
	"context"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"todod/internal/models"
)

// testStore creates a temporary store for testing.
func testStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	st, err := Open(path)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

// steppingClock makes every call to st.now return a time one second later.
func steppingClock(st *Store, start time.Time) {
	current := start
	st.now = func() time.Time {
		current = current.Add(time.Second)
		return current
	}
}

func mustCreateList(t *testing.T, st *Store, title string) *models.TodoList {
	t.Helper()
	list, err := st.CreateList(context.Background(), title)
	if err != nil {
		t.Fatalf("create list %q: %v", title, err)
	}
	return list
}

func mustCreateItem(t *testing.T, st *Store, input ItemCreate) *models.TodoItem {
	t.Helper()
	item, err := st.CreateItem(context.Background(), input)
	if err != nil {
		t.Fatalf("create item %q: %v", input.Title, err)
	}
	return item
}

func TestSQLiteDSNCarriesPragmasPlainPath(t *testing.T) {
	dsn, err := sqliteDSN("/tmp/todo.db")
	if err != nil {
		t.Fatalf("dsn: %v", err)
	}
	if !strings.HasPrefix(dsn, "file:///tmp/todo.db?") {
		t.Fatalf("unexpected dsn prefix: %s", dsn)
	}
	u, err := url.Parse(dsn)
	if err != nil {
		t.Fatalf("parse dsn: %v", err)
	}
	pragmas := u.Query()["_pragma"]
	for _, want := range []string{"foreign_keys(1)", "busy_timeout(5000)", "journal_mode(WAL)"} {
		found := false
		for _, got := range pragmas {
			if got == want {
				found = true
			}
		}
		if !found {
			t.Fatalf("expected pragma %s in %v", want, pragmas)
		}
	}
	if u.Query().Get("_txlock") != "immediate" {
		t.Fatalf("expected immediate txlock, got %q", u.Query().Get("_txlock"))
	}

	if _, err := sqliteDSN(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestForeignKeysEnforced(t *testing.T) {
	st := testStore(t)

	var enabled int
	if err := st.db.Get(&enabled, "PRAGMA foreign_keys"); err != nil {
		t.Fatalf("pragma: %v", err)
	}
	if enabled != 1 {
		t.Fatalf("expected foreign_keys=1, got %d", enabled)
	}

	_, err := st.db.Exec(`INSERT INTO todo_items (list_id, title, status, priority, metadata, created_at, updated_at)
		VALUES (999, 'orphan', 'pending', 'low', '{}', 'x', 'x')`)
	if err == nil {
		t.Fatal("expected foreign key violation for orphan item")
	}
}

func TestSchemaRejectsInvalidValues(t *testing.T) {
	st := testStore(t)
	list := mustCreateList(t, st, "Inbox")

	insert := `INSERT INTO todo_items (list_id, title, due_date, status, priority, metadata, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, '2024-01-01T00:00:00.000000000Z', '2024-01-01T00:00:00.000000000Z')`
	cases := []struct {
		name    string
		args    []any
		wantErr bool
	}{
		{name: "valid", args: []any{list.ID, "ok", "2024-02-29", "pending", "low", "{}"}},
		{name: "bad status", args: []any{list.ID, "x", nil, "done", "low", "{}"}, wantErr: true},
		{name: "bad priority", args: []any{list.ID, "x", nil, "pending", "critical", "{}"}, wantErr: true},
		{name: "impossible date", args: []any{list.ID, "x", "2023-02-29", "pending", "low", "{}"}, wantErr: true},
		{name: "timestamp date", args: []any{list.ID, "x", "2024-02-01T00:00:00Z", "pending", "low", "{}"}, wantErr: true},
		{name: "blank title", args: []any{list.ID, "  ", nil, "pending", "low", "{}"}, wantErr: true},
		{name: "bad metadata", args: []any{list.ID, "x", nil, "pending", "low", "{"}, wantErr: true},
	}
	for _, tc := range cases {
		_, err := st.db.Exec(insert, tc.args...)
		if tc.wantErr && err == nil {
			t.Fatalf("%s: expected constraint error", tc.name)
		}
		if !tc.wantErr && err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
	}
}

func TestStoreInfo(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	list := mustCreateList(t, st, "Inbox")
	mustCreateItem(t, st, ItemCreate{ListID: list.ID, Title: "a"})
	second := mustCreateItem(t, st, ItemCreate{ListID: list.ID, Title: "b"})
	completed := models.StatusCompleted
	if _, err := st.UpdateItem(ctx, second.ID, ItemUpdate{Status: &completed}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, _, err := st.CreateTag(ctx, "home"); err != nil {
		t.Fatalf("create tag: %v", err)
	}

	info, err := st.StoreInfo(ctx)
	if err != nil {
		t.Fatalf("info: %v", err)
	}
	if info.SchemaVersion != len(migrations) {
		t.Fatalf("expected schema version %d, got %d", len(migrations), info.SchemaVersion)
	}
	if info.TotalLists != 1 || info.TotalItems != 2 || info.TotalTags != 1 {
		t.Fatalf("unexpected totals: %+v", info)
	}
	if info.ItemCounts["pending"] != 1 || info.ItemCounts["completed"] != 1 || info.ItemCounts["cancelled"] != 0 {
		t.Fatalf("unexpected item counts: %+v", info.ItemCounts)
	}
}
