package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestCreateAndListLists(t *testing.T) {
	st := testStore(t)
	steppingClock(st, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()

	first := mustCreateList(t, st, "Groceries")
	second := mustCreateList(t, st, "Work")

	lists, err := st.ListLists(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(lists) != 2 {
		t.Fatalf("expected 2 lists, got %d", len(lists))
	}
	if lists[0].ID != second.ID || lists[1].ID != first.ID {
		t.Fatalf("expected newest first, got %+v", lists)
	}
	if !lists[1].CreatedAt.Equal(first.CreatedAt) {
		t.Fatalf("created_at round trip mismatch: %v vs %v", lists[1].CreatedAt, first.CreatedAt)
	}
}

func TestListListsEmpty(t *testing.T) {
	st := testStore(t)

	lists, err := st.ListLists(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if lists == nil || len(lists) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", lists)
	}
}

func TestListListsTieBrokenByID(t *testing.T) {
	st := testStore(t)
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	st.now = func() time.Time { return fixed }

	a := mustCreateList(t, st, "A")
	b := mustCreateList(t, st, "B")

	lists, err := st.ListLists(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if lists[0].ID != b.ID || lists[1].ID != a.ID {
		t.Fatalf("expected id desc on equal created_at, got %+v", lists)
	}
}

func TestCreateListRejectsBlankTitle(t *testing.T) {
	st := testStore(t)
	if _, err := st.CreateList(context.Background(), "   "); err == nil {
		t.Fatal("expected blank title error")
	}
}

func TestGetList(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	list := mustCreateList(t, st, "Inbox")

	got, err := st.GetList(ctx, list.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.Title != "Inbox" {
		t.Fatalf("unexpected list: %+v", got)
	}

	missing, err := st.GetList(ctx, list.ID+100)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing list, got %+v", missing)
	}
}

func TestDeleteListRestrictsWhenItemsRemain(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	list := mustCreateList(t, st, "Inbox")
	mustCreateItem(t, st, ItemCreate{ListID: list.ID, Title: "keep me"})

	removed, err := st.DeleteList(ctx, list.ID, false)
	if !errors.Is(err, ErrListNotEmpty) {
		t.Fatalf("expected ErrListNotEmpty, got removed=%v err=%v", removed, err)
	}

	got, err := st.GetList(ctx, list.ID)
	if err != nil || got == nil {
		t.Fatalf("expected list to survive, got %+v err=%v", got, err)
	}
}

func TestDeleteListCascade(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	list := mustCreateList(t, st, "Inbox")
	item := mustCreateItem(t, st, ItemCreate{ListID: list.ID, Title: "goes away"})
	if _, _, err := st.AddTagToItem(ctx, item.ID, "home"); err != nil {
		t.Fatalf("add tag: %v", err)
	}

	removed, err := st.DeleteList(ctx, list.ID, true)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !removed {
		t.Fatal("expected list to be removed")
	}

	gotItem, err := st.GetItem(ctx, item.ID)
	if err != nil {
		t.Fatalf("get item: %v", err)
	}
	if gotItem != nil {
		t.Fatalf("expected item to be removed, got %+v", gotItem)
	}

	var links int
	if err := st.db.Get(&links, "SELECT COUNT(*) FROM todo_item_tags"); err != nil {
		t.Fatalf("count links: %v", err)
	}
	if links != 0 {
		t.Fatalf("expected links to be removed, got %d", links)
	}

	tags, err := st.ListTags(ctx)
	if err != nil {
		t.Fatalf("list tags: %v", err)
	}
	if len(tags) != 1 {
		t.Fatalf("expected tag to survive cascade, got %+v", tags)
	}
}

func TestDeleteListMissing(t *testing.T) {
	st := testStore(t)

	removed, err := st.DeleteList(context.Background(), 42, false)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if removed {
		t.Fatal("expected removed=false for missing list")
	}
}
