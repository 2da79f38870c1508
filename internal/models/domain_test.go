package models

import "testing"

func TestParseItemStatus(t *testing.T) {
	got, err := ParseItemStatus(" IN_PROGRESS ")
	if err != nil {
		t.Fatalf("parse status: %v", err)
	}
	if got != StatusInProgress {
		t.Fatalf("expected %q, got %q", StatusInProgress, got)
	}

	if _, err := ParseItemStatus("done"); err == nil {
		t.Fatal("expected invalid status error")
	}
	if _, err := ParseItemStatus("  "); err == nil {
		t.Fatal("expected required status error")
	}
}

func TestParseItemPriority(t *testing.T) {
	got, err := ParseItemPriority(" Urgent ")
	if err != nil {
		t.Fatalf("parse priority: %v", err)
	}
	if got != PriorityUrgent {
		t.Fatalf("expected %q, got %q", PriorityUrgent, got)
	}

	if _, err := ParseItemPriority("critical"); err == nil {
		t.Fatal("expected invalid priority error")
	}
}

func TestEnumStringsAreValid(t *testing.T) {
	for _, value := range ItemStatusStrings() {
		if !IsValidItemStatus(ItemStatus(value)) {
			t.Fatalf("status %q listed but not valid", value)
		}
	}
	for _, value := range ItemPriorityStrings() {
		if !IsValidItemPriority(ItemPriority(value)) {
			t.Fatalf("priority %q listed but not valid", value)
		}
	}
	if !IsValidItemStatus(DefaultStatus) || !IsValidItemPriority(DefaultPriority) {
		t.Fatal("expected defaults to be valid")
	}
}
