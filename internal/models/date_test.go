package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-02-29")
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	if got != (Date{Year: 2024, Month: time.February, Day: 29}) {
		t.Fatalf("unexpected date: %+v", got)
	}

	for _, raw := range []string{"", "2024-02-30", "2023-02-29", "2024-2-01", "24-02-01", "2024/02/01", "tomorrow"} {
		if _, err := ParseDate(raw); err == nil {
			t.Fatalf("expected %q to be rejected", raw)
		}
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: "2024-03-15", want: "2024-03-15"},
		{raw: " 2024-03-15 ", want: "2024-03-15"},
		{raw: "2024-03-15T00:00:00.000Z", want: "2024-03-15"},
		{raw: "2024-03-15T23:30:00-05:00", want: "2024-03-15"},
		{raw: "2024-03-15T00:30:00+09:00", want: "2024-03-15"},
	}
	for _, tt := range tests {
		got, err := NormalizeDate(tt.raw)
		if err != nil {
			t.Fatalf("normalize %q: %v", tt.raw, err)
		}
		if got.String() != tt.want {
			t.Fatalf("normalize %q: expected %s, got %s", tt.raw, tt.want, got)
		}
	}

	if _, err := NormalizeDate("2024-03-15 10:00"); err == nil {
		t.Fatal("expected non-RFC3339 timestamp to be rejected")
	}
}

func TestDateJSON(t *testing.T) {
	type wrapper struct {
		Due *Date `json:"due"`
	}
	data, err := json.Marshal(wrapper{Due: &Date{Year: 2025, Month: time.January, Day: 5}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"due":"2025-01-05"}` {
		t.Fatalf("unexpected json: %s", data)
	}

	var decoded wrapper
	if err := json.Unmarshal([]byte(`{"due":null}`), &decoded); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if decoded.Due != nil {
		t.Fatalf("expected nil date, got %v", decoded.Due)
	}

	if err := json.Unmarshal([]byte(`{"due":"2025-13-01"}`), &decoded); err == nil {
		t.Fatal("expected invalid month to be rejected")
	}
}
