package format

import (
	"testing"
	"time"

	"taskdesk/internal/model"
)

func TestDateTime(t *testing.T) {
	ts := time.Date(2025, time.March, 4, 13, 5, 0, 0, time.UTC)
	if got := DateTime(&ts); got != "4-March-2025 (1:05 P.M)" {
		t.Fatalf("DateTime = %q", got)
	}
	midnight := time.Date(2025, time.March, 4, 0, 30, 0, 0, time.UTC)
	if got := DateTime(&midnight); got != "4-March-2025 (12:30 A.M)" {
		t.Fatalf("DateTime midnight = %q", got)
	}
	if got := DateTime(nil); got != Placeholder {
		t.Fatalf("DateTime(nil) = %q", got)
	}
}

func TestTitle(t *testing.T) {
	cases := map[string]string{
		"pending":     "Pending",
		"in_progress": "In Progress",
		"URGENT":      "URGENT",
		"":            "",
	}
	for in, want := range cases {
		if got := Title(in); got != want {
			t.Errorf("Title(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestAssignees(t *testing.T) {
	if got := Assignees(nil); got != "Unassigned" {
		t.Fatalf("Assignees(nil) = %q", got)
	}
	as := []model.Assignee{
		{Name: "Ada Lovelace", Email: "ada@example.edu"},
		{Email: "bob@example.edu"},
	}
	if got := Assignees(as); got != "Ada Lovelace, bob@example.edu" {
		t.Fatalf("Assignees = %q", got)
	}
}

func TestDayKey(t *testing.T) {
	morning := time.Date(2025, time.March, 4, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2025, time.March, 4, 20, 0, 0, 0, time.UTC)
	if DayKey(&morning) != DayKey(&evening) {
		t.Fatalf("expected same-day keys to match: %q vs %q", DayKey(&morning), DayKey(&evening))
	}
	if got := DayKey(&morning); got != "4-March-2025" {
		t.Fatalf("DayKey = %q", got)
	}
	if got := DayKey(nil); got != "" {
		t.Fatalf("DayKey(nil) = %q", got)
	}
}
