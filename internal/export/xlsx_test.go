package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"taskdesk/internal/model"
)

func TestTasks_RowCountAndColumnOrder(t *testing.T) {
	due := time.Date(2025, time.April, 10, 14, 30, 0, 0, time.UTC)
	created := time.Date(2025, time.April, 1, 9, 0, 0, 0, time.UTC)
	done := time.Date(2025, time.April, 8, 16, 0, 0, 0, time.UTC)

	tasks := []model.Task{
		{
			ID:          "1",
			Title:       "Prepare exam schedule",
			Description: "Draft and circulate the schedule",
			Assignees:   []model.Assignee{{Name: "Ada Lovelace"}, {Email: "bob@example.edu"}},
			Departments: []string{"IT", "Science"},
			Status:      model.StatusCompleted,
			Priority:    model.PriorityHigh,
			DueAt:       &due,
			CreatedAt:   &created,
			CompletedAt: &done,
		},
		{
			ID:       "2",
			Title:    "Order lab supplies",
			Status:   model.StatusPending,
			Priority: model.PriorityLow,
		},
	}

	var buf bytes.Buffer
	if err := Tasks(tasks, &buf); err != nil {
		t.Fatalf("export: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	// 1 header + 2 data rows.
	if len(rows) != 3 {
		t.Fatalf("row count = %d, want 3", len(rows))
	}

	for i, want := range Headers {
		if rows[0][i] != want {
			t.Errorf("header[%d] = %q, want %q", i, rows[0][i], want)
		}
	}

	first := rows[1]
	if first[0] != "1" || first[1] != "Prepare exam schedule" {
		t.Errorf("first row start = %v", first[:2])
	}
	if first[3] != "Ada Lovelace, bob@example.edu" {
		t.Errorf("assignees = %q", first[3])
	}
	if first[4] != "IT, Science" {
		t.Errorf("departments = %q", first[4])
	}
	if first[5] != "Completed" || first[6] != "High" {
		t.Errorf("status/priority = %q/%q", first[5], first[6])
	}
	if first[7] != "Apr 10, 2025 2:30 PM" {
		t.Errorf("due = %q", first[7])
	}
	if first[8] != "Apr 1, 2025" || first[9] != "Apr 8, 2025" {
		t.Errorf("created/completed = %q/%q", first[8], first[9])
	}

	second := rows[2]
	if second[3] != "Unassigned" {
		t.Errorf("unassigned row = %q", second[3])
	}
	for _, idx := range []int{7, 8, 9} {
		if second[idx] != "-" {
			t.Errorf("absent date col %d = %q, want placeholder", idx, second[idx])
		}
	}
}
