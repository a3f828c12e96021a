// Package export produces spreadsheet snapshots of task collections. Export
// always covers the full fetched collection, never the filtered or paginated
// subset shown on screen.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"taskdesk/internal/format"
	"taskdesk/internal/model"
)

const sheetName = "Tasks"

// DefaultFilename is the suggested download name.
const DefaultFilename = "tasks_report.xlsx"

// Headers is the fixed column order of the report.
var Headers = []string{
	"S.No",
	"Title",
	"Description",
	"Assignee(s)",
	"Department",
	"Status",
	"Priority",
	"Due Date",
	"Created Date",
	"Completed Date",
}

var columnWidths = []float64{5, 20, 30, 25, 20, 10, 10, 18, 12, 12}

// Tasks writes one worksheet with a header row plus one row per task.
func Tasks(tasks []model.Task, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}

	for i, h := range Headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return err
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheetName, col, col, columnWidths[i]); err != nil {
			return err
		}
	}

	// Bold, shaded header row.
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E6E6FA"}},
	})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(Headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, "A1", last, headerStyle); err != nil {
		return err
	}

	for i, task := range tasks {
		values := []any{
			i + 1,
			task.Title,
			task.Description,
			format.Assignees(task.Assignees),
			format.Departments(task.Departments),
			format.Title(string(task.Status)),
			format.Title(string(task.Priority)),
			dueDate(task.DueAt),
			format.Date(task.CreatedAt),
			format.Date(task.CompletedAt),
		}
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return err
			}
		}
	}

	_, err = f.WriteTo(w)
	return err
}

func dueDate(t *time.Time) string {
	if t == nil {
		return format.Placeholder
	}
	return fmt.Sprintf("%s %d:%02d %s", t.Format("Jan 2, 2006"), hour12(t), t.Minute(), t.Format("PM"))
}

func hour12(t *time.Time) int {
	h := t.Hour() % 12
	if h == 0 {
		h = 12
	}
	return h
}
