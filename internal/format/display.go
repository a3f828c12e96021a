package format

import (
	"fmt"
	"strings"
	"time"

	"taskdesk/internal/model"
)

// Placeholder is rendered wherever a timestamp is absent.
const Placeholder = "-"

// DateTime renders the long table form, e.g. "4-March-2025 (1:30 P.M)".
func DateTime(t *time.Time) string {
	if t == nil {
		return Placeholder
	}
	hour := t.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	marker := "A.M"
	if t.Hour() >= 12 {
		marker = "P.M"
	}
	return fmt.Sprintf("%d-%s-%d (%d:%02d %s)", t.Day(), t.Month().String(), t.Year(), hour, t.Minute(), marker)
}

// Date renders the short form used in exports, e.g. "Mar 4, 2025".
func Date(t *time.Time) string {
	if t == nil {
		return Placeholder
	}
	return t.Format("Jan 2, 2006")
}

// DayKey renders the day-granularity key used for date filter options,
// e.g. "4-March-2025". Times within the same day collapse to one option.
func DayKey(t *time.Time) string {
	if t == nil {
		return ""
	}
	return fmt.Sprintf("%d-%s-%d", t.Day(), t.Month().String(), t.Year())
}

// Title capitalizes a status or priority value for display:
// "in_progress" -> "In Progress".
func Title(s string) string {
	words := strings.FieldsFunc(strings.TrimSpace(s), func(r rune) bool {
		return r == '_' || r == ' '
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Assignees joins assignee display names with commas; empty means unassigned.
func Assignees(as []model.Assignee) string {
	if len(as) == 0 {
		return "Unassigned"
	}
	parts := make([]string, 0, len(as))
	for _, a := range as {
		parts = append(parts, a.Display())
	}
	return strings.Join(parts, ", ")
}

// Departments joins the derived department set with commas.
func Departments(ds []string) string {
	return strings.Join(ds, ", ")
}
