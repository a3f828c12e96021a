// Package table implements the filter -> sort -> paginate pipeline shared by
// every record table in the client. It is pure view logic: no network, no
// I/O, no side effects beyond its own state.
package table

import (
	"sort"
	"strings"
	"time"
)

// PageSize is the fixed number of rows per page.
const PageSize = 5

// Column describes one table column over records of type R. Value renders
// the cell; filtering and sorting both operate on rendered values, not raw
// fields (multi-valued fields compare against their joined display string;
// multi-select filtering is deliberately unsupported).
type Column[R any] struct {
	Key   string
	Title string
	Value func(R) string

	// FilterValue, when set, derives the value used for filter matching and
	// option lists instead of Value. Date columns use this to collapse cell
	// timestamps to day-granularity options.
	FilterValue func(R) string

	// Time, when set, marks the column date-like: sorting is chronological
	// and filter options are ordered by descending recency.
	Time func(R) *time.Time

	Filterable bool
	Sortable   bool
}

func (c Column[R]) filterValue(r R) string {
	if c.FilterValue != nil {
		return c.FilterValue(r)
	}
	return c.Value(r)
}

// Engine holds the records and the ephemeral view state of one table
// instance. State is discarded with the engine; nothing is persisted.
type Engine[R any] struct {
	records []R
	cols    []Column[R]
	id      func(R) string

	filters  map[string]string
	sortKey  string
	sortAsc  bool
	page     int
	expanded map[string]bool
}

// New builds an engine over an ordered record sequence. id keys row
// expansion state; it must be stable across re-renders.
func New[R any](records []R, cols []Column[R], id func(R) string) *Engine[R] {
	return &Engine[R]{
		records:  records,
		cols:     cols,
		id:       id,
		filters:  map[string]string{},
		page:     1,
		expanded: map[string]bool{},
	}
}

func (e *Engine[R]) Columns() []Column[R] { return e.cols }

// SetRecords replaces the collection after a re-fetch. Filters, sort and
// expansion survive; the page is clamped to the new bounds.
func (e *Engine[R]) SetRecords(records []R) {
	e.records = records
	e.clampPage()
}

func (e *Engine[R]) column(key string) (Column[R], bool) {
	for _, c := range e.cols {
		if c.Key == key {
			return c, true
		}
	}
	var zero Column[R]
	return zero, false
}

// SetFilter activates an equality filter on a column; an empty value clears
// it. Any filter change resets to page 1.
func (e *Engine[R]) SetFilter(key, value string) {
	if _, ok := e.column(key); !ok {
		return
	}
	if value == "" {
		delete(e.filters, key)
	} else {
		e.filters[key] = value
	}
	e.page = 1
}

func (e *Engine[R]) Filter(key string) string { return e.filters[key] }

func (e *Engine[R]) Filtered() bool { return len(e.filters) > 0 }

// ResetFilters clears every active filter and returns to page 1.
func (e *Engine[R]) ResetFilters() {
	e.filters = map[string]string{}
	e.page = 1
}

// Options returns the distinct non-empty filter values observed across ALL
// input records (not just the currently filtered ones). Date-like columns
// are ordered by descending recency, others by first appearance.
func (e *Engine[R]) Options(key string) []string {
	col, ok := e.column(key)
	if !ok || !col.Filterable {
		return nil
	}
	seen := map[string]bool{}
	var out []string
	latest := map[string]time.Time{}
	for _, r := range e.records {
		v := col.filterValue(r)
		if strings.TrimSpace(v) == "" {
			continue
		}
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
		if col.Time != nil {
			if ts := col.Time(r); ts != nil && ts.After(latest[v]) {
				latest[v] = *ts
			}
		}
	}
	if col.Time != nil {
		sort.SliceStable(out, func(i, j int) bool {
			return latest[out[i]].After(latest[out[j]])
		})
	}
	return out
}

// matches reports whether a record passes every active filter (logical AND).
func (e *Engine[R]) matches(r R) bool {
	for key, want := range e.filters {
		col, ok := e.column(key)
		if !ok {
			continue
		}
		if col.filterValue(r) != want {
			return false
		}
	}
	return true
}

// ToggleSort sorts by key ascending, or flips direction when the key is
// already active.
func (e *Engine[R]) ToggleSort(key string) {
	col, ok := e.column(key)
	if !ok || !col.Sortable {
		return
	}
	if e.sortKey == key {
		e.sortAsc = !e.sortAsc
		return
	}
	e.sortKey = key
	e.sortAsc = true
}

// Sort returns the active sort key ("" when unsorted) and direction.
func (e *Engine[R]) Sort() (string, bool) { return e.sortKey, e.sortAsc }

// Rows returns the filtered, sorted sequence. Equal sort keys keep their
// relative order from the filtered sequence (stable sort).
func (e *Engine[R]) Rows() []R {
	out := make([]R, 0, len(e.records))
	for _, r := range e.records {
		if e.matches(r) {
			out = append(out, r)
		}
	}
	col, ok := e.column(e.sortKey)
	if !ok {
		return out
	}
	less := func(a, b R) bool {
		if col.Time != nil {
			ta, tb := col.Time(a), col.Time(b)
			switch {
			case ta == nil && tb == nil:
				return false
			case ta == nil:
				return true
			case tb == nil:
				return false
			default:
				return ta.Before(*tb)
			}
		}
		return col.Value(a) < col.Value(b)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if e.sortAsc {
			return less(out[i], out[j])
		}
		return less(out[j], out[i])
	})
	return out
}

// TotalPages is ceil(filtered count / page size).
func (e *Engine[R]) TotalPages() int {
	n := len(e.Rows())
	return (n + PageSize - 1) / PageSize
}

func (e *Engine[R]) Page() int { return e.page }

// SetPage moves to page n, clamped to [1, TotalPages]. Out-of-range moves
// are no-ops on displayed state.
func (e *Engine[R]) SetPage(n int) {
	max := e.TotalPages()
	if max < 1 {
		max = 1
	}
	if n < 1 {
		n = 1
	}
	if n > max {
		n = max
	}
	e.page = n
}

func (e *Engine[R]) NextPage() { e.SetPage(e.page + 1) }
func (e *Engine[R]) PrevPage() { e.SetPage(e.page - 1) }

func (e *Engine[R]) clampPage() { e.SetPage(e.page) }

// PageRows returns the rows of the current page.
func (e *Engine[R]) PageRows() []R {
	rows := e.Rows()
	start := (e.page - 1) * PageSize
	if start >= len(rows) {
		return nil
	}
	end := start + PageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

// PageStart is the zero-based index of the first row on the current page,
// used for sequence numbering.
func (e *Engine[R]) PageStart() int {
	return (e.page - 1) * PageSize
}

// ToggleExpand flips the read more/less state for a row. State is keyed by
// record id and survives re-renders of this engine instance only.
func (e *Engine[R]) ToggleExpand(r R) {
	id := e.id(r)
	e.expanded[id] = !e.expanded[id]
}

func (e *Engine[R]) Expanded(r R) bool {
	return e.expanded[e.id(r)]
}

const excerptWords = 7

// Excerpt truncates text to its first 7 words with a continuation ellipsis;
// expanded text passes through whole.
func Excerpt(text string, expanded bool) string {
	if expanded {
		return text
	}
	words := strings.Fields(text)
	if len(words) <= excerptWords {
		return text
	}
	return strings.Join(words[:excerptWords], " ") + "..."
}

// Expandable reports whether text is long enough to need a toggle.
func Expandable(text string) bool {
	return len(strings.Fields(text)) > excerptWords
}
