package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"taskdesk/internal/api"
	"taskdesk/internal/model"
	"taskdesk/internal/session"
)

func asciiProfile(t *testing.T) {
	t.Helper()
	old := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.Ascii)
	t.Cleanup(func() { lipgloss.SetColorProfile(old) })
}

// plain strips any remaining escape sequences (cursor styling from the text
// inputs survives the ascii profile) so assertions see bare text.
func plain(s string) string {
	return xansi.Strip(s)
}

func newTestModel(t *testing.T, baseURL string) appModel {
	t.Helper()
	t.Setenv("TASKDESK_CONFIG_DIR", t.TempDir())
	t.Setenv("TASKDESK_STATE_DIR", t.TempDir())
	client := api.New(baseURL)
	return newAppModel(client, session.NewStore(client))
}

func sampleTasks(n int) []model.Task {
	created := time.Date(2025, 3, 4, 13, 5, 0, 0, time.UTC)
	out := make([]model.Task, 0, n)
	for i := 1; i <= n; i++ {
		c := created.Add(time.Duration(i) * time.Hour)
		out = append(out, model.Task{
			ID:          fmt.Sprintf("t%d", i),
			Title:       fmt.Sprintf("Task %02d", i),
			Description: "short text",
			Departments: []string{"IT"},
			Status:      model.StatusPending,
			Priority:    model.PriorityLow,
			CreatedAt:   &c,
		})
	}
	return out
}

func key(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	panic("unknown key " + s)
}

func TestParseFilterSpec(t *testing.T) {
	cases := []struct {
		in         string
		key, value string
		ok         bool
	}{
		{"status=Pending", "status", "Pending", true},
		{" department = IT ", "department", "IT", true},
		{"status=", "status", "", true},
		{"nodelimiter", "", "", false},
		{"=value", "", "", false},
	}
	for _, tc := range cases {
		key, value, ok := parseFilterSpec(tc.in)
		if key != tc.key || value != tc.value || ok != tc.ok {
			t.Fatalf("parseFilterSpec(%q) = %q, %q, %v; want %q, %q, %v",
				tc.in, key, value, ok, tc.key, tc.value, tc.ok)
		}
	}
}

func TestTasksViewPagination(t *testing.T) {
	asciiProfile(t)
	m := newTestModel(t, "http://127.0.0.1:0")
	m.view = viewTasks
	m.tasks.SetRecords(sampleTasks(12))

	out := m.tasksView()
	if !strings.Contains(out, "page 1/3") {
		t.Fatalf("expected page 1/3 in view, got:\n%s", out)
	}
	if !strings.Contains(out, "Task 01") || strings.Contains(out, "Task 06") {
		t.Fatalf("page 1 should show rows 1-5 only, got:\n%s", out)
	}

	next, _ := m.Update(key("right"))
	m = next.(appModel)
	next, _ = m.Update(key("right"))
	m = next.(appModel)
	out = m.tasksView()
	if !strings.Contains(out, "page 3/3") || !strings.Contains(out, "Task 11") {
		t.Fatalf("expected last page with Task 11, got:\n%s", out)
	}
	// Sequence numbers keep counting across pages.
	if !strings.Contains(out, "11 ") {
		t.Fatalf("expected absolute row numbering on page 3, got:\n%s", out)
	}

	// Paging past the end is a no-op.
	next, _ = m.Update(key("right"))
	m = next.(appModel)
	if m.tasks.Page() != 3 {
		t.Fatalf("page = %d after overshoot, want 3", m.tasks.Page())
	}
}

func TestTasksViewFilterPrompt(t *testing.T) {
	asciiProfile(t)
	m := newTestModel(t, "http://127.0.0.1:0")
	m.view = viewTasks
	tasks := sampleTasks(6)
	tasks[0].Departments = []string{"Science"}
	m.tasks.SetRecords(tasks)
	m.tasks.SetPage(2)

	m.openPrompt(promptFilter)
	m.prompt.input.SetValue("department=Science")
	next, _ := m.Update(key("enter"))
	m = next.(appModel)

	if m.prompt != nil {
		t.Fatal("prompt should close on enter")
	}
	if got := len(m.tasks.Rows()); got != 1 {
		t.Fatalf("filtered rows = %d, want 1", got)
	}
	if m.tasks.Page() != 1 {
		t.Fatalf("filter change must reset to page 1, got %d", m.tasks.Page())
	}
}

func TestTasksViewExpandToggle(t *testing.T) {
	asciiProfile(t)
	m := newTestModel(t, "http://127.0.0.1:0")
	m.view = viewTasks
	tasks := sampleTasks(1)
	tasks[0].Description = "one two three four five six seven eight nine"
	m.tasks.SetRecords(tasks)

	out := plain(m.tasksView())
	if !strings.Contains(out, "one two three") {
		t.Fatalf("collapsed description should show the leading words, got:\n%s", out)
	}
	if strings.Contains(out, "eight nine") {
		t.Fatalf("collapsed description must hide the tail, got:\n%s", out)
	}

	next, _ := m.Update(key("enter"))
	m = next.(appModel)
	out = plain(m.tasksView())
	if !strings.Contains(out, "eight nine") {
		t.Fatalf("expanded description should show the full text, got:\n%s", out)
	}
}

func TestStaleFetchDropped(t *testing.T) {
	m := newTestModel(t, "http://127.0.0.1:0")
	m.view = viewTasks
	m.tasks.SetRecords(sampleTasks(3))
	m.tasksSeq = 7

	next, _ := m.Update(tasksLoadedMsg{seq: 6, tasks: nil, err: "boom"})
	m = next.(appModel)
	if m.loadErr != "" {
		t.Fatalf("stale error leaked into view state: %q", m.loadErr)
	}
	if got := len(m.tasks.Rows()); got != 3 {
		t.Fatalf("stale result replaced records: %d rows", got)
	}
}

func TestFetchErrorShowsEmptyState(t *testing.T) {
	asciiProfile(t)
	m := newTestModel(t, "http://127.0.0.1:0")
	m.view = viewTasks
	m.tasks.SetRecords(sampleTasks(3))
	m.tasksSeq = 1

	next, _ := m.Update(tasksLoadedMsg{seq: 1, err: "connection refused"})
	m = next.(appModel)
	if m.loadErr != "connection refused" {
		t.Fatalf("loadErr = %q", m.loadErr)
	}
	if !strings.Contains(plain(m.tasksView()), "No tasks found") {
		t.Fatal("failed fetch should fall back to the empty state")
	}
	if !strings.Contains(plain(m.View()), "connection refused") {
		t.Fatal("fetch error should surface in the footer")
	}
}

func facultyBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"token": "tok-1"})
	})
	mux.HandleFunc("/api/auth/info/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"id": 9, "name": "Fay", "email": "fay@example.edu", "role": "faculty",
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestGuardDenyDropsToLogin(t *testing.T) {
	asciiProfile(t)
	srv := facultyBackend(t)
	m := newTestModel(t, srv.URL)
	if _, err := m.sess.Login(context.Background(), "fay@example.edu", "pw", false); err != nil {
		t.Fatalf("login: %v", err)
	}
	m.view = viewTasks

	// A faculty session pressing "u" goes nowhere.
	next, _ := m.Update(key("u"))
	m = next.(appModel)
	if m.view != viewTasks {
		t.Fatalf("faculty should stay on tasks, got %s", viewToString(m.view))
	}

	// Forcing the protected route drops the session to the login screen.
	if m.gate(viewUsers) {
		t.Fatal("gate should deny faculty the users view")
	}
	if m.view != viewLogin {
		t.Fatalf("deny should land on login, got %s", viewToString(m.view))
	}
	if m.sess.State() != session.StateUnauthenticated {
		t.Fatal("deny should demote the session")
	}
	// The denial message must not confirm that the page exists.
	if !strings.Contains(plain(m.loginView()), "Please log in to continue") {
		t.Fatal("deny should show the generic login message")
	}
}

func TestLoginValidation(t *testing.T) {
	asciiProfile(t)
	m := newTestModel(t, "http://127.0.0.1:0")
	m.view = viewLogin

	next, _ := m.Update(key("enter"))
	m = next.(appModel)
	if !strings.Contains(plain(m.loginView()), "Please enter your email") {
		t.Fatal("empty email should be rejected before any request")
	}

	m.login.email.SetValue("fay@example.edu")
	next, _ = m.Update(key("enter"))
	m = next.(appModel)
	if !strings.Contains(plain(m.loginView()), "Please enter your password") {
		t.Fatal("empty password should be rejected before any request")
	}
}

func TestLogoutResetsTables(t *testing.T) {
	srv := facultyBackend(t)
	m := newTestModel(t, srv.URL)
	if _, err := m.sess.Login(context.Background(), "fay@example.edu", "pw", false); err != nil {
		t.Fatalf("login: %v", err)
	}
	m.view = viewTasks
	m.tasks.SetRecords(sampleTasks(4))

	next, _ := m.Update(key("L"))
	m = next.(appModel)
	if m.view != viewLogin {
		t.Fatalf("logout should land on login, got %s", viewToString(m.view))
	}
	if len(m.tasks.Rows()) != 0 {
		t.Fatal("logout should clear fetched records")
	}
	if m.sess.State() != session.StateUnauthenticated {
		t.Fatal("logout should clear the session")
	}
}
