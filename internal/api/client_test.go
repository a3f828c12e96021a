package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	if err := c.Get(context.Background(), "/api/tasks/", nil); err != nil {
		t.Fatalf("get: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("expected no Authorization header before SetToken, got %q", gotAuth)
	}

	c.SetToken("tok-123")
	if err := c.Get(context.Background(), "/api/tasks/", nil); err != nil {
		t.Fatalf("get: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("Authorization = %q", gotAuth)
	}

	c.SetToken("")
	if err := c.Get(context.Background(), "/api/tasks/", nil); err != nil {
		t.Fatalf("get: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("expected cleared Authorization header, got %q", gotAuth)
	}
}

func TestClient_ErrorMessageResolution(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"detail wins", `{"detail":"no such task","message":"ignored"}`, "no such task"},
		{"message fallback", `{"message":"bad input"}`, "bad input"},
		{"generic fallback", `{"other":"x"}`, "request failed"},
		{"non-json body", `<html>oops</html>`, "request failed"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			err := New(srv.URL).Get(context.Background(), "/api/tasks/", nil)
			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *Error, got %T (%v)", err, err)
			}
			if apiErr.Status != http.StatusBadRequest {
				t.Errorf("status = %d", apiErr.Status)
			}
			if apiErr.Message != tc.want {
				t.Errorf("message = %q, want %q", apiErr.Message, tc.want)
			}
		})
	}
}

func TestClient_NetworkFailureHasZeroStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	err := New(srv.URL).Get(context.Background(), "/api/tasks/", nil)
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if apiErr.Status != 0 {
		t.Fatalf("expected zero status for transport failure, got %d", apiErr.Status)
	}
}

func TestClient_ListTasksDecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tasks/" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"tasks":[{"id":1,"title":"a","department":"IT"},{"id":2,"title":"b","department":["IT","HR"]}]}`))
	}))
	defer srv.Close()

	tasks, err := New(srv.URL).ListTasks(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0].Departments[0] != "IT" || len(tasks[1].Departments) != 2 {
		t.Fatalf("departments decoded wrong: %v / %v", tasks[0].Departments, tasks[1].Departments)
	}
}

func TestClient_Login(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/auth/login/" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"token":"tok-9"}`))
	}))
	defer srv.Close()

	tok, err := New(srv.URL).Login(context.Background(), "a@b.c", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if tok != "tok-9" {
		t.Fatalf("token = %q", tok)
	}
}
