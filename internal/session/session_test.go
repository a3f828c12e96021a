package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"taskdesk/internal/api"
	"taskdesk/internal/model"
)

// fakeBackend serves login + identity with a single accepted token.
func fakeBackend(t *testing.T, acceptToken string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login/":
			w.Write([]byte(`{"token":"` + acceptToken + `"}`))
		case "/api/auth/info/":
			if r.Header.Get("Authorization") != "Bearer "+acceptToken {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"detail":"invalid token"}`))
				return
			}
			w.Write([]byte(`{"id":1,"name":"Ada","email":"ada@example.edu","role":"Admin"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func isolateDirs(t *testing.T) (cfgDir, stateDir string) {
	t.Helper()
	cfgDir = t.TempDir()
	stateDir = t.TempDir()
	t.Setenv("TASKDESK_CONFIG_DIR", cfgDir)
	t.Setenv("TASKDESK_STATE_DIR", stateDir)
	return cfgDir, stateDir
}

func sessionFileExists(t *testing.T, dir string) bool {
	t.Helper()
	_, err := os.Stat(filepath.Join(dir, sessionFile))
	return err == nil
}

func TestBootstrap_NoToken(t *testing.T) {
	isolateDirs(t)
	srv := fakeBackend(t, "tok")

	s := NewStore(api.New(srv.URL))
	if s.State() != StateLoading {
		t.Fatalf("expected loading before bootstrap")
	}
	s.Bootstrap(context.Background())
	if s.State() != StateUnauthenticated {
		t.Fatalf("state = %v, want unauthenticated", s.State())
	}
	if s.Principal() != nil {
		t.Fatalf("expected nil principal")
	}
}

func TestBootstrap_ValidPersistedToken(t *testing.T) {
	isolateDirs(t)
	srv := fakeBackend(t, "tok-valid")

	if err := saveScope(ScopeRemembered, &model.Principal{Token: "tok-valid"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	s := NewStore(api.New(srv.URL))
	s.Bootstrap(context.Background())
	if s.State() != StateAuthenticated {
		t.Fatalf("state = %v, want authenticated", s.State())
	}
	p := s.Principal()
	if p == nil || p.Role != model.RoleAdmin || p.Email != "ada@example.edu" {
		t.Fatalf("principal = %+v", p)
	}
}

func TestBootstrap_RejectedTokenClearsBothScopes(t *testing.T) {
	cfgDir, stateDir := isolateDirs(t)
	srv := fakeBackend(t, "tok-valid")

	if err := saveScope(ScopeRemembered, &model.Principal{Token: "tok-stale"}); err != nil {
		t.Fatalf("seed remembered: %v", err)
	}
	if err := saveScope(ScopeSession, &model.Principal{Token: "tok-stale"}); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	s := NewStore(api.New(srv.URL))
	s.Bootstrap(context.Background())
	if s.State() != StateUnauthenticated {
		t.Fatalf("state = %v, want unauthenticated", s.State())
	}
	if sessionFileExists(t, cfgDir) || sessionFileExists(t, stateDir) {
		t.Fatalf("expected both scopes wiped after rejected token")
	}
}

func TestBootstrap_RunsOnce(t *testing.T) {
	isolateDirs(t)
	srv := fakeBackend(t, "tok-valid")

	s := NewStore(api.New(srv.URL))
	s.Bootstrap(context.Background())

	// A token persisted after the first bootstrap must not be picked up.
	if err := saveScope(ScopeRemembered, &model.Principal{Token: "tok-valid"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	s.Bootstrap(context.Background())
	if s.State() != StateUnauthenticated {
		t.Fatalf("second bootstrap should be a no-op")
	}
}

func TestLogin_RememberFalseUsesSessionScopeOnly(t *testing.T) {
	cfgDir, stateDir := isolateDirs(t)
	srv := fakeBackend(t, "tok-valid")

	s := NewStore(api.New(srv.URL))
	s.Bootstrap(context.Background())
	if _, err := s.Login(context.Background(), "Ada@Example.edu", "pw", false); err != nil {
		t.Fatalf("login: %v", err)
	}
	if sessionFileExists(t, cfgDir) {
		t.Fatalf("remember=false must not touch the remembered scope")
	}
	if !sessionFileExists(t, stateDir) {
		t.Fatalf("remember=false should persist to the session scope")
	}

	// Simulate the tab closing: the session scope is wiped, and a fresh
	// process bootstraps unauthenticated.
	os.Remove(filepath.Join(stateDir, sessionFile))
	fresh := NewStore(api.New(srv.URL))
	fresh.Bootstrap(context.Background())
	if fresh.State() != StateUnauthenticated {
		t.Fatalf("expected unauthenticated bootstrap after session scope wipe")
	}
}

func TestLogin_RememberTrueSurvivesRestart(t *testing.T) {
	isolateDirs(t)
	srv := fakeBackend(t, "tok-valid")

	s := NewStore(api.New(srv.URL))
	s.Bootstrap(context.Background())
	if _, err := s.Login(context.Background(), "ada@example.edu", "pw", true); err != nil {
		t.Fatalf("login: %v", err)
	}

	fresh := NewStore(api.New(srv.URL))
	fresh.Bootstrap(context.Background())
	if fresh.State() != StateAuthenticated {
		t.Fatalf("expected remembered session to survive a new process")
	}
}

func TestLogin_IdentityFailureLeavesNoHalfState(t *testing.T) {
	cfgDir, stateDir := isolateDirs(t)

	// Login succeeds but the identity endpoint rejects the issued token.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login/":
			w.Write([]byte(`{"token":"tok-broken"}`))
		case "/api/auth/info/":
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail":"invalid token"}`))
		}
	}))
	defer srv.Close()

	s := NewStore(api.New(srv.URL))
	s.Bootstrap(context.Background())
	if _, err := s.Login(context.Background(), "ada@example.edu", "pw", true); err == nil {
		t.Fatalf("expected login to fail")
	}
	if s.State() != StateUnauthenticated || s.Principal() != nil {
		t.Fatalf("expected fully reverted state, got %v / %+v", s.State(), s.Principal())
	}
	if sessionFileExists(t, cfgDir) || sessionFileExists(t, stateDir) {
		t.Fatalf("expected no persisted session after identity failure")
	}
}

func TestLogin_UnknownRoleRejected(t *testing.T) {
	isolateDirs(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login/":
			w.Write([]byte(`{"token":"tok"}`))
		case "/api/auth/info/":
			w.Write([]byte(`{"id":1,"name":"X","email":"x@example.edu","role":"intern"}`))
		}
	}))
	defer srv.Close()

	s := NewStore(api.New(srv.URL))
	s.Bootstrap(context.Background())
	if _, err := s.Login(context.Background(), "x@example.edu", "pw", false); err == nil {
		t.Fatalf("expected unknown role to be rejected")
	}
	if s.State() != StateUnauthenticated {
		t.Fatalf("state = %v", s.State())
	}
}

func TestLogout_ClearsBothScopes(t *testing.T) {
	cfgDir, stateDir := isolateDirs(t)
	srv := fakeBackend(t, "tok-valid")

	s := NewStore(api.New(srv.URL))
	s.Bootstrap(context.Background())
	if _, err := s.Login(context.Background(), "ada@example.edu", "pw", true); err != nil {
		t.Fatalf("login: %v", err)
	}
	s.Logout()
	if s.State() != StateUnauthenticated || s.Principal() != nil {
		t.Fatalf("expected unauthenticated after logout")
	}
	if sessionFileExists(t, cfgDir) || sessionFileExists(t, stateDir) {
		t.Fatalf("expected both scopes cleared on logout")
	}
}
