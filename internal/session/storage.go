package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"taskdesk/internal/config"
	"taskdesk/internal/model"
)

// Scope selects where a session is persisted. The remembered scope survives
// restarts (the "remember me" store); the session scope lives under the
// machine's volatile temp area and is treated as tab-lifetime.
type Scope int

const (
	ScopeRemembered Scope = iota
	ScopeSession
)

const sessionFile = "session.json"

// StateDir resolves the session-scope directory.
func StateDir() (string, error) {
	if v := strings.TrimSpace(os.Getenv("TASKDESK_STATE_DIR")); v != "" {
		return v, nil
	}
	return filepath.Join(os.TempDir(), "taskdesk"), nil
}

func scopePath(scope Scope) (string, error) {
	var dir string
	var err error
	switch scope {
	case ScopeRemembered:
		dir, err = config.Dir()
	case ScopeSession:
		dir, err = StateDir()
	default:
		return "", errors.New("unknown session scope")
	}
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, sessionFile), nil
}

func loadScope(scope Scope) (*model.Principal, error) {
	path, err := scopePath(scope)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var p model.Principal
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, err
	}
	if strings.TrimSpace(p.Token) == "" {
		return nil, nil
	}
	return &p, nil
}

func saveScope(scope Scope, p *model.Principal) error {
	path, err := scopePath(scope)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return atomicWriteFile(dir, sessionFile+".*.tmp", path, b, 0o600)
}

func clearScope(scope Scope) {
	if path, err := scopePath(scope); err == nil {
		_ = os.Remove(path)
	}
}

func clearAllScopes() {
	clearScope(ScopeRemembered)
	clearScope(ScopeSession)
}

// atomicWriteFile writes via a unique temp file + rename so concurrent
// taskdesk processes cannot corrupt each other's session file.
func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}
