package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"taskdesk/internal/api"
	"taskdesk/internal/model"
)

// State is the session lifecycle. Exactly one state holds at any time;
// consumers must not branch on the Principal while StateLoading holds.
type State int

const (
	StateLoading State = iota
	StateUnauthenticated
	StateAuthenticated
)

var errUnknownRole = errors.New("identity has no recognized role")

// Store is the single source of truth for "who is logged in". It owns the
// Principal and the request client's token; views only read.
type Store struct {
	client *api.Client

	mu           sync.RWMutex
	state        State
	principal    *model.Principal
	bootstrapped bool
}

func NewStore(client *api.Client) *Store {
	return &Store{client: client, state: StateLoading}
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Principal returns a copy of the authenticated identity, or nil.
func (s *Store) Principal() *model.Principal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.principal == nil {
		return nil
	}
	p := *s.principal
	return &p
}

// Bootstrap restores a persisted session, probing the identity endpoint to
// validate the token. It runs at most once per process; later calls are
// no-ops. Any failure (missing token, rejected token, network error) resolves
// to unauthenticated and wipes both persistence scopes.
func (s *Store) Bootstrap(ctx context.Context) {
	s.mu.Lock()
	if s.bootstrapped {
		s.mu.Unlock()
		return
	}
	s.bootstrapped = true
	s.mu.Unlock()

	stored, err := loadScope(ScopeRemembered)
	if err != nil || stored == nil {
		if stored, err = loadScope(ScopeSession); err != nil || stored == nil {
			s.resolve(nil)
			return
		}
	}

	s.client.SetToken(stored.Token)
	p, err := s.fetchPrincipal(ctx, stored.Token)
	if err != nil {
		s.client.SetToken("")
		clearAllScopes()
		s.resolve(nil)
		return
	}
	s.resolve(p)
}

// Login exchanges credentials for a token and establishes the Principal.
// The Principal only exists once the identity fetch succeeds; a token whose
// identity fetch fails is discarded entirely. On success the session is
// persisted to the remembered scope (remember=true) or the session scope.
func (s *Store) Login(ctx context.Context, email, password string, remember bool) (*model.Principal, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	token, err := s.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	s.client.SetToken(token)
	p, err := s.fetchPrincipal(ctx, token)
	if err != nil {
		s.client.SetToken("")
		clearAllScopes()
		s.resolve(nil)
		return nil, err
	}

	clearAllScopes()
	scope := ScopeSession
	if remember {
		scope = ScopeRemembered
	}
	if err := saveScope(scope, p); err != nil {
		s.client.SetToken("")
		s.resolve(nil)
		return nil, err
	}
	s.resolve(p)
	return p, nil
}

// Logout clears the Principal, the client token and both persistence scopes
// so no stale token survives.
func (s *Store) Logout() {
	s.client.SetToken("")
	clearAllScopes()
	s.resolve(nil)
}

// Demote clears an established Principal without touching credentials on the
// backend. The route guard uses this when a role check fails.
func (s *Store) Demote() {
	s.Logout()
}

func (s *Store) fetchPrincipal(ctx context.Context, token string) (*model.Principal, error) {
	id, err := s.client.Info(ctx)
	if err != nil {
		return nil, err
	}
	role, ok := model.ParseRole(id.Role)
	if !ok {
		return nil, errUnknownRole
	}
	return &model.Principal{
		ID:    id.ID.String(),
		Name:  id.Name,
		Email: id.Email,
		Role:  role,
		Token: token,
	}, nil
}

func (s *Store) resolve(p *model.Principal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.principal = p
	if p == nil {
		s.state = StateUnauthenticated
	} else {
		s.state = StateAuthenticated
	}
}
