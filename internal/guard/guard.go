// Package guard gates role-scoped surfaces on the session state. A surface
// renders only when the session is resolved and the principal's role is in
// the allowed set; while the session is loading the only correct answer is
// to wait, never to redirect.
package guard

import (
	"taskdesk/internal/model"
	"taskdesk/internal/session"
)

type Decision int

const (
	// Wait: session still bootstrapping; render a neutral waiting state.
	Wait Decision = iota
	// Allow: principal present and role permitted.
	Allow
	// Deny: no principal or role not permitted. Both cases look identical
	// to the caller so gated surfaces are never confirmed to exist.
	Deny
)

// Check evaluates a principal against an allowed-role set.
func Check(state session.State, p *model.Principal, allowed ...model.Role) Decision {
	if state == session.StateLoading {
		return Wait
	}
	if state != session.StateAuthenticated || p == nil {
		return Deny
	}
	for _, role := range allowed {
		if p.Role == role {
			return Allow
		}
	}
	return Deny
}

// CheckNames is Check over free-text role names ("Admin", "HOD", ...). Names
// run through the same normalization as principal construction, so casing
// never matters; unrecognized names simply never match.
func CheckNames(state session.State, p *model.Principal, names ...string) Decision {
	allowed := make([]model.Role, 0, len(names))
	for _, name := range names {
		if role, ok := model.ParseRole(name); ok {
			allowed = append(allowed, role)
		}
	}
	return Check(state, p, allowed...)
}
