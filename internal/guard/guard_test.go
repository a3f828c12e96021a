package guard

import (
	"testing"

	"taskdesk/internal/model"
	"taskdesk/internal/session"
)

func principal(role model.Role) *model.Principal {
	return &model.Principal{ID: "1", Name: "Ada", Role: role}
}

func TestCheck_WaitsWhileLoading(t *testing.T) {
	if got := Check(session.StateLoading, nil, model.RoleAdmin); got != Wait {
		t.Fatalf("decision = %v, want Wait", got)
	}
	// Even with a stale principal attached, loading always waits.
	if got := Check(session.StateLoading, principal(model.RoleAdmin), model.RoleAdmin); got != Wait {
		t.Fatalf("decision = %v, want Wait", got)
	}
}

func TestCheck_DeniesWithoutPrincipal(t *testing.T) {
	if got := Check(session.StateUnauthenticated, nil, model.RoleAdmin); got != Deny {
		t.Fatalf("decision = %v, want Deny", got)
	}
}

func TestCheck_RoleMembership(t *testing.T) {
	p := principal(model.RoleFaculty)
	if got := Check(session.StateAuthenticated, p, model.RoleFaculty); got != Allow {
		t.Fatalf("decision = %v, want Allow", got)
	}
	if got := Check(session.StateAuthenticated, p, model.RoleAdmin, model.RoleHeadOfDepartment); got != Deny {
		t.Fatalf("decision = %v, want Deny", got)
	}
}

func TestCheckNames_CaseInsensitive(t *testing.T) {
	for _, spelling := range []string{"ADMIN", "Admin", "admin"} {
		role, ok := model.ParseRole(spelling)
		if !ok {
			t.Fatalf("ParseRole(%q) failed", spelling)
		}
		got := CheckNames(session.StateAuthenticated, principal(role), "Admin")
		if got != Allow {
			t.Errorf("principal role %q against [Admin]: decision = %v, want Allow", spelling, got)
		}
	}
}

func TestCheckNames_UnrecognizedAllowedNameNeverMatches(t *testing.T) {
	got := CheckNames(session.StateAuthenticated, principal(model.RoleAdmin), "wizard")
	if got != Deny {
		t.Fatalf("decision = %v, want Deny", got)
	}
}
