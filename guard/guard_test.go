package guard

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	pocketbuddy "github.com/pocketbuddy/pocketbuddy-go"
	"github.com/pocketbuddy/pocketbuddy-go/session"
)

var adminOnly = []pocketbuddy.Role{pocketbuddy.RoleAdmin}
var staff = []pocketbuddy.Role{pocketbuddy.RoleAdmin, pocketbuddy.RoleTeacher}

func TestDecide_UnresolvedAlwaysLoads(t *testing.T) {
	// While the session restores, no page of any kind commits to a redirect.
	for _, kind := range []PageKind{PagePublic, PagePublicOnly, PageProtected} {
		got := Decide(session.StatusUnresolved, pocketbuddy.RoleAdmin, adminOnly, kind)
		assert.Equal(t, ShowLoading, got, "kind %d", kind)
	}
}

func TestDecide_PublicPage(t *testing.T) {
	assert.Equal(t, Render, Decide(session.StatusAnonymous, "", nil, PagePublic))
	assert.Equal(t, Render, Decide(session.StatusAuthenticated, pocketbuddy.RoleStudent, nil, PagePublic))
}

func TestDecide_PublicOnlyPage(t *testing.T) {
	// Anonymous visitors may log in or register.
	assert.Equal(t, Render, Decide(session.StatusAnonymous, "", nil, PagePublicOnly))

	// Authenticated users are sent home, never shown the login page again.
	assert.Equal(t, RedirectHome, Decide(session.StatusAuthenticated, pocketbuddy.RoleStudent, nil, PagePublicOnly))
}

func TestDecide_ProtectedPage(t *testing.T) {
	tests := []struct {
		name     string
		status   session.Status
		role     pocketbuddy.Role
		required []pocketbuddy.Role
		want     Decision
	}{
		{"anonymous is sent to login", session.StatusAnonymous, "", adminOnly, RedirectLogin},
		{"matching role renders", session.StatusAuthenticated, pocketbuddy.RoleAdmin, adminOnly, Render},
		{"wrong role goes home, not to login", session.StatusAuthenticated, pocketbuddy.RoleStudent, adminOnly, RedirectHome},
		{"any of the required roles admits", session.StatusAuthenticated, pocketbuddy.RoleTeacher, staff, Render},
		{"empty set admits any authenticated user", session.StatusAuthenticated, pocketbuddy.RoleStudent, nil, Render},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.status, tt.role, tt.required, PageProtected))
		})
	}
}

// TestDecide_Total walks the full input space: every status, role and kind
// combination resolves to exactly one of the four defined outcomes.
func TestDecide_Total(t *testing.T) {
	statuses := []session.Status{session.StatusUnresolved, session.StatusAuthenticated, session.StatusAnonymous}
	roles := []pocketbuddy.Role{"", pocketbuddy.RoleAdmin, pocketbuddy.RoleTeacher, pocketbuddy.RoleStudent}
	requiredSets := [][]pocketbuddy.Role{nil, adminOnly, staff}
	kinds := []PageKind{PagePublic, PagePublicOnly, PageProtected, PageKind(99)}

	for _, status := range statuses {
		for _, role := range roles {
			for _, required := range requiredSets {
				for _, kind := range kinds {
					got := Decide(status, role, required, kind)
					assert.Contains(t,
						[]Decision{ShowLoading, Render, RedirectLogin, RedirectHome}, got,
						fmt.Sprintf("status=%v role=%q required=%v kind=%d", status, role, required, kind))
				}
			}
		}
	}
}

func TestDecide_UnknownKindResolvesDeterministically(t *testing.T) {
	first := Decide(session.StatusAuthenticated, pocketbuddy.RoleAdmin, nil, PageKind(42))
	second := Decide(session.StatusAuthenticated, pocketbuddy.RoleAdmin, nil, PageKind(42))
	assert.Equal(t, first, second)
	assert.Equal(t, RedirectHome, first)
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "loading", ShowLoading.String())
	assert.Equal(t, "render", Render.String())
	assert.Equal(t, "redirect-login", RedirectLogin.String())
	assert.Equal(t, "redirect-home", RedirectHome.String())
	assert.Equal(t, "unknown", Decision(99).String())
}
