// Package guard decides whether a page may render for the current session.
//
// Decide is a pure, total function: every combination of session status, role
// and page kind maps to exactly one outcome. Pages consult it before mounting
// anything; commands consult it before touching the backend.
package guard

import (
	pocketbuddy "github.com/pocketbuddy/pocketbuddy-go"
	"github.com/pocketbuddy/pocketbuddy-go/session"
)

// PageKind classifies a page for gating purposes.
type PageKind int

const (
	// PagePublic renders for everyone (landing page).
	PagePublic PageKind = iota
	// PagePublicOnly renders only for anonymous visitors (login, register);
	// authenticated users are sent home instead.
	PagePublicOnly
	// PageProtected requires authentication, optionally narrowed to a role set.
	PageProtected
)

// Decision is the gating outcome.
type Decision int

const (
	// ShowLoading renders a neutral placeholder while the session is
	// unresolved. No redirect decision is made yet.
	ShowLoading Decision = iota
	// Render mounts the requested page.
	Render
	// RedirectLogin sends the visitor to the login entry point.
	RedirectLogin
	// RedirectHome sends the visitor to the default authenticated landing
	// page. Used for authenticated-but-unauthorized visitors, never login.
	RedirectHome
)

// String implements fmt.Stringer.
func (d Decision) String() string {
	switch d {
	case ShowLoading:
		return "loading"
	case Render:
		return "render"
	case RedirectLogin:
		return "redirect-login"
	case RedirectHome:
		return "redirect-home"
	default:
		return "unknown"
	}
}

// Decide gates a page of the given kind against the session state. The
// required set only applies to protected pages; an empty set means any
// authenticated user.
func Decide(status session.Status, role pocketbuddy.Role, required []pocketbuddy.Role, kind PageKind) Decision {
	if status == session.StatusUnresolved {
		return ShowLoading
	}

	switch kind {
	case PagePublic:
		return Render

	case PagePublicOnly:
		if status == session.StatusAuthenticated {
			return RedirectHome
		}
		return Render

	case PageProtected:
		if status != session.StatusAuthenticated {
			return RedirectLogin
		}
		if len(required) > 0 && !contains(required, role) {
			return RedirectHome
		}
		return Render
	}

	// Unmatched page kinds resolve deterministically.
	return RedirectHome
}

func contains(roles []pocketbuddy.Role, role pocketbuddy.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
