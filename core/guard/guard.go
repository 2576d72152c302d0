// Package guard is the access-control checkpoint wrapping protected
// views. It never renders protected content for an unresolved or
// rejected session; rejection always resolves into a navigation.
package guard

import "github.com/elimu-lms/elimu/core/session"

type State int

const (
	// StateLoading: session rehydration has not completed yet; render
	// nothing.
	StateLoading State = iota
	// StateUnauthenticated: no user; redirect to the entry view.
	StateUnauthenticated
	// StateWrongRole: user present but the view requires another role;
	// redirect to the user's own home, never to a forbidden page.
	StateWrongRole
	// StateAuthorized: render the protected view.
	StateAuthorized
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateWrongRole:
		return "wrong-role"
	case StateAuthorized:
		return "authorized"
	}
	return "unknown"
}

// Resolution is the outcome for one protected view. Redirect is set
// exactly when the view must not render.
type Resolution struct {
	State    State
	Redirect string
}

func (r Resolution) Authorized() bool { return r.State == StateAuthorized }

// Resolve decides access for a view requiring requiredRole ("" means
// any authenticated user).
func Resolve(sess session.Session, requiredRole string) Resolution {
	if !sess.Authenticated() {
		return Resolution{State: StateUnauthenticated, Redirect: "/"}
	}
	if requiredRole != "" && sess.User.Role != requiredRole {
		return Resolution{State: StateWrongRole, Redirect: "/" + sess.User.Role + "/dashboard"}
	}
	return Resolution{State: StateAuthorized}
}

// Gate tracks one view's lifecycle: it reports StateLoading until the
// session store's rehydration is observed, then resolves.
type Gate struct {
	requiredRole string
	resolved     bool
	resolution   Resolution
}

func NewGate(requiredRole string) *Gate {
	return &Gate{requiredRole: requiredRole}
}

// Observe records the rehydrated session and resolves the gate.
func (g *Gate) Observe(sess session.Session) Resolution {
	g.resolution = Resolve(sess, g.requiredRole)
	g.resolved = true
	return g.resolution
}

// Resolution returns the current outcome; before Observe it is
// StateLoading with no redirect.
func (g *Gate) Resolution() Resolution {
	if !g.resolved {
		return Resolution{State: StateLoading}
	}
	return g.resolution
}
