// Package guard decides whether a protected view may be shown based on
// the locally stored session. The check is presence-only: it asks
// whether a token exists, not whether the server still honors it. An
// expired token is caught by the first API call, which clears it.
package guard

import "github.com/vkarpenko/credo/internal/client/session"

// State describes what the guard currently knows about the session.
type State int

const (
	// StateChecking means a session check is in flight.
	StateChecking State = iota
	// StateAuthenticated means a token is present locally.
	StateAuthenticated
	// StateUnauthenticated means no token is stored.
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateChecking:
		return "checking"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Action is what the caller should do with the current view.
type Action int

const (
	// ActionWait means the check has not finished; show nothing yet.
	ActionWait Action = iota
	// ActionRedirect means navigate to Decision.Target instead.
	ActionRedirect
	// ActionRender means the requested view may be shown.
	ActionRender
)

// Decision is the guard's verdict for a view.
type Decision struct {
	Action Action
	Target string
}

// DecideProtected gates a view that requires a session. While the check
// runs nothing is rendered; without a session the caller is sent to
// loginTarget.
func DecideProtected(s State, loginTarget string) Decision {
	switch s {
	case StateChecking:
		return Decision{Action: ActionWait}
	case StateAuthenticated:
		return Decision{Action: ActionRender}
	default:
		return Decision{Action: ActionRedirect, Target: loginTarget}
	}
}

// DecideEntry gates a signed-out view such as login or registration.
// A caller that already has a session is sent to homeTarget instead.
func DecideEntry(s State, homeTarget string) Decision {
	switch s {
	case StateChecking:
		return Decision{Action: ActionWait}
	case StateAuthenticated:
		return Decision{Action: ActionRedirect, Target: homeTarget}
	default:
		return Decision{Action: ActionRender}
	}
}

// Guard tracks the session state across asynchronous checks. Checks are
// numbered; a result delivered for a superseded check is discarded, so
// a slow stale check can never overwrite a newer outcome.
type Guard struct {
	state State
	gen   uint64
}

// New returns a Guard in the checking state.
func New() *Guard {
	return &Guard{state: StateChecking}
}

// State returns the current session state.
func (g *Guard) State() State { return g.state }

// Begin starts a new check. The state moves to checking and the
// returned generation must be passed to Resolve.
func (g *Guard) Begin() uint64 {
	g.gen++
	g.state = StateChecking
	return g.gen
}

// Resolve delivers the outcome of a check. Outcomes from superseded
// generations are ignored; Resolve reports whether the outcome was
// applied.
func (g *Guard) Resolve(gen uint64, authenticated bool) bool {
	if gen != g.gen {
		return false
	}
	if authenticated {
		g.state = StateAuthenticated
	} else {
		g.state = StateUnauthenticated
	}
	return true
}

// Check performs a synchronous presence check against the store and
// records the result.
func (g *Guard) Check(store session.Store) (State, error) {
	gen := g.Begin()
	token, err := store.Token()
	if err != nil {
		g.Resolve(gen, false)
		return g.state, err
	}
	g.Resolve(gen, token != "")
	return g.state, nil
}
