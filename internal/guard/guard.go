// package guard keeps protected views away from unauthenticated or
// not-yet-settled viewers.
//
// The decision logic is a pure transition table over session status;
// navigation happens only as a side effect of a settled transition, never
// while the session is still initializing. That makes the guard testable
// without any UI attached.
package guard

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/nobarhq/nobarctl/internal/session"
	"github.com/nobarhq/nobarctl/internal/shared"
)

// LoginPath is the navigation target for unauthenticated viewers.
const LoginPath = "/login"

// HomePath is where a fresh login lands.
const HomePath = "/tayangan"

// Decision is the guard's verdict for a protected view.
type Decision int

const (
	// DecisionWait: session has not settled; render a neutral loading
	// state and perform no navigation.
	DecisionWait Decision = iota
	// DecisionAllow: render the protected content.
	DecisionAllow
	// DecisionRedirect: navigate the viewer to [LoginPath].
	DecisionRedirect
)

func (d Decision) String() string {
	switch d {
	case DecisionWait:
		return "wait"
	case DecisionAllow:
		return "allow"
	case DecisionRedirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Evaluate maps session status to a guard decision. Pure; no side
// effects.
func Evaluate(status session.Status) Decision {
	switch status {
	case session.StatusAuthenticated:
		return DecisionAllow
	case session.StatusUnauthenticated:
		return DecisionRedirect
	default:
		return DecisionWait
	}
}

// Navigator performs the navigation side effect of a redirect decision.
// The TUI switches views, the CLI prints a login hint, and the browser
// helper opens a URL.
type Navigator interface {
	Navigate(path string) error
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(path string) error

func (f NavigatorFunc) Navigate(path string) error { return f(path) }

// Guard observes a session store and redirects unauthenticated viewers to
// the login entry point exactly once per unauthenticated settle. A
// session that authenticates and later expires re-arms the redirect.
type Guard struct {
	mu         sync.Mutex
	store      *session.Store
	nav        Navigator
	logger     *log.Logger
	redirected bool
}

// New creates a Guard over the given store and navigator.
func New(store *session.Store, nav Navigator, logger *log.Logger) *Guard {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Guard{store: store, nav: nav, logger: logger}
}

// Check evaluates the current session status and performs the redirect
// side effect if one is due. It returns the decision either way.
func (g *Guard) Check() Decision {
	return g.apply(g.store.Status())
}

// Watch subscribes the guard to the store so every status transition
// re-evaluates the decision (a session that expires mid-use must
// re-trigger the redirect). The returned function stops watching.
func (g *Guard) Watch() func() {
	return g.store.Subscribe(func(status session.Status) {
		g.apply(status)
	})
}

func (g *Guard) apply(status session.Status) Decision {
	decision := Evaluate(status)

	g.mu.Lock()
	fire := false
	switch decision {
	case DecisionAllow:
		// Re-arm so a later expiry redirects again.
		g.redirected = false
	case DecisionRedirect:
		if !g.redirected {
			g.redirected = true
			fire = true
		}
	}
	g.mu.Unlock()

	if fire && g.nav != nil {
		if err := g.nav.Navigate(LoginPath); err != nil {
			g.logger.Warnf("navigation to %s failed: %v", LoginPath, err)
		}
	}

	return decision
}
