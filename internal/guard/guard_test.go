package guard

import (
	"testing"

	"github.com/nobarhq/nobarctl/internal/session"
	tu "github.com/nobarhq/nobarctl/internal/testing"
	"golang.org/x/oauth2"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name   string
		status session.Status
		want   Decision
	}{
		{"Initializing Waits", session.StatusInitializing, DecisionWait},
		{"Authenticated Allows", session.StatusAuthenticated, DecisionAllow},
		{"Unauthenticated Redirects", session.StatusUnauthenticated, DecisionRedirect},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(tt.status); got != tt.want {
				t.Errorf("Evaluate(%s) = %s, want %s", tt.status, got, tt.want)
			}
		})
	}
}

func TestGuardCheck(t *testing.T) {
	t.Run("Never Redirects While Initializing", func(t *testing.T) {
		store := session.NewStore(session.NewMemoryStorage(), nil)
		nav := &tu.RecordingNavigator{}
		g := New(store, nav, nil)

		if got := g.Check(); got != DecisionWait {
			t.Errorf("expected wait, got %s", got)
		}
		if len(nav.Visited()) != 0 {
			t.Errorf("expected no navigation, got %v", nav.Visited())
		}
	})

	t.Run("Redirects Exactly Once When Unauthenticated", func(t *testing.T) {
		store := session.NewStore(session.NewMemoryStorage(), nil)
		store.Restore()
		nav := &tu.RecordingNavigator{}
		g := New(store, nav, nil)

		if got := g.Check(); got != DecisionRedirect {
			t.Errorf("expected redirect, got %s", got)
		}
		g.Check()
		g.Check()

		visited := nav.Visited()
		if len(visited) != 1 {
			t.Fatalf("expected exactly one navigation, got %v", visited)
		}
		if visited[0] != LoginPath {
			t.Errorf("expected navigation to %s, got %s", LoginPath, visited[0])
		}
	})

	t.Run("Allows Authenticated Viewer", func(t *testing.T) {
		store := session.NewStore(session.NewMemoryStorage(), nil)
		store.Restore()
		store.SetAuthenticated(&oauth2.Token{AccessToken: "tok"})
		nav := &tu.RecordingNavigator{}
		g := New(store, nav, nil)

		if got := g.Check(); got != DecisionAllow {
			t.Errorf("expected allow, got %s", got)
		}
		if len(nav.Visited()) != 0 {
			t.Errorf("expected no navigation, got %v", nav.Visited())
		}
	})

	t.Run("Expiry After Login Re-Arms The Redirect", func(t *testing.T) {
		store := session.NewStore(session.NewMemoryStorage(), nil)
		store.Restore()
		nav := &tu.RecordingNavigator{}
		g := New(store, nav, nil)

		g.Check() // first redirect
		store.SetAuthenticated(&oauth2.Token{AccessToken: "tok"})
		g.Check() // allow, re-arms
		store.SetUnauthenticated()
		g.Check() // second redirect

		if got := len(nav.Visited()); got != 2 {
			t.Errorf("expected two navigations across two settles, got %d", got)
		}
	})
}

func TestGuardWatch(t *testing.T) {
	t.Run("Reacts To Session Transitions", func(t *testing.T) {
		store := session.NewStore(session.NewMemoryStorage(), nil)
		nav := &tu.RecordingNavigator{}
		g := New(store, nav, nil)

		stop := g.Watch()
		defer stop()

		store.Restore() // settles unauthenticated
		if got := len(nav.Visited()); got != 1 {
			t.Fatalf("expected one navigation after settle, got %d", got)
		}

		store.SetAuthenticated(&oauth2.Token{AccessToken: "tok"})
		store.SetUnauthenticated() // mid-use expiry

		if got := len(nav.Visited()); got != 2 {
			t.Errorf("expected redirect to re-trigger on expiry, got %d navigations", got)
		}
	})

	t.Run("Stop Detaches The Guard", func(t *testing.T) {
		store := session.NewStore(session.NewMemoryStorage(), nil)
		nav := &tu.RecordingNavigator{}
		g := New(store, nav, nil)

		stop := g.Watch()
		stop()

		store.Restore()
		if got := len(nav.Visited()); got != 0 {
			t.Errorf("expected no navigation after stop, got %d", got)
		}
	})
}

func TestDecisionString(t *testing.T) {
	tests := []struct {
		decision Decision
		want     string
	}{
		{DecisionWait, "wait"},
		{DecisionAllow, "allow"},
		{DecisionRedirect, "redirect"},
		{Decision(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.decision.String(); got != tt.want {
			t.Errorf("Decision(%d).String() = %q, want %q", tt.decision, got, tt.want)
		}
	}
}
