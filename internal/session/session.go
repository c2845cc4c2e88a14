// package session holds the client's belief about the current
// authentication state and the credential attached to authorized requests.
//
// The store is constructed explicitly and passed by reference to every
// consumer; there is no package-level singleton. Mutation is restricted by
// convention: the auth controller transitions the store on login, logout
// and bootstrap, and the fetch client calls SetUnauthenticated when the
// backend rejects a credential. Everything else reads.
package session

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/nobarhq/nobarctl/internal/shared"
	"golang.org/x/oauth2"
)

// Status enumerates the session lifecycle states. Exactly one holds at any
// time.
type Status int

const (
	// StatusInitializing holds from construction until the durable-storage
	// restore settles. Consumers that redirect must not act on it.
	StatusInitializing Status = iota
	StatusAuthenticated
	StatusUnauthenticated
)

func (s Status) String() string {
	switch s {
	case StatusInitializing:
		return "initializing"
	case StatusAuthenticated:
		return "authenticated"
	case StatusUnauthenticated:
		return "unauthenticated"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// Subscriber is notified after every status transition with the new status.
type Subscriber func(Status)

// Store is the single source of truth for authentication status and
// credential. The credential is held as an [oauth2.Token] so expiry, when
// the backend provides one, invalidates a restored session locally.
type Store struct {
	mu          sync.Mutex
	status      Status
	token       *oauth2.Token
	storage     Storage
	logger      *log.Logger
	subscribers map[int]Subscriber
	nextSubID   int
}

// NewStore creates a Store in the initializing state backed by the given
// durable storage. Call [Store.Restore] to settle it.
func NewStore(storage Storage, logger *log.Logger) *Store {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Store{
		status:      StatusInitializing,
		storage:     storage,
		logger:      logger,
		subscribers: map[int]Subscriber{},
	}
}

// Status returns the current session status without blocking.
func (s *Store) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Credential returns the access token and true only when the session is
// authenticated. No request may present a credential otherwise.
func (s *Store) Credential() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusAuthenticated || s.token == nil {
		return "", false
	}
	return s.token.AccessToken, true
}

// Restore attempts to load a persisted credential and settles the store.
// An absent or expired stored credential is a normal unauthenticated
// outcome, not an error. Only storage read failures are returned.
func (s *Store) Restore() error {
	token, err := s.storage.Load()
	if err != nil {
		s.transition(StatusUnauthenticated, nil)
		return fmt.Errorf("failed to restore session: %w", err)
	}

	if token == nil || token.AccessToken == "" {
		s.logger.Debug("no stored credential")
		s.transition(StatusUnauthenticated, nil)
		return nil
	}

	if !token.Expiry.IsZero() && !token.Valid() {
		s.logger.Debug("stored credential expired, discarding")
		if err := s.storage.Clear(); err != nil {
			s.logger.Warnf("failed to clear expired credential: %v", err)
		}
		s.transition(StatusUnauthenticated, nil)
		return nil
	}

	s.transition(StatusAuthenticated, token)
	return nil
}

// SetAuthenticated transitions the store to authenticated and persists the
// credential so it survives restarts.
func (s *Store) SetAuthenticated(token *oauth2.Token) error {
	if token == nil || token.AccessToken == "" {
		return fmt.Errorf("%w: empty credential", shared.ErrInvalidInput)
	}

	if err := s.storage.Save(token); err != nil {
		return fmt.Errorf("failed to persist credential: %w", err)
	}

	s.transition(StatusAuthenticated, token)
	return nil
}

// SetUnauthenticated clears the credential from memory and durable storage
// and transitions the store to unauthenticated. Clearing storage is
// best-effort; the in-memory state always transitions.
func (s *Store) SetUnauthenticated() error {
	var clearErr error
	if err := s.storage.Clear(); err != nil {
		clearErr = fmt.Errorf("failed to clear stored credential: %w", err)
		s.logger.Warnf("%v", clearErr)
	}

	s.transition(StatusUnauthenticated, nil)
	return clearErr
}

// Subscribe registers fn to be called after every status transition.
// The returned function removes the subscription.
func (s *Store) Subscribe(fn Subscriber) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

// transition updates status and credential together and notifies
// subscribers outside the lock.
func (s *Store) transition(status Status, token *oauth2.Token) {
	s.mu.Lock()
	prev := s.status
	s.status = status
	s.token = token
	subs := make([]Subscriber, 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	if prev != status {
		s.logger.Debugf("session %s -> %s", prev, status)
	}

	for _, fn := range subs {
		fn(status)
	}
}
