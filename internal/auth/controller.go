// package auth orchestrates login, logout and session bootstrap against
// the backend, keeping the session store consistent.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/nobarhq/nobarctl/internal/api"
	"github.com/nobarhq/nobarctl/internal/models"
	"github.com/nobarhq/nobarctl/internal/session"
	"github.com/nobarhq/nobarctl/internal/shared"
	"golang.org/x/oauth2"
)

// Controller is the only component that transitions the session store on
// login, logout and bootstrap.
type Controller struct {
	client *api.Client
	store  *session.Store
	logger *log.Logger
}

// NewController creates a Controller over the given client and store.
func NewController(client *api.Client, store *session.Store, logger *log.Logger) *Controller {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Controller{client: client, store: store, logger: logger}
}

// Login authenticates against the backend and persists the returned
// credential. On failure the store stays (or becomes) unauthenticated and
// the backend's message travels with the error for display.
func (c *Controller) Login(ctx context.Context, creds models.LoginRequest) (string, error) {
	token, message, err := c.client.Login(ctx, creds)
	if err != nil {
		if c.store.Status() == session.StatusInitializing {
			if serr := c.store.SetUnauthenticated(); serr != nil {
				c.logger.Warnf("session teardown after failed login: %v", serr)
			}
		}
		return "", fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	if err := c.store.SetAuthenticated(&oauth2.Token{AccessToken: token}); err != nil {
		return "", fmt.Errorf("login succeeded but session could not be saved: %w", err)
	}

	c.logger.Infof("logged in as %s", creds.Username)
	return message, nil
}

// Logout calls the backend logout endpoint best-effort and then
// unconditionally tears down the local session. A network failure never
// blocks local teardown.
func (c *Controller) Logout(ctx context.Context) string {
	var message string
	if _, ok := c.store.Credential(); ok {
		msg, err := c.client.Logout(ctx)
		if err != nil {
			c.logger.Warnf("backend logout failed, clearing local session anyway: %v", err)
		} else {
			message = msg
		}
	}

	if err := c.store.SetUnauthenticated(); err != nil {
		c.logger.Warnf("%v", err)
	}

	return message
}

// Bootstrap settles the session store at application start. It restores
// the credential from durable storage and then validates it with one
// authorized probe against the backend; a rejected credential is a normal
// "not logged in" outcome, not an error.
//
// Only storage and transport failures are returned.
func (c *Controller) Bootstrap(ctx context.Context) error {
	if err := c.store.Restore(); err != nil {
		return err
	}

	if c.store.Status() != session.StatusAuthenticated {
		return nil
	}

	// The favorites listing is the cheapest authorized endpoint the
	// backend exposes, so it doubles as the validation probe. An
	// ErrUnauthorized result has already torn the session down inside the
	// fetch client.
	if _, err := c.client.ListFavorites(ctx); err != nil {
		if errors.Is(err, shared.ErrUnauthorized) {
			c.logger.Debug("stored credential rejected by backend")
			return nil
		}
		return fmt.Errorf("session validation failed: %w", err)
	}

	return nil
}
