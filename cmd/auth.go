package main

import (
	"context"
	"fmt"

	"github.com/nobarhq/nobarctl/internal/models"
	"github.com/nobarhq/nobarctl/internal/session"
	"github.com/urfave/cli/v3"
)

// AuthLogin authenticates against the backend and persists the returned
// credential.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	creds := models.LoginRequest{
		Username: cmd.String("username"),
		Password: cmd.String("password"),
	}

	r.logger.Infof("logging in as %s", creds.Username)

	message, err := r.controller.Login(ctx, creds)
	if err != nil {
		// Surface the backend's message inline, the way the web login form
		// shows it.
		return fmt.Errorf("login failed: %w", err)
	}

	if message != "" {
		r.writePlain("%s\n", message)
	}
	return r.writePlain("✓ Logged in as %s\n", creds.Username)
}

// AuthLogout tears the session down. The backend call is best-effort;
// the local credential is always cleared.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.controller.Bootstrap(ctx); err != nil {
		r.logger.Warnf("bootstrap before logout: %v", err)
	}

	if message := r.controller.Logout(ctx); message != "" {
		r.writePlain("%s\n", message)
	}

	return r.writePlain("✓ Logged out\n")
}

// AuthStatus settles the session (including backend validation of a
// stored credential) and reports the resulting state.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if err := r.controller.Bootstrap(ctx); err != nil {
		return err
	}

	switch r.store.Status() {
	case session.StatusAuthenticated:
		return r.writePlain("Session: ✓ authenticated\n")
	default:
		return r.writePlain("Session: ✗ not authenticated\n")
	}
}
