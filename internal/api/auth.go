package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/nobarhq/nobarctl/internal/models"
	"github.com/nobarhq/nobarctl/internal/shared"
)

// Login calls POST /api/login with the given credentials and returns the
// session credential from the response data. The call is deliberately
// unauthorized: it must work with no session present.
//
// The backend has returned the credential both as a bare JSON string and
// as a {"token": ...} object across versions, so both shapes are
// accepted.
func (c *Client) Login(ctx context.Context, creds models.LoginRequest) (string, string, error) {
	if err := creds.Validate(); err != nil {
		return "", "", fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	body, err := json.Marshal(creds)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal credentials: %w", err)
	}

	payload, err := c.Send(ctx, Envelope{
		Path:   "/api/login",
		Method: http.MethodPost,
		Body:   body,
	})
	if err != nil {
		return "", "", err
	}

	token, err := extractToken(payload.Data)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", shared.ErrBadResponse, err)
	}

	return token, payload.Message, nil
}

// Logout calls POST /api/logout. The caller treats failures as
// best-effort; local session teardown proceeds regardless.
func (c *Client) Logout(ctx context.Context) (string, error) {
	payload, err := c.Send(ctx, Envelope{
		Path:       "/api/logout",
		Method:     http.MethodPost,
		Authorized: true,
	})
	if err != nil {
		return "", err
	}
	return payload.Message, nil
}

// extractToken reads the session credential out of the login response
// data.
func extractToken(data json.RawMessage) (string, error) {
	var token string
	if err := json.Unmarshal(data, &token); err == nil && token != "" {
		return token, nil
	}

	var wrapped struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Token != "" {
		return wrapped.Token, nil
	}

	return "", fmt.Errorf("login response contains no credential")
}
