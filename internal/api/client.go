package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/nobarhq/nobarctl/internal/session"
	"github.com/nobarhq/nobarctl/internal/shared"
	"golang.org/x/time/rate"
)

// Envelope describes one outbound request. Body, when present, is a
// pre-serialized JSON payload; the client never performs domain
// serialization itself.
type Envelope struct {
	Path       string
	Method     string // defaults to GET
	Body       []byte
	Authorized bool // attach the session credential
}

// Payload is the uniform response envelope every backend endpoint
// returns. Data holds the domain payload; Message is a human-readable
// status string surfaced to the user on mutating operations.
type Payload struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// Client performs backend calls with uniform envelope handling.
//
// The client performs no retries: each Send is exactly-once from the
// subsystem's perspective, and callers own any sequencing between their
// own requests.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      *session.Store
	limiter    *rate.Limiter
	logger     *log.Logger
}

// ClientOpts contains configuration options for creating a Client.
type ClientOpts struct {
	BaseURL    string
	HTTPClient *http.Client
	Store      *session.Store
	RateLimit  float64 // requests per second, 0 disables limiting
	Logger     *log.Logger
}

// NewClient creates a Client for the backend at opts.BaseURL.
func NewClient(opts ClientOpts) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = "http://localhost:8000"
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	}

	return &Client{
		baseURL:    opts.BaseURL,
		httpClient: opts.HTTPClient,
		store:      opts.Store,
		limiter:    limiter,
		logger:     opts.Logger,
	}
}

// Send performs one backend call described by env.
//
// When env.Authorized is set and no credential is available the request
// is never dispatched and Send fails with [shared.ErrAuthRequired]. A
// backend rejection of the credential (401/403) tears the session down
// via the store before failing with [shared.ErrUnauthorized].
func (c *Client) Send(ctx context.Context, env Envelope) (*Payload, error) {
	method := env.Method
	if method == "" {
		method = http.MethodGet
	}

	var credential string
	if env.Authorized {
		if c.store == nil {
			return nil, fmt.Errorf("%w: no session store attached", shared.ErrAuthRequired)
		}
		cred, ok := c.store.Credential()
		if !ok {
			return nil, fmt.Errorf("%w: %s %s", shared.ErrAuthRequired, method, env.Path)
		}
		credential = cred
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrNetwork, err)
		}
	}

	reqID := shared.GenerateID()
	c.logger.Debugf("request %s: %s %s (authorized=%v)", reqID, method, env.Path, env.Authorized)

	var reqBody io.Reader
	if env.Body != nil {
		reqBody = bytes.NewReader(env.Body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+env.Path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if env.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if credential != "" {
		req.Header.Set("Authorization", "Bearer "+credential)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", shared.ErrNetwork, err)
	}

	c.logger.Debugf("request %s: status %d", reqID, resp.StatusCode)

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		// Stale sessions self-heal: tear down before surfacing the failure
		// so every subscriber sees unauthenticated first.
		if env.Authorized {
			if err := c.store.SetUnauthenticated(); err != nil {
				c.logger.Warnf("request %s: session teardown: %v", reqID, err)
			}
		}
		if msg := extractMessage(body); msg != "" {
			return nil, fmt.Errorf("%w: %s", shared.ErrUnauthorized, msg)
		}
		return nil, fmt.Errorf("%w: status %d", shared.ErrUnauthorized, resp.StatusCode)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if msg := extractMessage(body); msg != "" {
			return nil, fmt.Errorf("%w: %s", shared.ErrBadResponse, msg)
		}
		return nil, fmt.Errorf("%w: status %d", shared.ErrBadResponse, resp.StatusCode)
	}

	var payload Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: failed to parse response envelope: %v", shared.ErrBadResponse, err)
	}

	return &payload, nil
}

// extractMessage pulls the message field out of an error body, if the
// body is a parseable envelope.
func extractMessage(body []byte) string {
	var payload Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Message
}
