package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Request error taxonomy.
	//
	// ErrAuthRequired: the caller asked for an authorized request while no
	// credential was available. The request is never dispatched; this is a
	// contract violation by the caller, not a backend outcome.
	ErrAuthRequired = fmt.Errorf("credential required but none available")
	// ErrUnauthorized: the backend rejected the credential. The session
	// store is torn down before this error is surfaced.
	ErrUnauthorized = fmt.Errorf("backend rejected credential")
	// ErrBadResponse: backend-reported domain error carrying a user-facing
	// message.
	ErrBadResponse = fmt.Errorf("backend reported an error")
	// ErrNetwork: transport-level failure, no backend message available.
	ErrNetwork = fmt.Errorf("network request failed")

	// Authentication errors
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrTokenExpired     = fmt.Errorf("access token expired")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
