// package api implements the authorized fetch client for the nobar
// backend.
//
// Every backend call goes through [Client.Send], which attaches the
// session credential when the request demands it, normalizes responses
// into the backend's uniform {data, message} envelope, and maps failures
// onto the shared error taxonomy (ErrAuthRequired, ErrUnauthorized,
// ErrBadResponse, ErrNetwork). Typed wrappers for the auth, favorites and
// tayangan endpoints live alongside it.
package api
