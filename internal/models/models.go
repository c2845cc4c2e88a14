package models

import (
	"fmt"
	"time"
)

// CanonicalTimestamp converts ts to its canonical form: an ISO-8601
// instant in UTC with the fractional-seconds group stripped.
//
// The canonical form is the stable key for a favorite. It is used both as
// the DELETE request body and as the detail-page path segment, so it must
// be byte-identical across the client and the web frontend. The operation
// is idempotent: canonicalizing an already-canonical timestamp returns it
// unchanged.
func CanonicalTimestamp(ts string) (string, error) {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return "", fmt.Errorf("failed to parse timestamp %q: %w", ts, err)
	}
	return t.UTC().Format("2006-01-02T15:04:05Z"), nil
}

// IsCanonicalTimestamp reports whether ts is already in canonical form.
func IsCanonicalTimestamp(ts string) bool {
	canon, err := CanonicalTimestamp(ts)
	if err != nil {
		return false
	}
	return ts == canon
}

// Favorite is one row of the user's favorites list. The backend owns the
// full shape; the client relies only on the fields below.
//
// The pair (Timestamp, Username) uniquely identifies a favorite.
type Favorite struct {
	Timestamp string `json:"timestamp"`
	Username  string `json:"username"`
	Judul     string `json:"judul"`
	URL       string `json:"url_video,omitempty"`
}

// Key returns the composite row key for the favorite.
func (f Favorite) Key() string {
	return fmt.Sprintf("%s===%s", f.Timestamp, f.Username)
}

// DetailPath returns the web detail-page path for the favorite,
// /favorites/<canonical-timestamp>.
func (f Favorite) DetailPath() (string, error) {
	canon, err := CanonicalTimestamp(f.Timestamp)
	if err != nil {
		return "", err
	}
	return "/favorites/" + canon, nil
}

// AddedAt parses the favorite's timestamp for display purposes.
func (f Favorite) AddedAt() (time.Time, error) {
	t, err := time.Parse(time.RFC3339, f.Timestamp)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", f.Timestamp, err)
	}
	return t, nil
}

// Tayangan is a single show or movie in the catalog listings.
type Tayangan struct {
	ID          string `json:"id"`
	Judul       string `json:"judul"`
	Sinopsis    string `json:"sinopsis,omitempty"`
	ReleaseDate string `json:"release_date,omitempty"`
	TotalView   int    `json:"total_view,omitempty"`
}

// LoginRequest is the credentials payload for POST /api/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks that both fields are present.
func (r LoginRequest) Validate() error {
	if r.Username == "" {
		return fmt.Errorf("username is required")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

// DeleteFavoriteRequest is the body for DELETE /api/favorites/. Timestamp
// must be canonical.
type DeleteFavoriteRequest struct {
	Timestamp string `json:"timestamp"`
}
