package session

import (
	"database/sql"
	"fmt"
	"time"

	"golang.org/x/oauth2"
)

// SQLiteStorage persists the credential in a single-row session table.
// The table is created on first use.
type SQLiteStorage struct {
	db *sql.DB
}

const sessionSchema = `
	CREATE TABLE IF NOT EXISTS session (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		access_token TEXT NOT NULL,
		token_type TEXT NOT NULL DEFAULT '',
		expiry TIMESTAMP,
		updated_at TIMESTAMP NOT NULL
	)
`

// NewSQLiteStorage creates a SQLiteStorage on the given connection and
// ensures the session table exists.
func NewSQLiteStorage(db *sql.DB) (*SQLiteStorage, error) {
	if _, err := db.Exec(sessionSchema); err != nil {
		return nil, fmt.Errorf("failed to create session table: %w", err)
	}
	return &SQLiteStorage{db: db}, nil
}

func (s *SQLiteStorage) Load() (*oauth2.Token, error) {
	query := `SELECT access_token, token_type, expiry FROM session WHERE id = 1`

	var (
		accessToken string
		tokenType   string
		expiry      sql.NullTime
	)

	err := s.db.QueryRow(query).Scan(&accessToken, &tokenType, &expiry)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session: %w", err)
	}

	token := &oauth2.Token{AccessToken: accessToken, TokenType: tokenType}
	if expiry.Valid {
		token.Expiry = expiry.Time
	}

	return token, nil
}

func (s *SQLiteStorage) Save(token *oauth2.Token) error {
	query := `
		INSERT INTO session (id, access_token, token_type, expiry, updated_at)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			access_token = excluded.access_token,
			token_type = excluded.token_type,
			expiry = excluded.expiry,
			updated_at = excluded.updated_at
	`

	var expiry any
	if !token.Expiry.IsZero() {
		expiry = token.Expiry
	}

	if _, err := s.db.Exec(query, token.AccessToken, token.TokenType, expiry, time.Now()); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

func (s *SQLiteStorage) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM session WHERE id = 1`); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
