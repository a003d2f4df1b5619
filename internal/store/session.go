package store

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"time"

	"quizmaster/internal/model"
)

const webSessionTTL = 24 * time.Hour

// CreateWebSession creates a browser session for a user under the given role
// and returns the opaque token.
func (s *Store) CreateWebSession(userID int64, role model.Role) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	now := time.Now()
	_, err = s.db.Exec(
		`INSERT INTO web_sessions (id, user_id, role, created_at, expires_at) VALUES (?, ?, ?, ?, ?)`,
		token, userID, role, now, now.Add(webSessionTTL),
	)
	if err != nil {
		return "", err
	}
	return token, nil
}

// GetWebSession returns the session for the given token, or nil if it is
// missing or expired. Expired sessions are removed on read.
func (s *Store) GetWebSession(token string) (*model.WebSession, error) {
	var sess model.WebSession
	err := s.db.QueryRow(
		`SELECT id, user_id, role, created_at, expires_at FROM web_sessions WHERE id = ?`, token,
	).Scan(&sess.ID, &sess.UserID, &sess.Role, &sess.CreatedAt, &sess.ExpiresAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if time.Now().After(sess.ExpiresAt) {
		_ = s.DeleteWebSession(token)
		return nil, nil
	}
	return &sess, nil
}

// DeleteWebSession removes a session and its stored values.
func (s *Store) DeleteWebSession(token string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.Exec(`DELETE FROM session_values WHERE session_id = ?`, token); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM web_sessions WHERE id = ?`, token); err != nil {
		return err
	}
	return tx.Commit()
}

// CleanupExpiredSessions removes all expired sessions and their values.
func (s *Store) CleanupExpiredSessions() error {
	_, err := s.db.Exec(
		`DELETE FROM session_values WHERE session_id IN
		 (SELECT id FROM web_sessions WHERE expires_at < ?)`, time.Now(),
	)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`DELETE FROM web_sessions WHERE expires_at < ?`, time.Now())
	return err
}

// SetSessionValue upserts a key-value pair scoped to one session.
func (s *Store) SetSessionValue(sessionID, key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO session_values (session_id, key, value) VALUES (?, ?, ?)
		 ON CONFLICT(session_id, key) DO UPDATE SET value = ?`,
		sessionID, key, value, value,
	)
	return err
}

// GetSessionValue returns the value for a session key.
// Returns empty string and nil error if the key is missing.
func (s *Store) GetSessionValue(sessionID, key string) (string, error) {
	var value string
	err := s.db.QueryRow(
		`SELECT value FROM session_values WHERE session_id = ? AND key = ?`, sessionID, key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// DeleteSessionValue removes a session key.
func (s *Store) DeleteSessionValue(sessionID, key string) error {
	_, err := s.db.Exec(
		`DELETE FROM session_values WHERE session_id = ? AND key = ?`, sessionID, key,
	)
	return err
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
