package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	log "github.com/sirupsen/logrus"

	"printshop/internal/core/domain"
	"printshop/internal/core/ports/output"
)

const (
	keyAuthToken = "auth_token"
	keyUserData  = "user_data"
)

type sessionStore struct {
	db *sql.DB
}

// NewSessionStore creates a SessionStore backed by the session table.
func NewSessionStore(db *sql.DB) ports.SessionStore {
	return &sessionStore{db: db}
}

func (s *sessionStore) Load(ctx context.Context) (*domain.Session, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, value FROM session WHERE key IN (?, ?)`, keyAuthToken, keyUserData)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string, 2)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	// Release the only connection before Clear needs it.
	rows.Close()

	token := values[keyAuthToken]
	if token == "" {
		return nil, nil
	}

	sess := &domain.Session{Token: token}
	if raw, ok := values[keyUserData]; ok {
		if err := json.Unmarshal([]byte(raw), &sess.User); err != nil {
			// A session that cannot be restored is treated as signed out.
			log.WithError(err).Warn("discarding unreadable stored user")
			if err := s.Clear(ctx); err != nil {
				return nil, err
			}
			return nil, nil
		}
	}
	return sess, nil
}

func (s *sessionStore) Save(ctx context.Context, sess *domain.Session) error {
	if sess == nil || sess.Token == "" {
		return s.Clear(ctx)
	}

	userData, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save session: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO session (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := tx.ExecContext(ctx, query, keyAuthToken, sess.Token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, keyUserData, string(userData)); err != nil {
		return fmt.Errorf("save user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save session: %w", err)
	}
	return nil
}

func (s *sessionStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM session WHERE key IN (?, ?)`, keyAuthToken, keyUserData)
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
