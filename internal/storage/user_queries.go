package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"threadgems/internal/models"
	"time"
)

// UpsertUser stores an account after login. An empty access token or profile
// keeps the values already stored.
func (p *DatabaseProvider) UpsertUser(ctx context.Context, user *models.StoredUser) (*models.StoredUser, error) {
	if user == nil || user.UserID == "" {
		return nil, ErrEmptyUserID
	}

	now := p.clock().Unix()

	var profile any
	if len(user.Profile) > 0 {
		profile = string(user.Profile)
	}

	query := `
		INSERT INTO users (user_id, username, access_token, token_expires_at, profile, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id)
		DO UPDATE SET
			username = CASE WHEN excluded.username <> '' THEN excluded.username ELSE users.username END,
			access_token = CASE WHEN excluded.access_token <> '' THEN excluded.access_token ELSE users.access_token END,
			token_expires_at = CASE WHEN excluded.access_token <> '' THEN excluded.token_expires_at ELSE users.token_expires_at END,
			profile = COALESCE(excluded.profile, users.profile),
			updated_at = excluded.updated_at
	`

	_, err := p.db.ExecContext(ctx, query,
		user.UserID,
		user.Username,
		user.AccessToken,
		unixOrZero(user.TokenExpiresAt),
		profile,
		now,
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	return p.GetUser(ctx, user.UserID)
}

func (p *DatabaseProvider) GetUser(ctx context.Context, userID string) (*models.StoredUser, error) {
	query := `
		SELECT user_id, username, access_token, token_expires_at, profile, created_at, updated_at
		FROM users
		WHERE user_id = ?
	`

	var (
		user      models.StoredUser
		expiresAt int64
		profile   sql.NullString
		createdAt int64
		updatedAt int64
	)

	err := p.db.QueryRowContext(ctx, query, userID).Scan(
		&user.UserID,
		&user.Username,
		&user.AccessToken,
		&expiresAt,
		&profile,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.TokenExpiresAt = timeOrZero(expiresAt)
	user.CreatedAt = timeOrZero(createdAt)
	user.UpdatedAt = timeOrZero(updatedAt)
	if profile.Valid {
		user.Profile = []byte(profile.String)
	}

	return &user, nil
}

// UpdateUserToken replaces the stored token after a refresh.
func (p *DatabaseProvider) UpdateUserToken(ctx context.Context, userID, accessToken string, expiresAt time.Time) error {
	query := `
		UPDATE users
		SET access_token = ?, token_expires_at = ?, updated_at = ?
		WHERE user_id = ?
	`

	result, err := p.db.ExecContext(ctx, query, accessToken, unixOrZero(expiresAt), p.clock().Unix(), userID)
	if err != nil {
		return fmt.Errorf("failed to update user token: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update user token: %w", err)
	}
	if rows == 0 {
		return ErrUserNotFound
	}

	return nil
}
