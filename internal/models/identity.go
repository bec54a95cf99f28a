package models

import "time"

// Identity is the signed-in Threads account as seen by the frontend shell.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username,omitempty"`
}

// StoredUser is the server-side record of an account that completed login.
type StoredUser struct {
	UserID         string    `json:"user_id"`
	Username       string    `json:"username"`
	AccessToken    string    `json:"-"`
	TokenExpiresAt time.Time `json:"token_expires_at"`
	Profile        []byte    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
