package models

import "time"

// TokenSession is the backend session bound to the threads_token cookie.
type TokenSession struct {
	UserID      string
	Username    string
	AccessToken string
	ExpiresAt   time.Time
	CreatedAt   time.Time
}

// Expired reports whether the token has a known expiry that has passed.
func (s *TokenSession) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
