package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

const (
	defaultProfileLimit = 25
	maxProfileLimit     = 100
	maxRequestBodyBytes = 1 << 16
	loginRetryURL       = "/auth/login"
)

var (
	ErrInvalidLimit    = errors.New("invalid limit")
	ErrInvalidUsername = errors.New("invalid username")
)

// RedactToken keeps enough of a token to tell two apart in logs.
func RedactToken(token string) string {
	if len(token) <= 8 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + strings.Repeat("*", len(token)-8) + token[len(token)-4:]
}

func parseLimit(raw string) (int, error) {
	if raw == "" {
		return defaultProfileLimit, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLimit, raw)
	}
	if limit > maxProfileLimit {
		limit = maxProfileLimit
	}
	return limit, nil
}

// normalizeUsername accepts an optional leading @ and the characters Threads
// allows in handles.
func normalizeUsername(raw string) (string, error) {
	username := strings.TrimPrefix(strings.TrimSpace(raw), "@")
	if username == "" || len(username) > 30 {
		return "", ErrInvalidUsername
	}

	for _, r := range username {
		if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '_') {
			return "", fmt.Errorf("%w: %q", ErrInvalidUsername, raw)
		}
	}
	return username, nil
}

func splitScopes(raw string) []string {
	if raw == "" {
		return nil
	}

	var scopes []string
	for _, scope := range strings.Split(raw, ",") {
		if scope = strings.TrimSpace(scope); scope != "" {
			scopes = append(scopes, scope)
		}
	}
	return scopes
}
