package web

import (
	"context"

	"github.com/alexedwards/scs/v2"
)

// SessionStore exposes an scs session as an authflow.Store. The request
// context must have passed through the manager's LoadAndSave.
type SessionStore struct {
	manager *scs.SessionManager
}

func NewSessionStore(manager *scs.SessionManager) *SessionStore {
	return &SessionStore{manager: manager}
}

func (s *SessionStore) Get(ctx context.Context, key string) (string, bool) {
	if !s.manager.Exists(ctx, key) {
		return "", false
	}
	return s.manager.GetString(ctx, key), true
}

func (s *SessionStore) Set(ctx context.Context, key, value string) {
	s.manager.Put(ctx, key, value)
}

func (s *SessionStore) Remove(ctx context.Context, key string) {
	s.manager.Remove(ctx, key)
}
