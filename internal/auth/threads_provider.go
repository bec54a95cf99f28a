package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"threadgems/internal/models"
	"threadgems/internal/threads"
	"time"
)

var ErrMissingUserID = errors.New("threads did not return a user id")

// ThreadsProvider is the backend's view of the Threads OAuth endpoints and
// Graph API.
type ThreadsProvider struct {
	oauth  *threads.OAuth
	client *threads.Client
	logger *slog.Logger
	clock  func() time.Time
}

func NewThreadsProvider(oauth *threads.OAuth, client *threads.Client, logger *slog.Logger) *ThreadsProvider {
	return &ThreadsProvider{
		oauth:  oauth,
		client: client,
		logger: logger,
		clock:  time.Now,
	}
}

// ExchangeCode trades an authorization code for a session. The long-lived
// token exchange and the /me lookup are best effort; the user id from /me is
// preferred over the one in the token response.
func (p *ThreadsProvider) ExchangeCode(ctx context.Context, code, redirectURI string) (*models.TokenSession, *threads.Profile, error) {
	short, err := p.oauth.Exchange(ctx, code, redirectURI)
	if err != nil {
		return nil, nil, err
	}

	session := &models.TokenSession{
		UserID:      short.UserID,
		AccessToken: short.Token.AccessToken,
		ExpiresAt:   short.Token.Expiry,
	}

	long, err := p.client.ExchangeLongLived(ctx, session.AccessToken)
	if err != nil {
		p.logger.Warn("long-lived token exchange failed, keeping short-lived token", "error", err)
	} else if long.AccessToken != "" {
		session.AccessToken = long.AccessToken
		session.ExpiresAt = long.ExpiresAt(p.clock())
	}

	profile, err := p.client.Me(ctx, session.AccessToken)
	if err != nil {
		p.logger.Warn("failed to fetch threads profile after login", "error", err)
		profile = nil
	} else {
		if profile.ID != "" {
			session.UserID = profile.ID
		}
		session.Username = profile.Username
	}

	if session.UserID == "" {
		return nil, nil, ErrMissingUserID
	}

	return session, profile, nil
}

func (p *ThreadsProvider) Me(ctx context.Context, accessToken string) (*threads.Profile, error) {
	if accessToken == "" {
		return nil, threads.ErrNoAccessToken
	}
	return p.client.Me(ctx, accessToken)
}

// Refresh extends a long-lived token.
func (p *ThreadsProvider) Refresh(ctx context.Context, accessToken string) (*threads.LongLivedToken, error) {
	if accessToken == "" {
		return nil, threads.ErrNoAccessToken
	}

	token, err := p.client.RefreshLongLived(ctx, accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}
	return token, nil
}

func (p *ThreadsProvider) ProfilePosts(ctx context.Context, accessToken, username string, opts threads.PostsOptions) ([]threads.Media, error) {
	return p.client.ProfilePosts(ctx, accessToken, username, opts)
}
