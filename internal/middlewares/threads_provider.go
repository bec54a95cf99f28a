package middlewares

import (
	"context"
	"threadgems/internal/models"
	"threadgems/internal/threads"
)

//go:generate mockgen -source=threads_provider.go -destination=../mocks/threads_provider.go -package=mocks

type ThreadsProvider interface {
	ExchangeCode(ctx context.Context, code, redirectURI string) (*models.TokenSession, *threads.Profile, error)
	Me(ctx context.Context, accessToken string) (*threads.Profile, error)
	Refresh(ctx context.Context, accessToken string) (*threads.LongLivedToken, error)
	ProfilePosts(ctx context.Context, accessToken, username string, opts threads.PostsOptions) ([]threads.Media, error)
}
