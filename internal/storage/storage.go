package storage

import (
	"context"
	"threadgems/internal/models"
	"time"
)

//go:generate mockgen -source=storage.go -destination=../mocks/storage.go -package=mocks

// noinspection GoNameStartsWithPackageName
type StorageProvider interface {
	Close() error
	Ping(ctx context.Context) error
	RunMigrations(ctx context.Context) error

	UpsertUser(ctx context.Context, user *models.StoredUser) (*models.StoredUser, error)
	GetUser(ctx context.Context, userID string) (*models.StoredUser, error)
	UpdateUserToken(ctx context.Context, userID, accessToken string, expiresAt time.Time) error

	SaveCuratedThreads(ctx context.Context, threads []models.Thread, expiresAt time.Time) error
	ListCuratedThreads(ctx context.Context, limit int) ([]models.Thread, error)
	RecordDeletions(ctx context.Context, deletions []models.ThreadDeletion) error
	ListDeletions(ctx context.Context, limit int) ([]models.ThreadDeletion, error)
}
