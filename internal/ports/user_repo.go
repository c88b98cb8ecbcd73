package ports

import (
	"context"

	"meetscribe/internal/models"
)

type UserRepository interface {
	InsertUser(ctx context.Context, user *models.User) error

	// GetUserByEmail returns nil when no user has the given email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}
