package ports

import "context"

type AuthService interface {
	Register(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string) (string, error)

	// ValidateToken returns the owner id carried in the token's subject claim.
	ValidateToken(ctx context.Context, token string) (string, error)
}
