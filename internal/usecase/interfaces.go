package usecase

import "context"

// AuthClient abstracts the identity provider.
type AuthClient interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	VerifyToken(ctx context.Context, token string) (string, error)
	SignInWithEmailPassword(ctx context.Context, email, password string) (string, string, error)
	RefreshIDToken(ctx context.Context, refreshToken string) (string, string, error)
}
