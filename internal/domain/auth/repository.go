package auth

import "context"

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	Create(ctx context.Context, newUser User) (User, error)
	LinkGoogleAccount(ctx context.Context, googleID string, email string) (User, error)
}
