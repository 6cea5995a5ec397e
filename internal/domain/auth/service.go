package auth

import (
	"context"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)

	// LoginWithGoogle returns the Google consent redirect URL.
	LoginWithGoogle(ctx context.Context, userAgent string) string

	// OAuthCallbackGoogle exchanges the authorization code and signs the
	// user in.
	OAuthCallbackGoogle(ctx context.Context, code string) (TokenResponse, error)

	RefreshToken(ctx context.Context, req RefreshTokenRequest) (AccessTokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
}
