package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/staffsync/badging-backend-go/internal/domain/auth"
	"github.com/staffsync/badging-backend-go/internal/pkg/jwt"
	"github.com/staffsync/badging-backend-go/internal/pkg/oauth"
)

type AuthServiceImpl struct {
	auth.UserRepository
	jwt.Service
	googleService oauth.GoogleService
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	userData, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		// Not found and real failures both present as bad credentials.
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	if userData.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return a.issueTokens(userData)
}

// LoginWithGoogle implements auth.AuthService.
func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context, userAgent string) string {
	state := a.googleService.GenerateState(userAgent)
	return a.googleService.RedirectURL(state)
}

// OAuthCallbackGoogle implements auth.AuthService.
func (a *AuthServiceImpl) OAuthCallbackGoogle(ctx context.Context, code string) (auth.TokenResponse, error) {
	token, err := a.googleService.VerifyToken(ctx, code)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	info, err := a.googleService.VerifyUser(ctx, token)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to fetch google user: %w", err)
	}
	if !info.VerifiedEmail {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	userData, err := a.UserRepository.LinkGoogleAccount(ctx, info.GoogleID, info.Email)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrUserNotFound
	}

	return a.issueTokens(userData)
}

// RefreshToken implements auth.AuthService.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.AccessTokenResponse{}, err
	}

	token, err := jwtauth.VerifyToken(a.Service.JWTAuth(), req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	claims, err := token.AsMap(ctx)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	if tokenType, _ := claims["type"].(string); tokenType != "refresh" {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	if a.Service.IsTokenRevoked(req.RefreshToken) {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	userID, _ := claims["user_id"].(string)
	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrUserNotFound
	}

	accessToken, expiresAt, err := a.Service.GenerateAccessToken(
		userData.ID, userData.Email, userData.EmployeeID, userData.BusinessID, userData.Role)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.AccessTokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int(expiresAt - time.Now().Unix()),
	}, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	a.Service.RevokeToken(refreshToken)
	return nil
}

func (a *AuthServiceImpl) issueTokens(userData auth.User) (auth.TokenResponse, error) {
	var resp auth.TokenResponse

	accessToken, expiresAt, err := a.Service.GenerateAccessToken(
		userData.ID, userData.Email, userData.EmployeeID, userData.BusinessID, userData.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	refreshToken, refreshExpiresAt, err := a.Service.GenerateRefreshToken(userData.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create refresh token: %w", err)
	}

	resp.AccessToken = accessToken
	resp.RefreshToken = refreshToken
	resp.RefreshExpiresAt = refreshExpiresAt
	resp.TokenType = "Bearer"
	resp.ExpiresIn = int(expiresAt - time.Now().Unix())
	resp.Role = string(userData.Role)
	if userData.BusinessID != nil {
		resp.BusinessID = *userData.BusinessID
	}
	if userData.EmployeeID != nil {
		resp.EmployeeID = *userData.EmployeeID
	}

	return resp, nil
}

func NewAuthService(
	userRepository auth.UserRepository,
	jwtService jwt.Service,
	googleService oauth.GoogleService,
) auth.AuthService {
	return &AuthServiceImpl{
		UserRepository: userRepository,
		Service:        jwtService,
		googleService:  googleService,
	}
}
