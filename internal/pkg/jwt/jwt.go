package jwt

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/staffsync/badging-backend-go/internal/domain/tenant"
)

type Service interface {
	GenerateAccessToken(userID string, email string, employeeID *string, businessID *string, role tenant.Role) (token string, expiresAt int64, err error)
	GenerateRefreshToken(userID string) (token string, expiresAt int64, err error)
	// GenerateStreamToken issues a short-lived token for the live stream
	// endpoint, where the access token cannot travel in a header.
	GenerateStreamToken(userID string, businessID string) (token string, expiresIn int, err error)
	ValidateStreamToken(tokenString string) (userID string, businessID string, err error)
	JWTAuth() *jwtauth.JWTAuth
	RefreshTokenCookie(token string, expiresAt int64) *http.Cookie
	RevokeToken(token string)
	IsTokenRevoked(token string) bool
}

type JWTService struct {
	secretKey                  string
	accessTokenExpirationTime  string
	refreshTokenExpirationTime string
	tokenAuth                  *jwtauth.JWTAuth
	revokedTokens              map[string]int64
	mu                         sync.RWMutex
}

func NewJWTService(secretKey string, accessTokenExpirationTime string, refreshTokenExpirationTime string) Service {
	return &JWTService{
		secretKey:                  secretKey,
		accessTokenExpirationTime:  accessTokenExpirationTime,
		refreshTokenExpirationTime: refreshTokenExpirationTime,
		tokenAuth:                  jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revokedTokens:              make(map[string]int64),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(userID string, email string, employeeID *string, businessID *string, role tenant.Role) (string, int64, error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt := time.Now().Add(expDuration).Unix()

	claims := map[string]interface{}{
		"user_id":     userID,
		"email":       email,
		"employee_id": j.returnValueOrNil(employeeID),
		"business_id": j.returnValueOrNil(businessID),
		"role":        string(role),
		"type":        "access",
		"exp":         expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	if err != nil {
		return "", 0, err
	}

	return tokenString, expiresAt, nil
}

func (j *JWTService) GenerateRefreshToken(userID string) (string, int64, error) {
	expDuration, err := time.ParseDuration(j.refreshTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt := time.Now().Add(expDuration).Unix()

	claims := map[string]interface{}{
		"user_id": userID,
		"type":    "refresh",
		"exp":     expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	if err != nil {
		return "", 0, err
	}

	return tokenString, expiresAt, nil
}

func (j *JWTService) GenerateStreamToken(userID string, businessID string) (string, int, error) {
	const expiresIn = 60 // seconds

	claims := map[string]interface{}{
		"user_id":     userID,
		"business_id": businessID,
		"type":        "stream",
		"exp":         time.Now().Add(expiresIn * time.Second).Unix(),
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	if err != nil {
		return "", 0, err
	}

	return tokenString, expiresIn, nil
}

func (j *JWTService) ValidateStreamToken(tokenString string) (string, string, error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return "", "", fmt.Errorf("invalid stream token: %w", err)
	}

	claims, err := token.AsMap(context.Background())
	if err != nil {
		return "", "", fmt.Errorf("invalid stream token claims: %w", err)
	}

	if tokenType, _ := claims["type"].(string); tokenType != "stream" {
		return "", "", fmt.Errorf("token is not a stream token")
	}

	userID, _ := claims["user_id"].(string)
	businessID, _ := claims["business_id"].(string)
	if userID == "" || businessID == "" {
		return "", "", fmt.Errorf("stream token missing identity claims")
	}

	return userID, businessID, nil
}

func (j *JWTService) RefreshTokenCookie(token string, expiresAt int64) *http.Cookie {
	return &http.Cookie{
		Name:     "refresh_token",
		Value:    token,
		Path:     "/api/v1/auth",
		Expires:  time.Unix(expiresAt, 0),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	}
}

func (j *JWTService) RevokeToken(token string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.revokedTokens[token] = time.Now().Unix()

	// Sweep entries older than the refresh lifetime so the map stays small.
	if len(j.revokedTokens) > 1000 {
		expDuration, err := time.ParseDuration(j.refreshTokenExpirationTime)
		if err != nil {
			return
		}
		cutoff := time.Now().Add(-expDuration).Unix()
		for t, revokedAt := range j.revokedTokens {
			if revokedAt < cutoff {
				delete(j.revokedTokens, t)
			}
		}
	}
}

func (j *JWTService) IsTokenRevoked(token string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	_, revoked := j.revokedTokens[token]
	return revoked
}

func (j *JWTService) returnValueOrNil(v *string) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
