package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/staffsync/badging-backend-go/internal/domain/auth"
	"github.com/staffsync/badging-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type userRepository struct {
	db *database.DB
}

const userSelect = `
	SELECT id, business_id, employee_id, email, password_hash, role,
		   oauth_provider, oauth_provider_id, created_at, updated_at
	FROM users`

// GetByEmail implements auth.UserRepository.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (auth.User, error) {
	q := GetQuerier(ctx, r.db)

	u, err := scanUser(q.QueryRow(ctx, userSelect+` WHERE email = $1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.User{}, auth.ErrUserNotFound
		}
		return auth.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return u, nil
}

// GetByID implements auth.UserRepository.
func (r *userRepository) GetByID(ctx context.Context, id string) (auth.User, error) {
	q := GetQuerier(ctx, r.db)

	u, err := scanUser(q.QueryRow(ctx, userSelect+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.User{}, auth.ErrUserNotFound
		}
		return auth.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return u, nil
}

// Create implements auth.UserRepository.
func (r *userRepository) Create(ctx context.Context, newUser auth.User) (auth.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (
			id, business_id, employee_id, email, password_hash, role,
			oauth_provider, oauth_provider_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newUser.ID, newUser.BusinessID, newUser.EmployeeID, newUser.Email,
		newUser.PasswordHash, newUser.Role, newUser.OAuthProvider, newUser.OAuthProviderID,
	).Scan(&newUser.CreatedAt, &newUser.UpdatedAt)
	if err != nil {
		return auth.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return newUser, nil
}

// LinkGoogleAccount implements auth.UserRepository.
func (r *userRepository) LinkGoogleAccount(ctx context.Context, googleID string, email string) (auth.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET oauth_provider = 'google', oauth_provider_id = $1, updated_at = NOW()
		WHERE email = $2
		RETURNING id, business_id, employee_id, email, password_hash, role,
				  oauth_provider, oauth_provider_id, created_at, updated_at
	`

	u, err := scanUser(q.QueryRow(ctx, query, googleID, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.User{}, auth.ErrUserNotFound
		}
		return auth.User{}, fmt.Errorf("failed to link google account: %w", err)
	}

	return u, nil
}

func scanUser(row pgx.Row) (auth.User, error) {
	var u auth.User
	err := row.Scan(
		&u.ID, &u.BusinessID, &u.EmployeeID, &u.Email, &u.PasswordHash, &u.Role,
		&u.OAuthProvider, &u.OAuthProviderID, &u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

func NewUserRepository(db *database.DB) auth.UserRepository {
	return &userRepository{db: db}
}
