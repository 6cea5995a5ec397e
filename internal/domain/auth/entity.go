package auth

import (
	"time"

	"github.com/staffsync/badging-backend-go/internal/domain/tenant"
)

// User is a sign-in identity. EmployeeID and BusinessID are nil until the
// user is linked to a tenant.
type User struct {
	ID              string
	BusinessID      *string
	EmployeeID      *string
	Email           string
	PasswordHash    *string
	Role            tenant.Role
	OAuthProvider   *string
	OAuthProviderID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsAdmin checks if the user manages the tenant.
func (u *User) IsAdmin() bool {
	return u.Role == tenant.RoleAdmin
}
