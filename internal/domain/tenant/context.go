package tenant

import (
	"context"

	"github.com/go-chi/jwtauth/v5"
)

// Role is the caller's role inside a business.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// Context is the resolved tenant identity every query runs under. It is
// carried in the access token claims; all storage access is partitioned by
// BusinessID.
type Context struct {
	UserID     string
	EmployeeID string
	BusinessID string
	Role       Role
}

// FromContext resolves the tenant context from the request's JWT claims.
// Returns ErrNoTenantContext when no business has been resolved; read paths
// are expected to degrade to empty results on that error, write paths to
// propagate it.
func FromContext(ctx context.Context) (Context, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Context{}, ErrNoTenantContext
	}

	businessID, _ := claims["business_id"].(string)
	if businessID == "" {
		return Context{}, ErrNoTenantContext
	}

	userID, _ := claims["user_id"].(string)
	employeeID, _ := claims["employee_id"].(string)
	role, _ := claims["role"].(string)

	return Context{
		UserID:     userID,
		EmployeeID: employeeID,
		BusinessID: businessID,
		Role:       Role(role),
	}, nil
}
