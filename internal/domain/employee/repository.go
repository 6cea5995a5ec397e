package employee

import "context"

// EmployeeRepository defines data access for tenant staff.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string, businessID string) (Employee, error)

	// ListActive lists the tenant's active employees.
	ListActive(ctx context.Context, businessID string) ([]Employee, error)
}
