package employee

import "time"

// Employee is a tenant staff member subject to badging.
type Employee struct {
	ID         string
	BusinessID string
	Name       string
	Email      string
	Role       string
	Active     bool
	CreatedAt  time.Time
}
