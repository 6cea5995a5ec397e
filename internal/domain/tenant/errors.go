package tenant

import "errors"

var (
	// ErrNoTenantContext means the operation ran without a resolved
	// business. Reads degrade to empty results; writes fail with this.
	ErrNoTenantContext = errors.New("no business context available")

	ErrAdminRequired = errors.New("admin privilege required")
)
