package contract

import "context"

// ContractRepository defines data access for employee contracts.
type ContractRepository interface {
	Create(ctx context.Context, contract Contract) (Contract, error)
	Update(ctx context.Context, contract Contract) error

	// GetActiveByEmployee returns the employee's active contract, or
	// ErrContractNotFound.
	GetActiveByEmployee(ctx context.Context, employeeID string, businessID string) (Contract, error)

	ListByEmployee(ctx context.Context, employeeID string, businessID string) ([]Contract, error)
}
