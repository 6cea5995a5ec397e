package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/staffsync/badging-backend-go/internal/domain/contract"
	"github.com/staffsync/badging-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type contractRepository struct {
	db *database.DB
}

// Create implements contract.ContractRepository.
func (r *contractRepository) Create(ctx context.Context, c contract.Contract) (contract.Contract, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO contracts (id, business_id, employee_id, weekly_hours, status, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		c.ID, c.BusinessID, c.EmployeeID, c.WeeklyHours, c.Status, c.StartDate, c.EndDate,
	).Scan(&c.CreatedAt)
	if err != nil {
		return contract.Contract{}, fmt.Errorf("failed to create contract: %w", err)
	}

	return c, nil
}

// Update implements contract.ContractRepository.
func (r *contractRepository) Update(ctx context.Context, c contract.Contract) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE contracts
		SET weekly_hours = $1, status = $2, end_date = $3
		WHERE id = $4 AND business_id = $5
	`

	tag, err := q.Exec(ctx, query, c.WeeklyHours, c.Status, c.EndDate, c.ID, c.BusinessID)
	if err != nil {
		return fmt.Errorf("failed to update contract: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return contract.ErrContractNotFound
	}

	return nil
}

// GetActiveByEmployee implements contract.ContractRepository.
func (r *contractRepository) GetActiveByEmployee(ctx context.Context, employeeID string, businessID string) (contract.Contract, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, business_id, employee_id, weekly_hours, status, start_date, end_date, created_at
		FROM contracts
		WHERE employee_id = $1 AND business_id = $2 AND status = 'active'
		ORDER BY start_date DESC
		LIMIT 1
	`

	var c contract.Contract
	err := q.QueryRow(ctx, query, employeeID, businessID).Scan(
		&c.ID, &c.BusinessID, &c.EmployeeID, &c.WeeklyHours, &c.Status, &c.StartDate, &c.EndDate, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return contract.Contract{}, contract.ErrContractNotFound
		}
		return contract.Contract{}, fmt.Errorf("failed to get active contract: %w", err)
	}

	return c, nil
}

// ListByEmployee implements contract.ContractRepository.
func (r *contractRepository) ListByEmployee(ctx context.Context, employeeID string, businessID string) ([]contract.Contract, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, business_id, employee_id, weekly_hours, status, start_date, end_date, created_at
		FROM contracts
		WHERE employee_id = $1 AND business_id = $2
		ORDER BY start_date DESC
	`

	rows, err := q.Query(ctx, query, employeeID, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	defer rows.Close()

	var contracts []contract.Contract
	for rows.Next() {
		var c contract.Contract
		if err := rows.Scan(
			&c.ID, &c.BusinessID, &c.EmployeeID, &c.WeeklyHours, &c.Status, &c.StartDate, &c.EndDate, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan contract: %w", err)
		}
		contracts = append(contracts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contracts: %w", err)
	}

	return contracts, nil
}

func NewContractRepository(db *database.DB) contract.ContractRepository {
	return &contractRepository{db: db}
}
