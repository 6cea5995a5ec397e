package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/staffsync/badging-backend-go/internal/domain/employee"
	"github.com/staffsync/badging-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepository struct {
	db *database.DB
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string, businessID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, business_id, name, email, role, active, created_at
		FROM employees
		WHERE id = $1 AND business_id = $2
	`

	var e employee.Employee
	err := q.QueryRow(ctx, query, id, businessID).Scan(
		&e.ID, &e.BusinessID, &e.Name, &e.Email, &e.Role, &e.Active, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return e, nil
}

// ListActive implements employee.EmployeeRepository.
func (r *employeeRepository) ListActive(ctx context.Context, businessID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, business_id, name, email, role, active, created_at
		FROM employees
		WHERE business_id = $1 AND active = TRUE
		ORDER BY name
	`

	rows, err := q.Query(ctx, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var e employee.Employee
		if err := rows.Scan(
			&e.ID, &e.BusinessID, &e.Name, &e.Email, &e.Role, &e.Active, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, nil
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}
