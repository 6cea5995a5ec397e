package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/staffsync/badging-backend-go/internal/domain/schedule"
	"github.com/staffsync/badging-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type absenceRepository struct {
	db *database.DB
}

// Create implements schedule.AbsenceRepository.
func (r *absenceRepository) Create(ctx context.Context, absence schedule.AbsenceRequest) (schedule.AbsenceRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO absence_requests (id, business_id, employee_id, start_date, end_date, status, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		absence.ID, absence.BusinessID, absence.EmployeeID,
		absence.StartDate, absence.EndDate, absence.Status, absence.Reason,
	).Scan(&absence.CreatedAt)
	if err != nil {
		return schedule.AbsenceRequest{}, fmt.Errorf("failed to create absence request: %w", err)
	}

	return absence, nil
}

// GetByID implements schedule.AbsenceRepository.
func (r *absenceRepository) GetByID(ctx context.Context, id string, businessID string) (schedule.AbsenceRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, business_id, employee_id, start_date, end_date, status, reason, created_at
		FROM absence_requests
		WHERE id = $1 AND business_id = $2
	`

	var a schedule.AbsenceRequest
	err := q.QueryRow(ctx, query, id, businessID).Scan(
		&a.ID, &a.BusinessID, &a.EmployeeID, &a.StartDate, &a.EndDate, &a.Status, &a.Reason, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.AbsenceRequest{}, schedule.ErrAbsenceNotFound
		}
		return schedule.AbsenceRequest{}, fmt.Errorf("failed to get absence request: %w", err)
	}

	return a, nil
}

// SetStatus implements schedule.AbsenceRepository.
func (r *absenceRepository) SetStatus(ctx context.Context, id string, status schedule.AbsenceStatus, businessID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE absence_requests SET status = $1 WHERE id = $2 AND business_id = $3`,
		status, id, businessID,
	)
	if err != nil {
		return fmt.Errorf("failed to set absence status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrAbsenceNotFound
	}

	return nil
}

// ListByEmployee implements schedule.AbsenceRepository.
func (r *absenceRepository) ListByEmployee(ctx context.Context, employeeID string, businessID string) ([]schedule.AbsenceRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, business_id, employee_id, start_date, end_date, status, reason, created_at
		FROM absence_requests
		WHERE employee_id = $1 AND business_id = $2
		ORDER BY start_date DESC
	`

	rows, err := q.Query(ctx, query, employeeID, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to list absence requests: %w", err)
	}
	defer rows.Close()

	return scanAbsences(rows)
}

// ListApprovedCovering implements schedule.AbsenceRepository.
func (r *absenceRepository) ListApprovedCovering(ctx context.Context, employeeID string, date time.Time, businessID string) ([]schedule.AbsenceRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, business_id, employee_id, start_date, end_date, status, reason, created_at
		FROM absence_requests
		WHERE employee_id = $1
		  AND business_id = $2
		  AND status = 'approved'
		  AND start_date <= $3::date
		  AND end_date >= $3::date
	`

	rows, err := q.Query(ctx, query, employeeID, businessID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list covering absences: %w", err)
	}
	defer rows.Close()

	return scanAbsences(rows)
}

func scanAbsences(rows pgx.Rows) ([]schedule.AbsenceRequest, error) {
	var absences []schedule.AbsenceRequest
	for rows.Next() {
		var a schedule.AbsenceRequest
		if err := rows.Scan(
			&a.ID, &a.BusinessID, &a.EmployeeID, &a.StartDate, &a.EndDate, &a.Status, &a.Reason, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan absence request: %w", err)
		}
		absences = append(absences, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate absence requests: %w", err)
	}
	return absences, nil
}

func NewAbsenceRepository(db *database.DB) schedule.AbsenceRepository {
	return &absenceRepository{db: db}
}
