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

type shiftRepository struct {
	db *database.DB
}

// Create implements schedule.ShiftRepository.
func (r *shiftRepository) Create(ctx context.Context, shift schedule.ScheduledShift) (schedule.ScheduledShift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO scheduled_shifts (
			id, business_id, day, start_time, end_time, employee_id, employee_name, role
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		shift.ID,
		shift.BusinessID,
		shift.Day,
		shift.StartTime,
		shift.EndTime,
		shift.EmployeeID,
		shift.EmployeeName,
		shift.Role,
	).Scan(&shift.CreatedAt, &shift.UpdatedAt)

	if err != nil {
		return schedule.ScheduledShift{}, fmt.Errorf("failed to create shift: %w", err)
	}

	return shift, nil
}

// Update implements schedule.ShiftRepository.
func (r *shiftRepository) Update(ctx context.Context, shift schedule.ScheduledShift) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE scheduled_shifts
		SET day = $1, start_time = $2, end_time = $3,
			employee_id = $4, employee_name = $5, role = $6, updated_at = NOW()
		WHERE id = $7 AND business_id = $8
	`

	tag, err := q.Exec(ctx, query,
		shift.Day,
		shift.StartTime,
		shift.EndTime,
		shift.EmployeeID,
		shift.EmployeeName,
		shift.Role,
		shift.ID,
		shift.BusinessID,
	)
	if err != nil {
		return fmt.Errorf("failed to update shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrShiftNotFound
	}

	return nil
}

// Delete implements schedule.ShiftRepository.
func (r *shiftRepository) Delete(ctx context.Context, id string, businessID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`DELETE FROM scheduled_shifts WHERE id = $1 AND business_id = $2`,
		id, businessID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrShiftNotFound
	}

	return nil
}

// GetByID implements schedule.ShiftRepository.
func (r *shiftRepository) GetByID(ctx context.Context, id string, businessID string) (schedule.ScheduledShift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, business_id, day, start_time, end_time,
			   employee_id, employee_name, role, created_at, updated_at
		FROM scheduled_shifts
		WHERE id = $1 AND business_id = $2
	`

	var s schedule.ScheduledShift
	err := q.QueryRow(ctx, query, id, businessID).Scan(
		&s.ID, &s.BusinessID, &s.Day, &s.StartTime, &s.EndTime,
		&s.EmployeeID, &s.EmployeeName, &s.Role, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.ScheduledShift{}, schedule.ErrShiftNotFound
		}
		return schedule.ScheduledShift{}, fmt.Errorf("failed to get shift: %w", err)
	}

	return s, nil
}

// ListByEmployee implements schedule.ShiftRepository.
func (r *shiftRepository) ListByEmployee(ctx context.Context, employeeID string, businessID string) ([]schedule.ScheduledShift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, business_id, day, start_time, end_time,
			   employee_id, employee_name, role, created_at, updated_at
		FROM scheduled_shifts
		WHERE employee_id = $1 AND business_id = $2
		ORDER BY day, start_time
	`

	rows, err := q.Query(ctx, query, employeeID, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	return scanShifts(rows)
}

// ListByEmployeeInRange implements schedule.ShiftRepository.
func (r *shiftRepository) ListByEmployeeInRange(ctx context.Context, employeeID string, start, end time.Time, businessID string) ([]schedule.ScheduledShift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, business_id, day, start_time, end_time,
			   employee_id, employee_name, role, created_at, updated_at
		FROM scheduled_shifts
		WHERE employee_id = $1
		  AND business_id = $2
		  AND day >= $3::date
		  AND day <= $4::date
		ORDER BY day, start_time
	`

	rows, err := q.Query(ctx, query, employeeID, businessID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts in range: %w", err)
	}
	defer rows.Close()

	return scanShifts(rows)
}

func scanShifts(rows pgx.Rows) ([]schedule.ScheduledShift, error) {
	var shifts []schedule.ScheduledShift
	for rows.Next() {
		var s schedule.ScheduledShift
		if err := rows.Scan(
			&s.ID, &s.BusinessID, &s.Day, &s.StartTime, &s.EndTime,
			&s.EmployeeID, &s.EmployeeName, &s.Role, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shifts: %w", err)
	}
	return shifts, nil
}

func NewShiftRepository(db *database.DB) schedule.ShiftRepository {
	return &shiftRepository{db: db}
}
