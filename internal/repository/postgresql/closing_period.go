package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/staffsync/badging-backend-go/internal/domain/schedule"
	"github.com/staffsync/badging-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type closingPeriodRepository struct {
	db *database.DB
}

// Create implements schedule.ClosingPeriodRepository.
func (r *closingPeriodRepository) Create(ctx context.Context, period schedule.ClosingPeriod) (schedule.ClosingPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO closing_periods (id, business_id, start_date, end_date, description)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := q.Exec(ctx, query,
		period.ID, period.BusinessID, period.StartDate, period.EndDate, period.Description,
	)
	if err != nil {
		return schedule.ClosingPeriod{}, fmt.Errorf("failed to create closing period: %w", err)
	}

	return period, nil
}

// Delete implements schedule.ClosingPeriodRepository.
func (r *closingPeriodRepository) Delete(ctx context.Context, id string, businessID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`DELETE FROM closing_periods WHERE id = $1 AND business_id = $2`,
		id, businessID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete closing period: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrClosingPeriodNotFound
	}

	return nil
}

// List implements schedule.ClosingPeriodRepository.
func (r *closingPeriodRepository) List(ctx context.Context, businessID string) ([]schedule.ClosingPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, business_id, start_date, end_date, description
		FROM closing_periods
		WHERE business_id = $1
		ORDER BY start_date
	`

	rows, err := q.Query(ctx, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to list closing periods: %w", err)
	}
	defer rows.Close()

	return scanClosingPeriods(rows)
}

// ListCovering implements schedule.ClosingPeriodRepository.
func (r *closingPeriodRepository) ListCovering(ctx context.Context, date time.Time, businessID string) ([]schedule.ClosingPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, business_id, start_date, end_date, description
		FROM closing_periods
		WHERE business_id = $1
		  AND start_date <= $2::date
		  AND end_date >= $2::date
	`

	rows, err := q.Query(ctx, query, businessID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list covering closing periods: %w", err)
	}
	defer rows.Close()

	return scanClosingPeriods(rows)
}

func scanClosingPeriods(rows pgx.Rows) ([]schedule.ClosingPeriod, error) {
	var periods []schedule.ClosingPeriod
	for rows.Next() {
		var p schedule.ClosingPeriod
		if err := rows.Scan(&p.ID, &p.BusinessID, &p.StartDate, &p.EndDate, &p.Description); err != nil {
			return nil, fmt.Errorf("failed to scan closing period: %w", err)
		}
		periods = append(periods, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate closing periods: %w", err)
	}
	return periods, nil
}

func NewClosingPeriodRepository(db *database.DB) schedule.ClosingPeriodRepository {
	return &closingPeriodRepository{db: db}
}
