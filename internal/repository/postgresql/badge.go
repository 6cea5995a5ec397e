package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/staffsync/badging-backend-go/internal/domain/badge"
	"github.com/staffsync/badging-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type badgeRepository struct {
	db *database.DB
}

// CreateGuarded implements badge.SessionRepository. The duplicate checks
// and the insert run in one transaction; the employee row is locked first
// so two concurrent check-ins serialize instead of both passing the
// checks.
func (r *badgeRepository) CreateGuarded(ctx context.Context, session badge.Session) (badge.Session, error) {
	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		txCtx := ContextWithTx(ctx, tx)

		var lockedID string
		err := tx.QueryRow(txCtx,
			`SELECT id FROM employees WHERE id = $1 AND business_id = $2 FOR UPDATE`,
			session.EmployeeID, session.BusinessID,
		).Scan(&lockedID)
		if err != nil {
			return fmt.Errorf("failed to lock employee for check-in: %w", err)
		}

		var openCount int
		err = tx.QueryRow(txCtx,
			`SELECT COUNT(*) FROM badge_sessions
			 WHERE employee_id = $1 AND business_id = $2 AND status <> 'completed'`,
			session.EmployeeID, session.BusinessID,
		).Scan(&openCount)
		if err != nil {
			return fmt.Errorf("failed to check open sessions: %w", err)
		}
		if openCount > 0 {
			return badge.ErrAlreadyCheckedIn
		}

		var sameDayCount int
		err = tx.QueryRow(txCtx,
			`SELECT COUNT(*) FROM badge_sessions
			 WHERE employee_id = $1 AND business_id = $2 AND shift_id = $3
			   AND check_in::date = $4::date`,
			session.EmployeeID, session.BusinessID, session.ShiftID, session.CheckIn,
		).Scan(&sameDayCount)
		if err != nil {
			return fmt.Errorf("failed to check same-day sessions: %w", err)
		}
		if sameDayCount > 0 {
			return badge.ErrShiftAlreadyBadged
		}

		query := `
			INSERT INTO badge_sessions (
				id, business_id, employee_id, shift_id, shift_label,
				status, check_in, break_total_seconds, auto_closed
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING created_at, updated_at
		`
		err = tx.QueryRow(txCtx, query,
			session.ID, session.BusinessID, session.EmployeeID,
			session.ShiftID, session.ShiftLabel,
			session.Status, session.CheckIn,
			int64(session.BreakTotal.Seconds()), session.AutoClosed,
		).Scan(&session.CreatedAt, &session.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to create badge session: %w", err)
		}

		return nil
	})
	if err != nil {
		return badge.Session{}, err
	}

	return session, nil
}

// Update implements badge.SessionRepository.
func (r *badgeRepository) Update(ctx context.Context, session badge.Session) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE badge_sessions
		SET status = $1, check_out = $2, break_start = $3,
			break_total_seconds = $4, auto_closed = $5, updated_at = NOW()
		WHERE id = $6 AND business_id = $7
	`

	tag, err := q.Exec(ctx, query,
		session.Status, session.CheckOut, session.BreakStart,
		int64(session.BreakTotal.Seconds()), session.AutoClosed,
		session.ID, session.BusinessID,
	)
	if err != nil {
		return fmt.Errorf("failed to update badge session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return badge.ErrSessionNotFound
	}

	return nil
}

// GetByID implements badge.SessionRepository.
func (r *badgeRepository) GetByID(ctx context.Context, id string, businessID string) (badge.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := sessionSelect + ` WHERE id = $1 AND business_id = $2`

	s, err := scanSession(q.QueryRow(ctx, query, id, businessID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return badge.Session{}, badge.ErrSessionNotFound
		}
		return badge.Session{}, fmt.Errorf("failed to get badge session: %w", err)
	}

	return s, nil
}

// GetOpenByEmployee implements badge.SessionRepository.
func (r *badgeRepository) GetOpenByEmployee(ctx context.Context, employeeID string, businessID string) (badge.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := sessionSelect + `
		WHERE employee_id = $1 AND business_id = $2 AND status <> 'completed'
		ORDER BY check_in DESC
		LIMIT 1
	`

	s, err := scanSession(q.QueryRow(ctx, query, employeeID, businessID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return badge.Session{}, badge.ErrNoOpenSession
		}
		return badge.Session{}, fmt.Errorf("failed to get open session: %w", err)
	}

	return s, nil
}

// ListByEmployeeInRange implements badge.SessionRepository.
func (r *badgeRepository) ListByEmployeeInRange(ctx context.Context, employeeID string, start, end time.Time, businessID string) ([]badge.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := sessionSelect + `
		WHERE employee_id = $1
		  AND business_id = $2
		  AND check_in >= $3
		  AND check_in <= $4
		ORDER BY check_in
	`

	rows, err := q.Query(ctx, query, employeeID, businessID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list badge sessions: %w", err)
	}
	defer rows.Close()

	return scanSessions(rows)
}

// ListOpenOlderThan implements badge.SessionRepository.
func (r *badgeRepository) ListOpenOlderThan(ctx context.Context, cutoff time.Time) ([]badge.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := sessionSelect + `
		WHERE status <> 'completed' AND check_in < $1
		ORDER BY check_in
	`

	rows, err := q.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list stale sessions: %w", err)
	}
	defer rows.Close()

	return scanSessions(rows)
}

const sessionSelect = `
	SELECT id, business_id, employee_id, shift_id, shift_label,
		   status, check_in, check_out, break_start, break_total_seconds,
		   auto_closed, created_at, updated_at
	FROM badge_sessions`

func scanSession(row pgx.Row) (badge.Session, error) {
	var s badge.Session
	var breakSeconds int64
	err := row.Scan(
		&s.ID, &s.BusinessID, &s.EmployeeID, &s.ShiftID, &s.ShiftLabel,
		&s.Status, &s.CheckIn, &s.CheckOut, &s.BreakStart, &breakSeconds,
		&s.AutoClosed, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return badge.Session{}, err
	}
	s.BreakTotal = time.Duration(breakSeconds) * time.Second
	return s, nil
}

func scanSessions(rows pgx.Rows) ([]badge.Session, error) {
	var sessions []badge.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan badge session: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate badge sessions: %w", err)
	}
	return sessions, nil
}

func NewBadgeRepository(db *database.DB) badge.SessionRepository {
	return &badgeRepository{db: db}
}
