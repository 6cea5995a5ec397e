package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/staffsync/badging-backend-go/internal/domain/badge"
	"github.com/staffsync/badging-backend-go/internal/domain/contract"
	"github.com/staffsync/badging-backend-go/internal/domain/employee"
	"github.com/staffsync/badging-backend-go/internal/domain/reconcile"
	"github.com/staffsync/badging-backend-go/internal/domain/schedule"
	"github.com/staffsync/badging-backend-go/internal/domain/tenant"
)

type ReconcileServiceImpl struct {
	schedule.ShiftRepository
	schedule.ClosingPeriodRepository
	schedule.AbsenceRepository
	badge.SessionRepository
	contract.ContractRepository
	employee.EmployeeRepository

	logger *slog.Logger
}

// TardinessStats implements reconcile.ReconcileService.
func (r *ReconcileServiceImpl) TardinessStats(ctx context.Context, employeeID string, start, end time.Time) (reconcile.TardinessBatch, error) {
	if start.After(end) {
		return reconcile.TardinessBatch{}, reconcile.ErrInvalidRange
	}

	batch := reconcile.TardinessBatch{
		Start: start.Format("2006-01-02"),
		End:   end.Format("2006-01-02"),
		Stats: []reconcile.TardinessStats{},
	}

	tc, err := tenant.FromContext(ctx)
	if err != nil {
		if errors.Is(err, tenant.ErrNoTenantContext) {
			return batch, nil
		}
		return reconcile.TardinessBatch{}, err
	}

	employees, err := r.resolveEmployees(ctx, tc, employeeID)
	if err != nil {
		return reconcile.TardinessBatch{}, err
	}

	closings, err := r.ClosingPeriodRepository.List(ctx, tc.BusinessID)
	if err != nil {
		return reconcile.TardinessBatch{}, fmt.Errorf("failed to list closing periods: %w", err)
	}

	for _, emp := range employees {
		stats, err := r.tardinessForEmployee(ctx, tc.BusinessID, emp, start, end, closings)
		if err != nil {
			r.logger.Warn("tardiness computation failed for employee",
				"employee_id", emp.ID, "error", err)
			batch.Failures = append(batch.Failures, reconcile.EmployeeFailure{
				EmployeeID: emp.ID,
				Reason:     err.Error(),
			})
			continue
		}
		batch.Stats = append(batch.Stats, stats)
	}

	return batch, nil
}

func (r *ReconcileServiceImpl) tardinessForEmployee(
	ctx context.Context,
	businessID string,
	emp employee.Employee,
	start, end time.Time,
	closings []schedule.ClosingPeriod,
) (reconcile.TardinessStats, error) {
	shifts, err := r.ShiftRepository.ListByEmployeeInRange(ctx, emp.ID, start, end, businessID)
	if err != nil {
		return reconcile.TardinessStats{}, fmt.Errorf("failed to list shifts: %w", err)
	}

	sessions, err := r.SessionRepository.ListByEmployeeInRange(ctx, emp.ID, start, endOfDay(end), businessID)
	if err != nil {
		return reconcile.TardinessStats{}, fmt.Errorf("failed to list sessions: %w", err)
	}

	absences, err := r.AbsenceRepository.ListByEmployee(ctx, emp.ID, businessID)
	if err != nil {
		return reconcile.TardinessStats{}, fmt.Errorf("failed to list absences: %w", err)
	}

	stats := computeTardiness(shifts, sessions, closings, absences, start.Location())
	stats.EmployeeID = emp.ID
	stats.EmployeeName = emp.Name
	return stats, nil
}

// OvertimeStats implements reconcile.ReconcileService.
func (r *ReconcileServiceImpl) OvertimeStats(ctx context.Context, employeeID string, start, end time.Time) (reconcile.OvertimeBatch, error) {
	if start.After(end) {
		return reconcile.OvertimeBatch{}, reconcile.ErrInvalidRange
	}

	batch := reconcile.OvertimeBatch{
		Start: start.Format("2006-01-02"),
		End:   end.Format("2006-01-02"),
		Stats: []reconcile.OvertimeStats{},
	}

	tc, err := tenant.FromContext(ctx)
	if err != nil {
		if errors.Is(err, tenant.ErrNoTenantContext) {
			return batch, nil
		}
		return reconcile.OvertimeBatch{}, err
	}

	employees, err := r.resolveEmployees(ctx, tc, employeeID)
	if err != nil {
		return reconcile.OvertimeBatch{}, err
	}

	for _, emp := range employees {
		stats, err := r.overtimeForEmployee(ctx, tc.BusinessID, emp, start, end)
		if err != nil {
			r.logger.Warn("overtime computation failed for employee",
				"employee_id", emp.ID, "error", err)
			batch.Failures = append(batch.Failures, reconcile.EmployeeFailure{
				EmployeeID: emp.ID,
				Reason:     err.Error(),
			})
			continue
		}
		batch.Stats = append(batch.Stats, stats)
	}

	return batch, nil
}

func (r *ReconcileServiceImpl) overtimeForEmployee(
	ctx context.Context,
	businessID string,
	emp employee.Employee,
	start, end time.Time,
) (reconcile.OvertimeStats, error) {
	sessions, err := r.SessionRepository.ListByEmployeeInRange(ctx, emp.ID, start, endOfDay(end), businessID)
	if err != nil {
		return reconcile.OvertimeStats{}, fmt.Errorf("failed to list sessions: %w", err)
	}

	var active *contract.Contract
	c, err := r.ContractRepository.GetActiveByEmployee(ctx, emp.ID, businessID)
	if err != nil {
		if !errors.Is(err, contract.ErrContractNotFound) {
			return reconcile.OvertimeStats{}, fmt.Errorf("failed to get contract: %w", err)
		}
	} else {
		active = &c
	}

	stats := computeOvertime(sessions, active, start, end)
	stats.EmployeeID = emp.ID
	stats.EmployeeName = emp.Name
	return stats, nil
}

func (r *ReconcileServiceImpl) resolveEmployees(ctx context.Context, tc tenant.Context, employeeID string) ([]employee.Employee, error) {
	if employeeID == reconcile.AllEmployees {
		employees, err := r.EmployeeRepository.ListActive(ctx, tc.BusinessID)
		if err != nil {
			return nil, fmt.Errorf("failed to list employees: %w", err)
		}
		return employees, nil
	}

	emp, err := r.EmployeeRepository.GetByID(ctx, employeeID, tc.BusinessID)
	if err != nil {
		return nil, err
	}
	return []employee.Employee{emp}, nil
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999_000_000, t.Location())
}

func NewReconcileService(
	shiftRepo schedule.ShiftRepository,
	closingRepo schedule.ClosingPeriodRepository,
	absenceRepo schedule.AbsenceRepository,
	sessionRepo badge.SessionRepository,
	contractRepo contract.ContractRepository,
	employeeRepo employee.EmployeeRepository,
	logger *slog.Logger,
) reconcile.ReconcileService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReconcileServiceImpl{
		ShiftRepository:         shiftRepo,
		ClosingPeriodRepository: closingRepo,
		AbsenceRepository:       absenceRepo,
		SessionRepository:       sessionRepo,
		ContractRepository:      contractRepo,
		EmployeeRepository:      employeeRepo,
		logger:                  logger,
	}
}
