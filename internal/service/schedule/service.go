package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/staffsync/badging-backend-go/internal/domain/schedule"
	"github.com/staffsync/badging-backend-go/internal/domain/tenant"
)

type ScheduleServiceImpl struct {
	schedule.ShiftRepository
	schedule.ClosingPeriodRepository
	schedule.AbsenceRepository
}

// CreateShift implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) CreateShift(ctx context.Context, req schedule.CreateShiftRequest) (schedule.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.ShiftResponse{}, err
	}

	tc, err := tenant.FromContext(ctx)
	if err != nil {
		return schedule.ShiftResponse{}, err
	}
	if tc.Role != tenant.RoleAdmin {
		return schedule.ShiftResponse{}, tenant.ErrAdminRequired
	}

	shift := schedule.ScheduledShift{
		ID:           uuid.NewString(),
		BusinessID:   tc.BusinessID,
		Day:          schedule.MustParseDate(req.Day),
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		EmployeeID:   req.EmployeeID,
		EmployeeName: req.EmployeeName,
		Role:         req.Role,
	}

	created, err := s.ShiftRepository.Create(ctx, shift)
	if err != nil {
		return schedule.ShiftResponse{}, fmt.Errorf("failed to create shift: %w", err)
	}

	return schedule.NewShiftResponse(created), nil
}

// UpdateShift implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) UpdateShift(ctx context.Context, id string, req schedule.CreateShiftRequest) (schedule.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.ShiftResponse{}, err
	}

	tc, err := tenant.FromContext(ctx)
	if err != nil {
		return schedule.ShiftResponse{}, err
	}
	if tc.Role != tenant.RoleAdmin {
		return schedule.ShiftResponse{}, tenant.ErrAdminRequired
	}

	existing, err := s.ShiftRepository.GetByID(ctx, id, tc.BusinessID)
	if err != nil {
		return schedule.ShiftResponse{}, err
	}

	existing.Day = schedule.MustParseDate(req.Day)
	existing.StartTime = req.StartTime
	existing.EndTime = req.EndTime
	existing.EmployeeID = req.EmployeeID
	existing.EmployeeName = req.EmployeeName
	existing.Role = req.Role

	if err := s.ShiftRepository.Update(ctx, existing); err != nil {
		return schedule.ShiftResponse{}, fmt.Errorf("failed to update shift: %w", err)
	}

	return schedule.NewShiftResponse(existing), nil
}

// DeleteShift implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) DeleteShift(ctx context.Context, id string) error {
	tc, err := tenant.FromContext(ctx)
	if err != nil {
		return err
	}
	if tc.Role != tenant.RoleAdmin {
		return tenant.ErrAdminRequired
	}

	return s.ShiftRepository.Delete(ctx, id, tc.BusinessID)
}

// MyShifts implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) MyShifts(ctx context.Context) ([]schedule.ShiftResponse, error) {
	tc, err := tenant.FromContext(ctx)
	if err != nil {
		if errors.Is(err, tenant.ErrNoTenantContext) {
			return []schedule.ShiftResponse{}, nil
		}
		return nil, err
	}

	shifts, err := s.ShiftRepository.ListByEmployee(ctx, tc.EmployeeID, tc.BusinessID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}

	responses := make([]schedule.ShiftResponse, 0, len(shifts))
	for _, shift := range shifts {
		responses = append(responses, schedule.NewShiftResponse(shift))
	}
	return responses, nil
}

// ShiftsForEmployeeOnDay implements schedule.ScheduleService. The shift
// set is a recurring weekly template, so matching is by weekday, not
// calendar date.
func (s *ScheduleServiceImpl) ShiftsForEmployeeOnDay(ctx context.Context, employeeID string, day time.Time) ([]schedule.ScheduledShift, error) {
	tc, err := tenant.FromContext(ctx)
	if err != nil {
		if errors.Is(err, tenant.ErrNoTenantContext) {
			return []schedule.ScheduledShift{}, nil
		}
		return nil, err
	}

	shifts, err := s.ShiftRepository.ListByEmployee(ctx, employeeID, tc.BusinessID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}

	weekday := day.Weekday()
	matched := make([]schedule.ScheduledShift, 0, len(shifts))
	for _, shift := range shifts {
		if shift.Day.Weekday() == weekday {
			matched = append(matched, shift)
		}
	}
	return matched, nil
}

// ShiftsForEmployeeInRange implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) ShiftsForEmployeeInRange(ctx context.Context, employeeID string, start, end time.Time) ([]schedule.ScheduledShift, error) {
	if start.After(end) {
		return nil, schedule.ErrInvalidDateRange
	}

	tc, err := tenant.FromContext(ctx)
	if err != nil {
		if errors.Is(err, tenant.ErrNoTenantContext) {
			return []schedule.ScheduledShift{}, nil
		}
		return nil, err
	}

	shifts, err := s.ShiftRepository.ListByEmployeeInRange(ctx, employeeID, start, end, tc.BusinessID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts in range: %w", err)
	}
	return shifts, nil
}

// CreateClosingPeriod implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) CreateClosingPeriod(ctx context.Context, req schedule.CreateClosingPeriodRequest) (schedule.ClosingPeriodResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.ClosingPeriodResponse{}, err
	}

	tc, err := tenant.FromContext(ctx)
	if err != nil {
		return schedule.ClosingPeriodResponse{}, err
	}
	if tc.Role != tenant.RoleAdmin {
		return schedule.ClosingPeriodResponse{}, tenant.ErrAdminRequired
	}

	period := schedule.ClosingPeriod{
		ID:          uuid.NewString(),
		BusinessID:  tc.BusinessID,
		StartDate:   schedule.MustParseDate(req.StartDate),
		EndDate:     schedule.MustParseDate(req.EndDate),
		Description: req.Description,
	}

	created, err := s.ClosingPeriodRepository.Create(ctx, period)
	if err != nil {
		return schedule.ClosingPeriodResponse{}, fmt.Errorf("failed to create closing period: %w", err)
	}

	return schedule.NewClosingPeriodResponse(created), nil
}

// DeleteClosingPeriod implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) DeleteClosingPeriod(ctx context.Context, id string) error {
	tc, err := tenant.FromContext(ctx)
	if err != nil {
		return err
	}
	if tc.Role != tenant.RoleAdmin {
		return tenant.ErrAdminRequired
	}

	return s.ClosingPeriodRepository.Delete(ctx, id, tc.BusinessID)
}

// ListClosingPeriods implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) ListClosingPeriods(ctx context.Context) ([]schedule.ClosingPeriodResponse, error) {
	tc, err := tenant.FromContext(ctx)
	if err != nil {
		if errors.Is(err, tenant.ErrNoTenantContext) {
			return []schedule.ClosingPeriodResponse{}, nil
		}
		return nil, err
	}

	periods, err := s.ClosingPeriodRepository.List(ctx, tc.BusinessID)
	if err != nil {
		return nil, fmt.Errorf("failed to list closing periods: %w", err)
	}

	responses := make([]schedule.ClosingPeriodResponse, 0, len(periods))
	for _, p := range periods {
		responses = append(responses, schedule.NewClosingPeriodResponse(p))
	}
	return responses, nil
}

// IsClosingDay implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) IsClosingDay(ctx context.Context, date time.Time) (bool, error) {
	tc, err := tenant.FromContext(ctx)
	if err != nil {
		if errors.Is(err, tenant.ErrNoTenantContext) {
			return false, nil
		}
		return false, err
	}

	periods, err := s.ClosingPeriodRepository.ListCovering(ctx, date, tc.BusinessID)
	if err != nil {
		return false, fmt.Errorf("failed to check closing day: %w", err)
	}

	for _, p := range periods {
		if p.Contains(date) {
			return true, nil
		}
	}
	return false, nil
}

// RequestAbsence implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) RequestAbsence(ctx context.Context, req schedule.CreateAbsenceRequest) (schedule.AbsenceResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.AbsenceResponse{}, err
	}

	tc, err := tenant.FromContext(ctx)
	if err != nil {
		return schedule.AbsenceResponse{}, err
	}

	employeeID := req.EmployeeID
	if tc.Role != tenant.RoleAdmin {
		// Employees can only file for themselves.
		employeeID = tc.EmployeeID
	}

	absence := schedule.AbsenceRequest{
		ID:         uuid.NewString(),
		BusinessID: tc.BusinessID,
		EmployeeID: employeeID,
		StartDate:  schedule.MustParseDate(req.StartDate),
		EndDate:    schedule.MustParseDate(req.EndDate),
		Status:     schedule.AbsencePending,
		Reason:     req.Reason,
	}

	created, err := s.AbsenceRepository.Create(ctx, absence)
	if err != nil {
		return schedule.AbsenceResponse{}, fmt.Errorf("failed to create absence request: %w", err)
	}

	return schedule.NewAbsenceResponse(created), nil
}

// SetAbsenceStatus implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) SetAbsenceStatus(ctx context.Context, id string, status schedule.AbsenceStatus) error {
	if status != schedule.AbsenceApproved && status != schedule.AbsenceRejected {
		return schedule.ErrAbsenceProcessed
	}

	tc, err := tenant.FromContext(ctx)
	if err != nil {
		return err
	}
	if tc.Role != tenant.RoleAdmin {
		return tenant.ErrAdminRequired
	}

	existing, err := s.AbsenceRepository.GetByID(ctx, id, tc.BusinessID)
	if err != nil {
		return err
	}
	if existing.Status != schedule.AbsencePending {
		return schedule.ErrAbsenceProcessed
	}

	return s.AbsenceRepository.SetStatus(ctx, id, status, tc.BusinessID)
}

// MyAbsences implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) MyAbsences(ctx context.Context) ([]schedule.AbsenceResponse, error) {
	tc, err := tenant.FromContext(ctx)
	if err != nil {
		if errors.Is(err, tenant.ErrNoTenantContext) {
			return []schedule.AbsenceResponse{}, nil
		}
		return nil, err
	}

	absences, err := s.AbsenceRepository.ListByEmployee(ctx, tc.EmployeeID, tc.BusinessID)
	if err != nil {
		return nil, fmt.Errorf("failed to list absence requests: %w", err)
	}

	responses := make([]schedule.AbsenceResponse, 0, len(absences))
	for _, a := range absences {
		responses = append(responses, schedule.NewAbsenceResponse(a))
	}
	return responses, nil
}

// IsAbsentDay implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) IsAbsentDay(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	tc, err := tenant.FromContext(ctx)
	if err != nil {
		if errors.Is(err, tenant.ErrNoTenantContext) {
			return false, nil
		}
		return false, err
	}

	absences, err := s.AbsenceRepository.ListApprovedCovering(ctx, employeeID, date, tc.BusinessID)
	if err != nil {
		return false, fmt.Errorf("failed to check absence day: %w", err)
	}

	for _, a := range absences {
		if a.Contains(date) {
			return true, nil
		}
	}
	return false, nil
}

func NewScheduleService(
	shiftRepo schedule.ShiftRepository,
	closingRepo schedule.ClosingPeriodRepository,
	absenceRepo schedule.AbsenceRepository,
) schedule.ScheduleService {
	return &ScheduleServiceImpl{
		ShiftRepository:         shiftRepo,
		ClosingPeriodRepository: closingRepo,
		AbsenceRepository:       absenceRepo,
	}
}
