package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/staffsync/badging-backend-go/internal/domain/badge"
	"github.com/staffsync/badging-backend-go/internal/domain/report"
	"github.com/staffsync/badging-backend-go/internal/domain/schedule"
	"github.com/staffsync/badging-backend-go/internal/domain/tenant"
)

type ReportServiceImpl struct {
	badge.SessionRepository
	schedule.ShiftRepository
}

// Monthly implements report.ReportService.
func (r *ReportServiceImpl) Monthly(ctx context.Context, employeeID string, year, month int) (report.MonthlyReport, error) {
	if month < 1 || month > 12 {
		return report.MonthlyReport{}, fmt.Errorf("month out of range: %d", month)
	}

	result := report.MonthlyReport{
		EmployeeID: employeeID,
		Year:       year,
		Month:      month,
		Weeks:      []report.WeekBucket{},
	}

	tc, err := tenant.FromContext(ctx)
	if err != nil {
		if errors.Is(err, tenant.ErrNoTenantContext) {
			return result, nil
		}
		return report.MonthlyReport{}, err
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	last := first.AddDate(0, 1, -1)
	lastInstant := time.Date(last.Year(), last.Month(), last.Day(), 23, 59, 59, 999_000_000, last.Location())

	sessions, err := r.SessionRepository.ListByEmployeeInRange(ctx, employeeID, first, lastInstant, tc.BusinessID)
	if err != nil {
		return report.MonthlyReport{}, fmt.Errorf("failed to list sessions: %w", err)
	}

	shifts, err := r.ShiftRepository.ListByEmployeeInRange(ctx, employeeID, first, last, tc.BusinessID)
	if err != nil {
		return report.MonthlyReport{}, fmt.Errorf("failed to list shifts: %w", err)
	}

	result.Weeks = buildWeekBuckets(first, last, sessions, shifts)
	for _, week := range result.Weeks {
		result.WorkedHours += week.WorkedHours
		result.ScheduledHours += week.ScheduledHours
	}

	return result, nil
}

// buildWeekBuckets slices the month into Monday-start weeks. The first
// and last buckets are clipped to the month's bounds.
func buildWeekBuckets(first, last time.Time, sessions []badge.Session, shifts []schedule.ScheduledShift) []report.WeekBucket {
	workedByDay := make(map[string]float64)
	for _, session := range sessions {
		day := session.CheckIn.Format("2006-01-02")
		workedByDay[day] += session.WorkedHours()
	}

	scheduledByDay := make(map[string]float64)
	for _, shift := range shifts {
		day := shift.Day.Format("2006-01-02")
		scheduledByDay[day] += shiftHours(shift)
	}

	var weeks []report.WeekBucket
	weekStart := mondayOf(first)

	for !weekStart.After(last) {
		bucket := report.WeekBucket{
			WeekStart: weekStart.Format("2006-01-02"),
		}

		for i := 0; i < 7; i++ {
			day := weekStart.AddDate(0, 0, i)
			if day.Before(first) || day.After(last) {
				continue
			}
			key := day.Format("2006-01-02")
			entry := report.DayEntry{
				Day:            key,
				Weekday:        day.Weekday().String(),
				WorkedHours:    workedByDay[key],
				ScheduledHours: scheduledByDay[key],
			}
			bucket.Days = append(bucket.Days, entry)
			bucket.WorkedHours += entry.WorkedHours
			bucket.ScheduledHours += entry.ScheduledHours
		}

		weeks = append(weeks, bucket)
		weekStart = weekStart.AddDate(0, 0, 7)
	}

	return weeks
}

// mondayOf returns the Monday of t's week at day precision.
func mondayOf(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// shiftHours is the shift's planned length in hours, from its HH:MM
// bounds.
func shiftHours(shift schedule.ScheduledShift) float64 {
	start, err := time.Parse("15:04", shift.StartTime)
	if err != nil {
		return 0
	}
	end, err := time.Parse("15:04", shift.EndTime)
	if err != nil {
		return 0
	}
	d := end.Sub(start)
	if d < 0 {
		// Overnight shift wraps past midnight.
		d += 24 * time.Hour
	}
	return d.Hours()
}

func NewReportService(
	sessionRepo badge.SessionRepository,
	shiftRepo schedule.ShiftRepository,
) report.ReportService {
	return &ReportServiceImpl{
		SessionRepository: sessionRepo,
		ShiftRepository:   shiftRepo,
	}
}
