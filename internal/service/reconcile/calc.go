package reconcile

import (
	"math"
	"time"

	"github.com/staffsync/badging-backend-go/internal/domain/badge"
	"github.com/staffsync/badging-backend-go/internal/domain/contract"
	"github.com/staffsync/badging-backend-go/internal/domain/reconcile"
	"github.com/staffsync/badging-backend-go/internal/domain/schedule"
)

// lateGraceMinutes is how many minutes past the scheduled start still
// count as on time.
const lateGraceMinutes = 5

// computeTardiness walks the employee's scheduled shifts and attributes
// each one: on time, late, or missed. A missed shift on a closing day is
// excused as closed; one covered by an approved absence is excused as
// absent; anything else is an unauthorized absence. Closing wins over
// absence so a day is never counted twice.
func computeTardiness(
	shifts []schedule.ScheduledShift,
	sessions []badge.Session,
	closings []schedule.ClosingPeriod,
	absences []schedule.AbsenceRequest,
	loc *time.Location,
) reconcile.TardinessStats {
	var stats reconcile.TardinessStats
	stats.ShiftsScheduled = len(shifts)

	for _, shift := range shifts {
		scheduledStart, err := shift.StartsAt(loc)
		if err != nil {
			continue
		}

		session, found := sessionOnDay(sessions, scheduledStart)
		if !found {
			switch {
			case anyClosingContains(closings, scheduledStart):
				stats.ClosedDays++
			case anyAbsenceContains(absences, scheduledStart):
				stats.ApprovedAbsences++
			default:
				stats.UnauthorizedAbsences++
				stats.Absences = append(stats.Absences, reconcile.AbsenceItem{
					Day:        scheduledStart.Format("2006-01-02"),
					ShiftLabel: shift.Label(),
				})
			}
			continue
		}

		diff := session.CheckIn.In(loc).Sub(scheduledStart)
		minutesLate := int(math.Round(diff.Minutes()))
		if minutesLate < 0 {
			minutesLate = 0
		}
		if minutesLate > lateGraceMinutes {
			stats.LateArrivals++
			stats.TotalMinutesLate += minutesLate
			stats.Details = append(stats.Details, reconcile.LateItem{
				Day:            scheduledStart.Format("2006-01-02"),
				ShiftLabel:     shift.Label(),
				ScheduledStart: shift.StartTime,
				ActualStart:    session.CheckIn.In(loc).Format("15:04"),
				MinutesLate:    minutesLate,
			})
		}
	}

	return stats
}

// computeOvertime sums worked hours over the sessions and compares them
// with the contract expectation for the range. A missing contract keeps
// the expectation at zero, so every worked hour surfaces as overtime; the
// flag lets callers tell that apart from a real zero-hour contract.
func computeOvertime(
	sessions []badge.Session,
	active *contract.Contract,
	start, end time.Time,
) reconcile.OvertimeStats {
	var stats reconcile.OvertimeStats

	for _, session := range sessions {
		stats.WorkedHours += session.WorkedHours()
	}

	if active == nil {
		stats.ContractMissing = true
	} else {
		stats.ExpectedHours = active.DailyHours() * float64(countWeekdays(start, end))
	}

	stats.OvertimeHours = stats.WorkedHours - stats.ExpectedHours
	if stats.OvertimeHours < 0 {
		stats.OvertimeHours = 0
	}

	return stats
}

// countWeekdays counts Monday through Friday days in [start, end] at day
// precision.
func countWeekdays(start, end time.Time) int {
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	last := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location())

	count := 0
	for !day.After(last) {
		wd := day.Weekday()
		if wd != time.Saturday && wd != time.Sunday {
			count++
		}
		day = day.AddDate(0, 0, 1)
	}
	return count
}

func sessionOnDay(sessions []badge.Session, day time.Time) (badge.Session, bool) {
	for _, session := range sessions {
		if session.SameDay(day) {
			return session, true
		}
	}
	return badge.Session{}, false
}

func anyClosingContains(closings []schedule.ClosingPeriod, date time.Time) bool {
	for _, p := range closings {
		if p.Contains(date) {
			return true
		}
	}
	return false
}

func anyAbsenceContains(absences []schedule.AbsenceRequest, date time.Time) bool {
	for _, a := range absences {
		if a.Status == schedule.AbsenceApproved && a.Contains(date) {
			return true
		}
	}
	return false
}
