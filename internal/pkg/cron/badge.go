package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/staffsync/badging-backend-go/internal/domain/badge"
	"github.com/staffsync/badging-backend-go/internal/pkg/live"
)

type BadgeJobs struct {
	sessionRepo badge.SessionRepository
	hub         *live.Hub
}

func NewBadgeJobs(sessionRepo badge.SessionRepository, hub *live.Hub) *BadgeJobs {
	return &BadgeJobs{
		sessionRepo: sessionRepo,
		hub:         hub,
	}
}

func (j *BadgeJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto_close_stale_sessions", 1*time.Hour, j.AutoCloseStaleSessions)
}

// AutoCloseStaleSessions completes sessions still open from a previous
// day. The session is closed at the last instant of its check-in day so a
// forgotten check-out never inflates worked hours across midnight.
func (j *BadgeJobs) AutoCloseStaleSessions(ctx context.Context) error {
	// Only run at midnight (00:00-00:59)
	if time.Now().Hour() != 0 {
		return nil
	}

	slog.Info("Cron: Starting auto-close stale sessions job")

	now := time.Now()
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return j.closeSessionsBefore(ctx, startOfToday)
}

func (j *BadgeJobs) closeSessionsBefore(ctx context.Context, cutoff time.Time) error {
	staleSessions, err := j.sessionRepo.ListOpenOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to list stale sessions: %w", err)
	}

	if len(staleSessions) == 0 {
		slog.Info("Cron: No stale sessions found")
		return nil
	}

	closedCount := 0
	for _, session := range staleSessions {
		in := session.CheckIn
		closeAt := time.Date(in.Year(), in.Month(), in.Day(), 23, 59, 59, 0, in.Location())

		if session.Status == badge.StatusOnBreak && session.BreakStart != nil {
			session.BreakTotal += closeAt.Sub(*session.BreakStart)
			session.BreakStart = nil
		}

		session.Status = badge.StatusCompleted
		session.CheckOut = &closeAt
		session.AutoClosed = true

		if err := j.sessionRepo.Update(ctx, session); err != nil {
			slog.Error("Cron: Failed to auto-close session",
				"session_id", session.ID,
				"employee_id", session.EmployeeID,
				"error", err)
			continue
		}

		if j.hub != nil {
			j.hub.Publish(live.Event{
				BusinessID: session.BusinessID,
				Topic:      "badge/" + session.EmployeeID,
				Name:       "auto-close",
				Data:       badge.NewSessionResponse(session),
			})
		}

		closedCount++
	}

	slog.Info("Cron: Auto-closed stale sessions", "count", closedCount)
	return nil
}
