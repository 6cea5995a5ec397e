package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/staffsync/badging-backend-go/internal/domain/badge"
	"github.com/staffsync/badging-backend-go/internal/domain/tenant"
	"github.com/staffsync/badging-backend-go/internal/handler/http/response"
	"github.com/staffsync/badging-backend-go/internal/pkg/validator"
)

type BadgeHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	ToggleBreak(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	ActiveSession(w http.ResponseWriter, r *http.Request)
	TodayAvailability(w http.ResponseWriter, r *http.Request)
	SessionsInRange(w http.ResponseWriter, r *http.Request)
}

type BadgeHandlerImpl struct {
	badgeService badge.BadgeService
}

// CheckIn implements BadgeHandler.
func (b *BadgeHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	var checkInReq badge.CheckInRequest

	if err := json.NewDecoder(r.Body).Decode(&checkInReq); err != nil {
		slog.Error("CheckIn decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	sessionResponse, err := b.badgeService.CheckIn(r.Context(), checkInReq)
	if err != nil {
		slog.Error("CheckIn service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in successfully", sessionResponse)
}

// ToggleBreak implements BadgeHandler.
func (b *BadgeHandlerImpl) ToggleBreak(w http.ResponseWriter, r *http.Request) {
	recordID := chi.URLParam(r, "id")

	sessionResponse, err := b.badgeService.ToggleBreak(r.Context(), recordID)
	if err != nil {
		slog.Error("ToggleBreak service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, sessionResponse)
}

// CheckOut implements BadgeHandler.
func (b *BadgeHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	recordID := chi.URLParam(r, "id")

	sessionResponse, err := b.badgeService.CheckOut(r.Context(), recordID)
	if err != nil {
		slog.Error("CheckOut service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, sessionResponse)
}

// ActiveSession implements BadgeHandler.
func (b *BadgeHandlerImpl) ActiveSession(w http.ResponseWriter, r *http.Request) {
	sessionResponse, err := b.badgeService.ActiveSession(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, sessionResponse)
}

// TodayAvailability implements BadgeHandler.
func (b *BadgeHandlerImpl) TodayAvailability(w http.ResponseWriter, r *http.Request) {
	availability, err := b.badgeService.TodayAvailability(r.Context())
	if err != nil {
		slog.Error("TodayAvailability service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, availability)
}

// SessionsInRange implements BadgeHandler.
func (b *BadgeHandlerImpl) SessionsInRange(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseDateRange(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	// Only admins may read another employee's sessions; everyone else is
	// pinned to their own.
	var employeeID string
	if tc, err := tenant.FromContext(r.Context()); err == nil {
		employeeID = tc.EmployeeID
		if requested := r.URL.Query().Get("employee_id"); requested != "" && tc.Role == tenant.RoleAdmin {
			employeeID = requested
		}
	}

	sessions, err := b.badgeService.SessionsInRange(r.Context(), employeeID, start, end)
	if err != nil {
		slog.Error("SessionsInRange service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, sessions, &response.Meta{
		Start: start.Format("2006-01-02"),
		End:   end.Format("2006-01-02"),
		Count: len(sessions),
	})
}

// parseDateRange reads start/end query parameters as YYYY-MM-DD dates,
// extending end to the last instant of its day.
func parseDateRange(r *http.Request) (time.Time, time.Time, error) {
	var errs validator.ValidationErrors

	start, ok := validator.IsValidDate(r.URL.Query().Get("start"))
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "start", Message: "start must be a YYYY-MM-DD date"})
	}
	end, ok := validator.IsValidDate(r.URL.Query().Get("end"))
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "end", Message: "end must be a YYYY-MM-DD date"})
	}
	if len(errs) > 0 {
		return time.Time{}, time.Time{}, errs
	}

	end = time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 999_000_000, end.Location())
	return start, end, nil
}

func NewBadgeHandler(badgeService badge.BadgeService) BadgeHandler {
	return &BadgeHandlerImpl{badgeService: badgeService}
}
