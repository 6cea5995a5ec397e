package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/staffsync/badging-backend-go/internal/domain/schedule"
	"github.com/staffsync/badging-backend-go/internal/domain/tenant"
	"github.com/staffsync/badging-backend-go/internal/handler/http/response"
)

type ScheduleHandler interface {
	CreateShift(w http.ResponseWriter, r *http.Request)
	UpdateShift(w http.ResponseWriter, r *http.Request)
	DeleteShift(w http.ResponseWriter, r *http.Request)
	MyShifts(w http.ResponseWriter, r *http.Request)
	MyShiftsOnDay(w http.ResponseWriter, r *http.Request)
	MyShiftsInRange(w http.ResponseWriter, r *http.Request)
	CreateClosingPeriod(w http.ResponseWriter, r *http.Request)
	DeleteClosingPeriod(w http.ResponseWriter, r *http.Request)
	ListClosingPeriods(w http.ResponseWriter, r *http.Request)
	RequestAbsence(w http.ResponseWriter, r *http.Request)
	MyAbsences(w http.ResponseWriter, r *http.Request)
	ApproveAbsence(w http.ResponseWriter, r *http.Request)
	RejectAbsence(w http.ResponseWriter, r *http.Request)
}

type ScheduleHandlerImpl struct {
	scheduleService schedule.ScheduleService
}

// CreateShift implements ScheduleHandler.
func (s *ScheduleHandlerImpl) CreateShift(w http.ResponseWriter, r *http.Request) {
	var createReq schedule.CreateShiftRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("CreateShift decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	shiftResponse, err := s.scheduleService.CreateShift(r.Context(), createReq)
	if err != nil {
		slog.Error("CreateShift service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift created successfully", shiftResponse)
}

// UpdateShift implements ScheduleHandler.
func (s *ScheduleHandlerImpl) UpdateShift(w http.ResponseWriter, r *http.Request) {
	var updateReq schedule.CreateShiftRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("UpdateShift decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	shiftResponse, err := s.scheduleService.UpdateShift(r.Context(), chi.URLParam(r, "id"), updateReq)
	if err != nil {
		slog.Error("UpdateShift service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, shiftResponse)
}

// DeleteShift implements ScheduleHandler.
func (s *ScheduleHandlerImpl) DeleteShift(w http.ResponseWriter, r *http.Request) {
	if err := s.scheduleService.DeleteShift(r.Context(), chi.URLParam(r, "id")); err != nil {
		slog.Error("DeleteShift service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift deleted successfully", nil)
}

// MyShifts implements ScheduleHandler.
func (s *ScheduleHandlerImpl) MyShifts(w http.ResponseWriter, r *http.Request) {
	shifts, err := s.scheduleService.MyShifts(r.Context())
	if err != nil {
		slog.Error("MyShifts service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, shifts)
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// MyShiftsOnDay implements ScheduleHandler. Shifts are a recurring weekly
// template, so the lookup is by weekday name rather than calendar date.
func (s *ScheduleHandlerImpl) MyShiftsOnDay(w http.ResponseWriter, r *http.Request) {
	weekday, ok := weekdays[strings.ToLower(chi.URLParam(r, "weekday"))]
	if !ok {
		response.BadRequest(w, "Unknown weekday", nil)
		return
	}

	tc, err := tenant.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	// Any date with the requested weekday matches the template.
	day := time.Now()
	for day.Weekday() != weekday {
		day = day.AddDate(0, 0, 1)
	}

	shifts, err := s.scheduleService.ShiftsForEmployeeOnDay(r.Context(), tc.EmployeeID, day)
	if err != nil {
		slog.Error("MyShiftsOnDay service error", "error", err)
		response.HandleError(w, err)
		return
	}

	responses := make([]schedule.ShiftResponse, 0, len(shifts))
	for _, shift := range shifts {
		responses = append(responses, schedule.NewShiftResponse(shift))
	}
	response.Success(w, responses)
}

// MyShiftsInRange implements ScheduleHandler.
func (s *ScheduleHandlerImpl) MyShiftsInRange(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseDateRange(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	employeeID := r.URL.Query().Get("employee_id")
	if employeeID == "" {
		if tc, err := tenant.FromContext(r.Context()); err == nil {
			employeeID = tc.EmployeeID
		}
	}

	// Range lookups use day precision.
	end = time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location())

	shifts, err := s.scheduleService.ShiftsForEmployeeInRange(r.Context(), employeeID, start, end)
	if err != nil {
		slog.Error("MyShiftsInRange service error", "error", err)
		response.HandleError(w, err)
		return
	}

	responses := make([]schedule.ShiftResponse, 0, len(shifts))
	for _, shift := range shifts {
		responses = append(responses, schedule.NewShiftResponse(shift))
	}
	response.Success(w, responses)
}

// CreateClosingPeriod implements ScheduleHandler.
func (s *ScheduleHandlerImpl) CreateClosingPeriod(w http.ResponseWriter, r *http.Request) {
	var createReq schedule.CreateClosingPeriodRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("CreateClosingPeriod decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	periodResponse, err := s.scheduleService.CreateClosingPeriod(r.Context(), createReq)
	if err != nil {
		slog.Error("CreateClosingPeriod service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Closing period created successfully", periodResponse)
}

// DeleteClosingPeriod implements ScheduleHandler.
func (s *ScheduleHandlerImpl) DeleteClosingPeriod(w http.ResponseWriter, r *http.Request) {
	if err := s.scheduleService.DeleteClosingPeriod(r.Context(), chi.URLParam(r, "id")); err != nil {
		slog.Error("DeleteClosingPeriod service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Closing period deleted successfully", nil)
}

// ListClosingPeriods implements ScheduleHandler.
func (s *ScheduleHandlerImpl) ListClosingPeriods(w http.ResponseWriter, r *http.Request) {
	periods, err := s.scheduleService.ListClosingPeriods(r.Context())
	if err != nil {
		slog.Error("ListClosingPeriods service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, periods)
}

// RequestAbsence implements ScheduleHandler.
func (s *ScheduleHandlerImpl) RequestAbsence(w http.ResponseWriter, r *http.Request) {
	var absenceReq schedule.CreateAbsenceRequest

	if err := json.NewDecoder(r.Body).Decode(&absenceReq); err != nil {
		slog.Error("RequestAbsence decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	absenceResponse, err := s.scheduleService.RequestAbsence(r.Context(), absenceReq)
	if err != nil {
		slog.Error("RequestAbsence service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Absence requested successfully", absenceResponse)
}

// MyAbsences implements ScheduleHandler.
func (s *ScheduleHandlerImpl) MyAbsences(w http.ResponseWriter, r *http.Request) {
	absences, err := s.scheduleService.MyAbsences(r.Context())
	if err != nil {
		slog.Error("MyAbsences service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, absences)
}

// ApproveAbsence implements ScheduleHandler.
func (s *ScheduleHandlerImpl) ApproveAbsence(w http.ResponseWriter, r *http.Request) {
	s.setAbsenceStatus(w, r, schedule.AbsenceApproved)
}

// RejectAbsence implements ScheduleHandler.
func (s *ScheduleHandlerImpl) RejectAbsence(w http.ResponseWriter, r *http.Request) {
	s.setAbsenceStatus(w, r, schedule.AbsenceRejected)
}

func (s *ScheduleHandlerImpl) setAbsenceStatus(w http.ResponseWriter, r *http.Request, status schedule.AbsenceStatus) {
	if err := s.scheduleService.SetAbsenceStatus(r.Context(), chi.URLParam(r, "id"), status); err != nil {
		slog.Error("SetAbsenceStatus service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Absence request updated", nil)
}

func NewScheduleHandler(scheduleService schedule.ScheduleService) ScheduleHandler {
	return &ScheduleHandlerImpl{scheduleService: scheduleService}
}
