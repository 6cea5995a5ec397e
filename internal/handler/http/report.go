package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/staffsync/badging-backend-go/internal/domain/reconcile"
	"github.com/staffsync/badging-backend-go/internal/domain/report"
	"github.com/staffsync/badging-backend-go/internal/handler/http/response"
	"github.com/staffsync/badging-backend-go/internal/pkg/validator"
)

type ReportHandler interface {
	Tardiness(w http.ResponseWriter, r *http.Request)
	Overtime(w http.ResponseWriter, r *http.Request)
	Monthly(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reconcileService reconcile.ReconcileService
	reportService    report.ReportService
}

// Tardiness implements ReportHandler.
func (h *ReportHandlerImpl) Tardiness(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	if employeeID == "" {
		employeeID = reconcile.AllEmployees
	}
	start, end, err := parseDateRange(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	batch, err := h.reconcileService.TardinessStats(r.Context(), employeeID, start, end)
	if err != nil {
		slog.Error("Tardiness service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, batch)
}

// Overtime implements ReportHandler.
func (h *ReportHandlerImpl) Overtime(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	if employeeID == "" {
		employeeID = reconcile.AllEmployees
	}
	start, end, err := parseDateRange(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	batch, err := h.reconcileService.OvertimeStats(r.Context(), employeeID, start, end)
	if err != nil {
		slog.Error("Overtime service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, batch)
}

// Monthly implements ReportHandler.
func (h *ReportHandlerImpl) Monthly(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	year, errYear := strconv.Atoi(r.URL.Query().Get("year"))
	month, errMonth := strconv.Atoi(r.URL.Query().Get("month"))

	var errs validator.ValidationErrors
	if employeeID == "" {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if errYear != nil || year < 2000 || year > 2200 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year must be a valid year"})
	}
	if errMonth != nil || month < 1 || month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be between 1 and 12"})
	}
	if len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}

	monthly, err := h.reportService.Monthly(r.Context(), employeeID, year, month)
	if err != nil {
		slog.Error("Monthly service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, monthly)
}

func NewReportHandler(reconcileService reconcile.ReconcileService, reportService report.ReportService) ReportHandler {
	return &ReportHandlerImpl{
		reconcileService: reconcileService,
		reportService:    reportService,
	}
}
