package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/staffsync/badging-backend-go/internal/domain/contract"
	"github.com/staffsync/badging-backend-go/internal/domain/tenant"
	"github.com/staffsync/badging-backend-go/internal/handler/http/response"
)

type ContractHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Terminate(w http.ResponseWriter, r *http.Request)
	ListByEmployee(w http.ResponseWriter, r *http.Request)
}

// ContractHandlerImpl works on the repository directly; contract admin
// has no business logic beyond tenant and role checks.
type ContractHandlerImpl struct {
	contractRepo contract.ContractRepository
}

// Create implements ContractHandler.
func (c *ContractHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var createReq contract.CreateContractRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("CreateContract decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := createReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	tc, err := tenant.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	startDate, _ := time.Parse("2006-01-02", createReq.StartDate)
	newContract := contract.Contract{
		ID:          uuid.NewString(),
		BusinessID:  tc.BusinessID,
		EmployeeID:  createReq.EmployeeID,
		WeeklyHours: createReq.WeeklyHours,
		Status:      contract.StatusActive,
		StartDate:   startDate,
	}

	created, err := c.contractRepo.Create(r.Context(), newContract)
	if err != nil {
		slog.Error("CreateContract repository error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Contract created successfully", contract.NewContractResponse(created))
}

// Terminate implements ContractHandler.
func (c *ContractHandlerImpl) Terminate(w http.ResponseWriter, r *http.Request) {
	tc, err := tenant.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	existing, err := c.contractRepo.GetActiveByEmployee(r.Context(), chi.URLParam(r, "employeeID"), tc.BusinessID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	now := time.Now()
	existing.Status = contract.StatusTerminated
	existing.EndDate = &now

	if err := c.contractRepo.Update(r.Context(), existing); err != nil {
		slog.Error("TerminateContract repository error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Contract terminated", contract.NewContractResponse(existing))
}

// ListByEmployee implements ContractHandler.
func (c *ContractHandlerImpl) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	tc, err := tenant.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	contracts, err := c.contractRepo.ListByEmployee(r.Context(), chi.URLParam(r, "employeeID"), tc.BusinessID)
	if err != nil {
		slog.Error("ListContracts repository error", "error", err)
		response.HandleError(w, err)
		return
	}

	responses := make([]contract.ContractResponse, 0, len(contracts))
	for _, con := range contracts {
		responses = append(responses, contract.NewContractResponse(con))
	}
	response.Success(w, responses)
}

func NewContractHandler(contractRepo contract.ContractRepository) ContractHandler {
	return &ContractHandlerImpl{contractRepo: contractRepo}
}
