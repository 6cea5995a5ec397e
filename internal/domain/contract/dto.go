package contract

import (
	"github.com/staffsync/badging-backend-go/internal/pkg/validator"
)

type CreateContractRequest struct {
	EmployeeID  string  `json:"employee_id"`
	WeeklyHours float64 `json:"weekly_hours"`
	StartDate   string  `json:"start_date"`
}

func (r *CreateContractRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if r.WeeklyHours <= 0 || r.WeeklyHours > 80 {
		errs = append(errs, validator.ValidationError{Field: "weekly_hours", Message: "weekly_hours must be between 0 and 80"})
	}
	if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be a YYYY-MM-DD date"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ContractResponse struct {
	ID          string  `json:"id"`
	EmployeeID  string  `json:"employee_id"`
	WeeklyHours float64 `json:"weekly_hours"`
	Status      string  `json:"status"`
	StartDate   string  `json:"start_date"`
	EndDate     *string `json:"end_date,omitempty"`
}

func NewContractResponse(c Contract) ContractResponse {
	resp := ContractResponse{
		ID:          c.ID,
		EmployeeID:  c.EmployeeID,
		WeeklyHours: c.WeeklyHours,
		Status:      string(c.Status),
		StartDate:   c.StartDate.Format("2006-01-02"),
	}
	if c.EndDate != nil {
		end := c.EndDate.Format("2006-01-02")
		resp.EndDate = &end
	}
	return resp
}
