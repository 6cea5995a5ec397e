package report

import "context"

// ReportService builds aggregate attendance views.
type ReportService interface {
	// Monthly builds the employee's month of Monday-start week buckets.
	Monthly(ctx context.Context, employeeID string, year, month int) (MonthlyReport, error)
}
