package payroll

import (
	"context"
)

// PayrollService defines payroll computation over attendance facts.
// All results are derived on demand; nothing here is cached or persisted.
type PayrollService interface {
	// CalculateSalary computes one employee's pay for a month
	CalculateSalary(ctx context.Context, employeeID string, req PeriodRequest) (SalaryCalculationResponse, error)

	// GetDepartmentReport rolls up calculations across one department
	GetDepartmentReport(ctx context.Context, departmentID string, req PeriodRequest) (DepartmentReportResponse, error)

	// GetSystemReport rolls up all department reports
	GetSystemReport(ctx context.Context, req PeriodRequest) (SystemReportResponse, error)
}
