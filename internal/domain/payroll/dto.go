package payroll

import (
	"time"

	"github.com/peoplehub/hrops-backend-go/internal/pkg/validator"
)

type PeriodRequest struct {
	Year            int  `json:"year"`
	Month           int  `json:"month"`
	IncludeInactive bool `json:"include_inactive"`
}

func (r *PeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Year < 2000 || r.Year > time.Now().Year()+1 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year is out of range",
		})
	}

	if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SalaryCalculationResponse struct {
	EmployeeID       string `json:"employee_id"`
	EmployeeCode     string `json:"employee_code"`
	EmployeeName     string `json:"employee_name"`
	DepartmentID     string `json:"department_id"`
	Year             int    `json:"year"`
	Month            int    `json:"month"`
	DaysInMonth      int    `json:"days_in_month"`
	DaysPresent      string `json:"days_present"`
	MonthlySalary    string `json:"monthly_salary"`
	BaseSalary       string `json:"base_salary"`
	OvertimeHours    string `json:"overtime_hours"`
	OvertimePay      string `json:"overtime_pay"`
	CalculatedSalary string `json:"calculated_salary"`
	InactiveWarning  bool   `json:"inactive_warning,omitempty"`
}

type DepartmentSummaryResponse struct {
	TotalMonthlySalary    string `json:"total_monthly_salary"`
	TotalCalculatedSalary string `json:"total_calculated_salary"`
	TotalDeduction        string `json:"total_deduction"`
	OvertimeSurplus       string `json:"overtime_surplus"`
	AverageDaysPresent    string `json:"average_days_present"`
}

type DepartmentReportResponse struct {
	DepartmentID   string                      `json:"department_id"`
	DepartmentName string                      `json:"department_name"`
	Year           int                         `json:"year"`
	Month          int                         `json:"month"`
	EmployeeCount  int                         `json:"employee_count"`
	Calculations   []SalaryCalculationResponse `json:"calculations"`
	Summary        DepartmentSummaryResponse   `json:"summary"`
}

type SystemSummaryResponse struct {
	TotalMonthlySalary    string `json:"total_monthly_salary"`
	TotalCalculatedSalary string `json:"total_calculated_salary"`
	TotalDeduction        string `json:"total_deduction"`
	OvertimeSurplus       string `json:"overtime_surplus"`
	DeductionPercentage   string `json:"deduction_percentage"`
}

type SystemReportResponse struct {
	Year            int                        `json:"year"`
	Month           int                        `json:"month"`
	DepartmentCount int                        `json:"department_count"`
	Departments     []DepartmentReportResponse `json:"departments"`
	Summary         SystemSummaryResponse      `json:"summary"`
}
