package payroll

import (
	"github.com/shopspring/decimal"
)

// MonthlyAggregate - Attendance facts reduced over one employee-month
type MonthlyAggregate struct {
	EmployeeID         string
	Year               int
	Month              int
	DaysInMonth        int
	DaysPresent        decimal.Decimal // fractional, half days count 0.5
	DaysPending        int
	DaysAbsent         int
	TotalOvertimeHours decimal.Decimal
}

// SalaryCalculation - Derived pay figures for one employee-month.
// Never persisted; recomputed on every request so corrections are
// always reflected.
type SalaryCalculation struct {
	EmployeeID       string
	EmployeeCode     string
	EmployeeName     string
	DepartmentID     string
	Year             int
	Month            int
	DaysInMonth      int
	DaysPresent      decimal.Decimal
	MonthlySalary    decimal.Decimal
	BaseSalary       decimal.Decimal
	OvertimeHours    decimal.Decimal
	OvertimePay      decimal.Decimal
	CalculatedSalary decimal.Decimal
	InactiveWarning  bool
}

// DepartmentSummary - Totals over one department's calculations
type DepartmentSummary struct {
	TotalMonthlySalary    decimal.Decimal
	TotalCalculatedSalary decimal.Decimal
	TotalDeduction        decimal.Decimal
	OvertimeSurplus       decimal.Decimal
	AverageDaysPresent    decimal.Decimal
}

// DepartmentSalaryReport - Per-department roll-up
type DepartmentSalaryReport struct {
	DepartmentID   string
	DepartmentName string
	Year           int
	Month          int
	EmployeeCount  int
	Calculations   []SalaryCalculation
	Summary        DepartmentSummary
}

// SystemSummary - Totals over all departments
type SystemSummary struct {
	TotalMonthlySalary    decimal.Decimal
	TotalCalculatedSalary decimal.Decimal
	TotalDeduction        decimal.Decimal
	OvertimeSurplus       decimal.Decimal
	DeductionPercentage   decimal.Decimal
}
