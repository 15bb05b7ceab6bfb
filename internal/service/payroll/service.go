package payroll

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/peoplehub/hrops-backend-go/internal/config"
	"github.com/peoplehub/hrops-backend-go/internal/domain/attendance"
	"github.com/peoplehub/hrops-backend-go/internal/domain/department"
	"github.com/peoplehub/hrops-backend-go/internal/domain/employee"
	"github.com/peoplehub/hrops-backend-go/internal/domain/payroll"
	"github.com/peoplehub/hrops-backend-go/internal/pkg/clock"
)

// Currency figures round to two decimal places, half away from zero.
const currencyPlaces = 2

// maxConcurrentCalculations caps the fan-out when rolling up a department.
const maxConcurrentCalculations = 8

type PayrollServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	department.DepartmentRepository
	clock  clock.Clock
	policy config.PayrollConfig
}

func NewPayrollService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	departmentRepo department.DepartmentRepository,
	clk clock.Clock,
	policy config.PayrollConfig,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		DepartmentRepository: departmentRepo,
		clock:                clk,
		policy:               policy,
	}
}

// aggregate reduces one employee-month of records into presence counts.
// "Today" is captured once so the result is stable for the whole call.
func (p *PayrollServiceImpl) aggregate(ctx context.Context, employeeID string, year, month int) (payroll.MonthlyAggregate, error) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	daysInMonth := last.Day()

	today := clock.Midnight(p.clock.Now())

	// Days after today are not determinable and stay out of every tally.
	cutoff := last
	if today.Before(last) {
		cutoff = today
	}

	agg := payroll.MonthlyAggregate{
		EmployeeID:         employeeID,
		Year:               year,
		Month:              month,
		DaysInMonth:        daysInMonth,
		DaysPresent:        decimal.Zero,
		TotalOvertimeHours: decimal.Zero,
	}
	if cutoff.Before(first) {
		return agg, nil
	}

	records, err := p.AttendanceRepository.GetByEmployeeAndRange(ctx, employeeID, first, cutoff)
	if err != nil {
		return payroll.MonthlyAggregate{}, fmt.Errorf("failed to query attendance: %w", err)
	}

	byDate := make(map[string]attendance.Record, len(records))
	for _, r := range records {
		byDate[r.Date.Format("2006-01-02")] = r
	}

	half := decimal.NewFromFloat(0.5)
	for day := first; !day.After(cutoff); day = day.AddDate(0, 0, 1) {
		record, ok := byDate[day.Format("2006-01-02")]
		if !ok {
			// Sparse storage: no row for a past day reads as absent.
			// Today without a punch yet is not absent, just unknown.
			if day.Before(today) {
				agg.DaysAbsent++
			}
			continue
		}
		switch record.Status {
		case attendance.StatusPresent:
			agg.DaysPresent = agg.DaysPresent.Add(decimal.NewFromInt(1))
			agg.TotalOvertimeHours = agg.TotalOvertimeHours.Add(record.OvertimeHoursOrZero())
		case attendance.StatusHalfDay:
			agg.DaysPresent = agg.DaysPresent.Add(half)
			agg.TotalOvertimeHours = agg.TotalOvertimeHours.Add(record.OvertimeHoursOrZero())
		case attendance.StatusPending:
			agg.DaysPending++
		default:
			agg.DaysAbsent++
		}
	}

	return agg, nil
}

// calculate derives the pay figures from master data plus the aggregate.
// Pure given its inputs; all intermediate math stays in decimals and only
// the money fields are rounded.
func (p *PayrollServiceImpl) calculate(emp employee.Employee, agg payroll.MonthlyAggregate) (payroll.SalaryCalculation, error) {
	if !emp.MonthlySalary.IsPositive() {
		return payroll.SalaryCalculation{}, payroll.ErrInvalidSalary
	}

	days := decimal.NewFromInt(int64(agg.DaysInMonth))
	perDiem := emp.MonthlySalary.Div(days)
	baseSalary := perDiem.Mul(agg.DaysPresent)

	overtimePay := decimal.Zero
	overtimeHours := decimal.Zero
	if emp.OvertimeEligible && agg.TotalOvertimeHours.IsPositive() {
		overtimeHours = agg.TotalOvertimeHours
		hourlyRate := perDiem.Div(p.policy.StandardDailyHours).Mul(p.policy.OvertimeMultiplier)
		overtimePay = overtimeHours.Mul(hourlyRate)
	}

	return payroll.SalaryCalculation{
		EmployeeID:       emp.ID,
		EmployeeCode:     emp.EmployeeCode,
		EmployeeName:     emp.FullName,
		DepartmentID:     emp.DepartmentID,
		Year:             agg.Year,
		Month:            agg.Month,
		DaysInMonth:      agg.DaysInMonth,
		DaysPresent:      agg.DaysPresent,
		MonthlySalary:    emp.MonthlySalary,
		BaseSalary:       baseSalary.Round(currencyPlaces),
		OvertimeHours:    overtimeHours,
		OvertimePay:      overtimePay.Round(currencyPlaces),
		CalculatedSalary: baseSalary.Add(overtimePay).Round(currencyPlaces),
		InactiveWarning:  !emp.IsActive(),
	}, nil
}

func (p *PayrollServiceImpl) calculateForEmployee(ctx context.Context, emp employee.Employee, year, month int) (payroll.SalaryCalculation, error) {
	agg, err := p.aggregate(ctx, emp.ID, year, month)
	if err != nil {
		return payroll.SalaryCalculation{}, err
	}
	return p.calculate(emp, agg)
}

// CalculateSalary implements payroll.PayrollService.
func (p *PayrollServiceImpl) CalculateSalary(ctx context.Context, employeeID string, req payroll.PeriodRequest) (payroll.SalaryCalculationResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.SalaryCalculationResponse{}, err
	}

	emp, err := p.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return payroll.SalaryCalculationResponse{}, err
	}
	if !emp.IsActive() && !req.IncludeInactive {
		return payroll.SalaryCalculationResponse{}, payroll.ErrInactiveEmployee
	}

	calc, err := p.calculateForEmployee(ctx, emp, req.Year, req.Month)
	if err != nil {
		return payroll.SalaryCalculationResponse{}, err
	}

	return toCalculationResponse(calc), nil
}

// rollUpDepartment reduces a calculation set into department totals. The
// reduction is commutative, so input order never changes the summary.
func rollUpDepartment(calculations []payroll.SalaryCalculation) payroll.DepartmentSummary {
	summary := payroll.DepartmentSummary{
		TotalMonthlySalary:    decimal.Zero,
		TotalCalculatedSalary: decimal.Zero,
		TotalDeduction:        decimal.Zero,
		OvertimeSurplus:       decimal.Zero,
		AverageDaysPresent:    decimal.Zero,
	}

	totalDaysPresent := decimal.Zero
	for _, c := range calculations {
		summary.TotalMonthlySalary = summary.TotalMonthlySalary.Add(c.MonthlySalary)
		summary.TotalCalculatedSalary = summary.TotalCalculatedSalary.Add(c.CalculatedSalary)
		totalDaysPresent = totalDaysPresent.Add(c.DaysPresent)
	}

	// Overtime must never drive the reported deduction negative; the
	// surplus is shown on its own line instead.
	deduction := summary.TotalMonthlySalary.Sub(summary.TotalCalculatedSalary)
	if deduction.IsNegative() {
		summary.OvertimeSurplus = deduction.Neg().Round(currencyPlaces)
		deduction = decimal.Zero
	}
	summary.TotalDeduction = deduction.Round(currencyPlaces)

	if len(calculations) > 0 {
		summary.AverageDaysPresent = totalDaysPresent.
			Div(decimal.NewFromInt(int64(len(calculations)))).
			Round(currencyPlaces)
	}

	return summary
}

func (p *PayrollServiceImpl) departmentReport(ctx context.Context, dept department.Department, req payroll.PeriodRequest) (payroll.DepartmentSalaryReport, error) {
	employees, err := p.EmployeeRepository.GetByDepartmentID(ctx, dept.ID, req.IncludeInactive)
	if err != nil {
		return payroll.DepartmentSalaryReport{}, err
	}

	calculations := make([]payroll.SalaryCalculation, len(employees))

	// Each employee's calculation is independent, fan them out.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentCalculations)
	for i, emp := range employees {
		i, emp := i, emp
		g.Go(func() error {
			calc, err := p.calculateForEmployee(gctx, emp, req.Year, req.Month)
			if err != nil {
				return fmt.Errorf("employee %s: %w", emp.ID, err)
			}
			calculations[i] = calc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return payroll.DepartmentSalaryReport{}, err
	}

	sort.Slice(calculations, func(i, j int) bool {
		return calculations[i].EmployeeCode < calculations[j].EmployeeCode
	})

	return payroll.DepartmentSalaryReport{
		DepartmentID:   dept.ID,
		DepartmentName: dept.Name,
		Year:           req.Year,
		Month:          req.Month,
		EmployeeCount:  len(employees),
		Calculations:   calculations,
		Summary:        rollUpDepartment(calculations),
	}, nil
}

// GetDepartmentReport implements payroll.PayrollService.
func (p *PayrollServiceImpl) GetDepartmentReport(ctx context.Context, departmentID string, req payroll.PeriodRequest) (payroll.DepartmentReportResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.DepartmentReportResponse{}, err
	}

	dept, err := p.DepartmentRepository.GetByID(ctx, departmentID)
	if err != nil {
		return payroll.DepartmentReportResponse{}, err
	}

	report, err := p.departmentReport(ctx, dept, req)
	if err != nil {
		return payroll.DepartmentReportResponse{}, err
	}

	return toDepartmentResponse(report), nil
}

// rollUpSystem reduces department summaries into the company-wide totals.
func rollUpSystem(reports []payroll.DepartmentSalaryReport) payroll.SystemSummary {
	summary := payroll.SystemSummary{
		TotalMonthlySalary:    decimal.Zero,
		TotalCalculatedSalary: decimal.Zero,
		TotalDeduction:        decimal.Zero,
		OvertimeSurplus:       decimal.Zero,
		DeductionPercentage:   decimal.Zero,
	}

	for _, r := range reports {
		summary.TotalMonthlySalary = summary.TotalMonthlySalary.Add(r.Summary.TotalMonthlySalary)
		summary.TotalCalculatedSalary = summary.TotalCalculatedSalary.Add(r.Summary.TotalCalculatedSalary)
		summary.TotalDeduction = summary.TotalDeduction.Add(r.Summary.TotalDeduction)
		summary.OvertimeSurplus = summary.OvertimeSurplus.Add(r.Summary.OvertimeSurplus)
	}

	if summary.TotalMonthlySalary.IsPositive() {
		summary.DeductionPercentage = summary.TotalDeduction.
			Div(summary.TotalMonthlySalary).
			Mul(decimal.NewFromInt(100)).
			Round(currencyPlaces)
	}

	return summary
}

// GetSystemReport implements payroll.PayrollService.
func (p *PayrollServiceImpl) GetSystemReport(ctx context.Context, req payroll.PeriodRequest) (payroll.SystemReportResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.SystemReportResponse{}, err
	}

	departments, err := p.DepartmentRepository.GetAll(ctx)
	if err != nil {
		return payroll.SystemReportResponse{}, err
	}

	reports := make([]payroll.DepartmentSalaryReport, len(departments))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentCalculations)
	for i, dept := range departments {
		i, dept := i, dept
		g.Go(func() error {
			report, err := p.departmentReport(gctx, dept, req)
			if err != nil {
				return fmt.Errorf("department %s: %w", dept.ID, err)
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return payroll.SystemReportResponse{}, err
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].DepartmentName < reports[j].DepartmentName
	})

	resp := payroll.SystemReportResponse{
		Year:            req.Year,
		Month:           req.Month,
		DepartmentCount: len(departments),
		Departments:     make([]payroll.DepartmentReportResponse, 0, len(reports)),
		Summary:         toSystemSummaryResponse(rollUpSystem(reports)),
	}
	for _, r := range reports {
		resp.Departments = append(resp.Departments, toDepartmentResponse(r))
	}

	return resp, nil
}

func toCalculationResponse(c payroll.SalaryCalculation) payroll.SalaryCalculationResponse {
	return payroll.SalaryCalculationResponse{
		EmployeeID:       c.EmployeeID,
		EmployeeCode:     c.EmployeeCode,
		EmployeeName:     c.EmployeeName,
		DepartmentID:     c.DepartmentID,
		Year:             c.Year,
		Month:            c.Month,
		DaysInMonth:      c.DaysInMonth,
		DaysPresent:      c.DaysPresent.String(),
		MonthlySalary:    c.MonthlySalary.StringFixed(currencyPlaces),
		BaseSalary:       c.BaseSalary.StringFixed(currencyPlaces),
		OvertimeHours:    c.OvertimeHours.String(),
		OvertimePay:      c.OvertimePay.StringFixed(currencyPlaces),
		CalculatedSalary: c.CalculatedSalary.StringFixed(currencyPlaces),
		InactiveWarning:  c.InactiveWarning,
	}
}

func toDepartmentResponse(r payroll.DepartmentSalaryReport) payroll.DepartmentReportResponse {
	resp := payroll.DepartmentReportResponse{
		DepartmentID:   r.DepartmentID,
		DepartmentName: r.DepartmentName,
		Year:           r.Year,
		Month:          r.Month,
		EmployeeCount:  r.EmployeeCount,
		Calculations:   make([]payroll.SalaryCalculationResponse, 0, len(r.Calculations)),
		Summary: payroll.DepartmentSummaryResponse{
			TotalMonthlySalary:    r.Summary.TotalMonthlySalary.StringFixed(currencyPlaces),
			TotalCalculatedSalary: r.Summary.TotalCalculatedSalary.StringFixed(currencyPlaces),
			TotalDeduction:        r.Summary.TotalDeduction.StringFixed(currencyPlaces),
			OvertimeSurplus:       r.Summary.OvertimeSurplus.StringFixed(currencyPlaces),
			AverageDaysPresent:    r.Summary.AverageDaysPresent.String(),
		},
	}
	for _, c := range r.Calculations {
		resp.Calculations = append(resp.Calculations, toCalculationResponse(c))
	}
	return resp
}

func toSystemSummaryResponse(s payroll.SystemSummary) payroll.SystemSummaryResponse {
	return payroll.SystemSummaryResponse{
		TotalMonthlySalary:    s.TotalMonthlySalary.StringFixed(currencyPlaces),
		TotalCalculatedSalary: s.TotalCalculatedSalary.StringFixed(currencyPlaces),
		TotalDeduction:        s.TotalDeduction.StringFixed(currencyPlaces),
		OvertimeSurplus:       s.OvertimeSurplus.StringFixed(currencyPlaces),
		DeductionPercentage:   s.DeductionPercentage.StringFixed(currencyPlaces),
	}
}
