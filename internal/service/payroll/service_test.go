package payroll

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peoplehub/hrops-backend-go/internal/config"
	"github.com/peoplehub/hrops-backend-go/internal/domain/attendance"
	"github.com/peoplehub/hrops-backend-go/internal/domain/department"
	"github.com/peoplehub/hrops-backend-go/internal/domain/employee"
	"github.com/peoplehub/hrops-backend-go/internal/domain/payroll"
	"github.com/peoplehub/hrops-backend-go/internal/pkg/clock"
)

type fakeAttendanceRepo struct {
	records []attendance.Record
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (attendance.Record, error) {
	for _, r := range f.records {
		if r.EmployeeID == employeeID && r.Date.Equal(date) {
			return r, nil
		}
	}
	return attendance.Record{}, attendance.ErrRecordNotFound
}

func (f *fakeAttendanceRepo) GetByEmployeeAndRange(_ context.Context, employeeID string, from, to time.Time) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, r := range f.records {
		if r.EmployeeID == employeeID && !r.Date.Before(from) && !r.Date.After(to) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) Upsert(_ context.Context, record attendance.Record) (attendance.Record, error) {
	f.records = append(f.records, record)
	return record, nil
}

func (f *fakeAttendanceRepo) Correct(_ context.Context, record attendance.Record, _ attendance.AuditEntry) (attendance.Record, error) {
	f.records = append(f.records, record)
	return record, nil
}

func (f *fakeAttendanceRepo) ListAuditEntries(_ context.Context, _ string) ([]attendance.AuditEntry, error) {
	return nil, nil
}

type fakeEmployeeRepo struct {
	employees []employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.ID == id {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetByDepartmentID(_ context.Context, departmentID string, includeInactive bool) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range f.employees {
		if emp.DepartmentID == departmentID && (includeInactive || emp.IsActive()) {
			out = append(out, emp)
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepo) GetAll(_ context.Context, includeInactive bool) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range f.employees {
		if includeInactive || emp.IsActive() {
			out = append(out, emp)
		}
	}
	return out, nil
}

type fakeDepartmentRepo struct {
	departments []department.Department
}

func (f *fakeDepartmentRepo) GetByID(_ context.Context, id string) (department.Department, error) {
	for _, d := range f.departments {
		if d.ID == id {
			return d, nil
		}
	}
	return department.Department{}, department.ErrDepartmentNotFound
}

func (f *fakeDepartmentRepo) GetAll(_ context.Context) ([]department.Department, error) {
	return f.departments, nil
}

// Tests run against April 2026 with "now" frozen well after the month
// ended, so every day of the month is determinable.
var fixedNow = time.Date(2026, 5, 15, 10, 0, 0, 0, time.UTC)

var defaultPolicy = config.PayrollConfig{
	StandardDailyHours: decimal.NewFromInt(8),
	OvertimeMultiplier: decimal.NewFromFloat(1.5),
}

// presentDays stores one present record per day of April 2026.
func presentDays(repo *fakeAttendanceRepo, employeeID string, days int, overtimeOnFirstDay *decimal.Decimal) {
	for d := 1; d <= days; d++ {
		date := time.Date(2026, 4, d, 0, 0, 0, 0, time.UTC)
		entry := date.Add(8 * time.Hour)
		exit := date.Add(17 * time.Hour)
		record := attendance.Record{
			ID:         employeeID + "-" + date.Format("2006-01-02"),
			EmployeeID: employeeID,
			Date:       date,
			EntryTime:  &entry,
			ExitTime:   &exit,
			Status:     attendance.StatusPresent,
		}
		if d == 1 && overtimeOnFirstDay != nil {
			record.OvertimeHours = overtimeOnFirstDay
		}
		repo.records = append(repo.records, record)
	}
}

func newTestService(att *fakeAttendanceRepo, emps *fakeEmployeeRepo, depts *fakeDepartmentRepo) payroll.PayrollService {
	return NewPayrollService(att, emps, depts, clock.Fixed(fixedNow), defaultPolicy)
}

func april() payroll.PeriodRequest {
	return payroll.PeriodRequest{Year: 2026, Month: 4}
}

func activeEmployee(id, dept, code string, salary int64, overtimeEligible bool) employee.Employee {
	return employee.Employee{
		ID:               id,
		DepartmentID:     dept,
		EmployeeCode:     code,
		FullName:         "Employee " + code,
		MonthlySalary:    decimal.NewFromInt(salary),
		OvertimeEligible: overtimeEligible,
		Status:           employee.StatusActive,
	}
}

func TestCalculateSalaryFullMonth(t *testing.T) {
	att := &fakeAttendanceRepo{}
	presentDays(att, "emp-1", 30, nil)
	emps := &fakeEmployeeRepo{employees: []employee.Employee{
		activeEmployee("emp-1", "dept-1", "ENG-0001", 30000, false),
	}}
	svc := newTestService(att, emps, &fakeDepartmentRepo{})

	resp, err := svc.CalculateSalary(context.Background(), "emp-1", april())
	require.NoError(t, err)
	assert.Equal(t, "30000.00", resp.BaseSalary)
	assert.Equal(t, "30000.00", resp.CalculatedSalary)
	assert.Equal(t, "0.00", resp.OvertimePay)
	assert.Equal(t, 30, resp.DaysInMonth)
	assert.Equal(t, "30", resp.DaysPresent)
}

func TestCalculateSalaryWithAbsences(t *testing.T) {
	att := &fakeAttendanceRepo{}
	presentDays(att, "emp-1", 25, nil)
	emps := &fakeEmployeeRepo{employees: []employee.Employee{
		activeEmployee("emp-1", "dept-1", "ENG-0001", 30000, false),
	}}
	svc := newTestService(att, emps, &fakeDepartmentRepo{})

	resp, err := svc.CalculateSalary(context.Background(), "emp-1", april())
	require.NoError(t, err)
	// perDiem 1000.00, five absent days deducted.
	assert.Equal(t, "25000.00", resp.BaseSalary)
	assert.Equal(t, "25000.00", resp.CalculatedSalary)
}

func TestCalculateSalaryWithOvertime(t *testing.T) {
	att := &fakeAttendanceRepo{}
	overtime := decimal.NewFromInt(4)
	presentDays(att, "emp-1", 30, &overtime)
	emps := &fakeEmployeeRepo{employees: []employee.Employee{
		activeEmployee("emp-1", "dept-1", "ENG-0001", 24000, true),
	}}
	svc := newTestService(att, emps, &fakeDepartmentRepo{})

	resp, err := svc.CalculateSalary(context.Background(), "emp-1", april())
	require.NoError(t, err)
	// hourly rate 24000/30/8 = 100; 4h x 100 x 1.5 = 600.
	assert.Equal(t, "600.00", resp.OvertimePay)
	assert.Equal(t, "24600.00", resp.CalculatedSalary)
}

func TestOvertimeIgnoredWhenNotEligible(t *testing.T) {
	att := &fakeAttendanceRepo{}
	overtime := decimal.NewFromInt(4)
	presentDays(att, "emp-1", 30, &overtime)
	emps := &fakeEmployeeRepo{employees: []employee.Employee{
		activeEmployee("emp-1", "dept-1", "ENG-0001", 24000, false),
	}}
	svc := newTestService(att, emps, &fakeDepartmentRepo{})

	resp, err := svc.CalculateSalary(context.Background(), "emp-1", april())
	require.NoError(t, err)
	assert.Equal(t, "0.00", resp.OvertimePay)
	assert.Equal(t, "24000.00", resp.CalculatedSalary)
}

func TestCalculateSalaryHalfDays(t *testing.T) {
	att := &fakeAttendanceRepo{}
	presentDays(att, "emp-1", 29, nil)
	date := time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC)
	entry := date.Add(8 * time.Hour)
	att.records = append(att.records, attendance.Record{
		ID:         "emp-1-half",
		EmployeeID: "emp-1",
		Date:       date,
		EntryTime:  &entry,
		Status:     attendance.StatusHalfDay,
	})
	emps := &fakeEmployeeRepo{employees: []employee.Employee{
		activeEmployee("emp-1", "dept-1", "ENG-0001", 30000, false),
	}}
	svc := newTestService(att, emps, &fakeDepartmentRepo{})

	resp, err := svc.CalculateSalary(context.Background(), "emp-1", april())
	require.NoError(t, err)
	assert.Equal(t, "29.5", resp.DaysPresent)
	assert.Equal(t, "29500.00", resp.BaseSalary)
}

func TestCalculateSalaryInactiveEmployee(t *testing.T) {
	att := &fakeAttendanceRepo{}
	presentDays(att, "emp-1", 10, nil)
	emp := activeEmployee("emp-1", "dept-1", "ENG-0001", 30000, false)
	emp.Status = employee.StatusInactive
	emps := &fakeEmployeeRepo{employees: []employee.Employee{emp}}
	svc := newTestService(att, emps, &fakeDepartmentRepo{})

	_, err := svc.CalculateSalary(context.Background(), "emp-1", april())
	assert.ErrorIs(t, err, payroll.ErrInactiveEmployee)

	// Historical audit reads are allowed, flagged instead of rejected.
	req := april()
	req.IncludeInactive = true
	resp, err := svc.CalculateSalary(context.Background(), "emp-1", req)
	require.NoError(t, err)
	assert.True(t, resp.InactiveWarning)
}

func TestCalculateSalaryIsIdempotent(t *testing.T) {
	att := &fakeAttendanceRepo{}
	overtime := decimal.NewFromFloat(2.5)
	presentDays(att, "emp-1", 22, &overtime)
	emps := &fakeEmployeeRepo{employees: []employee.Employee{
		activeEmployee("emp-1", "dept-1", "ENG-0001", 27350, true),
	}}
	svc := newTestService(att, emps, &fakeDepartmentRepo{})

	first, err := svc.CalculateSalary(context.Background(), "emp-1", april())
	require.NoError(t, err)
	second, err := svc.CalculateSalary(context.Background(), "emp-1", april())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAggregationTallies(t *testing.T) {
	att := &fakeAttendanceRepo{}
	presentDays(att, "emp-1", 20, nil)
	// One pending day that never got an exit punch.
	date := time.Date(2026, 4, 25, 0, 0, 0, 0, time.UTC)
	entry := date.Add(8 * time.Hour)
	att.records = append(att.records, attendance.Record{
		ID:         "emp-1-pending",
		EmployeeID: "emp-1",
		Date:       date,
		EntryTime:  &entry,
		Status:     attendance.StatusPending,
	})

	svc := newTestService(att, &fakeEmployeeRepo{}, &fakeDepartmentRepo{}).(*PayrollServiceImpl)
	agg, err := svc.aggregate(context.Background(), "emp-1", 2026, 4)
	require.NoError(t, err)

	assert.Equal(t, 30, agg.DaysInMonth)
	assert.True(t, agg.DaysPresent.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, 1, agg.DaysPending)
	assert.Equal(t, 9, agg.DaysAbsent)

	// Fully elapsed month: tallies cover every calendar day.
	total := agg.DaysPresent.
		Add(decimal.NewFromInt(int64(agg.DaysPending))).
		Add(decimal.NewFromInt(int64(agg.DaysAbsent)))
	assert.True(t, total.Equal(decimal.NewFromInt(int64(agg.DaysInMonth))))
}

func TestAggregationExcludesFutureDays(t *testing.T) {
	att := &fakeAttendanceRepo{}
	presentDays(att, "emp-1", 10, nil)

	// Frozen mid-month: April 10 is "today" and has no punch yet.
	midMonth := time.Date(2026, 4, 10, 7, 0, 0, 0, time.UTC)
	svc := NewPayrollService(att, &fakeEmployeeRepo{}, &fakeDepartmentRepo{}, clock.Fixed(midMonth), defaultPolicy).(*PayrollServiceImpl)

	agg, err := svc.aggregate(context.Background(), "emp-2", 2026, 4)
	require.NoError(t, err)

	// emp-2 has no records at all: nine elapsed days absent, today and
	// the rest of the month excluded.
	assert.Equal(t, 9, agg.DaysAbsent)
	assert.True(t, agg.DaysPresent.IsZero())
	assert.Equal(t, 0, agg.DaysPending)
}

func TestDepartmentReport(t *testing.T) {
	att := &fakeAttendanceRepo{}
	presentDays(att, "emp-1", 30, nil)
	presentDays(att, "emp-2", 25, nil)
	emps := &fakeEmployeeRepo{employees: []employee.Employee{
		activeEmployee("emp-1", "dept-1", "ENG-0001", 30000, false),
		activeEmployee("emp-2", "dept-1", "ENG-0002", 30000, false),
	}}
	depts := &fakeDepartmentRepo{departments: []department.Department{
		{ID: "dept-1", Name: "Engineering", Code: "ENG"},
	}}
	svc := newTestService(att, emps, depts)

	resp, err := svc.GetDepartmentReport(context.Background(), "dept-1", april())
	require.NoError(t, err)
	assert.Equal(t, 2, resp.EmployeeCount)
	assert.Equal(t, "60000.00", resp.Summary.TotalMonthlySalary)
	assert.Equal(t, "55000.00", resp.Summary.TotalCalculatedSalary)
	assert.Equal(t, "5000.00", resp.Summary.TotalDeduction)
	assert.Equal(t, "27.5", resp.Summary.AverageDaysPresent)
}

func TestDeductionFlooredAtZero(t *testing.T) {
	att := &fakeAttendanceRepo{}
	overtime := decimal.NewFromInt(20)
	presentDays(att, "emp-1", 30, &overtime)
	emps := &fakeEmployeeRepo{employees: []employee.Employee{
		activeEmployee("emp-1", "dept-1", "ENG-0001", 24000, true),
	}}
	depts := &fakeDepartmentRepo{departments: []department.Department{
		{ID: "dept-1", Name: "Engineering", Code: "ENG"},
	}}
	svc := newTestService(att, emps, depts)

	resp, err := svc.GetDepartmentReport(context.Background(), "dept-1", april())
	require.NoError(t, err)
	// Full month plus overtime: the surplus shows separately, the
	// deduction never goes negative.
	assert.Equal(t, "0.00", resp.Summary.TotalDeduction)
	assert.Equal(t, "3000.00", resp.Summary.OvertimeSurplus)
}

// Permuting the calculation set must not change the summary.
func TestRollUpDepartmentIsOrderIndependent(t *testing.T) {
	calculations := make([]payroll.SalaryCalculation, 0, 12)
	for i := 0; i < 12; i++ {
		monthly := decimal.NewFromInt(int64(20000 + i*1337))
		calculated := monthly.Mul(decimal.NewFromFloat(0.9)).Round(2)
		calculations = append(calculations, payroll.SalaryCalculation{
			MonthlySalary:    monthly,
			CalculatedSalary: calculated,
			DaysPresent:      decimal.NewFromInt(int64(18 + i%5)),
		})
	}

	want := rollUpDepartment(calculations)

	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 5; trial++ {
		shuffled := make([]payroll.SalaryCalculation, len(calculations))
		copy(shuffled, calculations)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		got := rollUpDepartment(shuffled)
		assert.True(t, want.TotalMonthlySalary.Equal(got.TotalMonthlySalary))
		assert.True(t, want.TotalCalculatedSalary.Equal(got.TotalCalculatedSalary))
		assert.True(t, want.TotalDeduction.Equal(got.TotalDeduction))
		assert.True(t, want.AverageDaysPresent.Equal(got.AverageDaysPresent))
	}
}

func TestSystemReport(t *testing.T) {
	att := &fakeAttendanceRepo{}
	presentDays(att, "emp-1", 30, nil)
	presentDays(att, "emp-2", 15, nil)
	emps := &fakeEmployeeRepo{employees: []employee.Employee{
		activeEmployee("emp-1", "dept-1", "ENG-0001", 30000, false),
		activeEmployee("emp-2", "dept-2", "OPS-0001", 20000, false),
	}}
	depts := &fakeDepartmentRepo{departments: []department.Department{
		{ID: "dept-1", Name: "Engineering", Code: "ENG"},
		{ID: "dept-2", Name: "Operations", Code: "OPS"},
	}}
	svc := newTestService(att, emps, depts)

	resp, err := svc.GetSystemReport(context.Background(), april())
	require.NoError(t, err)
	assert.Equal(t, 2, resp.DepartmentCount)
	require.Len(t, resp.Departments, 2)
	assert.Equal(t, "50000.00", resp.Summary.TotalMonthlySalary)
	assert.Equal(t, "40000.00", resp.Summary.TotalCalculatedSalary)
	assert.Equal(t, "10000.00", resp.Summary.TotalDeduction)
	assert.Equal(t, "20.00", resp.Summary.DeductionPercentage)
}

func TestSystemReportEmptyCompany(t *testing.T) {
	svc := newTestService(&fakeAttendanceRepo{}, &fakeEmployeeRepo{}, &fakeDepartmentRepo{})

	resp, err := svc.GetSystemReport(context.Background(), april())
	require.NoError(t, err)
	assert.Equal(t, 0, resp.DepartmentCount)
	// No salaries at all: the percentage reads zero, not a division error.
	assert.Equal(t, "0.00", resp.Summary.DeductionPercentage)
}
