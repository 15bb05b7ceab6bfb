package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/peoplehub/hrops-backend-go/internal/domain/employee"
	"github.com/peoplehub/hrops-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
	id, department_id, employee_code, full_name, email,
	monthly_salary, overtime_eligible, status, hire_date,
	created_at, updated_at
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.DepartmentID, &e.EmployeeCode, &e.FullName, &e.Email,
		&e.MonthlySalary, &e.OvertimeEligible, &e.Status, &e.HireDate,
		&e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	query := `
		SELECT` + employeeColumns + `
		FROM employees
		WHERE id = $1
	`

	emp, err := scanEmployee(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, translateStoreErr(fmt.Errorf("failed to get employee: %w", err))
	}

	return emp, nil
}

// GetByDepartmentID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByDepartmentID(ctx context.Context, departmentID string, includeInactive bool) ([]employee.Employee, error) {
	query := `
		SELECT` + employeeColumns + `
		FROM employees
		WHERE department_id = $1
		  AND ($2 OR status = 'active')
		ORDER BY employee_code
	`

	rows, err := r.db.Pool.Query(ctx, query, departmentID, includeInactive)
	if err != nil {
		return nil, translateStoreErr(fmt.Errorf("failed to query employees by department: %w", err))
	}
	defer rows.Close()

	return collectEmployees(rows)
}

// GetAll implements employee.EmployeeRepository.
func (r *employeeRepository) GetAll(ctx context.Context, includeInactive bool) ([]employee.Employee, error) {
	query := `
		SELECT` + employeeColumns + `
		FROM employees
		WHERE $1 OR status = 'active'
		ORDER BY employee_code
	`

	rows, err := r.db.Pool.Query(ctx, query, includeInactive)
	if err != nil {
		return nil, translateStoreErr(fmt.Errorf("failed to query employees: %w", err))
	}
	defer rows.Close()

	return collectEmployees(rows)
}

func collectEmployees(rows pgx.Rows) ([]employee.Employee, error) {
	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, translateStoreErr(fmt.Errorf("failed to read employees: %w", err))
	}
	return employees, nil
}
