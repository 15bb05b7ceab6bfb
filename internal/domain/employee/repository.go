package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByDepartmentID(ctx context.Context, departmentID string, includeInactive bool) ([]Employee, error)
	GetAll(ctx context.Context, includeInactive bool) ([]Employee, error)
}
