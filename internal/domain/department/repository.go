package department

import "context"

type DepartmentRepository interface {
	GetByID(ctx context.Context, id string) (Department, error)
	GetAll(ctx context.Context) ([]Department, error)
}
