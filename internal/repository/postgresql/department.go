package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/peoplehub/hrops-backend-go/internal/domain/department"
	"github.com/peoplehub/hrops-backend-go/internal/pkg/database"
)

type departmentRepository struct {
	db *database.DB
}

func NewDepartmentRepository(db *database.DB) department.DepartmentRepository {
	return &departmentRepository{db: db}
}

// GetByID implements department.DepartmentRepository.
func (r *departmentRepository) GetByID(ctx context.Context, id string) (department.Department, error) {
	query := `
		SELECT id, name, code, created_at, updated_at
		FROM departments
		WHERE id = $1
	`

	var d department.Department
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.Name, &d.Code, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return department.Department{}, department.ErrDepartmentNotFound
		}
		return department.Department{}, translateStoreErr(fmt.Errorf("failed to get department: %w", err))
	}

	return d, nil
}

// GetAll implements department.DepartmentRepository.
func (r *departmentRepository) GetAll(ctx context.Context) ([]department.Department, error) {
	query := `
		SELECT id, name, code, created_at, updated_at
		FROM departments
		ORDER BY name
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, translateStoreErr(fmt.Errorf("failed to query departments: %w", err))
	}
	defer rows.Close()

	var departments []department.Department
	for rows.Next() {
		var d department.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Code, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		departments = append(departments, d)
	}
	if err := rows.Err(); err != nil {
		return nil, translateStoreErr(fmt.Errorf("failed to read departments: %w", err))
	}

	return departments, nil
}
