package http

import (
	"net/http"

	"github.com/peoplehub/hrops-backend-go/internal/domain/department"
	"github.com/peoplehub/hrops-backend-go/internal/domain/employee"
	"github.com/peoplehub/hrops-backend-go/internal/handler/http/response"
)

// MasterHandler exposes read-only master data listings. Employees and
// departments are managed by an upstream system; this service only reads
// them.
type MasterHandler interface {
	ListEmployees(w http.ResponseWriter, r *http.Request)
	ListDepartments(w http.ResponseWriter, r *http.Request)
}

type masterHandlerImpl struct {
	employeeRepo   employee.EmployeeRepository
	departmentRepo department.DepartmentRepository
}

func NewMasterHandler(employeeRepo employee.EmployeeRepository, departmentRepo department.DepartmentRepository) MasterHandler {
	return &masterHandlerImpl{
		employeeRepo:   employeeRepo,
		departmentRepo: departmentRepo,
	}
}

// ListEmployees implements MasterHandler.
func (h *masterHandlerImpl) ListEmployees(w http.ResponseWriter, r *http.Request) {
	includeInactive := r.URL.Query().Get("include_inactive") == "true"

	employees, err := h.employeeRepo.GetAll(r.Context(), includeInactive)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		out = append(out, employee.ToResponse(emp))
	}

	response.Success(w, out)
}

// ListDepartments implements MasterHandler.
func (h *masterHandlerImpl) ListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.departmentRepo.GetAll(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]department.DepartmentResponse, 0, len(departments))
	for _, d := range departments {
		out = append(out, department.DepartmentResponse{
			ID:   d.ID,
			Name: d.Name,
			Code: d.Code,
		})
	}

	response.Success(w, out)
}
