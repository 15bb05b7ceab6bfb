package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/peoplehub/hrops-backend-go/internal/domain/payroll"
	"github.com/peoplehub/hrops-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	GetEmployeeSalary(w http.ResponseWriter, r *http.Request)
	GetDepartmentReport(w http.ResponseWriter, r *http.Request)
	GetSystemReport(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{
		payrollService: payrollService,
	}
}

// periodFromQuery reads year/month/include_inactive query parameters.
func periodFromQuery(r *http.Request) (payroll.PeriodRequest, map[string]string) {
	q := r.URL.Query()

	year, err := strconv.Atoi(q.Get("year"))
	if err != nil {
		return payroll.PeriodRequest{}, map[string]string{"year": "year must be a number"}
	}
	month, err := strconv.Atoi(q.Get("month"))
	if err != nil {
		return payroll.PeriodRequest{}, map[string]string{"month": "month must be a number"}
	}

	return payroll.PeriodRequest{
		Year:            year,
		Month:           month,
		IncludeInactive: q.Get("include_inactive") == "true",
	}, nil
}

// GetEmployeeSalary implements PayrollHandler.
func (h *payrollHandlerImpl) GetEmployeeSalary(w http.ResponseWriter, r *http.Request) {
	req, details := periodFromQuery(r)
	if details != nil {
		response.BadRequest(w, "Invalid period", details)
		return
	}

	result, err := h.payrollService.CalculateSalary(r.Context(), chi.URLParam(r, "employeeID"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetDepartmentReport implements PayrollHandler.
func (h *payrollHandlerImpl) GetDepartmentReport(w http.ResponseWriter, r *http.Request) {
	req, details := periodFromQuery(r)
	if details != nil {
		response.BadRequest(w, "Invalid period", details)
		return
	}

	result, err := h.payrollService.GetDepartmentReport(r.Context(), chi.URLParam(r, "departmentID"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetSystemReport implements PayrollHandler.
func (h *payrollHandlerImpl) GetSystemReport(w http.ResponseWriter, r *http.Request) {
	req, details := periodFromQuery(r)
	if details != nil {
		response.BadRequest(w, "Invalid period", details)
		return
	}

	result, err := h.payrollService.GetSystemReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
