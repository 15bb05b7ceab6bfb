package response

import (
	"errors"
	"net/http"

	"github.com/peoplehub/hrops-backend-go/internal/domain/attendance"
	"github.com/peoplehub/hrops-backend-go/internal/domain/department"
	"github.com/peoplehub/hrops-backend-go/internal/domain/employee"
	"github.com/peoplehub/hrops-backend-go/internal/domain/payroll"
	"github.com/peoplehub/hrops-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyMarked):
		Conflict(w, "Attendance already marked for this date")
	case errors.Is(err, attendance.ErrNoEntryRecorded):
		BadRequest(w, "No entry recorded for this date", nil)
	case errors.Is(err, attendance.ErrInvalidTimeOrder):
		BadRequest(w, "Exit time must be after entry time", nil)
	case errors.Is(err, attendance.ErrIncompleteTimes):
		BadRequest(w, "Entry and exit times do not match the requested status", nil)
	case errors.Is(err, attendance.ErrReasonTooShort):
		BadRequest(w, "Correction reason must be at least 10 characters", nil)
	case errors.Is(err, attendance.ErrOutsideCorrectionWindow):
		BadRequest(w, "Date is outside the correction window", nil)
	case errors.Is(err, attendance.ErrInactiveEmployee):
		Forbidden(w, "Employee is not active")
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrStoreUnavailable):
		ServiceUnavailable(w, "Store unavailable, try again later")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Department domain errors
	case errors.Is(err, department.ErrDepartmentNotFound):
		NotFound(w, "Department not found")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrInactiveEmployee):
		Forbidden(w, "Employee is not active; pass include_inactive=true for historical reports")
	case errors.Is(err, payroll.ErrInvalidSalary):
		InternalServerError(w, "Employee master data is malformed")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
