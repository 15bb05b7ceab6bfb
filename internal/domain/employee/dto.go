package employee

type EmployeeResponse struct {
	ID               string  `json:"id"`
	DepartmentID     string  `json:"department_id"`
	EmployeeCode     string  `json:"employee_code"`
	FullName         string  `json:"full_name"`
	Email            *string `json:"email,omitempty"`
	MonthlySalary    string  `json:"monthly_salary"`
	OvertimeEligible bool    `json:"overtime_eligible"`
	Status           string  `json:"status"`
	HireDate         string  `json:"hire_date"`
}

// ToResponse maps an entity to its API shape. Salary renders as a fixed
// two-place string, same as the payroll responses.
func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:               e.ID,
		DepartmentID:     e.DepartmentID,
		EmployeeCode:     e.EmployeeCode,
		FullName:         e.FullName,
		Email:            e.Email,
		MonthlySalary:    e.MonthlySalary.StringFixed(2),
		OvertimeEligible: e.OvertimeEligible,
		Status:           string(e.Status),
		HireDate:         e.HireDate.UTC().Format("2006-01-02"),
	}
}
