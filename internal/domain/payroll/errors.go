package payroll

import "errors"

var (
	ErrInactiveEmployee = errors.New("employee is not active")
	ErrInvalidSalary    = errors.New("employee monthly salary must be positive")
)
