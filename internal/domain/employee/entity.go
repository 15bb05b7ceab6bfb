package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID               string
	DepartmentID     string
	EmployeeCode     string
	FullName         string
	Email            *string
	MonthlySalary    decimal.Decimal
	OvertimeEligible bool
	Status           Status
	HireDate         time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

func (e Employee) IsActive() bool {
	return e.Status == StatusActive
}
