package attendance

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/peoplehub/hrops-backend-go/internal/pkg/validator"
)

// ========================================
// PUNCH DTOs
// ========================================

type MarkEntryRequest struct {
	EmployeeID string  `json:"employee_id"`
	Timestamp  *string `json:"timestamp,omitempty"` // RFC3339; defaults to now
}

func (r *MarkEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if r.Timestamp != nil && *r.Timestamp != "" {
		if _, valid := validator.IsValidDateTime(*r.Timestamp); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "timestamp",
				Message: "timestamp must be a valid RFC3339 datetime",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MarkExitRequest struct {
	EmployeeID string  `json:"employee_id"`
	Timestamp  *string `json:"timestamp,omitempty"` // RFC3339; defaults to now
}

func (r *MarkExitRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if r.Timestamp != nil && *r.Timestamp != "" {
		if _, valid := validator.IsValidDateTime(*r.Timestamp); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "timestamp",
				Message: "timestamp must be a valid RFC3339 datetime",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ========================================
// CORRECTION DTOs
// ========================================

// MinReasonLength is the minimum trimmed length of a correction reason.
const MinReasonLength = 10

type CorrectionRequest struct {
	EmployeeID    string  `json:"employee_id"`
	Date          string  `json:"date"` // YYYY-MM-DD
	Status        string  `json:"status"`
	EntryTime     *string `json:"entry_time,omitempty"` // RFC3339
	ExitTime      *string `json:"exit_time,omitempty"`  // RFC3339
	OvertimeHours *string `json:"overtime_hours,omitempty"`
	Reason        string  `json:"reason"`
	CorrectedBy   string  `json:"-"` // actor id from the auth token
}

func (r *CorrectionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	// A corrected record must land on a terminal status. "pending" is a
	// transient punch state and cannot be assigned by hand.
	validStatuses := []string{string(StatusPresent), string(StatusAbsent), string(StatusHalfDay)}
	if !validator.IsInSlice(strings.ToLower(r.Status), validStatuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: present, absent, half_day",
		})
	}

	if r.EntryTime != nil && *r.EntryTime != "" {
		if _, valid := validator.IsValidDateTime(*r.EntryTime); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "entry_time",
				Message: "entry_time must be a valid RFC3339 datetime",
			})
		}
	}

	if r.ExitTime != nil && *r.ExitTime != "" {
		if _, valid := validator.IsValidDateTime(*r.ExitTime); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "exit_time",
				Message: "exit_time must be a valid RFC3339 datetime",
			})
		}
	}

	if r.OvertimeHours != nil && *r.OvertimeHours != "" {
		hours, err := decimal.NewFromString(*r.OvertimeHours)
		if err != nil || hours.IsNegative() {
			errs = append(errs, validator.ValidationError{
				Field:   "overtime_hours",
				Message: "overtime_hours must be a non-negative decimal",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ========================================
// QUERY DTOs
// ========================================

type RecordFilter struct {
	EmployeeID string  `json:"employee_id"`
	StartDate  string  `json:"start_date"` // YYYY-MM-DD
	EndDate    string  `json:"end_date"`   // YYYY-MM-DD
	Status     *string `json:"status,omitempty"`
}

func (f *RecordFilter) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(f.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	start, startValid := validator.IsValidDate(f.StartDate)
	if !startValid {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	end, endValid := validator.IsValidDate(f.EndDate)
	if !endValid {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if startValid && endValid && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if f.Status != nil {
		validStatuses := []string{
			string(StatusAbsent), string(StatusPending),
			string(StatusPresent), string(StatusHalfDay),
		}
		if !validator.IsInSlice(*f.Status, validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: absent, pending, present, half_day",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ========================================
// RESPONSES
// ========================================

type RecordResponse struct {
	ID               string  `json:"id,omitempty"`
	EmployeeID       string  `json:"employee_id"`
	Date             string  `json:"date"`
	Status           string  `json:"status"`
	EntryTime        *string `json:"entry_time,omitempty"`
	ExitTime         *string `json:"exit_time,omitempty"`
	IsCorrected      bool    `json:"is_corrected"`
	CorrectionReason *string `json:"correction_reason,omitempty"`
	LastModifiedBy   string  `json:"last_modified_by,omitempty"`
	OvertimeHours    *string `json:"overtime_hours,omitempty"`
	CreatedAt        string  `json:"created_at,omitempty"`
	UpdatedAt        string  `json:"updated_at,omitempty"`
}

type ListRecordsResponse struct {
	EmployeeID string           `json:"employee_id"`
	StartDate  string           `json:"start_date"`
	EndDate    string           `json:"end_date"`
	Records    []RecordResponse `json:"records"`
}

type AuditEntryResponse struct {
	ID             string  `json:"id"`
	RecordID       string  `json:"record_id"`
	CorrectedBy    string  `json:"corrected_by"`
	Reason         string  `json:"reason"`
	PreviousStatus string  `json:"previous_status"`
	PreviousEntry  *string `json:"previous_entry,omitempty"`
	PreviousExit   *string `json:"previous_exit,omitempty"`
	NewStatus      string  `json:"new_status"`
	NewEntry       *string `json:"new_entry,omitempty"`
	NewExit        *string `json:"new_exit,omitempty"`
	CorrectedAt    string  `json:"corrected_at"`
}
