package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type Record struct {
	ID               string
	EmployeeID       string
	Date             time.Time
	EntryTime        *time.Time
	ExitTime         *time.Time
	Status           Status
	IsCorrected      bool
	CorrectionReason *string
	LastModifiedBy   string
	OvertimeHours    *decimal.Decimal
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type Status string

const (
	StatusAbsent  Status = "absent"
	StatusPending Status = "pending"
	StatusPresent Status = "present"
	StatusHalfDay Status = "half_day"
)

// DeriveStatus computes the status a record must carry given which times
// are set. A record with neither time set never reaches storage; absent
// days are inferred, not stored.
func DeriveStatus(entry, exit *time.Time) Status {
	switch {
	case entry != nil && exit != nil:
		return StatusPresent
	case entry != nil:
		return StatusPending
	case exit != nil:
		return StatusHalfDay
	default:
		return StatusAbsent
	}
}

// OvertimeHoursOrZero returns the recorded overtime hours, treating an
// unset field as zero.
func (r Record) OvertimeHoursOrZero() decimal.Decimal {
	if r.OvertimeHours == nil {
		return decimal.Zero
	}
	return *r.OvertimeHours
}

// AuditEntry is one immutable line of a record's correction history.
type AuditEntry struct {
	ID             string
	RecordID       string
	CorrectedBy    string
	Reason         string
	PreviousEntry  *time.Time
	PreviousExit   *time.Time
	PreviousStatus Status
	NewEntry       *time.Time
	NewExit        *time.Time
	NewStatus      Status
	CorrectedAt    time.Time
}
