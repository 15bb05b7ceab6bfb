package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (Record, error)
	GetByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]Record, error)
	Upsert(ctx context.Context, record Record) (Record, error)
	// Correct overwrites the record and appends the audit entry in a single
	// transaction. Partial writes must not be observable.
	Correct(ctx context.Context, record Record, entry AuditEntry) (Record, error)
	ListAuditEntries(ctx context.Context, recordID string) ([]AuditEntry, error)
}
