package attendance

import (
	"context"
)

// AttendanceService defines business logic for the attendance lifecycle
type AttendanceService interface {
	// MarkEntry records an employee's entry punch for today
	MarkEntry(ctx context.Context, req MarkEntryRequest) (RecordResponse, error)

	// MarkExit records an employee's exit punch for today
	MarkExit(ctx context.Context, req MarkExitRequest) (RecordResponse, error)

	// GetRecord returns the stored record for a date, or a synthesized
	// absent record when none exists for a past date
	GetRecord(ctx context.Context, employeeID string, date string) (RecordResponse, error)

	// ListRecords retrieves an employee's records over a date range
	ListRecords(ctx context.Context, filter RecordFilter) (ListRecordsResponse, error)

	// Correct amends a past record with a mandatory audit reason
	Correct(ctx context.Context, req CorrectionRequest) (RecordResponse, error)

	// ListCorrections retrieves the append-only correction history of a record
	ListCorrections(ctx context.Context, recordID string) ([]AuditEntryResponse, error)
}
