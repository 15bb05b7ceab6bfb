package attendance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/peoplehub/hrops-backend-go/internal/domain/attendance"
	"github.com/peoplehub/hrops-backend-go/internal/domain/employee"
	"github.com/peoplehub/hrops-backend-go/internal/pkg/clock"
	"github.com/peoplehub/hrops-backend-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	clock                clock.Clock
	correctionWindowDays int
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	clk clock.Clock,
	correctionWindowDays int,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		clock:                clk,
		correctionWindowDays: correctionWindowDays,
	}
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.UTC().Format(time.RFC3339)
	return &format
}

func decimalPtrToString(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

// resolveTimestamp parses the optional punch timestamp, defaulting to now.
func (a *AttendanceServiceImpl) resolveTimestamp(raw *string) (time.Time, error) {
	if raw == nil || *raw == "" {
		return a.clock.Now().UTC(), nil
	}
	ts, err := time.Parse(time.RFC3339, *raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp: %w", err)
	}
	return ts.UTC(), nil
}

// activeEmployee loads the employee and rejects write-path operations
// for inactive ones.
func (a *AttendanceServiceImpl) activeEmployee(ctx context.Context, id string) (employee.Employee, error) {
	emp, err := a.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return employee.Employee{}, err
	}
	if !emp.IsActive() {
		return employee.Employee{}, attendance.ErrInactiveEmployee
	}
	return emp, nil
}

// MarkEntry implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MarkEntry(ctx context.Context, req attendance.MarkEntryRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	if _, err := a.activeEmployee(ctx, req.EmployeeID); err != nil {
		return attendance.RecordResponse{}, err
	}

	ts, err := a.resolveTimestamp(req.Timestamp)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	today := clock.Midnight(a.clock.Now())

	existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, req.EmployeeID, today)
	if err != nil && !errors.Is(err, attendance.ErrRecordNotFound) {
		return attendance.RecordResponse{}, fmt.Errorf("failed to load today's record: %w", err)
	}
	if err == nil && existing.EntryTime != nil {
		return attendance.RecordResponse{}, attendance.ErrAlreadyMarked
	}

	record := attendance.Record{
		ID:             uuid.NewString(),
		EmployeeID:     req.EmployeeID,
		Date:           today,
		EntryTime:      &ts,
		Status:         attendance.StatusPending,
		LastModifiedBy: req.EmployeeID,
	}
	// A half-day record corrected to exit-only keeps its id when the
	// entry punch arrives later the same day.
	if existing.ID != "" {
		record.ID = existing.ID
		record.ExitTime = existing.ExitTime
		record.Status = attendance.DeriveStatus(record.EntryTime, record.ExitTime)
	}

	saved, err := a.AttendanceRepository.Upsert(ctx, record)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to store entry punch: %w", err)
	}

	return toRecordResponse(saved), nil
}

// MarkExit implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MarkExit(ctx context.Context, req attendance.MarkExitRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	if _, err := a.activeEmployee(ctx, req.EmployeeID); err != nil {
		return attendance.RecordResponse{}, err
	}

	ts, err := a.resolveTimestamp(req.Timestamp)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	today := clock.Midnight(a.clock.Now())

	record, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, req.EmployeeID, today)
	if err != nil {
		if errors.Is(err, attendance.ErrRecordNotFound) {
			return attendance.RecordResponse{}, attendance.ErrNoEntryRecorded
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to load today's record: %w", err)
	}
	if record.EntryTime == nil || record.Status != attendance.StatusPending {
		return attendance.RecordResponse{}, attendance.ErrNoEntryRecorded
	}
	if ts.Before(*record.EntryTime) {
		return attendance.RecordResponse{}, attendance.ErrInvalidTimeOrder
	}

	record.ExitTime = &ts
	record.Status = attendance.StatusPresent
	record.LastModifiedBy = req.EmployeeID

	saved, err := a.AttendanceRepository.Upsert(ctx, record)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to store exit punch: %w", err)
	}

	return toRecordResponse(saved), nil
}

// GetRecord implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetRecord(ctx context.Context, employeeID string, date string) (attendance.RecordResponse, error) {
	day, valid := validator.IsValidDate(date)
	if !valid {
		return attendance.RecordResponse{}, validator.ValidationErrors{{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		}}
	}
	day = clock.Midnight(day)

	record, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, day)
	if err == nil {
		return toRecordResponse(record), nil
	}
	if !errors.Is(err, attendance.ErrRecordNotFound) {
		return attendance.RecordResponse{}, fmt.Errorf("failed to load record: %w", err)
	}

	// No stored record. Past days read as absent; today and future days
	// have no determinable status yet.
	today := clock.Midnight(a.clock.Now())
	if !day.Before(today) {
		return attendance.RecordResponse{}, attendance.ErrRecordNotFound
	}

	return attendance.RecordResponse{
		EmployeeID: employeeID,
		Date:       day.Format("2006-01-02"),
		Status:     string(attendance.StatusAbsent),
	}, nil
}

// ListRecords implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListRecords(ctx context.Context, filter attendance.RecordFilter) (attendance.ListRecordsResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListRecordsResponse{}, err
	}

	start, _ := time.Parse("2006-01-02", filter.StartDate)
	end, _ := time.Parse("2006-01-02", filter.EndDate)

	records, err := a.AttendanceRepository.GetByEmployeeAndRange(ctx, filter.EmployeeID, clock.Midnight(start), clock.Midnight(end))
	if err != nil {
		return attendance.ListRecordsResponse{}, fmt.Errorf("failed to query records: %w", err)
	}

	resp := attendance.ListRecordsResponse{
		EmployeeID: filter.EmployeeID,
		StartDate:  filter.StartDate,
		EndDate:    filter.EndDate,
		Records:    make([]attendance.RecordResponse, 0, len(records)),
	}
	for _, record := range records {
		if filter.Status != nil && string(record.Status) != *filter.Status {
			continue
		}
		resp.Records = append(resp.Records, toRecordResponse(record))
	}

	return resp, nil
}

// Correct implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Correct(ctx context.Context, req attendance.CorrectionRequest) (attendance.RecordResponse, error) {
	// Checked first: a short reason wins over any other argument problem.
	if validator.TrimmedLen(req.Reason) < attendance.MinReasonLength {
		return attendance.RecordResponse{}, attendance.ErrReasonTooShort
	}
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	if _, err := a.activeEmployee(ctx, req.EmployeeID); err != nil {
		return attendance.RecordResponse{}, err
	}

	day, _ := time.Parse("2006-01-02", req.Date)
	day = clock.Midnight(day)

	// Window is [today - N days, yesterday]. Today's record goes through
	// the punch flow, never through a correction.
	today := clock.Midnight(a.clock.Now())
	oldest := today.AddDate(0, 0, -a.correctionWindowDays)
	newest := today.AddDate(0, 0, -1)
	if day.Before(oldest) || day.After(newest) {
		return attendance.RecordResponse{}, attendance.ErrOutsideCorrectionWindow
	}

	newStatus := attendance.Status(strings.ToLower(req.Status))
	var newEntry, newExit *time.Time
	if req.EntryTime != nil && *req.EntryTime != "" {
		ts, err := time.Parse(time.RFC3339, *req.EntryTime)
		if err != nil {
			return attendance.RecordResponse{}, fmt.Errorf("parse entry_time: %w", err)
		}
		ts = ts.UTC()
		newEntry = &ts
	}
	if req.ExitTime != nil && *req.ExitTime != "" {
		ts, err := time.Parse(time.RFC3339, *req.ExitTime)
		if err != nil {
			return attendance.RecordResponse{}, fmt.Errorf("parse exit_time: %w", err)
		}
		ts = ts.UTC()
		newExit = &ts
	}

	switch newStatus {
	case attendance.StatusPresent:
		if newEntry == nil || newExit == nil {
			return attendance.RecordResponse{}, attendance.ErrIncompleteTimes
		}
	case attendance.StatusHalfDay:
		if newEntry == nil && newExit == nil {
			return attendance.RecordResponse{}, attendance.ErrIncompleteTimes
		}
	case attendance.StatusAbsent:
		if newEntry != nil || newExit != nil {
			return attendance.RecordResponse{}, attendance.ErrIncompleteTimes
		}
	}
	if newEntry != nil && newExit != nil && newExit.Before(*newEntry) {
		return attendance.RecordResponse{}, attendance.ErrInvalidTimeOrder
	}

	var overtime *decimal.Decimal
	if req.OvertimeHours != nil && *req.OvertimeHours != "" {
		hours, err := decimal.NewFromString(*req.OvertimeHours)
		if err != nil {
			return attendance.RecordResponse{}, fmt.Errorf("parse overtime_hours: %w", err)
		}
		overtime = &hours
	}

	// Absent days usually have no stored row; correcting one materializes
	// the record.
	existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, req.EmployeeID, day)
	if err != nil {
		if !errors.Is(err, attendance.ErrRecordNotFound) {
			return attendance.RecordResponse{}, fmt.Errorf("failed to load record: %w", err)
		}
		existing = attendance.Record{
			ID:         uuid.NewString(),
			EmployeeID: req.EmployeeID,
			Date:       day,
			Status:     attendance.StatusAbsent,
		}
	}

	reason := req.Reason
	corrected := existing
	corrected.Status = newStatus
	corrected.EntryTime = newEntry
	corrected.ExitTime = newExit
	corrected.IsCorrected = true
	corrected.CorrectionReason = &reason
	corrected.LastModifiedBy = req.CorrectedBy
	if overtime != nil {
		corrected.OvertimeHours = overtime
	}

	entry := attendance.AuditEntry{
		ID:             uuid.NewString(),
		RecordID:       corrected.ID,
		CorrectedBy:    req.CorrectedBy,
		Reason:         reason,
		PreviousEntry:  existing.EntryTime,
		PreviousExit:   existing.ExitTime,
		PreviousStatus: existing.Status,
		NewEntry:       newEntry,
		NewExit:        newExit,
		NewStatus:      newStatus,
		CorrectedAt:    a.clock.Now().UTC(),
	}

	saved, err := a.AttendanceRepository.Correct(ctx, corrected, entry)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to apply correction: %w", err)
	}

	return toRecordResponse(saved), nil
}

// ListCorrections implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListCorrections(ctx context.Context, recordID string) ([]attendance.AuditEntryResponse, error) {
	entries, err := a.AttendanceRepository.ListAuditEntries(ctx, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}

	resp := make([]attendance.AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, attendance.AuditEntryResponse{
			ID:             e.ID,
			RecordID:       e.RecordID,
			CorrectedBy:    e.CorrectedBy,
			Reason:         e.Reason,
			PreviousStatus: string(e.PreviousStatus),
			PreviousEntry:  timePtrToString(e.PreviousEntry),
			PreviousExit:   timePtrToString(e.PreviousExit),
			NewStatus:      string(e.NewStatus),
			NewEntry:       timePtrToString(e.NewEntry),
			NewExit:        timePtrToString(e.NewExit),
			CorrectedAt:    e.CorrectedAt.UTC().Format(time.RFC3339),
		})
	}

	return resp, nil
}

func toRecordResponse(r attendance.Record) attendance.RecordResponse {
	return attendance.RecordResponse{
		ID:               r.ID,
		EmployeeID:       r.EmployeeID,
		Date:             r.Date.Format("2006-01-02"),
		Status:           string(r.Status),
		EntryTime:        timePtrToString(r.EntryTime),
		ExitTime:         timePtrToString(r.ExitTime),
		IsCorrected:      r.IsCorrected,
		CorrectionReason: r.CorrectionReason,
		LastModifiedBy:   r.LastModifiedBy,
		OvertimeHours:    decimalPtrToString(r.OvertimeHours),
		CreatedAt:        r.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:        r.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
