package postgresql

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/peoplehub/hrops-backend-go/internal/domain/attendance"
	"github.com/peoplehub/hrops-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// translateStoreErr maps transport-level failures to ErrStoreUnavailable
// so callers can distinguish them from business errors.
func translateStoreErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", attendance.ErrStoreUnavailable, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", attendance.ErrStoreUnavailable, err)
	}
	return err
}

const recordColumns = `
	id, employee_id, date, entry_time, exit_time, status,
	is_corrected, correction_reason, last_modified_by, overtime_hours,
	created_at, updated_at
`

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var r attendance.Record
	err := row.Scan(
		&r.ID, &r.EmployeeID, &r.Date, &r.EntryTime, &r.ExitTime, &r.Status,
		&r.IsCorrected, &r.CorrectionReason, &r.LastModifiedBy, &r.OvertimeHours,
		&r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.Record, error) {
	query := `
		SELECT` + recordColumns + `
		FROM attendance_records
		WHERE employee_id = $1
		  AND date = $2
		LIMIT 1
	`

	record, err := scanRecord(a.db.Pool.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, translateStoreErr(fmt.Errorf("failed to get record by employee and date: %w", err))
	}

	return record, nil
}

// GetByEmployeeAndRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Record, error) {
	query := `
		SELECT` + recordColumns + `
		FROM attendance_records
		WHERE employee_id = $1
		  AND date BETWEEN $2 AND $3
		ORDER BY date
	`

	rows, err := a.db.Pool.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, translateStoreErr(fmt.Errorf("failed to query records: %w", err))
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, translateStoreErr(fmt.Errorf("failed to read records: %w", err))
	}

	return records, nil
}

const upsertRecordQuery = `
	INSERT INTO attendance_records (
		id, employee_id, date, entry_time, exit_time, status,
		is_corrected, correction_reason, last_modified_by, overtime_hours
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
	)
	ON CONFLICT (employee_id, date) DO UPDATE SET
		entry_time        = EXCLUDED.entry_time,
		exit_time         = EXCLUDED.exit_time,
		status            = EXCLUDED.status,
		is_corrected      = EXCLUDED.is_corrected,
		correction_reason = EXCLUDED.correction_reason,
		last_modified_by  = EXCLUDED.last_modified_by,
		overtime_hours    = EXCLUDED.overtime_hours,
		updated_at        = now()
	RETURNING id, created_at, updated_at
`

// upsertRecord writes the record through q, which is either the pool or an
// open transaction.
func upsertRecord(ctx context.Context, q database.Querier, record attendance.Record) (attendance.Record, error) {
	err := q.QueryRow(ctx, upsertRecordQuery,
		record.ID,
		record.EmployeeID,
		record.Date,
		record.EntryTime,
		record.ExitTime,
		record.Status,
		record.IsCorrected,
		record.CorrectionReason,
		record.LastModifiedBy,
		record.OvertimeHours,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to upsert record: %w", err)
	}

	return record, nil
}

// Upsert implements attendance.AttendanceRepository. The unique key on
// (employee_id, date) serializes racing writes for the same day.
func (a *attendanceRepository) Upsert(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	record, err := upsertRecord(ctx, a.db.Pool, record)
	if err != nil {
		return attendance.Record{}, translateStoreErr(err)
	}

	return record, nil
}

// Correct implements attendance.AttendanceRepository. The record overwrite
// and the audit append commit together or not at all.
func (a *attendanceRepository) Correct(ctx context.Context, record attendance.Record, entry attendance.AuditEntry) (attendance.Record, error) {
	err := WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		var err error
		record, err = upsertRecord(ctx, tx, record)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO attendance_audit_log (
				id, record_id, corrected_by, reason,
				previous_entry, previous_exit, previous_status,
				new_entry, new_exit, new_status, corrected_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`,
			entry.ID,
			record.ID,
			entry.CorrectedBy,
			entry.Reason,
			entry.PreviousEntry,
			entry.PreviousExit,
			entry.PreviousStatus,
			entry.NewEntry,
			entry.NewExit,
			entry.NewStatus,
			entry.CorrectedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to append audit entry: %w", err)
		}

		return nil
	})
	if err != nil {
		return attendance.Record{}, translateStoreErr(err)
	}

	return record, nil
}

// ListAuditEntries implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListAuditEntries(ctx context.Context, recordID string) ([]attendance.AuditEntry, error) {
	query := `
		SELECT id, record_id, corrected_by, reason,
			   previous_entry, previous_exit, previous_status,
			   new_entry, new_exit, new_status, corrected_at
		FROM attendance_audit_log
		WHERE record_id = $1
		ORDER BY corrected_at
	`

	rows, err := a.db.Pool.Query(ctx, query, recordID)
	if err != nil {
		return nil, translateStoreErr(fmt.Errorf("failed to query audit entries: %w", err))
	}
	defer rows.Close()

	var entries []attendance.AuditEntry
	for rows.Next() {
		var e attendance.AuditEntry
		err := rows.Scan(
			&e.ID, &e.RecordID, &e.CorrectedBy, &e.Reason,
			&e.PreviousEntry, &e.PreviousExit, &e.PreviousStatus,
			&e.NewEntry, &e.NewExit, &e.NewStatus, &e.CorrectedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, translateStoreErr(fmt.Errorf("failed to read audit entries: %w", err))
	}

	return entries, nil
}
