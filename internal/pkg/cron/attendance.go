package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/peoplehub/hrops-backend-go/internal/domain/attendance"
	"github.com/peoplehub/hrops-backend-go/internal/domain/employee"
	"github.com/peoplehub/hrops-backend-go/internal/pkg/clock"
)

// AttendanceJobs holds the daily attendance housekeeping jobs.
// Absence is inferred from missing rows, so nothing here writes records;
// the summary is purely observational.
type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	clock          clock.Clock
}

func NewAttendanceJobs(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	clk clock.Clock,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		clock:          clk,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("daily_attendance_summary", 1*time.Hour, j.DailyAttendanceSummary)
}

// DailyAttendanceSummary logs yesterday's attendance breakdown and calls
// out records still stuck in pending, which typically means a missed
// exit punch that needs a correction.
func (j *AttendanceJobs) DailyAttendanceSummary(ctx context.Context) error {
	// Only run at midnight (00:00-00:59 UTC)
	if j.clock.Now().UTC().Hour() != 0 {
		return nil
	}

	slog.Info("Cron: Starting daily attendance summary job")

	yesterday := clock.Midnight(j.clock.Now()).AddDate(0, 0, -1)

	employees, err := j.employeeRepo.GetAll(ctx, false)
	if err != nil {
		return fmt.Errorf("failed to list active employees: %w", err)
	}

	var present, halfDay, pending, absent int
	for _, emp := range employees {
		record, err := j.attendanceRepo.GetByEmployeeAndDate(ctx, emp.ID, yesterday)
		if err != nil {
			// Missing row reads as absent.
			absent++
			continue
		}
		switch record.Status {
		case attendance.StatusPresent:
			present++
		case attendance.StatusHalfDay:
			halfDay++
		case attendance.StatusPending:
			pending++
			slog.Warn("Cron: Attendance still pending, exit punch missing",
				"employee_id", emp.ID,
				"employee_code", emp.EmployeeCode,
				"date", yesterday.Format("2006-01-02"))
		default:
			absent++
		}
	}

	slog.Info("Cron: Daily attendance summary",
		"date", yesterday.Format("2006-01-02"),
		"present", present,
		"half_day", halfDay,
		"pending", pending,
		"absent", absent)

	return nil
}
