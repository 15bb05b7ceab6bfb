package main

import (
	"fmt"
	"net/http"

	"github.com/peoplehub/hrops-backend-go/internal/config"
	appHTTP "github.com/peoplehub/hrops-backend-go/internal/handler/http"
	"github.com/peoplehub/hrops-backend-go/internal/pkg/clock"
	"github.com/peoplehub/hrops-backend-go/internal/pkg/cron"
	"github.com/peoplehub/hrops-backend-go/internal/pkg/database"
	"github.com/peoplehub/hrops-backend-go/internal/pkg/jwt"
	"github.com/peoplehub/hrops-backend-go/internal/repository/postgresql"
	attendanceService "github.com/peoplehub/hrops-backend-go/internal/service/attendance"
	payrollService "github.com/peoplehub/hrops-backend-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)

	clk := clock.System()
	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceRepo,
		employeeRepo,
		clk,
		cfg.Attendance.CorrectionWindowDays,
	)
	payrollSvc := payrollService.NewPayrollService(
		attendanceRepo,
		employeeRepo,
		departmentRepo,
		clk,
		cfg.Payroll,
	)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	masterHandler := appHTTP.NewMasterHandler(employeeRepo, departmentRepo)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceRepo, employeeRepo, clk).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(jwtService, attendanceHandler, payrollHandler, masterHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
