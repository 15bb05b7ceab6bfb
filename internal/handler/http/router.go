package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/peoplehub/hrops-backend-go/internal/handler/http/middleware"
	"github.com/peoplehub/hrops-backend-go/internal/pkg/jwt"
)

func NewRouter(jwtService jwt.Service, attendanceHandler AttendanceHandler, payrollHandler PayrollHandler, masterHandler MasterHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hrops-backend"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/entry", attendanceHandler.MarkEntry)
				r.Post("/exit", attendanceHandler.MarkExit)
				r.Post("/corrections", attendanceHandler.Correct)
				r.Get("/records/{recordID}/corrections", attendanceHandler.ListCorrections)
				r.Get("/employees/{employeeID}/records", attendanceHandler.ListRecords)
				r.Get("/employees/{employeeID}/records/{date}", attendanceHandler.GetRecord)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/employees/{employeeID}", payrollHandler.GetEmployeeSalary)
				r.Get("/departments/{departmentID}", payrollHandler.GetDepartmentReport)
				r.Get("/system", payrollHandler.GetSystemReport)
			})

			r.Get("/employees", masterHandler.ListEmployees)
			r.Get("/departments", masterHandler.ListDepartments)
		})
	})

	return r
}
