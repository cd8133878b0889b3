package http

import (
	"log/slog"
	"os"

	"github.com/chronohr/attendance-backend-go/internal/config"
	"github.com/chronohr/attendance-backend-go/internal/domain/device"
	"github.com/chronohr/attendance-backend-go/internal/handler/http/middleware"
	"github.com/chronohr/attendance-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type Handlers struct {
	Attendance AttendanceHandler
	Leave      LeaveHandler
	Correction CorrectionHandler
	Summary    SummaryHandler
	Shift      ShiftHandler
	Holiday    HolidayHandler
}

func NewRouter(cfg *config.Config, jwtService jwt.Service, devices device.Repository, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-engine"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Device-Code", "X-API-Key"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Device-facing: punch delivery authenticates with device credentials,
		// not bearer tokens.
		r.Group(func(r chi.Router) {
			r.Use(middleware.DeviceAuth(devices))
			r.Post("/punches", h.Attendance.IngestPunches)
		})

		// Management API
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", h.Attendance.List)
				r.Post("/reconcile", h.Attendance.Reconcile)
				r.Get("/{id}", h.Attendance.GetByID)
				r.Get("/{attendanceID}/corrections", h.Correction.ListByAttendance)
			})

			r.Route("/corrections", func(r chi.Router) {
				r.Post("/", h.Correction.Create)
				r.Get("/pending", h.Correction.ListPending)
				r.Get("/{id}", h.Correction.GetByID)
				r.Post("/{id}/approve", h.Correction.Approve)
				r.Post("/{id}/reject", h.Correction.Reject)
			})

			r.Route("/leave", func(r chi.Router) {
				r.Route("/requests", func(r chi.Router) {
					r.Post("/", h.Leave.CreateRequest)
					r.Get("/{id}", h.Leave.GetRequest)
					r.Post("/{id}/approve", h.Leave.Approve)
					r.Post("/{id}/reject", h.Leave.Reject)
					r.Post("/{id}/cancel", h.Leave.Cancel)
					r.Post("/{id}/withdraw", h.Leave.Withdraw)
				})
			})

			r.Route("/employees/{employeeID}", func(r chi.Router) {
				r.Get("/leave-requests", h.Leave.ListRequests)
				r.Get("/leave-balances", h.Leave.ListBalances)
				r.Get("/shift", h.Shift.Resolve)
				r.Route("/summaries", func(r chi.Router) {
					r.Get("/", h.Summary.GetByEmployeeMonth)
					r.Post("/generate", h.Summary.Generate)
				})
			})

			r.Route("/shifts", func(r chi.Router) {
				r.Get("/", h.Shift.List)
				r.Post("/assignments", h.Shift.Assign)
			})

			r.Route("/holidays", func(r chi.Router) {
				r.Get("/", h.Holiday.List)
				r.Post("/", h.Holiday.Create)
			})

			r.Post("/summaries/generate", h.Summary.GenerateAll)
		})
	})

	return r
}
