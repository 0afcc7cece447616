package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/corehr/hr-payroll-go/internal/handler/http/middleware"
	"github.com/corehr/hr-payroll-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	JWTService jwt.Service,
	attendanceHandler AttendanceHandler,
	payrollHandler PayrollHandler,
	policyHandler PolicyHandler,
	efficiencyHandler EfficiencyHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hr-payroll-core"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
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

		// Badge terminals authenticate with their device token, not a JWT.
		r.Post("/attendances/scan", attendanceHandler.DeviceScan)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/attendances", func(r chi.Router) {
				r.Post("/", attendanceHandler.ClockIn)
				r.Get("/", attendanceHandler.List)
				r.Get("/my/summary", attendanceHandler.MySummary)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/manual", attendanceHandler.ManualEntry)
					r.Get("/team/summary", attendanceHandler.TeamSummary)
				})

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", attendanceHandler.Get)
					r.Post("/clock-out", attendanceHandler.ClockOut)
					r.Get("/adjustments", attendanceHandler.ListAdjustments)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireManager)
						r.Post("/adjust-paid-time", attendanceHandler.AdjustPaidTime)
						r.Post("/approve", attendanceHandler.Approve)
						r.Post("/revoke-approval", attendanceHandler.RevokeApproval)
					})
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Use(middleware.RequireElevated)

				r.Route("/cycles", func(r chi.Router) {
					r.Post("/", payrollHandler.CreateCycle)
					r.Get("/", payrollHandler.ListCycles)
					r.Post("/ensure-current", payrollHandler.EnsureCurrentCycle)
					r.Get("/{id}", payrollHandler.GetCycle)
					r.Post("/{id}/run", payrollHandler.RunCycle)
				})

				r.Route("/slips", func(r chi.Router) {
					r.Get("/", payrollHandler.ListSlips)
					r.Get("/{id}", payrollHandler.GetSlip)
					r.Post("/{id}/finalize", payrollHandler.FinalizeSlip)
				})

				r.Route("/structures", func(r chi.Router) {
					r.Put("/", payrollHandler.UpsertStructure)
					r.Get("/employee/{employeeID}", payrollHandler.GetStructureByEmployee)
				})

				r.Route("/components", func(r chi.Router) {
					r.Post("/", payrollHandler.CreateComponent)
					r.Get("/", payrollHandler.ListComponents)
				})
			})

			r.Route("/policies", func(r chi.Router) {
				r.Get("/", policyHandler.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireElevated)
					r.Put("/", policyHandler.Put)
					r.Put("/{section}", policyHandler.PutSection)
				})
			})

			r.Route("/efficiency", func(r chi.Router) {
				r.Route("/templates", func(r chi.Router) {
					r.Get("/", efficiencyHandler.ListTemplates)
					r.Get("/{id}", efficiencyHandler.GetTemplate)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireElevated)
						r.Post("/", efficiencyHandler.CreateTemplate)
					})
				})

				r.Route("/evaluations", func(r chi.Router) {
					r.Get("/", efficiencyHandler.ListEvaluations)
					r.Get("/{id}", efficiencyHandler.GetEvaluation)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireManager)
						r.Post("/submit", efficiencyHandler.SubmitEvaluation)
						r.Patch("/{id}/status", efficiencyHandler.UpdateEvaluationStatus)
					})
				})
			})
		})
	})

	// Liveness probe for container orchestration
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})

	return r
}
