package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/corehr/hr-payroll-go/internal/config"
	appHTTP "github.com/corehr/hr-payroll-go/internal/handler/http"
	"github.com/corehr/hr-payroll-go/internal/pkg/cron"
	"github.com/corehr/hr-payroll-go/internal/pkg/database"
	"github.com/corehr/hr-payroll-go/internal/pkg/jwt"
	"github.com/corehr/hr-payroll-go/internal/repository/postgresql"
	attendanceService "github.com/corehr/hr-payroll-go/internal/service/attendance"
	auditService "github.com/corehr/hr-payroll-go/internal/service/audit"
	efficiencyService "github.com/corehr/hr-payroll-go/internal/service/efficiency"
	payrollService "github.com/corehr/hr-payroll-go/internal/service/payroll"
	policyService "github.com/corehr/hr-payroll-go/internal/service/policy"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		fmt.Println("Invalid APP_TIMEZONE:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	txManager := postgresql.NewTxManager(db)

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	policyRepo := postgresql.NewPolicyRepository(db)
	auditRepo := postgresql.NewAuditRepository(db)
	efficiencyRepo := postgresql.NewEfficiencyRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	auditSvc := auditService.NewAuditService(auditRepo)
	policySvc := policyService.NewPolicyService(policyRepo, auditSvc)
	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceRepo,
		employeeRepo,
		policySvc,
		auditSvc,
		txManager,
		loc,
	)
	payrollSvc := payrollService.NewPayrollService(
		payrollRepo,
		employeeRepo,
		policySvc,
		auditSvc,
		txManager,
		loc,
	)
	efficiencySvc := efficiencyService.NewEfficiencyService(
		efficiencyRepo,
		employeeRepo,
		auditSvc,
	)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	policyHandler := appHTTP.NewPolicyHandler(policySvc)
	efficiencyHandler := appHTTP.NewEfficiencyHandler(efficiencySvc)

	router := appHTTP.NewRouter(
		JWTService,
		attendanceHandler,
		payrollHandler,
		policyHandler,
		efficiencyHandler,
	)

	if cfg.Cron.Enabled {
		scheduler := cron.NewScheduler()
		cron.NewAttendanceJobs(attendanceSvc, loc).RegisterJobs(scheduler)
		cron.NewPayrollJobs(payrollSvc, loc).RegisterJobs(scheduler)
		scheduler.Start()
		defer scheduler.Stop()
	}

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("Server starting", "port", cfg.App.Port, "env", cfg.App.Env)
	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}
}
