package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/corehr/hr-payroll-go/internal/domain/payroll"
)

type PayrollJobs struct {
	payrollService payroll.PayrollService
	loc            *time.Location
}

func NewPayrollJobs(payrollService payroll.PayrollService, loc *time.Location) *PayrollJobs {
	if loc == nil {
		loc = time.UTC
	}
	return &PayrollJobs{
		payrollService: payrollService,
		loc:            loc,
	}
}

func (j *PayrollJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("generate_monthly_payroll", 1*time.Hour, j.GenerateMonthlyPayroll)
}

// GenerateMonthlyPayroll opens the current month's cycle and refreshes its
// draft slips. Generation is idempotent, so re-running after a partial
// failure only touches slips whose inputs changed.
func (j *PayrollJobs) GenerateMonthlyPayroll(ctx context.Context) error {
	// Only run on the 1st at 02:00-02:59 local time
	now := time.Now().In(j.loc)
	if now.Day() != 1 || now.Hour() != 2 {
		return nil
	}

	slog.Info("Cron: Starting monthly payroll generation")

	cycle, err := j.payrollService.EnsureCurrentMonthCycle(ctx)
	if err != nil {
		return fmt.Errorf("failed to ensure current cycle: %w", err)
	}

	result, err := j.payrollService.GenerateForCycle(ctx, cycle.ID)
	if err != nil {
		return fmt.Errorf("failed to generate slips for cycle %s: %w", cycle.ID, err)
	}

	slog.Info("Cron: Monthly payroll generation complete",
		"cycle_id", cycle.ID,
		"created", result.Created,
		"updated", result.Updated)
	return nil
}
