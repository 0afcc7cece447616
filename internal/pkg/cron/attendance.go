package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/corehr/hr-payroll-go/internal/domain/attendance"
)

type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
	loc               *time.Location
}

func NewAttendanceJobs(attendanceService attendance.AttendanceService, loc *time.Location) *AttendanceJobs {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceJobs{
		attendanceService: attendanceService,
		loc:               loc,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("recompute_daily_overtime", 1*time.Hour, j.RecomputeDailyOvertime)
}

// RecomputeDailyOvertime refreshes cached overtime for yesterday's records so
// late clock-outs and policy edits are picked up before payroll reads them.
func (j *AttendanceJobs) RecomputeDailyOvertime(ctx context.Context) error {
	// Only run at 01:00-01:59 local time
	if time.Now().In(j.loc).Hour() != 1 {
		return nil
	}

	yesterday := time.Now().In(j.loc).AddDate(0, 0, -1).Format("2006-01-02")
	slog.Info("Cron: Starting daily overtime recompute", "date", yesterday)

	updated, err := j.attendanceService.RecomputeDailyOvertime(ctx, yesterday)
	if err != nil {
		return err
	}

	slog.Info("Cron: Daily overtime recompute complete", "date", yesterday, "updated", updated)
	return nil
}
