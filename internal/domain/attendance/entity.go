package attendance

import (
	"time"
)

// Attendance statuses
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
)

type Attendance struct {
	ID                string
	EmployeeID        string
	Date              time.Time
	ClockIn           *time.Time
	ClockInLocation   *string
	ClockOut          *time.Time
	ClockOutLocation  *string
	WorkScheduleHours int
	PaidTime          time.Duration
	OvertimeSeconds   int64
	Notes             *string
	Status            string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// DTO
	EmployeeName *string
	Office       *string
}

// ScheduledTime is the planned working duration for the day.
func (a Attendance) ScheduledTime() time.Duration {
	return time.Duration(a.WorkScheduleHours) * time.Hour
}

// LoggedTime is the raw span between clock-in and clock-out, nil while either
// stamp is missing.
func (a Attendance) LoggedTime() *time.Duration {
	if a.ClockIn == nil || a.ClockOut == nil {
		return nil
	}
	d := a.ClockOut.Sub(*a.ClockIn)
	return &d
}

// Overtime is paid time minus scheduled time. Negative values mean the
// employee worked less than scheduled.
func (a Attendance) Overtime() time.Duration {
	return a.PaidTime - a.ScheduledTime()
}

// Deficit is scheduled time minus paid time, the negation of Overtime.
func (a Attendance) Deficit() time.Duration {
	return a.ScheduledTime() - a.PaidTime
}

// ComputedOvertimeSeconds is the freshly derived value for the cached
// overtime_seconds column.
func (a Attendance) ComputedOvertimeSeconds() int64 {
	return int64(a.Overtime() / time.Second)
}

// AttendanceAdjustment is an immutable record of a paid-time correction.
type AttendanceAdjustment struct {
	ID               string
	AttendanceID     string
	PerformedBy      *string
	PreviousPaidTime *time.Duration
	NewPaidTime      time.Duration
	Notes            *string
	CreatedAt        time.Time
}

// SummaryTotals aggregates a set of attendance records for one employee.
type SummaryTotals struct {
	Days             int
	TotalLogged      time.Duration
	TotalPaid        time.Duration
	TotalScheduled   time.Duration
	TotalOvertime    time.Duration
	TotalDeficit     time.Duration
	PendingApprovals int
}

// Summarize folds records into per-employee totals. Open records contribute
// zero logged time but still count toward scheduled hours, so missing
// clock-outs show up as deficit.
func Summarize(records []Attendance) SummaryTotals {
	var s SummaryTotals
	for _, rec := range records {
		s.Days++
		s.TotalScheduled += rec.ScheduledTime()
		if lt := rec.LoggedTime(); lt != nil {
			s.TotalLogged += *lt
		}
		s.TotalPaid += rec.PaidTime
		if rec.Status == StatusPending {
			s.PendingApprovals++
		}
	}
	s.TotalOvertime = s.TotalPaid - s.TotalScheduled
	s.TotalDeficit = s.TotalScheduled - s.TotalPaid
	return s
}
