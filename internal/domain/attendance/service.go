package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// ClockIn opens a record for the authenticated employee
	ClockIn(ctx context.Context, req ClockInRequest) (AttendanceResponse, error)

	// ClockOut closes an open record
	ClockOut(ctx context.Context, req ClockOutRequest) (AttendanceResponse, error)

	// DeviceScan resolves a device token to an employee and toggles: first
	// scan of the day clocks in, second clocks out, further scans fail
	DeviceScan(ctx context.Context, req DeviceScanRequest) (AttendanceResponse, error)

	// AdjustPaidTime sets a new paid-time value inside the edit window,
	// resets the record to PENDING and writes an adjustment row
	AdjustPaidTime(ctx context.Context, req AdjustPaidTimeRequest) (AttendanceResponse, error)

	// Approve marks a record APPROVED; approving twice is a no-op
	Approve(ctx context.Context, req ApproveAttendanceRequest) (AttendanceResponse, error)

	// RevokeApproval returns a record to PENDING; revoking twice is a no-op
	RevokeApproval(ctx context.Context, req RevokeApprovalRequest) (AttendanceResponse, error)

	// ManualEntry creates a record for another employee (elevated roles)
	ManualEntry(ctx context.Context, req ManualEntryRequest) (AttendanceResponse, error)

	// GetAttendance retrieves a single record by ID
	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)

	// ListAttendance retrieves records with filters; non-elevated callers are
	// restricted to their own records
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// ListAdjustments retrieves the adjustment trail for one record
	ListAdjustments(ctx context.Context, attendanceID string) ([]AdjustmentResponse, error)

	// MySummary aggregates the caller's records over a date window
	MySummary(ctx context.Context, query SummaryQuery) (SelfSummaryResponse, error)

	// TeamSummary aggregates per-employee totals; line managers see direct
	// reports, elevated roles see everyone, optionally filtered by office
	TeamSummary(ctx context.Context, query SummaryQuery) (TeamSummaryResponse, error)

	// RecomputeDailyOvertime refreshes cached overtime for every record on the
	// given date, touching only rows whose value changed. Returns the number
	// of rows updated.
	RecomputeDailyOvertime(ctx context.Context, date string) (int, error)
}
