package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Create inserts a new record. A unique-constraint violation on
	// (employee_id, date) surfaces as ErrAlreadyClockedIn.
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByID retrieves attendance by ID
	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByEmployeeAndDate retrieves attendance for a specific employee on a
	// specific date; nil when no record exists
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	// Update persists changed fields of an existing record
	Update(ctx context.Context, attendance Attendance) error

	// List retrieves attendance records with filters and pagination
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)

	// ListByEmployeeAndRange retrieves an employee's records in an inclusive
	// date window, ordered by date
	ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]Attendance, error)

	// ListByDate retrieves all records for one date (daily recompute job)
	ListByDate(ctx context.Context, date time.Time) ([]Attendance, error)

	// UpdateOvertimeSeconds rewrites only the cached overtime figure
	UpdateOvertimeSeconds(ctx context.Context, id string, seconds int64) error

	// CreateAdjustment appends an immutable paid-time adjustment row
	CreateAdjustment(ctx context.Context, adjustment AttendanceAdjustment) (AttendanceAdjustment, error)

	// ListAdjustments retrieves the adjustment trail for one record, newest first
	ListAdjustments(ctx context.Context, attendanceID string) ([]AttendanceAdjustment, error)
}
