package attendance

import "errors"

// Attendance domain errors
var (
	// Clock-in / clock-out errors
	ErrAlreadyClockedIn  = errors.New("attendance already exists for this date")
	ErrNotClockedIn      = errors.New("no open attendance record for this date")
	ErrAlreadyClockedOut = errors.New("attendance is already completed")
	ErrClockOutBeforeIn  = errors.New("clock-out cannot be before clock-in")
	ErrUnknownDevice     = errors.New("device token does not match any employee")

	// Adjustment errors
	ErrEditWindowExceeded = errors.New("attendance record is outside the edit window")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrUnauthorized       = errors.New("unauthorized to access this attendance record")
)
