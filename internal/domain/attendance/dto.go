package attendance

import (
	"strings"

	"github.com/corehr/hr-payroll-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type ClockInRequest struct {
	EmployeeID string  `json:"-"`
	Date       *string `json:"date,omitempty"`     // YYYY-MM-DD, defaults to today
	ClockIn    *string `json:"clock_in,omitempty"` // RFC3339, defaults to now
	Timestamp  *string `json:"timestamp,omitempty"`
	Location   string  `json:"location"`
	Notes      *string `json:"notes,omitempty"`
}

func (r *ClockInRequest) Validate() error {
	var errs validator.ValidationErrors

	// Older clients send the stamp as `timestamp`.
	if r.ClockIn == nil && r.Timestamp != nil {
		r.ClockIn = r.Timestamp
	}

	if validator.IsEmpty(r.Location) {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: "location is required",
		})
	}

	if r.Date != nil && *r.Date != "" {
		if _, valid := validator.IsValidDate(*r.Date); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if r.ClockIn != nil && *r.ClockIn != "" {
		if _, valid := validator.IsValidDateTime(*r.ClockIn); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_in",
				Message: "clock_in must be an RFC3339 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ClockOutRequest struct {
	ID        string  `json:"-"`
	Location  *string `json:"location,omitempty"`
	ClockOut  string  `json:"clock_out"` // RFC3339
	Timestamp *string `json:"timestamp,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

func (r *ClockOutRequest) Validate() error {
	var errs validator.ValidationErrors

	// Older clients send the stamp as `timestamp`.
	if r.ClockOut == "" && r.Timestamp != nil {
		r.ClockOut = *r.Timestamp
	}

	if validator.IsEmpty(r.ClockOut) {
		errs = append(errs, validator.ValidationError{
			Field:   "clock_out",
			Message: "clock_out is required",
		})
	} else if _, valid := validator.IsValidDateTime(r.ClockOut); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "clock_out",
			Message: "clock_out must be an RFC3339 timestamp",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// DeviceScanRequest toggles attendance from a fingerprint/badge terminal.
type DeviceScanRequest struct {
	DeviceToken string  `json:"device_token"`
	Location    string  `json:"location,omitempty"`
	Timestamp   *string `json:"timestamp,omitempty"`
}

func (r *DeviceScanRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.DeviceToken) {
		errs = append(errs, validator.ValidationError{
			Field:   "device_token",
			Message: "device_token is required",
		})
	}

	if r.Timestamp != nil && *r.Timestamp != "" {
		if _, valid := validator.IsValidDateTime(*r.Timestamp); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "timestamp",
				Message: "timestamp must be an RFC3339 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// AdjustPaidTimeRequest sets a new paid-time value on a record. The value may
// be an ISO-8601 duration ("PT8H30M") or a clock string ("08:30").
type AdjustPaidTimeRequest struct {
	ID       string  `json:"-"`
	PaidTime string  `json:"paid_time"`
	Notes    *string `json:"notes,omitempty"`
}

func (r *AdjustPaidTimeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.PaidTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "paid_time",
			Message: "paid_time is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ManualEntryRequest lets an elevated user create a record for an employee.
type ManualEntryRequest struct {
	EmployeeID string  `json:"employee_id"`
	Date       *string `json:"date,omitempty"`
	ClockIn    *string `json:"clock_in,omitempty"`
	Location   string  `json:"location"`
	Notes      *string `json:"notes,omitempty"`
}

func (r *ManualEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.Location) {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: "location is required",
		})
	}

	if r.Date != nil && *r.Date != "" {
		if _, valid := validator.IsValidDate(*r.Date); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if r.ClockIn != nil && *r.ClockIn != "" {
		if _, valid := validator.IsValidDateTime(*r.ClockIn); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_in",
				Message: "clock_in must be an RFC3339 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ApproveAttendanceRequest struct {
	ID string `json:"-"`
}

type RevokeApprovalRequest struct {
	ID string `json:"-"`
}

type AttendanceResponse struct {
	ID                string  `json:"id"`
	EmployeeID        string  `json:"employee_id"`
	EmployeeName      *string `json:"employee_name,omitempty"`
	Date              string  `json:"date"`
	ClockIn           *string `json:"clock_in,omitempty"`
	ClockInLocation   *string `json:"clock_in_location,omitempty"`
	ClockOut          *string `json:"clock_out,omitempty"`
	ClockOutLocation  *string `json:"clock_out_location,omitempty"`
	WorkScheduleHours int     `json:"work_schedule_hours"`
	LoggedTime        *string `json:"logged_time,omitempty"` // HH:MM:SS
	PaidTime          string  `json:"paid_time"`             // HH:MM:SS
	Deficit           string  `json:"deficit"`               // signed ±HH:MM:SS
	Overtime          string  `json:"overtime"`              // signed ±HH:MM:SS
	OvertimeSeconds   int64   `json:"overtime_seconds"`
	Notes             *string `json:"notes,omitempty"`
	Status            string  `json:"status"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
}

type AdjustmentResponse struct {
	ID               string  `json:"id"`
	AttendanceID     string  `json:"attendance_id"`
	PerformedBy      *string `json:"performed_by,omitempty"`
	PreviousPaidTime *string `json:"previous_paid_time,omitempty"`
	NewPaidTime      string  `json:"new_paid_time"`
	Notes            *string `json:"notes,omitempty"`
	CreatedAt        string  `json:"created_at"`
}

type AttendanceFilter struct {
	// Search & Filter
	EmployeeID *string `json:"employee_id,omitempty"`
	Date       *string `json:"date,omitempty"`       // YYYY-MM-DD
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status     *string `json:"status,omitempty"`
	Location   *string `json:"location,omitempty"` // substring match on either stamp location
	Office     *string `json:"office,omitempty"`   // substring match on the employee's office

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortBy    string `json:"sort_by"`    // date, clock_in, clock_out, status
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1 // Default page
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20 // Default limit
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.Status != nil {
		validStatuses := []string{StatusPending, StatusApproved}
		if !validator.IsInSlice(strings.ToUpper(*f.Status), validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: PENDING, APPROVED",
			})
		}
	}

	for field, value := range map[string]*string{
		"date":       f.Date,
		"start_date": f.StartDate,
		"end_date":   f.EndDate,
	} {
		if value != nil && *value != "" {
			if _, valid := validator.IsValidDate(*value); !valid {
				errs = append(errs, validator.ValidationError{
					Field:   field,
					Message: field + " must be in YYYY-MM-DD format",
				})
			}
		}
	}

	if f.SortBy != "" {
		validSortFields := []string{"date", "clock_in", "clock_out", "status"}
		if !validator.IsInSlice(f.SortBy, validSortFields) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_by",
				Message: "sort_by must be one of: date, clock_in, clock_out, status",
			})
		}
	} else {
		f.SortBy = "date" // Default sort
	}

	if f.SortOrder != "" {
		validSortOrders := []string{"asc", "desc"}
		if !validator.IsInSlice(strings.ToLower(f.SortOrder), validSortOrders) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_order",
				Message: "sort_order must be one of: asc, desc",
			})
		}
	} else {
		f.SortOrder = "desc" // Default descending (newest first)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Attendances []AttendanceResponse `json:"attendances"`
}

// SummaryQuery bounds a summary to a date window, inclusive on both ends.
type SummaryQuery struct {
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Office    *string `json:"office,omitempty"` // team summary only
}

func (q *SummaryQuery) Validate() error {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidDate(q.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	end, endOK := validator.IsValidDate(q.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SelfSummaryResponse struct {
	EmployeeID       string `json:"employee_id"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	Days             int    `json:"days"`
	TotalLogged      string `json:"total_logged"`    // HH:MM:SS
	TotalPaid        string `json:"total_paid"`      // HH:MM:SS
	TotalScheduled   string `json:"total_scheduled"` // HH:MM:SS
	Overtime         string `json:"overtime"`        // signed ±HH:MM:SS
	Deficit          string `json:"deficit"`         // signed ±HH:MM:SS
	PendingApprovals int    `json:"pending_approvals"`
}

type TeamSummaryRow struct {
	EmployeeID     string  `json:"employee_id"`
	EmployeeName   string  `json:"employee_name"`
	Office         *string `json:"office,omitempty"`
	Days           int     `json:"days"`
	TotalPaid      string  `json:"total_paid"`
	TotalScheduled string  `json:"total_scheduled"`
	Overtime       string  `json:"overtime"`
	Deficit        string  `json:"deficit"`
}

type TeamSummaryResponse struct {
	StartDate string           `json:"start_date"`
	EndDate   string           `json:"end_date"`
	Rows      []TeamSummaryRow `json:"rows"`
}
