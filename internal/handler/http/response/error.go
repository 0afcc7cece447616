package response

import (
	"errors"
	"net/http"

	"github.com/corehr/hr-payroll-go/internal/domain/attendance"
	"github.com/corehr/hr-payroll-go/internal/domain/efficiency"
	"github.com/corehr/hr-payroll-go/internal/domain/employee"
	"github.com/corehr/hr-payroll-go/internal/domain/payroll"
	"github.com/corehr/hr-payroll-go/internal/domain/policy"
	"github.com/corehr/hr-payroll-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		Conflict(w, "Attendance record already exists for this day")
	case errors.Is(err, attendance.ErrNotClockedIn):
		Conflict(w, "No open attendance record to clock out of")
	case errors.Is(err, attendance.ErrAlreadyClockedOut):
		Conflict(w, "Attendance record is already closed")
	case errors.Is(err, attendance.ErrClockOutBeforeIn):
		BadRequest(w, "Clock-out must not precede clock-in", nil)
	case errors.Is(err, attendance.ErrUnknownDevice):
		NotFound(w, "Device token does not match any employee")
	case errors.Is(err, attendance.ErrEditWindowExceeded):
		UnprocessableEntity(w, "EDIT_WINDOW_EXCEEDED", "Record is too old to adjust")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrUnauthorized):
		Forbidden(w, "Not allowed to act on this employee's records")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrCycleNotFound):
		NotFound(w, "Pay cycle not found")
	case errors.Is(err, payroll.ErrCycleExists):
		Conflict(w, "Pay cycle with this name already exists")
	case errors.Is(err, payroll.ErrSlipNotFound):
		NotFound(w, "Payroll slip not found")
	case errors.Is(err, payroll.ErrSlipExists):
		Conflict(w, "Payroll slip already exists for this employee and cycle")
	case errors.Is(err, payroll.ErrSlipFinalized):
		Conflict(w, "Payroll slip is already finalized")
	case errors.Is(err, payroll.ErrStructureNotFound):
		NotFound(w, "Salary structure not found")
	case errors.Is(err, payroll.ErrStructureExists):
		Conflict(w, "Employee already has a salary structure")
	case errors.Is(err, payroll.ErrComponentNotFound):
		NotFound(w, "Pay component not found")

	// Policy domain errors
	case errors.Is(err, policy.ErrUnknownSection):
		BadRequest(w, "Unknown policy section", nil)
	case errors.Is(err, policy.ErrInvalidDocument):
		BadRequest(w, "Policy document must be a JSON object", nil)

	// Efficiency domain errors
	case errors.Is(err, efficiency.ErrTemplateNotFound):
		NotFound(w, "Efficiency template not found")
	case errors.Is(err, efficiency.ErrTemplateInactive):
		Conflict(w, "Efficiency template is not active")
	case errors.Is(err, efficiency.ErrEvaluationNotFound):
		NotFound(w, "Efficiency evaluation not found")
	case errors.Is(err, efficiency.ErrInvalidStatusChange):
		Conflict(w, "Evaluation status can only move forward")
	case errors.Is(err, efficiency.ErrUnsupportedSubmitter):
		Forbidden(w, "Not allowed to evaluate this employee")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
