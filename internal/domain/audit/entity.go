package audit

import (
	"time"
)

// Entry is one append-only audit row. Before/After hold JSON snapshots of the
// touched record where the action mutates state.
type Entry struct {
	ID        string
	Action    string
	ActorID   *string
	Message   string
	Before    map[string]any
	After     map[string]any
	CreatedAt time.Time
}

// Actions recorded by the core flows
const (
	ActionAttendanceAdjusted = "attendance.paid_time_adjusted"
	ActionAttendanceApproved = "attendance.approved"
	ActionAttendanceRevoked  = "attendance.approval_revoked"
	ActionSlipFinalized      = "payroll.slip_finalized"
	ActionPolicyUpdated      = "policy.updated"
	ActionEvaluationCreated  = "efficiency.evaluation_created"
)
