package payroll

import (
	"context"
	"time"
)

// PayrollRepository defines data access methods for payroll.
type PayrollRepository interface {
	// Cycles
	CreateCycle(ctx context.Context, cycle PayCycle) (PayCycle, error)
	GetCycleByID(ctx context.Context, id string) (PayCycle, error)
	// GetCycleByName resolves the deterministic monthly name; nil when absent
	GetCycleByName(ctx context.Context, name string) (*PayCycle, error)
	ListCycles(ctx context.Context) ([]PayCycle, error)
	UpdateCycle(ctx context.Context, cycle PayCycle) error

	// Slips
	// GetSlipByCycleAndEmployee returns nil when no slip exists for the pair
	GetSlipByCycleAndEmployee(ctx context.Context, cycleID, employeeID string) (*PayrollSlip, error)
	CreateSlip(ctx context.Context, slip PayrollSlip) (PayrollSlip, error)
	UpdateSlip(ctx context.Context, slip PayrollSlip) error
	GetSlipByID(ctx context.Context, id string) (PayrollSlip, error)
	ListSlips(ctx context.Context, filter SlipFilter) ([]PayrollSlip, int64, error)
	// ReplaceLineItems deletes every line item of the slip and inserts the
	// given set in order
	ReplaceLineItems(ctx context.Context, slipID string, items []PayslipLineItem) error
	ListLineItems(ctx context.Context, slipID string) ([]PayslipLineItem, error)

	// Salary structures
	// GetStructureByEmployee returns nil when the employee has no structure
	GetStructureByEmployee(ctx context.Context, employeeID string) (*SalaryStructure, error)
	CreateStructure(ctx context.Context, structure SalaryStructure) (SalaryStructure, error)
	UpdateStructure(ctx context.Context, structure SalaryStructure) error

	// Components
	CreateComponent(ctx context.Context, component PayComponent) (PayComponent, error)
	GetComponentByID(ctx context.Context, id string) (PayComponent, error)
	ListComponents(ctx context.Context, activeOnly bool) ([]PayComponent, error)

	// Aggregations
	// GetAttendanceTotals sums paid/overtime/deficit per employee over the
	// cycle window from approved attendance rows
	GetAttendanceTotals(ctx context.Context, start, end time.Time) (map[string]AttendanceTotals, error)
}
