package payroll

import (
	"context"
)

// PayrollService defines business logic for payroll operations
type PayrollService interface {
	// Cycles
	CreateCycle(ctx context.Context, req CreateCycleRequest) (CycleResponse, error)
	GetCycle(ctx context.Context, id string) (CycleResponse, error)
	ListCycles(ctx context.Context) ([]CycleResponse, error)

	// EnsureCurrentMonthCycle finds or creates the "<YYYY-MM> Payroll" cycle
	// spanning the current calendar month; calling twice yields the same cycle
	EnsureCurrentMonthCycle(ctx context.Context) (CycleResponse, error)

	// GenerateForCycle upserts one DRAFT slip per (cycle, active employee),
	// replacing all line items, inside a single transaction. Re-running with
	// unchanged inputs produces identical totals and line-item counts.
	GenerateForCycle(ctx context.Context, cycleID string) (GenerateResult, error)

	// Slips
	GetSlip(ctx context.Context, id string) (SlipResponse, error)
	ListSlips(ctx context.Context, filter SlipFilter) (ListSlipsResponse, error)
	// FinalizeSlip moves a slip to FINAL; finalizing twice fails
	FinalizeSlip(ctx context.Context, id string) (SlipResponse, error)

	// Salary structures and components
	UpsertStructure(ctx context.Context, req UpsertStructureRequest) (StructureResponse, error)
	GetStructureByEmployee(ctx context.Context, employeeID string) (StructureResponse, error)
	CreateComponent(ctx context.Context, req CreateComponentRequest) (ComponentResponse, error)
	ListComponents(ctx context.Context, activeOnly bool) ([]ComponentResponse, error)
}
