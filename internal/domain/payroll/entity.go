package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// CycleStatus enum
type CycleStatus string

const (
	CycleStatusDraft  CycleStatus = "DRAFT"
	CycleStatusOpen   CycleStatus = "OPEN"
	CycleStatusClosed CycleStatus = "CLOSED"
)

// PayCycle - payroll period window
type PayCycle struct {
	ID             string
	Name           string
	StartDate      time.Time
	EndDate        time.Time
	CutoffDate     time.Time
	Status         CycleStatus
	PersonInCharge *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PeriodDays is the inclusive number of calendar days in the cycle window.
func (c PayCycle) PeriodDays() int {
	return int(c.EndDate.Sub(c.StartDate).Hours()/24) + 1
}

// SlipStatus enum
type SlipStatus string

const (
	SlipStatusDraft SlipStatus = "DRAFT"
	SlipStatusFinal SlipStatus = "FINAL"
)

// PayrollSlip - one per (cycle, employee), enforced by a unique constraint
type PayrollSlip struct {
	ID              string
	CycleID         string
	EmployeeID      string
	BaseSalary      decimal.Decimal
	TotalEarnings   decimal.Decimal
	TotalDeductions decimal.Decimal
	NetPay          decimal.Decimal
	WorkDuration    time.Duration
	Overtime        time.Duration
	Deficit         time.Duration
	Status          SlipStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time

	LineItems []PayslipLineItem

	// Joined fields
	EmployeeName *string
}

// ItemType enum
type ItemType string

const (
	ItemTypeEarning   ItemType = "EARNING"
	ItemTypeDeduction ItemType = "DEDUCTION"
)

// ItemCategory enum
type ItemCategory string

const (
	CategoryRecurring ItemCategory = "RECURRING"
	CategoryTax       ItemCategory = "TAX"
)

// PayslipLineItem rows are fully replaced on every slip regeneration.
type PayslipLineItem struct {
	ID          string
	SlipID      string
	ComponentID *string
	Label       string
	Type        ItemType
	Category    ItemCategory
	Amount      decimal.Decimal
	CreatedAt   time.Time
}

// ComponentType enum
type ComponentType string

const (
	ComponentTypeEarning   ComponentType = "earning"
	ComponentTypeDeduction ComponentType = "deduction"
)

// PayComponent - master list entry referenced by structure items
type PayComponent struct {
	ID        string
	Name      string
	Type      ComponentType
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SalaryStructure - per-employee base salary plus component amounts
type SalaryStructure struct {
	ID         string
	EmployeeID string
	BaseSalary decimal.Decimal
	Items      []StructureItem
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type StructureItem struct {
	ID          string
	StructureID string
	ComponentID string
	Amount      decimal.Decimal

	// Joined fields
	ComponentName *string
	ComponentType *ComponentType
}

// AttendanceTotals - per-employee aggregate snapshotted onto the slip
type AttendanceTotals struct {
	WorkDuration time.Duration
	Overtime     time.Duration
	Deficit      time.Duration
}
