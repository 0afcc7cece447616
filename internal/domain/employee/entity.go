package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID                string
	FullName          string
	Office            *string
	Department        *string
	LineManagerID     *string
	Grade             *string // matches a base salary template key, e.g. gradeA
	BaseSalary        *decimal.Decimal
	SalaryStructureID *string
	DeviceToken       *string
	HireDate          time.Time
	TerminationDate   *time.Time
	Active            bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
