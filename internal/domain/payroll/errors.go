package payroll

import "errors"

// Payroll domain errors
var (
	ErrCycleNotFound     = errors.New("pay cycle not found")
	ErrCycleExists       = errors.New("pay cycle with this name already exists")
	ErrSlipNotFound      = errors.New("payroll slip not found")
	ErrSlipExists        = errors.New("payroll slip already exists for this employee and cycle")
	ErrSlipFinalized     = errors.New("payroll slip is already finalized")
	ErrStructureNotFound = errors.New("salary structure not found")
	ErrStructureExists   = errors.New("employee already has a salary structure")
	ErrComponentNotFound = errors.New("pay component not found")
)
