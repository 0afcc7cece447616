package employee

import (
	"context"
)

// EmployeeRepository is the read-only directory consumed by attendance,
// payroll and efficiency. Employee lifecycle management happens elsewhere.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)

	// GetByDeviceToken resolves a fingerprint/badge token to its employee
	GetByDeviceToken(ctx context.Context, token string) (Employee, error)

	// ListActive retrieves all active employees
	ListActive(ctx context.Context) ([]Employee, error)

	// ListDirectReports retrieves active employees managed by the given employee
	ListDirectReports(ctx context.Context, managerID string) ([]Employee, error)

	// ListByOffice retrieves active employees whose office matches the
	// substring filter; empty filter matches everyone
	ListByOffice(ctx context.Context, officeFilter string) ([]Employee, error)
}
