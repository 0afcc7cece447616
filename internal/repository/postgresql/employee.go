package postgresql

import (
	"context"
	"fmt"

	"github.com/corehr/hr-payroll-go/internal/domain/employee"
	"github.com/corehr/hr-payroll-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepository struct {
	db *database.DB
}

const employeeColumns = `
	e.id, e.full_name, e.office, e.department, e.line_manager_id, e.grade,
	e.base_salary, e.salary_structure_id, e.device_token,
	e.hire_date, e.termination_date, e.active, e.created_at, e.updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.FullName, &emp.Office, &emp.Department, &emp.LineManagerID, &emp.Grade,
		&emp.BaseSalary, &emp.SalaryStructureID, &emp.DeviceToken,
		&emp.HireDate, &emp.TerminationDate, &emp.Active, &emp.CreatedAt, &emp.UpdatedAt,
	)
	return emp, err
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT` + employeeColumns + `
		FROM employees e
		WHERE e.id = $1
	`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by ID: %w", err)
	}

	return emp, nil
}

// GetByDeviceToken implements employee.EmployeeRepository.
func (e *employeeRepository) GetByDeviceToken(ctx context.Context, token string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT` + employeeColumns + `
		FROM employees e
		WHERE e.device_token = $1
		  AND e.active = TRUE
	`

	emp, err := scanEmployee(q.QueryRow(ctx, query, token))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by device token: %w", err)
	}

	return emp, nil
}

// ListActive implements employee.EmployeeRepository.
func (e *employeeRepository) ListActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT` + employeeColumns + `
		FROM employees e
		WHERE e.active = TRUE
		ORDER BY e.full_name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query active employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	return employees, nil
}

// ListDirectReports implements employee.EmployeeRepository.
func (e *employeeRepository) ListDirectReports(ctx context.Context, managerID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT` + employeeColumns + `
		FROM employees e
		WHERE e.line_manager_id = $1
		  AND e.active = TRUE
		ORDER BY e.full_name ASC
	`

	rows, err := q.Query(ctx, query, managerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query direct reports: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	return employees, nil
}

// ListByOffice implements employee.EmployeeRepository.
func (e *employeeRepository) ListByOffice(ctx context.Context, officeFilter string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT` + employeeColumns + `
		FROM employees e
		WHERE e.active = TRUE
		  AND ($1 = '' OR e.office ILIKE $2)
		ORDER BY e.full_name ASC
	`

	rows, err := q.Query(ctx, query, officeFilter, "%"+officeFilter+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to query employees by office: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	return employees, nil
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}
