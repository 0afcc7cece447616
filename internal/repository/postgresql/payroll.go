package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/corehr/hr-payroll-go/internal/domain/payroll"
	"github.com/corehr/hr-payroll-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type payrollRepository struct {
	db *database.DB
}

// ========== CYCLES ==========

const cycleColumns = `
	c.id, c.name, c.start_date, c.end_date, c.cutoff_date, c.status,
	c.person_in_charge, c.created_at, c.updated_at`

func scanCycle(row pgx.Row) (payroll.PayCycle, error) {
	var cycle payroll.PayCycle
	err := row.Scan(
		&cycle.ID, &cycle.Name, &cycle.StartDate, &cycle.EndDate, &cycle.CutoffDate, &cycle.Status,
		&cycle.PersonInCharge, &cycle.CreatedAt, &cycle.UpdatedAt,
	)
	return cycle, err
}

// CreateCycle implements payroll.PayrollRepository.
func (p *payrollRepository) CreateCycle(ctx context.Context, cycle payroll.PayCycle) (payroll.PayCycle, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		INSERT INTO pay_cycles (
			name, start_date, end_date, cutoff_date, status, person_in_charge
		) VALUES (
			$1, $2, $3, $4, $5, $6
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		cycle.Name,
		cycle.StartDate,
		cycle.EndDate,
		cycle.CutoffDate,
		cycle.Status,
		cycle.PersonInCharge,
	).Scan(&cycle.ID, &cycle.CreatedAt, &cycle.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return payroll.PayCycle{}, payroll.ErrCycleExists
		}
		return payroll.PayCycle{}, fmt.Errorf("failed to create pay cycle: %w", err)
	}

	return cycle, nil
}

// GetCycleByID implements payroll.PayrollRepository.
func (p *payrollRepository) GetCycleByID(ctx context.Context, id string) (payroll.PayCycle, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT` + cycleColumns + `
		FROM pay_cycles c
		WHERE c.id = $1
	`

	cycle, err := scanCycle(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayCycle{}, payroll.ErrCycleNotFound
		}
		return payroll.PayCycle{}, fmt.Errorf("failed to get pay cycle by ID: %w", err)
	}

	return cycle, nil
}

// GetCycleByName implements payroll.PayrollRepository.
func (p *payrollRepository) GetCycleByName(ctx context.Context, name string) (*payroll.PayCycle, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT` + cycleColumns + `
		FROM pay_cycles c
		WHERE c.name = $1
		LIMIT 1
	`

	cycle, err := scanCycle(q.QueryRow(ctx, query, name))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // No cycle with this name
		}
		return nil, fmt.Errorf("failed to get pay cycle by name: %w", err)
	}

	return &cycle, nil
}

// ListCycles implements payroll.PayrollRepository.
func (p *payrollRepository) ListCycles(ctx context.Context) ([]payroll.PayCycle, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT` + cycleColumns + `
		FROM pay_cycles c
		ORDER BY c.start_date DESC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query pay cycles: %w", err)
	}
	defer rows.Close()

	var cycles []payroll.PayCycle
	for rows.Next() {
		cycle, err := scanCycle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pay cycle: %w", err)
		}
		cycles = append(cycles, cycle)
	}

	return cycles, nil
}

// UpdateCycle implements payroll.PayrollRepository.
func (p *payrollRepository) UpdateCycle(ctx context.Context, cycle payroll.PayCycle) error {
	q := GetQuerier(ctx, p.db)

	query := `
		UPDATE pay_cycles SET
			name = $1,
			start_date = $2,
			end_date = $3,
			cutoff_date = $4,
			status = $5,
			person_in_charge = $6,
			updated_at = $7
		WHERE id = $8
	`

	commandTag, err := q.Exec(ctx, query,
		cycle.Name,
		cycle.StartDate,
		cycle.EndDate,
		cycle.CutoffDate,
		cycle.Status,
		cycle.PersonInCharge,
		time.Now(),
		cycle.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update pay cycle: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return payroll.ErrCycleNotFound
	}

	return nil
}

// ========== SLIPS ==========

const slipColumns = `
	s.id, s.cycle_id, s.employee_id, s.base_salary, s.total_earnings,
	s.total_deductions, s.net_pay, s.work_duration_seconds,
	s.overtime_seconds, s.deficit_seconds, s.status, s.created_at, s.updated_at`

func scanSlip(row pgx.Row, withEmployee bool) (payroll.PayrollSlip, error) {
	var slip payroll.PayrollSlip
	var workSeconds, overtimeSeconds, deficitSeconds int64

	dest := []interface{}{
		&slip.ID, &slip.CycleID, &slip.EmployeeID, &slip.BaseSalary, &slip.TotalEarnings,
		&slip.TotalDeductions, &slip.NetPay, &workSeconds,
		&overtimeSeconds, &deficitSeconds, &slip.Status, &slip.CreatedAt, &slip.UpdatedAt,
	}
	if withEmployee {
		dest = append(dest, &slip.EmployeeName)
	}

	if err := row.Scan(dest...); err != nil {
		return payroll.PayrollSlip{}, err
	}
	slip.WorkDuration = time.Duration(workSeconds) * time.Second
	slip.Overtime = time.Duration(overtimeSeconds) * time.Second
	slip.Deficit = time.Duration(deficitSeconds) * time.Second
	return slip, nil
}

// GetSlipByCycleAndEmployee implements payroll.PayrollRepository.
func (p *payrollRepository) GetSlipByCycleAndEmployee(ctx context.Context, cycleID, employeeID string) (*payroll.PayrollSlip, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT` + slipColumns + `
		FROM payroll_slips s
		WHERE s.cycle_id = $1
		  AND s.employee_id = $2
		LIMIT 1
	`

	slip, err := scanSlip(q.QueryRow(ctx, query, cycleID, employeeID), false)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // No slip for this pair yet
		}
		return nil, fmt.Errorf("failed to get slip by cycle and employee: %w", err)
	}

	return &slip, nil
}

// CreateSlip implements payroll.PayrollRepository.
func (p *payrollRepository) CreateSlip(ctx context.Context, slip payroll.PayrollSlip) (payroll.PayrollSlip, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		INSERT INTO payroll_slips (
			cycle_id, employee_id, base_salary, total_earnings, total_deductions,
			net_pay, work_duration_seconds, overtime_seconds, deficit_seconds, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		slip.CycleID,
		slip.EmployeeID,
		slip.BaseSalary,
		slip.TotalEarnings,
		slip.TotalDeductions,
		slip.NetPay,
		int64(slip.WorkDuration/time.Second),
		int64(slip.Overtime/time.Second),
		int64(slip.Deficit/time.Second),
		slip.Status,
	).Scan(&slip.ID, &slip.CreatedAt, &slip.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return payroll.PayrollSlip{}, payroll.ErrSlipExists
		}
		return payroll.PayrollSlip{}, fmt.Errorf("failed to create payroll slip: %w", err)
	}

	return slip, nil
}

// UpdateSlip implements payroll.PayrollRepository.
func (p *payrollRepository) UpdateSlip(ctx context.Context, slip payroll.PayrollSlip) error {
	q := GetQuerier(ctx, p.db)

	query := `
		UPDATE payroll_slips SET
			base_salary = $1,
			total_earnings = $2,
			total_deductions = $3,
			net_pay = $4,
			work_duration_seconds = $5,
			overtime_seconds = $6,
			deficit_seconds = $7,
			status = $8,
			updated_at = $9
		WHERE id = $10
	`

	commandTag, err := q.Exec(ctx, query,
		slip.BaseSalary,
		slip.TotalEarnings,
		slip.TotalDeductions,
		slip.NetPay,
		int64(slip.WorkDuration/time.Second),
		int64(slip.Overtime/time.Second),
		int64(slip.Deficit/time.Second),
		slip.Status,
		time.Now(),
		slip.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update payroll slip: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return payroll.ErrSlipNotFound
	}

	return nil
}

// GetSlipByID implements payroll.PayrollRepository.
func (p *payrollRepository) GetSlipByID(ctx context.Context, id string) (payroll.PayrollSlip, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT` + slipColumns + `,
			   e.full_name AS employee_name
		FROM payroll_slips s
		LEFT JOIN employees e ON e.id = s.employee_id
		WHERE s.id = $1
	`

	slip, err := scanSlip(q.QueryRow(ctx, query, id), true)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollSlip{}, payroll.ErrSlipNotFound
		}
		return payroll.PayrollSlip{}, fmt.Errorf("failed to get payroll slip by ID: %w", err)
	}

	return slip, nil
}

// ListSlips implements payroll.PayrollRepository.
func (p *payrollRepository) ListSlips(ctx context.Context, filter payroll.SlipFilter) ([]payroll.PayrollSlip, int64, error) {
	q := GetQuerier(ctx, p.db)

	baseWhere := "1 = 1"
	args := []interface{}{}
	argIdx := 1

	if filter.CycleID != nil && *filter.CycleID != "" {
		baseWhere += fmt.Sprintf(" AND s.cycle_id = $%d", argIdx)
		args = append(args, *filter.CycleID)
		argIdx++
	}
	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND s.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND s.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM payroll_slips s WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll slips: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT`+slipColumns+`,
			   e.full_name AS employee_name
		FROM payroll_slips s
		LEFT JOIN employees e ON e.id = s.employee_id
		WHERE %s
		ORDER BY s.created_at DESC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query payroll slips: %w", err)
	}
	defer rows.Close()

	var slips []payroll.PayrollSlip
	for rows.Next() {
		slip, err := scanSlip(rows, true)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll slip: %w", err)
		}
		slips = append(slips, slip)
	}

	return slips, total, nil
}

// ReplaceLineItems implements payroll.PayrollRepository.
func (p *payrollRepository) ReplaceLineItems(ctx context.Context, slipID string, items []payroll.PayslipLineItem) error {
	q := GetQuerier(ctx, p.db)

	if _, err := q.Exec(ctx, `DELETE FROM payslip_line_items WHERE slip_id = $1`, slipID); err != nil {
		return fmt.Errorf("failed to clear payslip line items: %w", err)
	}

	query := `
		INSERT INTO payslip_line_items (
			slip_id, component_id, label, type, category, amount
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)
	`

	for _, item := range items {
		if _, err := q.Exec(ctx, query,
			slipID,
			item.ComponentID,
			item.Label,
			item.Type,
			item.Category,
			item.Amount,
		); err != nil {
			return fmt.Errorf("failed to insert payslip line item: %w", err)
		}
	}

	return nil
}

// ListLineItems implements payroll.PayrollRepository.
func (p *payrollRepository) ListLineItems(ctx context.Context, slipID string) ([]payroll.PayslipLineItem, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT id, slip_id, component_id, label, type, category, amount, created_at
		FROM payslip_line_items
		WHERE slip_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := q.Query(ctx, query, slipID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payslip line items: %w", err)
	}
	defer rows.Close()

	var items []payroll.PayslipLineItem
	for rows.Next() {
		var item payroll.PayslipLineItem
		err := rows.Scan(
			&item.ID, &item.SlipID, &item.ComponentID, &item.Label,
			&item.Type, &item.Category, &item.Amount, &item.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payslip line item: %w", err)
		}
		items = append(items, item)
	}

	return items, nil
}

// ========== STRUCTURES ==========

// GetStructureByEmployee implements payroll.PayrollRepository.
func (p *payrollRepository) GetStructureByEmployee(ctx context.Context, employeeID string) (*payroll.SalaryStructure, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT id, employee_id, base_salary, created_at, updated_at
		FROM salary_structures
		WHERE employee_id = $1
		LIMIT 1
	`

	var structure payroll.SalaryStructure
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&structure.ID, &structure.EmployeeID, &structure.BaseSalary,
		&structure.CreatedAt, &structure.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // Employee has no salary structure
		}
		return nil, fmt.Errorf("failed to get salary structure: %w", err)
	}

	itemsQuery := `
		SELECT i.id, i.structure_id, i.component_id, i.amount,
			   c.name AS component_name, c.type AS component_type
		FROM salary_structure_items i
		LEFT JOIN pay_components c ON c.id = i.component_id
		WHERE i.structure_id = $1
		ORDER BY c.type ASC, c.name ASC
	`

	rows, err := q.Query(ctx, itemsQuery, structure.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query salary structure items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item payroll.StructureItem
		err := rows.Scan(
			&item.ID, &item.StructureID, &item.ComponentID, &item.Amount,
			&item.ComponentName, &item.ComponentType,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary structure item: %w", err)
		}
		structure.Items = append(structure.Items, item)
	}

	return &structure, nil
}

// CreateStructure implements payroll.PayrollRepository.
func (p *payrollRepository) CreateStructure(ctx context.Context, structure payroll.SalaryStructure) (payroll.SalaryStructure, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		INSERT INTO salary_structures (employee_id, base_salary)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, structure.EmployeeID, structure.BaseSalary).
		Scan(&structure.ID, &structure.CreatedAt, &structure.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return payroll.SalaryStructure{}, payroll.ErrStructureExists
		}
		return payroll.SalaryStructure{}, fmt.Errorf("failed to create salary structure: %w", err)
	}

	if err := p.replaceStructureItems(ctx, structure.ID, structure.Items); err != nil {
		return payroll.SalaryStructure{}, err
	}

	return structure, nil
}

// UpdateStructure implements payroll.PayrollRepository.
func (p *payrollRepository) UpdateStructure(ctx context.Context, structure payroll.SalaryStructure) error {
	q := GetQuerier(ctx, p.db)

	query := `
		UPDATE salary_structures
		SET base_salary = $1, updated_at = $2
		WHERE id = $3
	`

	commandTag, err := q.Exec(ctx, query, structure.BaseSalary, time.Now(), structure.ID)
	if err != nil {
		return fmt.Errorf("failed to update salary structure: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return payroll.ErrStructureNotFound
	}

	return p.replaceStructureItems(ctx, structure.ID, structure.Items)
}

func (p *payrollRepository) replaceStructureItems(ctx context.Context, structureID string, items []payroll.StructureItem) error {
	q := GetQuerier(ctx, p.db)

	if _, err := q.Exec(ctx, `DELETE FROM salary_structure_items WHERE structure_id = $1`, structureID); err != nil {
		return fmt.Errorf("failed to clear salary structure items: %w", err)
	}

	query := `
		INSERT INTO salary_structure_items (structure_id, component_id, amount)
		VALUES ($1, $2, $3)
	`

	for _, item := range items {
		if _, err := q.Exec(ctx, query, structureID, item.ComponentID, item.Amount); err != nil {
			return fmt.Errorf("failed to insert salary structure item: %w", err)
		}
	}

	return nil
}

// ========== COMPONENTS ==========

// CreateComponent implements payroll.PayrollRepository.
func (p *payrollRepository) CreateComponent(ctx context.Context, component payroll.PayComponent) (payroll.PayComponent, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		INSERT INTO pay_components (name, type, is_active)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, component.Name, component.Type, component.IsActive).
		Scan(&component.ID, &component.CreatedAt, &component.UpdatedAt)
	if err != nil {
		return payroll.PayComponent{}, fmt.Errorf("failed to create pay component: %w", err)
	}

	return component, nil
}

// GetComponentByID implements payroll.PayrollRepository.
func (p *payrollRepository) GetComponentByID(ctx context.Context, id string) (payroll.PayComponent, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT id, name, type, is_active, created_at, updated_at
		FROM pay_components
		WHERE id = $1
	`

	var component payroll.PayComponent
	err := q.QueryRow(ctx, query, id).Scan(
		&component.ID, &component.Name, &component.Type, &component.IsActive,
		&component.CreatedAt, &component.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayComponent{}, payroll.ErrComponentNotFound
		}
		return payroll.PayComponent{}, fmt.Errorf("failed to get pay component by ID: %w", err)
	}

	return component, nil
}

// ListComponents implements payroll.PayrollRepository.
func (p *payrollRepository) ListComponents(ctx context.Context, activeOnly bool) ([]payroll.PayComponent, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT id, name, type, is_active, created_at, updated_at
		FROM pay_components
		WHERE ($1 = FALSE OR is_active = TRUE)
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to query pay components: %w", err)
	}
	defer rows.Close()

	var components []payroll.PayComponent
	for rows.Next() {
		var component payroll.PayComponent
		err := rows.Scan(
			&component.ID, &component.Name, &component.Type, &component.IsActive,
			&component.CreatedAt, &component.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pay component: %w", err)
		}
		components = append(components, component)
	}

	return components, nil
}

// ========== AGGREGATIONS ==========

// GetAttendanceTotals implements payroll.PayrollRepository.
func (p *payrollRepository) GetAttendanceTotals(ctx context.Context, start, end time.Time) (map[string]payroll.AttendanceTotals, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT employee_id,
			   COALESCE(SUM(paid_time_seconds), 0) AS paid_seconds,
			   COALESCE(SUM(paid_time_seconds - work_schedule_hours * 3600), 0) AS overtime_seconds
		FROM attendance_records
		WHERE date >= $1
		  AND date <= $2
		  AND status = 'APPROVED'
		GROUP BY employee_id
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance totals: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]payroll.AttendanceTotals)
	for rows.Next() {
		var employeeID string
		var paidSeconds, overtimeSeconds int64
		if err := rows.Scan(&employeeID, &paidSeconds, &overtimeSeconds); err != nil {
			return nil, fmt.Errorf("failed to scan attendance totals: %w", err)
		}
		totals[employeeID] = payroll.AttendanceTotals{
			WorkDuration: time.Duration(paidSeconds) * time.Second,
			Overtime:     time.Duration(overtimeSeconds) * time.Second,
			Deficit:      -time.Duration(overtimeSeconds) * time.Second,
		}
	}

	return totals, nil
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}
