package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/corehr/hr-payroll-go/internal/domain/attendance"
	"github.com/corehr/hr-payroll-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type attendanceRepository struct {
	db *database.DB
}

const attendanceColumns = `
	a.id, a.employee_id, a.date, a.clock_in, a.clock_in_location,
	a.clock_out, a.clock_out_location, a.work_schedule_hours,
	a.paid_time_seconds, a.overtime_seconds, a.notes, a.status,
	a.created_at, a.updated_at`

func scanAttendance(row pgx.Row, withEmployee bool) (attendance.Attendance, error) {
	var att attendance.Attendance
	var paidSeconds int64

	dest := []interface{}{
		&att.ID, &att.EmployeeID, &att.Date, &att.ClockIn, &att.ClockInLocation,
		&att.ClockOut, &att.ClockOutLocation, &att.WorkScheduleHours,
		&paidSeconds, &att.OvertimeSeconds, &att.Notes, &att.Status,
		&att.CreatedAt, &att.UpdatedAt,
	}
	if withEmployee {
		dest = append(dest, &att.EmployeeName, &att.Office)
	}

	if err := row.Scan(dest...); err != nil {
		return attendance.Attendance{}, err
	}
	att.PaidTime = time.Duration(paidSeconds) * time.Second
	return att, nil
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_records (
			employee_id, date, clock_in, clock_in_location,
			clock_out, clock_out_location, work_schedule_hours,
			paid_time_seconds, overtime_seconds, notes, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		att.EmployeeID,
		att.Date,
		att.ClockIn,
		att.ClockInLocation,
		att.ClockOut,
		att.ClockOutLocation,
		att.WorkScheduleHours,
		int64(att.PaidTime/time.Second),
		att.OvertimeSeconds,
		att.Notes,
		att.Status,
	).Scan(&att.ID, &att.CreatedAt, &att.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.Attendance{}, attendance.ErrAlreadyClockedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return att, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT` + attendanceColumns + `,
			   e.full_name AS employee_name,
			   e.office AS office
		FROM attendance_records a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, id), true)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by ID: %w", err)
	}

	return att, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT` + attendanceColumns + `
		FROM attendance_records a
		WHERE a.employee_id = $1
		  AND a.date = $2
		LIMIT 1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date), false)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // No record for this day yet
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	return &att, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records SET
			clock_in = $1,
			clock_in_location = $2,
			clock_out = $3,
			clock_out_location = $4,
			work_schedule_hours = $5,
			paid_time_seconds = $6,
			overtime_seconds = $7,
			notes = $8,
			status = $9,
			updated_at = $10
		WHERE id = $11
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		att.ClockIn,
		att.ClockInLocation,
		att.ClockOut,
		att.ClockOutLocation,
		att.WorkScheduleHours,
		int64(att.PaidTime/time.Second),
		att.OvertimeSeconds,
		att.Notes,
		att.Status,
		time.Now(),
		att.ID,
	).Scan(&updatedID)

	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.ErrAttendanceNotFound
		}
		return fmt.Errorf("failed to update attendance record: %w", err)
	}

	return nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	baseWhere := "1 = 1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Date != nil && *filter.Date != "" {
		baseWhere += fmt.Sprintf(" AND a.date = $%d", argIdx)
		args = append(args, *filter.Date)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.Location != nil && *filter.Location != "" {
		baseWhere += fmt.Sprintf(" AND (a.clock_in_location ILIKE $%d OR a.clock_out_location ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+*filter.Location+"%")
		argIdx++
	}
	if filter.Office != nil && *filter.Office != "" {
		baseWhere += fmt.Sprintf(" AND e.office ILIKE $%d", argIdx)
		args = append(args, "%"+*filter.Office+"%")
		argIdx++
	}

	countQuery := `
		SELECT COUNT(*)
		FROM attendance_records a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE ` + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	orderByField := "a.date"
	switch filter.SortBy {
	case "clock_in":
		orderByField = "a.clock_in"
	case "clock_out":
		orderByField = "a.clock_out"
	case "status":
		orderByField = "a.status"
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	selectQuery := fmt.Sprintf(`
		SELECT`+attendanceColumns+`,
			   e.full_name AS employee_name,
			   e.office AS office
		FROM attendance_records a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, baseWhere, orderByField, sortOrder, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows, true)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, att)
	}

	return records, total, nil
}

// ListByEmployeeAndRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT` + attendanceColumns + `
		FROM attendance_records a
		WHERE a.employee_id = $1
		  AND a.date >= $2
		  AND a.date <= $3
		ORDER BY a.date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance range: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows, false)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, att)
	}

	return records, nil
}

// ListByDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT` + attendanceColumns + `
		FROM attendance_records a
		WHERE a.date = $1
		ORDER BY a.employee_id ASC
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance by date: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows, false)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, att)
	}

	return records, nil
}

// UpdateOvertimeSeconds implements attendance.AttendanceRepository.
func (a *attendanceRepository) UpdateOvertimeSeconds(ctx context.Context, id string, seconds int64) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records
		SET overtime_seconds = $1, updated_at = $2
		WHERE id = $3
	`

	commandTag, err := q.Exec(ctx, query, seconds, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update overtime seconds: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// CreateAdjustment implements attendance.AttendanceRepository.
func (a *attendanceRepository) CreateAdjustment(ctx context.Context, adj attendance.AttendanceAdjustment) (attendance.AttendanceAdjustment, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_adjustments (
			attendance_id, performed_by, previous_paid_time_seconds,
			new_paid_time_seconds, notes
		) VALUES (
			$1, $2, $3, $4, $5
		) RETURNING id, created_at
	`

	var previousSeconds *int64
	if adj.PreviousPaidTime != nil {
		s := int64(*adj.PreviousPaidTime / time.Second)
		previousSeconds = &s
	}

	err := q.QueryRow(ctx, query,
		adj.AttendanceID,
		adj.PerformedBy,
		previousSeconds,
		int64(adj.NewPaidTime/time.Second),
		adj.Notes,
	).Scan(&adj.ID, &adj.CreatedAt)

	if err != nil {
		return attendance.AttendanceAdjustment{}, fmt.Errorf("failed to create attendance adjustment: %w", err)
	}

	return adj, nil
}

// ListAdjustments implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListAdjustments(ctx context.Context, attendanceID string) ([]attendance.AttendanceAdjustment, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, attendance_id, performed_by, previous_paid_time_seconds,
			   new_paid_time_seconds, notes, created_at
		FROM attendance_adjustments
		WHERE attendance_id = $1
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query, attendanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance adjustments: %w", err)
	}
	defer rows.Close()

	var adjustments []attendance.AttendanceAdjustment
	for rows.Next() {
		var adj attendance.AttendanceAdjustment
		var previousSeconds *int64
		var newSeconds int64
		err := rows.Scan(
			&adj.ID, &adj.AttendanceID, &adj.PerformedBy, &previousSeconds,
			&newSeconds, &adj.Notes, &adj.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance adjustment: %w", err)
		}
		if previousSeconds != nil {
			d := time.Duration(*previousSeconds) * time.Second
			adj.PreviousPaidTime = &d
		}
		adj.NewPaidTime = time.Duration(newSeconds) * time.Second
		adjustments = append(adjustments, adj)
	}

	return adjustments, nil
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}
