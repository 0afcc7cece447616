package attendance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/corehr/hr-payroll-go/internal/domain/attendance"
	"github.com/corehr/hr-payroll-go/internal/domain/audit"
	"github.com/corehr/hr-payroll-go/internal/domain/employee"
	"github.com/corehr/hr-payroll-go/internal/domain/policy"
	"github.com/corehr/hr-payroll-go/internal/pkg/database"
	"github.com/corehr/hr-payroll-go/internal/pkg/duration"
	"github.com/corehr/hr-payroll-go/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	policyService policy.PolicyService
	auditService  audit.AuditService
	tx            database.TxRunner
	loc           *time.Location
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	policyService policy.PolicyService,
	auditService audit.AuditService,
	tx database.TxRunner,
	loc *time.Location,
) attendance.AttendanceService {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		policyService:        policyService,
		auditService:         auditService,
		tx:                   tx,
		loc:                  loc,
	}
}

func getClaimsFromContext(ctx context.Context) (employeeID string, roles []string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", nil, fmt.Errorf("employee_id claim is missing or invalid")
	}

	return employeeID, rolesFromClaims(claims), nil
}

// rolesFromClaims tolerates both []string and the []interface{} shape jwx
// produces after decoding.
func rolesFromClaims(claims map[string]interface{}) []string {
	switch raw := claims["roles"].(type) {
	case []string:
		return raw
	case []interface{}:
		roles := make([]string, 0, len(raw))
		for _, item := range raw {
			if s, ok := item.(string); ok {
				roles = append(roles, s)
			}
		}
		return roles
	}
	return nil
}

func isElevated(roles []string) bool {
	for _, r := range roles {
		if r == "admin" || r == "hr" {
			return true
		}
	}
	return false
}

func isLineManager(roles []string) bool {
	for _, r := range roles {
		if r == "line_manager" {
			return true
		}
	}
	return false
}

// canManage reports whether the caller may act on the target employee's
// records: elevated roles always, line managers for their direct reports.
func canManage(callerID string, roles []string, target employee.Employee) bool {
	if isElevated(roles) {
		return true
	}
	if isLineManager(roles) && target.LineManagerID != nil && *target.LineManagerID == callerID {
		return true
	}
	return false
}

func (s *AttendanceServiceImpl) policySnapshot(ctx context.Context) policy.Snapshot {
	snap, err := s.policyService.Snapshot(ctx, policy.DefaultOrgID)
	if err != nil {
		// Accessors on the default document still answer; policy storage
		// being down must not block clocking in.
		return policy.NewSnapshot(policy.DefaultDocument())
	}
	return snap
}

// scheduleHoursFor resolves the scheduled hours for one calendar day: zero on
// weekly-off days, the policy's standard work hours otherwise. Anything paid
// on an off day therefore counts fully as overtime.
func (s *AttendanceServiceImpl) scheduleHoursFor(ctx context.Context, date time.Time) int {
	snap := s.policySnapshot(ctx)
	if snap.WeeklyOff()[date.Weekday()] {
		return 0
	}
	return snap.StandardWorkHours()
}

func timeToString(t time.Time) string {
	return t.Format(time.RFC3339)
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}

func mapAttendanceToResponse(a attendance.Attendance) attendance.AttendanceResponse {
	resp := attendance.AttendanceResponse{
		ID:                a.ID,
		EmployeeID:        a.EmployeeID,
		EmployeeName:      a.EmployeeName,
		Date:              a.Date.Format("2006-01-02"),
		ClockIn:           timePtrToString(a.ClockIn),
		ClockInLocation:   a.ClockInLocation,
		ClockOut:          timePtrToString(a.ClockOut),
		ClockOutLocation:  a.ClockOutLocation,
		WorkScheduleHours: a.WorkScheduleHours,
		PaidTime:          duration.FormatClock(a.PaidTime),
		Deficit:           duration.FormatSigned(a.Deficit()),
		Overtime:          duration.FormatSigned(a.Overtime()),
		OvertimeSeconds:   a.OvertimeSeconds,
		Notes:             a.Notes,
		Status:            a.Status,
		CreatedAt:         timeToString(a.CreatedAt),
		UpdatedAt:         timeToString(a.UpdatedAt),
	}
	if lt := a.LoggedTime(); lt != nil {
		formatted := duration.FormatClock(*lt)
		resp.LoggedTime = &formatted
	}
	return resp
}

func mapAdjustmentToResponse(adj attendance.AttendanceAdjustment) attendance.AdjustmentResponse {
	resp := attendance.AdjustmentResponse{
		ID:           adj.ID,
		AttendanceID: adj.AttendanceID,
		PerformedBy:  adj.PerformedBy,
		NewPaidTime:  duration.FormatClock(adj.NewPaidTime),
		Notes:        adj.Notes,
		CreatedAt:    timeToString(adj.CreatedAt),
	}
	if adj.PreviousPaidTime != nil {
		formatted := duration.FormatClock(*adj.PreviousPaidTime)
		resp.PreviousPaidTime = &formatted
	}
	return resp
}

// resolveDate parses an optional YYYY-MM-DD string, defaulting to today in
// the configured timezone.
func (s *AttendanceServiceImpl) resolveDate(dateStr *string, now time.Time) time.Time {
	if dateStr != nil && *dateStr != "" {
		if d, ok := validator.IsValidDate(*dateStr); ok {
			return d
		}
	}
	local := now.In(s.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *AttendanceServiceImpl) resolveTimestamp(tsStr *string, now time.Time) time.Time {
	if tsStr != nil && *tsStr != "" {
		if t, ok := validator.IsValidDateTime(*tsStr); ok {
			return t
		}
	}
	return now
}

// ClockIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	employeeID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	req.EmployeeID = employeeID

	return s.openRecord(ctx, req)
}

// ManualEntry implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ManualEntry(ctx context.Context, req attendance.ManualEntryRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	callerID, roles, err := getClaimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	target, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !canManage(callerID, roles, target) {
		return attendance.AttendanceResponse{}, attendance.ErrUnauthorized
	}

	return s.openRecord(ctx, attendance.ClockInRequest{
		EmployeeID: req.EmployeeID,
		Date:       req.Date,
		ClockIn:    req.ClockIn,
		Location:   req.Location,
		Notes:      req.Notes,
	})
}

func (s *AttendanceServiceImpl) openRecord(ctx context.Context, req attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
	now := time.Now().UTC()
	date := s.resolveDate(req.Date, now)
	clockIn := s.resolveTimestamp(req.ClockIn, now)

	record := attendance.Attendance{
		EmployeeID:        req.EmployeeID,
		Date:              date,
		ClockIn:           &clockIn,
		ClockInLocation:   &req.Location,
		WorkScheduleHours: s.scheduleHoursFor(ctx, date),
		Notes:             req.Notes,
		Status:            attendance.StatusPending,
	}

	created, err := s.AttendanceRepository.Create(ctx, record)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return mapAttendanceToResponse(created), nil
}

// ClockOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockOut(ctx context.Context, req attendance.ClockOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	callerID, roles, err := getClaimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := s.AttendanceRepository.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if record.EmployeeID != callerID && !isElevated(roles) && !isLineManager(roles) {
		return attendance.AttendanceResponse{}, attendance.ErrUnauthorized
	}

	if record.ClockOut != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyClockedOut
	}

	clockOut, _ := validator.IsValidDateTime(req.ClockOut)
	if record.ClockIn != nil && clockOut.Before(*record.ClockIn) {
		return attendance.AttendanceResponse{}, attendance.ErrClockOutBeforeIn
	}

	record.ClockOut = &clockOut
	if req.Location != nil && *req.Location != "" {
		record.ClockOutLocation = req.Location
	}
	if req.Notes != nil {
		record.Notes = req.Notes
	}

	if err := s.AttendanceRepository.Update(ctx, record); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	return mapAttendanceToResponse(record), nil
}

// DeviceScan implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) DeviceScan(ctx context.Context, req attendance.DeviceScanRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByDeviceToken(ctx, req.DeviceToken)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrUnknownDevice
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to resolve device token: %w", err)
	}

	now := time.Now().UTC()
	ts := s.resolveTimestamp(req.Timestamp, now)
	local := ts.In(s.loc)
	date := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)

	record, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, emp.ID, date)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to look up attendance for scan: %w", err)
	}

	// First scan of the day opens a record, the second closes it, any
	// further scan fails.
	if record == nil {
		location := req.Location
		created, err := s.AttendanceRepository.Create(ctx, attendance.Attendance{
			EmployeeID:        emp.ID,
			Date:              date,
			ClockIn:           &ts,
			ClockInLocation:   &location,
			WorkScheduleHours: s.scheduleHoursFor(ctx, date),
			Status:            attendance.StatusPending,
		})
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		return mapAttendanceToResponse(created), nil
	}

	if record.ClockOut != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyClockedOut
	}

	if record.ClockIn != nil && ts.Before(*record.ClockIn) {
		return attendance.AttendanceResponse{}, attendance.ErrClockOutBeforeIn
	}

	record.ClockOut = &ts
	if req.Location != "" {
		record.ClockOutLocation = &req.Location
	}
	if err := s.AttendanceRepository.Update(ctx, *record); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to close attendance on scan: %w", err)
	}

	return mapAttendanceToResponse(*record), nil
}

// AdjustPaidTime implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) AdjustPaidTime(ctx context.Context, req attendance.AdjustPaidTimeRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	callerID, roles, err := getClaimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	newPaid, err := duration.Parse(req.PaidTime)
	if err != nil {
		return attendance.AttendanceResponse{}, validator.ValidationErrors{{
			Field:   "paid_time",
			Message: "paid_time must be an ISO-8601 duration or HH:MM[:SS]",
		}}
	}

	record, err := s.AttendanceRepository.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	target, err := s.EmployeeRepository.GetByID(ctx, record.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !canManage(callerID, roles, target) {
		return attendance.AttendanceResponse{}, attendance.ErrUnauthorized
	}

	windowDays := s.policySnapshot(ctx).EditWindowDays()
	today := time.Now().In(s.loc)
	todayDate := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	if int(todayDate.Sub(record.Date).Hours()/24) > windowDays {
		return attendance.AttendanceResponse{}, attendance.ErrEditWindowExceeded
	}

	prevPaid := record.PaidTime
	prevStatus := record.Status

	record.PaidTime = newPaid
	// Adjustments always require re-approval.
	record.Status = attendance.StatusPending
	record.OvertimeSeconds = record.ComputedOvertimeSeconds()

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.AttendanceRepository.Update(txCtx, record); err != nil {
			return fmt.Errorf("failed to update attendance: %w", err)
		}
		_, err := s.AttendanceRepository.CreateAdjustment(txCtx, attendance.AttendanceAdjustment{
			AttendanceID:     record.ID,
			PerformedBy:      &callerID,
			PreviousPaidTime: &prevPaid,
			NewPaidTime:      newPaid,
			Notes:            req.Notes,
		})
		if err != nil {
			return fmt.Errorf("failed to create adjustment: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	s.auditService.Log(ctx, audit.ActionAttendanceAdjusted, &callerID,
		"paid time adjusted for attendance "+record.ID,
		map[string]any{"paid_time": duration.FormatClock(prevPaid), "status": prevStatus},
		map[string]any{"paid_time": duration.FormatClock(newPaid), "status": record.Status},
	)

	return mapAttendanceToResponse(record), nil
}

// Approve implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Approve(ctx context.Context, req attendance.ApproveAttendanceRequest) (attendance.AttendanceResponse, error) {
	return s.setStatus(ctx, req.ID, attendance.StatusApproved, audit.ActionAttendanceApproved)
}

// RevokeApproval implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) RevokeApproval(ctx context.Context, req attendance.RevokeApprovalRequest) (attendance.AttendanceResponse, error) {
	return s.setStatus(ctx, req.ID, attendance.StatusPending, audit.ActionAttendanceRevoked)
}

func (s *AttendanceServiceImpl) setStatus(ctx context.Context, id, target, action string) (attendance.AttendanceResponse, error) {
	callerID, roles, err := getClaimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := s.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, record.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !canManage(callerID, roles, emp) {
		return attendance.AttendanceResponse{}, attendance.ErrUnauthorized
	}

	// Idempotent: already in the target state is still success.
	if record.Status == target {
		return mapAttendanceToResponse(record), nil
	}

	previous := record.Status
	record.Status = target
	if err := s.AttendanceRepository.Update(ctx, record); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance status: %w", err)
	}

	s.auditService.Log(ctx, action, &callerID,
		"attendance "+record.ID+" status changed",
		map[string]any{"status": previous},
		map[string]any{"status": record.Status},
	)

	return mapAttendanceToResponse(record), nil
}

// GetAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	callerID, roles, err := getClaimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := s.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if record.EmployeeID != callerID && !isElevated(roles) && !isLineManager(roles) {
		return attendance.AttendanceResponse{}, attendance.ErrUnauthorized
	}

	return mapAttendanceToResponse(record), nil
}

// ListAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	callerID, roles, err := getClaimsFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	// Regular employees only see their own records.
	if !isElevated(roles) && !isLineManager(roles) {
		filter.EmployeeID = &callerID
	}

	records, total, err := s.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, mapAttendanceToResponse(rec))
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages,
		Attendances: responses,
	}, nil
}

// ListAdjustments implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListAdjustments(ctx context.Context, attendanceID string) ([]attendance.AdjustmentResponse, error) {
	callerID, roles, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	record, err := s.AttendanceRepository.GetByID(ctx, attendanceID)
	if err != nil {
		return nil, err
	}
	if record.EmployeeID != callerID && !isElevated(roles) && !isLineManager(roles) {
		return nil, attendance.ErrUnauthorized
	}

	adjustments, err := s.AttendanceRepository.ListAdjustments(ctx, attendanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list adjustments: %w", err)
	}

	responses := make([]attendance.AdjustmentResponse, 0, len(adjustments))
	for _, adj := range adjustments {
		responses = append(responses, mapAdjustmentToResponse(adj))
	}
	return responses, nil
}

// resolveSummaryWindow applies the default window: first of the current
// month through today.
func (s *AttendanceServiceImpl) resolveSummaryWindow(query *attendance.SummaryQuery) error {
	today := time.Now().In(s.loc)
	if query.StartDate == "" {
		query.StartDate = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
	}
	if query.EndDate == "" {
		query.EndDate = today.Format("2006-01-02")
	}
	return query.Validate()
}

// MySummary implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MySummary(ctx context.Context, query attendance.SummaryQuery) (attendance.SelfSummaryResponse, error) {
	if err := s.resolveSummaryWindow(&query); err != nil {
		return attendance.SelfSummaryResponse{}, err
	}

	employeeID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return attendance.SelfSummaryResponse{}, err
	}

	start, _ := validator.IsValidDate(query.StartDate)
	end, _ := validator.IsValidDate(query.EndDate)

	records, err := s.AttendanceRepository.ListByEmployeeAndRange(ctx, employeeID, start, end)
	if err != nil {
		return attendance.SelfSummaryResponse{}, fmt.Errorf("failed to load attendance for summary: %w", err)
	}

	totals := attendance.Summarize(records)

	// Self view: overtime and deficit computed independently.
	overtime := totals.TotalPaid - totals.TotalScheduled
	deficit := totals.TotalScheduled - totals.TotalPaid

	return attendance.SelfSummaryResponse{
		EmployeeID:       employeeID,
		StartDate:        query.StartDate,
		EndDate:          query.EndDate,
		Days:             totals.Days,
		TotalLogged:      duration.FormatSigned(totals.TotalLogged),
		TotalPaid:        duration.FormatSigned(totals.TotalPaid),
		TotalScheduled:   duration.FormatSigned(totals.TotalScheduled),
		Overtime:         duration.FormatSigned(overtime),
		Deficit:          duration.FormatSigned(deficit),
		PendingApprovals: totals.PendingApprovals,
	}, nil
}

// TeamSummary implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) TeamSummary(ctx context.Context, query attendance.SummaryQuery) (attendance.TeamSummaryResponse, error) {
	if err := s.resolveSummaryWindow(&query); err != nil {
		return attendance.TeamSummaryResponse{}, err
	}

	callerID, roles, err := getClaimsFromContext(ctx)
	if err != nil {
		return attendance.TeamSummaryResponse{}, err
	}

	var team []employee.Employee
	switch {
	case isElevated(roles):
		officeFilter := ""
		if query.Office != nil {
			officeFilter = *query.Office
		}
		team, err = s.EmployeeRepository.ListByOffice(ctx, officeFilter)
	case isLineManager(roles):
		team, err = s.EmployeeRepository.ListDirectReports(ctx, callerID)
		if err == nil && query.Office != nil && *query.Office != "" {
			team = filterByOffice(team, *query.Office)
		}
	default:
		return attendance.TeamSummaryResponse{}, attendance.ErrUnauthorized
	}
	if err != nil {
		return attendance.TeamSummaryResponse{}, fmt.Errorf("failed to resolve team: %w", err)
	}

	start, _ := validator.IsValidDate(query.StartDate)
	end, _ := validator.IsValidDate(query.EndDate)

	rows := make([]attendance.TeamSummaryRow, 0, len(team))
	for _, member := range team {
		records, err := s.AttendanceRepository.ListByEmployeeAndRange(ctx, member.ID, start, end)
		if err != nil {
			return attendance.TeamSummaryResponse{}, fmt.Errorf("failed to load attendance for %s: %w", member.ID, err)
		}
		totals := attendance.Summarize(records)

		// Team view: overtime first, deficit as its negation.
		overtime := totals.TotalPaid - totals.TotalScheduled
		rows = append(rows, attendance.TeamSummaryRow{
			EmployeeID:     member.ID,
			EmployeeName:   member.FullName,
			Office:         member.Office,
			Days:           totals.Days,
			TotalPaid:      duration.FormatSigned(totals.TotalPaid),
			TotalScheduled: duration.FormatSigned(totals.TotalScheduled),
			Overtime:       duration.FormatSigned(overtime),
			Deficit:        duration.FormatSigned(-overtime),
		})
	}

	return attendance.TeamSummaryResponse{
		StartDate: query.StartDate,
		EndDate:   query.EndDate,
		Rows:      rows,
	}, nil
}

// RecomputeDailyOvertime implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) RecomputeDailyOvertime(ctx context.Context, dateStr string) (int, error) {
	var date time.Time
	if dateStr != "" {
		parsed, ok := validator.IsValidDate(dateStr)
		if !ok {
			return 0, validator.ValidationErrors{{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			}}
		}
		date = parsed
	} else {
		today := time.Now().In(s.loc)
		date = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	}

	records, err := s.AttendanceRepository.ListByDate(ctx, date)
	if err != nil {
		return 0, fmt.Errorf("failed to load attendance for %s: %w", date.Format("2006-01-02"), err)
	}

	updated := 0
	for _, rec := range records {
		fresh := rec.ComputedOvertimeSeconds()
		if fresh == rec.OvertimeSeconds {
			continue
		}
		if err := s.AttendanceRepository.UpdateOvertimeSeconds(ctx, rec.ID, fresh); err != nil {
			return updated, fmt.Errorf("failed to update overtime for %s: %w", rec.ID, err)
		}
		updated++
	}
	return updated, nil
}

func filterByOffice(team []employee.Employee, office string) []employee.Employee {
	needle := strings.ToLower(office)
	filtered := team[:0]
	for _, member := range team {
		if member.Office != nil && strings.Contains(strings.ToLower(*member.Office), needle) {
			filtered = append(filtered, member)
		}
	}
	return filtered
}
