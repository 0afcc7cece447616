package attendance

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/corehr/hr-payroll-go/internal/domain/attendance"
	"github.com/corehr/hr-payroll-go/internal/domain/audit"
	"github.com/corehr/hr-payroll-go/internal/domain/employee"
	auditService "github.com/corehr/hr-payroll-go/internal/service/audit"
	policyService "github.com/corehr/hr-payroll-go/internal/service/policy"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ========== FAKES ==========

type fakeAttendanceRepo struct {
	records     map[string]attendance.Attendance
	adjustments []attendance.AttendanceAdjustment
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]attendance.Attendance)}
}

func (r *fakeAttendanceRepo) Create(_ context.Context, rec attendance.Attendance) (attendance.Attendance, error) {
	for _, existing := range r.records {
		if existing.EmployeeID == rec.EmployeeID && existing.Date.Equal(rec.Date) {
			return attendance.Attendance{}, attendance.ErrAlreadyClockedIn
		}
	}
	rec.ID = uuid.NewString()
	rec.CreatedAt = time.Now().UTC()
	rec.UpdatedAt = rec.CreatedAt
	r.records[rec.ID] = rec
	return rec, nil
}

func (r *fakeAttendanceRepo) GetByID(_ context.Context, id string) (attendance.Attendance, error) {
	rec, ok := r.records[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return rec, nil
}

func (r *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	for _, rec := range r.records {
		if rec.EmployeeID == employeeID && rec.Date.Equal(date) {
			found := rec
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeAttendanceRepo) Update(_ context.Context, rec attendance.Attendance) error {
	if _, ok := r.records[rec.ID]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	rec.UpdatedAt = time.Now().UTC()
	r.records[rec.ID] = rec
	return nil
}

func (r *fakeAttendanceRepo) List(_ context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	var out []attendance.Attendance
	for _, rec := range r.records {
		if filter.EmployeeID != nil && rec.EmployeeID != *filter.EmployeeID {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, int64(len(out)), nil
}

func (r *fakeAttendanceRepo) ListByEmployeeAndRange(_ context.Context, employeeID string, start, end time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, rec := range r.records {
		if rec.EmployeeID != employeeID || rec.Date.Before(start) || rec.Date.After(end) {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *fakeAttendanceRepo) ListByDate(_ context.Context, date time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, rec := range r.records {
		if rec.Date.Equal(date) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeAttendanceRepo) UpdateOvertimeSeconds(_ context.Context, id string, seconds int64) error {
	rec, ok := r.records[id]
	if !ok {
		return attendance.ErrAttendanceNotFound
	}
	rec.OvertimeSeconds = seconds
	r.records[id] = rec
	return nil
}

func (r *fakeAttendanceRepo) CreateAdjustment(_ context.Context, adj attendance.AttendanceAdjustment) (attendance.AttendanceAdjustment, error) {
	adj.ID = uuid.NewString()
	adj.CreatedAt = time.Now().UTC()
	r.adjustments = append([]attendance.AttendanceAdjustment{adj}, r.adjustments...)
	return adj, nil
}

func (r *fakeAttendanceRepo) ListAdjustments(_ context.Context, attendanceID string) ([]attendance.AttendanceAdjustment, error) {
	var out []attendance.AttendanceAdjustment
	for _, adj := range r.adjustments {
		if adj.AttendanceID == attendanceID {
			out = append(out, adj)
		}
	}
	return out, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func newFakeEmployeeRepo(employees ...employee.Employee) *fakeEmployeeRepo {
	r := &fakeEmployeeRepo{employees: make(map[string]employee.Employee)}
	for _, emp := range employees {
		r.employees[emp.ID] = emp
	}
	return r
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	emp, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (r *fakeEmployeeRepo) GetByDeviceToken(_ context.Context, token string) (employee.Employee, error) {
	for _, emp := range r.employees {
		if emp.DeviceToken != nil && *emp.DeviceToken == token && emp.Active {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) ListActive(_ context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range r.employees {
		if emp.Active {
			out = append(out, emp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeEmployeeRepo) ListDirectReports(_ context.Context, managerID string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range r.employees {
		if emp.Active && emp.LineManagerID != nil && *emp.LineManagerID == managerID {
			out = append(out, emp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeEmployeeRepo) ListByOffice(_ context.Context, _ string) ([]employee.Employee, error) {
	return r.ListActive(context.Background())
}

type fakeAuditRepo struct {
	entries []audit.Entry
}

func (r *fakeAuditRepo) Create(_ context.Context, entry audit.Entry) error {
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeAuditRepo) List(_ context.Context, action *string, limit int) ([]audit.Entry, error) {
	var out []audit.Entry
	for _, entry := range r.entries {
		if action != nil && entry.Action != *action {
			continue
		}
		out = append(out, entry)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type fakePolicyRepo struct {
	override map[string]any
}

func (r *fakePolicyRepo) GetOverride(_ context.Context, _ string) (map[string]any, error) {
	return r.override, nil
}

func (r *fakePolicyRepo) UpsertOverride(_ context.Context, _ string, doc map[string]any) error {
	r.override = doc
	return nil
}

type passthroughTx struct{}

func (passthroughTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// ========== HELPERS ==========

var testAuth = jwtauth.New("HS256", []byte("test-secret"), nil)

func authedContext(t *testing.T, employeeID string, roles ...string) context.Context {
	t.Helper()
	claims := map[string]interface{}{
		"employee_id": employeeID,
		"type":        "access",
	}
	if len(roles) > 0 {
		claims["roles"] = roles
	}
	token, _, err := testAuth.Encode(claims)
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

type testEnv struct {
	service   attendance.AttendanceService
	repo      *fakeAttendanceRepo
	employees *fakeEmployeeRepo
	audits    *fakeAuditRepo
}

func newTestEnv(employees ...employee.Employee) testEnv {
	attendanceRepo := newFakeAttendanceRepo()
	employeeRepo := newFakeEmployeeRepo(employees...)
	auditRepo := &fakeAuditRepo{}
	auditSvc := auditService.NewAuditService(auditRepo)
	policySvc := policyService.NewPolicyService(&fakePolicyRepo{}, auditSvc)

	svc := NewAttendanceService(attendanceRepo, employeeRepo, policySvc, auditSvc, passthroughTx{}, time.UTC)
	return testEnv{service: svc, repo: attendanceRepo, employees: employeeRepo, audits: auditRepo}
}

func strPtr(s string) *string { return &s }

func testEmployee(id string, managerID *string) employee.Employee {
	return employee.Employee{
		ID:            id,
		FullName:      "Employee " + id,
		LineManagerID: managerID,
		HireDate:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Active:        true,
	}
}

// ========== TESTS ==========

func TestClockInCreatesPendingRecord(t *testing.T) {
	env := newTestEnv(testEmployee("emp-1", nil))
	ctx := authedContext(t, "emp-1")

	resp, err := env.service.ClockIn(ctx, attendance.ClockInRequest{
		Date:     strPtr("2026-08-10"),
		ClockIn:  strPtr("2026-08-10T09:00:00Z"),
		Location: "HQ Lobby",
	})
	require.NoError(t, err)

	assert.Equal(t, "emp-1", resp.EmployeeID)
	assert.Equal(t, "2026-08-10", resp.Date)
	assert.Equal(t, attendance.StatusPending, resp.Status)
	assert.Equal(t, 8, resp.WorkScheduleHours)
	assert.Equal(t, "00:00:00", resp.PaidTime)
	require.NotNil(t, resp.ClockInLocation)
	assert.Equal(t, "HQ Lobby", *resp.ClockInLocation)
}

func TestClockInOnWeeklyOffDayHasZeroSchedule(t *testing.T) {
	env := newTestEnv(testEmployee("emp-1", nil))
	ctx := authedContext(t, "emp-1")

	// 2026-08-15 is a Saturday, a weekly-off day under the default shift
	// policy, so every paid hour counts as overtime.
	resp, err := env.service.ClockIn(ctx, attendance.ClockInRequest{
		Date:     strPtr("2026-08-15"),
		ClockIn:  strPtr("2026-08-15T09:00:00Z"),
		Location: "HQ Lobby",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.WorkScheduleHours)

	closed, err := env.service.ClockOut(ctx, attendance.ClockOutRequest{
		ID:       resp.ID,
		ClockOut: "2026-08-15T13:00:00Z",
	})
	require.NoError(t, err)
	require.NotNil(t, closed.LoggedTime)
	assert.Equal(t, "04:00:00", *closed.LoggedTime)
}

func TestClockInTwiceSameDayConflicts(t *testing.T) {
	env := newTestEnv(testEmployee("emp-1", nil))
	ctx := authedContext(t, "emp-1")

	req := attendance.ClockInRequest{Date: strPtr("2026-08-10"), Location: "HQ"}
	_, err := env.service.ClockIn(ctx, req)
	require.NoError(t, err)

	_, err = env.service.ClockIn(ctx, req)
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)
}

func TestClockInRequiresLocation(t *testing.T) {
	env := newTestEnv(testEmployee("emp-1", nil))
	ctx := authedContext(t, "emp-1")

	_, err := env.service.ClockIn(ctx, attendance.ClockInRequest{Date: strPtr("2026-08-10")})
	assert.Error(t, err)
}

func TestClockOut(t *testing.T) {
	env := newTestEnv(testEmployee("emp-1", nil))
	ctx := authedContext(t, "emp-1")

	created, err := env.service.ClockIn(ctx, attendance.ClockInRequest{
		Date:     strPtr("2026-08-10"),
		ClockIn:  strPtr("2026-08-10T09:00:00Z"),
		Location: "HQ",
	})
	require.NoError(t, err)

	t.Run("before clock-in rejected", func(t *testing.T) {
		_, err := env.service.ClockOut(ctx, attendance.ClockOutRequest{
			ID:       created.ID,
			ClockOut: "2026-08-10T08:00:00Z",
		})
		assert.ErrorIs(t, err, attendance.ErrClockOutBeforeIn)
	})

	t.Run("closes the record", func(t *testing.T) {
		resp, err := env.service.ClockOut(ctx, attendance.ClockOutRequest{
			ID:       created.ID,
			ClockOut: "2026-08-10T17:30:00Z",
			Location: strPtr("HQ Gate"),
		})
		require.NoError(t, err)
		require.NotNil(t, resp.LoggedTime)
		assert.Equal(t, "08:30:00", *resp.LoggedTime)
		require.NotNil(t, resp.ClockOutLocation)
		assert.Equal(t, "HQ Gate", *resp.ClockOutLocation)
	})

	t.Run("second clock-out conflicts", func(t *testing.T) {
		_, err := env.service.ClockOut(ctx, attendance.ClockOutRequest{
			ID:       created.ID,
			ClockOut: "2026-08-10T18:00:00Z",
		})
		assert.ErrorIs(t, err, attendance.ErrAlreadyClockedOut)
	})
}

func TestClockOutOnSomeoneElsesRecordForbidden(t *testing.T) {
	env := newTestEnv(testEmployee("emp-1", nil), testEmployee("emp-2", nil))

	created, err := env.service.ClockIn(authedContext(t, "emp-1"), attendance.ClockInRequest{
		Date:     strPtr("2026-08-10"),
		ClockIn:  strPtr("2026-08-10T09:00:00Z"),
		Location: "HQ",
	})
	require.NoError(t, err)

	_, err = env.service.ClockOut(authedContext(t, "emp-2"), attendance.ClockOutRequest{
		ID:       created.ID,
		ClockOut: "2026-08-10T17:00:00Z",
	})
	assert.ErrorIs(t, err, attendance.ErrUnauthorized)
}

func TestDeviceScanToggles(t *testing.T) {
	emp := testEmployee("emp-1", nil)
	emp.DeviceToken = strPtr("badge-123")
	env := newTestEnv(emp)
	ctx := context.Background()

	first, err := env.service.DeviceScan(ctx, attendance.DeviceScanRequest{
		DeviceToken: "badge-123",
		Location:    "Turnstile A",
		Timestamp:   strPtr("2026-08-10T08:55:00Z"),
	})
	require.NoError(t, err)
	require.NotNil(t, first.ClockIn)
	assert.Nil(t, first.ClockOut)

	second, err := env.service.DeviceScan(ctx, attendance.DeviceScanRequest{
		DeviceToken: "badge-123",
		Location:    "Turnstile B",
		Timestamp:   strPtr("2026-08-10T17:05:00Z"),
	})
	require.NoError(t, err)
	require.NotNil(t, second.ClockOut)

	_, err = env.service.DeviceScan(ctx, attendance.DeviceScanRequest{
		DeviceToken: "badge-123",
		Timestamp:   strPtr("2026-08-10T18:00:00Z"),
	})
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedOut)
}

func TestDeviceScanUnknownToken(t *testing.T) {
	env := newTestEnv(testEmployee("emp-1", nil))

	_, err := env.service.DeviceScan(context.Background(), attendance.DeviceScanRequest{
		DeviceToken: "no-such-badge",
	})
	assert.ErrorIs(t, err, attendance.ErrUnknownDevice)
}

func TestManualEntryRequiresManagementRights(t *testing.T) {
	env := newTestEnv(
		testEmployee("mgr-1", nil),
		testEmployee("emp-1", strPtr("mgr-1")),
		testEmployee("emp-2", nil),
	)

	req := attendance.ManualEntryRequest{
		EmployeeID: "emp-1",
		Date:       strPtr("2026-08-10"),
		Location:   "HQ",
	}

	resp, err := env.service.ManualEntry(authedContext(t, "mgr-1", "line_manager"), req)
	require.NoError(t, err)
	assert.Equal(t, "emp-1", resp.EmployeeID)

	req.EmployeeID = "emp-2"
	req.Date = strPtr("2026-08-11")
	_, err = env.service.ManualEntry(authedContext(t, "mgr-1", "line_manager"), req)
	assert.ErrorIs(t, err, attendance.ErrUnauthorized)
}

func TestAdjustPaidTime(t *testing.T) {
	env := newTestEnv(testEmployee("mgr-1", nil), testEmployee("emp-1", strPtr("mgr-1")))
	today := time.Now().UTC().Format("2006-01-02")

	created, err := env.service.ClockIn(authedContext(t, "emp-1"), attendance.ClockInRequest{
		Date:     strPtr(today),
		Location: "HQ",
	})
	require.NoError(t, err)

	resp, err := env.service.AdjustPaidTime(authedContext(t, "mgr-1", "line_manager"), attendance.AdjustPaidTimeRequest{
		ID:       created.ID,
		PaidTime: "PT8H30M",
		Notes:    strPtr("forgot to clock out"),
	})
	require.NoError(t, err)
	assert.Equal(t, "08:30:00", resp.PaidTime)
	assert.Equal(t, attendance.StatusPending, resp.Status)
	assert.Equal(t, int64(1800), resp.OvertimeSeconds)

	adjustments, err := env.service.ListAdjustments(authedContext(t, "emp-1"), created.ID)
	require.NoError(t, err)
	require.Len(t, adjustments, 1)
	assert.Equal(t, "08:30:00", adjustments[0].NewPaidTime)
	require.NotNil(t, adjustments[0].PreviousPaidTime)
	assert.Equal(t, "00:00:00", *adjustments[0].PreviousPaidTime)

	require.Len(t, env.audits.entries, 1)
	assert.Equal(t, audit.ActionAttendanceAdjusted, env.audits.entries[0].Action)
}

func TestAdjustPaidTimeForbiddenForRegularEmployee(t *testing.T) {
	env := newTestEnv(testEmployee("emp-1", nil), testEmployee("emp-2", nil))
	today := time.Now().UTC().Format("2006-01-02")

	created, err := env.service.ClockIn(authedContext(t, "emp-1"), attendance.ClockInRequest{
		Date:     strPtr(today),
		Location: "HQ",
	})
	require.NoError(t, err)

	_, err = env.service.AdjustPaidTime(authedContext(t, "emp-2"), attendance.AdjustPaidTimeRequest{
		ID:       created.ID,
		PaidTime: "08:00",
	})
	assert.ErrorIs(t, err, attendance.ErrUnauthorized)
}

func TestAdjustPaidTimeOutsideEditWindow(t *testing.T) {
	env := newTestEnv(testEmployee("emp-1", nil))
	oldDate := time.Now().UTC().AddDate(0, 0, -40).Format("2006-01-02")

	created, err := env.service.ClockIn(authedContext(t, "emp-1"), attendance.ClockInRequest{
		Date:     strPtr(oldDate),
		Location: "HQ",
	})
	require.NoError(t, err)

	_, err = env.service.AdjustPaidTime(authedContext(t, "emp-1", "hr"), attendance.AdjustPaidTimeRequest{
		ID:       created.ID,
		PaidTime: "08:00",
	})
	assert.ErrorIs(t, err, attendance.ErrEditWindowExceeded)
}

func TestApproveAndRevokeAreIdempotent(t *testing.T) {
	env := newTestEnv(testEmployee("emp-1", nil))
	hrCtx := authedContext(t, "hr-1", "hr")

	created, err := env.service.ClockIn(authedContext(t, "emp-1"), attendance.ClockInRequest{
		Date:     strPtr("2026-08-10"),
		Location: "HQ",
	})
	require.NoError(t, err)

	approved, err := env.service.Approve(hrCtx, attendance.ApproveAttendanceRequest{ID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusApproved, approved.Status)

	// Second approval is a no-op and writes no extra audit entry.
	approved, err = env.service.Approve(hrCtx, attendance.ApproveAttendanceRequest{ID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusApproved, approved.Status)
	assert.Len(t, env.audits.entries, 1)

	revoked, err := env.service.RevokeApproval(hrCtx, attendance.RevokeApprovalRequest{ID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPending, revoked.Status)

	revoked, err = env.service.RevokeApproval(hrCtx, attendance.RevokeApprovalRequest{ID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPending, revoked.Status)
	assert.Len(t, env.audits.entries, 2)
}

func TestListAttendanceScopedToSelf(t *testing.T) {
	env := newTestEnv(testEmployee("emp-1", nil), testEmployee("emp-2", nil))

	_, err := env.service.ClockIn(authedContext(t, "emp-1"), attendance.ClockInRequest{
		Date: strPtr("2026-08-10"), Location: "HQ",
	})
	require.NoError(t, err)
	_, err = env.service.ClockIn(authedContext(t, "emp-2"), attendance.ClockInRequest{
		Date: strPtr("2026-08-10"), Location: "HQ",
	})
	require.NoError(t, err)

	// Regular employees only ever see their own rows, whatever they ask for.
	result, err := env.service.ListAttendance(authedContext(t, "emp-1"), attendance.AttendanceFilter{
		EmployeeID: strPtr("emp-2"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.TotalCount)
	require.Len(t, result.Attendances, 1)
	assert.Equal(t, "emp-1", result.Attendances[0].EmployeeID)

	// Elevated callers see everyone.
	result, err = env.service.ListAttendance(authedContext(t, "hr-1", "hr"), attendance.AttendanceFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.TotalCount)
}

func TestMySummary(t *testing.T) {
	env := newTestEnv(testEmployee("emp-1", nil))
	ctx := authedContext(t, "emp-1")

	seed := func(date string, paid time.Duration, status string) {
		_, err := env.repo.Create(context.Background(), attendance.Attendance{
			EmployeeID:        "emp-1",
			Date:              mustDate(t, date),
			WorkScheduleHours: 8,
			PaidTime:          paid,
			Status:            status,
		})
		require.NoError(t, err)
	}
	seed("2026-08-10", 8*time.Hour, attendance.StatusApproved)
	seed("2026-08-11", 9*time.Hour, attendance.StatusPending)

	resp, err := env.service.MySummary(ctx, attendance.SummaryQuery{
		StartDate: "2026-08-01",
		EndDate:   "2026-08-31",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Days)
	assert.Equal(t, "+17:00:00", resp.TotalPaid)
	assert.Equal(t, "+16:00:00", resp.TotalScheduled)
	assert.Equal(t, "+01:00:00", resp.Overtime)
	assert.Equal(t, "-01:00:00", resp.Deficit)
	assert.Equal(t, 1, resp.PendingApprovals)
}

func TestTeamSummaryForLineManager(t *testing.T) {
	env := newTestEnv(
		testEmployee("mgr-1", nil),
		testEmployee("emp-1", strPtr("mgr-1")),
		testEmployee("emp-2", nil),
	)

	_, err := env.repo.Create(context.Background(), attendance.Attendance{
		EmployeeID:        "emp-1",
		Date:              mustDate(t, "2026-08-10"),
		WorkScheduleHours: 8,
		PaidTime:          10 * time.Hour,
		Status:            attendance.StatusApproved,
	})
	require.NoError(t, err)

	resp, err := env.service.TeamSummary(authedContext(t, "mgr-1", "line_manager"), attendance.SummaryQuery{
		StartDate: "2026-08-01",
		EndDate:   "2026-08-31",
	})
	require.NoError(t, err)

	require.Len(t, resp.Rows, 1)
	assert.Equal(t, "emp-1", resp.Rows[0].EmployeeID)
	assert.Equal(t, "+02:00:00", resp.Rows[0].Overtime)
	assert.Equal(t, "-02:00:00", resp.Rows[0].Deficit)
}

func TestTeamSummaryForbiddenForRegularEmployee(t *testing.T) {
	env := newTestEnv(testEmployee("emp-1", nil))

	_, err := env.service.TeamSummary(authedContext(t, "emp-1"), attendance.SummaryQuery{
		StartDate: "2026-08-01",
		EndDate:   "2026-08-31",
	})
	assert.ErrorIs(t, err, attendance.ErrUnauthorized)
}

func TestRecomputeDailyOvertime(t *testing.T) {
	env := newTestEnv(testEmployee("emp-1", nil), testEmployee("emp-2", nil))
	date := mustDate(t, "2026-08-10")

	stale, err := env.repo.Create(context.Background(), attendance.Attendance{
		EmployeeID:        "emp-1",
		Date:              date,
		WorkScheduleHours: 8,
		PaidTime:          9 * time.Hour,
		OvertimeSeconds:   0, // stale cache
		Status:            attendance.StatusApproved,
	})
	require.NoError(t, err)

	_, err = env.repo.Create(context.Background(), attendance.Attendance{
		EmployeeID:        "emp-2",
		Date:              date,
		WorkScheduleHours: 8,
		PaidTime:          8 * time.Hour,
		OvertimeSeconds:   0, // already correct
		Status:            attendance.StatusApproved,
	})
	require.NoError(t, err)

	updated, err := env.service.RecomputeDailyOvertime(context.Background(), "2026-08-10")
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	refreshed, err := env.repo.GetByID(context.Background(), stale.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3600), refreshed.OvertimeSeconds)

	// Second run touches nothing.
	updated, err = env.service.RecomputeDailyOvertime(context.Background(), "2026-08-10")
	require.NoError(t, err)
	assert.Equal(t, 0, updated)
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}
