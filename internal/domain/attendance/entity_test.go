package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestLoggedTime(t *testing.T) {
	in := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	out := time.Date(2026, 3, 2, 17, 30, 0, 0, time.UTC)

	a := Attendance{ClockIn: timePtr(in), ClockOut: timePtr(out)}
	lt := a.LoggedTime()
	require.NotNil(t, lt)
	assert.Equal(t, 8*time.Hour+30*time.Minute, *lt)

	assert.Nil(t, Attendance{ClockIn: timePtr(in)}.LoggedTime())
	assert.Nil(t, Attendance{}.LoggedTime())
}

func TestOvertimeAndDeficitAreNegatives(t *testing.T) {
	tests := []struct {
		name     string
		paid     time.Duration
		schedule int
		overtime time.Duration
	}{
		{"worked over", 9*time.Hour + 15*time.Minute, 8, time.Hour + 15*time.Minute},
		{"worked under", 6 * time.Hour, 8, -2 * time.Hour},
		{"exact", 8 * time.Hour, 8, 0},
		{"no paid time", 0, 8, -8 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Attendance{WorkScheduleHours: tt.schedule, PaidTime: tt.paid}
			assert.Equal(t, tt.overtime, a.Overtime())
			assert.Equal(t, -tt.overtime, a.Deficit())
		})
	}
}

func TestComputedOvertimeSeconds(t *testing.T) {
	a := Attendance{WorkScheduleHours: 8, PaidTime: 9 * time.Hour}
	assert.Equal(t, int64(3600), a.ComputedOvertimeSeconds())

	b := Attendance{WorkScheduleHours: 8, PaidTime: 7*time.Hour + 30*time.Minute}
	assert.Equal(t, int64(-1800), b.ComputedOvertimeSeconds())

	c := Attendance{WorkScheduleHours: 8}
	assert.Equal(t, int64(-28800), c.ComputedOvertimeSeconds())
}

func TestSummarize(t *testing.T) {
	in := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	out := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)

	records := []Attendance{
		{WorkScheduleHours: 8, PaidTime: 9 * time.Hour, ClockIn: timePtr(in), ClockOut: timePtr(out), Status: StatusApproved},
		{WorkScheduleHours: 8, PaidTime: 7 * time.Hour, Status: StatusPending},
		{WorkScheduleHours: 8, ClockIn: timePtr(in), Status: StatusPending}, // open record
	}

	s := Summarize(records)
	assert.Equal(t, 3, s.Days)
	assert.Equal(t, 9*time.Hour, s.TotalLogged)
	assert.Equal(t, 24*time.Hour, s.TotalScheduled)
	assert.Equal(t, 16*time.Hour, s.TotalPaid)
	assert.Equal(t, -8*time.Hour, s.TotalOvertime)
	assert.Equal(t, 8*time.Hour, s.TotalDeficit)
	assert.Equal(t, 2, s.PendingApprovals)
}

// The self summary derives overtime and deficit independently; the team
// summary derives deficit by negating overtime. Both conventions must agree.
func TestSummarySignConventionsAgree(t *testing.T) {
	records := []Attendance{
		{WorkScheduleHours: 8, PaidTime: 10 * time.Hour},
		{WorkScheduleHours: 8, PaidTime: 5 * time.Hour},
	}

	s := Summarize(records)
	assert.Equal(t, s.TotalPaid-s.TotalScheduled, s.TotalOvertime)
	assert.Equal(t, s.TotalScheduled-s.TotalPaid, s.TotalDeficit)
	assert.Equal(t, -s.TotalOvertime, s.TotalDeficit)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0, s.Days)
	assert.Equal(t, time.Duration(0), s.TotalOvertime)
	assert.Equal(t, time.Duration(0), s.TotalDeficit)
}
