package policy

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultOrgID is the single-tenant organization the core operates on.
const DefaultOrgID = "1"

// Top-level sections of the policy document. The shape mirrors the frontend
// policy editor, so keys are camelCase.
const (
	SectionOvertime        = "overtimePolicy"
	SectionShift           = "shiftPolicy"
	SectionSalaryStructure = "salaryStructurePolicy"
	SectionAttendance      = "attendancePolicy"
)

// DefaultDocument returns a fresh copy of the compiled-in policy defaults.
// Callers may mutate the result freely.
func DefaultDocument() map[string]any {
	return map[string]any{
		SectionOvertime: map[string]any{
			"overtimeRate":       1.5,
			"weekendRate":        2,
			"holidayRate":        2,
			"minOvertimeMinutes": 30,
		},
		SectionShift: map[string]any{
			"weeklyOff":         []any{"Sat", "Sun"},
			"standardWorkHours": 8,
		},
		SectionSalaryStructure: map[string]any{
			"baseSalaryTemplate": map[string]any{
				"gradeA": 3000,
				"gradeB": 2400,
				"gradeC": 1800,
			},
			"allowancePercent": 20,
			"bonusPercent":     5,
		},
		SectionAttendance: map[string]any{
			"editWindowDays": 31,
		},
	}
}

// IsKnownSection reports whether name is a top-level document section.
func IsKnownSection(name string) bool {
	switch name {
	case SectionOvertime, SectionShift, SectionSalaryStructure, SectionAttendance:
		return true
	}
	return false
}

var dayToWeekday = map[string]time.Weekday{
	"Mon": time.Monday,
	"Tue": time.Tuesday,
	"Wed": time.Wednesday,
	"Thu": time.Thursday,
	"Fri": time.Friday,
	"Sat": time.Saturday,
	"Sun": time.Sunday,
}

// Snapshot wraps a resolved policy document with typed accessors. Every
// accessor falls back to the compiled-in default when the stored value is
// missing or malformed.
type Snapshot struct {
	doc map[string]any
}

func NewSnapshot(doc map[string]any) Snapshot {
	return Snapshot{doc: doc}
}

func (s Snapshot) section(name string) map[string]any {
	sec, _ := s.doc[name].(map[string]any)
	return sec
}

// EditWindowDays is the max age in days for paid-time adjustments.
func (s Snapshot) EditWindowDays() int {
	return intOr(s.section(SectionAttendance)["editWindowDays"], 31)
}

// StandardWorkHours is the scheduled hours per working day.
func (s Snapshot) StandardWorkHours() int {
	return intOr(s.section(SectionShift)["standardWorkHours"], 8)
}

// OvertimeRate is the weekday overtime multiplier.
func (s Snapshot) OvertimeRate() decimal.Decimal {
	return decimalOr(s.section(SectionOvertime)["overtimeRate"], decimal.NewFromFloat(1.5))
}

// WeekendRate is the weekend overtime multiplier.
func (s Snapshot) WeekendRate() decimal.Decimal {
	return decimalOr(s.section(SectionOvertime)["weekendRate"], decimal.NewFromInt(2))
}

// HolidayRate is the public-holiday overtime multiplier.
func (s Snapshot) HolidayRate() decimal.Decimal {
	return decimalOr(s.section(SectionOvertime)["holidayRate"], decimal.NewFromInt(2))
}

// MinOvertimeMinutes is the threshold below which overtime is not paid.
func (s Snapshot) MinOvertimeMinutes() int {
	return intOr(s.section(SectionOvertime)["minOvertimeMinutes"], 30)
}

// WeeklyOff returns the non-working weekdays, defaulting to Saturday and
// Sunday when the stored list is missing, malformed or names no valid day.
func (s Snapshot) WeeklyOff() map[time.Weekday]bool {
	fallback := map[time.Weekday]bool{time.Saturday: true, time.Sunday: true}

	raw, ok := s.section(SectionShift)["weeklyOff"].([]any)
	if !ok {
		return fallback
	}
	days := make(map[time.Weekday]bool)
	for _, item := range raw {
		name, ok := item.(string)
		if !ok {
			continue
		}
		if wd, ok := dayToWeekday[name]; ok {
			days[wd] = true
		}
	}
	if len(days) == 0 {
		return fallback
	}
	return days
}

// BaseSalaryTemplate maps grade keys to default base salaries.
func (s Snapshot) BaseSalaryTemplate() map[string]decimal.Decimal {
	template := make(map[string]decimal.Decimal)
	raw, ok := s.section(SectionSalaryStructure)["baseSalaryTemplate"].(map[string]any)
	if !ok {
		return template
	}
	for grade, value := range raw {
		template[grade] = decimalOr(value, decimal.Zero)
	}
	return template
}

// AllowancePercent feeds synthesized slip earnings.
func (s Snapshot) AllowancePercent() decimal.Decimal {
	return decimalOr(s.section(SectionSalaryStructure)["allowancePercent"], decimal.NewFromInt(20))
}

// BonusPercent feeds synthesized slip earnings.
func (s Snapshot) BonusPercent() decimal.Decimal {
	return decimalOr(s.section(SectionSalaryStructure)["bonusPercent"], decimal.NewFromInt(5))
}

// intOr coerces JSON numbers (float64 after decoding, int from literals).
func intOr(value any, fallback int) int {
	switch v := value.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return fallback
}

func decimalOr(value any, fallback decimal.Decimal) decimal.Decimal {
	switch v := value.(type) {
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	case float64:
		return decimal.NewFromFloat(v)
	case string:
		if d, err := decimal.NewFromString(v); err == nil {
			return d
		}
	}
	return fallback
}
