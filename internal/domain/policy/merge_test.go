package policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeepMergeRecursesOnNestedMaps(t *testing.T) {
	base := map[string]any{
		"overtimePolicy": map[string]any{
			"overtimeRate": 1.5,
			"weekendRate":  2,
		},
		"shiftPolicy": map[string]any{
			"standardWorkHours": 8,
		},
	}
	override := map[string]any{
		"overtimePolicy": map[string]any{
			"overtimeRate": 2.0,
		},
	}

	merged := DeepMerge(base, override)

	ot := merged["overtimePolicy"].(map[string]any)
	assert.Equal(t, 2.0, ot["overtimeRate"])
	// sibling keys inside the merged section survive
	assert.Equal(t, 2, ot["weekendRate"])
	// untouched sections survive
	assert.Equal(t, base["shiftPolicy"], merged["shiftPolicy"])
}

func TestDeepMergeReplacesListsWholesale(t *testing.T) {
	base := map[string]any{
		"shiftPolicy": map[string]any{
			"weeklyOff": []any{"Sat", "Sun"},
		},
	}
	override := map[string]any{
		"shiftPolicy": map[string]any{
			"weeklyOff": []any{"Fri"},
		},
	}

	merged := DeepMerge(base, override)
	assert.Equal(t, []any{"Fri"}, merged["shiftPolicy"].(map[string]any)["weeklyOff"])
}

func TestDeepMergeScalarReplacesMap(t *testing.T) {
	base := map[string]any{"key": map[string]any{"nested": 1}}
	override := map[string]any{"key": "flat"}

	merged := DeepMerge(base, override)
	assert.Equal(t, "flat", merged["key"])
}

func TestDeepMergeDoesNotMutateInputs(t *testing.T) {
	base := map[string]any{
		"section": map[string]any{"a": 1, "list": []any{1, 2}},
	}
	override := map[string]any{
		"section": map[string]any{"a": 2},
	}

	merged := DeepMerge(base, override)

	// mutate the result and check the inputs are untouched
	merged["section"].(map[string]any)["a"] = 99
	merged["section"].(map[string]any)["list"].([]any)[0] = 99

	assert.Equal(t, 1, base["section"].(map[string]any)["a"])
	assert.Equal(t, 1, base["section"].(map[string]any)["list"].([]any)[0])
	assert.Equal(t, 2, override["section"].(map[string]any)["a"])
}

func TestDeepMergeWithEmptyOverride(t *testing.T) {
	base := DefaultDocument()
	merged := DeepMerge(base, nil)
	assert.Equal(t, base, merged)
}

func TestSnapshotDefaults(t *testing.T) {
	s := NewSnapshot(DefaultDocument())

	assert.Equal(t, 31, s.EditWindowDays())
	assert.Equal(t, 8, s.StandardWorkHours())
	assert.Equal(t, "1.5", s.OvertimeRate().String())
	assert.Equal(t, "2", s.WeekendRate().String())
	assert.Equal(t, 30, s.MinOvertimeMinutes())
	assert.Equal(t, map[time.Weekday]bool{time.Saturday: true, time.Sunday: true}, s.WeeklyOff())

	template := s.BaseSalaryTemplate()
	require.Contains(t, template, "gradeA")
	assert.Equal(t, "3000", template["gradeA"].String())
	assert.Equal(t, "20", s.AllowancePercent().String())
	assert.Equal(t, "5", s.BonusPercent().String())
}

func TestSnapshotAppliesOverrides(t *testing.T) {
	doc := DeepMerge(DefaultDocument(), map[string]any{
		"attendancePolicy": map[string]any{"editWindowDays": float64(14)},
		"shiftPolicy":      map[string]any{"weeklyOff": []any{"Fri", "Sat"}},
	})
	s := NewSnapshot(doc)

	assert.Equal(t, 14, s.EditWindowDays())
	assert.Equal(t, map[time.Weekday]bool{time.Friday: true, time.Saturday: true}, s.WeeklyOff())
}

func TestSnapshotFallsBackOnMalformedValues(t *testing.T) {
	doc := DeepMerge(DefaultDocument(), map[string]any{
		"attendancePolicy": map[string]any{"editWindowDays": "soon"},
		"shiftPolicy":      map[string]any{"weeklyOff": []any{"Caturday"}},
	})
	s := NewSnapshot(doc)

	assert.Equal(t, 31, s.EditWindowDays())
	assert.Equal(t, map[time.Weekday]bool{time.Saturday: true, time.Sunday: true}, s.WeeklyOff())
}
