package efficiency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatRef(f float64) *float64 { return &f }

func numberMetric(id string, weight float64) Metric {
	return Metric{ID: id, Name: id, Type: MetricTypeNumber, Weight: floatRef(weight)}
}

func dropdownMetric(id string, options ...Option) Metric {
	return Metric{ID: id, Name: id, Type: MetricTypeDropdown, Options: options}
}

func TestScoreNumberMetrics(t *testing.T) {
	metrics := []Metric{numberMetric("quality", 10)}

	tests := []struct {
		name     string
		answer   any
		achieved float64
	}{
		{"plain number", 7.0, 7},
		{"numeric string", "8.5", 8.5},
		{"clamped to possible", 15.0, 10},
		{"unparseable defaults to zero", "excellent", 0},
		{"missing answer", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answers := map[string]any{}
			if tt.answer != nil {
				answers["quality"] = tt.answer
			}
			s := Score(metrics, answers)
			assert.Equal(t, tt.achieved, s.TotalAchieved)
			assert.Equal(t, 10.0, s.TotalPossible)
		})
	}
}

func TestScoreNegativeWeightYieldsZeroPossible(t *testing.T) {
	metrics := []Metric{numberMetric("m", -5)}
	s := Score(metrics, map[string]any{"m": 3})
	assert.Equal(t, 0.0, s.TotalPossible)
	assert.Equal(t, 0.0, s.TotalAchieved)
	assert.Equal(t, 0.0, s.TotalEfficiency)
}

func TestScoreDropdownMetrics(t *testing.T) {
	metrics := []Metric{dropdownMetric("rating",
		Option{Label: "Poor", Point: 1},
		Option{Label: "Good", Point: 3},
		Option{Label: "Excellent", Point: 5},
	)}

	tests := []struct {
		name     string
		answer   any
		achieved float64
	}{
		{"embedded number wins", "4 - Above Average", 4},
		{"decimal embedded", "2.5", 2.5},
		{"label equality fallback", "Excellent", 5},
		{"no number no label", "Mediocre", 0},
		{"numeric answer", 3.0, 3},
		{"missing answer", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answers := map[string]any{}
			if tt.answer != nil {
				answers["rating"] = tt.answer
			}
			s := Score(metrics, answers)
			assert.Equal(t, tt.achieved, s.TotalAchieved)
			assert.Equal(t, 5.0, s.TotalPossible)
		})
	}
}

func TestScoreDropdownWithoutOptions(t *testing.T) {
	metrics := []Metric{{ID: "d", Type: MetricTypeDropdown}}
	s := Score(metrics, map[string]any{"d": "anything 3"})
	assert.Equal(t, 0.0, s.TotalPossible)
	// the embedded number is still extracted even with no options
	assert.Equal(t, 3.0, s.TotalAchieved)
}

func TestScoreTotalsAndEfficiency(t *testing.T) {
	metrics := []Metric{
		numberMetric("a", 10),
		numberMetric("b", 20),
		dropdownMetric("c", Option{Label: "Low", Point: 1}, Option{Label: "High", Point: 3}),
	}
	answers := map[string]any{"a": 9, "b": 14.0, "c": "High"}

	s := Score(metrics, answers)
	assert.Equal(t, 26.0, s.TotalAchieved)
	assert.Equal(t, 33.0, s.TotalPossible)
	// 26/33 = 78.7878... rounded to 2 places
	assert.Equal(t, 78.79, s.TotalEfficiency)
	require.Len(t, s.PerMetric, 3)
	assert.Equal(t, MetricScore{ID: "a", Name: "a", Achieved: 9, Possible: 10}, s.PerMetric[0])
}

func TestScoreZeroPossibleYieldsZeroEfficiency(t *testing.T) {
	s := Score(nil, nil)
	assert.Equal(t, 0.0, s.TotalEfficiency)
	assert.Empty(t, s.PerMetric)
}

func TestFlattenAnswersFlatShape(t *testing.T) {
	data := map[string]any{
		"answers": map[string]any{"q1": 5.0, "q2": "Good"},
	}
	answers := FlattenAnswers(data)
	assert.Equal(t, map[string]any{"q1": 5.0, "q2": "Good"}, answers)
}

func TestFlattenAnswersReportShape(t *testing.T) {
	data := map[string]any{
		"performanceMetrics": []any{
			map[string]any{"id": "q1", "selected": "4 - Above Average"},
			map[string]any{"id": "q2", "selected": 7.0},
			map[string]any{"selected": "ignored, no id"},
		},
		"feedback": []any{
			map[string]any{"id": "f1", "value": "keep it up"},
		},
	}
	answers := FlattenAnswers(data)
	assert.Equal(t, "4 - Above Average", answers["q1"])
	assert.Equal(t, 7.0, answers["q2"])
	assert.Equal(t, "keep it up", answers["f1"])
	assert.Len(t, answers, 3)
}

func TestFlattenAnswersBothShapesScoreTheSame(t *testing.T) {
	metrics := []Metric{
		numberMetric("q1", 10),
		dropdownMetric("q2", Option{Label: "Good", Point: 3}),
	}
	flat := map[string]any{"answers": map[string]any{"q1": 8.0, "q2": "Good"}}
	report := map[string]any{
		"performanceMetrics": []any{
			map[string]any{"id": "q1", "selected": 8.0},
			map[string]any{"id": "q2", "selected": "Good"},
		},
	}

	a := Score(metrics, FlattenAnswers(flat))
	b := Score(metrics, FlattenAnswers(report))
	assert.Equal(t, a, b)
}

func TestEnrichDataOverwritesClientSummary(t *testing.T) {
	data := map[string]any{
		"answers": map[string]any{"q1": 3.0},
		"summary": map[string]any{"totalAchieved": 999.0, "note": "kept"},
	}
	s := Summary{TotalAchieved: 3, TotalPossible: 10, PerMetric: []MetricScore{{ID: "q1", Achieved: 3, Possible: 10}}}

	out := EnrichData(data, "Q1 Review", s)

	summary := out["summary"].(map[string]any)
	assert.Equal(t, 3.0, summary["totalAchieved"])
	assert.Equal(t, 10.0, summary["totalPossible"])
	// unrelated client keys in summary survive
	assert.Equal(t, "kept", summary["note"])
	assert.Equal(t, "Q1 Review", out["title"])
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "customer-satisfaction", Slugify("Customer Satisfaction"))
	assert.Equal(t, "q1-2026-goals", Slugify("  Q1/2026 Goals "))
}

func TestSchemaNormalizeFillsMissingIDs(t *testing.T) {
	s := Schema{
		Title: "Review",
		PerformanceMetrics: []Metric{
			{Name: "Code Quality", Type: "Number", Weight: floatRef(10)},
		},
	}
	s.Normalize()
	assert.Equal(t, "code-quality", s.PerformanceMetrics[0].ID)
	assert.Equal(t, "number", s.PerformanceMetrics[0].Type)
}

func TestSchemaValidate(t *testing.T) {
	valid := Schema{
		Title: "Review",
		PerformanceMetrics: []Metric{
			numberMetric("a", 10),
			dropdownMetric("b", Option{Label: "Yes", Point: 1}),
		},
		FeedbackSections: []FeedbackField{{ID: "f", Name: "Comments", Type: "textarea"}},
	}
	assert.NoError(t, valid.Validate())

	missingTitle := Schema{PerformanceMetrics: []Metric{numberMetric("a", 1)}}
	assert.Error(t, missingTitle.Validate())

	negativeWeight := Schema{Title: "t", PerformanceMetrics: []Metric{numberMetric("a", -1)}}
	assert.Error(t, negativeWeight.Validate())

	bareDropdown := Schema{Title: "t", PerformanceMetrics: []Metric{{ID: "d", Type: MetricTypeDropdown}}}
	assert.Error(t, bareDropdown.Validate())

	badType := Schema{Title: "t", PerformanceMetrics: []Metric{{ID: "x", Type: "slider"}}}
	assert.Error(t, badType.Validate())
}
