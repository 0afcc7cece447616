package efficiency

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// MetricScore is the per-metric breakdown included in the stored summary.
type MetricScore struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Achieved float64 `json:"achieved"`
	Possible float64 `json:"possible"`
}

// Summary holds the computed totals for one submission.
type Summary struct {
	TotalAchieved   float64
	TotalPossible   float64
	TotalEfficiency float64 // percentage, rounded to 2 places
	PerMetric       []MetricScore
}

var firstDecimalRegex = regexp.MustCompile(`(\d+(?:\.\d+)?)`)

// Score evaluates answers against the metric definitions.
//
// Number metrics: possible = max(weight, 0); achieved = min(numeric answer,
// possible), 0 when the answer is missing or unparseable.
// Dropdown metrics: possible = highest option point; achieved resolved by the
// first decimal embedded in the answer string, then exact label match, then 0.
func Score(metrics []Metric, answers map[string]any) Summary {
	var s Summary
	s.PerMetric = make([]MetricScore, 0, len(metrics))

	for _, m := range metrics {
		var possible, achieved float64

		switch m.Type {
		case MetricTypeNumber:
			if m.Weight != nil {
				possible = math.Max(*m.Weight, 0)
			}
			if n, ok := parseNumber(answers[m.ID]); ok {
				achieved = math.Min(n, possible)
			}
		case MetricTypeDropdown:
			for _, opt := range m.Options {
				if opt.Point > possible {
					possible = opt.Point
				}
			}
			achieved = dropdownAchieved(m.Options, answers[m.ID])
		}

		s.TotalAchieved += achieved
		s.TotalPossible += possible
		s.PerMetric = append(s.PerMetric, MetricScore{
			ID:       m.ID,
			Name:     m.Name,
			Achieved: achieved,
			Possible: possible,
		})
	}

	if s.TotalPossible > 0 {
		s.TotalEfficiency = math.Round(s.TotalAchieved/s.TotalPossible*100*100) / 100
	}
	return s
}

func dropdownAchieved(options []Option, answer any) float64 {
	if answer == nil {
		return 0
	}
	val := stringify(answer)
	if m := firstDecimalRegex.FindStringSubmatch(val); m != nil {
		if n, err := strconv.ParseFloat(m[1], 64); err == nil {
			return n
		}
	}
	for _, opt := range options {
		if opt.Label == val {
			return opt.Point
		}
	}
	return 0
}

// FlattenAnswers extracts the field-id → answer map from either accepted
// submission shape: a flat "answers" object, or the frontend report form of
// "performanceMetrics" [{id, selected}] plus "feedback" [{id, value}].
func FlattenAnswers(data map[string]any) map[string]any {
	answers := make(map[string]any)
	if data == nil {
		return answers
	}

	if flat, ok := data["answers"].(map[string]any); ok {
		for id, value := range flat {
			answers[id] = value
		}
		return answers
	}

	list, ok := data["performanceMetrics"].([]any)
	if !ok {
		return answers
	}
	for _, raw := range list {
		item, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if id := stringifyKey(item["id"]); id != "" {
			answers[id] = item["selected"]
		}
	}
	if feedback, ok := data["feedback"].([]any); ok {
		for _, raw := range feedback {
			item, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			if id := stringifyKey(item["id"]); id != "" {
				answers[id] = item["value"]
			}
		}
	}
	return answers
}

// EnrichData writes the server-computed summary into the submission payload,
// overwriting any client-supplied one, and backfills the template title.
func EnrichData(data map[string]any, schemaTitle string, s Summary) map[string]any {
	if data == nil {
		data = make(map[string]any)
	}
	summary, ok := data["summary"].(map[string]any)
	if !ok {
		summary = make(map[string]any)
	}
	summary["totalAchieved"] = s.TotalAchieved
	summary["totalPossible"] = s.TotalPossible
	summary["perMetric"] = s.PerMetric
	data["summary"] = summary
	if _, exists := data["title"]; !exists {
		data["title"] = schemaTitle
	}
	return data
}

func parseNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case nil:
		return 0, false
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func stringify(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", value)
}

func stringifyKey(value any) string {
	if value == nil {
		return ""
	}
	return stringify(value)
}
