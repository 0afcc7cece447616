package efficiency

import (
	"regexp"
	"strings"

	"github.com/corehr/hr-payroll-go/internal/pkg/validator"
)

// Metric types
const (
	MetricTypeNumber   = "number"
	MetricTypeDropdown = "dropdown"
)

var allowedFeedbackTypes = []string{"text", "textarea", "dropdown"}

// Schema is the typed shape of a template document. Unknown JSON keys are
// ignored on decode.
type Schema struct {
	Title              string          `json:"title"`
	PerformanceMetrics []Metric        `json:"performanceMetrics"`
	FeedbackSections   []FeedbackField `json:"feedbackSections"`
}

type Metric struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Type    string   `json:"type"`
	Weight  *float64 `json:"weight,omitempty"`
	Options []Option `json:"options,omitempty"`
}

type Option struct {
	Label string  `json:"label"`
	Point float64 `json:"point"`
}

type FeedbackField struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Type    string   `json:"type"`
	Options []string `json:"options,omitempty"`
}

var slugCleanRegex = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases and dashes a field name the way the frontend does when
// it generates ids.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugCleanRegex.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Normalize fills in missing field ids from names and lowercases type tags.
func (s *Schema) Normalize() {
	for i := range s.PerformanceMetrics {
		m := &s.PerformanceMetrics[i]
		m.Type = strings.ToLower(m.Type)
		if m.ID == "" {
			name := m.Name
			if name == "" {
				name = "metric-field"
			}
			m.ID = Slugify(name)
		}
	}
	for i := range s.FeedbackSections {
		f := &s.FeedbackSections[i]
		f.Type = strings.ToLower(f.Type)
		if f.ID == "" {
			name := f.Name
			if name == "" {
				name = "feedback-field"
			}
			f.ID = Slugify(name)
		}
	}
}

// Validate checks the structural rules: a title, supported field types,
// non-negative weights on number metrics and pointed options on dropdowns.
func (s *Schema) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(s.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "schema.title",
			Message: "title must be a non-empty string",
		})
	}

	for i, m := range s.PerformanceMetrics {
		field := "schema.performanceMetrics[" + validator.Itoa(i) + "]"
		switch m.Type {
		case MetricTypeNumber:
			if m.Weight == nil || *m.Weight < 0 {
				errs = append(errs, validator.ValidationError{
					Field:   field + ".weight",
					Message: "number metric must have non-negative weight",
				})
			}
		case MetricTypeDropdown:
			if len(m.Options) == 0 {
				errs = append(errs, validator.ValidationError{
					Field:   field + ".options",
					Message: "dropdown metric must have options",
				})
			}
		default:
			errs = append(errs, validator.ValidationError{
				Field:   field + ".type",
				Message: "unsupported metric type: " + m.Type,
			})
		}
	}

	for i, f := range s.FeedbackSections {
		if !validator.IsInSlice(f.Type, allowedFeedbackTypes) {
			errs = append(errs, validator.ValidationError{
				Field:   "schema.feedbackSections[" + validator.Itoa(i) + "].type",
				Message: "unsupported feedback type: " + f.Type,
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
