package duration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatSigned(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Duration
		expected string
	}{
		{
			name:     "positive duration",
			input:    8*time.Hour + 30*time.Minute + 15*time.Second,
			expected: "+08:30:15",
		},
		{
			name:     "negative duration",
			input:    -(1*time.Hour + 5*time.Minute),
			expected: "-01:05:00",
		},
		{
			name:     "zero is positive",
			input:    0,
			expected: "+00:00:00",
		},
		{
			name:     "hours beyond a day are not wrapped",
			input:    26*time.Hour + 1*time.Second,
			expected: "+26:00:01",
		},
		{
			name:     "sub-second remainder truncated",
			input:    1*time.Second + 900*time.Millisecond,
			expected: "+00:00:01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatSigned(tt.input))
		})
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "08:30:15", FormatClock(8*time.Hour+30*time.Minute+15*time.Second))
	assert.Equal(t, "00:00:00", FormatClock(0))
	assert.Equal(t, "01:05:00", FormatClock(-(1*time.Hour + 5*time.Minute)))
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{
			name:     "iso hours",
			input:    "PT8H",
			expected: 8 * time.Hour,
		},
		{
			name:     "iso hours and minutes",
			input:    "PT7H30M",
			expected: 7*time.Hour + 30*time.Minute,
		},
		{
			name:     "iso with days",
			input:    "P1DT2H",
			expected: 26 * time.Hour,
		},
		{
			name:     "iso seconds only",
			input:    "PT45S",
			expected: 45 * time.Second,
		},
		{
			name:     "negative iso",
			input:    "-PT1H",
			expected: -time.Hour,
		},
		{
			name:     "clock hours and minutes",
			input:    "08:00",
			expected: 8 * time.Hour,
		},
		{
			name:     "clock with seconds",
			input:    "7:30:15",
			expected: 7*time.Hour + 30*time.Minute + 15*time.Second,
		},
		{
			name:     "negative clock",
			input:    "-01:15",
			expected: -(1*time.Hour + 15*time.Minute),
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
		{
			name:    "bare P",
			input:   "P",
			wantErr: true,
		},
		{
			name:    "garbage",
			input:   "eight hours",
			wantErr: true,
		},
		{
			name:    "minutes out of range",
			input:   "08:75",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
