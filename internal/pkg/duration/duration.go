package duration

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// FormatSigned renders a duration as ±HH:MM:SS. The sign is always present;
// zero formats as "+00:00:00". Hours are not capped at 24.
func FormatSigned(d time.Duration) string {
	totalSeconds := int64(d / time.Second)
	sign := "+"
	if totalSeconds < 0 {
		sign = "-"
		totalSeconds = -totalSeconds
	}
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60
	return fmt.Sprintf("%s%02d:%02d:%02d", sign, hours, minutes, seconds)
}

// FormatClock renders a non-negative duration as HH:MM:SS without a sign.
func FormatClock(d time.Duration) string {
	totalSeconds := int64(d / time.Second)
	if totalSeconds < 0 {
		totalSeconds = -totalSeconds
	}
	return fmt.Sprintf("%02d:%02d:%02d",
		totalSeconds/3600, (totalSeconds%3600)/60, totalSeconds%60)
}

var iso8601Regex = regexp.MustCompile(
	`^(-)?P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+(?:\.\d+)?)S)?)?$`)

var clockRegex = regexp.MustCompile(`^(-)?(\d+):([0-5]?\d)(?::([0-5]?\d))?$`)

// Parse accepts ISO-8601 durations ("PT8H", "PT7H30M", "P1DT2H") and plain
// clock strings ("08:00", "7:30:15"), optionally negative.
func Parse(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}

	if m := iso8601Regex.FindStringSubmatch(s); m != nil {
		if m[2] == "" && m[3] == "" && m[4] == "" && m[5] == "" {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		var d time.Duration
		if m[2] != "" {
			days, _ := strconv.Atoi(m[2])
			d += time.Duration(days) * 24 * time.Hour
		}
		if m[3] != "" {
			hours, _ := strconv.Atoi(m[3])
			d += time.Duration(hours) * time.Hour
		}
		if m[4] != "" {
			minutes, _ := strconv.Atoi(m[4])
			d += time.Duration(minutes) * time.Minute
		}
		if m[5] != "" {
			seconds, _ := strconv.ParseFloat(m[5], 64)
			d += time.Duration(seconds * float64(time.Second))
		}
		if m[1] == "-" {
			d = -d
		}
		return d, nil
	}

	if m := clockRegex.FindStringSubmatch(s); m != nil {
		hours, _ := strconv.Atoi(m[2])
		minutes, _ := strconv.Atoi(m[3])
		seconds := 0
		if m[4] != "" {
			seconds, _ = strconv.Atoi(m[4])
		}
		d := time.Duration(hours)*time.Hour +
			time.Duration(minutes)*time.Minute +
			time.Duration(seconds)*time.Second
		if m[1] == "-" {
			d = -d
		}
		return d, nil
	}

	return 0, fmt.Errorf("invalid duration %q", s)
}
