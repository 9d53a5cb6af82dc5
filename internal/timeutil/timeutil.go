// Package timeutil centralizes HH:MM parsing, duration math and calendar
// helpers used by the shift and planning services. All times are naive
// times-of-day; the system is single-timezone.
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// DateLayout is the wire format for all dates (YYYY-MM-DD).
	DateLayout = "2006-01-02"

	// MinutesPerDay is used for cross-midnight wraparound in derived
	// duration calculations.
	MinutesPerDay = 24 * 60
)

// timeRe accepts "H:MM", "HH:MM" or longer strings with a time prefix
// (e.g. "09:00:00" coming from a TIME column).
var timeRe = regexp.MustCompile(`^(\d{1,2}):(\d{2})`)

// NormalizeTime parses raw into canonical "HH:MM" form. It returns
// ok=false on any parse failure or out-of-range hour/minute.
func NormalizeTime(raw string) (string, bool) {
	m := timeRe.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return "", false
	}
	hh, _ := strconv.Atoi(m[1])
	mm, _ := strconv.Atoi(m[2])
	if hh > 23 || mm > 59 {
		return "", false
	}
	return fmt.Sprintf("%02d:%02d", hh, mm), true
}

// NormalizeOrKeep normalizes raw to "HH:MM" when it parses, and returns
// the input untouched otherwise. Used when rendering stored TIME values.
func NormalizeOrKeep(raw string) string {
	if norm, ok := NormalizeTime(raw); ok {
		return norm
	}
	return raw
}

// ToMinutes converts an HH:MM string to minutes since midnight.
// Returns -1 when the value does not parse.
func ToMinutes(s string) int {
	norm, ok := NormalizeTime(s)
	if !ok {
		return -1
	}
	hh, _ := strconv.Atoi(norm[:2])
	mm, _ := strconv.Atoi(norm[3:])
	return hh*60 + mm
}

// DurationMinutes computes end-start in minutes. A non-positive result is
// treated as a cross-midnight span and wrapped by adding a full day. Only
// derived duration calculations use the wraparound; shift creation rejects
// cross-midnight segments before ever calling this with end <= start.
func DurationMinutes(start, end string) int {
	s := ToMinutes(start)
	e := ToMinutes(end)
	if s < 0 || e < 0 {
		return 0
	}
	d := e - s
	if d <= 0 {
		d += MinutesPerDay
	}
	return d
}

// IsAlignedTo reports whether minutes falls on a step boundary.
func IsAlignedTo(minutes, step int) bool {
	return step > 0 && minutes%step == 0
}

// MinutesToClock renders minutes-since-midnight as "HH:MM", clamping into
// the same day (23:59 ceiling) so synthesized slots never cross midnight.
func MinutesToClock(m int) string {
	if m < 0 {
		m = 0
	}
	if m > MinutesPerDay-1 {
		m = MinutesPerDay - 1
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// ParseDate parses a YYYY-MM-DD string into a UTC midnight time.Time.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// FormatDate renders t in the canonical YYYY-MM-DD wire format.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// WeekDates returns the 7 consecutive dates starting at weekStart.
func WeekDates(weekStart time.Time) []time.Time {
	dates := make([]time.Time, 7)
	for i := range dates {
		dates[i] = weekStart.AddDate(0, 0, i)
	}
	return dates
}

// MondayOf returns the Monday of the ISO week containing t.
func MondayOf(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7 // Monday=0 .. Sunday=6
	return t.AddDate(0, 0, -offset)
}

// WeekdayIndex maps t to the Monday-based day index 0..6 used by the
// weekly planning pattern.
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
