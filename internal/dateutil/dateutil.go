// Package dateutil provides date and clock-time parsing and arithmetic
// shared by the planning engine. All capacity and placement bookkeeping
// is done in integer minutes-since-midnight; wall-clock values only
// leave that representation at I/O boundaries.
package dateutil

import (
	"errors"
	"fmt"
	"time"
)

// Parsing errors.
var (
	ErrInvalidDate      = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidDateTime  = errors.New("datetime must be in YYYY-MM-DDTHH:MM[:SS] format")
	ErrInvalidClockTime = errors.New("time must be in HH:MM format")
	ErrEndBeforeStart   = errors.New("end must be after start")
)

// MinutesOfDay is the number of minutes in a calendar day.
const MinutesOfDay = 24 * 60

// ParseDate parses a YYYY-MM-DD date, truncated to midnight in UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// ParseDateTime parses an ISO-8601 datetime without a zone offset, as
// used throughout the planner's JSON input ("2025-10-10T09:00:00" or
// "2025-10-10T09:00").
func ParseDateTime(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02 15:04:05", "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateTime, s)
}

// TruncateToDay strips the time-of-day component, keeping the location.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ClockMinutes returns the minutes-since-midnight component of t.
func ClockMinutes(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// AtClock returns the date of day with the clock time (in minutes since
// midnight) applied.
func AtClock(day time.Time, minutes int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), 0, minutes, 0, 0, day.Location())
}

// TimeToMinutes converts "HH:MM" to minutes since midnight. Returns an
// error for malformed input rather than silently defaulting, since
// planner configuration errors must abort before scheduling.
func TimeToMinutes(s string) (int, error) {
	if len(s) < 5 || s[2] != ':' {
		return 0, ErrInvalidClockTime
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, ErrInvalidClockTime
	}
	return h*60 + m, nil
}

// MinutesToTime converts minutes-since-midnight to "HH:MM" format,
// clamping to a single calendar day.
func MinutesToTime(m int) string {
	if m < 0 {
		m = 0
	}
	if m >= MinutesOfDay {
		m = MinutesOfDay - 1
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// DateKey formats t as the canonical YYYY-MM-DD lookup key used by the
// occupancy map and the verifier's per-date warnings.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return TruncateToDay(a).Equal(TruncateToDay(b))
}

// DayRange iterates each calendar day in [start, end] inclusive, calling
// fn with the truncated date.
func DayRange(start, end time.Time, fn func(day time.Time)) {
	start = TruncateToDay(start)
	end = TruncateToDay(end)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		fn(d)
	}
}
