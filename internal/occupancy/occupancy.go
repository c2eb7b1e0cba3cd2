// Package occupancy tracks, per calendar day, the immovable and
// placed intervals that candidate study slots must avoid, and computes
// the free segments remaining in a day's configured window.
package occupancy

import (
	"sort"
	"time"

	"github.com/oriskedar/examplan/internal/dateutil"
)

// Kind tags why an interval is occupied, distinguishing the
// non-counting kinds (supper, 2h recovery) from everything else.
type Kind string

const (
	KindExam           Kind = "exam"
	KindDowntime       Kind = "downtime"
	KindTuition        Kind = "tuition"
	KindSupper         Kind = "supper"
	KindSession        Kind = "session"
	KindBreakShort     Kind = "break_short"
	KindBreakPostPaper Kind = "break_post_paper"
	KindBreakRecovery  Kind = "break_recovery"
)

// Counting reports whether this kind of interval consumes daily
// capacity. Supper and the 2h recovery break occupy time without
// counting against day_cap_minutes.
func (k Kind) Counting() bool {
	return k != KindSupper && k != KindBreakRecovery
}

// Interval is a single occupied span on one calendar day.
type Interval struct {
	Start time.Time
	End   time.Time
	Kind  Kind
}

// minutesOfDay returns the interval's start/end clamped to the given
// day's minute-of-day axis. Intervals that cross midnight are clamped
// to [0, MinutesOfDay) on the day they're attached to.
func (iv Interval) minutesOfDay(day time.Time) (start, end int) {
	dayStart := dateutil.TruncateToDay(day)
	nextDay := dayStart.AddDate(0, 0, 1)

	s := iv.Start
	if s.Before(dayStart) {
		s = dayStart
	}
	e := iv.End
	if e.After(nextDay) {
		e = nextDay
	}
	start = int(s.Sub(dayStart).Minutes())
	end = int(e.Sub(dayStart).Minutes())
	if start < 0 {
		start = 0
	}
	if end > dateutil.MinutesOfDay {
		end = dateutil.MinutesOfDay
	}
	return start, end
}

// Segment is a free candidate slot expressed in minutes since midnight.
type Segment struct {
	Start int
	End   int
}

// Len returns the segment's duration in minutes.
func (s Segment) Len() int {
	return s.End - s.Start
}

// Map holds the per-date sorted set of occupied intervals. It is
// mutated by the placer as sessions and breaks are inserted, and read
// by the free-interval computer after every insertion.
type Map struct {
	byDate map[string][]Interval
}

// NewMap creates an empty occupancy map.
func NewMap() *Map {
	return &Map{byDate: make(map[string][]Interval)}
}

// Add inserts an interval, attributing it to every calendar day it
// overlaps (an interval crossing midnight is split across two days).
func (m *Map) Add(iv Interval) {
	dateutil.DayRange(dateutil.TruncateToDay(iv.Start), dateutil.TruncateToDay(iv.End.Add(-time.Nanosecond)), func(day time.Time) {
		start, end := iv.minutesOfDay(day)
		if end <= start {
			return
		}
		key := dateutil.DateKey(day)
		m.byDate[key] = append(m.byDate[key], iv)
	})
}

// Intervals returns the occupied intervals attached to day, sorted by
// start time ascending.
func (m *Map) Intervals(day time.Time) []Interval {
	key := dateutil.DateKey(day)
	ivs := append([]Interval(nil), m.byDate[key]...)
	sort.Slice(ivs, func(i, j int) bool { return ivs[i].Start.Before(ivs[j].Start) })
	return ivs
}

// CountingMinutes sums the duration (clamped to day) of every occupied
// interval on day whose kind counts toward daily capacity.
func (m *Map) CountingMinutes(day time.Time) int {
	total := 0
	for _, iv := range m.Intervals(day) {
		if !iv.Kind.Counting() {
			continue
		}
		start, end := iv.minutesOfDay(day)
		total += end - start
	}
	return total
}

// FreeSegments subtracts every occupied interval attached to day from
// the window [windowStart, windowEnd) (minutes since midnight),
// dropping any remainder shorter than minSegment.
func (m *Map) FreeSegments(day time.Time, windowStart, windowEnd, minSegment int) []Segment {
	free := []Segment{{Start: windowStart, End: windowEnd}}
	if windowEnd <= windowStart {
		return nil
	}

	for _, iv := range m.Intervals(day) {
		start, end := iv.minutesOfDay(day)
		if end <= start || end <= windowStart || start >= windowEnd {
			continue
		}
		if start < windowStart {
			start = windowStart
		}
		if end > windowEnd {
			end = windowEnd
		}
		free = subtract(free, start, end)
	}

	result := free[:0]
	for _, seg := range free {
		if seg.Len() >= minSegment {
			result = append(result, seg)
		}
	}
	return result
}

// subtract removes [start, end) from every segment in segs, splitting
// as needed.
func subtract(segs []Segment, start, end int) []Segment {
	var out []Segment
	for _, seg := range segs {
		if end <= seg.Start || start >= seg.End {
			out = append(out, seg)
			continue
		}
		if start > seg.Start {
			out = append(out, Segment{Start: seg.Start, End: start})
		}
		if end < seg.End {
			out = append(out, Segment{Start: end, End: seg.End})
		}
	}
	return out
}
