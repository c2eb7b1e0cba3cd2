// Package placer implements the greedy first-fit scheduling engine:
// day-before priority reservation followed by forward placement of
// workload tasks into free segments, with mandatory breaks inserted
// after every session.
package placer

import (
	"sort"
	"time"

	"github.com/oriskedar/examplan/internal/dateutil"
	"github.com/oriskedar/examplan/internal/occupancy"
	"github.com/oriskedar/examplan/internal/planmodel"
	"github.com/oriskedar/examplan/internal/workload"
)

const (
	shortBreakDefaultMinutes = 15
	postPastPaperNonWritten  = 45 * time.Minute
	postPastPaperTimed       = 90 * time.Minute
	recoveryBreakMinutes     = 120
	sessionsPerRecovery      = 4
)

// Engine holds the mutable scheduling state for a single run: the
// occupancy map (shared by every exam's placement pass) and the
// per-day session counter that persists across exams and subjects.
type Engine struct {
	input    *planmodel.PlanInput
	meta     planmodel.Metadata
	today    time.Time
	occMap   *occupancy.Map
	sessions map[string]int // dateKey -> cumulative placed sessions, for recovery cadence
	items    []planmodel.Item
}

// Run derives workload for every exam, reserves day-before sessions,
// forward-places the remainder, emits supper items, and returns the
// ordered Item list, sorted by Start. Warnings are computed separately
// by the verifier package.
func Run(input *planmodel.PlanInput, today time.Time) []planmodel.Item {
	e := &Engine{
		input:    input,
		meta:     input.Metadata,
		today:    dateutil.TruncateToDay(today),
		occMap:   occupancy.BuildBase(input),
		sessions: make(map[string]int),
	}

	for _, exam := range input.AllExams() {
		tasks := toTaskPtrs(workload.Derive(exam))
		e.reserveDayBefore(exam, tasks)
		e.forwardPlace(exam, tasks)
	}

	e.emitSupperItems()

	sort.SliceStable(e.items, func(i, j int) bool {
		return e.items[i].Start.Before(e.items[j].Start)
	})
	return e.items
}

func toTaskPtrs(tasks []planmodel.Task) []*planmodel.Task {
	ptrs := make([]*planmodel.Task, len(tasks))
	for i := range tasks {
		ptrs[i] = &tasks[i]
	}
	return ptrs
}

// emit appends an item to the output and records its occupancy so
// subsequent free-segment computations see it.
func (e *Engine) emit(item planmodel.Item, kind occupancy.Kind) {
	e.items = append(e.items, item)
	e.occMap.Add(occupancy.Interval{Start: item.Start, End: item.End, Kind: kind})
}

// dailyWindowMinutes returns the configured (clamped) daily start/end
// in minutes since midnight.
func (e *Engine) dailyWindowMinutes() (start, end int) {
	return e.meta.DailyStart, e.meta.DailyEnd
}

func isWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// addShortBreak inserts the configured break (default 15 minutes)
// immediately after end, clamped to dayEndMin, counting against both
// ledger pointers if non-nil. Returns the new cursor position.
func (e *Engine) addShortBreak(day time.Time, subject, paper string, end time.Time, dayEndMin int, dayCap, subjCap *int) time.Time {
	breakMinutes := e.meta.BreakMinutes
	if breakMinutes <= 0 {
		breakMinutes = shortBreakDefaultMinutes
	}
	dayEndClock := dateutil.AtClock(day, dayEndMin)
	breakEnd := end.Add(time.Duration(breakMinutes) * time.Minute)
	if breakEnd.After(dayEndClock) {
		breakEnd = dayEndClock
	}
	if !breakEnd.After(end) {
		return end
	}
	e.emit(planmodel.NewItem(subject, paper, "Break: 15m", planmodel.ItemBreakShort, end, breakEnd), occupancy.KindBreakShort)
	actual := int(breakEnd.Sub(end).Minutes())
	decrement(dayCap, actual)
	decrement(subjCap, actual)
	return breakEnd
}

// addPostPastPaperBreak inserts the 45 or 90 minute downtime block
// right after a past-paper session, counting against both ledgers.
func (e *Engine) addPostPastPaperBreak(day time.Time, subject, paper string, end time.Time, dayEndMin int, nonWritten bool, dayCap, subjCap *int) time.Time {
	dur := postPastPaperTimed
	label := "Break: Post Past Paper (90m)"
	if nonWritten {
		dur = postPastPaperNonWritten
		label = "Break: Post Past Paper (45m)"
	}
	dayEndClock := dateutil.AtClock(day, dayEndMin)
	breakEnd := end.Add(dur)
	if breakEnd.After(dayEndClock) {
		breakEnd = dayEndClock
	}
	if !breakEnd.After(end) {
		return end
	}
	e.emit(planmodel.NewItem(subject, paper, label, planmodel.ItemBreakPostPastPaper, end, breakEnd), occupancy.KindBreakPostPaper)
	actual := int(breakEnd.Sub(end).Minutes())
	decrement(dayCap, actual)
	decrement(subjCap, actual)
	return breakEnd
}

// addRecoveryIfDue inserts the non-counting 2h recovery block when the
// cumulative session count for the day has just reached a multiple of
// four.
func (e *Engine) addRecoveryIfDue(day time.Time, end time.Time, dayEndMin int) time.Time {
	key := dateutil.DateKey(day)
	if e.sessions[key]%sessionsPerRecovery != 0 {
		return end
	}
	dayEndClock := dateutil.AtClock(day, dayEndMin)
	recoveryEnd := end.Add(recoveryBreakMinutes * time.Minute)
	if recoveryEnd.After(dayEndClock) {
		recoveryEnd = dayEndClock
	}
	if !recoveryEnd.After(end) {
		return end
	}
	e.emit(planmodel.NewItem("", "", "Break: 2h recovery", planmodel.ItemBreakRecovery, end, recoveryEnd), occupancy.KindBreakRecovery)
	return recoveryEnd
}

func decrement(p *int, by int) {
	if p == nil {
		return
	}
	*p -= by
}

func minInt(vals ...int) int {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
