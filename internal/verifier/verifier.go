// Package verifier re-checks a finished plan against the engine's own
// invariants and reports anything suspicious as warnings. It never
// rejects a plan; scheduling has already happened by the time this
// runs.
package verifier

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/oriskedar/examplan/internal/dateutil"
	"github.com/oriskedar/examplan/internal/planmodel"
)

// recoveryBlockMinMinutes and the post-past-paper downtime constants
// mirror the placer's own sessionsPerRecovery/recoveryBreakMinutes/
// postPastPaperNonWritten/postPastPaperTimed: the verifier re-checks
// the same policy the engine places against, rather than trusting it.
const (
	sessionsPerRecovery     = 4
	recoveryBlockMinMinutes = 90
	pastPaperNonWrittenMins = 45
	pastPaperTimedMins      = 90
)

// Verify inspects every placed item and returns one Warning per
// anomaly found: overlapping items, sessions outside the 45-75 minute
// band (ignoring 120- and 180-minute past-paper blocks; a task's short
// final tail is flagged like any other short session), missing breaks
// after a session, days with activity but no supper block, missing
// recovery blocks after every 4th session, and past-paper sessions
// without adequate downtime immediately after them.
func Verify(input *planmodel.PlanInput, items []planmodel.Item) []planmodel.Warning {
	var warnings []planmodel.Warning

	byDate := groupByDate(items)
	dates := sortedKeys(byDate)

	for _, date := range dates {
		dayItems := byDate[date]
		sort.Slice(dayItems, func(i, j int) bool { return dayItems[i].Start.Before(dayItems[j].Start) })

		warnings = append(warnings, checkOverlaps(date, dayItems)...)
		warnings = append(warnings, checkSessionLengths(date, dayItems)...)
		warnings = append(warnings, checkBreaksFollowSessions(date, dayItems)...)
		warnings = append(warnings, checkSupperPresent(date, dayItems)...)
		warnings = append(warnings, checkRecoveryBlocks(date, dayItems)...)
		warnings = append(warnings, checkPostPastPaperDowntime(date, dayItems)...)
	}

	warnings = append(warnings, checkDayBeforeReservations(input, byDate)...)

	return warnings
}

// checkDayBeforeReservations flags exams whose eve (or the day before
// that) ended up with fewer study sessions than the configured
// reservation count, which would mean the day ran out of room before
// the reservation pass could finish.
func checkDayBeforeReservations(input *planmodel.PlanInput, byDate map[string][]planmodel.Item) []planmodel.Warning {
	var warnings []planmodel.Warning
	for _, exam := range input.AllExams() {
		required := input.Metadata.DayBeforeSessionsDefault
		if exam.EffortLevel == planmodel.EffortHigh {
			required = input.Metadata.DayBeforeSessionsHighEffort
		}
		if required <= 0 {
			continue
		}

		examDay := dateutil.TruncateToDay(exam.Start)
		eve := examDay.AddDate(0, 0, -1)
		twoEve := examDay.AddDate(0, 0, -2)

		found := countSubjectSessions(byDate[dateutil.DateKey(eve)], exam.Subject) +
			countSubjectSessions(byDate[dateutil.DateKey(twoEve)], exam.Subject)
		if found < required {
			warnings = append(warnings, planmodel.Warning{
				Date:   dateutil.DateKey(eve),
				Reason: fmt.Sprintf("only %d of %d day-before sessions reserved for %s %s", found, required, exam.Subject, exam.Paper),
			})
		}
	}
	return warnings
}

func countSubjectSessions(items []planmodel.Item, subject string) int {
	count := 0
	for _, item := range items {
		if item.Kind == planmodel.ItemStudy && item.Subject == subject {
			count++
		}
	}
	return count
}

func groupByDate(items []planmodel.Item) map[string][]planmodel.Item {
	byDate := make(map[string][]planmodel.Item)
	for _, item := range items {
		key := dateutil.DateKey(item.Start)
		byDate[key] = append(byDate[key], item)
	}
	return byDate
}

func sortedKeys(byDate map[string][]planmodel.Item) []string {
	keys := make([]string, 0, len(byDate))
	for k := range byDate {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func checkOverlaps(date string, dayItems []planmodel.Item) []planmodel.Warning {
	var warnings []planmodel.Warning
	for i := 1; i < len(dayItems); i++ {
		prev, cur := dayItems[i-1], dayItems[i]
		if cur.Start.Before(prev.End) {
			warnings = append(warnings, planmodel.Warning{
				Date:   date,
				Reason: fmt.Sprintf("%q overlaps %q", prev.Type, cur.Type),
			})
		}
	}
	return warnings
}

func checkSessionLengths(date string, dayItems []planmodel.Item) []planmodel.Warning {
	var warnings []planmodel.Warning
	for _, item := range dayItems {
		if item.Kind != planmodel.ItemStudy {
			continue
		}
		minutes := item.DurationMinutes()
		if minutes < planmodel.DefaultSessionMinMinutes && minutes != 120 && minutes != 180 {
			// items carry no task identity, so every session under the
			// floor is flagged, a task's final tail included.
			warnings = append(warnings, planmodel.Warning{
				Date:   date,
				Reason: fmt.Sprintf("session %q is %dm, below the minimum session length", item.Type, minutes),
			})
		}
		if minutes > planmodel.DefaultSessionMaxMinutes && minutes != 120 && minutes != 180 {
			warnings = append(warnings, planmodel.Warning{
				Date:   date,
				Reason: fmt.Sprintf("session %q is %dm, above the maximum session length", item.Type, minutes),
			})
		}
	}
	return warnings
}

func checkBreaksFollowSessions(date string, dayItems []planmodel.Item) []planmodel.Warning {
	var warnings []planmodel.Warning
	for i, item := range dayItems {
		if item.Kind != planmodel.ItemStudy {
			continue
		}
		if i+1 >= len(dayItems) {
			continue // last item of the day, nothing scheduled after it to check
		}
		next := dayItems[i+1]
		if !next.IsBreak() {
			warnings = append(warnings, planmodel.Warning{
				Date:   date,
				Reason: fmt.Sprintf("session %q at %s has no break immediately after it", item.Type, item.Start.Format("15:04")),
			})
		}
	}
	return warnings
}

func checkSupperPresent(date string, dayItems []planmodel.Item) []planmodel.Warning {
	for _, item := range dayItems {
		if item.Kind == planmodel.ItemBreakSupper {
			return nil
		}
	}
	return []planmodel.Warning{{Date: date, Reason: "no supper break recorded for a day with scheduled activity"}}
}

// checkRecoveryBlocks flags a day where the 4th, 8th, ... study session
// isn't followed by an occupied block of at least recoveryBlockMinMinutes
// starting right at that session's end. A block that runs to the last
// item recorded for the day is assumed clamped against the day boundary
// and is not flagged.
func checkRecoveryBlocks(date string, dayItems []planmodel.Item) []planmodel.Warning {
	var warnings []planmodel.Warning
	count := 0
	for i, item := range dayItems {
		if item.Kind != planmodel.ItemStudy {
			continue
		}
		count++
		if count%sessionsPerRecovery != 0 {
			continue
		}
		occupied, reachedDayEnd := contiguousSpanMinutes(dayItems, i+1, item.End)
		if occupied < recoveryBlockMinMinutes && !reachedDayEnd {
			warnings = append(warnings, planmodel.Warning{
				Date: date,
				Reason: fmt.Sprintf("session %q (session #%d of the day) has only %dm occupied after it, want a recovery block of at least %dm",
					item.Type, count, occupied, recoveryBlockMinMinutes),
			})
		}
	}
	return warnings
}

// checkPostPastPaperDowntime flags a past-paper session whose immediate
// downtime falls short of half the required 45 or 90 minute block.
func checkPostPastPaperDowntime(date string, dayItems []planmodel.Item) []planmodel.Warning {
	var warnings []planmodel.Warning
	for i, item := range dayItems {
		if item.Kind != planmodel.ItemStudy || !strings.Contains(item.Type, "Past Paper") {
			continue
		}
		required := pastPaperNonWrittenMins
		if item.DurationMinutes() == 180 {
			required = pastPaperTimedMins
		}
		half := required / 2 // intentional floor: "at least half" of an odd value rounds down
		occupied, _ := contiguousSpanMinutes(dayItems, i+1, item.End)
		if occupied < half {
			warnings = append(warnings, planmodel.Warning{
				Date: date,
				Reason: fmt.Sprintf("%q at %s has only %dm of downtime after it, want at least %dm",
					item.Type, item.Start.Format("15:04"), occupied, half),
			})
		}
	}
	return warnings
}

// contiguousSpanMinutes sums the duration of dayItems[from:] as long as
// each one starts exactly where the previous one ended, beginning at
// from's predecessor end time. It reports whether the span consumed
// every remaining item for the day, which signals the block was
// clamped against the day's end rather than genuinely missing.
func contiguousSpanMinutes(dayItems []planmodel.Item, from int, cursor time.Time) (minutes int, reachedDayEnd bool) {
	j := from
	for j < len(dayItems) && dayItems[j].Start.Equal(cursor) {
		minutes += dayItems[j].DurationMinutes()
		cursor = dayItems[j].End
		j++
	}
	return minutes, j >= len(dayItems)
}
