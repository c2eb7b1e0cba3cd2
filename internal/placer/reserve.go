package placer

import (
	"time"

	"github.com/oriskedar/examplan/internal/dateutil"
	"github.com/oriskedar/examplan/internal/occupancy"
	"github.com/oriskedar/examplan/internal/planmodel"
)

// reserveDayBefore attempts to place a fixed number of non-past-paper
// sessions on the exam's eve, spilling onto two days before if the eve
// runs out of room, ignoring every capacity ledger. Only the minimum
// session length and the trailing 15-minute break are still honored.
func (e *Engine) reserveDayBefore(exam planmodel.Exam, tasks []*planmodel.Task) {
	required := e.meta.DayBeforeSessionsDefault
	if exam.EffortLevel == planmodel.EffortHigh {
		required = e.meta.DayBeforeSessionsHighEffort
	}
	if required <= 0 {
		return
	}

	examDay := dateutil.TruncateToDay(exam.Start)
	eve := examDay.AddDate(0, 0, -1)
	twoEve := examDay.AddDate(0, 0, -2)

	remaining := required
	remaining = e.reserveOnDay(eve, tasks, remaining)
	if remaining > 0 {
		remaining = e.reserveOnDay(twoEve, tasks, remaining)
	}
}

// reserveOnDay places up to count sessions on day, skipping entirely
// if day precedes the planning horizon, and returns how many sessions
// still need a home.
func (e *Engine) reserveOnDay(day time.Time, tasks []*planmodel.Task, count int) int {
	horizon := e.meta.PlannerStart
	if e.today.After(horizon) {
		horizon = e.today
	}
	if day.Before(dateutil.TruncateToDay(horizon)) {
		return count
	}

	dayStartMin, dayEndMin := e.dailyWindowMinutes()

	for count > 0 {
		segs := orderSegments(e.occMap.FreeSegments(day, dayStartMin, dayEndMin, 1), e.meta.ADHDFrontload)

		found := false
		for _, seg := range segs {
			for _, task := range tasks {
				if task.Done() || task.Kind.IsPastPaper() {
					continue
				}
				taskRemaining := task.RemainingMinutes()
				sessionLen := minInt(planmodel.DefaultSessionMaxMinutes, seg.Len(), taskRemaining)
				if sessionLen <= 0 {
					continue
				}
				if sessionLen < planmodel.DefaultSessionMinMinutes && taskRemaining > planmodel.DefaultSessionMinMinutes {
					continue
				}

				start := dateutil.AtClock(day, seg.Start)
				end := start.Add(time.Duration(sessionLen) * time.Minute)
				e.emit(planmodel.NewItem(task.Subject, task.Paper, task.Type, planmodel.ItemStudy, start, end), occupancy.KindSession)
				task.Hours -= float64(sessionLen) / 60

				key := dateutil.DateKey(day)
				e.sessions[key]++

				cursor := e.addShortBreak(day, task.Subject, task.Paper, end, dayEndMin, nil, nil)
				e.addRecoveryIfDue(day, cursor, dayEndMin)

				count--
				found = true
				break
			}
			if found {
				break
			}
		}
		if !found {
			return count
		}
	}
	return count
}
