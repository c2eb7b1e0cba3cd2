package placer

import (
	"time"

	"github.com/oriskedar/examplan/internal/dateutil"
	"github.com/oriskedar/examplan/internal/occupancy"
	"github.com/oriskedar/examplan/internal/planmodel"
)

// forwardPlace runs the ordinary capped placement pass for a single
// exam: day by day from max(planner_start, today) to the exam's date
// inclusive, placing whatever the day-before pass didn't already
// consume.
func (e *Engine) forwardPlace(exam planmodel.Exam, tasks []*planmodel.Task) {
	start := e.meta.PlannerStart
	if e.today.After(start) {
		start = e.today
	}
	examDay := dateutil.TruncateToDay(exam.Start)

	for d := dateutil.TruncateToDay(start); !d.After(examDay); d = d.AddDate(0, 0, 1) {
		if allDone(tasks) {
			return
		}
		dayStartMin, dayEndMin := e.dailyWindowMinutes()

		if dateutil.SameDay(d, exam.Start) {
			examClock := dateutil.ClockMinutes(exam.Start)
			if examClock < 12*60 {
				continue // exam morning: no placement on the exam's own day at all
			}
			if examClock < dayEndMin {
				dayEndMin = examClock
			}
		}
		if dayEndMin <= dayStartMin {
			continue
		}

		dayCap := e.dayCapMinutes(d, dayStartMin, dayEndMin)
		subjCap := int(e.meta.PerSubjectDailyCapHours * 60)

		for _, task := range tasks {
			if task.Done() {
				continue
			}
			if task.Kind.IsPastPaper() {
				e.placePastPaper(d, task, dayStartMin, dayEndMin, &dayCap, &subjCap)
			} else {
				e.placeRegularTask(d, task, dayStartMin, dayEndMin, &dayCap, &subjCap)
			}
		}
	}
}

func allDone(tasks []*planmodel.Task) bool {
	for _, t := range tasks {
		if !t.Done() {
			return false
		}
	}
	return true
}

// dayCapMinutes computes the remaining daily study budget: the
// configured cap minus whatever already-placed occupancy counts
// against it, plus the weekend and free-day bonuses.
func (e *Engine) dayCapMinutes(d time.Time, dayStartMin, dayEndMin int) int {
	countingMinutes := e.occMap.CountingMinutes(d)
	capMinutes := int(e.meta.EffectiveDailyCapHours()*60) - countingMinutes
	if isWeekend(d) {
		capMinutes += int(e.meta.WeekendExtraHours * 60)
	}
	if countingMinutes <= 30 {
		capMinutes += int(e.meta.FreeDayExtraHours * 60)
	}
	if capMinutes < 0 {
		capMinutes = 0
	}
	windowCap := dayEndMin - dayStartMin
	if capMinutes > windowCap {
		capMinutes = windowCap
	}
	return capMinutes
}

// placeRegularTask repeatedly finds the best free segment (in
// frontload order) and places one session-sized chunk of task into it,
// recomputing free segments after every insertion, until the task is
// done or no segment can take another session.
func (e *Engine) placeRegularTask(day time.Time, task *planmodel.Task, dayStartMin, dayEndMin int, dayCap, subjCap *int) {
	for !task.Done() {
		segs := orderSegments(e.occMap.FreeSegments(day, dayStartMin, dayEndMin, 1), e.meta.ADHDFrontload)

		placed := false
		for _, seg := range segs {
			taskRemaining := task.RemainingMinutes()
			sessionLen := minInt(planmodel.DefaultSessionMaxMinutes, seg.Len(), *subjCap, *dayCap, taskRemaining)
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
			*dayCap -= sessionLen
			*subjCap -= sessionLen

			key := dateutil.DateKey(day)
			e.sessions[key]++

			cursor := e.addShortBreak(day, task.Subject, task.Paper, end, dayEndMin, dayCap, subjCap)
			e.addRecoveryIfDue(day, cursor, dayEndMin)

			placed = true
			break
		}
		if !placed {
			return
		}
	}
}

// placePastPaper looks for a single free segment long enough to hold
// the paper's fixed duration in one contiguous block. Non-mandatory
// papers additionally require both ledgers to cover the block;
// Past Paper 1 ignores both caps entirely.
func (e *Engine) placePastPaper(day time.Time, task *planmodel.Task, dayStartMin, dayEndMin int, dayCap, subjCap *int) {
	required := task.RemainingMinutes()
	segs := orderSegments(e.occMap.FreeSegments(day, dayStartMin, dayEndMin, required), e.meta.ADHDFrontload)

	for _, seg := range segs {
		if !task.Mandatory && (*dayCap < required || *subjCap < required) {
			continue
		}

		start := dateutil.AtClock(day, seg.Start)
		end := start.Add(time.Duration(required) * time.Minute)
		e.emit(planmodel.NewItem(task.Subject, task.Paper, task.Type, planmodel.ItemStudy, start, end), occupancy.KindSession)
		task.Hours = 0
		*dayCap -= required
		*subjCap -= required

		key := dateutil.DateKey(day)
		e.sessions[key]++

		cursor := e.addShortBreak(day, task.Subject, task.Paper, end, dayEndMin, dayCap, subjCap)
		cursor = e.addPostPastPaperBreak(day, task.Subject, task.Paper, cursor, dayEndMin, task.Kind == planmodel.TaskPastPaperNonWritten, dayCap, subjCap)
		e.addRecoveryIfDue(day, cursor, dayEndMin)
		return
	}
}

// orderSegments returns segs in ascending-start order when frontload
// is enabled (earliest free time studied first) and descending
// otherwise, without mutating the slice FreeSegments returned.
func orderSegments(segs []occupancy.Segment, frontload bool) []occupancy.Segment {
	if frontload {
		return segs
	}
	reversed := make([]occupancy.Segment, len(segs))
	for i, s := range segs {
		reversed[len(segs)-1-i] = s
	}
	return reversed
}
