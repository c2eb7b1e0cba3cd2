// Package workload derives the ordered list of study tasks implied by
// an exam's difficulty attributes.
package workload

import (
	"fmt"
	"math"

	"github.com/oriskedar/examplan/internal/planmodel"
)

const (
	pastPaper1Hours    = 2.0
	pastPaperTimedHours = 3.0
	prepRoundingMinutes = 45
)

// Derive converts a single exam into its ordered task list: past papers
// first (mandatory non-written paper, then timed papers), followed by
// either an explicit Preparation override or computed Theory/Practice
// tasks. Ordering matters: the placer frontloads past papers ahead of
// everything else.
func Derive(exam planmodel.Exam) []planmodel.Task {
	var tasks []planmodel.Task

	required := effectivePastPapers(exam)
	if required >= 1 {
		tasks = append(tasks, planmodel.Task{
			Subject:   exam.Subject,
			Paper:     exam.Paper,
			Kind:      planmodel.TaskPastPaperNonWritten,
			Type:      "Past Paper 1 (non-written)",
			Hours:     pastPaper1Hours,
			Mandatory: true,
			ExamStart: exam.Start,
			ExamEnd:   exam.End,
		})
	}
	for i := 2; i <= required; i++ {
		tasks = append(tasks, planmodel.Task{
			Subject:   exam.Subject,
			Paper:     exam.Paper,
			Kind:      planmodel.TaskPastPaperTimed,
			Type:      fmt.Sprintf("Past Paper %d (timed)", i),
			Hours:     pastPaperTimedHours,
			Mandatory: false,
			ExamStart: exam.Start,
			ExamEnd:   exam.End,
		})
	}

	if exam.HoursSet {
		tasks = append(tasks, planmodel.Task{
			Subject:   exam.Subject,
			Paper:     exam.Paper,
			Kind:      planmodel.TaskPreparation,
			Type:      "Preparation",
			Hours:     roundUpToMultiple(exam.Hours, prepRoundingMinutes),
			ExamStart: exam.Start,
			ExamEnd:   exam.End,
		})
		return tasks
	}

	length := exam.DurationHours()
	theoryHours := length * exam.TheoryLevel.TheoryMultiplier() * exam.EffortLevel.EffortMultiplier()
	practiceHours := length * exam.PracticeLevel.PracticeMultiplier() * exam.EffortLevel.EffortMultiplier()

	if theoryHours > 0 {
		tasks = append(tasks, planmodel.Task{
			Subject:   exam.Subject,
			Paper:     exam.Paper,
			Kind:      planmodel.TaskTheory,
			Type:      "Theory Study",
			Hours:     theoryHours,
			ExamStart: exam.Start,
			ExamEnd:   exam.End,
		})
	}
	if practiceHours > 0 {
		tasks = append(tasks, planmodel.Task{
			Subject:   exam.Subject,
			Paper:     exam.Paper,
			Kind:      planmodel.TaskPractice,
			Type:      "Practice",
			Hours:     practiceHours,
			ExamStart: exam.Start,
			ExamEnd:   exam.End,
		})
	}

	return tasks
}

// effectivePastPapers resolves the past_papers_required field,
// distinguishing "absent" (defaults to one mandatory non-written paper)
// from an explicit 0 (no past papers at all).
func effectivePastPapers(exam planmodel.Exam) int {
	if !exam.PastPapersSet {
		return 1
	}
	return exam.PastPapersRequired
}

// roundUpToMultiple rounds hours up to the nearest multiple of
// stepMinutes, expressed back in hours.
func roundUpToMultiple(hours float64, stepMinutes int) float64 {
	totalMinutes := hours * 60
	step := float64(stepMinutes)
	rounded := math.Ceil(totalMinutes/step) * step
	return rounded / 60
}
