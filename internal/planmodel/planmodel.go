// Package planmodel defines the core domain types consumed and produced
// by the scheduling engine: the read-only PlanInput describing subjects,
// exams and tuition, and the Plan the engine emits.
package planmodel

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Validation errors.
var (
	ErrEndBeforeStart     = errors.New("end time must be after start time")
	ErrExamOutOfRange     = errors.New("exam date falls outside the planner horizon")
	ErrInvalidDailyWindow = errors.New("daily_start must be before daily_end")
	ErrNegativeCapacity   = errors.New("capacity values must be non-negative")
	ErrPlannerInverted    = errors.New("planner_end must be on or after planner_start")
)

// EffortLevel grades how demanding an exam is, driving both workload
// multipliers and day-before reservation counts.
type EffortLevel string

const (
	EffortNone   EffortLevel = "none"
	EffortLow    EffortLevel = "low"
	EffortMedium EffortLevel = "medium"
	EffortHigh   EffortLevel = "high"
)

// Valid reports whether e is a recognized effort level.
func (e EffortLevel) Valid() bool {
	switch e {
	case EffortNone, EffortLow, EffortMedium, EffortHigh, "":
		return true
	default:
		return false
	}
}

// TheoryMultiplier returns the theory-hours multiplier for the level.
func (e EffortLevel) TheoryMultiplier() float64 {
	switch e {
	case EffortLow:
		return 1.0
	case EffortMedium:
		return 2.0
	case EffortHigh:
		return 3.0
	default:
		return 0.0
	}
}

// PracticeMultiplier returns the practice-hours multiplier for the level.
func (e EffortLevel) PracticeMultiplier() float64 {
	switch e {
	case EffortLow:
		return 1.0
	case EffortMedium:
		return 1.5
	case EffortHigh:
		return 2.0
	default:
		return 0.0
	}
}

// EffortMultiplier returns the overall effort scaling factor applied to
// both theory and practice hours.
func (e EffortLevel) EffortMultiplier() float64 {
	switch e {
	case EffortMedium:
		return 1.2
	case EffortHigh:
		return 1.5
	default:
		return 1.0
	}
}

// TuitionBlock is an immovable recurring class interval, expanded with
// buffers before it is folded into the occupancy map.
type TuitionBlock struct {
	Start time.Time
	End   time.Time
}

// Metadata holds planner-wide configuration: the horizon, daily window,
// and capacity defaults. Zero-valued optional fields fall back to the
// documented defaults in Normalize.
type Metadata struct {
	Title                      string
	Year                       int
	PlannerStart               time.Time
	PlannerEnd                 time.Time
	DailyStart                 int // minutes since midnight
	DailyEnd                   int // minutes since midnight
	PerDayMaxHours             float64
	StudyTimePerDay            *float64 // precedence over PerDayMaxHours when set
	ADHDFrontload              bool
	ADHDFrontloadSet           bool // distinguishes "absent" (defaults true) from explicit false
	WeekendExtraHours          float64
	FreeDayExtraHours          float64
	BreakMinutes               int
	PerSubjectDailyCapHours    float64
	DayBeforeSessionsDefault   int
	DayBeforeSessionsHighEffort int
	TuitionClasses             []TuitionBlock
}

const (
	hardWindowStartMinutes = 9 * 60
	hardWindowEndMinutes   = 23 * 60

	// DefaultSessionMinMinutes is the shortest a regular study session or
	// free segment may be.
	DefaultSessionMinMinutes = 45
	// DefaultSessionMaxMinutes is the longest a single regular session
	// may run before it must be split.
	DefaultSessionMaxMinutes = 75
)

// Normalize fills in documented defaults and clamps the daily window to
// the hard 09:00–23:00 bound. Call once after loading, before Validate.
func (m *Metadata) Normalize() {
	if m.DailyStart == 0 && m.DailyEnd == 0 {
		m.DailyStart = hardWindowStartMinutes
		m.DailyEnd = hardWindowEndMinutes
	}
	if m.DailyStart < hardWindowStartMinutes {
		m.DailyStart = hardWindowStartMinutes
	}
	if m.DailyEnd > hardWindowEndMinutes {
		m.DailyEnd = hardWindowEndMinutes
	}
	if m.BreakMinutes == 0 {
		m.BreakMinutes = 15
	}
	if m.PerSubjectDailyCapHours == 0 {
		m.PerSubjectDailyCapHours = 3.0
	}
	if m.DayBeforeSessionsDefault == 0 {
		m.DayBeforeSessionsDefault = 2
	}
	if m.DayBeforeSessionsHighEffort == 0 {
		m.DayBeforeSessionsHighEffort = 4
	}
	if !m.ADHDFrontloadSet {
		m.ADHDFrontload = true
	}
}

// Validate checks the invariants required before scheduling may begin.
func (m *Metadata) Validate() error {
	if m.DailyStart >= m.DailyEnd {
		return ErrInvalidDailyWindow
	}
	if m.PlannerEnd.Before(m.PlannerStart) {
		return ErrPlannerInverted
	}
	if m.PerDayMaxHours < 0 || m.WeekendExtraHours < 0 || m.FreeDayExtraHours < 0 || m.PerSubjectDailyCapHours < 0 {
		return ErrNegativeCapacity
	}
	if m.StudyTimePerDay != nil && *m.StudyTimePerDay < 0 {
		return ErrNegativeCapacity
	}
	return nil
}

// EffectiveDailyCapHours returns StudyTimePerDay if set, else
// PerDayMaxHours.
func (m *Metadata) EffectiveDailyCapHours() float64 {
	if m.StudyTimePerDay != nil {
		return *m.StudyTimePerDay
	}
	return m.PerDayMaxHours
}

// Exam is a single timed sitting for a subject/paper.
type Exam struct {
	Subject           string
	Paper             string
	Start             time.Time
	End               time.Time
	EffortLevel       EffortLevel
	TheoryLevel       EffortLevel
	PracticeLevel     EffortLevel
	PastPapersSet     bool // distinguishes an explicit past_papers_required from absence
	PastPapersRequired int
	HoursSet          bool // distinguishes an explicit hours override from absence
	Hours             float64
}

// Validate checks exam-level invariants against the planner horizon.
func (e *Exam) Validate(plannerStart, plannerEnd time.Time) error {
	if !e.End.After(e.Start) {
		return ErrEndBeforeStart
	}
	startDay := time.Date(e.Start.Year(), e.Start.Month(), e.Start.Day(), 0, 0, 0, 0, e.Start.Location())
	endDay := time.Date(e.End.Year(), e.End.Month(), e.End.Day(), 0, 0, 0, 0, e.End.Location())
	if startDay.Before(plannerStart) || startDay.After(plannerEnd) || endDay.Before(plannerStart) || endDay.After(plannerEnd) {
		return fmt.Errorf("%w: %s %s on %s", ErrExamOutOfRange, e.Subject, e.Paper, startDay.Format("2006-01-02"))
	}
	return nil
}

// DurationHours returns the exam's sitting length in hours.
func (e *Exam) DurationHours() float64 {
	return e.End.Sub(e.Start).Hours()
}

// Subject groups exams under a single display name.
type Subject struct {
	Name         string
	Abbreviation string
	Emoji        string
	Color        [3]float64 // r, g, b in [0,1], mirrors the JSON color triplet
	Exams        []Exam     // trial and final combined, in input order
}

// PlanInput is the read-only description of what to schedule. It is
// constructed once by a loader and never mutated by the engine.
type PlanInput struct {
	Metadata Metadata
	Subjects []Subject
}

// AllExams returns every exam across every subject, ascending by start
// time, then by subject name for deterministic ties.
func (p *PlanInput) AllExams() []Exam {
	var exams []Exam
	for _, s := range p.Subjects {
		exams = append(exams, s.Exams...)
	}
	sortExams(exams)
	return exams
}

func sortExams(exams []Exam) {
	for i := 1; i < len(exams); i++ {
		for j := i; j > 0; j-- {
			a, b := exams[j-1], exams[j]
			if a.Start.After(b.Start) || (a.Start.Equal(b.Start) && a.Subject > b.Subject) {
				exams[j-1], exams[j] = exams[j], exams[j-1]
				continue
			}
			break
		}
	}
}

// TaskKind tags the variant of a derived Task, dispatching the placer
// between contiguous-block placement (past papers) and session-split
// placement (everything else).
type TaskKind string

const (
	TaskPastPaperNonWritten TaskKind = "past_paper_non_written"
	TaskPastPaperTimed      TaskKind = "past_paper_timed"
	TaskPreparation         TaskKind = "preparation"
	TaskTheory              TaskKind = "theory"
	TaskPractice            TaskKind = "practice"
)

// IsPastPaper reports whether the kind requires contiguous-block
// placement rather than session splitting.
func (k TaskKind) IsPastPaper() bool {
	return k == TaskPastPaperNonWritten || k == TaskPastPaperTimed
}

// Task is a unit of workload derived from a single exam, to be
// distributed into one or more placed sessions.
type Task struct {
	Subject   string
	Paper     string
	Kind      TaskKind
	Type      string // human-readable label, e.g. "Past Paper 1 (non-written)"
	Hours     float64
	Mandatory bool
	ExamStart time.Time // the exam this task belongs to, for day-before reservation
	ExamEnd   time.Time
}

// RemainingMinutes returns the task's remaining workload in minutes.
func (t *Task) RemainingMinutes() int {
	return int(t.Hours*60 + 0.5)
}

// Done reports whether the task's remaining workload has been
// exhausted (within floating point tolerance).
func (t *Task) Done() bool {
	return t.Hours <= 1e-6
}

// ItemKind distinguishes study sessions from the various break types in
// the final rendered plan.
type ItemKind string

const (
	ItemStudy            ItemKind = "study"
	ItemBreakShort        ItemKind = "break_short"
	ItemBreakPostPastPaper ItemKind = "break_post_past_paper"
	ItemBreakRecovery      ItemKind = "break_recovery"
	ItemBreakSupper        ItemKind = "break_supper"
)

// Item is a single placed interval in the output plan: a study session
// or one of the break kinds.
type Item struct {
	ID      string
	Subject string
	Paper   string
	Type    string
	Kind    ItemKind
	Start   time.Time
	End     time.Time
}

// NewItem builds an Item with a fresh stable ID.
func NewItem(subject, paper, itemType string, kind ItemKind, start, end time.Time) Item {
	return Item{
		ID:      uuid.NewString(),
		Subject: subject,
		Paper:   paper,
		Type:    itemType,
		Kind:    kind,
		Start:   start,
		End:     end,
	}
}

// DurationMinutes returns the item's length in minutes.
func (i Item) DurationMinutes() int {
	return int(i.End.Sub(i.Start).Minutes())
}

// IsBreak reports whether the item is any of the break kinds.
func (i Item) IsBreak() bool {
	return i.Kind != ItemStudy
}

// Warning is a single verifier finding, keyed by the ISO date it
// applies to.
type Warning struct {
	Date   string
	Reason string
}

// String renders the warning as "date: reason".
func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Date, w.Reason)
}

// Plan is the immutable output of a scheduling run: every placed item
// in chronological order, plus any verifier warnings.
type Plan struct {
	Items    []Item
	Warnings []Warning
}
