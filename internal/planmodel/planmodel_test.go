package planmodel

import (
	"testing"
	"time"
)

func TestMetadata_Normalize_Defaults(t *testing.T) {
	var m Metadata
	m.Normalize()

	if m.DailyStart != hardWindowStartMinutes || m.DailyEnd != hardWindowEndMinutes {
		t.Errorf("expected default window 09:00-23:00, got %d-%d", m.DailyStart, m.DailyEnd)
	}
	if m.BreakMinutes != 15 {
		t.Errorf("BreakMinutes = %d, want 15", m.BreakMinutes)
	}
	if m.PerSubjectDailyCapHours != 3.0 {
		t.Errorf("PerSubjectDailyCapHours = %v, want 3.0", m.PerSubjectDailyCapHours)
	}
	if m.DayBeforeSessionsDefault != 2 || m.DayBeforeSessionsHighEffort != 4 {
		t.Errorf("day-before defaults = %d/%d, want 2/4", m.DayBeforeSessionsDefault, m.DayBeforeSessionsHighEffort)
	}
	if !m.ADHDFrontload {
		t.Error("ADHDFrontload should default to true when unset")
	}
}

func TestMetadata_Normalize_ClampsHardWindow(t *testing.T) {
	m := Metadata{DailyStart: 7 * 60, DailyEnd: 23*60 + 30}
	m.Normalize()

	if m.DailyStart != hardWindowStartMinutes {
		t.Errorf("DailyStart = %d, want clamped to %d", m.DailyStart, hardWindowStartMinutes)
	}
	if m.DailyEnd != hardWindowEndMinutes {
		t.Errorf("DailyEnd = %d, want clamped to %d", m.DailyEnd, hardWindowEndMinutes)
	}
}

func TestMetadata_EffectiveDailyCapHours_Precedence(t *testing.T) {
	studyTime := 5.0
	m := Metadata{PerDayMaxHours: 3.0, StudyTimePerDay: &studyTime}
	if got := m.EffectiveDailyCapHours(); got != 5.0 {
		t.Errorf("EffectiveDailyCapHours() = %v, want study_time_per_day (5.0) to win", got)
	}

	m2 := Metadata{PerDayMaxHours: 3.0}
	if got := m2.EffectiveDailyCapHours(); got != 3.0 {
		t.Errorf("EffectiveDailyCapHours() = %v, want per_day_max_hours (3.0) when study_time_per_day unset", got)
	}
}

func TestExam_Validate(t *testing.T) {
	plannerStart := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	plannerEnd := time.Date(2025, 10, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		exam    Exam
		wantErr error
	}{
		{
			name: "valid",
			exam: Exam{Start: time.Date(2025, 10, 5, 9, 0, 0, 0, time.UTC), End: time.Date(2025, 10, 5, 12, 0, 0, 0, time.UTC)},
		},
		{
			name:    "end before start",
			exam:    Exam{Start: time.Date(2025, 10, 5, 12, 0, 0, 0, time.UTC), End: time.Date(2025, 10, 5, 9, 0, 0, 0, time.UTC)},
			wantErr: ErrEndBeforeStart,
		},
		{
			name:    "out of range",
			exam:    Exam{Start: time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC), End: time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC)},
			wantErr: ErrExamOutOfRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.exam.Validate(plannerStart, plannerEnd)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("Validate() = %v, want nil", err)
			}
			if tt.wantErr != nil && !isWrapped(err, tt.wantErr) {
				t.Fatalf("Validate() = %v, want wrapping %v", err, tt.wantErr)
			}
		})
	}
}

func isWrapped(err, target error) bool {
	for err != nil {
		if err == target {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

func TestPlanInput_AllExams_SortedByStartThenSubject(t *testing.T) {
	input := &PlanInput{Subjects: []Subject{
		{Name: "Physics", Exams: []Exam{{Subject: "Physics", Start: time.Date(2025, 10, 5, 9, 0, 0, 0, time.UTC)}}},
		{Name: "Mathematics", Exams: []Exam{{Subject: "Mathematics", Start: time.Date(2025, 10, 5, 9, 0, 0, 0, time.UTC)}}},
		{Name: "Chemistry", Exams: []Exam{{Subject: "Chemistry", Start: time.Date(2025, 10, 3, 9, 0, 0, 0, time.UTC)}}},
	}}

	exams := input.AllExams()
	want := []string{"Chemistry", "Mathematics", "Physics"}
	for i, subject := range want {
		if exams[i].Subject != subject {
			t.Errorf("exam %d subject = %s, want %s", i, exams[i].Subject, subject)
		}
	}
}

func TestTask_RemainingMinutesAndDone(t *testing.T) {
	task := Task{Hours: 1.5}
	if got := task.RemainingMinutes(); got != 90 {
		t.Errorf("RemainingMinutes() = %d, want 90", got)
	}
	if task.Done() {
		t.Error("task with 1.5h remaining should not be done")
	}

	task.Hours = 0
	if !task.Done() {
		t.Error("task with 0h remaining should be done")
	}
}

func TestItem_IsBreak(t *testing.T) {
	study := NewItem("Mathematics", "P1", "Theory Study", ItemStudy, time.Now(), time.Now())
	if study.IsBreak() {
		t.Error("study item should not be a break")
	}
	brk := NewItem("", "", "Break: 15m", ItemBreakShort, time.Now(), time.Now())
	if !brk.IsBreak() {
		t.Error("break item should report IsBreak() true")
	}
}
