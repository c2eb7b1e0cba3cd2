package workload

import (
	"testing"
	"time"

	"github.com/oriskedar/examplan/internal/planmodel"
)

func baseExam() planmodel.Exam {
	return planmodel.Exam{
		Subject:       "Mathematics",
		Paper:         "P1",
		Start:         time.Date(2025, 10, 10, 9, 0, 0, 0, time.UTC),
		End:           time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC),
		EffortLevel:   planmodel.EffortHigh,
		TheoryLevel:   planmodel.EffortMedium,
		PracticeLevel: planmodel.EffortMedium,
	}
}

func TestDerive_PastPaperDefaultWhenAbsent(t *testing.T) {
	exam := baseExam()
	tasks := Derive(exam)

	if len(tasks) == 0 || tasks[0].Kind != planmodel.TaskPastPaperNonWritten {
		t.Fatalf("expected first task to be the mandatory non-written past paper, got %+v", tasks)
	}
	if tasks[0].Hours != pastPaper1Hours {
		t.Errorf("Past Paper 1 hours = %v, want %v", tasks[0].Hours, pastPaper1Hours)
	}
	if !tasks[0].Mandatory {
		t.Error("Past Paper 1 must be mandatory")
	}
}

func TestDerive_ExplicitZeroPastPapersOmitsThem(t *testing.T) {
	exam := baseExam()
	exam.PastPapersSet = true
	exam.PastPapersRequired = 0

	tasks := Derive(exam)
	for _, task := range tasks {
		if task.Kind.IsPastPaper() {
			t.Fatalf("expected no past paper tasks, found %+v", task)
		}
	}
}

func TestDerive_MultiplePastPapers(t *testing.T) {
	exam := baseExam()
	exam.PastPapersSet = true
	exam.PastPapersRequired = 3

	tasks := Derive(exam)

	var pastPapers int
	for _, task := range tasks {
		if task.Kind.IsPastPaper() {
			pastPapers++
		}
	}
	if pastPapers != 3 {
		t.Fatalf("expected 3 past paper tasks, got %d", pastPapers)
	}
	if tasks[1].Hours != pastPaperTimedHours || tasks[1].Mandatory {
		t.Errorf("Past Paper 2 = %+v, want 3.0h non-mandatory", tasks[1])
	}
}

func TestDerive_ExplicitHoursOverride(t *testing.T) {
	exam := baseExam()
	exam.PastPapersSet = true
	exam.PastPapersRequired = 0
	exam.HoursSet = true
	exam.Hours = 2.1 // rounds up to the next 45-minute multiple

	tasks := Derive(exam)
	if len(tasks) != 1 || tasks[0].Kind != planmodel.TaskPreparation {
		t.Fatalf("expected a single Preparation task, got %+v", tasks)
	}
	want := 2.25 // 135 minutes, the smallest 45-minute multiple >= 126 minutes
	if tasks[0].Hours != want {
		t.Errorf("Preparation hours = %v, want %v", tasks[0].Hours, want)
	}
}

func TestDerive_TheoryAndPractice(t *testing.T) {
	exam := baseExam()
	exam.PastPapersSet = true
	exam.PastPapersRequired = 0

	tasks := Derive(exam)
	if len(tasks) != 2 {
		t.Fatalf("expected theory + practice tasks, got %+v", tasks)
	}
	if tasks[0].Kind != planmodel.TaskTheory || tasks[1].Kind != planmodel.TaskPractice {
		t.Fatalf("expected theory before practice, got %+v", tasks)
	}

	length := 3.0 // 09:00-12:00
	wantTheory := length * planmodel.EffortMedium.TheoryMultiplier() * planmodel.EffortHigh.EffortMultiplier()
	wantPractice := length * planmodel.EffortMedium.PracticeMultiplier() * planmodel.EffortHigh.EffortMultiplier()
	if tasks[0].Hours != wantTheory {
		t.Errorf("theory hours = %v, want %v", tasks[0].Hours, wantTheory)
	}
	if tasks[1].Hours != wantPractice {
		t.Errorf("practice hours = %v, want %v", tasks[1].Hours, wantPractice)
	}
}

func TestRoundUpToMultiple(t *testing.T) {
	tests := []struct {
		hours float64
		step  int
		want  float64
	}{
		{hours: 0.75, step: 45, want: 0.75},
		{hours: 1.0, step: 45, want: 1.5},
		{hours: 2.1, step: 45, want: 2.25},
		{hours: 0, step: 45, want: 0},
	}
	for _, tt := range tests {
		got := roundUpToMultiple(tt.hours, tt.step)
		if got != tt.want {
			t.Errorf("roundUpToMultiple(%v, %v) = %v, want %v", tt.hours, tt.step, got, tt.want)
		}
	}
}
