package occupancy

import (
	"time"

	"github.com/oriskedar/examplan/internal/planmodel"
)

const (
	postExamDowntime   = 2 * time.Hour
	tuitionPreBuffer   = 30 * time.Minute
	tuitionPostBuffer  = 90 * time.Minute
	supperStartMinutes = 18*60 + 30
	supperEndMinutes   = 20 * 60
)

// BuildBase constructs the occupancy map's immovable baseline: every
// exam interval and its 2h post-exam downtime, every tuition block
// expanded with its pre/post buffers, and the supper break on every
// day of the planner horizon. The placer adds sessions and breaks into
// the same map as it runs.
func BuildBase(input *planmodel.PlanInput) *Map {
	m := NewMap()

	for _, exam := range input.AllExams() {
		m.Add(Interval{Start: exam.Start, End: exam.End, Kind: KindExam})
		m.Add(Interval{Start: exam.End, End: exam.End.Add(postExamDowntime), Kind: KindDowntime})
	}

	for _, block := range input.Metadata.TuitionClasses {
		m.Add(Interval{
			Start: block.Start.Add(-tuitionPreBuffer),
			End:   block.End.Add(tuitionPostBuffer),
			Kind:  KindTuition,
		})
	}

	addSupperEveryDay(m, input.Metadata.PlannerStart, input.Metadata.PlannerEnd)

	return m
}

func addSupperEveryDay(m *Map, start, end time.Time) {
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		supperStart := time.Date(d.Year(), d.Month(), d.Day(), 0, supperStartMinutes, 0, 0, d.Location())
		supperEnd := time.Date(d.Year(), d.Month(), d.Day(), 0, supperEndMinutes, 0, 0, d.Location())
		m.Add(Interval{Start: supperStart, End: supperEnd, Kind: KindSupper})
	}
}
