package placer

import (
	"time"

	"github.com/oriskedar/examplan/internal/dateutil"
	"github.com/oriskedar/examplan/internal/planmodel"
)

const (
	supperStartMinutes = 18*60 + 30
	supperEndMinutes   = 20 * 60
)

// emitSupperItems adds a visible Break: Supper item to every calendar
// day that already holds at least one other placed item. The supper
// interval itself was already folded into the occupancy map by
// occupancy.BuildBase; this only makes it visible in the output.
func (e *Engine) emitSupperItems() {
	days := e.daysWithActivity()
	for _, day := range days {
		start := dateutil.AtClock(day, supperStartMinutes)
		end := dateutil.AtClock(day, supperEndMinutes)
		e.items = append(e.items, planmodel.NewItem("", "", "Break: Supper", planmodel.ItemBreakSupper, start, end))
	}
}

func (e *Engine) daysWithActivity() []time.Time {
	seen := make(map[string]time.Time)
	for _, item := range e.items {
		day := dateutil.TruncateToDay(item.Start)
		seen[dateutil.DateKey(day)] = day
	}
	days := make([]time.Time, 0, len(seen))
	for _, d := range seen {
		days = append(days, d)
	}
	sortDays(days)
	return days
}

func sortDays(days []time.Time) {
	for i := 1; i < len(days); i++ {
		for j := i; j > 0 && days[j-1].After(days[j]); j-- {
			days[j-1], days[j] = days[j], days[j-1]
		}
	}
}
