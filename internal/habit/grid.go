package habit

// Grid layout constants. The edge zone and label spacing are presentation
// heuristics the heatmap view depends on; keep them in one place.
const (
	gridWindowDays = 364 // trailing window ending at today
	weekLen        = 7
	edgeColumns    = 9 // trailing columns where overlays must open leftward
	monthLabelGap  = 4 // minimum columns between month labels
)

// DayCell is one day in the heatmap grid.
type DayCell struct {
	Date      Date
	Completed bool
	// Edge marks cells in the last columns of the grid, where a detail
	// overlay would run off the right of the visible area.
	Edge bool
}

// MonthLabel anchors a month name to a week column.
type MonthLabel struct {
	Week int
	Text string
}

// Grid is a week-aligned matrix of days: one column per week, Monday first,
// in chronological order.
type Grid struct {
	Weeks       [][]DayCell
	MonthLabels []MonthLabel
}

// BuildGrid lays out the trailing year of days ending at today into weekly
// columns. The window start is pulled back to its Monday and the end pushed
// through today's Sunday, so every column holds exactly seven days. Pure and
// deterministic for a fixed today and completion set.
func BuildGrid(today Date, completed map[Date]bool) Grid {
	start := today.AddDays(-(gridWindowDays - 1))
	start = start.AddDays(-start.WeekdayIndex())
	end := today.AddDays(weekLen - 1 - today.WeekdayIndex())

	var days []Date
	for d := start; !d.After(end); d = d.AddDays(1) {
		days = append(days, d)
	}

	totalWeeks := len(days) / weekLen
	weeks := make([][]DayCell, totalWeeks)
	for w := range weeks {
		week := make([]DayCell, weekLen)
		for i := range week {
			d := days[w*weekLen+i]
			week[i] = DayCell{
				Date:      d,
				Completed: completed[d],
				Edge:      w > totalWeeks-1-edgeColumns,
			}
		}
		weeks[w] = week
	}

	return Grid{Weeks: weeks, MonthLabels: monthLabels(weeks)}
}

// monthLabels emits a label for the first column, then for columns whose
// week crosses a month boundary, subject to a spacing floor so labels never
// crowd when a month starts near a week boundary.
func monthLabels(weeks [][]DayCell) []MonthLabel {
	var labels []MonthLabel
	last := 0
	for w, week := range weeks {
		first := week[0].Date
		if w == 0 {
			labels = append(labels, MonthLabel{Week: 0, Text: shortMonth(first)})
			continue
		}
		next := first.AddDays(weekLen)
		if next.Month != first.Month && w-last >= monthLabelGap {
			labels = append(labels, MonthLabel{Week: w, Text: shortMonth(next)})
			last = w
		}
	}
	return labels
}

func shortMonth(d Date) string {
	return d.Month.String()[:3]
}

// Grid builds the heatmap grid for a habit as of today.
func (l *Log) Grid(habitID string, today Date) Grid {
	return BuildGrid(today, l.Completed(habitID))
}
