package habit

import (
	"reflect"
	"testing"
)

func TestGridShape(t *testing.T) {
	today := day(t, "2024-06-10")
	g := BuildGrid(today, nil)

	if len(g.Weeks) == 0 {
		t.Fatal("grid should not be empty")
	}
	total := 0
	for i, week := range g.Weeks {
		if len(week) != weekLen {
			t.Fatalf("week %d has %d days, expected %d", i, len(week), weekLen)
		}
		total += len(week)
	}
	if total%weekLen != 0 {
		t.Fatalf("total day count %d is not a multiple of %d", total, weekLen)
	}
}

func TestGridWeekAlignment(t *testing.T) {
	// Run across every weekday today can fall on.
	base := day(t, "2024-06-10") // a Monday
	for i := 0; i < 7; i++ {
		today := base.AddDays(i)
		g := BuildGrid(today, nil)

		first := g.Weeks[0][0].Date
		if first.WeekdayIndex() != 0 {
			t.Fatalf("today=%s: grid should start on a Monday, got %s", today, first)
		}
		last := g.Weeks[len(g.Weeks)-1][weekLen-1].Date
		if last.WeekdayIndex() != 6 {
			t.Fatalf("today=%s: grid should end on a Sunday, got %s", today, last)
		}
		if today.Before(first) || today.After(last) {
			t.Fatalf("today=%s outside grid window %s..%s", today, first, last)
		}
	}
}

func TestGridChronological(t *testing.T) {
	g := BuildGrid(day(t, "2024-06-10"), nil)
	prev := g.Weeks[0][0].Date.AddDays(-1)
	for _, week := range g.Weeks {
		for _, cell := range week {
			if cell.Date != prev.AddDays(1) {
				t.Fatalf("day sequence has a gap at %s", cell.Date)
			}
			prev = cell.Date
		}
	}
}

func TestGridWindowLength(t *testing.T) {
	today := day(t, "2024-06-10")
	g := BuildGrid(today, nil)

	// The unaligned window is 364 days; alignment can only add days.
	total := len(g.Weeks) * weekLen
	if total < gridWindowDays {
		t.Fatalf("grid covers %d days, expected at least %d", total, gridWindowDays)
	}
	if total > gridWindowDays+2*(weekLen-1) {
		t.Fatalf("grid covers %d days, alignment added too much", total)
	}
}

func TestGridCompletedFlags(t *testing.T) {
	today := day(t, "2024-06-10")
	set := completedSet(t, "2024-06-10", "2024-06-08")
	g := BuildGrid(today, set)

	found := 0
	for _, week := range g.Weeks {
		for _, cell := range week {
			if cell.Completed {
				if !set[cell.Date] {
					t.Fatalf("cell %s marked completed but not in set", cell.Date)
				}
				found++
			}
		}
	}
	if found != 2 {
		t.Fatalf("expected 2 completed cells, got %d", found)
	}
}

func TestGridEdgeZone(t *testing.T) {
	g := BuildGrid(day(t, "2024-06-10"), nil)
	totalWeeks := len(g.Weeks)

	for w, week := range g.Weeks {
		wantEdge := w > totalWeeks-1-edgeColumns
		for _, cell := range week {
			if cell.Edge != wantEdge {
				t.Fatalf("week %d of %d: expected edge=%v", w, totalWeeks, wantEdge)
			}
		}
	}

	edgeWeeks := 0
	for _, week := range g.Weeks {
		if week[0].Edge {
			edgeWeeks++
		}
	}
	if edgeWeeks != edgeColumns {
		t.Fatalf("expected %d edge columns, got %d", edgeColumns, edgeWeeks)
	}
}

func TestGridMonthLabels(t *testing.T) {
	g := BuildGrid(day(t, "2024-06-10"), nil)

	if len(g.MonthLabels) == 0 {
		t.Fatal("expected month labels")
	}
	if g.MonthLabels[0].Week != 0 {
		t.Fatalf("first label should anchor to column 0, got %d", g.MonthLabels[0].Week)
	}
	for i := 1; i < len(g.MonthLabels); i++ {
		gap := g.MonthLabels[i].Week - g.MonthLabels[i-1].Week
		if gap < monthLabelGap {
			t.Fatalf("labels %d and %d only %d columns apart", i-1, i, gap)
		}
	}
	for _, lbl := range g.MonthLabels {
		if lbl.Week < 0 || lbl.Week >= len(g.Weeks) {
			t.Fatalf("label anchored outside grid: %+v", lbl)
		}
		if len(lbl.Text) != 3 {
			t.Fatalf("expected short month name, got %q", lbl.Text)
		}
	}
}

func TestGridDeterministic(t *testing.T) {
	today := day(t, "2024-06-10")
	set := completedSet(t, "2024-06-10", "2024-05-01", "2023-12-25")

	a := BuildGrid(today, set)
	b := BuildGrid(today, set)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("grid output should be deterministic")
	}
}

func TestGridDoesNotMutateInput(t *testing.T) {
	today := day(t, "2024-06-10")
	set := completedSet(t, "2024-06-10")
	BuildGrid(today, set)
	if len(set) != 1 || !set[today] {
		t.Fatal("BuildGrid mutated its input")
	}
}
