package stats

import (
	"slices"
	"time"
)

// EventDays maps event times to their local calendar days in loc, removes
// duplicates and sorts the result newest first. Each day is midnight in loc.
func EventDays(events []time.Time, loc *time.Location) []time.Time {
	if loc == nil {
		loc = time.Local
	}
	seen := make(map[time.Time]struct{}, len(events))
	days := make([]time.Time, 0, len(events))
	for _, e := range events {
		d := midnight(e, loc)
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		days = append(days, d)
	}
	slices.SortFunc(days, func(a, b time.Time) int { return b.Compare(a) })
	return days
}

// Streak counts consecutive days in days (newest first, one entry per day)
// ending today, or yesterday when today has no activity yet.
func Streak(days []time.Time, today time.Time) int {
	if len(days) == 0 {
		return 0
	}

	expected := today
	if !sameDay(days[0], today) {
		expected = today.AddDate(0, 0, -1)
	}

	streak := 0
	for _, d := range days {
		if !sameDay(d, expected) {
			break
		}
		streak++
		expected = expected.AddDate(0, 0, -1)
	}
	return streak
}

func midnight(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
