package stats

import (
	"slices"
	"strings"
	"time"

	"github.com/heartmarshall/studytrack/internal/domain"
)

// ProgressWindow is the number of most recent active days ProgressByDate keeps.
const ProgressWindow = 30

const dateLayout = "2006-01-02"

// ProgressByDate counts events per local calendar day and returns the
// ProgressWindow most recent days in ascending order. Days without events
// are not included.
func ProgressByDate(events []time.Time, loc *time.Location) []domain.DateCount {
	if loc == nil {
		loc = time.Local
	}
	counts := make(map[string]int)
	for _, e := range events {
		counts[e.In(loc).Format(dateLayout)]++
	}

	out := make([]domain.DateCount, 0, len(counts))
	for date, n := range counts {
		out = append(out, domain.DateCount{Date: date, Count: n})
	}
	slices.SortFunc(out, func(a, b domain.DateCount) int { return strings.Compare(a.Date, b.Date) })

	if len(out) > ProgressWindow {
		out = out[len(out)-ProgressWindow:]
	}
	return out
}

// ReviewEvents returns the review times of a log.
func ReviewEvents(log []domain.ReviewLogEntry) []time.Time {
	out := make([]time.Time, len(log))
	for i, e := range log {
		out[i] = e.ReviewedAt
	}
	return out
}

// GradeDistribution counts log entries per grade.
func GradeDistribution(log []domain.ReviewLogEntry) domain.GradeCounts {
	var gc domain.GradeCounts
	for _, e := range log {
		switch e.Grade {
		case domain.GradeAgain:
			gc.Again++
		case domain.GradeHard:
			gc.Hard++
		case domain.GradeGood:
			gc.Good++
		case domain.GradeEasy:
			gc.Easy++
		}
	}
	return gc
}
