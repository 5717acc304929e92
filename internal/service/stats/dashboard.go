package stats

import (
	"time"

	"github.com/heartmarshall/studytrack/internal/domain"
)

// DashboardInput carries the read-only data BuildDashboard aggregates.
type DashboardInput struct {
	Reviews  domain.ReviewSnapshot
	Problems []domain.Problem
	Now      time.Time
	Location *time.Location
}

// BuildDashboard combines review, streak and problem statistics.
func BuildDashboard(in DashboardInput) domain.Dashboard {
	loc := in.Location
	if loc == nil {
		loc = time.Local
	}
	today := midnight(in.Now, loc)
	reviewEvents := ReviewEvents(in.Reviews.ReviewLog)
	problemEvents := ProblemEvents(in.Problems)

	reviewsToday := 0
	if in.Reviews.LastReviewDay == in.Now.In(loc).Format(dateLayout) {
		reviewsToday = in.Reviews.ReviewsToday
	}

	return domain.Dashboard{
		Stats:          ReviewStats(in.Reviews, in.Now),
		ReviewsToday:   reviewsToday,
		ReviewStreak:   Streak(EventDays(reviewEvents, loc), today),
		ProblemStreak:  Streak(EventDays(problemEvents, loc), today),
		Bookmarks:      len(in.Reviews.Bookmarks),
		Grades:         GradeDistribution(in.Reviews.ReviewLog),
		ReviewProgress: ProgressByDate(reviewEvents, loc),
		ByDifficulty:   StatsByDifficulty(in.Problems),
		ByPattern:      StatsByPattern(in.Problems),
	}
}
