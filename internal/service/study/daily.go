package study

import (
	"context"
	"fmt"
	"time"
)

// ResetDailyStats zeroes the daily review counter and moves it to the day of now.
func (s *Service) ResetDailyStats(ctx context.Context, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.snap.Clone()
	next.ReviewsToday = 0
	next.LastReviewDay = DateString(now, s.loc)

	if err := s.commit(ctx, next); err != nil {
		return fmt.Errorf("reset daily stats: %w", err)
	}
	return nil
}

// ReviewsToday returns the number of reviews recorded on the calendar day of now.
// The stored counter belongs to an earlier day once the date has advanced.
func (s *Service) ReviewsToday(now time.Time) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap.LastReviewDay != DateString(now, s.loc) {
		return 0
	}
	return s.snap.ReviewsToday
}
