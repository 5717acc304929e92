// Package stats computes due sets and aggregate statistics from read-only
// snapshots of the study stores. Every function is pure.
package stats

import (
	"math"
	"slices"
	"strings"
	"time"

	"github.com/heartmarshall/studytrack/internal/domain"
)

// DueCardIDs returns the ids of stored cards with due <= now whose id starts
// with prefix, sorted. Cards without a stored state are not included; callers
// that want never-reviewed content must add it themselves.
func DueCardIDs(snap domain.ReviewSnapshot, now time.Time, prefix string) []string {
	ids := make([]string, 0)
	for id, c := range snap.CardStates {
		if c.IsDue(now) && strings.HasPrefix(id, prefix) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// DueCardIDsByTopic returns the sorted ids of due cards whose topic equals topic.
func DueCardIDsByTopic(snap domain.ReviewSnapshot, now time.Time, topic string) []string {
	ids := make([]string, 0)
	for id, c := range snap.CardStates {
		if c.IsDue(now) && c.Topic == topic {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// ReviewStats counts the stored card states by state and due status.
func ReviewStats(snap domain.ReviewSnapshot, now time.Time) domain.ReviewStats {
	var st domain.ReviewStats
	for _, c := range snap.CardStates {
		st.Total++
		if c.IsDue(now) {
			st.Due++
		}
		if c.Reps == 0 {
			st.New++
		}
		switch c.State {
		case domain.StateLearning:
			st.Learning++
		case domain.StateReview:
			st.Review++
		case domain.StateRelearning:
			st.Relearning++
		case domain.StateNew:
		}
	}
	st.RetentionRate = percent(st.Total-st.Due, st.Total)
	return st
}

// percent returns round(part/total*100), or 0 when total is 0.
func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
