package stats

import (
	"slices"
	"strings"
	"time"

	"github.com/heartmarshall/studytrack/internal/domain"
)

// TopicProgress reports per-topic coverage of the content cards, grouped by
// each card's topic. A card counts as reviewed once it has a stored state with
// at least one rep. Results are sorted by topic.
func TopicProgress(cards []domain.Flashcard, snap domain.ReviewSnapshot, now time.Time) []domain.TopicStats {
	byTopic := make(map[string]*domain.TopicStats)
	for _, card := range cards {
		ts, ok := byTopic[card.Topic]
		if !ok {
			ts = &domain.TopicStats{Topic: card.Topic}
			byTopic[card.Topic] = ts
		}
		ts.Total++

		c, ok := snap.CardStates[card.ID]
		if !ok {
			continue
		}
		if c.Reps > 0 {
			ts.Reviewed++
		}
		if c.IsDue(now) {
			ts.Due++
		}
	}

	out := make([]domain.TopicStats, 0, len(byTopic))
	for _, ts := range byTopic {
		ts.Percent = percent(ts.Reviewed, ts.Total)
		out = append(out, *ts)
	}
	slices.SortFunc(out, func(a, b domain.TopicStats) int { return strings.Compare(a.Topic, b.Topic) })
	return out
}
