// Package session builds review queues from content cards and walks them.
package session

import (
	"slices"
	"strings"
	"time"

	"github.com/heartmarshall/studytrack/internal/domain"
)

// DefaultLimit is the queue size used when Filter.Limit is not positive.
const DefaultLimit = 20

// Filter narrows the content cards a queue is built from.
type Filter struct {
	// Topics keeps cards of any of the listed topics. Empty keeps all.
	Topics []string
	// BookmarkedOnly keeps bookmarked cards only.
	BookmarkedOnly bool
	// Query keeps cards whose front or back contains it, case-insensitively.
	Query string
	Limit int
}

// BuildQueue returns the filtered content cards that are due at now or were
// never reviewed, in content order, capped at the filter limit.
func BuildQueue(cards []domain.Flashcard, snap domain.ReviewSnapshot, now time.Time, f Filter) []domain.Flashcard {
	limit := f.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	query := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]domain.Flashcard, 0, min(limit, len(cards)))
	for _, card := range cards {
		if len(out) == limit {
			break
		}
		if f.BookmarkedOnly && !slices.Contains(snap.Bookmarks, card.ID) {
			continue
		}
		if len(f.Topics) > 0 && !slices.Contains(f.Topics, card.Topic) {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(card.Front), query) &&
			!strings.Contains(strings.ToLower(card.Back), query) {
			continue
		}
		if state, ok := snap.CardStates[card.ID]; ok && !state.IsDue(now) {
			continue
		}
		out = append(out, card)
	}
	return out
}
