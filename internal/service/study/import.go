package study

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/heartmarshall/studytrack/internal/domain"
)

// ImportStats counts the outcome of ImportCardStates.
type ImportStats struct {
	Imported  int
	Skipped   int
	Invalid   int
	Bookmarks int
}

// ImportCardStates adds card states for ids the store does not know yet and
// merges bookmarks. Existing card states are never overwritten, so reviews
// stay the only way an existing card changes. Invalid states are skipped.
func (s *Service) ImportCardStates(ctx context.Context, states map[string]domain.CardState, bookmarks []string) (ImportStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stats ImportStats
	next := s.snap.Clone()

	ids := make([]string, 0, len(states))
	for id := range states {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		c := states[id]
		if _, exists := next.CardStates[id]; exists {
			stats.Skipped++
			continue
		}
		if err := c.Validate(id); err != nil {
			s.log.WarnContext(ctx, "skipping invalid imported card state",
				slog.String("card_id", id),
				slog.String("error", err.Error()),
			)
			stats.Invalid++
			continue
		}
		next.CardStates[id] = c.Clone()
		stats.Imported++
	}

	for _, id := range bookmarks {
		if !slices.Contains(next.Bookmarks, id) {
			next.Bookmarks = append(next.Bookmarks, id)
			stats.Bookmarks++
		}
	}

	if stats.Imported == 0 && stats.Bookmarks == 0 {
		return stats, nil
	}
	if err := s.commit(ctx, next); err != nil {
		return ImportStats{}, fmt.Errorf("import card states: %w", err)
	}

	s.log.InfoContext(ctx, "card states imported",
		slog.Int("imported", stats.Imported),
		slog.Int("skipped", stats.Skipped),
		slog.Int("invalid", stats.Invalid),
		slog.Int("bookmarks", stats.Bookmarks),
	)
	return stats, nil
}
