package progress

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/studytrack/internal/domain"
)

// ImportStats counts the outcome of Import.
type ImportStats struct {
	Checklist int
	Notes     int
	Skipped   int
}

// Import merges checklist items and notes from a backup. Keys that already
// exist keep their current value.
func (s *Service) Import(ctx context.Context, in domain.Progress) (ImportStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stats ImportStats
	next := s.data.Clone()

	for id, done := range in.Checklist {
		if _, ok := next.Checklist[id]; ok {
			stats.Skipped++
			continue
		}
		next.Checklist[id] = done
		stats.Checklist++
	}
	for topic, note := range in.Notes {
		if _, ok := next.Notes[topic]; ok {
			stats.Skipped++
			continue
		}
		next.Notes[topic] = note
		stats.Notes++
	}

	if stats.Checklist == 0 && stats.Notes == 0 {
		return stats, nil
	}
	if err := s.commit(ctx, next); err != nil {
		return ImportStats{}, fmt.Errorf("import progress: %w", err)
	}

	s.log.InfoContext(ctx, "progress imported",
		slog.Int("checklist", stats.Checklist),
		slog.Int("notes", stats.Notes),
		slog.Int("skipped", stats.Skipped),
	)
	return stats, nil
}
