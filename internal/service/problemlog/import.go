package problemlog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/studytrack/internal/domain"
)

// ImportStats counts the outcome of Import.
type ImportStats struct {
	Problems           int
	SkippedProblems    int
	Suggestions        int
	SkippedSuggestions int
}

// Import merges problems and suggestions from a backup. Items whose id is
// already present (id and topic for suggestions) are skipped. The username
// is taken from the backup only when none is set.
func (s *Service) Import(ctx context.Context, in domain.ProblemLog) (ImportStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stats ImportStats
	next := s.data.Clone()
	changed := false

	if next.Username == "" && in.Username != "" {
		next.Username = in.Username
		changed = true
	}

	have := make(map[string]struct{}, len(next.Problems))
	for _, p := range next.Problems {
		have[p.ID] = struct{}{}
	}
	for _, p := range in.Problems {
		if _, ok := have[p.ID]; ok || p.ID == "" {
			stats.SkippedProblems++
			continue
		}
		have[p.ID] = struct{}{}
		next.Problems = append(next.Problems, p)
		stats.Problems++
	}

	type suggestionKey struct{ id, topic string }
	haveSg := make(map[suggestionKey]struct{}, len(next.Suggestions))
	for _, sg := range next.Suggestions {
		haveSg[suggestionKey{sg.ID, sg.TopicID}] = struct{}{}
	}
	for _, sg := range in.Suggestions {
		key := suggestionKey{sg.ID, sg.TopicID}
		if _, ok := haveSg[key]; ok {
			stats.SkippedSuggestions++
			continue
		}
		haveSg[key] = struct{}{}
		next.Suggestions = append(next.Suggestions, sg)
		stats.Suggestions++
	}

	if !changed && stats.Problems == 0 && stats.Suggestions == 0 {
		return stats, nil
	}
	if err := s.commit(ctx, next.Clone()); err != nil {
		return ImportStats{}, fmt.Errorf("import problem log: %w", err)
	}

	s.log.InfoContext(ctx, "problem log imported",
		slog.Int("problems", stats.Problems),
		slog.Int("suggestions", stats.Suggestions),
		slog.Int("skipped", stats.SkippedProblems+stats.SkippedSuggestions),
	)
	return stats, nil
}
