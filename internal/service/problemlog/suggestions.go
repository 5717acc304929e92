package problemlog

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/heartmarshall/studytrack/internal/domain"
)

// AddSuggestion attaches a custom problem suggestion to a topic. A suggestion
// with the same id and topic is kept as is and false is returned.
func (s *Service) AddSuggestion(ctx context.Context, input AddSuggestionInput, now time.Time) (bool, error) {
	if err := input.Validate(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.suggestionIndex(input.ID, input.TopicID) >= 0 {
		return false, nil
	}

	next := s.data.Clone()
	next.Suggestions = append(next.Suggestions, domain.Suggestion{
		ID:         input.ID,
		Title:      input.Title,
		Difficulty: input.Difficulty,
		Pattern:    input.Pattern,
		TopicID:    input.TopicID,
		Relevance:  input.Relevance,
		AddedAt:    now,
	})
	if err := s.commit(ctx, next); err != nil {
		return false, fmt.Errorf("add suggestion: %w", err)
	}

	s.log.InfoContext(ctx, "suggestion added",
		slog.String("suggestion_id", input.ID),
		slog.String("topic_id", input.TopicID),
	)
	return true, nil
}

// RemoveSuggestion deletes the suggestion with the given id from a topic.
func (s *Service) RemoveSuggestion(ctx context.Context, id, topicID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.suggestionIndex(id, topicID)
	if idx < 0 {
		return fmt.Errorf("suggestion %q in topic %q: %w", id, topicID, domain.ErrNotFound)
	}

	next := s.data.Clone()
	next.Suggestions = slices.Delete(next.Suggestions, idx, idx+1)
	if err := s.commit(ctx, next); err != nil {
		return fmt.Errorf("remove suggestion: %w", err)
	}
	return nil
}

// SuggestionsByTopic returns the suggestions attached to a topic in insertion order.
func (s *Service) SuggestionsByTopic(topicID string) []domain.Suggestion {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Suggestion, 0)
	for _, sg := range s.data.Suggestions {
		if sg.TopicID == topicID {
			out = append(out, sg)
		}
	}
	return out
}

func (s *Service) suggestionIndex(id, topicID string) int {
	return slices.IndexFunc(s.data.Suggestions, func(sg domain.Suggestion) bool {
		return sg.ID == id && sg.TopicID == topicID
	})
}
