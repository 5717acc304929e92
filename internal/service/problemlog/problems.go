package problemlog

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/studytrack/internal/domain"
)

// AddProblem appends a solved problem. SolvedAt defaults to now and an id is
// generated when the input has none. Adding an id that is already logged
// fails with domain.ErrAlreadyExists.
func (s *Service) AddProblem(ctx context.Context, input AddProblemInput, now time.Time) (domain.Problem, error) {
	if err := input.Validate(); err != nil {
		return domain.Problem{}, err
	}

	p := domain.Problem{
		ID:         input.ID,
		Title:      input.Title,
		Difficulty: input.Difficulty,
		Pattern:    input.Pattern,
		SolvedAt:   input.SolvedAt,
		Notes:      input.Notes,
		Tags:       slices.Clone(input.Tags),
		RetryCount: input.RetryCount,
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.SolvedAt.IsZero() {
		p.SolvedAt = now
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(p.ID) >= 0 {
		return domain.Problem{}, fmt.Errorf("problem %q: %w", p.ID, domain.ErrAlreadyExists)
	}

	next := s.data.Clone()
	next.Problems = append(next.Problems, p)
	if err := s.commit(ctx, next); err != nil {
		return domain.Problem{}, fmt.Errorf("add problem: %w", err)
	}

	s.log.InfoContext(ctx, "problem added",
		slog.String("problem_id", p.ID),
		slog.String("difficulty", p.Difficulty.String()),
		slog.String("pattern", p.Pattern),
	)
	return p, nil
}

// RemoveProblem deletes a problem by id.
func (s *Service) RemoveProblem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("problem %q: %w", id, domain.ErrNotFound)
	}

	next := s.data.Clone()
	next.Problems = slices.Delete(next.Problems, idx, idx+1)
	if err := s.commit(ctx, next); err != nil {
		return fmt.Errorf("remove problem: %w", err)
	}

	s.log.InfoContext(ctx, "problem removed", slog.String("problem_id", id))
	return nil
}

// RemoveBulk deletes every problem whose id is in ids and returns how many
// were removed. Unknown ids are ignored.
func (s *Service) RemoveBulk(ctx context.Context, ids []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.data.Clone()
	next.Problems = slices.DeleteFunc(next.Problems, func(p domain.Problem) bool {
		return slices.Contains(ids, p.ID)
	})
	removed := len(s.data.Problems) - len(next.Problems)
	if removed == 0 {
		return 0, nil
	}

	if err := s.commit(ctx, next); err != nil {
		return 0, fmt.Errorf("remove problems: %w", err)
	}

	s.log.InfoContext(ctx, "problems removed", slog.Int("count", removed))
	return removed, nil
}

// UpdateProblem applies a partial update to a logged problem.
func (s *Service) UpdateProblem(ctx context.Context, id string, input UpdateProblemInput) (domain.Problem, error) {
	if err := input.Validate(); err != nil {
		return domain.Problem{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return domain.Problem{}, fmt.Errorf("problem %q: %w", id, domain.ErrNotFound)
	}

	next := s.data.Clone()
	p := &next.Problems[idx]
	if input.Title != nil {
		p.Title = *input.Title
	}
	if input.Difficulty != nil {
		p.Difficulty = *input.Difficulty
	}
	if input.Pattern != nil {
		p.Pattern = *input.Pattern
	}
	if input.SolvedAt != nil {
		p.SolvedAt = *input.SolvedAt
	}
	if input.Notes != nil {
		p.Notes = *input.Notes
	}
	if input.Tags != nil {
		p.Tags = slices.Clone(*input.Tags)
	}
	if input.RetryCount != nil {
		p.RetryCount = *input.RetryCount
	}
	updated := *p

	if err := s.commit(ctx, next); err != nil {
		return domain.Problem{}, fmt.Errorf("update problem: %w", err)
	}

	s.log.InfoContext(ctx, "problem updated", slog.String("problem_id", id))
	return updated, nil
}

// indexOf returns the position of a problem id, or -1. The caller holds s.mu.
func (s *Service) indexOf(id string) int {
	return slices.IndexFunc(s.data.Problems, func(p domain.Problem) bool { return p.ID == id })
}
