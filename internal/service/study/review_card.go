package study

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/studytrack/internal/domain"
	"github.com/heartmarshall/studytrack/internal/service/study/fsrs"
)

// RecordReview schedules a card with the given grade, commits the new state,
// bumps the daily counter, appends the review log and persists the store.
// Cards without a state are created as New on first review.
func (s *Service) RecordReview(ctx context.Context, input ReviewCardInput) (ReviewResult, error) {
	if err := input.Validate(); err != nil {
		return ReviewResult{}, err
	}
	now := input.Now
	if now.IsZero() {
		now = s.clock()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	card, ok := s.snap.CardStates[input.CardID]
	if !ok {
		card = domain.NewCardState(now)
	}
	if err := card.Validate(input.CardID); err != nil {
		s.log.WarnContext(ctx, "resetting invalid card state before review",
			slog.String("card_id", input.CardID),
			slog.String("error", err.Error()),
		)
		card = resetCard(card, now)
	}
	if input.Topic != "" {
		card.Topic = input.Topic
	}

	// A review time before LastReview fails here and leaves the card as is.
	info, err := fsrs.ReviewCard(s.params, card, input.Grade, now)
	if err != nil {
		return ReviewResult{}, fmt.Errorf("schedule card %q: %w", input.CardID, err)
	}

	entry := info.Log
	entry.ID = uuid.New()
	entry.CardID = input.CardID

	next := s.snap.Clone()
	next.CardStates[input.CardID] = info.Card
	next.ReviewLog = append(next.ReviewLog, entry)

	// Reviews dated before LastReviewDay are logged but do not move the counter back.
	switch today := DateString(now, s.loc); {
	case today == next.LastReviewDay:
		next.ReviewsToday++
	case today > next.LastReviewDay:
		next.ReviewsToday = 1
		next.LastReviewDay = today
	}

	if err := s.commit(ctx, next); err != nil {
		return ReviewResult{}, fmt.Errorf("record review: %w", err)
	}

	s.log.InfoContext(ctx, "card reviewed",
		slog.String("card_id", input.CardID),
		slog.String("grade", input.Grade.String()),
		slog.String("old_state", card.State.String()),
		slog.String("new_state", info.Card.State.String()),
		slog.Float64("stability", info.Card.Stability),
		slog.Time("due", info.Card.Due),
	)

	return ReviewResult{Card: info.Card.Clone(), Log: entry, ReviewsToday: next.ReviewsToday}, nil
}

// PreviewReview returns the projected outcome of each grade without
// changing the store.
func (s *Service) PreviewReview(cardID string, now time.Time) (fsrs.RecordLog, error) {
	s.mu.RLock()
	card, ok := s.snap.CardStates[cardID]
	s.mu.RUnlock()
	if !ok {
		card = domain.NewCardState(now)
	}

	if card.Validate(cardID) != nil {
		card = resetCard(card, now)
	}

	states, err := fsrs.ComputeNextStates(s.params, card, now)
	if err != nil {
		return nil, fmt.Errorf("preview card %q: %w", cardID, err)
	}
	return states, nil
}

// resetCard returns a fresh New state that keeps the card's topic.
func resetCard(c domain.CardState, now time.Time) domain.CardState {
	fresh := domain.NewCardState(now)
	fresh.Topic = c.Topic
	return fresh
}
