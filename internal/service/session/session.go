package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/studytrack/internal/domain"
	"github.com/heartmarshall/studytrack/internal/service/study"
	"github.com/heartmarshall/studytrack/pkg/ctxutil"
)

// ErrFinished is returned by Answer once every card was answered.
var ErrFinished = errors.New("session finished")

type reviewer interface {
	RecordReview(ctx context.Context, input study.ReviewCardInput) (study.ReviewResult, error)
}

// Session walks a review queue card by card. It is not safe for concurrent use.
type Session struct {
	ID        uuid.UUID
	StartedAt time.Time

	cards  []domain.Flashcard
	pos    int
	grades domain.GradeCounts
}

// New starts a session over queue.
func New(queue []domain.Flashcard, now time.Time) *Session {
	return &Session{
		ID:        uuid.New(),
		StartedAt: now,
		cards:     queue,
	}
}

// Current returns the card being asked, or false when the session is done.
func (s *Session) Current() (domain.Flashcard, bool) {
	if s.Done() {
		return domain.Flashcard{}, false
	}
	return s.cards[s.pos], true
}

// Next skips the current card without grading it and reports whether a card remains.
func (s *Session) Next() bool {
	if !s.Done() {
		s.pos++
	}
	return !s.Done()
}

// Done reports whether every card was answered or skipped.
func (s *Session) Done() bool {
	return s.pos >= len(s.cards)
}

// Remaining returns the number of cards not yet shown.
func (s *Session) Remaining() int {
	return len(s.cards) - s.pos
}

// Grades returns the counts of grades given so far.
func (s *Session) Grades() domain.GradeCounts {
	return s.grades
}

// Answer records grade for the current card through r and advances.
// On error the session stays on the same card. The session ID travels in
// the context passed to r.
func (s *Session) Answer(ctx context.Context, r reviewer, grade domain.Grade, now time.Time) (study.ReviewResult, error) {
	card, ok := s.Current()
	if !ok {
		return study.ReviewResult{}, ErrFinished
	}
	ctx = ctxutil.WithSessionID(ctx, s.ID)

	res, err := r.RecordReview(ctx, study.ReviewCardInput{
		CardID: card.ID,
		Topic:  card.Topic,
		Grade:  grade,
		Now:    now,
	})
	if err != nil {
		return study.ReviewResult{}, fmt.Errorf("answer card %q: %w", card.ID, err)
	}

	switch grade {
	case domain.GradeAgain:
		s.grades.Again++
	case domain.GradeHard:
		s.grades.Hard++
	case domain.GradeGood:
		s.grades.Good++
	case domain.GradeEasy:
		s.grades.Easy++
	}
	s.pos++
	return res, nil
}
