package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Difficulty bounds of a reviewed card.
const (
	MinDifficulty = 1.0
	MaxDifficulty = 10.0
)

// CardState is the FSRS memory record of one flashcard, keyed by the card id
// in the review store.
type CardState struct {
	Due           time.Time
	Stability     float64
	Difficulty    float64
	ElapsedDays   float64
	ScheduledDays float64
	Reps          int
	Lapses        int
	Step          int
	State         State
	LastReview    *time.Time
	// Topic is the content topic the card belongs to. Empty when unknown.
	Topic string
}

// NewCardState returns the zero-history state of a card that was never reviewed.
func NewCardState(now time.Time) CardState {
	return CardState{
		Due:   now,
		State: StateNew,
	}
}

// IsDue returns true if the card needs review at the given time (Due <= now).
func (c CardState) IsDue(now time.Time) bool {
	return !c.Due.After(now)
}

// Clone returns a copy that shares no pointers with c.
func (c CardState) Clone() CardState {
	out := c
	if c.LastReview != nil {
		t := *c.LastReview
		out.LastReview = &t
	}
	return out
}

// Validate checks the scheduling invariants and returns a *CardStateError
// naming the first violated one.
func (c CardState) Validate(cardID string) error {
	fail := func(field, reason string) error {
		return &CardStateError{CardID: cardID, Field: field, Reason: reason}
	}

	if !c.State.IsValid() {
		return fail("state", "unknown state "+c.State.String())
	}
	if c.Due.IsZero() {
		return fail("due", "required")
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"stability", c.Stability},
		{"difficulty", c.Difficulty},
		{"elapsed_days", c.ElapsedDays},
		{"scheduled_days", c.ScheduledDays},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fail(f.name, "must be finite")
		}
		if f.v < 0 {
			return fail(f.name, "must be non-negative")
		}
	}
	if c.Reps < 0 {
		return fail("reps", "must be non-negative")
	}
	if c.Lapses < 0 {
		return fail("lapses", "must be non-negative")
	}
	if c.Step < 0 {
		return fail("step", "must be non-negative")
	}
	if c.Reps == 0 && c.State != StateNew {
		return fail("state", "card without reps must be NEW, got "+c.State.String())
	}
	if c.State != StateNew {
		if c.Stability <= 0 {
			return fail("stability", "must be positive once reviewed")
		}
		if c.Difficulty < MinDifficulty || c.Difficulty > MaxDifficulty {
			return fail("difficulty", "must be within [1, 10] once reviewed")
		}
	}
	if c.LastReview != nil && c.Due.Before(*c.LastReview) {
		return fail("due", "precedes last review")
	}
	return nil
}

// ReviewLogEntry is the immutable record of one review event.
type ReviewLogEntry struct {
	ID            uuid.UUID
	CardID        string
	Topic         string
	Grade         Grade
	ReviewedAt    time.Time
	State         State
	Due           time.Time
	Stability     float64
	Difficulty    float64
	ElapsedDays   float64
	ScheduledDays float64
	// PrevState is the card as it was before the review.
	PrevState CardState
}

// Flashcard is a read-only content card supplied by the content collaborator.
type Flashcard struct {
	ID    string
	Front string
	Back  string
	Topic string
}
