package domain

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestCardState_IsDue(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 2, 13, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		due  time.Time
		want bool
	}{
		{"due in past", now.Add(-time.Hour), true},
		{"due exactly now", now, true},
		{"due in future", now.Add(time.Nanosecond), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := CardState{Due: tt.due}
			if got := c.IsDue(now); got != tt.want {
				t.Errorf("IsDue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewCardState(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 2, 13, 12, 0, 0, 0, time.UTC)
	c := NewCardState(now)

	if c.State != StateNew || c.Reps != 0 || c.Lapses != 0 {
		t.Errorf("unexpected fresh state: %+v", c)
	}
	if !c.Due.Equal(now) {
		t.Errorf("Due = %v, want %v", c.Due, now)
	}
	if !c.IsDue(now) {
		t.Error("fresh card should be due immediately")
	}
	if err := c.Validate("x"); err != nil {
		t.Errorf("fresh card should validate: %v", err)
	}
}

func TestCardState_Clone(t *testing.T) {
	t.Parallel()

	last := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	c := CardState{Due: last.Add(24 * time.Hour), LastReview: &last}

	cp := c.Clone()
	*cp.LastReview = last.Add(time.Hour)

	if !c.LastReview.Equal(last) {
		t.Error("Clone shares LastReview pointer")
	}
}

func TestCardState_Validate(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 2, 13, 12, 0, 0, 0, time.UTC)
	last := now.Add(-48 * time.Hour)
	valid := func() CardState {
		return CardState{
			Due:           now,
			Stability:     3.2,
			Difficulty:    5.1,
			ElapsedDays:   2,
			ScheduledDays: 2,
			Reps:          3,
			State:         StateReview,
			LastReview:    &last,
		}
	}

	tests := []struct {
		name   string
		mutate func(c *CardState)
		field  string
	}{
		{"valid", func(c *CardState) {}, ""},
		{"unknown state", func(c *CardState) { c.State = State(7) }, "state"},
		{"zero due", func(c *CardState) { c.Due = time.Time{} }, "due"},
		{"NaN stability", func(c *CardState) { c.Stability = math.NaN() }, "stability"},
		{"negative elapsed", func(c *CardState) { c.ElapsedDays = -1 }, "elapsed_days"},
		{"infinite scheduled", func(c *CardState) { c.ScheduledDays = math.Inf(1) }, "scheduled_days"},
		{"negative reps", func(c *CardState) { c.Reps = -1 }, "reps"},
		{"negative lapses", func(c *CardState) { c.Lapses = -2 }, "lapses"},
		{"reviewed without reps", func(c *CardState) { c.Reps = 0 }, "state"},
		{"zero stability once reviewed", func(c *CardState) { c.Stability = 0 }, "stability"},
		{"difficulty above range", func(c *CardState) { c.Difficulty = 11 }, "difficulty"},
		{"due before last review", func(c *CardState) { c.Due = last.Add(-time.Minute) }, "due"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := valid()
			tt.mutate(&c)
			err := c.Validate("go-1")
			if tt.field == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var cse *CardStateError
			if !errors.As(err, &cse) {
				t.Fatalf("expected *CardStateError, got %v", err)
			}
			if cse.Field != tt.field {
				t.Errorf("Field = %q, want %q", cse.Field, tt.field)
			}
			if cse.CardID != "go-1" {
				t.Errorf("CardID = %q, want go-1", cse.CardID)
			}
		})
	}
}

func TestReviewSnapshot_Clone(t *testing.T) {
	t.Parallel()

	last := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	s := NewReviewSnapshot()
	s.CardStates["a"] = CardState{Due: last, Reps: 1, State: StateLearning, LastReview: &last}
	s.Bookmarks = append(s.Bookmarks, "a")
	s.ReviewLog = append(s.ReviewLog, ReviewLogEntry{CardID: "a", PrevState: s.CardStates["a"]})

	cp := s.Clone()
	cp.CardStates["b"] = CardState{}
	cp.Bookmarks[0] = "z"
	*cp.CardStates["a"].LastReview = last.Add(time.Hour)
	*cp.ReviewLog[0].PrevState.LastReview = last.Add(time.Hour)

	if _, ok := s.CardStates["b"]; ok {
		t.Error("Clone shares card map")
	}
	if s.Bookmarks[0] != "a" {
		t.Error("Clone shares bookmarks")
	}
	if !s.CardStates["a"].LastReview.Equal(last) {
		t.Error("Clone shares card LastReview")
	}
	if !s.ReviewLog[0].PrevState.LastReview.Equal(last) {
		t.Error("Clone shares log PrevState")
	}
}

func TestProgress_CloneNil(t *testing.T) {
	t.Parallel()

	cp := Progress{}.Clone()
	cp.Checklist["x"] = true
	cp.Notes["y"] = "z"
}
