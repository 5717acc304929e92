// Package codec maps domain aggregates to the JSON documents they are
// persisted and exported as. Timestamps are written as RFC 3339 in UTC.
package codec

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/studytrack/internal/domain"
)

// CardState is the persisted form of domain.CardState.
type CardState struct {
	Due           time.Time  `json:"due"`
	Stability     float64    `json:"stability"`
	Difficulty    float64    `json:"difficulty"`
	ElapsedDays   float64    `json:"elapsedDays"`
	ScheduledDays float64    `json:"scheduledDays"`
	Reps          int        `json:"reps"`
	Lapses        int        `json:"lapses"`
	State         int        `json:"state"`
	LastReview    *time.Time `json:"lastReview,omitempty"`
	Step          int        `json:"step"`
	Topic         string     `json:"topic,omitempty"`
}

// ReviewLogEntry is the persisted form of domain.ReviewLogEntry.
type ReviewLogEntry struct {
	ID            uuid.UUID `json:"id"`
	CardID        string    `json:"cardId"`
	Topic         string    `json:"topic,omitempty"`
	Grade         int       `json:"grade"`
	ReviewedAt    time.Time `json:"reviewedAt"`
	State         int       `json:"state"`
	Due           time.Time `json:"due"`
	Stability     float64   `json:"stability"`
	Difficulty    float64   `json:"difficulty"`
	ElapsedDays   float64   `json:"elapsedDays"`
	ScheduledDays float64   `json:"scheduledDays"`
	PrevState     CardState `json:"prevState"`
}

// ReviewStore is the persisted review store record.
type ReviewStore struct {
	CardStates    map[string]CardState `json:"cardStates"`
	Bookmarks     []string             `json:"bookmarks"`
	ReviewsToday  int                  `json:"reviewsToday"`
	LastReviewDay string               `json:"lastReviewDay"`
	ReviewLog     []ReviewLogEntry     `json:"reviewLog,omitempty"`
}

func fromCardState(c domain.CardState) CardState {
	out := CardState{
		Due:           c.Due.UTC(),
		Stability:     c.Stability,
		Difficulty:    c.Difficulty,
		ElapsedDays:   c.ElapsedDays,
		ScheduledDays: c.ScheduledDays,
		Reps:          c.Reps,
		Lapses:        c.Lapses,
		State:         int(c.State),
		Step:          c.Step,
		Topic:         c.Topic,
	}
	if c.LastReview != nil {
		t := c.LastReview.UTC()
		out.LastReview = &t
	}
	return out
}

func (c CardState) toDomain() domain.CardState {
	out := domain.CardState{
		Due:           c.Due,
		Stability:     c.Stability,
		Difficulty:    c.Difficulty,
		ElapsedDays:   c.ElapsedDays,
		ScheduledDays: c.ScheduledDays,
		Reps:          c.Reps,
		Lapses:        c.Lapses,
		State:         domain.State(c.State),
		Step:          c.Step,
		Topic:         c.Topic,
	}
	if c.LastReview != nil {
		t := *c.LastReview
		out.LastReview = &t
	}
	return out
}

// FromReviewSnapshot converts a snapshot to its persisted form.
func FromReviewSnapshot(s domain.ReviewSnapshot) ReviewStore {
	out := ReviewStore{
		CardStates:    make(map[string]CardState, len(s.CardStates)),
		Bookmarks:     append([]string{}, s.Bookmarks...),
		ReviewsToday:  s.ReviewsToday,
		LastReviewDay: s.LastReviewDay,
	}
	for id, c := range s.CardStates {
		out.CardStates[id] = fromCardState(c)
	}
	if len(s.ReviewLog) > 0 {
		out.ReviewLog = make([]ReviewLogEntry, len(s.ReviewLog))
		for i, e := range s.ReviewLog {
			out.ReviewLog[i] = ReviewLogEntry{
				ID:            e.ID,
				CardID:        e.CardID,
				Topic:         e.Topic,
				Grade:         int(e.Grade),
				ReviewedAt:    e.ReviewedAt.UTC(),
				State:         int(e.State),
				Due:           e.Due.UTC(),
				Stability:     e.Stability,
				Difficulty:    e.Difficulty,
				ElapsedDays:   e.ElapsedDays,
				ScheduledDays: e.ScheduledDays,
				PrevState:     fromCardState(e.PrevState),
			}
		}
	}
	return out
}

// ToDomain converts the persisted form back to a snapshot. Card states are
// not validated here.
func (r ReviewStore) ToDomain() domain.ReviewSnapshot {
	out := domain.NewReviewSnapshot()
	for id, c := range r.CardStates {
		out.CardStates[id] = c.toDomain()
	}
	out.Bookmarks = append(out.Bookmarks, r.Bookmarks...)
	out.ReviewsToday = r.ReviewsToday
	out.LastReviewDay = r.LastReviewDay
	for _, e := range r.ReviewLog {
		out.ReviewLog = append(out.ReviewLog, domain.ReviewLogEntry{
			ID:            e.ID,
			CardID:        e.CardID,
			Topic:         e.Topic,
			Grade:         domain.Grade(e.Grade),
			ReviewedAt:    e.ReviewedAt,
			State:         domain.State(e.State),
			Due:           e.Due,
			Stability:     e.Stability,
			Difficulty:    e.Difficulty,
			ElapsedDays:   e.ElapsedDays,
			ScheduledDays: e.ScheduledDays,
			PrevState:     e.PrevState.toDomain(),
		})
	}
	return out
}

// EncodeReviewStore serializes a snapshot.
func EncodeReviewStore(s domain.ReviewSnapshot) ([]byte, error) {
	data, err := json.Marshal(FromReviewSnapshot(s))
	if err != nil {
		return nil, fmt.Errorf("encode review store: %w", err)
	}
	return data, nil
}

// DecodeReviewStore parses a serialized snapshot.
func DecodeReviewStore(data []byte) (domain.ReviewSnapshot, error) {
	var r ReviewStore
	if err := json.Unmarshal(data, &r); err != nil {
		return domain.ReviewSnapshot{}, fmt.Errorf("decode review store: %w", err)
	}
	return r.ToDomain(), nil
}
