package study

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/heartmarshall/studytrack/internal/codec"
	"github.com/heartmarshall/studytrack/internal/domain"
	"github.com/heartmarshall/studytrack/internal/service/study/fsrs"
)

// RecordName is the name of the persisted review store record.
const RecordName = "study-review-store"

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

// recordStore loads and saves whole named records. Load returns
// domain.ErrNotFound when the record was never saved.
type recordStore interface {
	Load(ctx context.Context, name string) ([]byte, error)
	Save(ctx context.Context, name string, data []byte) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service is the review store: it owns the card states, bookmarks and daily
// counter, and is the only component that mutates them.
type Service struct {
	store  recordStore
	log    *slog.Logger
	params fsrs.Parameters
	loc    *time.Location
	clock  func() time.Time

	mu   sync.RWMutex
	snap domain.ReviewSnapshot
}

// NewService creates a review store with an empty snapshot. Call Load before use.
func NewService(log *slog.Logger, store recordStore, params fsrs.Parameters, loc *time.Location) (*Service, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid FSRS parameters: %w", err)
	}
	if loc == nil {
		loc = time.Local
	}

	return &Service{
		store:  store,
		log:    log.With("service", "study"),
		params: params,
		loc:    loc,
		clock:  time.Now,
		snap:   domain.NewReviewSnapshot(),
	}, nil
}

// Load reads the persisted record. A missing record yields an empty store.
// Card states that fail validation are replaced by fresh New states.
func (s *Service) Load(ctx context.Context) error {
	data, err := s.store.Load(ctx, RecordName)
	if errors.Is(err, domain.ErrNotFound) {
		s.mu.Lock()
		s.snap = domain.NewReviewSnapshot()
		s.mu.Unlock()
		s.log.InfoContext(ctx, "review store initialized empty")
		return nil
	}
	if err != nil {
		return domain.NewPersistenceError("load", RecordName, err)
	}

	snap, err := codec.DecodeReviewStore(data)
	if err != nil {
		return domain.NewPersistenceError("load", RecordName, err)
	}

	now := s.clock()
	for id, c := range snap.CardStates {
		if err := c.Validate(id); err != nil {
			s.log.WarnContext(ctx, "resetting invalid card state",
				slog.String("card_id", id),
				slog.String("error", err.Error()),
			)
			snap.CardStates[id] = resetCard(c, now)
		}
	}
	snap.Bookmarks = dedupe(snap.Bookmarks)

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	s.log.InfoContext(ctx, "review store loaded",
		slog.Int("cards", len(snap.CardStates)),
		slog.Int("bookmarks", len(snap.Bookmarks)),
		slog.Int("log_entries", len(snap.ReviewLog)),
	)
	return nil
}

// Snapshot returns a deep copy of the current store for read-only aggregation.
func (s *Service) Snapshot() domain.ReviewSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Clone()
}

// GetCardState returns the state of a card, or false if it was never reviewed.
func (s *Service) GetCardState(cardID string) (domain.CardState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.snap.CardStates[cardID]
	if !ok {
		return domain.CardState{}, false
	}
	return c.Clone(), true
}

// Location returns the time zone used for calendar-day bookkeeping.
func (s *Service) Location() *time.Location {
	return s.loc
}

// commit persists next and swaps it in. The caller holds s.mu for writing.
// On failure the in-memory snapshot is left untouched.
func (s *Service) commit(ctx context.Context, next domain.ReviewSnapshot) error {
	data, err := codec.EncodeReviewStore(next)
	if err != nil {
		return domain.NewPersistenceError("save", RecordName, err)
	}
	if err := s.store.Save(ctx, RecordName, data); err != nil {
		return domain.NewPersistenceError("save", RecordName, err)
	}
	s.snap = next
	return nil
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
