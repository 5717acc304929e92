// Package progress tracks the study plan checklist, per-topic notes and the
// daily study streak.
package progress

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/heartmarshall/studytrack/internal/codec"
	"github.com/heartmarshall/studytrack/internal/domain"
)

// RecordName is the name of the persisted progress record.
const RecordName = "study-progress"

const dateLayout = "2006-01-02"

type recordStore interface {
	Load(ctx context.Context, name string) ([]byte, error)
	Save(ctx context.Context, name string, data []byte) error
}

// Service owns the study plan progress record.
type Service struct {
	store recordStore
	log   *slog.Logger
	loc   *time.Location

	mu   sync.RWMutex
	data domain.Progress
}

// NewService creates a progress service. A nil loc means time.Local.
func NewService(log *slog.Logger, store recordStore, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		store: store,
		log:   log.With("service", "progress"),
		loc:   loc,
		data:  domain.NewProgress(),
	}
}

// Load reads the persisted record. A missing record yields empty progress.
func (s *Service) Load(ctx context.Context) error {
	raw, err := s.store.Load(ctx, RecordName)
	if errors.Is(err, domain.ErrNotFound) {
		s.mu.Lock()
		s.data = domain.NewProgress()
		s.mu.Unlock()
		return nil
	}
	if err != nil {
		return domain.NewPersistenceError("load", RecordName, err)
	}

	data, err := codec.DecodeProgress(raw)
	if err != nil {
		return domain.NewPersistenceError("load", RecordName, err)
	}

	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}

// Snapshot returns a deep copy of the progress record.
func (s *Service) Snapshot() domain.Progress {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Clone()
}

// Checklist returns a copy of the checklist.
func (s *Service) Checklist() map[string]bool {
	return s.Snapshot().Checklist
}

// Notes returns a copy of the notes keyed by topic id.
func (s *Service) Notes() map[string]string {
	return s.Snapshot().Notes
}

// ToggleChecklistItem flips a checklist item and returns its new value.
func (s *Service) ToggleChecklistItem(ctx context.Context, itemID string) (bool, error) {
	if strings.TrimSpace(itemID) == "" {
		return false, domain.NewValidationError("item_id", "required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.data.Clone()
	done := !next.Checklist[itemID]
	next.Checklist[itemID] = done
	if err := s.commit(ctx, next); err != nil {
		return false, fmt.Errorf("toggle checklist item: %w", err)
	}

	s.log.InfoContext(ctx, "checklist item toggled",
		slog.String("item_id", itemID),
		slog.Bool("done", done),
	)
	return done, nil
}

// UpdateNote replaces the note of a topic.
func (s *Service) UpdateNote(ctx context.Context, topicID, content string) error {
	if strings.TrimSpace(topicID) == "" {
		return domain.NewValidationError("topic_id", "required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.data.Clone()
	next.Notes[topicID] = content
	if err := s.commit(ctx, next); err != nil {
		return fmt.Errorf("update note: %w", err)
	}
	return nil
}

// WeekProgress returns the percentage of completed checklist items of a plan
// week, 0 when the week has no items.
func (s *Service) WeekProgress(month, week int) int {
	prefix := fmt.Sprintf("month%d-week%d-", month, week)

	s.mu.RLock()
	defer s.mu.RUnlock()

	items, completed := 0, 0
	for id, done := range s.data.Checklist {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		items++
		if done {
			completed++
		}
	}
	if items == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(items) * 100))
}

// RecordStudyDay marks now's local day as a study day and returns the streak.
// Consecutive days extend the streak; a missed day restarts it at 1.
func (s *Service) RecordStudyDay(ctx context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := now.In(s.loc).Format(dateLayout)
	if s.data.LastStudyDay == today {
		return s.data.Streak, nil
	}
	yesterday := now.In(s.loc).AddDate(0, 0, -1).Format(dateLayout)

	next := s.data.Clone()
	if next.LastStudyDay == yesterday {
		next.Streak++
	} else {
		next.Streak = 1
	}
	next.LastStudyDay = today

	if err := s.commit(ctx, next); err != nil {
		return 0, fmt.Errorf("record study day: %w", err)
	}
	return next.Streak, nil
}

// Streak returns the current study streak, 0 when the last study day is
// older than yesterday.
func (s *Service) Streak(now time.Time) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	local := now.In(s.loc)
	switch s.data.LastStudyDay {
	case local.Format(dateLayout), local.AddDate(0, 0, -1).Format(dateLayout):
		return s.data.Streak
	default:
		return 0
	}
}

func (s *Service) commit(ctx context.Context, next domain.Progress) error {
	raw, err := codec.EncodeProgress(next)
	if err != nil {
		return domain.NewPersistenceError("save", RecordName, err)
	}
	if err := s.store.Save(ctx, RecordName, raw); err != nil {
		return domain.NewPersistenceError("save", RecordName, err)
	}
	s.data = next
	return nil
}
