package problemlog

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/heartmarshall/studytrack/internal/codec"
	"github.com/heartmarshall/studytrack/internal/domain"
)

// RecordName is the name of the persisted problem log record.
const RecordName = "study-problem-log"

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type recordStore interface {
	Load(ctx context.Context, name string) ([]byte, error)
	Save(ctx context.Context, name string, data []byte) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service owns the practice problem log and the custom topic suggestions.
type Service struct {
	store recordStore
	log   *slog.Logger

	mu   sync.RWMutex
	data domain.ProblemLog
}

// NewService creates a problem log service with an empty log. Call Load before use.
func NewService(log *slog.Logger, store recordStore) *Service {
	return &Service{
		store: store,
		log:   log.With("service", "problemlog"),
		data:  emptyLog(),
	}
}

// Load reads the persisted record. A missing record yields an empty log.
func (s *Service) Load(ctx context.Context) error {
	raw, err := s.store.Load(ctx, RecordName)
	if errors.Is(err, domain.ErrNotFound) {
		s.mu.Lock()
		s.data = emptyLog()
		s.mu.Unlock()
		return nil
	}
	if err != nil {
		return domain.NewPersistenceError("load", RecordName, err)
	}

	data, err := codec.DecodeProblemLog(raw)
	if err != nil {
		return domain.NewPersistenceError("load", RecordName, err)
	}

	s.mu.Lock()
	s.data = data
	s.mu.Unlock()

	s.log.InfoContext(ctx, "problem log loaded",
		slog.Int("problems", len(data.Problems)),
		slog.Int("suggestions", len(data.Suggestions)),
	)
	return nil
}

// Snapshot returns a deep copy of the log.
func (s *Service) Snapshot() domain.ProblemLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Clone()
}

// Problems returns a copy of the logged problems in insertion order.
func (s *Service) Problems() []domain.Problem {
	return s.Snapshot().Problems
}

// Username returns the stored practice site username.
func (s *Service) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Username
}

// SetUsername stores the practice site username.
func (s *Service) SetUsername(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.data.Clone()
	next.Username = username
	return s.commit(ctx, next)
}

// commit persists next and swaps it in. The caller holds s.mu for writing.
func (s *Service) commit(ctx context.Context, next domain.ProblemLog) error {
	raw, err := codec.EncodeProblemLog(next)
	if err != nil {
		return domain.NewPersistenceError("save", RecordName, err)
	}
	if err := s.store.Save(ctx, RecordName, raw); err != nil {
		return domain.NewPersistenceError("save", RecordName, err)
	}
	s.data = next
	return nil
}

func emptyLog() domain.ProblemLog {
	return domain.ProblemLog{
		Problems:    []domain.Problem{},
		Suggestions: []domain.Suggestion{},
	}
}
