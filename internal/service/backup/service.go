// Package backup exports every study record into a single JSON document and
// merges such documents back in.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/heartmarshall/studytrack/internal/codec"
	"github.com/heartmarshall/studytrack/internal/domain"
	"github.com/heartmarshall/studytrack/internal/service/problemlog"
	"github.com/heartmarshall/studytrack/internal/service/progress"
	"github.com/heartmarshall/studytrack/internal/service/study"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type reviewStore interface {
	Snapshot() domain.ReviewSnapshot
	ImportCardStates(ctx context.Context, states map[string]domain.CardState, bookmarks []string) (study.ImportStats, error)
}

type problemStore interface {
	Snapshot() domain.ProblemLog
	Import(ctx context.Context, in domain.ProblemLog) (problemlog.ImportStats, error)
}

type progressStore interface {
	Snapshot() domain.Progress
	Import(ctx context.Context, in domain.Progress) (progress.ImportStats, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service exports and imports backups across the study stores.
type Service struct {
	log      *slog.Logger
	reviews  reviewStore
	problems problemStore
	progress progressStore
}

// NewService creates a backup service over the given stores.
func NewService(log *slog.Logger, reviews reviewStore, problems problemStore, progress progressStore) *Service {
	return &Service{
		log:      log.With("service", "backup"),
		reviews:  reviews,
		problems: problems,
		progress: progress,
	}
}

// ImportReport counts what Import added and skipped.
type ImportReport struct {
	Checklist   int
	Notes       int
	Problems    int
	Suggestions int
	Cards       int
	Bookmarks   int
	Skipped     int
	Invalid     int
}

// Export renders the current state of every store as an indented backup
// document. The review log is not exported.
func (s *Service) Export(ctx context.Context, now time.Time) ([]byte, error) {
	progressDoc := codec.FromProgress(s.progress.Snapshot())
	problemsDoc := codec.FromProblemLog(s.problems.Snapshot())
	cards := s.reviews.Snapshot()
	cards.ReviewLog = nil
	cardsDoc := codec.FromReviewSnapshot(cards)

	doc := codec.Backup{
		Version:    codec.BackupVersion,
		ExportedAt: now.UTC(),
		Progress:   &progressDoc,
		Flashcards: &cardsDoc,
		Problems:   &problemsDoc,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode backup: %w", err)
	}

	s.log.InfoContext(ctx, "backup exported",
		slog.Int("cards", len(cardsDoc.CardStates)),
		slog.Int("problems", len(problemsDoc.Problems)),
		slog.Int("checklist", len(progressDoc.Checklist)),
	)
	return data, nil
}

// Import merges a backup document into the stores. Existing items are never
// overwritten. The whole document is checked before any store changes, so a
// malformed or unversioned document fails with *domain.ImportFormatError and
// leaves every store untouched. Stores are written one after another; a
// persistence failure keeps the stores merged before it.
func (s *Service) Import(ctx context.Context, data []byte) (ImportReport, error) {
	doc, err := decode(data)
	if err != nil {
		return ImportReport{}, err
	}

	var report ImportReport

	if doc.Progress != nil {
		st, err := s.progress.Import(ctx, doc.Progress.ToDomain())
		if err != nil {
			return report, fmt.Errorf("import progress: %w", err)
		}
		report.Checklist = st.Checklist
		report.Notes = st.Notes
		report.Skipped += st.Skipped
	}

	if doc.Problems != nil {
		st, err := s.problems.Import(ctx, doc.Problems.ToDomain())
		if err != nil {
			return report, fmt.Errorf("import problems: %w", err)
		}
		report.Problems = st.Problems
		report.Suggestions = st.Suggestions
		report.Skipped += st.SkippedProblems + st.SkippedSuggestions
	}

	if doc.Flashcards != nil {
		snap := doc.Flashcards.ToDomain()
		st, err := s.reviews.ImportCardStates(ctx, snap.CardStates, snap.Bookmarks)
		if err != nil {
			return report, fmt.Errorf("import flashcards: %w", err)
		}
		report.Cards = st.Imported
		report.Bookmarks = st.Bookmarks
		report.Skipped += st.Skipped
		report.Invalid = st.Invalid
	}

	s.log.InfoContext(ctx, "backup imported",
		slog.String("version", doc.Version),
		slog.Int("cards", report.Cards),
		slog.Int("problems", report.Problems),
		slog.Int("checklist", report.Checklist),
		slog.Int("skipped", report.Skipped),
	)
	return report, nil
}

func decode(data []byte) (codec.Backup, error) {
	var doc codec.Backup
	if err := json.Unmarshal(data, &doc); err != nil {
		return codec.Backup{}, &domain.ImportFormatError{Reason: "malformed document", Err: err}
	}
	if doc.Version == "" {
		return codec.Backup{}, &domain.ImportFormatError{Reason: "missing version"}
	}
	major, _, _ := strings.Cut(doc.Version, ".")
	if want, _, _ := strings.Cut(codec.BackupVersion, "."); major != want {
		return codec.Backup{}, &domain.ImportFormatError{Reason: fmt.Sprintf("unsupported version %q", doc.Version)}
	}
	return doc, nil
}
