package study

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
)

// ToggleBookmark adds the card to the bookmarks, or removes it if present.
// It reports whether the card is bookmarked afterwards.
func (s *Service) ToggleBookmark(ctx context.Context, cardID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.snap.Clone()
	idx := slices.Index(next.Bookmarks, cardID)
	bookmarked := idx < 0
	if bookmarked {
		next.Bookmarks = append(next.Bookmarks, cardID)
	} else {
		next.Bookmarks = slices.Delete(next.Bookmarks, idx, idx+1)
	}

	if err := s.commit(ctx, next); err != nil {
		return false, fmt.Errorf("toggle bookmark: %w", err)
	}

	s.log.InfoContext(ctx, "bookmark toggled",
		slog.String("card_id", cardID),
		slog.Bool("bookmarked", bookmarked),
	)
	return bookmarked, nil
}

// IsBookmarked reports whether the card is bookmarked.
func (s *Service) IsBookmarked(cardID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Contains(s.snap.Bookmarks, cardID)
}

// Bookmarks returns bookmarked card ids in the order they were added.
func (s *Service) Bookmarks() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.snap.Bookmarks)
}
