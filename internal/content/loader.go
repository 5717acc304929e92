package content

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/heartmarshall/studytrack/internal/domain"
)

// LoadFile reads a deck file. See Load.
func LoadFile(path string) ([]domain.Flashcard, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open deck: %w", err)
	}
	defer f.Close()

	cards, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("deck %s: %w", path, err)
	}
	return cards, nil
}

// Load decodes a JSON array of cards, validates each one and rejects
// duplicate ids. Deck order is preserved.
func Load(r io.Reader) ([]domain.Flashcard, error) {
	var cards []Card
	if err := json.NewDecoder(r).Decode(&cards); err != nil {
		return nil, fmt.Errorf("decode deck: %w", err)
	}

	seen := make(map[string]int, len(cards))
	out := make([]domain.Flashcard, 0, len(cards))
	for i, c := range cards {
		if err := Validate(c); err != nil {
			return nil, fmt.Errorf("card %d: %w", i, err)
		}
		if j, ok := seen[c.ID]; ok {
			return nil, fmt.Errorf("card %d: id %q already used by card %d: %w", i, c.ID, j, domain.ErrAlreadyExists)
		}
		seen[c.ID] = i
		out = append(out, domain.Flashcard{
			ID:    c.ID,
			Front: c.Front,
			Back:  c.Back,
			Topic: c.Topic,
		})
	}
	return out, nil
}

// Topics returns the distinct topics of cards in first-seen order.
func Topics(cards []domain.Flashcard) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, c := range cards {
		if _, ok := seen[c.Topic]; ok {
			continue
		}
		seen[c.Topic] = struct{}{}
		out = append(out, c.Topic)
	}
	return out
}
