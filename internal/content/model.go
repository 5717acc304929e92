// Package content loads the read-only flashcard deck the study tracker reviews.
package content

// Card is one flashcard in a deck file. A deck file is a JSON array of cards.
type Card struct {
	ID          string   `json:"id"`
	Front       string   `json:"front"`
	Back        string   `json:"back"`
	Topic       string   `json:"topic"`
	CodeExample string   `json:"code_example,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// Field limits of a deck card.
const (
	MaxFrontLen = 500
	MaxBackLen  = 8000
)
