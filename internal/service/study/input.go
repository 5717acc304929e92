package study

import (
	"fmt"
	"strings"
	"time"

	"github.com/heartmarshall/studytrack/internal/domain"
)

// ReviewCardInput holds the parameters for recording a review.
type ReviewCardInput struct {
	CardID string
	// Topic is stored on the card when set. Empty keeps the current topic.
	Topic string
	Grade domain.Grade
	// Now is the review time. Zero means the current time.
	Now time.Time
}

// Validate checks all fields and collects all errors.
func (i *ReviewCardInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.CardID) == "" {
		errs = append(errs, domain.FieldError{Field: "card_id", Message: "required"})
	}
	if !i.Grade.IsValid() {
		errs = append(errs, domain.FieldError{Field: "grade", Message: "must be AGAIN, HARD, GOOD, or EASY"})
	}

	if len(errs) > 0 {
		verr := domain.NewValidationErrors(errs)
		if !i.Grade.IsValid() {
			return fmt.Errorf("%w: %w", verr, domain.ErrInvalidGrade)
		}
		return verr
	}
	return nil
}

// ReviewResult is the outcome of a recorded review.
type ReviewResult struct {
	Card         domain.CardState
	Log          domain.ReviewLogEntry
	ReviewsToday int
}
