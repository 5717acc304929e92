package problemlog

import (
	"strings"
	"time"

	"github.com/heartmarshall/studytrack/internal/domain"
)

// AddProblemInput holds the parameters for logging a solved problem.
type AddProblemInput struct {
	// ID is generated when empty.
	ID         string
	Title      string
	Difficulty domain.ProblemDifficulty
	Pattern    string
	// SolvedAt defaults to the current time.
	SolvedAt   time.Time
	Notes      string
	Tags       []string
	RetryCount int
}

// Validate checks all fields and collects all errors.
func (i *AddProblemInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Title) == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if !i.Difficulty.IsValid() {
		errs = append(errs, domain.FieldError{Field: "difficulty", Message: "must be easy, medium, or hard"})
	}
	if strings.TrimSpace(i.Pattern) == "" {
		errs = append(errs, domain.FieldError{Field: "pattern", Message: "required"})
	}
	if i.RetryCount < 0 {
		errs = append(errs, domain.FieldError{Field: "retry_count", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateProblemInput holds a partial update. Nil fields are left unchanged.
type UpdateProblemInput struct {
	Title      *string
	Difficulty *domain.ProblemDifficulty
	Pattern    *string
	SolvedAt   *time.Time
	Notes      *string
	Tags       *[]string
	RetryCount *int
}

// Validate checks the fields that are set.
func (i *UpdateProblemInput) Validate() error {
	var errs []domain.FieldError

	if i.Title != nil && strings.TrimSpace(*i.Title) == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "must not be empty"})
	}
	if i.Difficulty != nil && !i.Difficulty.IsValid() {
		errs = append(errs, domain.FieldError{Field: "difficulty", Message: "must be easy, medium, or hard"})
	}
	if i.Pattern != nil && strings.TrimSpace(*i.Pattern) == "" {
		errs = append(errs, domain.FieldError{Field: "pattern", Message: "must not be empty"})
	}
	if i.SolvedAt != nil && i.SolvedAt.IsZero() {
		errs = append(errs, domain.FieldError{Field: "solved_at", Message: "must not be zero"})
	}
	if i.RetryCount != nil && *i.RetryCount < 0 {
		errs = append(errs, domain.FieldError{Field: "retry_count", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// AddSuggestionInput holds a custom problem suggestion for a content topic.
type AddSuggestionInput struct {
	ID         string
	Title      string
	Difficulty domain.ProblemDifficulty
	Pattern    string
	TopicID    string
	Relevance  string
}

// Validate checks all fields and collects all errors.
func (i *AddSuggestionInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.ID) == "" {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if strings.TrimSpace(i.TopicID) == "" {
		errs = append(errs, domain.FieldError{Field: "topic_id", Message: "required"})
	}
	if strings.TrimSpace(i.Title) == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if !i.Difficulty.IsValid() {
		errs = append(errs, domain.FieldError{Field: "difficulty", Message: "must be easy, medium, or hard"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
