package content

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/studytrack/internal/domain"
)

// Validate checks a single card and collects all field errors.
func Validate(c Card) error {
	var errs []domain.FieldError

	if strings.TrimSpace(c.ID) == "" {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if strings.TrimSpace(c.Topic) == "" {
		errs = append(errs, domain.FieldError{Field: "topic", Message: "required"})
	}
	switch n := utf8.RuneCountInString(c.Front); {
	case strings.TrimSpace(c.Front) == "":
		errs = append(errs, domain.FieldError{Field: "front", Message: "required"})
	case n > MaxFrontLen:
		errs = append(errs, domain.FieldError{Field: "front", Message: fmt.Sprintf("exceeds %d characters", MaxFrontLen)})
	}
	switch n := utf8.RuneCountInString(c.Back); {
	case strings.TrimSpace(c.Back) == "":
		errs = append(errs, domain.FieldError{Field: "back", Message: "required"})
	case n > MaxBackLen:
		errs = append(errs, domain.FieldError{Field: "back", Message: fmt.Sprintf("exceeds %d characters", MaxBackLen)})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
