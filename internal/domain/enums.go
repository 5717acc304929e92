package domain

import (
	"fmt"
	"strings"
)

// State is the FSRS life-cycle phase of a card. It is persisted as a small integer.
type State int

const (
	StateNew        State = 0
	StateLearning   State = 1
	StateReview     State = 2
	StateRelearning State = 3
)

var stateNames = [...]string{
	StateNew:        "NEW",
	StateLearning:   "LEARNING",
	StateReview:     "REVIEW",
	StateRelearning: "RELEARNING",
}

func (s State) String() string {
	if s.IsValid() {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

func (s State) IsValid() bool {
	return s >= StateNew && s <= StateRelearning
}

// Grade is the user's self-assessed recall quality after a review.
// The zero value is not a valid grade.
type Grade int

const (
	GradeAgain Grade = 1
	GradeHard  Grade = 2
	GradeGood  Grade = 3
	GradeEasy  Grade = 4
)

var gradeNames = [...]string{
	GradeAgain: "AGAIN",
	GradeHard:  "HARD",
	GradeGood:  "GOOD",
	GradeEasy:  "EASY",
}

func (g Grade) String() string {
	if g.IsValid() {
		return gradeNames[g]
	}
	return fmt.Sprintf("Grade(%d)", int(g))
}

func (g Grade) IsValid() bool {
	return g >= GradeAgain && g <= GradeEasy
}

// Grades returns the user-selectable grades in strength order.
func Grades() []Grade {
	return []Grade{GradeAgain, GradeHard, GradeGood, GradeEasy}
}

// ParseGrade accepts a grade name ("good", "GOOD") or its number ("3").
func ParseGrade(s string) (Grade, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, g := range Grades() {
		if s == g.String() || s == fmt.Sprint(int(g)) {
			return g, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidGrade, s)
}

// ProblemDifficulty is the difficulty tag of a logged practice problem.
type ProblemDifficulty string

const (
	ProblemDifficultyEasy   ProblemDifficulty = "easy"
	ProblemDifficultyMedium ProblemDifficulty = "medium"
	ProblemDifficultyHard   ProblemDifficulty = "hard"
)

func (d ProblemDifficulty) String() string { return string(d) }

func (d ProblemDifficulty) IsValid() bool {
	switch d {
	case ProblemDifficultyEasy, ProblemDifficultyMedium, ProblemDifficultyHard:
		return true
	}
	return false
}
