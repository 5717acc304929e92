package stats

import (
	"time"

	"github.com/heartmarshall/studytrack/internal/domain"
)

// StatsByDifficulty counts problems per difficulty. Unknown difficulties are ignored.
func StatsByDifficulty(problems []domain.Problem) domain.DifficultyCounts {
	var dc domain.DifficultyCounts
	for _, p := range problems {
		switch p.Difficulty {
		case domain.ProblemDifficultyEasy:
			dc.Easy++
		case domain.ProblemDifficultyMedium:
			dc.Medium++
		case domain.ProblemDifficultyHard:
			dc.Hard++
		}
	}
	return dc
}

// StatsByPattern counts problems per pattern.
func StatsByPattern(problems []domain.Problem) map[string]int {
	out := make(map[string]int)
	for _, p := range problems {
		out[p.Pattern]++
	}
	return out
}

// ProblemEvents returns the solve times of problems.
func ProblemEvents(problems []domain.Problem) []time.Time {
	out := make([]time.Time, len(problems))
	for i, p := range problems {
		out[i] = p.SolvedAt
	}
	return out
}
