package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/heartmarshall/studytrack/internal/domain"
)

func testProblems() []domain.Problem {
	return []domain.Problem{
		{ID: "1", Difficulty: domain.ProblemDifficultyEasy, Pattern: "two pointers"},
		{ID: "2", Difficulty: domain.ProblemDifficultyMedium, Pattern: "sliding window"},
		{ID: "3", Difficulty: domain.ProblemDifficultyMedium, Pattern: "two pointers"},
		{ID: "4", Difficulty: domain.ProblemDifficultyHard, Pattern: "dynamic programming"},
		{ID: "5", Difficulty: domain.ProblemDifficulty("legendary"), Pattern: "two pointers"},
	}
}

func TestStatsByDifficulty(t *testing.T) {
	t.Parallel()

	assert.Equal(t, domain.DifficultyCounts{Easy: 1, Medium: 2, Hard: 1}, StatsByDifficulty(testProblems()))
}

func TestStatsByPattern(t *testing.T) {
	t.Parallel()

	assert.Equal(t, map[string]int{
		"two pointers":        3,
		"sliding window":      1,
		"dynamic programming": 1,
	}, StatsByPattern(testProblems()))
}

func TestProblemEvents(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 4, 9, 10, 0, 0, 0, time.UTC)
	got := ProblemEvents([]domain.Problem{{SolvedAt: at}})

	assert.Equal(t, []time.Time{at}, got)
}
