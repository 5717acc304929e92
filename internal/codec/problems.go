package codec

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/heartmarshall/studytrack/internal/domain"
)

// Problem is the persisted form of domain.Problem.
type Problem struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Difficulty string    `json:"difficulty"`
	Pattern    string    `json:"pattern"`
	SolvedAt   time.Time `json:"solvedAt"`
	Notes      string    `json:"notes,omitempty"`
	Tags       []string  `json:"tags"`
	RetryCount int       `json:"retryCount"`
}

// Suggestion is the persisted form of domain.Suggestion.
type Suggestion struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Difficulty string    `json:"difficulty"`
	Pattern    string    `json:"pattern"`
	TopicID    string    `json:"topicId"`
	Relevance  string    `json:"relevance,omitempty"`
	AddedAt    time.Time `json:"addedAt"`
}

// ProblemLog is the persisted problem log record.
type ProblemLog struct {
	Username    string       `json:"username"`
	Problems    []Problem    `json:"problems"`
	Suggestions []Suggestion `json:"suggestions"`
}

// FromProblemLog converts a problem log to its persisted form.
func FromProblemLog(l domain.ProblemLog) ProblemLog {
	out := ProblemLog{
		Username:    l.Username,
		Problems:    make([]Problem, len(l.Problems)),
		Suggestions: make([]Suggestion, len(l.Suggestions)),
	}
	for i, p := range l.Problems {
		tags := p.Tags
		if tags == nil {
			tags = []string{}
		}
		out.Problems[i] = Problem{
			ID:         p.ID,
			Title:      p.Title,
			Difficulty: string(p.Difficulty),
			Pattern:    p.Pattern,
			SolvedAt:   p.SolvedAt.UTC(),
			Notes:      p.Notes,
			Tags:       tags,
			RetryCount: p.RetryCount,
		}
	}
	for i, s := range l.Suggestions {
		out.Suggestions[i] = Suggestion{
			ID:         s.ID,
			Title:      s.Title,
			Difficulty: string(s.Difficulty),
			Pattern:    s.Pattern,
			TopicID:    s.TopicID,
			Relevance:  s.Relevance,
			AddedAt:    s.AddedAt.UTC(),
		}
	}
	return out
}

// ToDomain converts the persisted form back to a problem log.
func (l ProblemLog) ToDomain() domain.ProblemLog {
	out := domain.ProblemLog{
		Username:    l.Username,
		Problems:    make([]domain.Problem, 0, len(l.Problems)),
		Suggestions: make([]domain.Suggestion, 0, len(l.Suggestions)),
	}
	for _, p := range l.Problems {
		out.Problems = append(out.Problems, domain.Problem{
			ID:         p.ID,
			Title:      p.Title,
			Difficulty: domain.ProblemDifficulty(p.Difficulty),
			Pattern:    p.Pattern,
			SolvedAt:   p.SolvedAt,
			Notes:      p.Notes,
			Tags:       append([]string(nil), p.Tags...),
			RetryCount: p.RetryCount,
		})
	}
	for _, s := range l.Suggestions {
		out.Suggestions = append(out.Suggestions, domain.Suggestion{
			ID:         s.ID,
			Title:      s.Title,
			Difficulty: domain.ProblemDifficulty(s.Difficulty),
			Pattern:    s.Pattern,
			TopicID:    s.TopicID,
			Relevance:  s.Relevance,
			AddedAt:    s.AddedAt,
		})
	}
	return out
}

// EncodeProblemLog serializes a problem log.
func EncodeProblemLog(l domain.ProblemLog) ([]byte, error) {
	data, err := json.Marshal(FromProblemLog(l))
	if err != nil {
		return nil, fmt.Errorf("encode problem log: %w", err)
	}
	return data, nil
}

// DecodeProblemLog parses a serialized problem log.
func DecodeProblemLog(data []byte) (domain.ProblemLog, error) {
	var l ProblemLog
	if err := json.Unmarshal(data, &l); err != nil {
		return domain.ProblemLog{}, fmt.Errorf("decode problem log: %w", err)
	}
	return l.ToDomain(), nil
}

// Progress is the persisted checklist and notes record.
type Progress struct {
	Checklist     map[string]bool   `json:"checklist"`
	Notes         map[string]string `json:"notes"`
	Streak        int               `json:"streak,omitempty"`
	LastStudyDate string            `json:"lastStudyDate,omitempty"`
}

// FromProgress converts progress to its persisted form.
func FromProgress(p domain.Progress) Progress {
	c := p.Clone()
	return Progress{Checklist: c.Checklist, Notes: c.Notes, Streak: c.Streak, LastStudyDate: c.LastStudyDay}
}

// ToDomain converts the persisted form back to progress.
func (p Progress) ToDomain() domain.Progress {
	return domain.Progress{
		Checklist:    p.Checklist,
		Notes:        p.Notes,
		Streak:       p.Streak,
		LastStudyDay: p.LastStudyDate,
	}.Clone()
}

// EncodeProgress serializes progress.
func EncodeProgress(p domain.Progress) ([]byte, error) {
	data, err := json.Marshal(FromProgress(p))
	if err != nil {
		return nil, fmt.Errorf("encode progress: %w", err)
	}
	return data, nil
}

// DecodeProgress parses serialized progress.
func DecodeProgress(data []byte) (domain.Progress, error) {
	var p Progress
	if err := json.Unmarshal(data, &p); err != nil {
		return domain.Progress{}, fmt.Errorf("decode progress: %w", err)
	}
	return p.ToDomain(), nil
}
