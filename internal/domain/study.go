package domain

import (
	"maps"
	"slices"
	"time"
)

// SRSConfig holds FSRS spaced-repetition algorithm parameters (pure domain type).
type SRSConfig struct {
	DesiredRetention float64
	MaxIntervalDays  int
	EnableFuzz       bool
	LearningSteps    []time.Duration
	RelearningSteps  []time.Duration
}

// ReviewSnapshot is the persisted aggregate owned by the review store.
type ReviewSnapshot struct {
	CardStates    map[string]CardState
	Bookmarks     []string
	ReviewsToday  int
	LastReviewDay string
	ReviewLog     []ReviewLogEntry
}

// NewReviewSnapshot returns the empty store created on first launch.
func NewReviewSnapshot() ReviewSnapshot {
	return ReviewSnapshot{
		CardStates: make(map[string]CardState),
		Bookmarks:  []string{},
		ReviewLog:  []ReviewLogEntry{},
	}
}

// Clone returns a deep copy of the snapshot.
func (s ReviewSnapshot) Clone() ReviewSnapshot {
	out := ReviewSnapshot{
		CardStates:    make(map[string]CardState, len(s.CardStates)),
		Bookmarks:     slices.Clone(s.Bookmarks),
		ReviewsToday:  s.ReviewsToday,
		LastReviewDay: s.LastReviewDay,
		ReviewLog:     make([]ReviewLogEntry, len(s.ReviewLog)),
	}
	for id, c := range s.CardStates {
		out.CardStates[id] = c.Clone()
	}
	for i, e := range s.ReviewLog {
		e.PrevState = e.PrevState.Clone()
		out.ReviewLog[i] = e
	}
	if out.Bookmarks == nil {
		out.Bookmarks = []string{}
	}
	return out
}

// ReviewStats holds counts over the card states of a snapshot.
type ReviewStats struct {
	Total      int
	Due        int
	New        int
	Learning   int
	Review     int
	Relearning int
	// RetentionRate is the share of reviewed cards that are not due, in percent.
	RetentionRate int
}

// DateCount holds the number of events on one local calendar date (YYYY-MM-DD).
type DateCount struct {
	Date  string
	Count int
}

// GradeCounts holds per-grade counters.
type GradeCounts struct {
	Again int
	Hard  int
	Good  int
	Easy  int
}

// TopicStats holds review coverage of one content topic.
type TopicStats struct {
	Topic    string
	Total    int
	Reviewed int
	Due      int
	Percent  int
}

// DifficultyCounts holds problem counts per difficulty.
type DifficultyCounts struct {
	Easy   int
	Medium int
	Hard   int
}

// Dashboard holds the combined statistics shown on the study dashboard.
type Dashboard struct {
	Stats          ReviewStats
	ReviewsToday   int
	ReviewStreak   int
	ProblemStreak  int
	Bookmarks      int
	Grades         GradeCounts
	ReviewProgress []DateCount
	ByDifficulty   DifficultyCounts
	ByPattern      map[string]int
}

// ---------------------------------------------------------------------------
// Problem log
// ---------------------------------------------------------------------------

// Problem is a logged practice problem.
type Problem struct {
	ID         string
	Title      string
	Difficulty ProblemDifficulty
	Pattern    string
	SolvedAt   time.Time
	Notes      string
	Tags       []string
	RetryCount int
}

// Suggestion is a practice problem a user attached to a content topic.
type Suggestion struct {
	ID         string
	Title      string
	Difficulty ProblemDifficulty
	Pattern    string
	TopicID    string
	Relevance  string
	AddedAt    time.Time
}

// ProblemLog is the persisted aggregate owned by the problem log store.
type ProblemLog struct {
	Username    string
	Problems    []Problem
	Suggestions []Suggestion
}

// Clone returns a deep copy of the log.
func (l ProblemLog) Clone() ProblemLog {
	out := ProblemLog{
		Username:    l.Username,
		Problems:    make([]Problem, len(l.Problems)),
		Suggestions: slices.Clone(l.Suggestions),
	}
	for i, p := range l.Problems {
		p.Tags = slices.Clone(p.Tags)
		out.Problems[i] = p
	}
	if out.Suggestions == nil {
		out.Suggestions = []Suggestion{}
	}
	return out
}

// ---------------------------------------------------------------------------
// Study plan progress
// ---------------------------------------------------------------------------

// Progress is the persisted checklist and notes state of the study plan.
// Checklist keys look like "month1-week2-item3"; Notes are keyed by topic id.
type Progress struct {
	Checklist map[string]bool
	Notes     map[string]string
	// Streak counts consecutive local days with study activity up to LastStudyDay.
	Streak       int
	LastStudyDay string
}

// NewProgress returns an empty Progress.
func NewProgress() Progress {
	return Progress{
		Checklist: make(map[string]bool),
		Notes:     make(map[string]string),
	}
}

// Clone returns a deep copy.
func (p Progress) Clone() Progress {
	out := Progress{
		Checklist:    maps.Clone(p.Checklist),
		Notes:        maps.Clone(p.Notes),
		Streak:       p.Streak,
		LastStudyDay: p.LastStudyDay,
	}
	if out.Checklist == nil {
		out.Checklist = make(map[string]bool)
	}
	if out.Notes == nil {
		out.Notes = make(map[string]string)
	}
	return out
}
