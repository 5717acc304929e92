package session

//go:generate moq -out reviewer_mock_test.go -pkg session . reviewer

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/studytrack/internal/domain"
	"github.com/heartmarshall/studytrack/internal/service/study"
	"github.com/heartmarshall/studytrack/pkg/ctxutil"
)

var now = time.Date(2025, 8, 4, 19, 0, 0, 0, time.UTC)

func cards() []domain.Flashcard {
	return []domain.Flashcard{
		{ID: "closures-1", Front: "What is a capture list?", Back: "Explicit captures", Topic: "closures"},
		{ID: "closures-2", Front: "Escaping closures", Back: "Outlive the call", Topic: "closures"},
		{ID: "actors-1", Front: "Actor isolation", Back: "Serial access to state", Topic: "actors"},
		{ID: "actors-2", Front: "Sendable", Back: "Safe to share across CAPTURE domains", Topic: "actors"},
		{ID: "generics-1", Front: "Opaque types", Back: "some Protocol", Topic: "generics"},
	}
}

func state(due time.Time) domain.CardState {
	last := due.Add(-24 * time.Hour)
	return domain.CardState{Due: due, Stability: 1, Difficulty: 5, Reps: 1, State: domain.StateReview, LastReview: &last}
}

func ids(cs []domain.Flashcard) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.ID
	}
	return out
}

// ---------------------------------------------------------------------------
// BuildQueue
// ---------------------------------------------------------------------------

func TestBuildQueue(t *testing.T) {
	t.Parallel()

	snap := domain.NewReviewSnapshot()
	snap.CardStates["closures-1"] = state(now.Add(-time.Hour))
	snap.CardStates["closures-2"] = state(now.Add(time.Hour))
	snap.CardStates["actors-1"] = state(now)
	snap.Bookmarks = []string{"actors-2", "closures-2"}

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{
			name: "due and never reviewed",
			want: []string{"closures-1", "actors-1", "actors-2", "generics-1"},
		},
		{
			name:   "topics",
			filter: Filter{Topics: []string{"actors", "generics"}},
			want:   []string{"actors-1", "actors-2", "generics-1"},
		},
		{
			name:   "bookmarked only skips cards not due",
			filter: Filter{BookmarkedOnly: true},
			want:   []string{"actors-2"},
		},
		{
			name:   "query matches front or back case-insensitively",
			filter: Filter{Query: " capture "},
			want:   []string{"closures-1", "actors-2"},
		},
		{
			name:   "limit",
			filter: Filter{Limit: 2},
			want:   []string{"closures-1", "actors-1"},
		},
		{
			name:   "no match",
			filter: Filter{Topics: []string{"concurrency"}},
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ids(BuildQueue(cards(), snap, now, tt.filter)))
		})
	}
}

func TestBuildQueue_DefaultLimit(t *testing.T) {
	t.Parallel()

	var many []domain.Flashcard
	for i := range DefaultLimit + 5 {
		many = append(many, domain.Flashcard{ID: fmt.Sprintf("c-%d", i), Topic: "t"})
	}

	got := BuildQueue(many, domain.NewReviewSnapshot(), now, Filter{})
	assert.Len(t, got, DefaultLimit)
}

// ---------------------------------------------------------------------------
// Session
// ---------------------------------------------------------------------------

func TestSession_Walk(t *testing.T) {
	t.Parallel()

	mock := &reviewerMock{
		RecordReviewFunc: func(ctx context.Context, input study.ReviewCardInput) (study.ReviewResult, error) {
			return study.ReviewResult{ReviewsToday: 1}, nil
		},
	}
	s := New(cards()[:3], now)
	ctx := context.Background()

	current, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "closures-1", current.ID)

	_, err := s.Answer(ctx, mock, domain.GradeGood, now)
	require.NoError(t, err)
	assert.True(t, s.Next(), "skip closures-2")
	_, err = s.Answer(ctx, mock, domain.GradeAgain, now.Add(time.Minute))
	require.NoError(t, err)

	assert.True(t, s.Done())
	assert.Equal(t, 0, s.Remaining())
	_, ok = s.Current()
	assert.False(t, ok)
	assert.False(t, s.Next())
	assert.Equal(t, domain.GradeCounts{Again: 1, Good: 1}, s.Grades())

	calls := mock.RecordReviewCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, study.ReviewCardInput{CardID: "closures-1", Topic: "closures", Grade: domain.GradeGood, Now: now}, calls[0].Input)
	assert.Equal(t, "actors-1", calls[1].Input.CardID)
	for _, c := range calls {
		id, ok := ctxutil.SessionIDFromCtx(c.Ctx)
		require.True(t, ok, "session id travels with the review")
		assert.Equal(t, s.ID, id)
	}

	_, err = s.Answer(ctx, mock, domain.GradeGood, now)
	assert.ErrorIs(t, err, ErrFinished)
}

func TestSession_AnswerErrorKeepsCard(t *testing.T) {
	t.Parallel()

	mock := &reviewerMock{
		RecordReviewFunc: func(ctx context.Context, input study.ReviewCardInput) (study.ReviewResult, error) {
			return study.ReviewResult{}, domain.NewPersistenceError("save", "study-review-store", errors.New("disk full"))
		},
	}
	s := New(cards()[:1], now)

	_, err := s.Answer(context.Background(), mock, domain.GradeEasy, now)

	require.ErrorIs(t, err, domain.ErrPersistence)
	assert.Equal(t, 1, s.Remaining())
	assert.Equal(t, domain.GradeCounts{}, s.Grades())
}

func TestSession_Empty(t *testing.T) {
	t.Parallel()

	s := New(nil, now)
	assert.True(t, s.Done())
	assert.NotEqual(t, s.ID, New(nil, now).ID)
}
