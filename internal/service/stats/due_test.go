package stats

import (
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/studytrack/internal/domain"
)

var now = time.Date(2025, 4, 2, 18, 30, 0, 0, time.UTC)

func reviewed(state domain.State, due time.Time, topic string) domain.CardState {
	last := due.Add(-24 * time.Hour)
	return domain.CardState{
		Due:        due,
		Stability:  2,
		Difficulty: 5,
		Reps:       1,
		State:      state,
		LastReview: &last,
		Topic:      topic,
	}
}

func snapshot(cards map[string]domain.CardState) domain.ReviewSnapshot {
	snap := domain.NewReviewSnapshot()
	for id, c := range cards {
		snap.CardStates[id] = c
	}
	return snap
}

func TestDueCardIDs(t *testing.T) {
	t.Parallel()

	snap := snapshot(map[string]domain.CardState{
		"closures-2": reviewed(domain.StateReview, now.Add(-time.Hour), "closures"),
		"closures-1": reviewed(domain.StateReview, now, "closures"),
		"closures-3": reviewed(domain.StateReview, now.Add(time.Second), "closures"),
		"actors-1":   reviewed(domain.StateLearning, now.Add(-time.Minute), "actors"),
		"actors-2":   domain.NewCardState(now.Add(-48 * time.Hour)),
	})

	tests := []struct {
		name   string
		prefix string
		want   []string
	}{
		{"no prefix", "", []string{"actors-1", "actors-2", "closures-1", "closures-2"}},
		{"prefix", "closures-", []string{"closures-1", "closures-2"}},
		{"no match", "generics-", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, DueCardIDs(snap, now, tt.prefix))
		})
	}
}

func TestDueCardIDsByTopic(t *testing.T) {
	t.Parallel()

	snap := snapshot(map[string]domain.CardState{
		"c-1": reviewed(domain.StateReview, now.Add(-time.Hour), "closures"),
		"c-2": reviewed(domain.StateReview, now.Add(time.Hour), "closures"),
		"x-9": reviewed(domain.StateReview, now.Add(-time.Hour), "closures-advanced"),
		"a-1": reviewed(domain.StateReview, now.Add(-time.Hour), "actors"),
	})

	assert.Equal(t, []string{"c-1"}, DueCardIDsByTopic(snap, now, "closures"))
	assert.Equal(t, []string{"x-9"}, DueCardIDsByTopic(snap, now, "closures-advanced"))
	assert.Empty(t, DueCardIDsByTopic(snap, now, ""))
}

func TestReviewStats(t *testing.T) {
	t.Parallel()

	snap := snapshot(map[string]domain.CardState{
		"n-1": domain.NewCardState(now.Add(time.Hour)),
		"l-1": reviewed(domain.StateLearning, now.Add(-time.Minute), ""),
		"r-1": reviewed(domain.StateReview, now.Add(72*time.Hour), ""),
		"r-2": reviewed(domain.StateReview, now.Add(24*time.Hour), ""),
		"q-1": reviewed(domain.StateRelearning, now.Add(-time.Hour), ""),
		"r-3": reviewed(domain.StateReview, now.Add(time.Hour), ""),
	})

	got := ReviewStats(snap, now)

	assert.Equal(t, domain.ReviewStats{
		Total:         6,
		Due:           2,
		New:           1,
		Learning:      1,
		Review:        3,
		Relearning:    1,
		RetentionRate: 67,
	}, got)
}

func TestReviewStats_Empty(t *testing.T) {
	t.Parallel()

	assert.Equal(t, domain.ReviewStats{}, ReviewStats(domain.NewReviewSnapshot(), now))
}

func TestReviewStats_MatchesBruteForce(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(7, 11))
	snap := domain.NewReviewSnapshot()
	for i := range 750 {
		offset := time.Duration(rng.IntN(240)-120) * time.Hour
		snap.CardStates[fmt.Sprintf("card-%d", i)] = reviewed(domain.StateReview, now.Add(offset), "")
	}

	wantDue := 0
	for _, c := range snap.CardStates {
		if !c.Due.After(now) {
			wantDue++
		}
	}

	st := ReviewStats(snap, now)
	require.Equal(t, len(snap.CardStates), st.Total)
	assert.Equal(t, wantDue, st.Due)
	assert.Len(t, DueCardIDs(snap, now, ""), wantDue)
}
