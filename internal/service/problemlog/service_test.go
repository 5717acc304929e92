package problemlog

//go:generate moq -out record_store_mock_test.go -pkg problemlog . recordStore

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/studytrack/internal/domain"
)

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

var now = time.Date(2025, 5, 1, 20, 0, 0, 0, time.UTC)

func memStore() (*recordStoreMock, map[string][]byte) {
	var mu sync.Mutex
	records := make(map[string][]byte)
	return &recordStoreMock{
		LoadFunc: func(ctx context.Context, name string) ([]byte, error) {
			mu.Lock()
			defer mu.Unlock()
			data, ok := records[name]
			if !ok {
				return nil, domain.ErrNotFound
			}
			return data, nil
		},
		SaveFunc: func(ctx context.Context, name string, data []byte) error {
			mu.Lock()
			defer mu.Unlock()
			records[name] = append([]byte(nil), data...)
			return nil
		},
	}, records
}

func newTestService(t *testing.T, store recordStore) *Service {
	t.Helper()
	svc := NewService(slog.New(slog.NewTextHandler(io.Discard, nil)), store)
	require.NoError(t, svc.Load(context.Background()))
	return svc
}

func validInput(id string) AddProblemInput {
	return AddProblemInput{
		ID:         id,
		Title:      "Two Sum",
		Difficulty: domain.ProblemDifficultyEasy,
		Pattern:    "hashing",
		Tags:       []string{"array"},
	}
}

func ptr[T any](v T) *T { return &v }

// ---------------------------------------------------------------------------
// Load
// ---------------------------------------------------------------------------

func TestService_Load_RoundTrip(t *testing.T) {
	t.Parallel()

	store, _ := memStore()
	svc := newTestService(t, store)
	ctx := context.Background()

	_, err := svc.AddProblem(ctx, validInput("p-1"), now)
	require.NoError(t, err)
	require.NoError(t, svc.SetUsername(ctx, "gopher"))
	_, err = svc.AddSuggestion(ctx, AddSuggestionInput{
		ID: "lc-42", Title: "Trapping Rain Water", Difficulty: domain.ProblemDifficultyHard,
		Pattern: "two pointers", TopicID: "arrays",
	}, now)
	require.NoError(t, err)

	reloaded := newTestService(t, store)

	assert.Equal(t, svc.Snapshot(), reloaded.Snapshot())
	assert.Equal(t, "gopher", reloaded.Username())
}

func TestService_Load_Error(t *testing.T) {
	t.Parallel()

	store := &recordStoreMock{
		LoadFunc: func(ctx context.Context, name string) ([]byte, error) {
			return nil, errors.New("boom")
		},
	}
	svc := NewService(slog.Default(), store)

	err := svc.Load(context.Background())
	require.ErrorIs(t, err, domain.ErrPersistence)
}

// ---------------------------------------------------------------------------
// Problems
// ---------------------------------------------------------------------------

func TestService_AddProblem_Defaults(t *testing.T) {
	t.Parallel()

	store, _ := memStore()
	svc := newTestService(t, store)

	p, err := svc.AddProblem(context.Background(), validInput(""), now)
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.True(t, p.SolvedAt.Equal(now))
	assert.Equal(t, []domain.Problem{p}, svc.Problems())
	require.Len(t, store.SaveCalls(), 1)
	assert.Equal(t, RecordName, store.SaveCalls()[0].Name)
}

func TestService_AddProblem_KeepsExplicitSolvedAt(t *testing.T) {
	t.Parallel()

	store, _ := memStore()
	svc := newTestService(t, store)

	in := validInput("p-1")
	in.SolvedAt = now.Add(-72 * time.Hour)

	p, err := svc.AddProblem(context.Background(), in, now)
	require.NoError(t, err)
	assert.True(t, p.SolvedAt.Equal(in.SolvedAt))
}

func TestService_AddProblem_Validation(t *testing.T) {
	t.Parallel()

	store, _ := memStore()
	svc := newTestService(t, store)

	_, err := svc.AddProblem(context.Background(), AddProblemInput{Difficulty: "impossible", RetryCount: -1}, now)

	require.ErrorIs(t, err, domain.ErrValidation)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Errors, 4)
	assert.Empty(t, store.SaveCalls())
}

func TestService_AddProblem_DuplicateID(t *testing.T) {
	t.Parallel()

	store, _ := memStore()
	svc := newTestService(t, store)
	ctx := context.Background()

	_, err := svc.AddProblem(ctx, validInput("p-1"), now)
	require.NoError(t, err)
	_, err = svc.AddProblem(ctx, validInput("p-1"), now)

	require.ErrorIs(t, err, domain.ErrAlreadyExists)
	assert.Len(t, svc.Problems(), 1)
}

func TestService_AddProblem_PersistFailure(t *testing.T) {
	t.Parallel()

	store := &recordStoreMock{
		LoadFunc: func(ctx context.Context, name string) ([]byte, error) { return nil, domain.ErrNotFound },
		SaveFunc: func(ctx context.Context, name string, data []byte) error { return io.ErrShortWrite },
	}
	svc := newTestService(t, store)

	_, err := svc.AddProblem(context.Background(), validInput("p-1"), now)

	require.ErrorIs(t, err, domain.ErrPersistence)
	assert.Empty(t, svc.Problems())
}

func TestService_RemoveProblem(t *testing.T) {
	t.Parallel()

	store, _ := memStore()
	svc := newTestService(t, store)
	ctx := context.Background()

	for _, id := range []string{"p-1", "p-2", "p-3"} {
		_, err := svc.AddProblem(ctx, validInput(id), now)
		require.NoError(t, err)
	}

	require.NoError(t, svc.RemoveProblem(ctx, "p-2"))
	ids := []string{}
	for _, p := range svc.Problems() {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"p-1", "p-3"}, ids)

	err := svc.RemoveProblem(ctx, "p-2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_RemoveBulk(t *testing.T) {
	t.Parallel()

	store, _ := memStore()
	svc := newTestService(t, store)
	ctx := context.Background()

	for _, id := range []string{"p-1", "p-2", "p-3", "p-4"} {
		_, err := svc.AddProblem(ctx, validInput(id), now)
		require.NoError(t, err)
	}
	saves := len(store.SaveCalls())

	removed, err := svc.RemoveBulk(ctx, []string{"p-1", "p-3", "missing"})
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.Len(t, svc.Problems(), 2)

	removed, err = svc.RemoveBulk(ctx, []string{"missing"})
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
	assert.Len(t, store.SaveCalls(), saves+1, "no-op bulk removal does not persist")
}

func TestService_UpdateProblem_Partial(t *testing.T) {
	t.Parallel()

	store, _ := memStore()
	svc := newTestService(t, store)
	ctx := context.Background()

	orig, err := svc.AddProblem(ctx, validInput("p-1"), now)
	require.NoError(t, err)

	got, err := svc.UpdateProblem(ctx, "p-1", UpdateProblemInput{
		Notes:      ptr("use a map of complements"),
		RetryCount: ptr(2),
	})
	require.NoError(t, err)

	assert.Equal(t, "use a map of complements", got.Notes)
	assert.Equal(t, 2, got.RetryCount)
	assert.Equal(t, orig.Title, got.Title)
	assert.Equal(t, orig.Tags, got.Tags)
	assert.Equal(t, []domain.Problem{got}, svc.Problems())
}

func TestService_UpdateProblem_Errors(t *testing.T) {
	t.Parallel()

	store, _ := memStore()
	svc := newTestService(t, store)
	ctx := context.Background()

	_, err := svc.UpdateProblem(ctx, "missing", UpdateProblemInput{Notes: ptr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.UpdateProblem(ctx, "missing", UpdateProblemInput{Title: ptr("  ")})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ---------------------------------------------------------------------------
// Suggestions
// ---------------------------------------------------------------------------

func TestService_Suggestions(t *testing.T) {
	t.Parallel()

	store, _ := memStore()
	svc := newTestService(t, store)
	ctx := context.Background()

	in := AddSuggestionInput{
		ID: "lc-1", Title: "Two Sum", Difficulty: domain.ProblemDifficultyEasy,
		Pattern: "hashing", TopicID: "dictionaries",
	}

	added, err := svc.AddSuggestion(ctx, in, now)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = svc.AddSuggestion(ctx, in, now.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, added, "same id and topic is deduplicated")

	other := in
	other.TopicID = "arrays"
	added, err = svc.AddSuggestion(ctx, other, now)
	require.NoError(t, err)
	assert.True(t, added, "same id in another topic is a separate suggestion")

	got := svc.SuggestionsByTopic("dictionaries")
	require.Len(t, got, 1)
	assert.True(t, got[0].AddedAt.Equal(now))

	require.NoError(t, svc.RemoveSuggestion(ctx, "lc-1", "dictionaries"))
	assert.Empty(t, svc.SuggestionsByTopic("dictionaries"))
	assert.Len(t, svc.SuggestionsByTopic("arrays"), 1)

	err = svc.RemoveSuggestion(ctx, "lc-1", "dictionaries")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddSuggestionInput_Validate(t *testing.T) {
	t.Parallel()

	in := AddSuggestionInput{}
	err := in.Validate()

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Errors, 4)
}

// ---------------------------------------------------------------------------
// Import
// ---------------------------------------------------------------------------

func TestService_Import(t *testing.T) {
	t.Parallel()

	store, _ := memStore()
	svc := newTestService(t, store)
	ctx := context.Background()

	_, err := svc.AddProblem(ctx, validInput("p-1"), now)
	require.NoError(t, err)

	backup := domain.ProblemLog{
		Username: "from-backup",
		Problems: []domain.Problem{
			{ID: "p-1", Title: "changed", Difficulty: domain.ProblemDifficultyHard, Pattern: "x", SolvedAt: now},
			{ID: "p-2", Title: "Valid Parentheses", Difficulty: domain.ProblemDifficultyEasy, Pattern: "stack", SolvedAt: now},
		},
		Suggestions: []domain.Suggestion{
			{ID: "lc-1", TopicID: "arrays", Title: "Two Sum", Difficulty: domain.ProblemDifficultyEasy, AddedAt: now},
		},
	}

	stats, err := svc.Import(ctx, backup)
	require.NoError(t, err)
	assert.Equal(t, ImportStats{Problems: 1, SkippedProblems: 1, Suggestions: 1}, stats)
	assert.Equal(t, "from-backup", svc.Username())

	problems := svc.Problems()
	require.Len(t, problems, 2)
	assert.Equal(t, "Two Sum", problems[0].Title, "existing problem is not overwritten")

	// Importing the same document again changes nothing.
	saves := len(store.SaveCalls())
	stats, err = svc.Import(ctx, backup)
	require.NoError(t, err)
	assert.Equal(t, ImportStats{SkippedProblems: 2, SkippedSuggestions: 1}, stats)
	assert.Len(t, store.SaveCalls(), saves)
}
