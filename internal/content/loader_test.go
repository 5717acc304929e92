package content

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/studytrack/internal/domain"
)

const deck = `[
  {"id": "closures-1", "front": "Capture list?", "back": "Explicit captures", "topic": "closures", "tags": ["memory"]},
  {"id": "actors-1", "front": "Actor isolation?", "back": "Serialized state access", "topic": "actors"},
  {"id": "closures-2", "front": "@escaping?", "back": "Outlives the call", "topic": "closures", "code_example": "func f(_ c: @escaping () -> Void)"}
]`

func TestLoad(t *testing.T) {
	t.Parallel()

	cards, err := Load(strings.NewReader(deck))
	require.NoError(t, err)

	require.Len(t, cards, 3)
	assert.Equal(t, domain.Flashcard{ID: "closures-1", Front: "Capture list?", Back: "Explicit captures", Topic: "closures"}, cards[0])
	assert.Equal(t, []string{"closures", "actors"}, Topics(cards))
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"not an array", `{"id": "x"}`, nil},
		{"invalid card", `[{"id": "x", "front": "f", "back": "", "topic": "t"}]`, domain.ErrValidation},
		{"duplicate id", `[{"id": "x", "front": "f", "back": "b", "topic": "t"}, {"id": "x", "front": "g", "back": "c", "topic": "t"}]`, domain.ErrAlreadyExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Load(strings.NewReader(tt.input))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "deck.json")
	require.NoError(t, os.WriteFile(path, []byte(deck), 0o600))

	cards, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, cards, 3)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
