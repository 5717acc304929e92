package ctxutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestWithSessionID_And_SessionIDFromCtx(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	ctx := WithSessionID(context.Background(), id)

	got, ok := SessionIDFromCtx(ctx)
	if !ok {
		t.Fatal("expected ok=true for valid UUID")
	}
	if got != id {
		t.Fatalf("expected %s, got %s", id, got)
	}
}

func TestSessionIDFromCtx_EmptyContext(t *testing.T) {
	t.Parallel()

	got, ok := SessionIDFromCtx(context.Background())
	if ok {
		t.Fatal("expected ok=false for empty context")
	}
	if got != uuid.Nil {
		t.Fatalf("expected uuid.Nil, got %s", got)
	}
}

func TestSessionIDFromCtx_NilUUID(t *testing.T) {
	t.Parallel()

	ctx := WithSessionID(context.Background(), uuid.Nil)

	if _, ok := SessionIDFromCtx(ctx); ok {
		t.Fatal("expected ok=false for uuid.Nil")
	}
}

func TestSessionIDFromCtx_WrongType(t *testing.T) {
	t.Parallel()

	ctx := context.WithValue(context.Background(), ctxKey("session_id"), "not-a-uuid")

	got, ok := SessionIDFromCtx(ctx)
	if ok {
		t.Fatal("expected ok=false for wrong type")
	}
	if got != uuid.Nil {
		t.Fatalf("expected uuid.Nil, got %s", got)
	}
}

func TestWithCommand_And_CommandFromCtx(t *testing.T) {
	t.Parallel()

	ctx := WithCommand(context.Background(), "studytrack review")

	if got := CommandFromCtx(ctx); got != "studytrack review" {
		t.Fatalf("expected studytrack review, got %s", got)
	}
}

func TestCommandFromCtx_EmptyContext(t *testing.T) {
	t.Parallel()

	if got := CommandFromCtx(context.Background()); got != "" {
		t.Fatalf("expected empty string, got %s", got)
	}
}

func TestCommandFromCtx_WrongType(t *testing.T) {
	t.Parallel()

	ctx := context.WithValue(context.Background(), ctxKey("command"), 12345)

	if got := CommandFromCtx(ctx); got != "" {
		t.Fatalf("expected empty string, got %s", got)
	}
}
