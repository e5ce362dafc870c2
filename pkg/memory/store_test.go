// NovaCal - Personal calendar assistant
// License: MIT
//
// Copyright (c) 2026 NovaCal contributors

package memory

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "memory.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestWindowBoundedToLatestTurns(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.EnsureSession(ctx, "42", "telegram"))

	total := WindowTurns * 3
	for i := 0; i < total; i++ {
		role := "user"
		if i%2 == 1 {
			role = "assistant"
		}
		require.NoError(t, store.AppendTurn(ctx, "42", Turn{
			Role:    role,
			Content: fmt.Sprintf("message %d", i),
		}))
	}

	window, err := store.Window(ctx, "42")
	require.NoError(t, err)
	require.Len(t, window, WindowTurns)

	// The window is exactly the last K turns in chronological order.
	for i, turn := range window {
		assert.Equal(t, fmt.Sprintf("message %d", total-WindowTurns+i), turn.Content)
	}

	count, err := store.TurnCount(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, total, count)
}

func TestWindowShorterThanPolicy(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.EnsureSession(ctx, "42", "telegram"))
	require.NoError(t, store.AppendTurn(ctx, "42", Turn{Role: "user", Content: "hello"}))
	require.NoError(t, store.AppendTurn(ctx, "42", Turn{Role: "assistant", Content: "hi"}))

	window, err := store.Window(ctx, "42")
	require.NoError(t, err)
	require.Len(t, window, 2)
	assert.Equal(t, "hello", window[0].Content)
	assert.Equal(t, "hi", window[1].Content)
}

func TestAppendIsMonotonic(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.EnsureSession(ctx, "42", "telegram"))

	var counts []int
	for i := 0; i < 8; i++ {
		require.NoError(t, store.AppendTurn(ctx, "42", Turn{Role: "user", Content: fmt.Sprintf("t%d", i)}))
		n, err := store.TurnCount(ctx, "42")
		require.NoError(t, err)
		counts = append(counts, n)
	}
	for i := 1; i < len(counts); i++ {
		assert.Greater(t, counts[i], counts[i-1])
	}

	// Earlier turns keep their order after later appends.
	window, err := store.Window(ctx, "42")
	require.NoError(t, err)
	for i := 1; i < len(window); i++ {
		assert.False(t, window[i].CreatedAt.Before(window[i-1].CreatedAt))
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.EnsureSession(ctx, "42", "telegram"))
	require.NoError(t, store.EnsureSession(ctx, "99", "telegram"))
	require.NoError(t, store.AppendTurn(ctx, "42", Turn{Role: "user", Content: "mine"}))

	window, err := store.Window(ctx, "99")
	require.NoError(t, err)
	assert.Empty(t, window)
}

func TestEnsureSessionIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.EnsureSession(ctx, "42", "telegram"))
	require.NoError(t, store.AppendTurn(ctx, "42", Turn{Role: "user", Content: "a"}))
	require.NoError(t, store.EnsureSession(ctx, "42", "telegram"))

	count, err := store.TurnCount(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRejectsUnknownRole(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.EnsureSession(ctx, "42", "telegram"))
	err := store.AppendTurn(ctx, "42", Turn{Role: "narrator", Content: "x"})
	assert.Error(t, err)
}
