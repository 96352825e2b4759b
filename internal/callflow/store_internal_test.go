package callflow

import (
	"github.com/lifeline-dispatch/lifeline/internal/testhelpers"
	"github.com/stretchr/testify/require"
	"io"
	"testing"
	"time"
)

func TestStoreSweepReclaimsStalledSessions(t *testing.T) {
	store := NewStore(10*time.Minute, testhelpers.NewLogger(io.Discard))
	t.Cleanup(store.Close)

	stalled := store.GetOrCreate("CA-stalled")
	stalled.LastActivity = time.Now().Add(-time.Hour)
	fresh := store.GetOrCreate("CA-fresh")
	fresh.LastActivity = time.Now()

	store.sweep(time.Now())

	_, ok := store.Get("CA-stalled")
	require.False(t, ok)
	_, ok = store.Get("CA-fresh")
	require.True(t, ok)
	require.Equal(t, 1, store.Len())
}

func TestStoreGetOrCreateReturnsSameSession(t *testing.T) {
	store := NewStore(10*time.Minute, testhelpers.NewLogger(io.Discard))
	t.Cleanup(store.Close)

	first := store.GetOrCreate("CA-1")
	second := store.GetOrCreate("CA-1")
	require.Same(t, first, second)

	store.Remove("CA-1")
	third := store.GetOrCreate("CA-1")
	require.NotSame(t, first, third)
}
