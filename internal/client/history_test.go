package client

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHistory(t *testing.T) *History {
	t.Helper()
	h := NewHistory(NewMemoryStore())
	seq := 0
	h.newID = func() string {
		seq++
		return fmt.Sprintf("id-%d", seq)
	}
	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	h.now = func() time.Time {
		current = current.Add(time.Second)
		return current
	}
	return h
}

func TestHistory_NewestFirst(t *testing.T) {
	h := newTestHistory(t)

	_, err := h.Add("cats", 3)
	require.NoError(t, err)
	_, err = h.Add("dogs", 5)
	require.NoError(t, err)

	items, err := h.Items()
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "dogs", items[0].Topic)
	assert.Equal(t, 5, items[0].Length)
	assert.Equal(t, "cats", items[1].Topic)
}

func TestHistory_DedupeIgnoresCase(t *testing.T) {
	h := newTestHistory(t)

	_, err := h.Add("Cats", 3)
	require.NoError(t, err)
	_, err = h.Add("dogs", 3)
	require.NoError(t, err)
	_, err = h.Add("cats", 5)
	require.NoError(t, err)

	items, err := h.Items()
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "cats", items[0].Topic)
	assert.Equal(t, 5, items[0].Length)
	assert.Equal(t, "dogs", items[1].Topic)
}

func TestHistory_TrimsToLimit(t *testing.T) {
	h := newTestHistory(t)

	for i := 0; i < DefaultHistoryMaxItems+1; i++ {
		_, err := h.Add(fmt.Sprintf("topic-%d", i), 3)
		require.NoError(t, err)
	}

	items, err := h.Items()
	require.NoError(t, err)
	require.Len(t, items, DefaultHistoryMaxItems)
	assert.Equal(t, fmt.Sprintf("topic-%d", DefaultHistoryMaxItems), items[0].Topic)
	assert.Equal(t, "topic-1", items[len(items)-1].Topic, "oldest entry dropped")
}

func TestHistory_Remove(t *testing.T) {
	h := newTestHistory(t)

	first, err := h.Add("cats", 3)
	require.NoError(t, err)
	_, err = h.Add("dogs", 3)
	require.NoError(t, err)

	require.NoError(t, h.Remove(first.ID))

	items, err := h.Items()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "dogs", items[0].Topic)

	// Unknown id is a no-op.
	require.NoError(t, h.Remove("missing"))
}

func TestHistory_Clear(t *testing.T) {
	h := newTestHistory(t)

	_, err := h.Add("cats", 3)
	require.NoError(t, err)
	require.NoError(t, h.Clear())

	items, err := h.Items()
	require.NoError(t, err)
	assert.Empty(t, items)
}
