package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryLedgerPushGetTruncate(t *testing.T) {
	l := newHistoryLedger()
	assert.Equal(t, 0, l.Len())

	l.Push("q1", Simple{PromptText: "one"}, Snapshot("1"), Text("a"))
	l.Push("q2", Simple{PromptText: "two"}, Snapshot("2"), Text("b"))
	l.Push("q3", Simple{PromptText: "three"}, Snapshot("3"), Text("c"))
	assert.Equal(t, 3, l.Len())

	id, q, snap, ok := l.Get(1)
	require.True(t, ok)
	assert.Equal(t, "q2", id)
	assert.Equal(t, Simple{PromptText: "two"}, q)
	assert.Equal(t, Snapshot("2"), snap)

	_, _, _, ok = l.Get(3)
	assert.False(t, ok)

	l.Truncate(2)
	assert.Equal(t, 2, l.Len())
	_, _, _, ok = l.Get(2)
	assert.False(t, ok)

	// The answers map is never pruned on truncate, so q3's cached
	// answer survives even though its ledger entry is gone.
	a, ok := l.CachedAnswer("q3")
	require.True(t, ok)
	assert.Equal(t, Text("c"), a)
}

func TestHistoryLedgerSetAnswerOverwrites(t *testing.T) {
	l := newHistoryLedger()
	l.Push("q1", Simple{PromptText: "one"}, Snapshot("1"), Text("a"))
	l.SetAnswer("q1", Text("b"))
	a, ok := l.CachedAnswer("q1")
	require.True(t, ok)
	assert.Equal(t, Text("b"), a)
}
