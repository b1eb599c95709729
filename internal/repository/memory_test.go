package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"familytree/internal/domain/event"
)

func TestMemoryJournal_Recent(t *testing.T) {
	ctx := context.Background()
	j := NewMemoryJournal()

	require.NoError(t, j.Append(ctx, event.JournalEntry{ID: "1", SessionID: "a", Line: "root Alice"}))
	require.NoError(t, j.Append(ctx, event.JournalEntry{ID: "2", SessionID: "b", Line: "root Zed"}))
	require.NoError(t, j.Append(ctx, event.JournalEntry{ID: "3", SessionID: "a", Line: "left Alice Bob"}))
	require.NoError(t, j.Append(ctx, event.JournalEntry{ID: "4", SessionID: "a", Line: "right Alice Carol"}))

	all, err := j.Recent(ctx, "a", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "4", all[0].ID)
	assert.Equal(t, "1", all[2].ID)

	limited, err := j.Recent(ctx, "a", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	none, err := j.Recent(ctx, "missing", 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestEventsChannel(t *testing.T) {
	assert.Equal(t, "familytree:events", EventsChannel("familytree"))
}

func TestNopPublisher(t *testing.T) {
	assert.NoError(t, NopPublisher{}.PublishTreeChanged(context.Background(), event.TreeEvent{}))
}
