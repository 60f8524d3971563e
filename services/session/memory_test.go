package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schedulo/models"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	state := models.NewConversationState()
	state.Stage = models.StageAskingDuration
	state.Entities.Title = "Budget Review"
	require.NoError(t, store.Set(ctx, "s1", state))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, models.StageAskingDuration, got.Stage)
	assert.Equal(t, "Budget Review", got.Entities.Title)
}

func TestMemoryStoreUnknownSessionIsFresh(t *testing.T) {
	store := NewMemoryStore(time.Hour)

	got, err := store.Get(context.Background(), "never-seen")
	require.NoError(t, err)
	assert.Equal(t, models.StageInitial, got.Stage)
	assert.Empty(t, got.Messages)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Nanosecond)

	state := models.NewConversationState()
	state.Entities.Title = "Ephemeral"
	require.NoError(t, store.Set(ctx, "s1", state))
	time.Sleep(time.Millisecond)

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, got.Entities.Title)
	assert.Equal(t, models.StageInitial, got.Stage)
}

func TestMemoryStoreClear(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	state := models.NewConversationState()
	state.Entities.Title = "To be cleared"
	require.NoError(t, store.Set(ctx, "s1", state))
	require.NoError(t, store.Clear(ctx, "s1"))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, got.Entities.Title)
}
