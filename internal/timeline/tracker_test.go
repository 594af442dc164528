package timeline

import (
	"context"
	"testing"
	"time"
	"wallfeed/internal/models"
	"wallfeed/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateTracker_LastWriteWins(t *testing.T) {
	store := testutil.NewMockLastSeenStore()
	tr := NewUpdateTracker(store, &testutil.MockLogger{})
	viewer := models.Viewer{RemoteContactID: 11}
	t1 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Minute)

	tr.Stamp(context.Background(), normalProfile, viewer, t1)
	tr.Stamp(context.Background(), normalProfile, viewer, t2)

	got, ok, err := tr.LastSeen(context.Background(), normalProfile, viewer)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, t2, got)
	assert.Equal(t, 2, store.SetCall)
}

func TestUpdateTracker_KeysAreDistinctPerViewer(t *testing.T) {
	store := testutil.NewMockLastSeenStore()
	tr := NewUpdateTracker(store, &testutil.MockLogger{})
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	tr.Stamp(context.Background(), normalProfile, models.Viewer{LocalUserID: 5}, now)

	_, ok, err := tr.LastSeen(context.Background(), normalProfile, models.Viewer{RemoteContactID: 5})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Len(t, store.Data, 1)
	assert.Contains(t, store.Data, models.LastSeenKey{OwnerID: 1, LocalUserID: 5})
}

func TestUpdateTracker_StoresUTC(t *testing.T) {
	store := testutil.NewMockLastSeenStore()
	tr := NewUpdateTracker(store, &testutil.MockLogger{})
	local := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("UTC+2", 7200))

	tr.Stamp(context.Background(), normalProfile, models.Viewer{}, local)

	got := store.Data[models.LastSeenKey{OwnerID: 1}]
	assert.Equal(t, time.UTC, got.Location())
	assert.True(t, got.Equal(local))
}

func TestUpdateTracker_FailureIsLogged(t *testing.T) {
	store := testutil.NewMockLastSeenStore()
	store.SetErr = testutil.ErrInjected
	logger := &testutil.MockLogger{}
	tr := NewUpdateTracker(store, logger)

	assert.NotPanics(t, func() {
		tr.Stamp(context.Background(), normalProfile, models.Viewer{}, time.Now())
	})
	assert.Equal(t, 1, logger.Count("warn"))
	assert.Empty(t, store.Data)
}
