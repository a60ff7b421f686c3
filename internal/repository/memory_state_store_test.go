package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MacroPulse/internal/domain/models"
)

func TestMemoryStateStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStateStore()

	_, found, err := store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	regime := models.RegimeRiskOn
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	want := models.RegimeTrackerState{
		LastKnownRegime:      &regime,
		LastChangeAt:         &at,
		NotificationsEnabled: true,
	}
	require.NoError(t, store.Save(ctx, want))

	got, found, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, found)
	require.NotNil(t, got.LastKnownRegime)
	assert.Equal(t, models.RegimeRiskOn, *got.LastKnownRegime)
	require.NotNil(t, got.LastChangeAt)
	assert.True(t, got.LastChangeAt.Equal(at))
	assert.True(t, got.NotificationsEnabled)
}
