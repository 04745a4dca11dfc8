package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.uber.org/zap"

	"minimart-pos/internal/models"
	"minimart-pos/internal/storage"
)

func TestSettingsDefaultsWhenEmpty(t *testing.T) {
	ctx := context.Background()
	_, _, settings := newTestRepos()

	current, err := settings.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 100.0, current.BillingThreshold)
	assert.Equal(t, "ta", current.Language)
}

func TestSettingsMergeOverDefaults(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	settings := NewSettingsRepository(store, zap.NewNop())

	// A document written by an older version that knew nothing about
	// billing_threshold: the missing field falls back to its default.
	require.NoError(t, store.Put(ctx, storage.KeySettings, []byte(`{"language":"en"}`)))

	current, err := settings.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "en", current.Language)
	assert.Equal(t, 100.0, current.BillingThreshold)
}

func TestSettingsPatch(t *testing.T) {
	ctx := context.Background()
	_, _, settings := newTestRepos()

	threshold := 250.0
	updated, err := settings.Set(ctx, models.SettingsPatch{BillingThreshold: &threshold})
	require.NoError(t, err)
	assert.Equal(t, 250.0, updated.BillingThreshold)
	assert.Equal(t, "ta", updated.Language)

	lang := "en"
	updated, err = settings.Set(ctx, models.SettingsPatch{Language: &lang})
	require.NoError(t, err)
	assert.Equal(t, 250.0, updated.BillingThreshold, "untouched field survives the patch")
	assert.Equal(t, "en", updated.Language)

	// And the merged record is what got persisted.
	current, err := settings.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, updated, current)
}
