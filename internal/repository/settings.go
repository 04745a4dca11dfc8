package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"minimart-pos/internal/models"
	"minimart-pos/internal/storage"
)

// SettingsRepository persists the small config record. Reads always start
// from the defaults so fields added in later versions fall back cleanly on
// an old document.
type SettingsRepository struct {
	store storage.Store
	log   *zap.Logger
}

func NewSettingsRepository(store storage.Store, log *zap.Logger) *SettingsRepository {
	return &SettingsRepository{store: store, log: log}
}

// Get returns the persisted settings merged over defaults.
func (r *SettingsRepository) Get(ctx context.Context) (models.AppSettings, error) {
	settings := models.DefaultSettings()

	data, ok, err := r.store.Get(ctx, storage.KeySettings)
	if err != nil {
		return settings, err
	}
	if !ok {
		return settings, nil
	}

	// Unmarshal on top of the defaults: fields missing from the stored
	// document keep their default value.
	if err := json.Unmarshal(data, &settings); err != nil {
		return models.DefaultSettings(), fmt.Errorf("failed to decode settings document: %w", err)
	}
	return settings, nil
}

// Set merges the patch into the current settings and persists the full
// resulting record.
func (r *SettingsRepository) Set(ctx context.Context, patch models.SettingsPatch) (models.AppSettings, error) {
	settings, err := r.Get(ctx)
	if err != nil {
		return settings, err
	}

	if patch.BillingThreshold != nil {
		settings.BillingThreshold = *patch.BillingThreshold
	}
	if patch.Language != nil {
		settings.Language = *patch.Language
	}

	data, err := json.Marshal(settings)
	if err != nil {
		return settings, fmt.Errorf("failed to encode settings document: %w", err)
	}
	if err := r.store.Put(ctx, storage.KeySettings, data); err != nil {
		return settings, err
	}

	r.log.Info("settings updated",
		zap.Float64("billing_threshold", settings.BillingThreshold),
		zap.String("language", settings.Language))
	return settings, nil
}
