package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/restropos-api/internal/domain/entity"
	"github.com/sangkips/restropos-api/internal/storage"
	"github.com/sangkips/restropos-api/pkg/apperror"
)

func TestSettingsDefaults(t *testing.T) {
	ctx := context.Background()
	svc := NewSettingsService(storage.NewMemory())

	// reads before initialization fall back to defaults
	settings, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "₹", settings.Currency)
	assert.Equal(t, 18.0, settings.TaxRate)
	assert.True(t, settings.GSTEnabled)

	require.NoError(t, svc.EnsureDefaults(ctx))
	require.NoError(t, svc.VerifyPin(ctx, entity.DefaultAdminPIN))
}

func TestUpdateSettingsMergesPartialInput(t *testing.T) {
	ctx := context.Background()
	svc := NewSettingsService(storage.NewMemory())
	require.NoError(t, svc.EnsureDefaults(ctx))

	rate := 5.0
	updated, err := svc.UpdateSettings(ctx, UpdateSettingsInput{TaxRate: &rate})
	require.NoError(t, err)

	assert.Equal(t, 5.0, updated.TaxRate)
	// untouched fields keep their stored values
	assert.Equal(t, "₹", updated.Currency)
	assert.True(t, updated.GSTEnabled)

	negative := -1.0
	_, err = svc.UpdateSettings(ctx, UpdateSettingsInput{TaxRate: &negative})
	assert.Error(t, err)
}

func TestPinLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := NewSettingsService(storage.NewMemory())
	require.NoError(t, svc.EnsureDefaults(ctx))

	t.Run("wrong pin is rejected", func(t *testing.T) {
		err := svc.VerifyPin(ctx, "0000")
		assert.ErrorIs(t, err, apperror.ErrPinMismatch)
	})

	t.Run("change requires the current pin", func(t *testing.T) {
		err := svc.ChangePin(ctx, "9999", "5678")
		assert.ErrorIs(t, err, apperror.ErrPinMismatch)
	})

	t.Run("new pin must be at least four characters", func(t *testing.T) {
		err := svc.ChangePin(ctx, entity.DefaultAdminPIN, "12")
		assert.ErrorIs(t, err, apperror.ErrWeakPin)
	})

	t.Run("successful change invalidates the old pin", func(t *testing.T) {
		require.NoError(t, svc.ChangePin(ctx, entity.DefaultAdminPIN, "5678"))

		assert.NoError(t, svc.VerifyPin(ctx, "5678"))
		assert.ErrorIs(t, svc.VerifyPin(ctx, entity.DefaultAdminPIN), apperror.ErrPinMismatch)
	})
}

func TestWhatsAppConfigReflectsSettings(t *testing.T) {
	ctx := context.Background()
	svc := NewSettingsService(storage.NewMemory())
	require.NoError(t, svc.EnsureDefaults(ctx))

	key := "secret-key"
	svcName := "custom"
	url := "https://gw.example.com/send?to={number}&msg={message}"
	_, err := svc.UpdateSettings(ctx, UpdateSettingsInput{
		WhatsAppAPIService: &svcName,
		WhatsAppAPIKey:     &key,
		WhatsAppAPIURL:     &url,
	})
	require.NoError(t, err)

	cfg, err := svc.WhatsAppConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, "custom", cfg.Service)
	assert.Equal(t, key, cfg.APIKey)
	assert.Equal(t, url, cfg.APIURL)
}
