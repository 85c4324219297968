package service

import (
	"context"
	"sync"

	"github.com/sangkips/restropos-api/internal/domain/entity"
	"github.com/sangkips/restropos-api/internal/storage"
	"github.com/sangkips/restropos-api/pkg/apperror"
	"github.com/sangkips/restropos-api/pkg/whatsapp"
)

// UpdateSettingsInput carries a partial settings update. Nil fields keep the
// stored value.
type UpdateSettingsInput struct {
	Currency        *string  `json:"currency"`
	TaxRate         *float64 `json:"taxRate"`
	GSTEnabled      *bool    `json:"gstEnabled"`
	DiscountEnabled *bool    `json:"discountEnabled"`
	UPIID           *string  `json:"upiId"`
	PayeeName       *string  `json:"payeeName"`
	DarkMode        *bool    `json:"darkMode"`

	WhatsAppNumber     *string `json:"whatsappNumber"`
	WhatsAppAPIService *string `json:"whatsappApiService"`
	WhatsAppAPIKey     *string `json:"whatsappApiKey"`
	WhatsAppAPIURL     *string `json:"whatsappApiUrl"`
	AutoReportEnabled  *bool   `json:"autoReportEnabled"`
	ReportTime         *string `json:"reportTime"`
}

// SettingsService owns the singleton settings record and the admin PIN.
type SettingsService struct {
	store storage.Store
	mu    sync.Mutex
}

// NewSettingsService creates a new settings service
func NewSettingsService(store storage.Store) *SettingsService {
	return &SettingsService{store: store}
}

// GetSettings returns the stored settings, falling back to defaults when no
// record exists yet.
func (s *SettingsService) GetSettings(ctx context.Context) (entity.Settings, error) {
	var settings entity.Settings
	found, err := s.store.Get(ctx, storage.KeySettings, &settings)
	if err != nil {
		return entity.Settings{}, err
	}
	if !found {
		return entity.DefaultSettings(), nil
	}
	return settings, nil
}

// EnsureDefaults persists the default settings and admin PIN on first run.
// Existing records are left untouched.
func (s *SettingsService) EnsureDefaults(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var settings entity.Settings
	found, err := s.store.Get(ctx, storage.KeySettings, &settings)
	if err != nil {
		return err
	}
	if !found {
		if err := s.store.Set(ctx, storage.KeySettings, entity.DefaultSettings()); err != nil {
			return err
		}
	}

	var pin string
	found, err = s.store.Get(ctx, storage.KeyAdminPIN, &pin)
	if err != nil {
		return err
	}
	if !found || pin == "" {
		return s.store.Set(ctx, storage.KeyAdminPIN, entity.DefaultAdminPIN)
	}
	return nil
}

// UpdateSettings merges the provided fields into the stored record and
// returns the result.
func (s *SettingsService) UpdateSettings(ctx context.Context, input UpdateSettingsInput) (entity.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.GetSettings(ctx)
	if err != nil {
		return entity.Settings{}, err
	}

	if input.Currency != nil {
		settings.Currency = *input.Currency
	}
	if input.TaxRate != nil {
		if *input.TaxRate < 0 {
			return entity.Settings{}, apperror.NewBadRequestError("Tax rate cannot be negative")
		}
		settings.TaxRate = *input.TaxRate
	}
	if input.GSTEnabled != nil {
		settings.GSTEnabled = *input.GSTEnabled
	}
	if input.DiscountEnabled != nil {
		settings.DiscountEnabled = *input.DiscountEnabled
	}
	if input.UPIID != nil {
		settings.UPIID = *input.UPIID
	}
	if input.PayeeName != nil {
		settings.PayeeName = *input.PayeeName
	}
	if input.DarkMode != nil {
		settings.DarkMode = *input.DarkMode
	}
	if input.WhatsAppNumber != nil {
		settings.WhatsAppNumber = *input.WhatsAppNumber
	}
	if input.WhatsAppAPIService != nil {
		settings.WhatsAppAPIService = *input.WhatsAppAPIService
	}
	if input.WhatsAppAPIKey != nil {
		settings.WhatsAppAPIKey = *input.WhatsAppAPIKey
	}
	if input.WhatsAppAPIURL != nil {
		settings.WhatsAppAPIURL = *input.WhatsAppAPIURL
	}
	if input.AutoReportEnabled != nil {
		settings.AutoReportEnabled = *input.AutoReportEnabled
	}
	if input.ReportTime != nil {
		settings.ReportTime = *input.ReportTime
	}

	if err := s.store.Set(ctx, storage.KeySettings, settings); err != nil {
		return entity.Settings{}, err
	}
	return settings, nil
}

func (s *SettingsService) readPin(ctx context.Context) (string, error) {
	var pin string
	found, err := s.store.Get(ctx, storage.KeyAdminPIN, &pin)
	if err != nil {
		return "", err
	}
	if !found || pin == "" {
		return entity.DefaultAdminPIN, nil
	}
	return pin, nil
}

// VerifyPin checks the supplied PIN against the stored one.
func (s *SettingsService) VerifyPin(ctx context.Context, pin string) error {
	stored, err := s.readPin(ctx)
	if err != nil {
		return err
	}
	if pin != stored {
		return apperror.ErrPinMismatch
	}
	return nil
}

// ChangePin replaces the admin PIN after verifying the current one. The new
// PIN must be at least four characters.
func (s *SettingsService) ChangePin(ctx context.Context, current, next string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.VerifyPin(ctx, current); err != nil {
		return err
	}
	if len(next) < 4 {
		return apperror.ErrWeakPin
	}
	return s.store.Set(ctx, storage.KeyAdminPIN, next)
}

// Subscribe notifies fn after every settings write.
func (s *SettingsService) Subscribe(fn func()) (cancel func()) {
	return s.store.Subscribe(storage.KeySettings, func(string) { fn() })
}

// WhatsAppConfig exposes the current WhatsApp delivery configuration.
func (s *SettingsService) WhatsAppConfig(ctx context.Context) (whatsapp.Config, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return whatsapp.Config{}, err
	}
	return whatsapp.Config{
		Service: settings.WhatsAppAPIService,
		APIKey:  settings.WhatsAppAPIKey,
		APIURL:  settings.WhatsAppAPIURL,
	}, nil
}
