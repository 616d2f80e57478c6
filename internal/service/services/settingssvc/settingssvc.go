package settingssvc

import (
	"context"
	"errors"
	"fmt"

	"github.com/corray333/backend-labs/storefront/internal/dal/interfaces/isettingsrepo"
	"github.com/corray333/backend-labs/storefront/internal/service/models/settings"
	"go.opentelemetry.io/otel"
)

var ErrInvalidSettings = errors.New("settings amounts and durations cannot be negative")

// SettingsService reads and edits the restaurant settings.
type SettingsService struct {
	settingsRepo isettingsrepo.ISettingsRepository
}

// option is a function that configures the SettingsService.
type option func(*SettingsService)

// MustNewSettingsService creates a new SettingsService.
func MustNewSettingsService(opts ...option) *SettingsService {
	s := &SettingsService{}
	for _, opt := range opts {
		opt(s)
	}
	if s.settingsRepo == nil {
		panic("settingssvc: settings repository is required")
	}

	return s
}

// WithSettingsRepository sets the settings repository for the SettingsService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithSettingsRepository(repo isettingsrepo.ISettingsRepository) option {
	return func(s *SettingsService) {
		s.settingsRepo = repo
	}
}

// GetSettings returns the saved settings or the defaults.
func (s *SettingsService) GetSettings(ctx context.Context) (settings.Settings, error) {
	current, err := s.settingsRepo.Load(ctx)
	if errors.Is(err, settings.ErrSettingsNotFound) {
		return settings.Default(), nil
	}
	if err != nil {
		return settings.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}

	return current, nil
}

// UpdateSettings merges patch into the current settings.
func (s *SettingsService) UpdateSettings(ctx context.Context, patch settings.Patch) (settings.Settings, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "Service.UpdateSettings")
	defer span.End()

	current, err := s.GetSettings(ctx)
	if err != nil {
		return settings.Settings{}, err
	}

	patch.Apply(&current)
	if err := validate(current); err != nil {
		return settings.Settings{}, err
	}

	if err := s.settingsRepo.Save(ctx, current); err != nil {
		return settings.Settings{}, fmt.Errorf("failed to save settings: %w", err)
	}

	return current, nil
}

// ResetSettings restores the defaults.
func (s *SettingsService) ResetSettings(ctx context.Context) (settings.Settings, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "Service.ResetSettings")
	defer span.End()

	defaults := settings.Default()
	if err := s.settingsRepo.Save(ctx, defaults); err != nil {
		return settings.Settings{}, fmt.Errorf("failed to save settings: %w", err)
	}

	return defaults, nil
}

func validate(st settings.Settings) error {
	if st.DeliveryFeeCents < 0 || st.FreeDeliveryFromCents < 0 || st.MinOrderAmountCents < 0 ||
		st.EstimatedDeliveryMinutes < 0 || st.EstimatedPickupMinutes < 0 {
		return ErrInvalidSettings
	}

	return nil
}
