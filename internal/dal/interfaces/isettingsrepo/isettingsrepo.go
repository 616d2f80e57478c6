package isettingsrepo

import (
	"context"

	"github.com/corray333/backend-labs/storefront/internal/service/models/settings"
)

// ISettingsRepository stores the restaurant settings.
type ISettingsRepository interface {
	// Load returns settings.ErrSettingsNotFound when nothing was saved yet.
	Load(ctx context.Context) (settings.Settings, error)
	Save(ctx context.Context, s settings.Settings) error
}
