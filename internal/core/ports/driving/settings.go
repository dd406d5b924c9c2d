package driving

import "github.com/custodia-labs/docflow/internal/core/domain"

// SettingsService manages pipeline settings.
type SettingsService interface {
	// Get retrieves current pipeline settings, with defaults filled in.
	Get() (*domain.PipelineSettings, error)

	// Save persists pipeline settings.
	Save(settings *domain.PipelineSettings) error

	// Set updates a single setting by key, validating the value.
	Set(key, value string) error

	// Keys returns the recognised setting keys.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.PipelineSettings
}
