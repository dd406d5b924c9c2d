package services

import (
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/custodia-labs/docflow/internal/core/domain"
	"github.com/custodia-labs/docflow/internal/core/ports/driven"
	"github.com/custodia-labs/docflow/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyIntakeDir       = "pipeline.intake_dir"
	KeyProcessedDir    = "pipeline.processed_dir"
	KeyPollInterval    = "pipeline.poll_interval"
	KeyWorkers         = "pipeline.workers"
	KeyProviderTimeout = "provider.timeout"
	KeyProviderRetries = "provider.retries"
	KeyProviderBackoff = "provider.backoff"
	KeyRateLimit       = "provider.rate_limit"
	KeyRateBurst       = "provider.burst"
	KeySimulateLatency = "simulation.latency"
	KeyDataDir         = "storage.data_dir"
)

// settingParsers parse a raw value for a key, apply it to settings and
// return the value to persist.
var settingParsers = map[string]func(s *domain.PipelineSettings, raw string) (any, error){
	KeyIntakeDir: func(s *domain.PipelineSettings, raw string) (any, error) {
		s.IntakeDir = raw
		return raw, nil
	},
	KeyProcessedDir: func(s *domain.PipelineSettings, raw string) (any, error) {
		s.ProcessedDir = raw
		return raw, nil
	},
	KeyPollInterval: durationSetter(func(s *domain.PipelineSettings) *time.Duration { return &s.PollInterval }),
	KeyWorkers:      intSetter(func(s *domain.PipelineSettings) *int { return &s.Workers }),
	KeyProviderTimeout: durationSetter(func(s *domain.PipelineSettings) *time.Duration {
		return &s.Provider.Timeout
	}),
	KeyProviderRetries: intSetter(func(s *domain.PipelineSettings) *int { return &s.Provider.Retries }),
	KeyProviderBackoff: durationSetter(func(s *domain.PipelineSettings) *time.Duration {
		return &s.Provider.Backoff
	}),
	KeyRateLimit: func(s *domain.PipelineSettings, raw string) (any, error) {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || f < 0 {
			return nil, fmt.Errorf("must be a non-negative number")
		}
		s.Provider.RateLimit = f
		return f, nil
	},
	KeyRateBurst: intSetter(func(s *domain.PipelineSettings) *int { return &s.Provider.Burst }),
	KeySimulateLatency: func(s *domain.PipelineSettings, raw string) (any, error) {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, err
		}
		s.SimulateLatency = b
		return b, nil
	},
	KeyDataDir: func(s *domain.PipelineSettings, raw string) (any, error) {
		s.DataDir = raw
		return raw, nil
	},
}

func durationSetter(field func(*domain.PipelineSettings) *time.Duration) func(*domain.PipelineSettings, string) (any, error) {
	return func(s *domain.PipelineSettings, raw string) (any, error) {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, err
		}
		*field(s) = d
		return d.String(), nil
	}
}

func intSetter(field func(*domain.PipelineSettings) *int) func(*domain.PipelineSettings, string) (any, error) {
	return func(s *domain.PipelineSettings, raw string) (any, error) {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, err
		}
		*field(s) = n
		return n, nil
	}
}

// SettingsService manages pipeline settings stored in the config file.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current settings, falling back to defaults for
// anything unset or malformed.
func (s *SettingsService) Get() (*domain.PipelineSettings, error) {
	defaults := domain.DefaultPipelineSettings()

	settings := &domain.PipelineSettings{
		IntakeDir:    s.getString(KeyIntakeDir, defaults.IntakeDir),
		ProcessedDir: s.getString(KeyProcessedDir, defaults.ProcessedDir),
		PollInterval: s.getDuration(KeyPollInterval, defaults.PollInterval),
		Workers:      s.getInt(KeyWorkers, defaults.Workers),
		Provider: domain.ProviderSettings{
			Timeout:   s.getDuration(KeyProviderTimeout, defaults.Provider.Timeout),
			Retries:   s.getInt(KeyProviderRetries, defaults.Provider.Retries),
			Backoff:   s.getDuration(KeyProviderBackoff, defaults.Provider.Backoff),
			RateLimit: s.getFloat(KeyRateLimit, defaults.Provider.RateLimit),
			Burst:     s.getInt(KeyRateBurst, defaults.Provider.Burst),
		},
		SimulateLatency: s.getBool(KeySimulateLatency, defaults.SimulateLatency),
		DataDir:         s.getString(KeyDataDir, defaults.DataDir),
	}

	return settings, nil
}

// Save validates and persists settings.
func (s *SettingsService) Save(settings *domain.PipelineSettings) error {
	if settings == nil {
		return fmt.Errorf("%w: nil settings", domain.ErrInvalidInput)
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{KeyIntakeDir, settings.IntakeDir},
		{KeyProcessedDir, settings.ProcessedDir},
		{KeyPollInterval, settings.PollInterval.String()},
		{KeyWorkers, settings.Workers},
		{KeyProviderTimeout, settings.Provider.Timeout.String()},
		{KeyProviderRetries, settings.Provider.Retries},
		{KeyProviderBackoff, settings.Provider.Backoff.String()},
		{KeyRateLimit, settings.Provider.RateLimit},
		{KeyRateBurst, settings.Provider.Burst},
		{KeySimulateLatency, settings.SimulateLatency},
		{KeyDataDir, settings.DataDir},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	if err := s.configStore.Save(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}

// Set parses value for key and persists it if the resulting settings
// are still valid.
func (s *SettingsService) Set(key, value string) error {
	parse, ok := settingParsers[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	stored, err := parse(settings, value)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	if err := s.configStore.Save(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}

// Keys returns the recognised setting keys in sorted order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingParsers))
	for k := range settingParsers {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.PipelineSettings {
	return domain.DefaultPipelineSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val, exists := s.configStore.Get(key)
	if !exists {
		return defaultVal
	}
	switch v := val.(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	default:
		return defaultVal
	}
}
