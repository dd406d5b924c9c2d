package driven

// ConfigStore holds flat, dot-keyed settings such as "pipeline.intake_dir".
// File-backed implementations let environment overrides win over stored
// values.
type ConfigStore interface {
	// Get retrieves a value by key and reports whether it is set.
	Get(key string) (any, bool)

	// GetString returns "" if the key is unset.
	GetString(key string) string

	// GetInt returns 0 if the key is unset or not numeric.
	GetInt(key string) int

	// GetBool returns false if the key is unset or not a boolean.
	GetBool(key string) bool

	// GetStringSlice returns nil if the key is unset or not a list.
	GetStringSlice(key string) []string

	// Set stores a value in memory. Call Save to persist it.
	Set(key string, value any) error

	// Keys lists every key currently set.
	Keys() []string

	// Save persists the configuration.
	Save() error

	// Load re-reads the configuration from storage.
	Load() error

	// Path returns the configuration file path.
	Path() string
}
