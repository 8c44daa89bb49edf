// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - External errors must be wrapped via this package's error kinds.
package config

// Storage driver names.
const (
	DriverJSON   = "json"
	DriverSQLite = "sqlite"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// StorageDriver selects the persistence backend: json or sqlite.
	StorageDriver string `koanf:"storage_driver"`

	// DataFile is the path of the persisted state (JSON document or
	// SQLite database, depending on the driver).
	DataFile string `koanf:"data_file"`

	// MetricsEnabled toggles Prometheus metric collection.
	MetricsEnabled bool `koanf:"metrics_enabled"`

	// MetricsNamespace overrides the metric namespace.
	MetricsNamespace string `koanf:"metrics_namespace"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		StorageDriver:  DriverJSON,
		DataFile:       "meeple.json",
		MetricsEnabled: true,
	}
}
