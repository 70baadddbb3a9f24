// Package config provides configuration management for NutriGrade.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Reference: path, format
//   - Database: host, port, user, password, database, ssl_mode, batch_size
//   - OFF: url, timeout, user_agent
//   - Cache: redis_url, ttl
//   - Server: port
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use NUTRIGRADE_ prefix with underscores for nesting:
//
//	NUTRIGRADE_REFERENCE_PATH=/data/fssai_additives.json
//	NUTRIGRADE_DATABASE_HOST=localhost
//	NUTRIGRADE_CACHE_REDIS_URL=redis://localhost:6379/0
//	NUTRIGRADE_SERVER_PORT=8000
//	NUTRIGRADE_LOG_LEVEL=info
//	NUTRIGRADE_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Config represents the complete NutriGrade configuration.
type Config struct {
	// Reference describes where the regulatory additive dataset comes from.
	Reference ReferenceConfig `mapstructure:"reference" yaml:"reference"`

	// Database contains PostgreSQL connection settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// OFF contains settings of the Open Food Facts client.
	OFF OFFConfig `mapstructure:"off" yaml:"off"`

	// Cache contains settings of the product cache.
	Cache CacheConfig `mapstructure:"cache" yaml:"cache"`

	// Server contains settings of the HTTP API.
	Server ServerConfig `mapstructure:"server" yaml:"server"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for parallel operations.
	// Default value is set accoring to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// ReferenceConfig points to the additive reference dataset.
type ReferenceConfig struct {
	// Path is a file path or URL of the dataset. For the 'postgres' format
	// it is ignored and Database settings are used instead.
	// When empty, fssai_additives.json in the config directory is used.
	Path string `mapstructure:"path" yaml:"path"`

	// Format can be 'auto', 'json', 'yaml', 'sqlite' or 'postgres'.
	// With 'auto' the format is detected from the file extension.
	Format string `mapstructure:"format" yaml:"format"`
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// BatchSize defines the number of records sent to PostgreSQL in one
	// COPY batch during populate.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// OFFConfig contains Open Food Facts API settings.
type OFFConfig struct {
	// URL is the base of the Open Food Facts API v2.
	URL string `mapstructure:"url" yaml:"url"`

	// Timeout of one API request in seconds.
	Timeout int `mapstructure:"timeout" yaml:"timeout"`

	// UserAgent is sent with every request, Open Food Facts asks clients
	// to identify themselves.
	UserAgent string `mapstructure:"user_agent" yaml:"user_agent"`
}

// CacheConfig contains Redis settings for caching products.
type CacheConfig struct {
	// RedisURL is a redis:// URL. Empty value disables the cache.
	RedisURL string `mapstructure:"redis_url" yaml:"redis_url"`

	// TTL is the time to keep a cached product in seconds.
	TTL int `mapstructure:"ttl" yaml:"ttl"`
}

// ServerConfig contains HTTP API settings.
type ServerConfig struct {
	// Port to listen on.
	Port int `mapstructure:"port" yaml:"port"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Reference: ReferenceConfig{
			Format: "auto",
		},
		Database: DatabaseConfig{
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "nutrigrade",
			SSLMode:   "disable",
			BatchSize: 5_000,
		},
		OFF: OFFConfig{
			URL:       "https://world.openfoodfacts.org/api/v2",
			Timeout:   10,
			UserAgent: "NutriGrade/1.0 (https://github.com/nutrigrade/nutrigrade)",
		},
		Cache: CacheConfig{
			TTL: 86_400,
		},
		Server: ServerConfig{
			Port: 8000,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(), // Default to number of CPU threads
	}

	return res
}

// ReferencePath returns the dataset location. If the path is not set,
// the default file in the config directory is used.
func (c *Config) ReferencePath() string {
	if c.Reference.Path != "" {
		return c.Reference.Path
	}
	if c.HomeDir == "" {
		return ReferenceFile
	}
	return ReferenceFilePath(c.HomeDir)
}
