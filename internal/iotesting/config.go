// Package iotesting provides shared utilities for integration tests.
package iotesting

import (
	"os"

	"github.com/nutrigrade/nutrigrade/internal/ioconfig"
	"github.com/nutrigrade/nutrigrade/pkg/config"
)

const (
	// TestDatabaseName is the database name used for all integration tests.
	// This ensures tests never accidentally run against production databases.
	TestDatabaseName = "nutrigrade_test"
)

// GetTestConfig returns a configuration suitable for integration tests.
// It loads the standard config (from file and env vars, or defaults) and
// overrides the database name to TestDatabaseName for safety.
//
// Usage in integration tests:
//
//	func TestSomething(t *testing.T) {
//	    if testing.Short() {
//	        t.Skip("Skipping integration test")
//	    }
//	    cfg := iotesting.GetTestConfig()
//	    // ... use cfg for database operations
//	}
func GetTestConfig() *config.Config {
	cfg := config.New()

	if home, err := os.UserHomeDir(); err == nil {
		if res, err := ioconfig.Load(home); err == nil {
			cfg.Update(res.ToOptions())
		}
	}

	cfg.Update([]config.Option{
		config.OptDatabaseDatabase(TestDatabaseName),
		config.OptDatabaseBatchSize(10),
	})
	return cfg
}

// GetTestDatabaseConfig returns only the database configuration for tests.
func GetTestDatabaseConfig() *config.DatabaseConfig {
	cfg := GetTestConfig()
	return &cfg.Database
}
