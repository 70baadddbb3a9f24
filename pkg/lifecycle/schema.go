// Package lifecycle defines contracts of PostgreSQL reference storage:
// schema management and import of the additive dataset.
package lifecycle

import (
	"context"

	"github.com/nutrigrade/nutrigrade/pkg/config"
)

// SchemaManager defines the interface for database schema management.
// It uses GORM AutoMigrate to handle both initial schema creation and migrations.
// Schema management is idempotent - safe to run multiple times.
type SchemaManager interface {
	// Create creates the initial database schema using GORM AutoMigrate.
	// If tables already exist, the caller decides whether to drop them
	// first.
	Create(ctx context.Context, cfg *config.Config) error

	// Migrate updates the database schema to the latest version using GORM AutoMigrate.
	Migrate(ctx context.Context, cfg *config.Config) error
}

// Populator imports the additive dataset into PostgreSQL.
type Populator interface {
	// Populate reads the dataset configured in cfg.Reference, validates
	// it and replaces the content of the additives table. It returns the
	// number of imported records.
	Populate(ctx context.Context, cfg *config.Config) (int, error)
}
