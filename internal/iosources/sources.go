// Package iosources reads the regulatory additive dataset from files,
// URLs, SQLite and PostgreSQL databases. Every reader implements
// reftable.Source.
package iosources

import (
	"log/slog"

	"github.com/nutrigrade/nutrigrade/pkg/config"
	"github.com/nutrigrade/nutrigrade/pkg/reftable"
	"github.com/nutrigrade/nutrigrade/pkg/sources"
)

// New creates a dataset source according to the reference configuration.
func New(cfg *config.Config) reftable.Source {
	format, ok := sources.ParseFormat(cfg.Reference.Format)
	if !ok {
		slog.Warn("Unknown reference format, detecting from path",
			"format", cfg.Reference.Format)
	}

	if format == sources.Postgres {
		return NewPostgres(cfg.Database)
	}

	path := cfg.ReferencePath()
	return NewFile(path, sources.Resolve(format, path), config.CacheDir(cfg.HomeDir))
}

// NewFromFile creates a file source with the format detected from the
// path.
func NewFromFile(path string) reftable.Source {
	return NewFile(path, sources.Resolve(sources.Auto, path), "")
}
