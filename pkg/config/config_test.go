package config_test

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/nutrigrade/nutrigrade/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "nutrigrade"),
		},
		{
			msg: "cache dir",
			fn:  config.CacheDir,
			res: filepath.Join(tempHome, ".cache", "nutrigrade"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "nutrigrade", "logs"),
		},
		{
			msg: "reference file",
			fn:  config.ReferenceFilePath,
			res: filepath.Join(
				tempHome, ".config", "nutrigrade", "fssai_additives.json",
			),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()
	require.NotNil(t, cfg)

	assert.Equal(t, "", cfg.Reference.Path)
	assert.Equal(t, "auto", cfg.Reference.Format)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "nutrigrade", cfg.Database.Database)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 5_000, cfg.Database.BatchSize)

	assert.Equal(t, "https://world.openfoodfacts.org/api/v2", cfg.OFF.URL)
	assert.Equal(t, 10, cfg.OFF.Timeout)
	assert.NotEmpty(t, cfg.OFF.UserAgent)

	assert.Equal(t, "", cfg.Cache.RedisURL)
	assert.Equal(t, 86_400, cfg.Cache.TTL)
	assert.Equal(t, 8000, cfg.Server.Port)

	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "file", cfg.Log.Destination)

	assert.Equal(t, runtime.NumCPU(), cfg.JobsNumber)
}

func TestReferencePath(t *testing.T) {
	cfg := config.New()
	assert.Equal(t, "fssai_additives.json", cfg.ReferencePath())

	cfg.Update([]config.Option{config.OptHomeDir("/home/user")})
	assert.Equal(t,
		filepath.Join("/home/user", ".config", "nutrigrade", "fssai_additives.json"),
		cfg.ReferencePath(),
	)

	cfg.Update([]config.Option{config.OptReferencePath("/data/fssai.yaml")})
	assert.Equal(t, "/data/fssai.yaml", cfg.ReferencePath())
}

func TestOptionStrings(t *testing.T) {
	tests := []struct {
		msg   string
		opt   func(string) config.Option
		get   func(*config.Config) string
		input string
		res   string
	}{
		{
			msg:   "host",
			opt:   config.OptDatabaseHost,
			get:   func(c *config.Config) string { return c.Database.Host },
			input: "  db.example.com  ",
			res:   "db.example.com",
		},
		{
			msg:   "empty host",
			opt:   config.OptDatabaseHost,
			get:   func(c *config.Config) string { return c.Database.Host },
			input: "   ",
			res:   "localhost",
		},
		{
			msg:   "reference format",
			opt:   config.OptReferenceFormat,
			get:   func(c *config.Config) string { return c.Reference.Format },
			input: "YAML",
			res:   "yaml",
		},
		{
			msg:   "bad reference format",
			opt:   config.OptReferenceFormat,
			get:   func(c *config.Config) string { return c.Reference.Format },
			input: "csv",
			res:   "auto",
		},
		{
			msg:   "ssl mode",
			opt:   config.OptDatabaseSSLMode,
			get:   func(c *config.Config) string { return c.Database.SSLMode },
			input: "REQUIRE",
			res:   "require",
		},
		{
			msg:   "bad ssl mode",
			opt:   config.OptDatabaseSSLMode,
			get:   func(c *config.Config) string { return c.Database.SSLMode },
			input: "invalid",
			res:   "disable",
		},
		{
			msg:   "off url",
			opt:   config.OptOFFURL,
			get:   func(c *config.Config) string { return c.OFF.URL },
			input: "http://localhost:9000/api/v2/",
			res:   "http://localhost:9000/api/v2",
		},
		{
			msg:   "bad off url",
			opt:   config.OptOFFURL,
			get:   func(c *config.Config) string { return c.OFF.URL },
			input: "ftp://example.org",
			res:   "https://world.openfoodfacts.org/api/v2",
		},
		{
			msg:   "log level",
			opt:   config.OptLogLevel,
			get:   func(c *config.Config) string { return c.Log.Level },
			input: "DEBUG",
			res:   "debug",
		},
		{
			msg:   "bad log level",
			opt:   config.OptLogLevel,
			get:   func(c *config.Config) string { return c.Log.Level },
			input: "trace",
			res:   "info",
		},
		{
			msg:   "log destination",
			opt:   config.OptLogDestination,
			get:   func(c *config.Config) string { return c.Log.Destination },
			input: "stderr",
			res:   "stderr",
		},
		{
			msg:   "log format",
			opt:   config.OptLogFormat,
			get:   func(c *config.Config) string { return c.Log.Format },
			input: "xml",
			res:   "json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{tt.opt(tt.input)})
			assert.Equal(t, tt.res, tt.get(cfg))
		})
	}
}

func TestOptionInts(t *testing.T) {
	tests := []struct {
		msg   string
		opt   func(int) config.Option
		get   func(*config.Config) int
		input int
		res   int
	}{
		{
			msg:   "port",
			opt:   config.OptDatabasePort,
			get:   func(c *config.Config) int { return c.Database.Port },
			input: 3306,
			res:   3306,
		},
		{
			msg:   "negative port",
			opt:   config.OptDatabasePort,
			get:   func(c *config.Config) int { return c.Database.Port },
			input: -100,
			res:   5432,
		},
		{
			msg:   "batch size",
			opt:   config.OptDatabaseBatchSize,
			get:   func(c *config.Config) int { return c.Database.BatchSize },
			input: 0,
			res:   5_000,
		},
		{
			msg:   "server port",
			opt:   config.OptServerPort,
			get:   func(c *config.Config) int { return c.Server.Port },
			input: 8080,
			res:   8080,
		},
		{
			msg:   "server port too big",
			opt:   config.OptServerPort,
			get:   func(c *config.Config) int { return c.Server.Port },
			input: 70_000,
			res:   8000,
		},
		{
			msg:   "timeout",
			opt:   config.OptOFFTimeout,
			get:   func(c *config.Config) int { return c.OFF.Timeout },
			input: 3,
			res:   3,
		},
		{
			msg:   "ttl",
			opt:   config.OptCacheTTL,
			get:   func(c *config.Config) int { return c.Cache.TTL },
			input: -1,
			res:   86_400,
		},
		{
			msg:   "jobs",
			opt:   config.OptJobsNumber,
			get:   func(c *config.Config) int { return c.JobsNumber },
			input: 0,
			res:   runtime.NumCPU(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{tt.opt(tt.input)})
			assert.Equal(t, tt.res, tt.get(cfg))
		})
	}
}

func TestMultipleOptions(t *testing.T) {
	t.Run("applies multiple options in order", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{
			config.OptReferencePath("/data/fssai.sqlite"),
			config.OptDatabaseHost("custom.host.com"),
			config.OptServerPort(9000),
			config.OptLogLevel("debug"),
			config.OptJobsNumber(16),
		})

		assert.Equal(t, "/data/fssai.sqlite", cfg.Reference.Path)
		assert.Equal(t, "custom.host.com", cfg.Database.Host)
		assert.Equal(t, 9000, cfg.Server.Port)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, 16, cfg.JobsNumber)

		assert.Equal(t, "postgres", cfg.Database.Password)
		assert.Equal(t, "json", cfg.Log.Format)
	})

	t.Run("later options override earlier ones", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{
			config.OptDatabaseHost("first.host.com"),
			config.OptDatabaseHost("second.host.com"),
		})
		assert.Equal(t, "second.host.com", cfg.Database.Host)
	})
}

func TestToOptions(t *testing.T) {
	t.Run("round trip of persistent fields", func(t *testing.T) {
		original := config.New()
		original.Update([]config.Option{
			config.OptReferencePath("https://example.org/fssai.json"),
			config.OptReferenceFormat("json"),
			config.OptDatabaseHost("test.host.com"),
			config.OptDatabasePort(3306),
			config.OptDatabaseUser("testuser"),
			config.OptDatabasePassword("testpass"),
			config.OptDatabaseDatabase("testdb"),
			config.OptDatabaseSSLMode("require"),
			config.OptDatabaseBatchSize(100),
			config.OptOFFURL("http://localhost:9999/api/v2"),
			config.OptOFFTimeout(2),
			config.OptOFFUserAgent("test-agent"),
			config.OptCacheRedisURL("redis://localhost:6379/1"),
			config.OptCacheTTL(60),
			config.OptServerPort(9090),
			config.OptLogLevel("debug"),
			config.OptLogFormat("text"),
			config.OptLogDestination("stdout"),
			config.OptJobsNumber(8),
		})

		newCfg := config.New()
		newCfg.Update(original.ToOptions())
		assert.Equal(t, original, newCfg)
	})

	t.Run("excludes runtime-only fields", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{config.OptHomeDir("/custom/home")})

		newCfg := config.New()
		newCfg.Update(cfg.ToOptions())
		assert.Equal(t, "", newCfg.HomeDir)
	})
}
