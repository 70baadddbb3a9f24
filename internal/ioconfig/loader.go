// Package ioconfig loads configuration from config.yaml and environment
// variables. This is an impure package that reads the file system and
// the process environment.
package ioconfig

import (
	"strings"

	"github.com/nutrigrade/nutrigrade/pkg/config"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of all environment variables that can change
// the configuration.
const EnvPrefix = "NUTRIGRADE"

// envKeys are configuration keys that can be set by environment variables.
// They match the fields included in config.ToOptions(), i.e. persistent
// configuration that can be stored in config.yaml.
var envKeys = []string{
	"reference.path",
	"reference.format",

	"database.host",
	"database.port",
	"database.user",
	"database.password",
	"database.database",
	"database.ssl_mode",
	"database.batch_size",

	"off.url",
	"off.timeout",
	"off.user_agent",

	"cache.redis_url",
	"cache.ttl",

	"server.port",

	"log.level",
	"log.format",
	"log.destination",

	"jobs_number",
}

// Load reads config.yaml from the config directory of homeDir and applies
// environment variables on top of it. The result contains only values
// that were set, so it has to be converted with ToOptions() and applied
// to config.New() to fill in defaults and to validate the values.
func Load(homeDir string) (*config.Config, error) {
	return LoadFile(config.ConfigFilePath(homeDir))
}

// LoadFile is the same as Load, but reads a config file from the given
// path.
func LoadFile(path string) (*config.Config, error) {
	var err error
	v := viper.New()
	v.SetConfigFile(path)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, ConfigReadError(path, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, ConfigReadError(path, err)
	}

	return &res, nil
}

// EnvVar returns the name of the environment variable for a config key.
func EnvVar(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(envReplacer.Replace(key))
}

var envReplacer = strings.NewReplacer(".", "_")

func initEnvVars(v *viper.Viper) {
	// Environment variables are bound one by one, so it is clear which of
	// them are allowed.
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(envReplacer)

	for _, key := range envKeys {
		_ = v.BindEnv(key, EnvVar(key))
	}
}
