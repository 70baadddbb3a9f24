// Package iofs prepares the file system layout of NutriGrade: config,
// cache and log directories, the default config.yaml and the bundled
// FSSAI additive dataset.
package iofs

import (
	_ "embed"
	"os"

	"github.com/nutrigrade/nutrigrade/pkg/config"
)

//go:embed config.yaml
var ConfigYAML string

// ReferenceJSON is a bundled FSSAI additive dataset. It is written to the
// config directory on the first run and can be replaced there.
//
//go:embed fssai_additives.json
var ReferenceJSON string

func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.CacheDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

// EnsureConfigFile writes the embedded config.yaml to the config
// directory if the file does not exist yet.
func EnsureConfigFile(homeDir string) error {
	return ensureFile(config.ConfigFilePath(homeDir), ConfigYAML)
}

// EnsureReferenceFile writes the bundled additive dataset to the config
// directory if the file does not exist yet.
func EnsureReferenceFile(homeDir string) error {
	return ensureFile(config.ReferenceFilePath(homeDir), ReferenceJSON)
}

func ensureFile(path, content string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return CopyFileError(path, err)
	}

	return nil
}
