// Package sources describes formats of the regulatory additive dataset
// and detects them from file names.
package sources

import (
	"net/url"
	"path"
	"strings"
)

// Format is the storage format of the additive dataset.
type Format string

const (
	// Auto means the format is detected from the file extension.
	Auto Format = "auto"
	// JSON is an array of additive objects. It is the format of the
	// original FSSAI dataset.
	JSON Format = "json"
	// YAML is a document with an 'additives' list.
	YAML Format = "yaml"
	// SQLite is a database with an 'additives' table.
	SQLite Format = "sqlite"
	// Postgres is the 'additives' table created by the populate command.
	Postgres Format = "postgres"
)

// ParseFormat converts a config value to Format. Unknown values return
// false.
func ParseFormat(s string) (Format, bool) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case Auto, JSON, YAML, SQLite, Postgres:
		return f, true
	case "":
		return Auto, true
	default:
		return Auto, false
	}
}

// DetectFormat finds the dataset format from the extension of a file path
// or URL. It returns false if the extension is not recognized.
func DetectFormat(p string) (Format, bool) {
	if IsValidURL(p) {
		if u, err := url.Parse(p); err == nil {
			p = u.Path
		}
	}

	switch strings.ToLower(path.Ext(p)) {
	case ".json":
		return JSON, true
	case ".yaml", ".yml":
		return YAML, true
	case ".sqlite", ".sqlite3", ".db":
		return SQLite, true
	default:
		return Auto, false
	}
}

// Resolve returns the format to use for the dataset. An explicit format
// wins, with Auto the format comes from the path, and JSON is used if the
// path has no recognizable extension.
func Resolve(format Format, p string) Format {
	if format != Auto && format != "" {
		return format
	}
	if res, ok := DetectFormat(p); ok {
		return res
	}
	return JSON
}

// IsValidURL checks if a string is a valid URL.
func IsValidURL(str string) bool {
	u, err := url.Parse(str)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") &&
		u.Host != ""
}
