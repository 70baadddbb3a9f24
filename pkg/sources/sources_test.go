package sources_test

import (
	"testing"

	"github.com/nutrigrade/nutrigrade/pkg/sources"
	"github.com/stretchr/testify/assert"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		msg, path string
		format    sources.Format
		ok        bool
	}{
		{"json", "data/fssai_additives.json", sources.JSON, true},
		{"upper", "DATA.JSON", sources.JSON, true},
		{"yaml", "/tmp/fssai.yaml", sources.YAML, true},
		{"yml", "fssai.yml", sources.YAML, true},
		{"sqlite", "fssai.sqlite", sources.SQLite, true},
		{"db", "fssai.db", sources.SQLite, true},
		{"url", "https://example.org/data/fssai.json?raw=1", sources.JSON, true},
		{"no ext", "fssai", sources.Auto, false},
		{"csv", "fssai.csv", sources.Auto, false},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			res, ok := sources.DetectFormat(tt.path)
			assert.Equal(t, tt.format, res)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestResolve(t *testing.T) {
	assert.Equal(t, sources.YAML, sources.Resolve(sources.YAML, "fssai.json"))
	assert.Equal(t, sources.SQLite, sources.Resolve(sources.Auto, "fssai.db"))
	assert.Equal(t, sources.JSON, sources.Resolve(sources.Auto, "fssai"))
	assert.Equal(t, sources.Postgres, sources.Resolve(sources.Postgres, ""))
}

func TestParseFormat(t *testing.T) {
	f, ok := sources.ParseFormat(" SQLite ")
	assert.True(t, ok)
	assert.Equal(t, sources.SQLite, f)

	f, ok = sources.ParseFormat("")
	assert.True(t, ok)
	assert.Equal(t, sources.Auto, f)

	_, ok = sources.ParseFormat("csv")
	assert.False(t, ok)
}

func TestIsValidURL(t *testing.T) {
	assert.True(t, sources.IsValidURL("https://example.org/a.json"))
	assert.True(t, sources.IsValidURL("http://localhost:8080/a.json"))
	assert.False(t, sources.IsValidURL("/home/user/a.json"))
	assert.False(t, sources.IsValidURL("ftp://example.org/a.json"))
	assert.False(t, sources.IsValidURL("https://"))
}
