package iosources

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/nutrigrade/nutrigrade/pkg/additive"
	"github.com/nutrigrade/nutrigrade/pkg/reftable"
	"github.com/nutrigrade/nutrigrade/pkg/schema"
	"github.com/nutrigrade/nutrigrade/pkg/sources"
	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite"
)

// downloadTimeout limits the time to get a remote dataset.
const downloadTimeout = 60 * time.Second

type fileSource struct {
	path     string
	format   sources.Format
	cacheDir string
}

// NewFile creates a source that reads a JSON, YAML or SQLite dataset from
// a local path or http(s) URL. Remote SQLite files are saved to cacheDir
// (or a temporary directory if cacheDir is empty).
func NewFile(
	path string,
	format sources.Format,
	cacheDir string,
) reftable.Source {
	return &fileSource{path: path, format: format, cacheDir: cacheDir}
}

func (f *fileSource) String() string {
	return f.path
}

// Records reads all records of the dataset. Elements that cannot be
// decoded are skipped with a warning, a broken file as a whole is an
// error.
func (f *fileSource) Records() ([]additive.Record, error) {
	if f.format == sources.SQLite {
		path, err := f.localPath()
		if err != nil {
			return nil, err
		}
		return readSQLite(path)
	}

	data, err := f.read()
	if err != nil {
		return nil, err
	}

	switch f.format {
	case sources.YAML:
		return decodeYAML(f.path, data)
	case sources.JSON:
		return decodeJSON(f.path, data)
	default:
		return nil, ReferenceFormatError(f.path, string(f.format),
			errors.New("unsupported file format"))
	}
}

func (f *fileSource) read() ([]byte, error) {
	if sources.IsValidURL(f.path) {
		return download(f.path)
	}

	res, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ReferenceNotFoundError(f.path, err)
	}
	if err != nil {
		return nil, ReferenceReadError(f.path, err)
	}
	return res, nil
}

// localPath returns a path of a file on disk, downloading remote files
// first.
func (f *fileSource) localPath() (string, error) {
	if !sources.IsValidURL(f.path) {
		if _, err := os.Stat(f.path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return "", ReferenceNotFoundError(f.path, err)
			}
			return "", ReferenceReadError(f.path, err)
		}
		return f.path, nil
	}

	data, err := download(f.path)
	if err != nil {
		return "", err
	}

	dir := f.cacheDir
	if dir == "" {
		dir = os.TempDir()
	}
	res := filepath.Join(dir, "reference.sqlite")
	if err = os.WriteFile(res, data, 0644); err != nil {
		return "", ReferenceReadError(res, err)
	}
	return res, nil
}

func download(url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), downloadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, ReferenceDownloadError(url, err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, ReferenceDownloadError(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ReferenceNotFoundError(url,
			fmt.Errorf("http status %d", resp.StatusCode))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, ReferenceDownloadError(url,
			fmt.Errorf("http status %d", resp.StatusCode))
	}

	res, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ReferenceDownloadError(url, err)
	}
	return res, nil
}

func decodeJSON(path string, data []byte) ([]additive.Record, error) {
	var items []json.RawMessage
	enc := gnfmt.GNjson{}
	if err := enc.Decode(data, &items); err != nil {
		return nil, ReferenceFormatError(path, "json", err)
	}

	res := make([]additive.Record, 0, len(items))
	for i, v := range items {
		var raw rawRecord
		if err := enc.Decode(v, &raw); err != nil {
			slog.Warn("Skipping malformed reference element",
				"source", path, "index", i, "error", err)
			continue
		}
		res = append(res, raw.record())
	}
	return res, nil
}

func decodeYAML(path string, data []byte) ([]additive.Record, error) {
	var doc struct {
		Additives []yaml.Node `yaml:"additives"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, ReferenceFormatError(path, "yaml", err)
	}

	res := make([]additive.Record, 0, len(doc.Additives))
	for i := range doc.Additives {
		var raw rawRecord
		if err := doc.Additives[i].Decode(&raw); err != nil {
			slog.Warn("Skipping malformed reference element",
				"source", path, "index", i, "error", err)
			continue
		}
		res = append(res, raw.record())
	}
	return res, nil
}

const additivesQuery = `SELECT code, name, status, max_ppm, allowed_in, notes
	FROM additives`

func readSQLite(path string) ([]additive.Record, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, ReferenceReadError(path, err)
	}
	defer db.Close()

	rows, err := db.Query(additivesQuery)
	if err != nil {
		return nil, ReferenceFormatError(path, "sqlite", err)
	}
	defer rows.Close()

	var res []additive.Record
	for rows.Next() {
		var code, name, status, allowed, notes sql.NullString
		var maxPPM sql.NullFloat64
		err = rows.Scan(&code, &name, &status, &maxPPM, &allowed, &notes)
		if err != nil {
			return res, ReferenceReadError(path, err)
		}

		a := schema.Additive{
			Code:      strings.TrimSpace(code.String),
			Name:      name.String,
			Status:    status.String,
			AllowedIn: allowed.String,
			Notes:     notes.String,
		}
		if maxPPM.Valid {
			a.MaxPPM = &maxPPM.Float64
		}

		rec, err := a.Record()
		if err != nil {
			slog.Warn("Skipping malformed reference row",
				"source", path, "code", a.Code, "error", err)
			continue
		}
		res = append(res, rec)
	}
	if err = rows.Err(); err != nil {
		return res, ReferenceReadError(path, err)
	}
	return res, nil
}
