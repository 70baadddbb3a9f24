// Package reftable keeps the regulatory additive dataset in memory and
// answers lookups by additive code and by additive name.
//
// A Table is built once from a Source. Loading never fails from the point
// of view of a caller: a missing or corrupt dataset results in an empty
// (or partial) table, and the problem is reported through slog and
// Stats(). After loading, the indexes are never modified, so concurrent
// lookups need no locking.
package reftable

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/nutrigrade/nutrigrade/pkg/additive"
)

// Source provides raw additive records for a Table.
type Source interface {
	// Records returns all records of a dataset. Records may be partial or
	// malformed, the Table decides which of them are usable.
	Records() ([]additive.Record, error)

	// String describes the source for diagnostics (usually a path).
	String() string
}

// Stats describes the outcome of a Table load.
type Stats struct {
	// Source is the description of the dataset source.
	Source string `json:"source"`
	// Records is the number of indexed codes.
	Records int `json:"records"`
	// Names is the number of indexed names.
	Names int `json:"names"`
	// Skipped is the number of records that were not indexed.
	Skipped int `json:"skipped"`
	// Err keeps the reason the source could not be read, if any.
	Err error `json:"-"`
}

// Table is an in-memory index of additive records.
type Table struct {
	src    Source
	once   sync.Once
	byCode map[string]additive.Record
	byName map[string]string
	stats  Stats
}

// New creates an empty table for the given source. The source can be nil,
// in that case the table stays empty after loading.
func New(src Source) *Table {
	return &Table{
		src:    src,
		byCode: make(map[string]additive.Record),
		byName: make(map[string]string),
	}
}

// NewFromRecords creates a table and loads it from the given records
// right away.
func NewFromRecords(recs []additive.Record) *Table {
	res := New(recordsSource(recs))
	res.Load()
	return res
}

// Load reads the source and builds the indexes. Only the first call does
// the work, all subsequent calls return immediately. Lookups call Load
// implicitly if it was not called before.
func (t *Table) Load() {
	t.once.Do(t.load)
}

func (t *Table) load() {
	if t.src == nil {
		t.stats.Err = fmt.Errorf("reference source is not set")
		slog.Warn("Reference table is empty", "error", t.stats.Err)
		return
	}
	t.stats.Source = t.src.String()

	recs, err := t.src.Records()
	if err != nil {
		t.stats.Err = err
		slog.Warn("Cannot load reference data, table is empty",
			"source", t.stats.Source, "error", err)
	}

	for i := range recs {
		t.add(recs[i])
	}
	t.stats.Records = len(t.byCode)
	t.stats.Names = len(t.byName)

	slog.Info("Reference table is loaded",
		"source", t.stats.Source,
		"records", t.stats.Records,
		"names", t.stats.Names,
		"skipped", t.stats.Skipped,
	)
}

// add indexes one record. Records without code or with a status outside
// of the known set are skipped. A later record with the same code
// replaces the earlier one.
func (t *Table) add(rec additive.Record) {
	rec.Code = strings.TrimSpace(rec.Code)
	if rec.Code == "" {
		t.stats.Skipped++
		slog.Warn("Skipping reference record without code",
			"name", rec.Name)
		return
	}

	raw := rec.Status
	status, ok := additive.ParseStatus(string(raw))
	if !ok {
		t.stats.Skipped++
		slog.Warn("Skipping reference record with unknown status",
			"code", rec.Code, "status", raw)
		return
	}
	if raw == "" {
		status = ""
	}
	rec.Status = status

	t.byCode[rec.Code] = rec

	name := normName(rec.Name)
	if name != "" {
		t.byName[name] = rec.Code
	}
}

// ByCode returns a record for the exact numeric code.
func (t *Table) ByCode(code string) (additive.Record, bool) {
	t.Load()
	rec, ok := t.byCode[code]
	return rec, ok
}

// ByName returns a record for a case-insensitive additive name.
func (t *Table) ByName(name string) (additive.Record, bool) {
	t.Load()
	code, ok := t.byName[normName(name)]
	if !ok {
		return additive.Record{}, false
	}
	rec, ok := t.byCode[code]
	return rec, ok
}

// All returns all records sorted by code.
func (t *Table) All() []additive.Record {
	t.Load()
	res := make([]additive.Record, 0, len(t.byCode))
	for _, v := range t.byCode {
		res = append(res, v)
	}
	slices.SortFunc(res, func(a, b additive.Record) int {
		return compareCodes(a.Code, b.Code)
	})
	return res
}

// Stats returns the outcome of loading.
func (t *Table) Stats() Stats {
	t.Load()
	return t.stats
}

func normName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// compareCodes sorts numeric codes by their numeric value first, so "330"
// goes before "1400".
func compareCodes(a, b string) int {
	if len(a) != len(b) {
		return len(a) - len(b)
	}
	return strings.Compare(a, b)
}

type recordsSource []additive.Record

func (r recordsSource) Records() ([]additive.Record, error) {
	return r, nil
}

func (r recordsSource) String() string {
	return "memory"
}
