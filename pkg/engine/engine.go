// Package engine classifies ingredient text by FSSAI compliance.
//
// The pipeline has three steps: additive codes are extracted from free text
// (Extract), every occurrence is resolved against reference data
// (AnalyzeOne) and the resulting statuses are reduced to a product-level
// verdict (DeriveVerdict). The engine keeps no mutable state, so one
// instance is safe for concurrent use.
//
// This is a pure package, it does no I/O.
package engine

import (
	"slices"

	"github.com/nutrigrade/nutrigrade/pkg/additive"
)

// Lookup resolves additive records. It is satisfied by *reftable.Table.
type Lookup interface {
	// ByCode returns a record by its numeric code.
	ByCode(code string) (additive.Record, bool)
	// ByName returns a record by its case-insensitive name.
	ByName(name string) (additive.Record, bool)
}

// Result is the outcome of one text analysis.
type Result struct {
	// Details are per-occurrence results in extraction order.
	Details []additive.Detail `json:"ingredients"`
	// Verdict is the product-level compliance.
	Verdict additive.Verdict `json:"product_compliance"`
}

// Engine runs the extraction, resolution and aggregation pipeline.
type Engine struct {
	lookup Lookup
}

// New creates an Engine that resolves codes with the given lookup.
func New(lookup Lookup) *Engine {
	return &Engine{lookup: lookup}
}

// Analyze extracts additive codes from text, resolves each of them and
// derives the verdict for the whole set.
func (e *Engine) Analyze(text string) Result {
	matches := e.Extract(text)
	details := make([]additive.Detail, 0, len(matches))
	for _, m := range matches {
		details = append(details, e.AnalyzeOne(m.Raw, m.Code))
	}

	return Result{
		Details: details,
		Verdict: DeriveVerdict(details),
	}
}

// AnalyzeOne resolves one extracted code. If there is no reference
// record, the detail has Unknown status and no optional fields.
func (e *Engine) AnalyzeOne(raw, code string) additive.Detail {
	res := additive.Detail{
		Raw:    raw,
		Code:   code,
		Status: additive.Unknown,
	}

	if e.lookup == nil {
		return res
	}
	rec, ok := e.lookup.ByCode(code)
	if !ok {
		return res
	}

	if rec.Status != "" {
		res.Status = rec.Status
	}
	if rec.Name != "" {
		res.Name = &rec.Name
	}
	if rec.Notes != "" {
		res.Notes = &rec.Notes
	}
	// copies keep the table immutable if a caller edits the detail
	if rec.MaxPPM != nil {
		maxPPM := *rec.MaxPPM
		res.MaxPPM = &maxPPM
	}
	res.AllowedIn = slices.Clone(rec.AllowedIn)
	return res
}

// Lookup gives access to the reference data used by the engine.
func (e *Engine) Lookup() Lookup {
	return e.lookup
}
