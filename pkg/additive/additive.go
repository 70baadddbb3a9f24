// Package additive defines the entities shared by the reference table and
// the compliance engine: regulatory records, extracted code occurrences,
// per-additive details and the product-level verdict.
//
// This package has no I/O dependencies.
package additive

import "strings"

// Status is the regulatory classification of one additive.
type Status string

const (
	// Unknown means no usable reference record exists for the code.
	Unknown Status = "unknown"
	// Permitted additives can be used within the limits of the record.
	Permitted Status = "permitted"
	// Restricted additives are allowed only in some product categories.
	Restricted Status = "restricted"
	// Banned additives make a product non-compliant.
	Banned Status = "banned"
)

// ParseStatus converts a dataset value to Status. It is case-insensitive.
// Empty input returns Unknown and true, because absence of status is
// legal in a dataset. Values outside of the known set return false.
func ParseStatus(s string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return Unknown, true
	case "permitted":
		return Permitted, true
	case "restricted":
		return Restricted, true
	case "banned":
		return Banned, true
	case "unknown":
		return Unknown, true
	default:
		return Unknown, false
	}
}

// Record is a regulatory reference entry for one additive code.
// Records are immutable once they are loaded into a table.
type Record struct {
	// Code is the numeric INS/E code, for example "211". It is the
	// identity of the record and cannot be empty.
	Code string `json:"code" yaml:"code"`

	// Name is the display name of the additive, for example
	// "Sodium benzoate".
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Status is empty when the dataset does not provide it. Such records
	// resolve to Unknown.
	Status Status `json:"status,omitempty" yaml:"status,omitempty"`

	// MaxPPM is the maximum permitted concentration in parts per million.
	MaxPPM *float64 `json:"max_ppm,omitempty" yaml:"max_ppm,omitempty"`

	// AllowedIn lists product categories where the additive can be used.
	AllowedIn []string `json:"allowed_in,omitempty" yaml:"allowed_in,omitempty"`

	// Notes is a free-text regulatory remark.
	Notes string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Match is one additive code occurrence found in ingredient text.
type Match struct {
	// Raw is the matched substring, annotation included,
	// for example "INS 211 (Sodium Benzoate)".
	Raw string
	// Code is the digit sequence of the match, for example "211".
	Code string
}

// Detail is the analysis result for one Match.
type Detail struct {
	Raw       string   `json:"raw"`
	Code      string   `json:"normalized_ins"`
	Name      *string  `json:"name"`
	Status    Status   `json:"status"`
	MaxPPM    *float64 `json:"max_ppm"`
	AllowedIn []string `json:"allowed_in"`
	Notes     *string  `json:"notes"`
}

// Verdict is the product-level compliance classification.
type Verdict string

const (
	Compliant          Verdict = "compliant"
	PartiallyCompliant Verdict = "partially_compliant"
	NonCompliant       Verdict = "non_compliant"
	UnknownCompliance  Verdict = "unknown"
)

// Verdicts lists all verdict values.
func Verdicts() []Verdict {
	return []Verdict{
		Compliant, PartiallyCompliant, NonCompliant, UnknownCompliance,
	}
}
