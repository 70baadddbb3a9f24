package iosources

import (
	"bytes"
	"strconv"

	"github.com/gnames/gnfmt"
	"github.com/nutrigrade/nutrigrade/pkg/additive"
)

// rawRecord is an additive entry as it appears in JSON and YAML datasets.
// The original FSSAI dataset keeps the code in 'ins_number', 'code' is
// accepted as well.
type rawRecord struct {
	Code      flexString `json:"code"       yaml:"code"`
	InsNumber flexString `json:"ins_number" yaml:"ins_number"`
	Name      string     `json:"name"       yaml:"name"`
	Status    string     `json:"status"     yaml:"status"`
	MaxPPM    *float64   `json:"max_ppm"    yaml:"max_ppm"`
	AllowedIn []string   `json:"allowed_in" yaml:"allowed_in"`
	Notes     string     `json:"notes"      yaml:"notes"`
}

func (r rawRecord) record() additive.Record {
	code := string(r.Code)
	if code == "" {
		code = string(r.InsNumber)
	}
	return additive.Record{
		Code:      code,
		Name:      r.Name,
		Status:    additive.Status(r.Status),
		MaxPPM:    r.MaxPPM,
		AllowedIn: r.AllowedIn,
		Notes:     r.Notes,
	}
}

// flexString accepts both JSON strings and numbers, some datasets keep
// codes as numbers.
type flexString string

func (f *flexString) UnmarshalJSON(bs []byte) error {
	bs = bytes.TrimSpace(bs)
	if len(bs) > 0 && bs[0] == '"' {
		var s string
		enc := gnfmt.GNjson{}
		if err := enc.Decode(bs, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	if string(bs) == "null" {
		*f = ""
		return nil
	}
	if _, err := strconv.ParseFloat(string(bs), 64); err != nil {
		return err
	}
	*f = flexString(bs)
	return nil
}
