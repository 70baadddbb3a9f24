// Package schema provides database schema models for NutriGrade and
// conversions between them and additive records.
package schema

import (
	"strings"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/gnames/gnuuid"
	"github.com/nutrigrade/nutrigrade/pkg/additive"
)

const (
	// AdditivesTable is the table name of Additive.
	AdditivesTable = "additives"
	// DatasetsTable is the table name of Dataset.
	DatasetsTable = "datasets"
)

// Additive is a regulatory record of one additive code.
type Additive struct {
	// ID is UUID v5 generated from the code, so the same code always gets
	// the same ID in every import.
	ID string `gorm:"type:uuid;primaryKey"`

	// Code is the numeric INS/E code.
	Code string `gorm:"type:varchar(10);not null;uniqueIndex"`

	// Name is the display name of the additive.
	Name string `gorm:"type:varchar(255);not null;default:''"`

	// NameLower is the lowercased name for case-insensitive lookups.
	NameLower string `gorm:"type:varchar(255);not null;default:'';index"`

	// Status is empty if the dataset does not provide it.
	Status string `gorm:"type:varchar(20);not null;default:''"`

	// MaxPPM is the maximum permitted concentration, NULL if unknown.
	MaxPPM *float64 `gorm:"column:max_ppm"`

	// AllowedIn is a JSON array of product categories.
	AllowedIn string `gorm:"type:text;not null;default:'[]'"`

	// Notes is a free-text regulatory remark.
	Notes string `gorm:"type:text;not null;default:''"`
}

// Dataset keeps metadata of the last imported dataset. The table has
// only one row.
type Dataset struct {
	// ID is always 1.
	ID int `gorm:"primaryKey"`

	// Source is the path or URL the dataset was imported from.
	Source string `gorm:"type:text;not null"`

	// RecordsNum is the number of imported records.
	RecordsNum int `gorm:"not null"`

	// SkippedNum is the number of records that were not usable.
	SkippedNum int `gorm:"not null"`

	// UpdatedAt is the time of the import.
	UpdatedAt time.Time `gorm:"type:timestamp without time zone"`
}

// AdditiveColumns are the columns of the additives table in the order of
// Values.
func AdditiveColumns() []string {
	return []string{
		"id", "code", "name", "name_lower",
		"status", "max_ppm", "allowed_in", "notes",
	}
}

// NewAdditive converts an additive record to the database model.
func NewAdditive(rec additive.Record) Additive {
	allowed := "[]"
	if len(rec.AllowedIn) > 0 {
		enc := gnfmt.GNjson{}
		if bs, err := enc.Encode(rec.AllowedIn); err == nil {
			allowed = string(bs)
		}
	}

	return Additive{
		ID:        gnuuid.New(rec.Code).String(),
		Code:      rec.Code,
		Name:      rec.Name,
		NameLower: strings.ToLower(strings.TrimSpace(rec.Name)),
		Status:    string(rec.Status),
		MaxPPM:    rec.MaxPPM,
		AllowedIn: allowed,
		Notes:     rec.Notes,
	}
}

// Values returns field values in the order of AdditiveColumns.
func (a Additive) Values() []any {
	return []any{
		a.ID, a.Code, a.Name, a.NameLower,
		a.Status, a.MaxPPM, a.AllowedIn, a.Notes,
	}
}

// Record converts the database model back to an additive record.
// Status is kept as stored, validation belongs to the reference table.
func (a Additive) Record() (additive.Record, error) {
	allowed, err := ParseAllowedIn(a.AllowedIn)
	if err != nil {
		return additive.Record{}, err
	}
	return additive.Record{
		Code:      a.Code,
		Name:      a.Name,
		Status:    additive.Status(a.Status),
		MaxPPM:    a.MaxPPM,
		AllowedIn: allowed,
		Notes:     a.Notes,
	}, nil
}

// ParseAllowedIn decodes a JSON array of product categories. Empty string
// is an empty list.
func ParseAllowedIn(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var res []string
	enc := gnfmt.GNjson{}
	if err := enc.Decode([]byte(s), &res); err != nil {
		return nil, err
	}
	if len(res) == 0 {
		return nil, nil
	}
	return res, nil
}
