package iosources

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/nutrigrade/nutrigrade/pkg/errcode"
)

// ReferenceNotFoundError is returned when the dataset file does not exist.
func ReferenceNotFoundError(path string, err error) error {
	msg := `Cannot find additive reference data

<em>Dataset:</em> %s

<em>How to fix:</em>
  1. Check the path in <em>reference.path</em> of config.yaml
     or <em>NUTRIGRADE_REFERENCE_PATH</em> environment variable
  2. Remove the path setting to use the bundled dataset`
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.ReferenceNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: dataset %s not found: %w", fn, path, err),
	}
}

// ReferenceReadError is returned when the dataset exists but cannot be
// read.
func ReferenceReadError(path string, err error) error {
	msg := "Cannot read additive reference data from <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.ReferenceReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read %s: %w", fn, path, err),
	}
}

// ReferenceFormatError is returned when the dataset is not in the
// expected format.
func ReferenceFormatError(path, format string, err error) error {
	msg := `Additive reference data <em>%s</em> is not valid %s

<em>Expected:</em>
  - json: an array of objects with 'code' or 'ins_number' fields
  - yaml: a document with 'additives' list
  - sqlite: a database with 'additives' table`
	vars := []any{path, format}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.ReferenceFormatError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: bad %s in %s: %w", fn, format, path, err),
	}
}

// ReferenceDownloadError is returned when a remote dataset cannot be
// downloaded.
func ReferenceDownloadError(url string, err error) error {
	msg := "Cannot download additive reference data from <em>%s</em>"
	vars := []any{url}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.ReferenceDownloadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: download %s: %w", fn, url, err),
	}
}
