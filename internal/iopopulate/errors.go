package iopopulate

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/nutrigrade/nutrigrade/pkg/errcode"
)

// NotConnectedError is returned when populate runs without database
// connection.
func NotConnectedError() error {
	msg := "Populate operation attempted without database connection"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: not connected to database", fn),
	}
}

// NoRecordsError is returned when the dataset has no usable records.
// An empty import would make every product 'unknown', so it is refused.
func NoRecordsError(source string, err error) error {
	msg := `No usable additive records found in <em>%s</em>

<em>How to fix:</em>
  1. Check that the dataset has 'code' or 'ins_number' fields
  2. Check that statuses are permitted, restricted or banned`
	vars := []any{source}
	if err == nil {
		err = fmt.Errorf("empty dataset")
	}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.PopulateNoRecordsError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: no records in %s: %w", fn, source, err),
	}
}

// TruncateError is returned when old records cannot be removed.
func TruncateError(table string, err error) error {
	msg := "Cannot remove old records from <em>%s</em> table"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.PopulateTruncateError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: truncate %s: %w", fn, table, err),
	}
}

// CopyError is returned when records cannot be saved to the database.
func CopyError(table string, err error) error {
	msg := "Cannot save records to <em>%s</em> table"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.PopulateCopyError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: copy to %s: %w", fn, table, err),
	}
}
