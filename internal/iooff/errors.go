package iooff

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/nutrigrade/nutrigrade/pkg/errcode"
)

// RequestError is returned when Open Food Facts cannot be reached.
func RequestError(barcode string, err error) error {
	msg := `Cannot reach Open Food Facts for barcode <em>%s</em>

<em>How to fix:</em>
  1. Check network connection
  2. Check <em>off.url</em> in config.yaml
  3. Enter ingredients text manually`
	vars := []any{barcode}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.OFFRequestError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: request %s: %w", fn, barcode, err),
	}
}

// StatusError is returned for unexpected HTTP status of a response.
func StatusError(barcode string, status int) error {
	msg := "Open Food Facts returned status <em>%d</em> for barcode <em>%s</em>"
	vars := []any{status, barcode}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.OFFStatusError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: http status %d for %s", fn, status, barcode),
	}
}

// DecodeError is returned when a response body is not valid JSON.
func DecodeError(barcode string, err error) error {
	msg := "Cannot decode Open Food Facts response for barcode <em>%s</em>"
	vars := []any{barcode}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.OFFDecodeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: decode %s: %w", fn, barcode, err),
	}
}

// CacheConnectionError is returned when Redis cannot be used.
func CacheConnectionError(url string, err error) error {
	msg := `Cannot connect to product cache <em>%s</em>

<em>How to fix:</em>
  1. Check that Redis is running
  2. Remove <em>cache.redis_url</em> from config.yaml to disable cache`
	vars := []any{url}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.CacheConnectionError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: redis %s: %w", fn, url, err),
	}
}
