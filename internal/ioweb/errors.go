package ioweb

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/nutrigrade/nutrigrade/pkg/errcode"
)

// ServerError is returned when the HTTP server cannot start or stop.
func ServerError(port int, err error) error {
	msg := `Cannot run web service on port <em>%d</em>

<em>How to fix:</em>
  1. Check if another program uses the port
  2. Use a different port with <em>--port</em> flag`
	vars := []any{port}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.WebServerError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: port %d: %w", fn, port, err),
	}
}
