package ioschema_test

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/nutrigrade/nutrigrade/internal/ioschema"
	"github.com/nutrigrade/nutrigrade/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	orig := errors.New("permission denied")

	tests := []struct {
		msg  string
		err  error
		code gn.ErrorCode
	}{
		{"gorm", ioschema.GORMConnectionError(orig), errcode.SchemaGORMConnectionError},
		{"create", ioschema.CreateSchemaError(orig), errcode.SchemaCreateError},
		{"migrate", ioschema.MigrateSchemaError(orig), errcode.SchemaMigrateError},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			gnErr, ok := tt.err.(*gn.Error)
			require.True(t, ok)
			assert.Equal(t, tt.code, gnErr.Code)
			assert.Contains(t, gnErr.Msg, "<em>")
			assert.ErrorIs(t, gnErr.Err, orig)
		})
	}
}
