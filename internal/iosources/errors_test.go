package iosources_test

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/nutrigrade/nutrigrade/internal/iosources"
	"github.com/nutrigrade/nutrigrade/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	orig := errors.New("boom")
	tests := []struct {
		msg  string
		err  error
		code gn.ErrorCode
		text string
	}{
		{"not found", iosources.ReferenceNotFoundError("a.json", orig),
			errcode.ReferenceNotFoundError, "Cannot find additive reference data"},
		{"read", iosources.ReferenceReadError("a.json", orig),
			errcode.ReferenceReadError, "Cannot read additive reference data"},
		{"format", iosources.ReferenceFormatError("a.json", "json", orig),
			errcode.ReferenceFormatError, "is not valid"},
		{"download", iosources.ReferenceDownloadError("http://x/a.json", orig),
			errcode.ReferenceDownloadError, "Cannot download"},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			gnErr, ok := tt.err.(*gn.Error)
			require.True(t, ok)
			assert.Equal(t, tt.code, gnErr.Code)
			assert.Contains(t, gnErr.Msg, tt.text)
			assert.ErrorIs(t, gnErr.Err, orig)
			assert.Contains(t, gnErr.Err.Error(), "iosources")
		})
	}
}
