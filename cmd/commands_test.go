package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCommands_Description verifies descriptions of subcommands.
func TestCommands_Description(t *testing.T) {
	tests := []struct {
		cmd        *cobra.Command
		name, text string
	}{
		{getCreateCmd(), "create", "GORM AutoMigrate"},
		{getMigrateCmd(), "migrate", "non-destructive"},
		{getPopulateCmd(), "populate", "additives table"},
		{getServeCmd(), "serve", "/analyze"},
		{getAnalyzeCmd(), "analyze", "barcode"},
		{getLookupCmd(), "lookup", "case-insensitive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.cmd.Name())
			assert.NotEmpty(t, tt.cmd.Short)
			assert.Contains(t, tt.cmd.Long, tt.text)
			assert.NotNil(t, tt.cmd.RunE, "RunE should be set")

			buf := new(bytes.Buffer)
			tt.cmd.SetOut(buf)
			tt.cmd.SetArgs([]string{"--help"})
			require.NoError(t, tt.cmd.Execute())
			assert.Contains(t, buf.String(), "Examples:")
		})
	}
}

// TestGetCreateCmd_ForceFlag verifies --force flag exists.
func TestGetCreateCmd_ForceFlag(t *testing.T) {
	cmd := getCreateCmd()

	forceFlag := cmd.Flags().Lookup("force")
	require.NotNil(t, forceFlag, "--force flag should exist")
	assert.Equal(t, "f", forceFlag.Shorthand)
	assert.Equal(t, "false", forceFlag.DefValue)
	assert.Contains(t, forceFlag.Usage, "drop")
}

// TestGetServeCmd_PortFlag verifies --port flag exists.
func TestGetServeCmd_PortFlag(t *testing.T) {
	cmd := getServeCmd()

	portFlag := cmd.Flags().Lookup("port")
	require.NotNil(t, portFlag)
	assert.Equal(t, "p", portFlag.Shorthand)
	assert.Equal(t, "8000", portFlag.DefValue)
}

// TestGetPopulateCmd_Flags verifies dataset override flags.
func TestGetPopulateCmd_Flags(t *testing.T) {
	cmd := getPopulateCmd()
	assert.Contains(t, cmd.Aliases, "add")
	for _, name := range []string{"path", "format"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
}
