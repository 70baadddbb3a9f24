/*
Copyright © 2026 The NutriGrade Authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gnames/gn"
	"github.com/nutrigrade/nutrigrade/internal/ioconfig"
	"github.com/nutrigrade/nutrigrade/internal/iofs"
	"github.com/nutrigrade/nutrigrade/internal/iologger"
	"github.com/nutrigrade/nutrigrade/internal/iosources"
	app "github.com/nutrigrade/nutrigrade/pkg"
	"github.com/nutrigrade/nutrigrade/pkg/config"
	"github.com/nutrigrade/nutrigrade/pkg/reftable"
	"github.com/spf13/cobra"
)

var (
	cfg       *config.Config
	logCloser io.Closer
)

// getRootCmd returns the root command with all subcommands.
// Extracted as a function to facilitate testing.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "nutrigrade",
		Short:   "NutriGrade checks food additives against FSSAI regulations",
		Long: `NutriGrade finds INS and E-number food additives in ingredient
lists and classifies products by FSSAI compliance.

Features:
  - Analysis: ingredients text or Open Food Facts barcode
  - Lookup: regulatory records of additives by code or name
  - Web API: the same functionality over HTTP
  - Storage: optional PostgreSQL copy of the FSSAI dataset

Every additive gets a status: permitted, restricted, banned or unknown.
A product is non_compliant if it has a banned additive,
partially_compliant if it has a restricted one, unknown if some
additives are not in the dataset, and compliant otherwise.

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (NUTRIGRADE_*)
  3. Config file (~/.config/nutrigrade/config.yaml)
  4. Built-in defaults`,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "nutrigrade version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for nutrigrade")

	rootCmd.AddCommand(
		getAnalyzeCmd(),
		getLookupCmd(),
		getServeCmd(),
		getCreateCmd(),
		getMigrateCmd(),
		getPopulateCmd(),
	)

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	logCloser, err = iologger.Init(config.LogDir(homeDir), defaultLog, false)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureReferenceFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfgViper, err := ioconfig.Load(homeDir)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	cfg.Update(cfgViper.ToOptions())

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings, appending to the log file
	// started above.
	_ = logCloser.Close()
	logCloser, err = iologger.Init(config.LogDir(homeDir), cfg.Log, true)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"command", cmd.Name(),
	)
	return nil
}

func runRoot(cmd *cobra.Command, _ []string) error {
	versionFlag(cmd)
	return cmd.Help()
}

// newTable creates the reference table from the configured dataset and
// loads it. Problems with the dataset are reported to the user, the
// table is usable anyway.
func newTable(cfg *config.Config) *reftable.Table {
	tbl := reftable.New(iosources.New(cfg))
	st := tbl.Stats()
	if st.Err != nil {
		gn.PrintErrorMessage(st.Err)
		gn.Warn("Reference data is empty, all additives are <em>unknown</em>")
	}
	return tbl
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	err := getRootCmd().Execute()
	if logCloser != nil {
		_ = logCloser.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}
