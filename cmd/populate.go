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
	"context"

	"github.com/gnames/gn"
	"github.com/nutrigrade/nutrigrade/internal/iodb"
	"github.com/nutrigrade/nutrigrade/internal/iopopulate"
	"github.com/nutrigrade/nutrigrade/pkg/config"
	"github.com/nutrigrade/nutrigrade/pkg/schema"
	"github.com/spf13/cobra"
)

// getPopulateCmd returns the populate command.
func getPopulateCmd() *cobra.Command {
	var (
		path   string
		format string
	)

	populateCmd := &cobra.Command{
		Use:   "populate",
		Short: "Populate database with FSSAI additive dataset",
		Long: `Import the FSSAI additive dataset into PostgreSQL.

This command:
  1. Connects to PostgreSQL using configuration settings
  2. Reads the dataset (JSON, YAML or SQLite, local file or URL)
  3. Skips records without code or with unknown status
  4. Replaces content of the additives table
  5. Saves import statistics to the datasets table

The dataset is taken from reference.path of config.yaml, the bundled
dataset is used by default.

Examples:
  nutrigrade populate
  nutrigrade populate --path fssai_2024.yaml
  nutrigrade populate -p https://example.org/fssai.json`,
		Aliases: []string{"add"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []config.Option
			if cmd.Flags().Changed("path") {
				opts = append(opts, config.OptReferencePath(path))
			}
			if cmd.Flags().Changed("format") {
				opts = append(opts, config.OptReferenceFormat(format))
			}
			cfg.Update(opts)

			err := runPopulate(cmd)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	populateCmd.Flags().StringVarP(&path, "path", "p", "",
		"path or URL of the dataset")
	populateCmd.Flags().StringVarP(&format, "format", "f", "",
		"dataset format: auto, json, yaml, sqlite")

	return populateCmd
}

func runPopulate(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return err
	}
	defer op.Close()

	gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
		cfg.Database.User, cfg.Database.Host,
		cfg.Database.Port, cfg.Database.Database)

	exists, err := op.TableExists(ctx, schema.AdditivesTable)
	if err != nil {
		return err
	}
	if !exists {
		gn.Warn("Table <em>%s</em> does not exist", schema.AdditivesTable)
		gn.Info("Run 'nutrigrade create' first")
		return nil
	}

	p := iopopulate.New(op)
	_, err = p.Populate(ctx, cfg)
	return err
}
