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
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/nutrigrade/nutrigrade/pkg/engine"
	"github.com/spf13/cobra"
)

// getLookupCmd returns the lookup command.
func getLookupCmd() *cobra.Command {
	var (
		code   string
		name   string
		all    bool
		pretty bool
	)

	lookupCmd := &cobra.Command{
		Use:   "lookup",
		Short: "Show FSSAI records of additives",
		Long: `Lookup prints regulatory records of the FSSAI dataset as JSON.

A code can be given as a number or with its marker (211, INS 211,
E-211). Names are case-insensitive.

Examples:
  nutrigrade lookup --code 211
  nutrigrade lookup -c "INS 102"
  nutrigrade lookup --name "sodium benzoate"
  nutrigrade lookup --all --pretty`,
		Aliases: []string{"l"},
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runLookup(cmd, code, name, all, pretty)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	lookupCmd.Flags().StringVarP(&code, "code", "c", "",
		"additive code, for example 211 or 'INS 211'")
	lookupCmd.Flags().StringVarP(&name, "name", "n", "",
		"additive name, for example 'Sodium benzoate'")
	lookupCmd.Flags().BoolVarP(&all, "all", "a", false,
		"print all records")
	lookupCmd.Flags().BoolVarP(&pretty, "pretty", "p", false,
		"pretty print JSON output")
	lookupCmd.MarkFlagsMutuallyExclusive("code", "name", "all")
	lookupCmd.MarkFlagsOneRequired("code", "name", "all")

	return lookupCmd
}

func runLookup(
	cmd *cobra.Command,
	code, name string,
	all, pretty bool,
) error {
	out := cmd.OutOrStdout()
	enc := gnfmt.GNjson{Pretty: pretty}
	tbl := newTable(cfg)

	if all {
		return writeJSON(out, enc, tbl.All())
	}

	if name = strings.TrimSpace(name); name != "" {
		rec, ok := tbl.ByName(name)
		if !ok {
			gn.Warn("Additive <em>%s</em> is not in the FSSAI dataset", name)
			return nil
		}
		return writeJSON(out, enc, rec)
	}

	code = strings.TrimSpace(code)
	if m := engine.New(tbl).Extract(code); len(m) == 1 {
		code = m[0].Code
	}
	rec, ok := tbl.ByCode(code)
	if !ok {
		gn.Warn("Additive <em>%s</em> is not in the FSSAI dataset", code)
		return nil
	}
	return writeJSON(out, enc, rec)
}
