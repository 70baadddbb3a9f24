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
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnlib"
	"github.com/nutrigrade/nutrigrade/internal/iooff"
	"github.com/nutrigrade/nutrigrade/internal/ioweb"
	"github.com/nutrigrade/nutrigrade/pkg/config"
	"github.com/nutrigrade/nutrigrade/pkg/engine"
	"github.com/nutrigrade/nutrigrade/pkg/product"
	"github.com/spf13/cobra"
)

// fileChunk is the number of lines analyzed between progress updates.
const fileChunk = 1_000

// LineResult is the analysis of one line of an ingredients file.
type LineResult struct {
	Line            int    `json:"line"`
	IngredientsText string `json:"ingredients_text"`
	engine.Result
}

// getAnalyzeCmd returns the analyze command.
func getAnalyzeCmd() *cobra.Command {
	var (
		barcode string
		file    string
		pretty  bool
	)

	analyzeCmd := &cobra.Command{
		Use:   "analyze [ingredients text]",
		Short: "Analyze ingredients for FSSAI compliance",
		Long: `Analyze finds INS and E-number additives in ingredients text,
looks them up in the FSSAI dataset and reports product compliance.

The text can be given as an argument, taken from Open Food Facts by
barcode, or read from a file with one ingredients list per line.
Use '-' as the file name to read from STDIN.
If both text and barcode are given, the text is used.

Output is JSON. Files produce one JSON line per input line.

Examples:
  nutrigrade analyze "Water, sugar, INS 211 (Sodium Benzoate), E102"
  nutrigrade analyze --barcode 8901058851298
  nutrigrade analyze -f ingredients.txt -j 8
  cat ingredients.txt | nutrigrade analyze -f -`,
		Aliases: []string{"a"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("jobs") {
				jobs, _ := cmd.Flags().GetInt("jobs")
				cfg.Update([]config.Option{config.OptJobsNumber(jobs)})
			}
			text := strings.Join(args, " ")
			err := runAnalyze(cmd, text, barcode, file, pretty)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	analyzeCmd.Flags().StringVarP(&barcode, "barcode", "b", "",
		"product barcode to fetch from Open Food Facts")
	analyzeCmd.Flags().StringVarP(&file, "file", "f", "",
		"file with one ingredients text per line ('-' for STDIN)")
	analyzeCmd.Flags().BoolVarP(&pretty, "pretty", "p", false,
		"pretty print JSON output")
	analyzeCmd.Flags().IntP("jobs", "j", 0,
		"number of parallel workers for files")

	return analyzeCmd
}

func runAnalyze(
	cmd *cobra.Command,
	text, barcode, file string,
	pretty bool,
) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()
	enc := gnfmt.GNjson{Pretty: pretty}

	text = strings.TrimSpace(gnlib.FixUtf8(text))
	barcode = strings.TrimSpace(barcode)

	switch {
	case file != "":
		return analyzeFile(ctx, out, enc, file)
	case text != "":
		return analyzeText(out, enc, text, ioweb.SourceManual, nil)
	case barcode != "":
		return analyzeBarcode(ctx, out, enc, barcode)
	default:
		return InputError("no ingredients text, barcode or file")
	}
}

func analyzeText(
	out io.Writer,
	enc gnfmt.GNjson,
	text, source string,
	name *string,
) error {
	eng := engine.New(newTable(cfg))
	res := eng.Analyze(text)
	slog.Info("Analyzed ingredients",
		"source", source,
		"additives", len(res.Details),
		"verdict", res.Verdict,
	)

	return writeJSON(out, enc, ioweb.AnalyzeResponse{
		ProductName:       name,
		Source:            source,
		IngredientsText:   text,
		Ingredients:       res.Details,
		ProductCompliance: res.Verdict,
	})
}

func analyzeBarcode(
	ctx context.Context,
	out io.Writer,
	enc gnfmt.GNjson,
	barcode string,
) error {
	code := product.NormBarcode(barcode)
	if code == "" {
		return InputError("barcode must contain only digits")
	}

	p, err := newFetcher(ctx, cfg).Product(ctx, code)
	if err != nil {
		return err
	}
	if p == nil {
		return ProductNotFoundError(code)
	}
	text := strings.TrimSpace(gnlib.FixUtf8(p.IngredientsText))
	if text == "" {
		return NoIngredientsError(code)
	}

	var name *string
	if p.Name != "" {
		name = &p.Name
	}
	return analyzeText(out, enc, text, ioweb.SourceOFF, name)
}

func analyzeFile(
	ctx context.Context,
	out io.Writer,
	enc gnfmt.GNjson,
	file string,
) error {
	texts, err := readLines(file)
	if err != nil {
		return err
	}
	if len(texts) == 0 {
		return InputError(fmt.Sprintf("file %s is empty", file))
	}

	start := time.Now()
	eng := engine.New(newTable(cfg))

	bar := pb.Full.Start(len(texts))
	bar.Set("prefix", "Analyzing: ")
	bar.Set(pb.CleanOnFinish, true)

	var line int
	for chunk := range slices.Chunk(texts, fileChunk) {
		res, err := eng.AnalyzeAll(ctx, chunk, cfg.JobsNumber)
		if err != nil {
			bar.Finish()
			return err
		}
		for i := range res {
			line++
			lr := LineResult{
				Line:            line,
				IngredientsText: chunk[i],
				Result:          res[i],
			}
			if err = writeJSON(out, enc, lr); err != nil {
				bar.Finish()
				return err
			}
		}
		bar.Add(len(chunk))
	}
	bar.Finish()

	dur := gnfmt.TimeString(time.Since(start).Seconds())
	slog.Info("Analyzed file", "file", file, "lines", line, "duration", dur)
	gn.Info("Analyzed <em>%s</em> lines in %s",
		humanize.Comma(int64(line)), dur)
	return nil
}

// readLines reads all lines of a file or STDIN. Empty lines are kept, so
// line numbers of results match the input.
func readLines(file string) ([]string, error) {
	var r io.Reader = os.Stdin
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return nil, InputError(fmt.Sprintf("cannot open %s: %s", file, err))
		}
		defer f.Close()
		r = f
	}

	var res []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		res = append(res, gnlib.FixUtf8(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return nil, InputError(fmt.Sprintf("cannot read %s: %s", file, err))
	}
	return res, nil
}

// newFetcher creates Open Food Facts client with Redis cache if the
// cache is configured and reachable.
func newFetcher(ctx context.Context, cfg *config.Config) product.Fetcher {
	res := iooff.New(cfg.OFF)
	rdb, err := iooff.NewRedis(ctx, cfg.Cache)
	if err != nil {
		slog.Warn("Product cache is disabled", "error", err)
		return res
	}
	ttl := time.Duration(cfg.Cache.TTL) * time.Second
	return iooff.NewCached(res, rdb, ttl)
}

func writeJSON(out io.Writer, enc gnfmt.GNjson, data any) error {
	bs, err := enc.Encode(data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(bs))
	return err
}
