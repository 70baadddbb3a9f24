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
	"os"
	"os/signal"
	"syscall"

	"github.com/gnames/gn"
	"github.com/nutrigrade/nutrigrade/internal/ioweb"
	"github.com/nutrigrade/nutrigrade/pkg/config"
	"github.com/spf13/cobra"
)

// getServeCmd returns the serve command.
func getServeCmd() *cobra.Command {
	var port int

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run NutriGrade web API",
		Long: `Serve starts the HTTP API of NutriGrade.

Endpoints:
  GET  /health                      service status and dataset stats
  POST /analyze                     {"barcode": "...", "ingredients_text": "..."}
  GET  /api/v1/additives            all FSSAI records
  GET  /api/v1/additives/{code}     one record by code
  GET  /api/v1/additives?name=...   one record by name
  GET  /metrics                     Prometheus metrics

The service stops gracefully on Ctrl-C or SIGTERM.

Examples:
  nutrigrade serve
  nutrigrade serve --port 8080`,
		Aliases: []string{"s"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				cfg.Update([]config.Option{config.OptServerPort(port)})
			}
			err := runServe(cmd)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	serveCmd.Flags().IntVarP(&port, "port", "p", 8000,
		"port of the web service")

	return serveCmd
}

func runServe(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	tbl := newTable(cfg)
	srv := ioweb.New(cfg.Server.Port, tbl, newFetcher(ctx, cfg))

	gn.Info("Web service is running on port <em>%d</em>", cfg.Server.Port)
	return srv.Serve(ctx)
}
