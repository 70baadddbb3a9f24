// Package iopopulate implements Populator interface for importing the
// additive dataset into PostgreSQL.
// This is an impure I/O package that reads the dataset and performs
// bulk inserts.
package iopopulate

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/jackc/pgx/v5"
	"github.com/nutrigrade/nutrigrade/internal/iosources"
	"github.com/nutrigrade/nutrigrade/pkg/additive"
	"github.com/nutrigrade/nutrigrade/pkg/config"
	"github.com/nutrigrade/nutrigrade/pkg/db"
	"github.com/nutrigrade/nutrigrade/pkg/lifecycle"
	"github.com/nutrigrade/nutrigrade/pkg/reftable"
	"github.com/nutrigrade/nutrigrade/pkg/schema"
	"github.com/nutrigrade/nutrigrade/pkg/sources"
)

// populator implements the Populator interface.
type populator struct {
	operator db.Operator
}

// New creates a new Populator.
func New(op db.Operator) lifecycle.Populator {
	return &populator{operator: op}
}

// Populate replaces the content of the additives table with the records
// of the configured dataset. The dataset goes through the same validation
// as the in-memory reference table, so the database never keeps records
// the table would skip.
func (p *populator) Populate(
	ctx context.Context,
	cfg *config.Config,
) (int, error) {
	pool := p.operator.Pool()
	if pool == nil {
		return 0, NotConnectedError()
	}

	startTime := time.Now()
	src := fileSource(cfg)
	slog.Info("Starting database population", "source", src.String())
	gn.Info("(1/3) Reading additive dataset <em>%s</em>", src.String())

	tbl := reftable.New(src)
	stats := tbl.Stats()
	recs := tbl.All()
	if len(recs) == 0 {
		return 0, NoRecordsError(src.String(), stats.Err)
	}
	if stats.Skipped > 0 {
		gn.Warn("Skipped %s malformed records",
			humanize.Comma(int64(stats.Skipped)))
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, CopyError(schema.AdditivesTable, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	gn.Info("(2/3) Importing additives...")
	num, err := insertAdditives(ctx, tx, recs, cfg.Database.BatchSize)
	if err != nil {
		return 0, err
	}

	gn.Info("(3/3) Importing metadata...")
	ds := schema.Dataset{
		ID:         1,
		Source:     src.String(),
		RecordsNum: num,
		SkippedNum: stats.Skipped,
		UpdatedAt:  time.Now().UTC(),
	}
	if err = saveDataset(ctx, tx, ds); err != nil {
		return 0, err
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, CopyError(schema.AdditivesTable, err)
	}

	// statistics are stale after truncate, the import is valid without them
	if err = p.analyze(ctx); err != nil {
		slog.Warn("Cannot update table statistics", "error", err)
	}

	dur := gnfmt.TimeString(time.Since(startTime).Seconds())
	slog.Info("Population complete",
		"source", src.String(),
		"records", num,
		"skipped", stats.Skipped,
		"duration", dur,
	)
	gn.Info(`Population complete
Imported <em>%s</em> additives, skipped %s.
Elapsed time: <em>%s</em>
`,
		humanize.Comma(int64(num)),
		humanize.Comma(int64(stats.Skipped)),
		dur,
	)
	return num, nil
}

// fileSource returns the dataset to import. The database cannot be
// populated from itself, so with 'postgres' format the format is taken
// from the path.
func fileSource(cfg *config.Config) reftable.Source {
	format, _ := sources.ParseFormat(cfg.Reference.Format)
	if format == sources.Postgres {
		format = sources.Auto
	}
	path := cfg.ReferencePath()
	return iosources.NewFile(
		path, sources.Resolve(format, path), config.CacheDir(cfg.HomeDir),
	)
}

// analyze runs VACUUM ANALYZE on imported tables. It cannot run inside a
// transaction.
func (p *populator) analyze(ctx context.Context) error {
	start := time.Now()
	for _, table := range []string{schema.AdditivesTable, schema.DatasetsTable} {
		q := "VACUUM ANALYZE " + pgx.Identifier{table}.Sanitize()
		if _, err := p.operator.Pool().Exec(ctx, q); err != nil {
			return err
		}
	}
	slog.Info("VACUUM ANALYZE completed",
		"duration", time.Since(start).String())
	return nil
}

func insertAdditives(
	ctx context.Context,
	tx pgx.Tx,
	recs []additive.Record,
	batchSize int,
) (int, error) {
	table := schema.AdditivesTable
	q := "TRUNCATE TABLE " + pgx.Identifier{table}.Sanitize()
	if _, err := tx.Exec(ctx, q); err != nil {
		return 0, TruncateError(table, err)
	}

	if batchSize <= 0 {
		batchSize = 5000
	}

	bar := pb.Full.Start(len(recs))
	bar.Set("prefix", "Importing additives: ")
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	var res int
	for batch := range slices.Chunk(recs, batchSize) {
		rows := make([][]any, len(batch))
		for i := range batch {
			rows[i] = schema.NewAdditive(batch[i]).Values()
		}

		num, err := tx.CopyFrom(
			ctx,
			pgx.Identifier{table},
			schema.AdditiveColumns(),
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			return res, CopyError(table, err)
		}
		res += int(num)
		bar.Add(len(batch))
	}
	return res, nil
}

func saveDataset(ctx context.Context, tx pgx.Tx, ds schema.Dataset) error {
	q := `INSERT INTO datasets (id, source, records_num, skipped_num, updated_at)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (id) DO UPDATE SET
		source = EXCLUDED.source,
		records_num = EXCLUDED.records_num,
		skipped_num = EXCLUDED.skipped_num,
		updated_at = EXCLUDED.updated_at`

	_, err := tx.Exec(ctx, q,
		ds.ID, ds.Source, ds.RecordsNum, ds.SkippedNum, ds.UpdatedAt)
	if err != nil {
		return CopyError(schema.DatasetsTable, err)
	}
	return nil
}
