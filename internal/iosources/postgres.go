package iosources

import (
	"context"
	"fmt"
	"time"

	"github.com/nutrigrade/nutrigrade/internal/iodb"
	"github.com/nutrigrade/nutrigrade/pkg/additive"
	"github.com/nutrigrade/nutrigrade/pkg/config"
	"github.com/nutrigrade/nutrigrade/pkg/reftable"
	"github.com/nutrigrade/nutrigrade/pkg/schema"
)

// pgTimeout limits the time to read the whole dataset from PostgreSQL.
const pgTimeout = 30 * time.Second

type pgSource struct {
	cfg config.DatabaseConfig
}

// NewPostgres creates a source that reads the additives table populated
// by the 'populate' command.
func NewPostgres(cfg config.DatabaseConfig) reftable.Source {
	return &pgSource{cfg: cfg}
}

func (p *pgSource) String() string {
	return fmt.Sprintf("postgres://%s:%d/%s",
		p.cfg.Host, p.cfg.Port, p.cfg.Database)
}

func (p *pgSource) Records() ([]additive.Record, error) {
	ctx, cancel := context.WithTimeout(context.Background(), pgTimeout)
	defer cancel()

	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &p.cfg); err != nil {
		return nil, err
	}
	defer op.Close()

	q := fmt.Sprintf(`SELECT code, name, status, max_ppm, allowed_in, notes
	FROM %s`, schema.AdditivesTable)
	rows, err := op.Pool().Query(ctx, q)
	if err != nil {
		return nil, ReferenceFormatError(p.String(), "postgres", err)
	}
	defer rows.Close()

	var res []additive.Record
	for rows.Next() {
		var a schema.Additive
		err = rows.Scan(&a.Code, &a.Name, &a.Status, &a.MaxPPM,
			&a.AllowedIn, &a.Notes)
		if err != nil {
			return res, ReferenceReadError(p.String(), err)
		}
		rec, err := a.Record()
		if err != nil {
			return res, ReferenceFormatError(p.String(), "postgres", err)
		}
		res = append(res, rec)
	}
	if err = rows.Err(); err != nil {
		return res, ReferenceReadError(p.String(), err)
	}
	return res, nil
}
