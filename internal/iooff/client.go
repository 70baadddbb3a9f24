// Package iooff implements product.Fetcher with Open Food Facts API and
// an optional Redis cache in front of it.
// This is an impure I/O package.
package iooff

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/nutrigrade/nutrigrade/pkg/config"
	"github.com/nutrigrade/nutrigrade/pkg/product"
)

// maxBody limits the size of a product response.
const maxBody = 10 << 20

type client struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

// response is the part of /product/{barcode}.json we need.
type response struct {
	Status  int            `json:"status"`
	Product map[string]any `json:"product"`
}

// New creates an Open Food Facts client.
func New(cfg config.OFFConfig) product.Fetcher {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &client{
		baseURL:   cfg.URL,
		userAgent: cfg.UserAgent,
		http:      &http.Client{Timeout: timeout},
	}
}

// Product fetches a product by its barcode. Unknown barcodes return nil
// and no error.
func (c *client) Product(
	ctx context.Context,
	barcode string,
) (*product.Product, error) {
	u := c.baseURL + "/product/" + url.PathEscape(barcode) + ".json"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, RequestError(barcode, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, RequestError(barcode, err)
	}
	defer resp.Body.Close()

	// API v2 answers 404 for unknown barcodes
	if resp.StatusCode == http.StatusNotFound {
		slog.Debug("Product not found", "barcode", barcode)
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, StatusError(barcode, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, RequestError(barcode, err)
	}

	var res response
	enc := gnfmt.GNjson{}
	if err = enc.Decode(body, &res); err != nil {
		return nil, DecodeError(barcode, err)
	}

	if res.Status != 1 || res.Product == nil {
		slog.Debug("Product not found", "barcode", barcode)
		return nil, nil
	}
	return product.FromOFF(barcode, res.Product), nil
}
