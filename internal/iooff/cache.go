package iooff

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/nutrigrade/nutrigrade/pkg/config"
	"github.com/nutrigrade/nutrigrade/pkg/product"
	"github.com/redis/go-redis/v9"
)

const (
	// keyPrefix is the prefix of Redis keys of cached products.
	keyPrefix = "off:product:"
	// notFound marks barcodes unknown to Open Food Facts.
	notFound = "-"
)

type cached struct {
	fetcher product.Fetcher
	rdb     *redis.Client
	ttl     time.Duration
}

// NewRedis connects to Redis. An empty URL returns nil client and no
// error, in this case the cache is disabled.
func NewRedis(ctx context.Context, cfg config.CacheConfig) (*redis.Client, error) {
	if cfg.RedisURL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, CacheConnectionError(cfg.RedisURL, err)
	}

	rdb := redis.NewClient(opts)
	if err = rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, CacheConnectionError(cfg.RedisURL, err)
	}
	return rdb, nil
}

// NewCached puts a Redis cache in front of a fetcher. With nil client the
// fetcher is returned as is. Cache failures are logged and the request
// goes to the fetcher.
func NewCached(
	fetcher product.Fetcher,
	rdb *redis.Client,
	ttl time.Duration,
) product.Fetcher {
	if rdb == nil {
		return fetcher
	}
	return &cached{fetcher: fetcher, rdb: rdb, ttl: ttl}
}

// Key returns the Redis key of a barcode.
func Key(barcode string) string {
	return keyPrefix + barcode
}

func (c *cached) Product(
	ctx context.Context,
	barcode string,
) (*product.Product, error) {
	key := Key(barcode)
	enc := gnfmt.GNjson{}

	val, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil && string(val) == notFound:
		return nil, nil
	case err == nil:
		var res product.Product
		if err = enc.Decode(val, &res); err == nil {
			return &res, nil
		}
		slog.Warn("Cannot decode cached product", "key", key, "error", err)
	case !errors.Is(err, redis.Nil):
		slog.Warn("Product cache is unavailable", "key", key, "error", err)
	}

	res, err := c.fetcher.Product(ctx, barcode)
	if err != nil {
		return nil, err
	}

	val = []byte(notFound)
	if res != nil {
		if val, err = enc.Encode(res); err != nil {
			slog.Warn("Cannot encode product", "key", key, "error", err)
			return res, nil
		}
	}
	if err = c.rdb.Set(ctx, key, val, c.ttl).Err(); err != nil {
		slog.Warn("Cannot cache product", "key", key, "error", err)
	}
	return res, nil
}
