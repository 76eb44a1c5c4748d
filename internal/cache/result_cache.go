// SPDX-License-Identifier: Apache-2.0

// Package cache stores extraction responses in Redis, keyed by a hash of
// the submitted document.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bancoquestoes/qextract/internal/extraction"
)

const keyPrefix = "qextract:result:"

// ResultCache caches successful pipeline results.
type ResultCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewResultCache creates a ResultCache. If ttl is 0, defaults to one hour.
func NewResultCache(rdb *redis.Client, ttl time.Duration) *ResultCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &ResultCache{rdb: rdb, ttl: ttl}
}

// Key returns the cache key of doc.
func Key(doc extraction.RawDocument) string {
	h := sha256.New()
	h.Write([]byte(doc.FileName))
	h.Write([]byte{0})
	h.Write([]byte(doc.Text))
	return keyPrefix + hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached result for doc. The boolean is false on a miss.
func (c *ResultCache) Get(ctx context.Context, doc extraction.RawDocument) (*extraction.RunResult, bool, error) {
	data, err := c.rdb.Get(ctx, Key(doc)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get: %w", err)
	}
	var res extraction.RunResult
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, false, fmt.Errorf("cache decode: %w", err)
	}
	return &res, true, nil
}

// Set stores res under the key of doc.
func (c *ResultCache) Set(ctx context.Context, doc extraction.RawDocument, res *extraction.RunResult) error {
	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.rdb.Set(ctx, Key(doc), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Close closes the underlying redis connection.
func (c *ResultCache) Close() error {
	return c.rdb.Close()
}
