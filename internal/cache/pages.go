package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// IndexPageKey is the fixed cache key for the global post listing. The key is
// deliberately not per-user and not per-query-string: every caller inside the
// TTL window gets the same cached bytes.
const IndexPageKey = "pages:index"

type cachedPage struct {
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// PageStore is an explicit whole-response cache with get/put/clear semantics.
// A nil Redis client disables it: every lookup misses and every put is a no-op.
type PageStore struct {
	rdb *redis.Client
}

// NewPageStore returns a PageStore backed by the given Redis client.
func NewPageStore(rdb *redis.Client) *PageStore {
	return &PageStore{rdb: rdb}
}

// GetPage returns the cached response for key, if present.
func (s *PageStore) GetPage(ctx context.Context, key string) (string, []byte, bool, error) {
	if s == nil || s.rdb == nil {
		return "", nil, false, nil
	}
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return "", nil, false, nil
	}
	if err != nil {
		return "", nil, false, err
	}
	var page cachedPage
	if err := json.Unmarshal(raw, &page); err != nil {
		return "", nil, false, err
	}
	return page.ContentType, page.Body, true, nil
}

// PutPage stores a response under key for ttl.
func (s *PageStore) PutPage(ctx context.Context, key, contentType string, body []byte, ttl time.Duration) error {
	if s == nil || s.rdb == nil {
		return nil
	}
	raw, err := json.Marshal(cachedPage{ContentType: contentType, Body: body})
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key, raw, ttl).Err()
}

// Clear drops the cached response for the given keys. No writer invalidates
// the index page implicitly; staleness inside the TTL window is accepted, so
// Clear is only called explicitly (tests, operational tooling).
func (s *PageStore) Clear(ctx context.Context, keys ...string) error {
	if s == nil || s.rdb == nil || len(keys) == 0 {
		return nil
	}
	return s.rdb.Del(ctx, keys...).Err()
}
