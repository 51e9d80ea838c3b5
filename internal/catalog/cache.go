package catalog

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// CachedRepository wraps a Repository with a read-through Redis cache on the
// List path. Cache failures are logged and treated as misses, never surfaced.
type CachedRepository struct {
	Repository
	rdb *redis.Client
	ttl time.Duration
	log *slog.Logger
}

func NewCachedRepository(inner Repository, rdb *redis.Client, ttl time.Duration, log *slog.Logger) *CachedRepository {
	return &CachedRepository{Repository: inner, rdb: rdb, ttl: ttl, log: log}
}

func (r *CachedRepository) List(ctx context.Context, category string) ([]Product, error) {
	key := "catalog:list:" + category

	data, err := r.rdb.Get(ctx, key).Bytes()
	if err == nil {
		var out []Product
		if jerr := json.Unmarshal(data, &out); jerr == nil {
			return out, nil
		}
	} else if err != redis.Nil {
		r.log.Warn("catalog cache read failed", "key", key, "err", err)
	}

	out, err := r.Repository.List(ctx, category)
	if err != nil {
		return nil, err
	}

	if data, jerr := json.Marshal(out); jerr == nil {
		if serr := r.rdb.Set(ctx, key, data, r.ttl).Err(); serr != nil {
			r.log.Warn("catalog cache write failed", "key", key, "err", serr)
		}
	}
	return out, nil
}
