package rediscache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/NastyaGoryachaya/edge-rates-service/internal/domain"
	errs "github.com/NastyaGoryachaya/edge-rates-service/internal/errors"
	"github.com/NastyaGoryachaya/edge-rates-service/internal/pkg/bucket"
)

// Store - горячий кэш в redis: один hash на (bucket, вид курса).
// Ключ: {namespace}:{bucket}:crypto|fiat, поле — плоский ключ актива или код валюты,
// значение — курс в USD десятичной строкой.
type Store struct {
	client    redis.UniversalClient
	namespace string
	ttl       time.Duration
}

func NewStore(client redis.UniversalClient, namespace string, ttl time.Duration) *Store {
	return &Store{client: client, namespace: namespace, ttl: ttl}
}

func (s *Store) key(b string, kind bucket.Kind) string {
	return s.namespace + ":" + b + ":" + kind.String()
}

type pending struct {
	bucket string
	kind   bucket.Kind
	fields []string
	cmd    *redis.SliceCmd
}

// Fetch - HMGET по всем нужным hash'ам одним pipeline
func (s *Store) Fetch(ctx context.Context, want map[string]domain.DocKeys) (map[string]domain.RateDocument, error) {
	pipe := s.client.Pipeline()
	var reads []pending
	for b, keys := range want {
		if len(keys.Crypto) > 0 {
			reads = append(reads, pending{bucket: b, kind: bucket.Crypto, fields: keys.Crypto,
				cmd: pipe.HMGet(ctx, s.key(b, bucket.Crypto), keys.Crypto...)})
		}
		if len(keys.Fiat) > 0 {
			reads = append(reads, pending{bucket: b, kind: bucket.Fiat, fields: keys.Fiat,
				cmd: pipe.HMGet(ctx, s.key(b, bucket.Fiat), keys.Fiat...)})
		}
	}
	if len(reads) == 0 {
		return map[string]domain.RateDocument{}, nil
	}
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("redis hmget: %w: %w", errs.ErrStoreUnavailable, err)
	}

	out := make(map[string]domain.RateDocument)
	for _, r := range reads {
		vals, err := r.cmd.Result()
		if err != nil {
			return nil, fmt.Errorf("redis hmget %s: %w: %w", s.key(r.bucket, r.kind), errs.ErrStoreUnavailable, err)
		}
		for i, v := range vals {
			str, ok := v.(string)
			if !ok {
				continue
			}
			rate, err := decimal.NewFromString(str)
			if err != nil {
				continue
			}
			doc, ok := out[r.bucket]
			if !ok {
				doc = domain.NewRateDocument()
				out[r.bucket] = doc
			}
			if r.kind == bucket.Fiat {
				doc.Fiat[r.fields[i]] = domain.USDRate{USD: rate.InexactFloat64()}
			} else {
				doc.Crypto[r.fields[i]] = domain.USDRate{USD: rate.InexactFloat64()}
			}
		}
	}
	return out, nil
}

// Save - HSET + EXPIRE; поля аддитивны, существующие значения не удаляются
func (s *Store) Save(ctx context.Context, docs map[string]domain.RateDocument) error {
	pipe := s.client.Pipeline()
	writes := 0
	for b, doc := range docs {
		writes += s.queue(ctx, pipe, s.key(b, bucket.Crypto), doc.Crypto)
		writes += s.queue(ctx, pipe, s.key(b, bucket.Fiat), doc.Fiat)
	}
	if writes == 0 {
		return nil
	}
	cmds, err := pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("redis hset: %w: %w", errs.ErrStoreUnavailable, err)
	}
	for i, cmd := range cmds {
		if cmd.Err() != nil {
			return fmt.Errorf("redis command %d: %w: %w", i, errs.ErrStoreUnavailable, cmd.Err())
		}
	}
	return nil
}

func (s *Store) queue(ctx context.Context, pipe redis.Pipeliner, key string, rates map[string]domain.USDRate) int {
	if len(rates) == 0 {
		return 0
	}
	values := make(map[string]any, len(rates))
	for field, r := range rates {
		values[field] = decimal.NewFromFloat(r.USD).String()
	}
	pipe.HSet(ctx, key, values)
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
	}
	return 1
}
