package localcache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coocood/freecache"
	"github.com/shopspring/decimal"

	"github.com/NastyaGoryachaya/edge-rates-service/internal/domain"
	"github.com/NastyaGoryachaya/edge-rates-service/internal/pkg/bucket"
)

// Store - кэш курсов в памяти процесса поверх freecache.
// Ключ: {namespace}:{bucket}:{crypto|fiat}:{поле}.
type Store struct {
	cache     *freecache.Cache
	namespace string
	ttl       time.Duration
}

// NewStore - ttl округляется до секунд (так хранит freecache)
func NewStore(cache *freecache.Cache, namespace string, ttl time.Duration) *Store {
	return &Store{cache: cache, namespace: namespace, ttl: ttl}
}

func (s *Store) key(b string, kind bucket.Kind, field string) []byte {
	return []byte(s.namespace + ":" + b + ":" + kind.String() + ":" + field)
}

func (s *Store) Fetch(_ context.Context, want map[string]domain.DocKeys) (map[string]domain.RateDocument, error) {
	out := make(map[string]domain.RateDocument)
	for b, keys := range want {
		doc := domain.NewRateDocument()
		for _, field := range keys.Crypto {
			if v, ok := s.get(s.key(b, bucket.Crypto, field)); ok {
				doc.Crypto[field] = domain.USDRate{USD: v}
			}
		}
		for _, field := range keys.Fiat {
			if v, ok := s.get(s.key(b, bucket.Fiat, field)); ok {
				doc.Fiat[field] = domain.USDRate{USD: v}
			}
		}
		if !doc.Empty() {
			out[b] = doc
		}
	}
	return out, nil
}

func (s *Store) get(key []byte) (float64, bool) {
	data, err := s.cache.Get(key)
	if err != nil {
		return 0, false
	}
	d, err := decimal.NewFromString(string(data))
	if err != nil {
		return 0, false
	}
	return d.InexactFloat64(), true
}

func (s *Store) Save(_ context.Context, docs map[string]domain.RateDocument) error {
	ttlSeconds := int(s.ttl.Seconds())
	if ttlSeconds < 0 {
		ttlSeconds = 0
	}
	var errList []error
	set := func(key []byte, rate domain.USDRate) {
		if err := s.cache.Set(key, []byte(decimal.NewFromFloat(rate.USD).String()), ttlSeconds); err != nil {
			errList = append(errList, fmt.Errorf("set %s: %w", key, err))
		}
	}
	for b, doc := range docs {
		for field, r := range doc.Crypto {
			set(s.key(b, bucket.Crypto, field), r)
		}
		for field, r := range doc.Fiat {
			set(s.key(b, bucket.Fiat, field), r)
		}
	}
	return errors.Join(errList...)
}
