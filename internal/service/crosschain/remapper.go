package crosschain

import (
	"context"
	"log/slog"
	"time"

	"github.com/NastyaGoryachaya/edge-rates-service/internal/domain"
	"github.com/NastyaGoryachaya/edge-rates-service/internal/interfaces"
	"github.com/NastyaGoryachaya/edge-rates-service/internal/pkg/bucket"
)

// Remapper - канонизирует активы перед разрешением и раскладывает результат обратно
// на исходные запросы. Один найденный курс достаётся всем исходным ключам,
// отображённым на один канонический.
type Remapper struct {
	table  *Table
	next   interfaces.Resolver
	logger *slog.Logger
}

func NewRemapper(table *Table, next interfaces.Resolver, logger *slog.Logger) *Remapper {
	return &Remapper{table: table, next: next, logger: logger}
}

func (r *Remapper) Resolve(ctx context.Context, batch domain.Batch) (domain.Result, error) {
	canonical, lookup := Canonicalize(r.table.Load(), batch.Crypto)

	remapped := 0
	for from, to := range lookup {
		if from != to {
			remapped++
		}
	}
	if remapped > 0 {
		r.logger.Debug("cross-chain remap", slog.Int("assets", remapped))
	}

	inner := batch
	inner.Crypto = canonical
	res, err := r.next.Resolve(ctx, inner)
	if err != nil {
		return domain.Result{}, err
	}

	// (канонический ключ, bucket) -> курс; первый найденный в порядке батча
	byBucket := make(map[string]float64, len(res.Crypto))
	for _, c := range res.Crypto {
		if c.Rate == nil {
			continue
		}
		k := bucketKey(c.Asset.Flat(), c.At, batch.Now)
		if _, ok := byBucket[k]; !ok {
			byBucket[k] = *c.Rate
		}
	}

	out := make([]domain.CryptoRate, len(batch.Crypto))
	for i, q := range batch.Crypto {
		out[i] = domain.CryptoRate{CryptoQuery: q}
		if v, ok := byBucket[bucketKey(lookup[q.Asset.Flat()], q.At, batch.Now)]; ok {
			out[i].Rate = &v
		}
	}
	res.Crypto = out
	return res, nil
}

func bucketKey(flat string, at, now time.Time) string {
	return bucket.FloorToBucket(at, now, bucket.Crypto) + domain.KeySeparator + flat
}
