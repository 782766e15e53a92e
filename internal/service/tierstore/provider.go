package tierstore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/samber/lo"

	"github.com/NastyaGoryachaya/edge-rates-service/internal/domain"
	"github.com/NastyaGoryachaya/edge-rates-service/internal/pkg/bucket"
)

// Store - хранилище документов по bucket'ам (redis, freecache, postgres).
// Fetch может вернуть документ только с запрошенными полями; отсутствующий bucket — не ошибка.
type Store interface {
	Fetch(ctx context.Context, want map[string]domain.DocKeys) (map[string]domain.RateDocument, error)
	Save(ctx context.Context, docs map[string]domain.RateDocument) error
}

// Provider - провайдер уровня memory/db поверх Store.
// Квантует запросы в bucket'ы, пересчитывает USD в целевую валюту и принимает write-back.
type Provider struct {
	name   string
	tier   domain.Tier
	store  Store
	logger *slog.Logger
}

func New(name string, tier domain.Tier, store Store, logger *slog.Logger) *Provider {
	return &Provider{name: name, tier: tier, store: store, logger: logger}
}

func (p *Provider) Name() string      { return p.name }
func (p *Provider) Type() domain.Tier { return p.tier }

func (p *Provider) GetCryptoRates(ctx context.Context, req domain.CryptoRequest) (domain.RateMap, error) {
	want := make(map[string]domain.DocKeys)
	for _, q := range req.Queries {
		b := bucket.FloorToBucket(q.At, req.Now, bucket.Crypto)
		addKey(want, b, bucket.Crypto, q.Asset.Flat())
		if req.TargetFiat != domain.SettlementFiat {
			addKey(want, fiatBucket(q.At), bucket.Fiat, req.TargetFiat)
		}
	}

	docs, err := p.store.Fetch(ctx, want)
	if err != nil {
		return nil, fmt.Errorf("fetch crypto: %w", err)
	}

	out := make(domain.RateMap, len(req.Queries))
	for key, q := range req.Queries {
		doc, ok := docs[bucket.FloorToBucket(q.At, req.Now, bucket.Crypto)]
		if !ok {
			continue
		}
		stored, ok := doc.Crypto[q.Asset.Flat()]
		if !ok || stored.USD <= 0 {
			continue
		}
		mult, ok := usdToTarget(docs, q.At, req.TargetFiat)
		if !ok {
			continue
		}
		out[key] = stored.USD * mult
	}
	return out, nil
}

func (p *Provider) GetFiatRates(ctx context.Context, req domain.FiatRequest) (domain.RateMap, error) {
	want := make(map[string]domain.DocKeys)
	for _, q := range req.Queries {
		b := fiatBucket(q.At)
		addKey(want, b, bucket.Fiat, q.FiatCode)
		if req.TargetFiat != domain.SettlementFiat {
			addKey(want, b, bucket.Fiat, req.TargetFiat)
		}
	}

	docs, err := p.store.Fetch(ctx, want)
	if err != nil {
		return nil, fmt.Errorf("fetch fiat: %w", err)
	}

	out := make(domain.RateMap, len(req.Queries))
	for key, q := range req.Queries {
		doc, ok := docs[fiatBucket(q.At)]
		if !ok {
			continue
		}
		stored, ok := doc.Fiat[q.FiatCode]
		if !ok || stored.USD <= 0 {
			continue
		}
		mult, ok := usdToTarget(docs, q.At, req.TargetFiat)
		if !ok {
			continue
		}
		out[key] = stored.USD * mult
	}
	return out, nil
}

// UpdateRates - раскладывает найденные курсы по документам bucket'ов.
// Курсы в батче уже в USD.
func (p *Provider) UpdateRates(ctx context.Context, batch domain.RateBatch) error {
	docs := make(map[string]domain.RateDocument)
	doc := func(b string) domain.RateDocument {
		d, ok := docs[b]
		if !ok {
			d = domain.NewRateDocument()
			docs[b] = d
		}
		return d
	}
	for _, r := range batch.Crypto {
		if r.Rate == nil {
			continue
		}
		doc(bucket.FloorToBucket(r.At, batch.Now, bucket.Crypto)).Crypto[r.Asset.Flat()] = domain.USDRate{USD: *r.Rate}
	}
	for _, r := range batch.Fiat {
		if r.Rate == nil {
			continue
		}
		doc(fiatBucket(r.At)).Fiat[r.FiatCode] = domain.USDRate{USD: *r.Rate}
	}
	if len(docs) == 0 {
		return nil
	}
	if err := p.store.Save(ctx, docs); err != nil {
		return fmt.Errorf("save %d buckets: %w", len(docs), err)
	}
	p.logger.Debug("rates stored", slog.String("provider", p.name), slog.Int("buckets", len(docs)))
	return nil
}

func fiatBucket(at time.Time) string {
	return bucket.FloorToBucket(at, at, bucket.Fiat)
}

// usdToTarget - множитель USD -> целевая валюта по суточному фиат-документу
func usdToTarget(docs map[string]domain.RateDocument, at time.Time, target string) (float64, bool) {
	if target == domain.SettlementFiat {
		return 1, true
	}
	doc, ok := docs[fiatBucket(at)]
	if !ok {
		return 0, false
	}
	r, ok := doc.Fiat[target]
	if !ok || r.USD <= 0 {
		return 0, false
	}
	return 1 / r.USD, true
}

func addKey(want map[string]domain.DocKeys, b string, kind bucket.Kind, field string) {
	keys := want[b]
	if kind == bucket.Fiat {
		keys.Fiat = appendUnique(keys.Fiat, field)
	} else {
		keys.Crypto = appendUnique(keys.Crypto, field)
	}
	want[b] = keys
}

func appendUnique(s []string, v string) []string {
	if lo.Contains(s, v) {
		return s
	}
	return append(s, v)
}
