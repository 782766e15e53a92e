package tierstore

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NastyaGoryachaya/edge-rates-service/internal/domain"
)

// memStore - документы в памяти, отдаёт целиком
type memStore struct {
	docs    map[string]domain.RateDocument
	fetched []map[string]domain.DocKeys
	err     error
}

func newMemStore() *memStore {
	return &memStore{docs: make(map[string]domain.RateDocument)}
}

func (s *memStore) Fetch(_ context.Context, want map[string]domain.DocKeys) (map[string]domain.RateDocument, error) {
	s.fetched = append(s.fetched, want)
	if s.err != nil {
		return nil, s.err
	}
	out := make(map[string]domain.RateDocument)
	for b := range want {
		if d, ok := s.docs[b]; ok {
			out[b] = d
		}
	}
	return out, nil
}

func (s *memStore) Save(_ context.Context, docs map[string]domain.RateDocument) error {
	if s.err != nil {
		return s.err
	}
	for b, d := range docs {
		cur := s.docs[b]
		cur.Merge(d)
		s.docs[b] = cur
	}
	return nil
}

var (
	now = time.Date(2024, 5, 1, 12, 7, 30, 0, time.UTC)
	old = time.Date(2024, 4, 30, 10, 17, 45, 0, time.UTC)
)

func ptr(v float64) *float64 { return &v }

// Записанное через UpdateRates читается обратно тем же bucket'ом
func TestProvider_WriteThenRead(t *testing.T) {
	store := newMemStore()
	p := New("test", domain.TierDB, store, slog.Default())

	btc := domain.CryptoQuery{Asset: domain.NewAssetKey("bitcoin", ""), At: old}
	eur := domain.FiatQuery{FiatCode: "EUR", At: old}

	err := p.UpdateRates(context.Background(), domain.RateBatch{
		Now:    now,
		Crypto: []domain.CryptoRate{{CryptoQuery: btc, Rate: ptr(60000)}},
		Fiat:   []domain.FiatRate{{FiatQuery: eur, Rate: ptr(1.08)}},
	})
	require.NoError(t, err)

	// старый запрос: 5-минутный bucket и суточный фиат
	require.Contains(t, store.docs, "2024-04-30T10:15:00.000Z")
	require.Contains(t, store.docs, "2024-04-30T00:00:00.000Z")

	// другой момент в том же bucket'е
	same := domain.CryptoQuery{Asset: btc.Asset, At: old.Add(-2 * time.Minute)}
	got, err := p.GetCryptoRates(context.Background(), domain.CryptoRequest{
		TargetFiat: "USD",
		Now:        now,
		Queries:    domain.CryptoQueries{same.Key(): same},
	})
	require.NoError(t, err)
	assert.Equal(t, 60000.0, got[same.Key()])

	gotFiat, err := p.GetFiatRates(context.Background(), domain.FiatRequest{
		TargetFiat: "USD",
		Now:        now,
		Queries:    domain.FiatQueries{eur.Key(): eur},
	})
	require.NoError(t, err)
	assert.Equal(t, 1.08, gotFiat[eur.Key()])
}

// Пересчёт в другую валюту через USD: BTC=60000 USD, EUR=1.2 USD -> 50000 EUR
func TestProvider_BridgesThroughUSD(t *testing.T) {
	store := newMemStore()
	store.docs["2024-04-30T10:15:00.000Z"] = domain.RateDocument{
		Crypto: map[string]domain.USDRate{"bitcoin": {USD: 60000}},
	}
	store.docs["2024-04-30T00:00:00.000Z"] = domain.RateDocument{
		Fiat: map[string]domain.USDRate{"EUR": {USD: 1.2}, "GBP": {USD: 1.5}},
	}
	p := New("test", domain.TierDB, store, slog.Default())

	btc := domain.CryptoQuery{Asset: domain.NewAssetKey("bitcoin", ""), At: old}
	got, err := p.GetCryptoRates(context.Background(), domain.CryptoRequest{
		TargetFiat: "EUR",
		Now:        now,
		Queries:    domain.CryptoQueries{btc.Key(): btc},
	})
	require.NoError(t, err)
	assert.InDelta(t, 50000.0, got[btc.Key()], 1e-9)

	// в запрос документа попал и суточный EUR
	require.Len(t, store.fetched, 1)
	assert.Equal(t, []string{"EUR"}, store.fetched[0]["2024-04-30T00:00:00.000Z"].Fiat)

	gbp := domain.FiatQuery{FiatCode: "GBP", At: old}
	gotFiat, err := p.GetFiatRates(context.Background(), domain.FiatRequest{
		TargetFiat: "EUR",
		Now:        now,
		Queries:    domain.FiatQueries{gbp.Key(): gbp},
	})
	require.NoError(t, err)
	assert.InDelta(t, 1.25, gotFiat[gbp.Key()], 1e-9)
}

// Нет курса целевой валюты — пересчитать нельзя, считаем ненайденным
func TestProvider_BridgeMissingTarget(t *testing.T) {
	store := newMemStore()
	store.docs["2024-04-30T10:15:00.000Z"] = domain.RateDocument{
		Crypto: map[string]domain.USDRate{"bitcoin": {USD: 60000}},
	}
	p := New("test", domain.TierDB, store, slog.Default())

	btc := domain.CryptoQuery{Asset: domain.NewAssetKey("bitcoin", ""), At: old}
	got, err := p.GetCryptoRates(context.Background(), domain.CryptoRequest{
		TargetFiat: "EUR",
		Now:        now,
		Queries:    domain.CryptoQueries{btc.Key(): btc},
	})
	require.NoError(t, err)
	assert.Empty(t, got)
}

// Свежий запрос квантуется по минуте
func TestProvider_FreshBucket(t *testing.T) {
	store := newMemStore()
	p := New("test", domain.TierMemory, store, slog.Default())

	fresh := domain.CryptoQuery{Asset: domain.NewAssetKey("ethereum", "0xdac17f958d2ee523a2206206994597c13d831ec7"), At: now.Add(-90 * time.Second)}
	require.NoError(t, p.UpdateRates(context.Background(), domain.RateBatch{
		Now:    now,
		Crypto: []domain.CryptoRate{{CryptoQuery: fresh, Rate: ptr(1)}},
	}))
	doc, ok := store.docs["2024-05-01T12:06:00.000Z"]
	require.True(t, ok)
	assert.Equal(t, 1.0, doc.Crypto["ethereum_0xdac17f958d2ee523a2206206994597c13d831ec7"].USD)
}

func TestProvider_StoreError(t *testing.T) {
	store := newMemStore()
	store.err = errors.New("down")
	p := New("test", domain.TierMemory, store, slog.Default())

	q := domain.FiatQuery{FiatCode: "EUR", At: old}
	_, err := p.GetFiatRates(context.Background(), domain.FiatRequest{
		TargetFiat: "USD",
		Now:        now,
		Queries:    domain.FiatQueries{q.Key(): q},
	})
	assert.ErrorIs(t, err, store.err)
}

// Пустой батч в хранилище не ходит
func TestProvider_UpdateNothing(t *testing.T) {
	store := newMemStore()
	store.err = errors.New("must not be called")
	p := New("test", domain.TierMemory, store, slog.Default())

	err := p.UpdateRates(context.Background(), domain.RateBatch{
		Now:    now,
		Crypto: []domain.CryptoRate{{CryptoQuery: domain.CryptoQuery{Asset: domain.NewAssetKey("bitcoin", ""), At: old}}},
	})
	assert.NoError(t, err)
}
