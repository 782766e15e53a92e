package crosschain

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NastyaGoryachaya/edge-rates-service/internal/domain"
	"github.com/NastyaGoryachaya/edge-rates-service/internal/interfaces/mocks"
	"github.com/NastyaGoryachaya/edge-rates-service/internal/repository"
	"github.com/NastyaGoryachaya/edge-rates-service/internal/service/rates"
)

var (
	testNow = time.Date(2024, 5, 1, 12, 7, 30, 0, time.UTC)
	testAt  = time.Date(2024, 5, 1, 11, 0, 0, 0, time.UTC)
)

func usdcMapping() Mapping {
	token := "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48"
	return Mapping{
		"polygon_0x3c499c542cef5e3811e1192ce70d8cc03d5c3359":  {DestChain: "ethereum", TokenID: &token},
		"arbitrum_0xaf88d065e77c8cc2239327c5edb3a432268e5831": {DestChain: "ethereum", TokenID: &token},
	}
}

func mustKey(t *testing.T, flat string) domain.AssetKey {
	t.Helper()
	k, err := domain.ParseAssetKey(flat)
	require.NoError(t, err)
	return k
}

func TestCanonicalize(t *testing.T) {
	queries := []domain.CryptoQuery{
		{Asset: mustKey(t, "polygon_0x3c499c542cef5e3811e1192ce70d8cc03d5c3359"), At: testAt},
		{Asset: mustKey(t, "bitcoin"), At: testAt},
	}
	out, lookup := Canonicalize(usdcMapping(), queries)

	require.Len(t, out, 2)
	assert.Equal(t, "ethereum_0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48", out[0].Asset.Flat())
	assert.Equal(t, "bitcoin", out[1].Asset.Flat())
	assert.Equal(t, "ethereum_0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48", lookup["polygon_0x3c499c542cef5e3811e1192ce70d8cc03d5c3359"])
	assert.Equal(t, "bitcoin", lookup["bitcoin"])
	// исходные запросы не изменились
	assert.Equal(t, "polygon", queries[0].Asset.ChainID)
}

// Два ключа на один канонический: один запрос вниз, курс у обоих
func TestRemapper_CollapsesToCanonical(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockResolver(ctrl)

	next.EXPECT().Resolve(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, b domain.Batch) (domain.Result, error) {
			res := domain.Result{TargetFiat: b.TargetFiat, Crypto: make([]domain.CryptoRate, len(b.Crypto))}
			for i, q := range b.Crypto {
				assert.Equal(t, "ethereum", q.Asset.ChainID)
				res.Crypto[i] = domain.CryptoRate{CryptoQuery: q}
			}
			rate := 0.9998
			res.Crypto[0].Rate = &rate
			return res, nil
		})

	r := NewRemapper(NewTable(usdcMapping()), next, slog.Default())
	polygon := mustKey(t, "polygon_0x3c499c542cef5e3811e1192ce70d8cc03d5c3359")
	arbitrum := mustKey(t, "arbitrum_0xaf88d065e77c8cc2239327c5edb3a432268e5831")

	res, err := r.Resolve(context.Background(), domain.Batch{
		TargetFiat: "USD",
		Now:        testNow,
		Crypto: []domain.CryptoQuery{
			{Asset: polygon, At: testAt},
			{Asset: arbitrum, At: testAt.Add(2 * time.Minute)}, // тот же 5-минутный bucket
		},
	})
	require.NoError(t, err)
	require.Len(t, res.Crypto, 2)

	// в ответе исходные ключи и даты
	assert.Equal(t, polygon.Flat(), res.Crypto[0].Asset.Flat())
	assert.Equal(t, arbitrum.Flat(), res.Crypto[1].Asset.Flat())
	assert.True(t, res.Crypto[1].At.Equal(testAt.Add(2*time.Minute)))
	require.NotNil(t, res.Crypto[0].Rate)
	require.NotNil(t, res.Crypto[1].Rate)
	assert.Equal(t, 0.9998, *res.Crypto[1].Rate)
}

// Оба запроса найдены с разными курсами: в одном bucket'е достаётся курс первого
func TestRemapper_SameBucketSameRate(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockResolver(ctrl)

	next.EXPECT().Resolve(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, b domain.Batch) (domain.Result, error) {
			res := domain.Result{TargetFiat: b.TargetFiat, Crypto: make([]domain.CryptoRate, len(b.Crypto))}
			for i, q := range b.Crypto {
				rate := 101.0 + float64(i)*2
				res.Crypto[i] = domain.CryptoRate{CryptoQuery: q, Rate: &rate}
			}
			return res, nil
		})

	r := NewRemapper(NewTable(usdcMapping()), next, slog.Default())
	res, err := r.Resolve(context.Background(), domain.Batch{
		TargetFiat: "USD",
		Now:        testNow,
		Crypto: []domain.CryptoQuery{
			{Asset: mustKey(t, "polygon_0x3c499c542cef5e3811e1192ce70d8cc03d5c3359"), At: testAt.Add(time.Minute)},
			{Asset: mustKey(t, "arbitrum_0xaf88d065e77c8cc2239327c5edb3a432268e5831"), At: testAt.Add(3 * time.Minute)},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, res.Crypto[0].Rate)
	require.NotNil(t, res.Crypto[1].Rate)
	assert.Equal(t, 101.0, *res.Crypto[0].Rate)
	assert.Equal(t, 101.0, *res.Crypto[1].Rate)
}

// Над настоящим движком: api отдаёт курс по точной минуте, а оба исходных ключа
// в одном 5-минутном bucket'е получают один курс; в db пишется одно значение
func TestRemapper_OverEngine_OneRatePerBucket(t *testing.T) {
	ctrl := gomock.NewController(t)

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	token := "0xabc"
	table := NewTable(Mapping{"polygon_0xabc": {DestChain: "ethereum", TokenID: &token}})

	api := mocks.NewMockCryptoRater(ctrl)
	api.EXPECT().Name().Return("api").AnyTimes()
	api.EXPECT().Type().Return(domain.TierAPI).AnyTimes()
	api.EXPECT().GetCryptoRates(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req domain.CryptoRequest) (domain.RateMap, error) {
			out := make(domain.RateMap, len(req.Queries))
			for key, q := range req.Queries {
				out[key] = 100 + float64(q.At.Minute())
			}
			return out, nil
		})

	db := mocks.NewMockRateProvider(ctrl)
	db.EXPECT().Name().Return("db").AnyTimes()
	db.EXPECT().Type().Return(domain.TierDB).AnyTimes()
	db.EXPECT().GetCryptoRates(gomock.Any(), gomock.Any()).Return(domain.RateMap{}, nil)
	db.EXPECT().UpdateRates(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, b domain.RateBatch) error {
			require.Len(t, b.Crypto, 1)
			assert.Equal(t, "ethereum_0xabc", b.Crypto[0].Asset.Flat())
			assert.Equal(t, 101.0, *b.Crypto[0].Rate)
			return nil
		})

	engine := rates.NewEngine(rates.NewRegistry(db, api), slog.Default())
	r := NewRemapper(table, engine, slog.Default())

	res, err := r.Resolve(context.Background(), domain.Batch{
		TargetFiat: "USD",
		Now:        now,
		Crypto: []domain.CryptoQuery{
			{Asset: mustKey(t, "ethereum_0xabc"), At: time.Date(2024, 5, 1, 10, 1, 0, 0, time.UTC)},
			{Asset: mustKey(t, "polygon_0xabc"), At: time.Date(2024, 5, 1, 10, 3, 0, 0, time.UTC)},
		},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, engine.Wait(ctx))

	require.NotNil(t, res.Crypto[0].Rate)
	require.NotNil(t, res.Crypto[1].Rate)
	assert.Equal(t, 101.0, *res.Crypto[0].Rate)
	assert.Equal(t, *res.Crypto[0].Rate, *res.Crypto[1].Rate)
	assert.Equal(t, "polygon_0xabc", res.Crypto[1].Asset.Flat())
}

func TestRemapper_PassesErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mocks.NewMockResolver(ctrl)
	boom := errors.New("boom")
	next.EXPECT().Resolve(gomock.Any(), gomock.Any()).Return(domain.Result{}, boom)

	r := NewRemapper(NewTable(nil), next, slog.Default())
	_, err := r.Resolve(context.Background(), domain.Batch{TargetFiat: "USD", Now: testNow})
	assert.ErrorIs(t, err, boom)
}

func TestParseMapping_SkipsInvalid(t *testing.T) {
	raw := []byte(`{
		"polygon_0xabc": {"destChain": "ethereum", "tokenId": "0xdef"},
		"bad_key_x": {"destChain": "ethereum"},
		"optimism": {"destChain": "eth_bad"}
	}`)
	m, skipped, err := ParseMapping(raw)
	require.NoError(t, err)
	assert.Len(t, m, 1)
	assert.Len(t, skipped, 2)
	assert.Equal(t, "ethereum_0xdef", m["polygon_0xabc"].Asset().Flat())
}

type fakeSettings struct {
	raw []byte
	rev int64
	err error
}

func (f *fakeSettings) GetSetting(context.Context, string) ([]byte, int64, error) {
	return f.raw, f.rev, f.err
}

func TestLoader_SwapsTable(t *testing.T) {
	table := NewTable(usdcMapping())
	repo := &fakeSettings{raw: []byte(`{"avalanche_0x1": {"destChain": "ethereum", "tokenId": "0x2"}}`), rev: 3}
	l := NewLoader(repo, table, "crossChainMapping", slog.Default())

	require.NoError(t, l.Run(context.Background()))
	assert.Len(t, table.Load(), 1)
	assert.Contains(t, table.Load(), "avalanche_0x1")

	// та же ревизия — таблица не перечитывается
	repo.raw = []byte(`not json`)
	require.NoError(t, l.Run(context.Background()))
	assert.Len(t, table.Load(), 1)
}

// Документа нет — остаётся начальная таблица
func TestLoader_NotFoundKeepsTable(t *testing.T) {
	table := NewTable(usdcMapping())
	l := NewLoader(&fakeSettings{err: repository.ErrNotFound}, table, "crossChainMapping", slog.Default())

	require.NoError(t, l.Run(context.Background()))
	assert.Len(t, table.Load(), 2)
}

func TestLoader_BadDocument(t *testing.T) {
	table := NewTable(usdcMapping())
	l := NewLoader(&fakeSettings{raw: []byte(`[]`), rev: 1}, table, "crossChainMapping", slog.Default())

	assert.Error(t, l.Run(context.Background()))
	assert.Len(t, table.Load(), 2)
}
