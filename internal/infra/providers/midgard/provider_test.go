package midgard

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NastyaGoryachaya/edge-rates-service/internal/config"
	"github.com/NastyaGoryachaya/edge-rates-service/internal/domain"
)

var (
	testNow = time.Date(2024, 5, 1, 12, 7, 30, 0, time.UTC)
	testAt  = time.Date(2024, 4, 30, 10, 15, 0, 0, time.UTC)
)

func newProvider(t *testing.T, h http.HandlerFunc) *Provider {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	p, err := New(config.MidgardConfig{BaseURL: srv.URL}, slog.Default())
	require.NoError(t, err)
	return p
}

func unix(t time.Time) string { return strconv.FormatInt(t.Unix(), 10) }

func TestGetCryptoRates_Rune(t *testing.T) {
	p := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/history/rune", r.URL.Path)
		assert.Equal(t, "5min", r.URL.Query().Get("interval"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"intervals": []map[string]string{
				{"startTime": unix(testAt.Add(-5 * time.Minute)), "endTime": unix(testAt), "runePriceUSD": "5.01"},
				{"startTime": unix(testAt), "endTime": unix(testAt.Add(5 * time.Minute)), "runePriceUSD": "5.12"},
			},
		})
	})

	runeQ := domain.CryptoQuery{Asset: domain.NewAssetKey(RuneAsset, ""), At: testAt.Add(time.Minute)}
	btc := domain.CryptoQuery{Asset: domain.NewAssetKey("bitcoin", ""), At: testAt}
	got, err := p.GetCryptoRates(context.Background(), domain.CryptoRequest{
		TargetFiat: "USD",
		Now:        testNow,
		Queries:    domain.CryptoQueries{runeQ.Key(): runeQ, btc.Key(): btc},
	})
	require.NoError(t, err)
	assert.Equal(t, 5.12, got[runeQ.Key()])
	assert.NotContains(t, got, btc.Key())
}

// Нет RUNE — ни одного запроса
func TestGetCryptoRates_ShortCircuit(t *testing.T) {
	p := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s", r.URL)
	})

	btc := domain.CryptoQuery{Asset: domain.NewAssetKey("bitcoin", ""), At: testAt}
	got, err := p.GetCryptoRates(context.Background(), domain.CryptoRequest{
		TargetFiat: "USD",
		Now:        testNow,
		Queries:    domain.CryptoQueries{btc.Key(): btc},
	})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGetCryptoRates_UpstreamError(t *testing.T) {
	p := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	runeQ := domain.CryptoQuery{Asset: domain.NewAssetKey(RuneAsset, ""), At: testAt}
	_, err := p.GetCryptoRates(context.Background(), domain.CryptoRequest{
		TargetFiat: "USD",
		Now:        testNow,
		Queries:    domain.CryptoQueries{runeQ.Key(): runeQ},
	})
	assert.Error(t, err)
}
