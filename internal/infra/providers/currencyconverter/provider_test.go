package currencyconverter

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NastyaGoryachaya/edge-rates-service/internal/config"
	"github.com/NastyaGoryachaya/edge-rates-service/internal/domain"
	errs "github.com/NastyaGoryachaya/edge-rates-service/internal/errors"
)

var testNow = time.Date(2024, 5, 1, 12, 7, 30, 0, time.UTC)

func newProvider(t *testing.T, h http.HandlerFunc) *Provider {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	p, err := New(config.CurrencyConverterConfig{BaseURL: srv.URL}, slog.Default())
	require.NoError(t, err)
	return p
}

func TestGetFiatRates_USDTarget(t *testing.T) {
	p := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/2024-04-30", r.URL.Path)
		assert.Equal(t, "USD", r.URL.Query().Get("from"))
		assert.Equal(t, "EUR,GBP", r.URL.Query().Get("to"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"base": "USD", "date": "2024-04-30",
			"rates": map[string]float64{"EUR": 0.8, "GBP": 0.5},
		})
	})

	at := time.Date(2024, 4, 30, 15, 0, 0, 0, time.UTC)
	eur := domain.FiatQuery{FiatCode: "EUR", At: at}
	gbp := domain.FiatQuery{FiatCode: "GBP", At: at}
	got, err := p.GetFiatRates(context.Background(), domain.FiatRequest{
		TargetFiat: "USD",
		Now:        testNow,
		Queries:    domain.FiatQueries{eur.Key(): eur, gbp.Key(): gbp},
	})
	require.NoError(t, err)
	assert.InDelta(t, 1.25, got[eur.Key()], 1e-9)
	assert.InDelta(t, 2.0, got[gbp.Key()], 1e-9)
}

// Другая целевая валюта: GBP в EUR = rates[EUR] / rates[GBP]
func TestGetFiatRates_CrossTarget(t *testing.T) {
	p := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"rates": map[string]float64{"EUR": 0.8, "GBP": 0.5},
		})
	})

	at := time.Date(2024, 4, 30, 15, 0, 0, 0, time.UTC)
	gbp := domain.FiatQuery{FiatCode: "GBP", At: at}
	got, err := p.GetFiatRates(context.Background(), domain.FiatRequest{
		TargetFiat: "EUR",
		Now:        testNow,
		Queries:    domain.FiatQueries{gbp.Key(): gbp},
	})
	require.NoError(t, err)
	assert.InDelta(t, 1.6, got[gbp.Key()], 1e-9)
}

// Сегодняшняя дата — latest
func TestGetFiatRates_Today(t *testing.T) {
	p := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/latest", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{"rates": map[string]float64{"JPY": 150}})
	})

	jpy := domain.FiatQuery{FiatCode: "JPY", At: testNow.Add(-time.Hour)}
	got, err := p.GetFiatRates(context.Background(), domain.FiatRequest{
		TargetFiat: "USD",
		Now:        testNow,
		Queries:    domain.FiatQueries{jpy.Key(): jpy},
	})
	require.NoError(t, err)
	assert.InDelta(t, 1.0/150, got[jpy.Key()], 1e-12)
}

func TestGetFiatRates_UpstreamDown(t *testing.T) {
	p := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	eur := domain.FiatQuery{FiatCode: "EUR", At: time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)}
	_, err := p.GetFiatRates(context.Background(), domain.FiatRequest{
		TargetFiat: "USD",
		Now:        testNow,
		Queries:    domain.FiatQueries{eur.Key(): eur},
	})
	assert.ErrorIs(t, err, errs.ErrProviderFailure)
}
