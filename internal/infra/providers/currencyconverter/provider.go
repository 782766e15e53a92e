package currencyconverter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/NastyaGoryachaya/edge-rates-service/internal/config"
	"github.com/NastyaGoryachaya/edge-rates-service/internal/domain"
	"github.com/NastyaGoryachaya/edge-rates-service/internal/infra/api_client"
	"github.com/NastyaGoryachaya/edge-rates-service/internal/pkg/bucket"
)

const (
	Name = "currencyconverter"

	dateLayout = "2006-01-02"
	latest     = "latest"
)

// Provider — дневные курсы фиатных валют (API в стиле frankfurter:
// GET /{YYYY-MM-DD}?from=USD&to=EUR,GBP). Один запрос на суточный bucket.
type Provider struct {
	client *api_client.Client
	logger *slog.Logger
}

type ratesResponse struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

func New(cfg config.CurrencyConverterConfig, logger *slog.Logger) (*Provider, error) {
	client, err := api_client.NewClient(api_client.Options{
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.Timeout,
		UserAgent: cfg.UserAgent,
		RPS:       cfg.RPS,
		Burst:     cfg.Burst,
	})
	if err != nil {
		return nil, fmt.Errorf("currency converter client: %w", err)
	}
	return &Provider{client: client, logger: logger}, nil
}

func (p *Provider) Name() string      { return Name }
func (p *Provider) Type() domain.Tier { return domain.TierAPI }

// GetFiatRates - курс F в целевой валюте T: rates[T] / rates[F] при базе USD
func (p *Provider) GetFiatRates(ctx context.Context, req domain.FiatRequest) (domain.RateMap, error) {
	byDay := make(map[string][]string)
	for key, q := range req.Queries {
		day := p.day(q.At, req.Now)
		byDay[day] = append(byDay[day], key)
	}

	type dayRates struct {
		day   string
		rates map[string]float64
		err   error
	}
	results := make([]dayRates, 0, len(byDay))
	for day := range byDay {
		results = append(results, dayRates{day: day})
	}

	var g errgroup.Group
	for i := range results {
		codes := lo.Uniq(lo.Map(byDay[results[i].day], func(key string, _ int) string {
			return req.Queries[key].FiatCode
		}))
		codes = append(codes, req.TargetFiat)
		g.Go(func() error {
			results[i].rates, results[i].err = p.fetch(ctx, results[i].day, codes)
			return nil
		})
	}
	_ = g.Wait()

	out := make(domain.RateMap, len(req.Queries))
	var failed []error
	for _, r := range results {
		if r.err != nil {
			failed = append(failed, fmt.Errorf("%s: %w", r.day, r.err))
			continue
		}
		target, ok := r.rates[req.TargetFiat]
		if !ok || target <= 0 {
			continue
		}
		for _, key := range byDay[r.day] {
			rate, ok := r.rates[req.Queries[key].FiatCode]
			if !ok || rate <= 0 {
				continue
			}
			out[key] = target / rate
		}
	}

	if len(failed) > 0 {
		if len(failed) == len(results) {
			return nil, errors.Join(failed...)
		}
		p.logger.Warn("currency converter: some days failed", slog.String("error", errors.Join(failed...).Error()))
	}
	return out, nil
}

// day - дата запроса; текущие сутки ещё не опубликованы, берём latest
func (p *Provider) day(at, now time.Time) string {
	d := bucket.Floor(at, now, bucket.Fiat)
	if !d.Before(bucket.Floor(now, now, bucket.Fiat)) {
		return latest
	}
	return d.Format(dateLayout)
}

// fetch - курсы "сколько единиц валюты за 1 USD"; USD всегда 1
func (p *Provider) fetch(ctx context.Context, day string, codes []string) (map[string]float64, error) {
	want := lo.Without(lo.Uniq(codes), domain.SettlementFiat)
	rates := map[string]float64{domain.SettlementFiat: 1}
	if len(want) == 0 {
		return rates, nil
	}
	slices.Sort(want)

	q := url.Values{}
	q.Set("from", domain.SettlementFiat)
	q.Set("to", strings.Join(want, ","))

	var resp ratesResponse
	if err := p.client.GetJSON(ctx, q, &resp, day); err != nil {
		return nil, err
	}
	for code, v := range resp.Rates {
		rates[strings.ToUpper(code)] = v
	}
	return rates, nil
}
