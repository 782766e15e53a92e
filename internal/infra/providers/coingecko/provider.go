package coingecko

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/NastyaGoryachaya/edge-rates-service/internal/config"
	"github.com/NastyaGoryachaya/edge-rates-service/internal/domain"
	"github.com/NastyaGoryachaya/edge-rates-service/internal/infra/api_client"
	"github.com/NastyaGoryachaya/edge-rates-service/internal/infra/providers"
)

const (
	Name = "coingecko"

	apiKeyHeader = "x-cg-pro-api-key"
	// на диапазонах до суток CoinGecko отдаёт 5-минутные точки
	maxRange = 24 * time.Hour
)

// Provider — исторические курсы криптоактивов через /coins/{id}/market_chart/range.
// Знает только активы из карты tokens (плоский ключ -> id CoinGecko).
type Provider struct {
	client      *api_client.Client
	tokens      domain.TokenMap
	maxSkew     time.Duration
	concurrency int
	logger      *slog.Logger
}

// marketChart — ответ market_chart/range: prices = [[ms, price], ...]
type marketChart struct {
	Prices [][2]float64 `json:"prices"`
}

func New(cfg config.CoinGeckoConfig, logger *slog.Logger) (*Provider, error) {
	client, err := api_client.NewClient(api_client.Options{
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.Timeout,
		UserAgent: cfg.UserAgent,
		RPS:       cfg.RPS,
		Burst:     cfg.Burst,
		Headers:   map[string]string{apiKeyHeader: cfg.APIKey},
	})
	if err != nil {
		return nil, fmt.Errorf("coingecko client: %w", err)
	}
	tokens := make(domain.TokenMap, len(cfg.Tokens))
	for flat, id := range cfg.Tokens {
		if _, err := domain.ParseAssetKey(flat); err != nil {
			return nil, fmt.Errorf("coingecko token %q: %w", flat, err)
		}
		tokens[flat] = domain.TokenInfo{ProviderID: id, DisplayName: id}
	}
	skew := cfg.MaxSkew
	if skew <= 0 {
		skew = time.Hour
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}
	return &Provider{
		client:      client,
		tokens:      tokens,
		maxSkew:     skew,
		concurrency: concurrency,
		logger:      logger,
	}, nil
}

func (p *Provider) Name() string      { return Name }
func (p *Provider) Type() domain.Tier { return domain.TierAPI }

// GetCryptoRates - один HTTP-запрос на (монета, окно до суток).
// Ошибка возвращается, только если не удался ни один запрос.
func (p *Provider) GetCryptoRates(ctx context.Context, req domain.CryptoRequest) (domain.RateMap, error) {
	byCoin := make(map[string]map[string]time.Time)
	for key, q := range req.Queries {
		info, ok := p.tokens[q.Asset.Flat()]
		if !ok {
			continue
		}
		if byCoin[info.ProviderID] == nil {
			byCoin[info.ProviderID] = make(map[string]time.Time)
		}
		byCoin[info.ProviderID][key] = q.At
	}
	out := make(domain.RateMap)
	if len(byCoin) == 0 {
		return out, nil
	}

	vs := strings.ToLower(req.TargetFiat)
	span := maxRange - 2*p.maxSkew
	if span < time.Hour {
		span = time.Hour
	}

	var (
		mu     sync.Mutex
		failed []error
		calls  int
		g      errgroup.Group
	)
	g.SetLimit(p.concurrency)
	for id, times := range byCoin {
		for _, w := range providers.Split(times, span) {
			calls++
			g.Go(func() error {
				points, err := p.fetch(ctx, id, vs, w.From.Add(-p.maxSkew), w.To.Add(p.maxSkew))
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					failed = append(failed, fmt.Errorf("%s: %w", id, err))
					return nil
				}
				for _, key := range w.Keys {
					if v, ok := providers.Closest(points, times[key], p.maxSkew); ok {
						out[key] = v
					}
				}
				return nil
			})
		}
	}
	_ = g.Wait()

	if len(failed) > 0 {
		if len(failed) == calls {
			return nil, errors.Join(failed...)
		}
		p.logger.Warn("coingecko: some requests failed",
			slog.Int("failed", len(failed)),
			slog.Int("calls", calls),
			slog.String("error", errors.Join(failed...).Error()),
		)
	}
	return out, nil
}

func (p *Provider) fetch(ctx context.Context, id, vs string, from, to time.Time) ([]providers.Point, error) {
	q := url.Values{}
	q.Set("vs_currency", vs)
	q.Set("from", strconv.FormatInt(from.Unix(), 10))
	q.Set("to", strconv.FormatInt(to.Unix(), 10))

	var chart marketChart
	if err := p.client.GetJSON(ctx, q, &chart, "coins", id, "market_chart", "range"); err != nil {
		return nil, err
	}
	points := make([]providers.Point, 0, len(chart.Prices))
	for _, pr := range chart.Prices {
		points = append(points, providers.Point{At: time.UnixMilli(int64(pr[0])).UTC(), Price: pr[1]})
	}
	return points, nil
}
