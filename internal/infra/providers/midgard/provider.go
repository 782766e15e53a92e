package midgard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/NastyaGoryachaya/edge-rates-service/internal/config"
	"github.com/NastyaGoryachaya/edge-rates-service/internal/domain"
	"github.com/NastyaGoryachaya/edge-rates-service/internal/infra/api_client"
	"github.com/NastyaGoryachaya/edge-rates-service/internal/infra/providers"
)

const (
	Name = "midgard"

	// RuneAsset — единственный актив, который знает провайдер
	RuneAsset = "thorchainrune"

	interval = 5 * time.Minute
	// Midgard отдаёт не больше 400 интервалов за запрос
	maxRange = 300 * interval
)

// Provider — цена RUNE в USD из истории Midgard (/v2/history/rune).
type Provider struct {
	client *api_client.Client
	logger *slog.Logger
}

type historyResponse struct {
	Intervals []struct {
		StartTime    string `json:"startTime"`
		EndTime      string `json:"endTime"`
		RunePriceUSD string `json:"runePriceUSD"`
	} `json:"intervals"`
}

func New(cfg config.MidgardConfig, logger *slog.Logger) (*Provider, error) {
	client, err := api_client.NewClient(api_client.Options{
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.Timeout,
		UserAgent: cfg.UserAgent,
		RPS:       cfg.RPS,
		Burst:     cfg.Burst,
	})
	if err != nil {
		return nil, fmt.Errorf("midgard client: %w", err)
	}
	return &Provider{client: client, logger: logger}, nil
}

func (p *Provider) Name() string      { return Name }
func (p *Provider) Type() domain.Tier { return domain.TierAPI }

// GetCryptoRates - без RUNE в батче в сеть не ходим. Цены только в USD.
func (p *Provider) GetCryptoRates(ctx context.Context, req domain.CryptoRequest) (domain.RateMap, error) {
	out := make(domain.RateMap)
	if req.TargetFiat != domain.SettlementFiat {
		return out, nil
	}
	times := make(map[string]time.Time)
	for key, q := range req.Queries {
		if q.Asset.Flat() == RuneAsset {
			times[key] = q.At
		}
	}
	if len(times) == 0 {
		return out, nil
	}

	windows := providers.Split(times, maxRange)
	var failed []error
	for _, w := range windows {
		points, err := p.fetch(ctx, w.From.Add(-interval), w.To.Add(interval))
		if err != nil {
			failed = append(failed, err)
			continue
		}
		for _, key := range w.Keys {
			if v, ok := providers.Closest(points, times[key], interval); ok {
				out[key] = v
			}
		}
	}
	if len(failed) == len(windows) {
		return nil, errors.Join(failed...)
	}
	if len(failed) > 0 {
		p.logger.Warn("midgard: some requests failed", slog.String("error", errors.Join(failed...).Error()))
	}
	return out, nil
}

// fetch - точка интервала ставится на его середину
func (p *Provider) fetch(ctx context.Context, from, to time.Time) ([]providers.Point, error) {
	q := url.Values{}
	q.Set("interval", "5min")
	q.Set("from", strconv.FormatInt(from.Unix(), 10))
	q.Set("to", strconv.FormatInt(to.Unix(), 10))

	var resp historyResponse
	if err := p.client.GetJSON(ctx, q, &resp, "v2", "history", "rune"); err != nil {
		return nil, err
	}

	points := make([]providers.Point, 0, len(resp.Intervals))
	for _, it := range resp.Intervals {
		start, err1 := strconv.ParseInt(it.StartTime, 10, 64)
		end, err2 := strconv.ParseInt(it.EndTime, 10, 64)
		price, err3 := decimal.NewFromString(it.RunePriceUSD)
		if err := errors.Join(err1, err2, err3); err != nil {
			p.logger.Debug("midgard: bad interval skipped", slog.String("error", err.Error()))
			continue
		}
		mid := time.Unix((start+end)/2, 0).UTC()
		points = append(points, providers.Point{At: mid, Price: price.InexactFloat64()})
	}
	return points, nil
}
