package warmup

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/NastyaGoryachaya/edge-rates-service/internal/domain"
	"github.com/NastyaGoryachaya/edge-rates-service/internal/service/rates"
)

//go:generate mockgen -source=warmup_service.go -destination=mocks/warmup.go -package=mocks

type Service interface {
	Name() string
	Run(ctx context.Context) error
}

// RatesGetter — то, через что прогреваются кэши (сервис курсов)
type RatesGetter interface {
	GetRates(ctx context.Context, req rates.Request) (domain.Result, error)
}

type warmupService struct {
	rates  RatesGetter
	assets []domain.AssetKey
	fiat   []string
	logger *slog.Logger
}

// NewService — конструктор прогрева: популярные активы и валюты на текущий момент.
func NewService(getter RatesGetter, assets, fiat []string, logger *slog.Logger) (Service, error) {
	keys := make([]domain.AssetKey, 0, len(assets))
	for _, flat := range assets {
		k, err := domain.ParseAssetKey(strings.TrimSpace(flat))
		if err != nil {
			return nil, fmt.Errorf("warm-up asset %q: %w", flat, err)
		}
		keys = append(keys, k)
	}
	return &warmupService{
		rates:  getter,
		assets: keys,
		fiat:   fiat,
		logger: logger,
	}, nil
}

func (s *warmupService) Name() string { return "warmup" }

// Run — запрашивает курсы без даты (начало текущей минуты): найденное api попадёт в кэши и БД
func (s *warmupService) Run(ctx context.Context) error {
	if len(s.assets) == 0 && len(s.fiat) == 0 {
		return nil
	}

	req := rates.Request{TargetFiat: domain.SettlementFiat}
	for _, a := range s.assets {
		req.Crypto = append(req.Crypto, rates.CryptoInput{Asset: a})
	}
	for _, f := range s.fiat {
		req.Fiat = append(req.Fiat, rates.FiatInput{FiatCode: f})
	}

	res, err := s.rates.GetRates(ctx, req)
	if err != nil {
		s.logger.Error("warm-up rates", "err", err)
		return fmt.Errorf("warm-up rates: %w", err)
	}

	for _, c := range res.Crypto {
		if c.Rate == nil {
			s.logger.Warn("missing rate for asset", "asset", c.Asset.Flat())
		}
	}
	for _, f := range res.Fiat {
		if f.Rate == nil {
			s.logger.Warn("missing rate for fiat", "fiat", f.FiatCode)
		}
	}

	requested := len(req.Crypto) + len(req.Fiat)
	resolved := res.Resolved()
	s.logger.Debug("warm-up done", "requested", requested, "resolved", resolved)
	if resolved == 0 {
		return fmt.Errorf("warm-up resolved nothing out of %d", requested)
	}
	return nil
}
