package adapter

import (
	"context"
	"fmt"
	"strings"

	"github.com/NastyaGoryachaya/edge-rates-service/internal/bot"
	"github.com/NastyaGoryachaya/edge-rates-service/internal/domain"
	errs "github.com/NastyaGoryachaya/edge-rates-service/internal/errors"
	"github.com/NastyaGoryachaya/edge-rates-service/internal/service/rates"
)

// serviceRatesReader — адаптер, который превращает сервис курсов в интерфейс бота RatesReader.

type serviceRatesReader struct{ svc rates.Service }

// NewRatesReader — конструктор адаптера над сервисом курсов.
func NewRatesReader(svc rates.Service) bot.RatesReader {
	return serviceRatesReader{svc: svc}
}

// GetCryptoRate — батч из одного актива в USD
func (a serviceRatesReader) GetCryptoRate(ctx context.Context, flatAsset, isoDate string) (bot.RateDTO, error) {
	key, err := domain.ParseAssetKey(flatAsset)
	if err != nil {
		return bot.RateDTO{}, err
	}
	res, err := a.svc.GetRates(ctx, rates.Request{
		TargetFiat: domain.SettlementFiat,
		Crypto:     []rates.CryptoInput{{IsoDate: isoDate, Asset: key}},
	})
	if err != nil {
		return bot.RateDTO{}, err
	}
	if len(res.Crypto) != 1 {
		return bot.RateDTO{}, fmt.Errorf("%w: expected 1 crypto rate, got %d", errs.ErrInternal, len(res.Crypto))
	}
	it := res.Crypto[0]
	return bot.RateDTO{Label: it.Asset.Flat(), IsoDate: it.At, Rate: it.Rate}, nil
}

// GetFiatRate — батч из одной фиатной валюты в USD
func (a serviceRatesReader) GetFiatRate(ctx context.Context, fiatCode, isoDate string) (bot.RateDTO, error) {
	res, err := a.svc.GetRates(ctx, rates.Request{
		TargetFiat: domain.SettlementFiat,
		Fiat:       []rates.FiatInput{{IsoDate: isoDate, FiatCode: strings.TrimSpace(fiatCode)}},
	})
	if err != nil {
		return bot.RateDTO{}, err
	}
	if len(res.Fiat) != 1 {
		return bot.RateDTO{}, fmt.Errorf("%w: expected 1 fiat rate, got %d", errs.ErrInternal, len(res.Fiat))
	}
	it := res.Fiat[0]
	return bot.RateDTO{Label: it.FiatCode, IsoDate: it.At, Rate: it.Rate}, nil
}
