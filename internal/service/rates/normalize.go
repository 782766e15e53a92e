package rates

import (
	"fmt"
	"strings"
	"time"

	"github.com/NastyaGoryachaya/edge-rates-service/internal/domain"
	"github.com/NastyaGoryachaya/edge-rates-service/internal/pkg/bucket"
)

const (
	DefaultMaxCrypto = 100
	DefaultMaxFiat   = 256
)

// Limits - ограничения батча
type Limits struct {
	MaxCrypto      int
	MaxFiat        int
	SettlementFiat string
}

func DefaultLimits() Limits {
	return Limits{
		MaxCrypto:      DefaultMaxCrypto,
		MaxFiat:        DefaultMaxFiat,
		SettlementFiat: domain.SettlementFiat,
	}
}

// Request - входной батч в том виде, как его прислал клиент
type Request struct {
	TargetFiat string
	Crypto     []CryptoInput
	Fiat       []FiatInput
}

type CryptoInput struct {
	IsoDate string
	Asset   domain.AssetKey
}

type FiatInput struct {
	IsoDate  string
	FiatCode string
}

// Normalize - проверяет границы батча и проставляет значения по умолчанию.
// Отсутствующая дата — начало текущей минуты.
func Normalize(req Request, now time.Time, limits Limits) (domain.Batch, error) {
	if limits.MaxCrypto <= 0 {
		limits.MaxCrypto = DefaultMaxCrypto
	}
	if limits.MaxFiat <= 0 {
		limits.MaxFiat = DefaultMaxFiat
	}
	if limits.SettlementFiat == "" {
		limits.SettlementFiat = domain.SettlementFiat
	}

	if len(req.Crypto) > limits.MaxCrypto {
		return domain.Batch{}, invalid("crypto", "too many entries: %d > %d", len(req.Crypto), limits.MaxCrypto)
	}
	if len(req.Fiat) > limits.MaxFiat {
		return domain.Batch{}, invalid("fiat", "too many entries: %d > %d", len(req.Fiat), limits.MaxFiat)
	}

	target := strings.ToUpper(strings.TrimSpace(req.TargetFiat))
	if target == "" {
		target = limits.SettlementFiat
	}
	if target != limits.SettlementFiat {
		return domain.Batch{}, invalid("targetFiat", "unsupported target fiat %q, only %s is supported", req.TargetFiat, limits.SettlementFiat)
	}

	now = now.UTC()
	def := bucket.MinuteFloor(now)

	batch := domain.Batch{
		TargetFiat: target,
		Now:        now,
		Crypto:     make([]domain.CryptoQuery, 0, len(req.Crypto)),
		Fiat:       make([]domain.FiatQuery, 0, len(req.Fiat)),
	}

	for i, in := range req.Crypto {
		field := fmt.Sprintf("crypto[%d]", i)
		at, err := parseDate(in.IsoDate, def)
		if err != nil {
			return domain.Batch{}, invalid(field+".isoDate", "invalid date %q", in.IsoDate)
		}
		asset := in.Asset
		asset.ChainID = strings.TrimSpace(asset.ChainID)
		if err := asset.Validate(); err != nil {
			return domain.Batch{}, &ValidationError{Field: field + ".asset", Reason: err.Error(), Err: err}
		}
		batch.Crypto = append(batch.Crypto, domain.CryptoQuery{Asset: asset, At: at})
	}

	for i, in := range req.Fiat {
		field := fmt.Sprintf("fiat[%d]", i)
		at, err := parseDate(in.IsoDate, def)
		if err != nil {
			return domain.Batch{}, invalid(field+".isoDate", "invalid date %q", in.IsoDate)
		}
		code := strings.ToUpper(strings.TrimSpace(in.FiatCode))
		if code == "" {
			return domain.Batch{}, invalid(field+".fiatCode", "empty fiat code")
		}
		if strings.Contains(code, domain.KeySeparator) {
			return domain.Batch{}, invalid(field+".fiatCode", "fiat code %q contains %q", code, domain.KeySeparator)
		}
		batch.Fiat = append(batch.Fiat, domain.FiatQuery{FiatCode: code, At: at})
	}

	return batch, nil
}

func parseDate(s string, def time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	return bucket.Parse(s)
}
