package domain

import (
	"time"

	"github.com/NastyaGoryachaya/edge-rates-service/internal/pkg/bucket"
)

// Tier - уровень разрешения курсов, опрашиваются строго в порядке Tiers
type Tier string

const (
	TierMemory Tier = "memory"
	TierDB     Tier = "db"
	TierAPI    Tier = "api"
)

var Tiers = []Tier{TierMemory, TierDB, TierAPI}

// CryptoQuery - курс актива на момент At
type CryptoQuery struct {
	Asset AssetKey
	At    time.Time
}

// Key - идентичность запроса внутри батча: isoDate + "_" + flat(asset)
func (q CryptoQuery) Key() string {
	return bucket.Format(q.At) + KeySeparator + q.Asset.Flat()
}

// FiatQuery - курс фиатной валюты на момент At
type FiatQuery struct {
	FiatCode string
	At       time.Time
}

func (q FiatQuery) Key() string {
	return bucket.Format(q.At) + KeySeparator + q.FiatCode
}

// CryptoRate - запрос + найденный курс (nil — не найден)
type CryptoRate struct {
	CryptoQuery
	Rate *float64
}

type FiatRate struct {
	FiatQuery
	Rate *float64
}

// CryptoQueries / FiatQueries — рабочие множества, ключ — Key() запроса
type CryptoQueries map[string]CryptoQuery

type FiatQueries map[string]FiatQuery

// RateMap - найденные курсы по ключу запроса
type RateMap map[string]float64

// Batch - нормализованный запрос на разрешение курсов
type Batch struct {
	TargetFiat string
	Now        time.Time
	Crypto     []CryptoQuery
	Fiat       []FiatQuery
}

// Result - ответ в том же порядке и той же мощности, что и Batch
type Result struct {
	TargetFiat string
	Crypto     []CryptoRate
	Fiat       []FiatRate
}

// Resolved - сколько записей получили курс
func (r Result) Resolved() int {
	n := 0
	for _, c := range r.Crypto {
		if c.Rate != nil {
			n++
		}
	}
	for _, f := range r.Fiat {
		if f.Rate != nil {
			n++
		}
	}
	return n
}

// CryptoRequest / FiatRequest — то, что провайдер получает от движка:
// только ещё не найденные запросы
type CryptoRequest struct {
	TargetFiat string
	Now        time.Time
	Queries    CryptoQueries
}

type FiatRequest struct {
	TargetFiat string
	Now        time.Time
	Queries    FiatQueries
}

// RateBatch - найденные курсы (в SettlementFiat) для записи в кэш/БД
type RateBatch struct {
	Now    time.Time
	Crypto []CryptoRate
	Fiat   []FiatRate
}

func (b RateBatch) Empty() bool {
	return len(b.Crypto) == 0 && len(b.Fiat) == 0
}

// Append - добавляет курсы другого батча (Now не меняется)
func (b *RateBatch) Append(o RateBatch) {
	b.Crypto = append(b.Crypto, o.Crypto...)
	b.Fiat = append(b.Fiat, o.Fiat...)
}

// TokenInfo - как внешний API называет актив
type TokenInfo struct {
	ProviderID  string
	DisplayName string
}

// TokenMap - плоский ключ актива -> идентификатор у конкретного провайдера
type TokenMap map[string]TokenInfo
