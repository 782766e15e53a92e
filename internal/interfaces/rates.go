//go:generate mockgen -source=rates.go -destination=mocks/rates.go -package=mocks

package interfaces

import (
	"context"

	"github.com/NastyaGoryachaya/edge-rates-service/internal/domain"
)

// Provider — источник курсов одного уровня (memory, db, api).
// Возможности провайдера определяются тем, какие из интерфейсов ниже он реализует.
type Provider interface {
	Name() string
	Type() domain.Tier
}

// CryptoRater — ищет курсы активов. Возвращает только найденное,
// отсутствие курса не ошибка.
type CryptoRater interface {
	Provider
	GetCryptoRates(ctx context.Context, req domain.CryptoRequest) (domain.RateMap, error)
}

// FiatRater — ищет курсы фиатных валют.
type FiatRater interface {
	Provider
	GetFiatRates(ctx context.Context, req domain.FiatRequest) (domain.RateMap, error)
}

// RateUpdater — принимает найденные более медленными уровнями курсы (write-back).
type RateUpdater interface {
	Provider
	UpdateRates(ctx context.Context, batch domain.RateBatch) error
}

// RateProvider — провайдер со всеми возможностями (кэши и БД).
type RateProvider interface {
	CryptoRater
	FiatRater
	RateUpdater
}

// Resolver — разрешает нормализованный батч целиком.
type Resolver interface {
	Resolve(ctx context.Context, batch domain.Batch) (domain.Result, error)
}
