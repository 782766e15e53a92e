package rates

import (
	"context"
	"errors"
	"log/slog"

	"github.com/NastyaGoryachaya/edge-rates-service/internal/domain"
	errs "github.com/NastyaGoryachaya/edge-rates-service/internal/errors"
	"github.com/NastyaGoryachaya/edge-rates-service/internal/interfaces"
)

// Бизнес-логика - нормализация батча и разрешение курсов

type Service interface {
	// GetRates — нормализует запрос и возвращает курсы для всего батча (возможно частично)
	GetRates(ctx context.Context, req Request) (domain.Result, error)
}

type service struct {
	resolver interfaces.Resolver
	limits   Limits
	clock    Clock
	logger   *slog.Logger
}

func NewService(resolver interfaces.Resolver, limits Limits, logger *slog.Logger) Service {
	return &service{
		resolver: resolver,
		limits:   limits,
		clock:    SystemClock(),
		logger:   logger,
	}
}

// NewServiceWithClock - Конструктор для тестов: позволяет подставить фиксированные "часы".
func NewServiceWithClock(resolver interfaces.Resolver, limits Limits, clk Clock, logger *slog.Logger) Service {
	return &service{
		resolver: resolver,
		limits:   limits,
		clock:    clk,
		logger:   logger,
	}
}

func (s *service) GetRates(ctx context.Context, req Request) (domain.Result, error) {
	batch, err := Normalize(req, s.clock.Now(), s.limits)
	if err != nil {
		s.logger.Debug("request rejected", "err", err)
		return domain.Result{}, err
	}

	res, err := s.resolver.Resolve(ctx, batch)
	if err != nil {
		if errors.Is(err, errs.ErrStoreUnavailable) {
			s.logger.Error("store unavailable", "err", err)
			return domain.Result{}, err
		}
		s.logger.Error("failed to resolve rates", "err", err)
		return domain.Result{}, errors.Join(errs.ErrInternal, err)
	}
	return res, nil
}
