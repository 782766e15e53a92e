package rates

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"math"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/NastyaGoryachaya/edge-rates-service/internal/domain"
	errs "github.com/NastyaGoryachaya/edge-rates-service/internal/errors"
	"github.com/NastyaGoryachaya/edge-rates-service/internal/interfaces"
	"github.com/NastyaGoryachaya/edge-rates-service/internal/pkg/bucket"
)

const defaultWriteBackTimeout = 30 * time.Second

// Engine - многоуровневое разрешение курсов: memory -> db -> api.
// После каждого провайдера множество ненайденных сужается; найденное медленными
// уровнями асинхронно записывается обратно в быстрые.
type Engine struct {
	registry         *Registry
	logger           *slog.Logger
	writeBackTimeout time.Duration

	wg sync.WaitGroup
}

type EngineOption func(*Engine)

// WithWriteBackTimeout - сколько может идти фоновая запись одного батча
func WithWriteBackTimeout(d time.Duration) EngineOption {
	return func(e *Engine) {
		if d > 0 {
			e.writeBackTimeout = d
		}
	}
}

func NewEngine(registry *Registry, logger *slog.Logger, opts ...EngineOption) *Engine {
	e := &Engine{
		registry:         registry,
		logger:           logger,
		writeBackTimeout: defaultWriteBackTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Resolve - разрешает батч. Частичный результат — не ошибка.
// ErrStoreUnavailable возвращается, только если хранилище упало и в итоге не найдено ничего.
func (e *Engine) Resolve(ctx context.Context, batch domain.Batch) (domain.Result, error) {
	cryptoLeft := make(domain.CryptoQueries, len(batch.Crypto))
	for _, q := range batch.Crypto {
		cryptoLeft[q.Key()] = q
	}
	fiatLeft := make(domain.FiatQueries, len(batch.Fiat))
	for _, q := range batch.Fiat {
		fiatLeft[q.Key()] = q
	}

	cryptoFound := make(domain.RateMap, len(cryptoLeft))
	fiatFound := make(domain.RateMap, len(fiatLeft))

	// валюта к самой себе
	for key, q := range fiatLeft {
		if q.FiatCode == batch.TargetFiat {
			fiatFound[key] = 1
			delete(fiatLeft, key)
		}
	}

	found := make(map[domain.Tier]domain.RateBatch, len(domain.Tiers))
	var storeErr error

tiers:
	for _, tier := range domain.Tiers {
		for _, reg := range e.registry.entries(tier) {
			if len(cryptoLeft) == 0 && len(fiatLeft) == 0 {
				break tiers
			}
			if err := ctx.Err(); err != nil {
				e.logger.Warn("resolution interrupted", slog.String("tier", string(tier)), slog.String("error", err.Error()))
				break tiers
			}

			crypto, fiat, err := e.callProvider(ctx, reg, batch, cryptoLeft, fiatLeft)
			if err != nil && storeErr == nil && errors.Is(err, errs.ErrStoreUnavailable) {
				storeErr = err
			}

			tb := found[tier]
			tb.Now = batch.Now
			tb.Crypto = append(tb.Crypto, absorbCrypto(batch, crypto, cryptoLeft, cryptoFound)...)
			tb.Fiat = append(tb.Fiat, absorbFiat(batch, fiat, fiatLeft, fiatFound)...)
			found[tier] = tb

			e.logger.Debug("provider done",
				slog.String("provider", reg.name),
				slog.String("tier", string(tier)),
				slog.Int("crypto_found", len(crypto)),
				slog.Int("fiat_found", len(fiat)),
				slog.Int("crypto_left", len(cryptoLeft)),
				slog.Int("fiat_left", len(fiatLeft)),
			)
		}
	}

	e.writeBack(ctx, batch, found)

	result := domain.Result{
		TargetFiat: batch.TargetFiat,
		Crypto:     make([]domain.CryptoRate, len(batch.Crypto)),
		Fiat:       make([]domain.FiatRate, len(batch.Fiat)),
	}
	for i, q := range batch.Crypto {
		result.Crypto[i] = domain.CryptoRate{CryptoQuery: q}
		if v, ok := cryptoFound[q.Key()]; ok {
			result.Crypto[i].Rate = &v
		}
	}
	for i, q := range batch.Fiat {
		result.Fiat[i] = domain.FiatRate{FiatQuery: q}
		if v, ok := fiatFound[q.Key()]; ok {
			result.Fiat[i].Rate = &v
		}
	}

	resolved := result.Resolved()
	if storeErr != nil && resolved == 0 && len(batch.Crypto)+len(batch.Fiat) > 0 {
		e.logger.Error("nothing resolved and a store is unavailable", slog.String("error", storeErr.Error()))
		return domain.Result{}, storeErr
	}

	e.logger.Info("batch resolved",
		slog.Int("requested", len(batch.Crypto)+len(batch.Fiat)),
		slog.Int("resolved", resolved),
	)
	return result, nil
}

// callProvider - крипто- и фиат-запросы одного провайдера идут параллельно.
// Ошибка провайдера = "ничего не нашёл": логируем и возвращаем то, что успело прийти.
func (e *Engine) callProvider(ctx context.Context, reg registered, batch domain.Batch,
	cryptoLeft domain.CryptoQueries, fiatLeft domain.FiatQueries) (crypto, fiat domain.RateMap, err error) {
	var g errgroup.Group

	if cr, ok := reg.provider.(interfaces.CryptoRater); ok && len(cryptoLeft) > 0 {
		req := domain.CryptoRequest{TargetFiat: batch.TargetFiat, Now: batch.Now, Queries: maps.Clone(cryptoLeft)}
		g.Go(func() error {
			res, err := cr.GetCryptoRates(ctx, req)
			if err != nil {
				return fmt.Errorf("%s crypto: %w", reg.name, err)
			}
			crypto = res
			return nil
		})
	}
	if fr, ok := reg.provider.(interfaces.FiatRater); ok && len(fiatLeft) > 0 {
		req := domain.FiatRequest{TargetFiat: batch.TargetFiat, Now: batch.Now, Queries: maps.Clone(fiatLeft)}
		g.Go(func() error {
			res, err := fr.GetFiatRates(ctx, req)
			if err != nil {
				return fmt.Errorf("%s fiat: %w", reg.name, err)
			}
			fiat = res
			return nil
		})
	}

	if err = g.Wait(); err != nil {
		e.logger.Warn("provider failed",
			slog.String("provider", reg.name),
			slog.String("tier", string(reg.tier)),
			slog.String("error", err.Error()),
		)
	}
	return crypto, fiat, err
}

// cryptoGroup - (bucket, актив). Все запросы группы получают один курс: в кэше/БД на группу одно поле.
func cryptoGroup(q domain.CryptoQuery, now time.Time) string {
	return bucket.FloorToBucket(q.At, now, bucket.Crypto) + domain.KeySeparator + q.Asset.Flat()
}

func fiatGroup(q domain.FiatQuery, now time.Time) string {
	return bucket.FloorToBucket(q.At, now, bucket.Fiat) + domain.KeySeparator + q.FiatCode
}

// absorbCrypto - переносит найденное провайдером в cryptoFound.
// Курс группы берётся у первого в порядке батча найденного запроса и достаётся всем
// ещё не найденным запросам группы. Для write-back возвращается одна запись на группу.
func absorbCrypto(batch domain.Batch, got domain.RateMap, left domain.CryptoQueries, found domain.RateMap) []domain.CryptoRate {
	if len(got) == 0 {
		return nil
	}
	groups := make(map[string]float64)
	var out []domain.CryptoRate
	for _, q := range batch.Crypto {
		key := q.Key()
		if _, ok := left[key]; !ok {
			continue
		}
		rate, ok := got[key]
		if !ok || !usable(rate) {
			continue
		}
		g := cryptoGroup(q, batch.Now)
		if _, seen := groups[g]; seen {
			continue
		}
		groups[g] = rate
		r := rate
		out = append(out, domain.CryptoRate{CryptoQuery: q, Rate: &r})
	}
	for key, q := range left {
		if rate, ok := groups[cryptoGroup(q, batch.Now)]; ok {
			found[key] = rate
			delete(left, key)
		}
	}
	return out
}

func absorbFiat(batch domain.Batch, got domain.RateMap, left domain.FiatQueries, found domain.RateMap) []domain.FiatRate {
	if len(got) == 0 {
		return nil
	}
	groups := make(map[string]float64)
	var out []domain.FiatRate
	for _, q := range batch.Fiat {
		key := q.Key()
		if _, ok := left[key]; !ok {
			continue
		}
		rate, ok := got[key]
		if !ok || !usable(rate) {
			continue
		}
		g := fiatGroup(q, batch.Now)
		if _, seen := groups[g]; seen {
			continue
		}
		groups[g] = rate
		r := rate
		out = append(out, domain.FiatRate{FiatQuery: q, Rate: &r})
	}
	for key, q := range left {
		if rate, ok := groups[fiatGroup(q, batch.Now)]; ok {
			found[key] = rate
			delete(left, key)
		}
	}
	return out
}

type writeJob struct {
	name    string
	updater interfaces.RateUpdater
	batch   domain.RateBatch
}

// writeBack - api -> db, db+api -> memory. Не блокирует ответ и не зависит от отмены запроса.
func (e *Engine) writeBack(ctx context.Context, batch domain.Batch, found map[domain.Tier]domain.RateBatch) {
	if batch.TargetFiat != domain.SettlementFiat {
		return
	}

	toDB := domain.RateBatch{Now: batch.Now}
	toDB.Append(found[domain.TierAPI])
	toMemory := domain.RateBatch{Now: batch.Now}
	toMemory.Append(found[domain.TierDB])
	toMemory.Append(found[domain.TierAPI])

	var jobs []writeJob
	if !toDB.Empty() {
		jobs = append(jobs, e.updaters(domain.TierDB, toDB)...)
	}
	if !toMemory.Empty() {
		jobs = append(jobs, e.updaters(domain.TierMemory, toMemory)...)
	}
	if len(jobs) == 0 {
		return
	}

	bg, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.writeBackTimeout)
	errCh := make(chan error, len(jobs))

	e.wg.Add(2)
	go func() {
		defer e.wg.Done()
		defer cancel()
		defer close(errCh)
		for _, job := range jobs {
			if err := job.updater.UpdateRates(bg, job.batch); err != nil {
				errCh <- fmt.Errorf("%s: %w", job.name, err)
				continue
			}
			e.logger.Debug("write-back done",
				slog.String("provider", job.name),
				slog.Int("crypto", len(job.batch.Crypto)),
				slog.Int("fiat", len(job.batch.Fiat)),
			)
		}
	}()
	go func() {
		defer e.wg.Done()
		for err := range errCh {
			e.logger.Warn("write-back failed", slog.String("error", err.Error()))
		}
	}()
}

func (e *Engine) updaters(tier domain.Tier, batch domain.RateBatch) []writeJob {
	var jobs []writeJob
	for _, reg := range e.registry.entries(tier) {
		if u, ok := reg.provider.(interfaces.RateUpdater); ok {
			jobs = append(jobs, writeJob{name: reg.name, updater: u, batch: batch})
		}
	}
	return jobs
}

// Wait - дождаться фоновых записей (при остановке сервиса и в тестах)
func (e *Engine) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func usable(rate float64) bool {
	return rate > 0 && !math.IsInf(rate, 0) && !math.IsNaN(rate)
}
