package app

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NastyaGoryachaya/edge-rates-service/internal/domain"
	"github.com/NastyaGoryachaya/edge-rates-service/internal/scheduler"
	ratesvc "github.com/NastyaGoryachaya/edge-rates-service/internal/service/rates"
)

// apiStub - находит любой крипто-курс
type apiStub struct{}

func (apiStub) Name() string      { return "api-stub" }
func (apiStub) Type() domain.Tier { return domain.TierAPI }
func (apiStub) GetCryptoRates(_ context.Context, req domain.CryptoRequest) (domain.RateMap, error) {
	out := make(domain.RateMap, len(req.Queries))
	for key := range req.Queries {
		out[key] = 100
	}
	return out, nil
}

// memoryStub - пустой кэш с медленной записью
type memoryStub struct{ written atomic.Int64 }

func (*memoryStub) Name() string      { return "memory-stub" }
func (*memoryStub) Type() domain.Tier { return domain.TierMemory }
func (*memoryStub) GetCryptoRates(context.Context, domain.CryptoRequest) (domain.RateMap, error) {
	return domain.RateMap{}, nil
}
func (m *memoryStub) UpdateRates(context.Context, domain.RateBatch) error {
	time.Sleep(5 * time.Millisecond)
	m.written.Add(1)
	return nil
}

// resolveTask - каждый тик разрешает один bitcoin
type resolveTask struct {
	engine   *ratesvc.Engine
	resolved atomic.Int64
}

func (*resolveTask) Name() string { return "resolve" }
func (r *resolveTask) Run(ctx context.Context) error {
	now := time.Now().UTC()
	q := domain.CryptoQuery{Asset: domain.AssetKey{ChainID: "bitcoin"}, At: now}
	res, err := r.engine.Resolve(ctx, domain.Batch{
		TargetFiat: domain.SettlementFiat,
		Now:        now,
		Crypto:     []domain.CryptoQuery{q},
	})
	if err != nil {
		return err
	}
	// после отмены ctx движок не доходит до api и ничего не пишет
	if res.Resolved() > 0 {
		r.resolved.Add(1)
	}
	return nil
}

// После Shutdown все write-back, запущенные планировщиками, завершены
func TestShutdown_WaitsSchedulersBeforeWriteBack(t *testing.T) {
	log := slog.Default()
	mem := &memoryStub{}
	engine := ratesvc.NewEngine(ratesvc.NewRegistry(apiStub{}, mem), log)
	task := &resolveTask{engine: engine}

	a := &App{log: log, engine: engine}
	a.cfg.Server.ShutdownTimeout = 5 * time.Second
	a.schedulers = []*scheduler.Scheduler{
		scheduler.NewScheduler(task, time.Millisecond, log),
		scheduler.NewScheduler(task, time.Millisecond, log),
	}

	ctx, cancel := context.WithCancel(context.Background())
	a.startSchedulers(ctx)
	require.Eventually(t, func() bool { return task.resolved.Load() >= 4 }, time.Second, time.Millisecond)

	cancel()
	require.NoError(t, a.Shutdown(context.Background()))

	assert.Equal(t, task.resolved.Load(), mem.written.Load())
}

func TestWaitGroup(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.False(t, waitGroup(ctx, &wg))

	wg.Done()
	assert.True(t, waitGroup(context.Background(), &wg))
}
