package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/coocood/freecache"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	goredis "github.com/redis/go-redis/v9"

	botpkg "github.com/NastyaGoryachaya/edge-rates-service/internal/bot"
	"github.com/NastyaGoryachaya/edge-rates-service/internal/bot/adapter"
	"github.com/NastyaGoryachaya/edge-rates-service/internal/config"
	"github.com/NastyaGoryachaya/edge-rates-service/internal/consts"
	"github.com/NastyaGoryachaya/edge-rates-service/internal/domain"
	"github.com/NastyaGoryachaya/edge-rates-service/internal/infra/providers/coingecko"
	"github.com/NastyaGoryachaya/edge-rates-service/internal/infra/providers/currencyconverter"
	"github.com/NastyaGoryachaya/edge-rates-service/internal/infra/providers/midgard"
	redisinfra "github.com/NastyaGoryachaya/edge-rates-service/internal/infra/redis"
	"github.com/NastyaGoryachaya/edge-rates-service/internal/repository/localcache"
	repopg "github.com/NastyaGoryachaya/edge-rates-service/internal/repository/postgres"
	"github.com/NastyaGoryachaya/edge-rates-service/internal/repository/rediscache"
	"github.com/NastyaGoryachaya/edge-rates-service/internal/scheduler"
	"github.com/NastyaGoryachaya/edge-rates-service/internal/service/crosschain"
	"github.com/NastyaGoryachaya/edge-rates-service/internal/service/docstore"
	ratesvc "github.com/NastyaGoryachaya/edge-rates-service/internal/service/rates"
	"github.com/NastyaGoryachaya/edge-rates-service/internal/service/tierstore"
	"github.com/NastyaGoryachaya/edge-rates-service/internal/service/warmup"
	"github.com/NastyaGoryachaya/edge-rates-service/internal/transport/httptransport"
)

type App struct {
	cfg config.Config
	log *slog.Logger

	db    *pgxpool.Pool
	redis *goredis.Client
	e     *echo.Echo
	serv  *http.Server

	engine *ratesvc.Engine
	rates  ratesvc.Service

	schedulers []*scheduler.Scheduler
	tasks      sync.WaitGroup

	bot *botpkg.Bot
}

func NewApp(ctx context.Context, cfg config.Config, log *slog.Logger, db *pgxpool.Pool) (*App, error) {
	app := &App{cfg: cfg, log: log, db: db}

	if cfg.Postgres.Migrate {
		if err := repopg.RunMigrations(ctx, db, log); err != nil {
			return nil, err
		}
	}

	registry, err := app.buildRegistry(ctx)
	if err != nil {
		return nil, err
	}
	log.Info("rate providers registered", slog.Any("tiers", registry.Names()))

	app.engine = ratesvc.NewEngine(registry, log, ratesvc.WithWriteBackTimeout(cfg.Rates.WriteBackTimeout))

	table := crosschain.NewTable(mappingFromConfig(cfg.CrossChain.Mapping, log))
	remapper := crosschain.NewRemapper(table, app.engine, log)

	app.rates = ratesvc.NewService(remapper, ratesvc.Limits{
		MaxCrypto:      cfg.Rates.MaxCrypto,
		MaxFiat:        cfg.Rates.MaxFiat,
		SettlementFiat: cfg.Rates.SettlementFiat,
	}, log)

	// Фоновые задачи: перезагрузка таблицы cross-chain и прогрев кэшей
	if cfg.Scheduler.Enabled {
		loader := crosschain.NewLoader(repopg.NewSettingsRepo(db), table, cfg.CrossChain.SettingsID, log)
		app.schedulers = append(app.schedulers, scheduler.NewScheduler(loader, cfg.CrossChain.ReloadInterval, log))

		if cfg.WarmUp.Enabled {
			wu, err := warmup.NewService(app.rates,
				consts.WarmUpAssets(cfg.WarmUp.Assets),
				consts.WarmUpFiat(cfg.WarmUp.Fiat),
				log)
			if err != nil {
				return nil, err
			}
			app.schedulers = append(app.schedulers, scheduler.NewScheduler(wu, cfg.WarmUp.Interval, log))
		}
	}

	app.e = httptransport.NewEcho(log, cfg.Server.BodyLimit)
	rh := httptransport.NewRatesHandler(log, app.rates, cfg.Server.RequestTimeout)
	rh.RegisterRoutes(app.e)

	app.serv = &http.Server{
		Addr:         cfg.Server.Addr,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		Handler:      app.e,
	}

	if cfg.Telegram.Enabled {
		// Если бот включён, отсутствие токена — ошибка конфигурации
		token := strings.TrimSpace(cfg.Telegram.Token)
		if token == "" {
			log.Error("telegram enabled but TELEGRAM_BOT_TOKEN is empty")
			return nil, errors.New("telegram token is empty")
		}

		botApp, err := botpkg.New(
			botpkg.Config{
				Token:           token,
				LongPollTimeout: cfg.Telegram.LongPollTimeout,
				RequestTimeout:  cfg.Server.RequestTimeout,
			},
			adapter.NewRatesReader(app.rates),
			log,
		)
		if err != nil {
			log.Error("telegram init failed", slog.String("error", err.Error()))
			return nil, err
		}
		app.bot = botApp
	}
	log.Info("app initialized",
		slog.Bool("telegram_enabled", cfg.Telegram.Enabled),
		slog.Bool("bot_attached", app.bot != nil),
		slog.Int("schedulers", len(app.schedulers)),
		slog.String("http_addr", cfg.Server.Addr),
	)
	return app, nil
}

// buildRegistry — провайдеры в порядке приоритета внутри уровня
func (a *App) buildRegistry(ctx context.Context) (*ratesvc.Registry, error) {
	cfg := a.cfg
	registry := ratesvc.NewRegistry()
	ns := cfg.Rates.CacheNamespace

	// memory: сначала кэш процесса, затем redis
	if cfg.LocalCache.Enabled {
		cache := freecache.NewCache(cfg.LocalCache.SizeBytes)
		registry.Register(tierstore.New("localcache", domain.TierMemory,
			localcache.NewStore(cache, ns, cfg.LocalCache.TTL), a.log))
	}
	if cfg.Redis.Enabled {
		client, err := redisinfra.NewClient(ctx, &cfg.Redis)
		if err != nil {
			return nil, err
		}
		a.redis = client
		registry.Register(tierstore.New("redis", domain.TierMemory,
			rediscache.NewStore(client, ns, cfg.Redis.TTL), a.log))
	}

	// db: документы по bucket'ам в postgres
	docs := docstore.New(repopg.NewDocumentRepo(a.db), cfg.Postgres.MaxWriteAttempts, a.log)
	registry.Register(tierstore.New("postgres", domain.TierDB, docs, a.log))

	// api: внешние источники
	if cfg.CoinGecko.Enabled {
		p, err := coingecko.New(cfg.CoinGecko, a.log)
		if err != nil {
			return nil, fmt.Errorf("coingecko: %w", err)
		}
		registry.Register(p)
	}
	if cfg.Midgard.Enabled {
		p, err := midgard.New(cfg.Midgard, a.log)
		if err != nil {
			return nil, fmt.Errorf("midgard: %w", err)
		}
		registry.Register(p)
	}
	if cfg.CurrencyConverter.Enabled {
		p, err := currencyconverter.New(cfg.CurrencyConverter, a.log)
		if err != nil {
			return nil, fmt.Errorf("currency converter: %w", err)
		}
		registry.Register(p)
	}
	return registry, nil
}

// mappingFromConfig — начальная таблица cross-chain; некорректные записи пропускаются
func mappingFromConfig(in map[string]config.CrossChainDestination, log *slog.Logger) crosschain.Mapping {
	out := make(crosschain.Mapping, len(in))
	for from, d := range in {
		dest := crosschain.Destination{DestChain: d.DestChain}
		if d.TokenID != "" {
			token := d.TokenID
			dest.TokenID = &token
		}
		if _, err := domain.ParseAssetKey(from); err != nil {
			log.Warn("cross-chain config entry skipped", slog.String("from", from), slog.String("error", err.Error()))
			continue
		}
		if err := dest.Asset().Validate(); err != nil {
			log.Warn("cross-chain config entry skipped", slog.String("from", from), slog.String("error", err.Error()))
			continue
		}
		out[from] = dest
	}
	return out
}

func (a *App) Run(ctx context.Context) error {
	a.startSchedulers(ctx)

	if a.bot != nil {
		a.log.Info("starting bot")
		a.bot.Start()
	}

	a.log.Info("starting server", slog.String("addr", a.cfg.Server.Addr))
	go func() {
		if err := a.e.StartServer(a.serv); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("http server error", slog.String("error", err.Error()))
		}
	}()
	<-ctx.Done()
	return a.Shutdown(context.Background())
}

// startSchedulers - задачи живут до отмены ctx, Shutdown дожидается их через tasks
func (a *App) startSchedulers(ctx context.Context) {
	for _, s := range a.schedulers {
		a.tasks.Add(1)
		go func() {
			defer a.tasks.Done()
			s.Start(ctx)
		}()
	}
}

func (a *App) Shutdown(ctx context.Context) error {
	shCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if a.e != nil {
		if err := a.e.Shutdown(shCtx); err != nil {
			a.log.Error("http shutdown error", slog.String("error", err.Error()))
		}
	}

	if a.bot != nil {
		a.bot.Stop()
	}

	// планировщики останавливаются по отмене ctx Run; пока они внутри Resolve, ждать write-back нельзя
	stopped := waitGroup(shCtx, &a.tasks)
	if !stopped {
		a.log.Warn("schedulers still running at shutdown")
	}

	// дожидаемся фоновой записи в кэши и БД
	if a.engine != nil && stopped {
		if err := a.engine.Wait(shCtx); err != nil {
			a.log.Warn("write-back still running at shutdown", slog.String("error", err.Error()))
		}
	}

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Error("redis close error", slog.String("error", err.Error()))
		}
	}

	if a.db != nil {
		a.db.Close()
	}

	a.log.Info("application stopped")
	return nil
}

// waitGroup - false, если ctx истёк раньше
func waitGroup(ctx context.Context, wg *sync.WaitGroup) bool {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-ctx.Done():
		return false
	}
}
