package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"creativesync/internal/adapter/gemini"
	httpadapter "creativesync/internal/adapter/http"
	"creativesync/internal/adapter/memory"
	"creativesync/internal/adapter/postgres"
	"creativesync/internal/adapter/redis"
	"creativesync/internal/adapter/usecase"
	"creativesync/internal/adapter/ws"
	"creativesync/internal/config"
	"creativesync/internal/config/configs"
	"creativesync/internal/core/port"
	"creativesync/internal/db"
)

const shutdownTimeout = 5 * time.Second

// App holds the wired components of one dashboard process.
type App struct {
	cfg    config.Config
	logger *zap.Logger

	KV        port.KVStore
	Gemini    *gemini.Client
	Drafts    *usecase.DraftSlot
	Notifier  *usecase.Notifier
	Simulator *usecase.Simulator
	Campaigns *usecase.CampaignStore
	Generator *usecase.Generator
	Variants  *usecase.Variants
	Chat      *usecase.Chat
	Exporter  *usecase.Exporter
	Settings  *usecase.Settings
	Trends    *usecase.Trends
	Hub       *ws.Hub

	closers []func()
}

// New opens the configured store, restores persisted state and wires every
// component. Call Close when done.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	a := &App{cfg: cfg, logger: logger}
	ok := false
	defer func() {
		if !ok {
			a.Close()
		}
	}()

	if err := a.openStore(ctx); err != nil {
		return nil, err
	}

	var err error
	if a.Gemini, err = gemini.New(cfg.Gemini, logger.Named("gemini")); err != nil {
		return nil, err
	}

	seed := cfg.Sim.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rnd := usecase.NewRandom(seed)
	clock := usecase.SystemClock{}

	a.Drafts = &usecase.DraftSlot{}
	a.Notifier = usecase.NewNotifier(clock)
	a.Simulator = usecase.NewSimulator(rnd, clock, cfg.Sim.Interval, logger.Named("simulator"))
	a.Campaigns = usecase.NewCampaignStore(a.KV, a.Drafts, a.Simulator, a.Notifier, rnd, clock, logger.Named("campaigns"))
	a.Generator = usecase.NewGenerator(a.Gemini, a.Drafts, rnd, clock, logger.Named("generator"))
	a.Variants = usecase.NewVariants(a.Gemini, a.Drafts, a.Notifier, rnd, clock, cfg.Sim.VariantPacing, logger.Named("variants"))
	a.Exporter = usecase.NewExporter(a.Campaigns, a.Simulator, a.Drafts, clock)
	a.Settings = usecase.NewSettings(a.KV, a.Gemini, logger.Named("settings"))
	if a.Chat, err = usecase.NewChat(a.Gemini, a.Campaigns, a.Simulator, clock, logger.Named("chat")); err != nil {
		return nil, err
	}
	if a.Trends, err = usecase.NewTrends(a.Notifier, clock); err != nil {
		return nil, err
	}
	a.Hub = ws.NewHub(a.Simulator, logger.Named("ws"))
	a.Simulator.Subscribe(a.Hub.Publish)

	if err = a.Campaigns.Load(ctx); err != nil {
		return nil, err
	}
	if err = a.restoreAPIKey(ctx); err != nil {
		return nil, err
	}

	ok = true
	return a, nil
}

func (a *App) openStore(ctx context.Context) error {
	switch a.cfg.Store.Backend {
	case configs.BackendRedis:
		client, err := db.NewRedisClient(ctx, a.cfg.Redis)
		if err != nil {
			return fmt.Errorf("redis connection: %w", err)
		}
		a.closers = append(a.closers, func() { _ = client.Close() })
		a.KV = redis.NewKVStore(client, a.cfg.Redis.KeyPrefix)

	case configs.BackendPostgres:
		if a.cfg.Psql.RunMigrations {
			if err := db.Migrate(a.cfg.Psql.Addr.String()); err != nil {
				return fmt.Errorf("migrations: %w", err)
			}
			a.logger.Info("migrations applied successfully")
		}
		pool, err := db.NewPostgresPool(ctx, a.cfg.Psql)
		if err != nil {
			return fmt.Errorf("database connection: %w", err)
		}
		sqlDB := db.SQLDB(pool)
		a.closers = append(a.closers, func() {
			_ = sqlDB.Close()
			pool.Close()
		})
		a.KV = postgres.NewKVStore(sqlDB)

	default:
		a.KV = memory.NewKVStore()
	}
	a.logger.Info("store opened", zap.String("backend", a.cfg.Store.Backend))
	return nil
}

// restoreAPIKey prefers a key saved from the settings panel over the
// configured one.
func (a *App) restoreAPIKey(ctx context.Context) error {
	key, found, err := a.Settings.StoredAPIKey(ctx)
	if err != nil {
		return err
	}
	if !found {
		if !a.Gemini.Configured() {
			a.logger.Warn("no gemini api key, running in demo mode")
		}
		return nil
	}
	return a.Gemini.UpdateAPIKey(key)
}

// Handler returns the HTTP API.
func (a *App) Handler() http.Handler {
	return httpadapter.NewHandler(httpadapter.Services{
		Generator:     a.Generator,
		Variants:      a.Variants,
		Campaigns:     a.Campaigns,
		Drafts:        a.Drafts,
		Metrics:       a.Simulator,
		Chat:          a.Chat,
		Export:        a.Exporter,
		Settings:      a.Settings,
		Trends:        a.Trends,
		Notifications: a.Notifier,
		Stream:        a.Hub,
		AIReady:       a.Gemini.Configured,
	}, a.cfg.HTTP.AllowedOrigins, a.logger.Named("http")).Router()
}

// Run serves HTTP and drives the simulator and websocket hub until ctx is
// done, then shuts the server down gracefully.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.cfg.HTTP.Port),
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.Simulator.Run(ctx) })
	g.Go(func() error { return a.Hub.Run(ctx) })
	g.Go(func() error {
		a.logger.Info("server listening", zap.Int("port", int(a.cfg.HTTP.Port)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		a.logger.Info("server gracefully stopped")
		return nil
	})
	return g.Wait()
}

// Close releases the store connections.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
