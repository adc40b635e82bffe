package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/moodtunes/moodtunes-backend/internal/db"
	"github.com/moodtunes/moodtunes-backend/internal/dialogue/tuning"
	"github.com/moodtunes/moodtunes-backend/internal/observability"
	"github.com/moodtunes/moodtunes-backend/internal/platform/envutil"
	"github.com/moodtunes/moodtunes-backend/internal/platform/logger"
	"github.com/moodtunes/moodtunes-backend/internal/server"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Srv      *server.Server
	Router   *gin.Engine
	Cfg      Config
	Tuning   *tuning.Config
	Repos    Repos
	Clients  Clients
	Services Services

	closeDB      func() error
	otelShutdown func(context.Context) error
	cancel       context.CancelFunc
}

func New() (*App, error) {
	logMode := envutil.String("LOG_MODE", "development")
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	tun, err := tuning.Load(cfg.TuningPath)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("load dialogue tuning: %w", err)
	}

	observability.Init(log)
	otelShutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: cfg.ServiceName,
		Environment: cfg.Environment,
		Version:     cfg.Version,
	})

	theDB, closeDB, err := openStorage(cfg, log)
	if err != nil {
		log.Sync()
		return nil, err
	}

	clientset, err := wireClients(log, cfg)
	if err != nil {
		_ = closeDB()
		log.Sync()
		return nil, err
	}

	reposet := wireRepos(theDB, log)

	serviceset, err := wireServices(theDB, log, tun, reposet, clientset)
	if err != nil {
		clientset.Close()
		_ = closeDB()
		log.Sync()
		return nil, err
	}

	handlerset := wireHandlers(log, serviceset)
	srv := wireServer(cfg, log, handlerset)

	return &App{
		Log:          log,
		DB:           theDB,
		Srv:          srv,
		Router:       srv.Engine,
		Cfg:          cfg,
		Tuning:       tun,
		Repos:        reposet,
		Clients:      clientset,
		Services:     serviceset,
		closeDB:      closeDB,
		otelShutdown: otelShutdown,
	}, nil
}

func openStorage(cfg Config, log *logger.Logger) (*gorm.DB, func() error, error) {
	switch cfg.StorageDriver {
	case DriverSQLite:
		svc, err := db.NewSQLiteService(log)
		if err != nil {
			return nil, nil, fmt.Errorf("init sqlite: %w", err)
		}
		if err := svc.Migrate(); err != nil {
			return nil, nil, fmt.Errorf("sqlite migrate: %w", err)
		}
		return svc.DB(), svc.Close, nil
	default:
		svc, err := db.NewPostgresService(log)
		if err != nil {
			return nil, nil, fmt.Errorf("init postgres: %w", err)
		}
		if err := svc.Migrate(); err != nil {
			return nil, nil, fmt.Errorf("postgres migrate: %w", err)
		}
		return svc.DB(), svc.Close, nil
	}
}

// Start launches the background pieces: the session sweeper, the metrics
// endpoint, and the gauge collectors. Safe to call once; Run still serves
// the API.
func (a *App) Start() {
	if a == nil || a.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	if a.Services.Sweeper != nil {
		a.Services.Sweeper.Start(ctx)
	}

	if m := observability.Current(); m != nil {
		m.StartServer(ctx, a.Log, a.Cfg.MetricsAddr)
		m.StartDBStatsCollector(ctx, a.Log, a.DB)
		m.StartSessionStateCollector(ctx, a.Log, a.DB)
		if a.Cfg.RedisAddr != "" {
			m.StartRedisCollector(ctx, a.Log, a.Cfg.RedisAddr)
		}
	}
}

func (a *App) Run(addr string) error {
	if a == nil || a.Srv == nil {
		return fmt.Errorf("app not initialized")
	}
	if addr == "" {
		addr = a.Cfg.HTTPAddr
	}
	return a.Srv.Run(addr)
}

// Shutdown drains the HTTP server. Background workers stop via Close.
func (a *App) Shutdown(ctx context.Context) error {
	if a == nil {
		return nil
	}
	return a.Srv.Shutdown(ctx)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.Clients.Close()
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = a.otelShutdown(ctx)
		cancel()
	}
	if a.closeDB != nil {
		_ = a.closeDB()
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
