package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/securecookie"
	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/learntube/internal/browse"
	"github.com/MrSnakeDoc/learntube/internal/catalog"
	"github.com/MrSnakeDoc/learntube/internal/config"
	"github.com/MrSnakeDoc/learntube/internal/httpserver"
	"github.com/MrSnakeDoc/learntube/internal/httpserver/deps"
	"github.com/MrSnakeDoc/learntube/internal/logger"
	"github.com/MrSnakeDoc/learntube/internal/owner"
	"github.com/MrSnakeDoc/learntube/internal/redis"
	"github.com/MrSnakeDoc/learntube/internal/scheduler"
	"github.com/MrSnakeDoc/learntube/internal/sources/seed"
	"github.com/MrSnakeDoc/learntube/internal/store"
	"github.com/MrSnakeDoc/learntube/internal/store/memory"
	redisstore "github.com/MrSnakeDoc/learntube/internal/store/redis"
	"github.com/MrSnakeDoc/learntube/internal/utils"
	"github.com/MrSnakeDoc/learntube/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	browse      *browse.Registry
	resyncer    *scheduler.Resyncer
	collector   *scheduler.SessionCollector
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Storage backend - fail fast if redis is configured but unavailable
	var (
		backend     store.Store
		redisClient *goredis.Client
		viewCache   catalog.ViewCache
	)
	switch cfg.Storage {
	case config.StorageRedis:
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.New(context.Background(), redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			RedisDB:        cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient)
		if err != nil {
			loggerClient.Errorf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		loggerClient.Info("Redis initialized successfully")
		redisClient = client
		backend = redisstore.NewStore(client)
		if cfg.ViewCacheTTL > 0 {
			viewCache = redisstore.NewViewCache(client, cfg.ViewCacheTTL)
		}
	default:
		loggerClient.Warn("memory storage selected, catalog changes are lost on restart")
		backend = memory.New()
	}

	// Fallback catalog for absent keys
	fallback := catalog.DefaultSeed()
	if cfg.SeedFile != "" {
		s, err := seed.LoadFile(cfg.SeedFile)
		if err != nil {
			loggerClient.Warn("failed to load seed file, using built-in catalog",
				logger.String("file", cfg.SeedFile),
				logger.Error(err))
		} else {
			fallback = s
			loggerClient.Info("seed file loaded",
				logger.String("file", cfg.SeedFile),
				logger.Int("courses", len(s.Courses)),
				logger.Int("categories", len(s.Categories)))
		}
	}

	cat := catalog.New(catalog.Options{
		Store: backend,
		Log:   loggerClient.Named("catalog"),
		Seed:  &fallback,
		Cache: viewCache,
	})

	gate, err := owner.NewGate(owner.Options{
		Secret:      cfg.OwnerPassword,
		Digest:      cfg.OwnerPasswordHash,
		Diagnostics: cfg.DevMode,
	})
	if err != nil {
		panic(fmt.Sprintf("❌ FATAL: %v", err))
	}

	// One key signs both the owner session and the viewer cookie
	sessionKey := []byte(cfg.SessionKey)
	if len(sessionKey) == 0 {
		loggerClient.Warn("LEARNTUBE_SESSION_KEY not set, sessions reset on restart")
		sessionKey = securecookie.GenerateRandomKey(32)
	}
	ownerSessions, err := owner.NewSessions(owner.SessionOptions{
		Key:    sessionKey,
		Secure: cfg.SecureCookies,
	})
	if err != nil {
		panic(fmt.Sprintf("❌ FATAL: %v", err))
	}

	registry := browse.NewRegistry(cfg.SearchDebounce)

	// Create manual resync trigger channel
	resyncTrigger := make(chan struct{}, 1)

	resyncer := scheduler.NewResyncer(
		cat,
		loggerClient,
		cfg.ResyncInterval,
		resyncTrigger,
	)

	collector := scheduler.NewSessionCollector(
		registry,
		loggerClient,
		cfg.SessionGCInterval,
		cfg.SessionIdleTimeout,
	)

	d := deps.Deps{
		Logger:            loggerClient,
		StartTime:         time.Now(),
		Version:           version.Version,
		Commit:            version.Commit,
		BuildDate:         version.BuildDate,
		GoVersion:         version.GoVersion,
		TimeNow:           time.Now,
		AllowedHosts:      cfg.AllowedHosts,
		AllowedCIDRS:      cfg.AllowedCIDRS,
		TrustProxy:        cfg.TrustProxy,
		DevMode:           cfg.DevMode,
		Storage:           cfg.Storage,
		Store:             backend,
		RedisClient:       redisClient,
		Catalog:           cat,
		Browse:            registry,
		Gate:              gate,
		Sessions:          ownerSessions,
		ViewerCookie:      securecookie.New(sessionKey, nil),
		SecureCookies:     cfg.SecureCookies,
		LoginBurst:        cfg.LoginBurst,
		LoginRefillPerMin: cfg.LoginRefillPerMin,
		ResyncTrigger:     resyncTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		browse:      registry,
		resyncer:    resyncer,
		collector:   collector,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting learntube v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Info(version.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load the catalog and keep it in sync with the store
	a.resyncer.Start(ctx)
	a.logger.Info("catalog resyncer started",
		logger.Duration("interval", a.cfg.ResyncInterval))

	// Drop idle browse sessions
	a.collector.Start(ctx)
	a.logger.Info("session collector started",
		logger.Duration("idle", a.cfg.SessionIdleTimeout))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.resyncer.Stop()
	a.collector.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	a.browse.Close()

	if a.redisClient != nil {
		utils.MustClose(a.redisClient, "redis", a.logger)
		a.logger.Info("✅ Redis closed")
	}

	a.logger.Info("✅ learntube stopped cleanly")
	return nil
}
