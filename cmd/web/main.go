package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"notehub/internal/remote"
	"notehub/internal/web/adapters/cache"
	"notehub/internal/web/adapters/drafts"
	"notehub/internal/web/app/gate"
	httpServer "notehub/internal/web/app/http"
	"notehub/internal/web/app/http/middleware"
	"notehub/internal/web/app/services"
	"notehub/internal/web/config"
	draftsPort "notehub/internal/web/ports/drafts"
	"notehub/internal/web/resilience"
	"notehub/migrations"
	"notehub/pkg/db/postgres"
	"notehub/pkg/db/redis"
	"notehub/pkg/logger"
	"notehub/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "WEB_LOGGER_MODE"
	EnvLoggerLevel = "WEB_LOGGER_LEVEL"
	EnvFile        = "WEB_ENV_FILE"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrCreateRemoteClient   = "failed to create remote API client"
	ErrCreateRedisClient    = "failed to create Redis client"
	ErrConnectPostgres      = "failed to connect to Postgres"
	ErrApplyMigrations      = "failed to apply draft migrations"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "web service started"
	LogServiceShutdownDone = "web service shutdown complete"
	LogStoppingHTTP        = "stopping HTTP server"
	LogInitRemote          = "initializing remote API client"
	LogInitCache           = "initializing cache"
	LogInitDrafts          = "initializing draft store"
	LogInitServices        = "initializing services"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
	LogClosingRedis        = "closing Redis connection"
	LogClosingPostgres     = "closing Postgres connection"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.WithRequestID(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		envFile := os.Getenv(EnvFile)
		if envFile == "" {
			envFile = ".env"
		}

		cfg, err := config.Load(ctx, envFile)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitRemote, zap.String("base_url", cfg.Remote.BaseURL))
		api, err := remote.NewClient(cfg.Remote)
		if err != nil {
			log.Error(ctx, ErrCreateRemoteClient, zap.Error(err))
			exitCode = 1
			return
		}

		// Инициализация Redis
		log.Info(ctx, LogInitCache)
		redisClient, err := resilience.Connect(ctx,
			resilience.NewRetry("redis", resilience.DefaultRetryConfig()),
			func(ctx context.Context) (*goredis.Client, error) {
				return redis.NewClient(ctx, cfg.Redis)
			})
		if err != nil {
			log.Error(ctx, ErrCreateRedisClient, zap.Error(err))
			exitCode = 1
			return
		}
		redisCache := cache.NewRedisCache(redisClient, cfg.Cache.DefaultTTL)

		log.Info(ctx, LogInitDrafts, zap.String("backend", cfg.Drafts.Backend))
		var draftStore draftsPort.Store = drafts.NewRedisStore(redisClient)
		var db *postgres.Database
		if cfg.Drafts.Backend == config.DraftsBackendPostgres {
			dsn := cfg.Postgres.DSN()
			if err := postgres.MigrateFS(ctx, dsn, migrations.FS, migrations.DraftsDir); err != nil {
				log.Error(ctx, ErrApplyMigrations, zap.Error(err))
				exitCode = 1
				return
			}

			db, err = resilience.Connect(ctx,
				resilience.NewRetry("postgres", resilience.DefaultRetryConfig()),
				func(ctx context.Context) (*postgres.Database, error) {
					return postgres.New(ctx, dsn, cfg.Postgres.MinConns, cfg.Postgres.MaxConns)
				})
			if err != nil {
				log.Error(ctx, ErrConnectPostgres, zap.Error(err))
				exitCode = 1
				return
			}
			draftStore = drafts.NewPostgresStore(db.Pool())
		}

		log.Info(ctx, LogInitServices)
		remoteResilience := resilience.NewServiceResilience("remote")
		validator := services.NewValidator()

		userService := services.NewUserService(api, redisCache, remoteResilience,
			services.NewTokenHasher(cfg.Session.CacheKeySecret), validator, cfg.Cache.ProfileTTL)
		sessionService := services.NewSessionService(api, remoteResilience)
		authService := services.NewAuthService(api, userService, remoteResilience, validator)
		notesService := services.NewNotesService(api, redisCache, userService, draftStore,
			remoteResilience, validator, cfg.Cache.NotesTTL)
		draftService := services.NewDraftService(draftStore, userService, validator)

		log.Info(ctx, LogInitHTTPServer)
		app := fiber.New(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
		})

		httpServer.SetupRouter(app, httpServer.Dependencies{
			Gate:    gate.New(sessionService),
			Auth:    authService,
			Session: sessionService,
			Users:   userService,
			Notes:   notesService,
			Drafts:  draftService,
			Cookies: middleware.CookieOptions{Secure: cfg.Session.CookieSecure},
		})

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := app.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		hooks := []shutdown.Hook{
			// Остановка HTTP сервера.
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return app.ShutdownWithContext(ctx)
			},
			// Закрытие Redis соединения.
			func(ctx context.Context) error {
				log.Info(ctx, LogClosingRedis)
				return redisClient.Close()
			},
		}
		if db != nil {
			hooks = append(hooks, func(ctx context.Context) error {
				log.Info(ctx, LogClosingPostgres)
				db.Close(ctx)
				return nil
			})
		}

		shutdown.Wait(ctx, cfg.Shutdown.Timeout, hooks...)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
