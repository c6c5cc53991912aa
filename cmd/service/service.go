package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"lunai-users/internal/cache"
	"lunai-users/internal/config"
	"lunai-users/internal/database"
	"lunai-users/internal/logging"
	"lunai-users/internal/middleware"
	"lunai-users/internal/router"
	"lunai-users/internal/service"
	"lunai-users/internal/worker"

	"github.com/getsentry/sentry-go"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// cmdMigrateDown 回滾所有 migration 後結束
const cmdMigrateDown = "migrate-down"

var (
	loadConfig      = config.Load
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	rollbackFn      = database.RollbackAll
	ensureAdmin     = service.EnsureAdmin
	sentryInit      = sentry.Init
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	newWorkerPool   = worker.NewPool
	exitFunc        = os.Exit
)

// configFile 預設讀取工作目錄下的 .env
func configFile() string {
	if p := os.Getenv("CONFIG_FILE"); p != "" {
		return p
	}
	return ".env"
}

func databaseURL(cfg *config.Config) string {
	if cfg.DatabaseURL != "" {
		return cfg.DatabaseURL
	}
	return database.BuildURL(cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBUser, cfg.DBPassword)
}

func newEcho(cfg *config.Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &CustomValidator{validator: validator.New()}
	e.Debug = !cfg.IsProduction()
	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(logging.RequestLogger())
	e.Use(middleware.Sentry())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	return e
}

func run(args []string) error {
	cfg, err := loadConfig(configFile())
	if err != nil {
		return fmt.Errorf("設定載入失敗: %w", err)
	}
	if err := logging.Setup(cfg.LogLevel, cfg.IsProduction()); err != nil {
		return fmt.Errorf("logger 設定失敗: %w", err)
	}

	dbURL := databaseURL(cfg)
	if len(args) > 0 && args[0] == cmdMigrateDown {
		if err := rollbackFn(dbURL); err != nil {
			return fmt.Errorf("RollbackAll 失敗: %w", err)
		}
		logrus.Info("all migrations rolled back")
		return nil
	}

	if cfg.SentryDSN != "" {
		if err := sentryInit(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.Env,
			AttachStacktrace: true,
		}); err != nil {
			return fmt.Errorf("Sentry 初始化失敗: %w", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	ctx := context.Background()
	db, err := newPgxPool(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %w", err)
	}
	defer db.Close()

	if cfg.RunMigrations {
		if err := runMigrationsFn(dbURL); err != nil {
			return fmt.Errorf("Migration 執行失敗: %w", err)
		}
	}

	var cch cache.Cache
	if cfg.RedisAddr != "" {
		rdb, err := newRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return fmt.Errorf("Redis 連線失敗: %w", err)
		}
		defer rdb.Close()
		cch = rdb
	} else {
		logrus.Warn("REDIS_ADDR not set, logout cannot revoke tokens")
	}

	wp := newWorkerPool(cfg.HashWorkers)
	defer wp.Stop()
	hasher := service.NewHasher(wp)

	sessions := service.NewSessions(cfg.JWTSecret, cfg.SessionTTL, cch)
	if !sessions.Enabled() {
		logrus.Info("JWT_SECRET not set, login will not issue tokens")
	}

	created, err := ensureAdmin(ctx, db, hasher, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("admin 帳號建立失敗: %w", err)
	}
	if created {
		logrus.WithField("email", cfg.AdminEmail).Info("bootstrap admin created")
	}

	e := newEcho(cfg)
	router.Setup(e, router.Deps{
		DB:           db,
		Cache:        cch,
		Hasher:       hasher,
		Sessions:     sessions,
		AuthRequired: cfg.AuthRequired,
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	logrus.WithFields(logrus.Fields{"addr": cfg.Addr(), "env": cfg.Env}).Info("server starting")
	return startServer(e, cfg.Addr())
}
