package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"shop/api"
	itemapp "shop/application/item"
	memberapp "shop/application/member"
	orderapp "shop/application/order"
	"shop/config"
	"shop/infrastructure/cache"
	"shop/infrastructure/persistence/mysql"
	"shop/pkg/logger"

	"go.uber.org/zap"
)

// App 应用程序结构体
type App struct {
	cfg       *config.Config
	server    *http.Server
	pageCache *cache.PageCache
}

// NewApp wires configuration, database, cache, services and HTTP routes.
func NewApp(configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if err := logger.Init(&cfg.Log, cfg.App.Env); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	dbCfg := &mysql.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        cfg.Database.LogLevel,
	}
	db, err := dbCfg.Connect()
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := mysql.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	var pageCache *cache.PageCache
	if cfg.Cache.Enabled {
		pageCache, err = cache.NewPageCache(&cfg.Cache)
		if err != nil {
			return nil, fmt.Errorf("init cache: %w", err)
		}
		logger.Info("DTO page cache enabled", zap.String("addr", cfg.Cache.Addr))
	}

	memberRepo := mysql.NewMemberRepository(db)
	itemRepo := mysql.NewItemRepository(db)
	orderRepo := mysql.NewOrderRepository(db, cfg.Database.BatchFetchSize)
	queryRepo := mysql.NewOrderQueryRepository(db)

	memberService := memberapp.NewApplicationService(memberRepo, db)
	itemService := itemapp.NewApplicationService(itemRepo, db)
	orderService := orderapp.NewApplicationService(orderRepo, memberRepo, itemRepo, db, pageCache)
	queryService := orderapp.NewQueryService(orderRepo, queryRepo, db, pageCache)

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("unwrap sql.DB: %w", err)
	}

	router := api.NewRouter(cfg, sqlDB, memberService, itemService, orderService, queryService)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return &App{cfg: cfg, server: server, pageCache: pageCache}, nil
}

// Run starts the HTTP server and blocks until shutdown completes.
func (a *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			zap.String("addr", a.server.Addr),
			zap.String("env", a.cfg.App.Env))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if a.pageCache != nil {
		if err := a.pageCache.Close(); err != nil {
			logger.Warn("cache close failed", zap.Error(err))
		}
	}
	_ = logger.Sync()
	logger.Info("server stopped")
	return nil
}
