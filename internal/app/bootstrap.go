package app

import (
	"os"

	"github.com/relief-next/internal/cache"
	"github.com/relief-next/internal/config"
	"github.com/relief-next/internal/logger"
	"github.com/relief-next/internal/models"
	"github.com/relief-next/internal/provider"
	"github.com/relief-next/internal/worker"
)

// Bootstrap 初始化配置、日志、存储并装配容器
func Bootstrap() (*provider.Container, error) {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		return nil, err
	}
	if err := models.AutoMigrate(); err != nil {
		return nil, err
	}
	if err := models.InitDefaultAdmin(os.Getenv("RELIEF_ADMIN_EMAIL"), os.Getenv("RELIEF_ADMIN_PASSWORD")); err != nil {
		return nil, err
	}
	if err := models.SeedSupplyTypes(); err != nil {
		return nil, err
	}
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		return nil, err
	}

	return provider.NewContainer(cfg)
}

// Run 按模式启动应用
func Run(options Options) error {
	options = options.Normalize()

	container, err := Bootstrap()
	if err != nil {
		return err
	}
	defer container.Close()

	var services []Service
	switch options.Mode {
	case ModeAPI:
		services = append(services, NewHTTPService(container))
	case ModeWorker:
		services = append(services, worker.NewService(container))
	default:
		services = append(services, NewHTTPService(container), worker.NewService(container))
	}

	logger.Infow("app_starting", "mode", options.Mode)
	return NewRunner(services...).Run()
}
