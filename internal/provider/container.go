package provider

import (
	"github.com/relief-next/internal/config"
	"github.com/relief-next/internal/models"
	"github.com/relief-next/internal/queue"
	"github.com/relief-next/internal/repository"
	"github.com/relief-next/internal/service"
)

// Container 依赖容器
// 仓库与服务在此统一装配，处理器与 worker 只依赖容器。
type Container struct {
	Cfg         *config.Config
	QueueClient *queue.Client

	UserRepo        repository.UserRepository
	StationRepo     repository.StationRepository
	InventoryRepo   repository.InventoryRepository
	ReservationRepo repository.ReservationRepository
	SupplyTypeRepo  repository.SupplyTypeRepository
	RefLookupRepo   repository.RefLookupRepository
	StatsRepo       repository.StatsRepository

	AuthService        *service.AuthService
	StationService     *service.StationService
	InventoryService   *service.InventoryService
	ReservationService *service.ReservationService
	SupplyTypeService  *service.SupplyTypeService
	StatsService       *service.StatsService
	Notifications      *service.NotificationService
}

// NewContainer 装配依赖容器
func NewContainer(cfg *config.Config) (*Container, error) {
	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		return nil, err
	}

	c := &Container{
		Cfg:         cfg,
		QueueClient: queueClient,
	}

	c.UserRepo = repository.NewUserRepository(models.DB)
	c.StationRepo = repository.NewStationRepository(models.DB)
	c.InventoryRepo = repository.NewInventoryRepository(models.DB)
	c.ReservationRepo = repository.NewReservationRepository(models.DB)
	c.SupplyTypeRepo = repository.NewSupplyTypeRepository(models.DB)
	c.RefLookupRepo = repository.NewRefLookupRepository(models.DB)
	c.StatsRepo = repository.NewStatsRepository(models.DB)

	c.Notifications = service.NewNotificationService(queueClient)
	c.AuthService = service.NewAuthService(c.UserRepo, &cfg.JWT)
	c.StationService = service.NewStationService(c.StationRepo, c.InventoryRepo, c.ReservationRepo, &cfg.Reservation)
	c.InventoryService = service.NewInventoryService(c.InventoryRepo, c.StationRepo, c.ReservationRepo, c.SupplyTypeRepo)
	c.ReservationService = service.NewReservationService(c.ReservationRepo, c.StationRepo, c.InventoryRepo, c.RefLookupRepo, c.Notifications)
	c.SupplyTypeService = service.NewSupplyTypeService(c.SupplyTypeRepo)
	c.StatsService = service.NewStatsService(c.StatsRepo, &cfg.Reservation)

	return c, nil
}

// Close 释放容器持有的资源
func (c *Container) Close() error {
	if c == nil || c.QueueClient == nil {
		return nil
	}
	return c.QueueClient.Close()
}
