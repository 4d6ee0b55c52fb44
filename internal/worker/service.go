package worker

import (
	"github.com/relief-next/internal/logger"
	"github.com/relief-next/internal/provider"
	"github.com/relief-next/internal/queue"

	"github.com/hibiken/asynq"
)

// Service 队列消费服务
type Service struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

// NewService 创建队列消费服务
func NewService(container *provider.Container) *Service {
	opt, cfg := queue.BuildServerConfig(&container.Cfg.Queue)
	server := asynq.NewServer(opt, cfg)

	mux := asynq.NewServeMux()
	NewConsumer(container).Register(mux)

	return &Service{server: server, mux: mux}
}

// Name 服务名称
func (s *Service) Name() string {
	return "worker"
}

// Start 启动消费循环
func (s *Service) Start() error {
	logger.Infow("worker_starting")
	return s.server.Run(s.mux)
}

// Stop 停止消费
func (s *Service) Stop() error {
	s.server.Shutdown()
	return nil
}
