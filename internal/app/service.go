package app

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/relief-next/internal/logger"
)

// Service 可托管的子服务
type Service interface {
	Name() string
	Start() error
	Stop() error
}

// Runner 子服务编排器
type Runner struct {
	services []Service
}

// NewRunner 创建编排器
func NewRunner(services ...Service) *Runner {
	return &Runner{services: services}
}

// Run 启动全部子服务并等待退出信号
func (r *Runner) Run() error {
	errCh := make(chan error, len(r.services))
	for _, svc := range r.services {
		svc := svc
		go func() {
			logger.Infow("service_starting", "service", svc.Name())
			if err := svc.Start(); err != nil {
				logger.Errorw("service_exited", "service", svc.Name(), "error", err)
				errCh <- err
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-quit:
		logger.Infow("shutdown_signal_received", "signal", sig.String())
	case err := <-errCh:
		runErr = err
	}

	for i := len(r.services) - 1; i >= 0; i-- {
		svc := r.services[i]
		if err := svc.Stop(); err != nil {
			logger.Warnw("service_stop_failed", "service", svc.Name(), "error", err)
		} else {
			logger.Infow("service_stopped", "service", svc.Name())
		}
	}
	return runErr
}
