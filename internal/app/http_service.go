package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/relief-next/internal/logger"
	"github.com/relief-next/internal/provider"
	"github.com/relief-next/internal/router"
)

const httpShutdownTimeout = 10 * time.Second

// HTTPService HTTP API 子服务
type HTTPService struct {
	server *http.Server
}

// NewHTTPService 创建 HTTP 服务
func NewHTTPService(container *provider.Container) *HTTPService {
	engine := router.New(container)
	addr := container.Cfg.Server.Host + ":" + container.Cfg.Server.Port
	return &HTTPService{
		server: &http.Server{
			Addr:     addr,
			Handler:  engine,
			ErrorLog: logger.StdLogger(),
		},
	}
}

// Name 服务名称
func (s *HTTPService) Name() string {
	return "http"
}

// Start 启动监听
func (s *HTTPService) Start() error {
	logger.Infow("http_listening", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop 优雅停机
func (s *HTTPService) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), httpShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}
