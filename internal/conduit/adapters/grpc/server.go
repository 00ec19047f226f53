// Package grpc предоставляет gRPC сервер Conduit со стандартными сервисами health и reflection.
package grpc

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"conduit/internal/conduit/config"
	"conduit/pkg/logger"
)

// Константы для логирования.
const (
	LogServerStarting     = "Starting gRPC server"
	LogServerStarted      = "gRPC server started"
	LogServerStopping     = "Stopping gRPC server"
	LogServerStopped      = "gRPC server stopped"
	LogHealthStatusChange = "health status changed"
	LogHealthCheckFailed  = "health check failed"
	ErrServerStart        = "failed to start gRPC server"
)

// HealthCheck проверяет зависимости сервиса.
type HealthCheck func(ctx context.Context) error

// Server представляет gRPC сервер.
type Server struct {
	cfg    *config.GRPCConfig
	server *grpc.Server
	health *health.Server

	mu       sync.Mutex
	listener net.Listener
	serving  bool
}

// New создает новый экземпляр gRPC сервера.
func New(cfg *config.GRPCConfig) *Server {
	server := grpc.NewServer()
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(server, healthServer)
	reflection.Register(server)

	return &Server{
		cfg:    cfg,
		server: server,
		health: healthServer,
	}
}

// Start запускает gRPC сервер.
func (s *Server) Start(ctx context.Context) error {
	log := logger.Log(ctx)
	address := s.cfg.GetAddress()

	log.Info(ctx, LogServerStarting, zap.String("address", address))

	listener, err := net.Listen("tcp", address)
	if err != nil {
		log.Error(ctx, ErrServerStart, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrServerStart, err)
	}

	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()
	s.SetServing(ctx, true)

	go func() {
		if err := s.server.Serve(listener); err != nil {
			log.Error(ctx, ErrServerStart, zap.Error(err))
		}
	}()

	log.Info(ctx, LogServerStarted, zap.String("address", listener.Addr().String()))
	return nil
}

// Addr возвращает фактический адрес слушателя или пустую строку, если сервер не запущен.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// SetServing переключает статус сервиса в grpc.health.v1.Health.
func (s *Server) SetServing(ctx context.Context, serving bool) {
	s.mu.Lock()
	changed := s.serving != serving
	s.serving = serving
	s.mu.Unlock()

	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(config.ServiceName, status)

	if changed {
		logger.Log(ctx).Info(ctx, LogHealthStatusChange, zap.Stringer("status", status))
	}
}

// Watch периодически вызывает check и отражает результат в статусе health, пока ctx не отменен.
func (s *Server) Watch(ctx context.Context, check HealthCheck, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		err := check(ctx)
		if err != nil && ctx.Err() == nil {
			logger.Log(ctx).Warn(ctx, LogHealthCheckFailed, zap.Error(err))
		}
		if ctx.Err() != nil {
			return
		}
		s.SetServing(ctx, err == nil)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Stop останавливает gRPC сервер.
func (s *Server) Stop(ctx context.Context) {
	log := logger.Log(ctx)

	log.Info(ctx, LogServerStopping)
	s.health.Shutdown()
	s.server.GracefulStop()
	log.Info(ctx, LogServerStopped)
}
