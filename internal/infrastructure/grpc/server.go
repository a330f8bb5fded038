package grpc

import (
	"context"
	"fmt"
	"net"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/boring-ventures/minka-sub001/internal/config"
	apperrors "github.com/boring-ventures/minka-sub001/pkg/errors"
	"github.com/boring-ventures/minka-sub001/pkg/logger"
)

// Server exposes the standard gRPC health service for orchestrator health checks
type Server struct {
	config   *config.Config
	logger   *zap.Logger
	server   *grpc.Server
	health   *health.Server
	listener net.Listener
}

func NewServer(cfg *config.Config, log *zap.Logger) *Server {
	s := &Server{
		config: cfg,
		logger: log,
		health: health.NewServer(),
	}
	s.server = grpc.NewServer(grpc.ChainUnaryInterceptor(
		logger.NewGrpcUnaryServerInterceptor(log),
		apperrors.UnaryServerInterceptor(),
	))
	healthpb.RegisterHealthServer(s.server, s.health)
	s.health.SetServingStatus(cfg.Service.Name, healthpb.HealthCheckResponse_SERVING)
	return s
}

// Enabled reports whether a gRPC port is configured
func (s *Server) Enabled() bool {
	return s.config.Server.GRPC.Port != 0
}

func (s *Server) Start() error {
	addr := s.config.Server.GRPC.Address()

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	return s.Serve(listener)
}

// Serve accepts connections on listener until Shutdown
func (s *Server) Serve(listener net.Listener) error {
	s.listener = listener
	s.logger.Info("Starting gRPC server", zap.String("address", listener.Addr().String()))
	return s.server.Serve(listener)
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.health.Shutdown()
	s.server.GracefulStop()
	return nil
}
