package grpcserver

import (
	"net"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"max.ks1230/finances-ai/internal/logger"
)

// ReporterService is the health service name of the report consumer.
const ReporterService = "finances.Reporter"

type Server struct {
	server *grpc.Server
	health *health.Server
	lis    net.Listener
}

func New(addr string) (*Server, error) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Wrap(err, "cannot create server")
	}

	rpcServer := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(rpcServer, hs)
	hs.SetServingStatus(ReporterService, healthpb.HealthCheckResponse_NOT_SERVING)

	return &Server{
		server: rpcServer,
		health: hs,
		lis:    lis,
	}, nil
}

func (s *Server) Addr() net.Addr {
	return s.lis.Addr()
}

// SetServing flips the reporter status reported to health checks.
func (s *Server) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus(ReporterService, status)
}

func (s *Server) Serve() {
	logger.Info("gRPC server listening", zap.Any("addr", s.lis.Addr()))
	err := s.server.Serve(s.lis)
	if err != nil {
		logger.Error("failed to serve gRPC", zap.Error(err))
	}
}

func (s *Server) Shutdown() {
	s.health.Shutdown()
	s.server.GracefulStop()
	logger.Info("grpc server stopped")
}
