package grpcx

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Register поднимает стандартный health-сервис: пробы платформы ходят в
// gRPC-порт так же, как у остальных сервисов.
func Register(grpcServer *grpc.Server) *health.Server {
	hs := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, hs)
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	return hs
}
