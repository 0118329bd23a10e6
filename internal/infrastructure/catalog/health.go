package catalog

import (
	"context"
	"fmt"

	v1Grpc "github.com/DRSN-tech/catalog/internal/delivery/v1/grpc"
	"github.com/DRSN-tech/catalog/pkg/e"
	"github.com/jimlawless/whereami"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// HealthProbe опрашивает gRPC health-сервис catalog-сервиса.
type HealthProbe struct {
	conn   *grpc.ClientConn
	client healthpb.HealthClient
}

func NewHealthProbe(addr string) (*HealthProbe, error) {
	conn, err := grpc.NewClient(
		addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &HealthProbe{
		conn:   conn,
		client: healthpb.NewHealthClient(conn),
	}, nil
}

// Check возвращает ошибку, если catalog-сервис недоступен или не в статусе SERVING.
func (h *HealthProbe) Check(ctx context.Context) error {
	resp, err := h.client.Check(ctx, &healthpb.HealthCheckRequest{Service: v1Grpc.ServiceName})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), fmt.Errorf("%w: %w", e.ErrUpstreamUnavailable, err))
	}

	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return e.Wrap(whereami.WhereAmI(), fmt.Errorf("%w: status %s", e.ErrUpstreamUnavailable, resp.GetStatus()))
	}

	return nil
}

func (h *HealthProbe) Close() error {
	return h.conn.Close()
}
