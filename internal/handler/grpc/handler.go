package grpc

import (
	"context"
	"errors"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/MKhiriev/go-gene-consent/internal/logger"
	"github.com/MKhiriev/go-gene-consent/internal/service"
)

// LedgerServiceName is the health-checked service name of the ledger node.
const LedgerServiceName = "geneconsent.Ledger"

const (
	defaultCheckInterval = 10 * time.Second
	checkTimeout         = 2 * time.Second
)

// Handler is the root gRPC transport handler.
//
// It serves the standard gRPC health protocol. The serving status of the
// ledger service follows a periodic check of the ledger state store, so
// orchestrators can take a node whose database is gone out of rotation.
type Handler struct {
	services *service.Services
	health   *health.Server
	interval time.Duration

	logger *logger.Logger
}

// NewHandler constructs a [Handler]. The ledger service starts as
// NOT_SERVING until the first successful check.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	hs := health.NewServer()
	hs.SetServingStatus(LedgerServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		services: services,
		health:   hs,
		interval: defaultCheckInterval,
		logger:   logger,
	}
}

// Register attaches the health service to s.
func (h *Handler) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, h.health)
}

// Watch checks the ledger until ctx is done, then marks every service as
// NOT_SERVING.
func (h *Handler) Watch(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	h.checkLedger(ctx)
	for {
		select {
		case <-ctx.Done():
			h.health.Shutdown()
			return
		case <-ticker.C:
			h.checkLedger(ctx)
		}
	}
}

// checkLedger lists one event; any failure other than cancellation makes the node
// NOT_SERVING.
func (h *Handler) checkLedger(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if _, err := h.services.LedgerService.Events(ctx, 0, 1); err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return
		}
		h.logger.Warn().Err(err).Str("func", "*Handler.checkLedger").Msg("ledger health check failed")
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	h.health.SetServingStatus(LedgerServiceName, status)
	h.health.SetServingStatus("", status)
}
