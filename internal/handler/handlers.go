package handler

import (
	"github.com/MKhiriev/go-gene-consent/internal/config"
	"github.com/MKhiriev/go-gene-consent/internal/handler/grpc"
	"github.com/MKhiriev/go-gene-consent/internal/handler/http"
	"github.com/MKhiriev/go-gene-consent/internal/logger"
	"github.com/MKhiriev/go-gene-consent/internal/metrics"
	"github.com/MKhiriev/go-gene-consent/internal/service"
)

// Handlers are the ledger node transports. A nil field means that listener
// is not configured.
type Handlers struct {
	HTTP *http.Handler
	GRPC *grpc.Handler
}

// NewHandlers builds the HTTP ledger API when cfg.HTTPAddress is set and
// the gRPC health service when cfg.GRPCAddress is set. With a nil m the
// HTTP API does not serve /metrics.
func NewHandlers(services *service.Services, m *metrics.Metrics, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	var h Handlers
	if cfg.HTTPAddress != "" {
		h.HTTP = http.NewHandler(services, m, logger.Component("http"))
	}
	if cfg.GRPCAddress != "" {
		h.GRPC = grpc.NewHandler(services, logger.Component("grpc"))
	}
	if h.HTTP == nil && h.GRPC == nil {
		return nil, errNoHandlersAreCreated
	}

	logger.Info().Bool("http", h.HTTP != nil).Bool("grpc", h.GRPC != nil).Msg("handlers created")
	return &h, nil
}
