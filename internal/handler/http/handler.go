package http

import (
	"github.com/MKhiriev/go-gene-consent/internal/logger"
	"github.com/MKhiriev/go-gene-consent/internal/metrics"
	"github.com/MKhiriev/go-gene-consent/internal/service"
)

type Handler struct {
	services *service.Services
	metrics  *metrics.Metrics

	logger *logger.Logger
}

// NewHandler returns the ledger HTTP handler. m may be nil, in which case
// /metrics is not served.
func NewHandler(services *service.Services, m *metrics.Metrics, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		metrics:  m,
		logger:   logger,
	}
}
