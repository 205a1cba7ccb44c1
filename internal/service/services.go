package service

import (
	"fmt"

	"github.com/MKhiriev/go-gene-consent/internal/config"
	"github.com/MKhiriev/go-gene-consent/internal/ledger"
	"github.com/MKhiriev/go-gene-consent/internal/logger"
	"github.com/MKhiriev/go-gene-consent/internal/metrics"
	"github.com/MKhiriev/go-gene-consent/internal/store"
)

// Services are the ledger node services.
type Services struct {
	LedgerService  LedgerService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, cfg *config.LedgerConfig, m *metrics.Metrics, logger *logger.Logger) (*Services, error) {
	verifier, err := ledger.NewTokenVerifier(cfg.App.TokenIssuer)
	if err != nil {
		return nil, fmt.Errorf("create transaction verifier: %w", err)
	}

	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		LedgerService: NewLedgerService(storages.LedgerState, verifier, logger.Component("ledger"),
			NewLedgerValidationService(),
			NewLedgerMetricsService(m),
		),
		AppInfoService: appInfo,
	}, nil
}
