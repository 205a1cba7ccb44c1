package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-gene-consent/internal/ledger"
	"github.com/MKhiriev/go-gene-consent/internal/logger"
	"github.com/MKhiriev/go-gene-consent/internal/metrics"
	"github.com/MKhiriev/go-gene-consent/models"
)

// MaxEventsPage bounds a single events listing.
const MaxEventsPage = 1000

// LedgerServiceWrapper defines middleware composition for LedgerService.
// Implementations wrap an existing LedgerService to add behavior such as
// validation or metrics.
type LedgerServiceWrapper interface {
	Wrap(LedgerService) LedgerService
}

// NewLedgerService builds the rule processor over state and applies
// wrappers in order, the last one being outermost.
func NewLedgerService(state ledger.StateStore, verifier ledger.Verifier, logger *logger.Logger, wrappers ...LedgerServiceWrapper) LedgerService {
	var svc LedgerService = ledger.NewProcessor(state, verifier, ledger.WithLogger(logger))
	for _, w := range wrappers {
		svc = w.Wrap(svc)
	}
	return svc
}

// LedgerValidationService rejects malformed reads before they reach storage.
// Transactions are validated by the processor itself.
type LedgerValidationService struct {
	LedgerService
}

func NewLedgerValidationService() LedgerServiceWrapper {
	return &LedgerValidationService{}
}

func (v *LedgerValidationService) Wrap(inner LedgerService) LedgerService {
	v.LedgerService = inner
	return v
}

func (v *LedgerValidationService) Request(ctx context.Context, requestID int64) (models.AnalysisRequest, error) {
	if requestID <= 0 {
		return models.AnalysisRequest{}, fmt.Errorf("%w: request id %d", ErrInvalidDataProvided, requestID)
	}
	return v.LedgerService.Request(ctx, requestID)
}

func (v *LedgerValidationService) Grant(ctx context.Context, requestID int64) (models.ConsentGrant, error) {
	if requestID <= 0 {
		return models.ConsentGrant{}, fmt.Errorf("%w: request id %d", ErrInvalidDataProvided, requestID)
	}
	return v.LedgerService.Grant(ctx, requestID)
}

func (v *LedgerValidationService) Events(ctx context.Context, afterSeq int64, limit int) ([]models.LedgerEvent, error) {
	if afterSeq < 0 || limit <= 0 || limit > MaxEventsPage {
		return nil, fmt.Errorf("%w: after=%d limit=%d", ErrInvalidDataProvided, afterSeq, limit)
	}
	return v.LedgerService.Events(ctx, afterSeq, limit)
}

// LedgerMetricsService counts submitted transactions by kind and outcome and
// times how long the processor takes to apply them.
type LedgerMetricsService struct {
	LedgerService
	metrics *metrics.Metrics
}

func NewLedgerMetricsService(m *metrics.Metrics) LedgerServiceWrapper {
	return &LedgerMetricsService{metrics: m}
}

func (m *LedgerMetricsService) Wrap(inner LedgerService) LedgerService {
	m.LedgerService = inner
	return m
}

func (m *LedgerMetricsService) Submit(ctx context.Context, signed models.SignedTx) (models.Receipt, error) {
	start := time.Now()
	receipt, err := m.LedgerService.Submit(ctx, signed)
	m.metrics.ObserveSubmit(signed.Tx.Kind, err, time.Since(start))
	return receipt, err
}
