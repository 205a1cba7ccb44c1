package adapter

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-gene-consent/internal/config"
	"github.com/MKhiriev/go-gene-consent/internal/logger"
	"github.com/MKhiriev/go-gene-consent/internal/utils"
	"github.com/MKhiriev/go-gene-consent/models"
)

type httpAnalysisEngine struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewHTTPAnalysisEngine returns an [AnalysisEngine] posting jobs to
// cfg.EngineAddress.
func NewHTTPAnalysisEngine(cfg config.Adapter, logger *logger.Logger) (AnalysisEngine, error) {
	client, err := newClient(cfg.EngineAddress, cfg.RequestTimeout)
	if err != nil {
		return nil, fmt.Errorf("invalid engine address: %w", err)
	}

	return &httpAnalysisEngine{client: client, logger: logger}, nil
}

// Submit implements [AnalysisEngine]. It POSTs job to /jobs.
func (e *httpAnalysisEngine) Submit(ctx context.Context, job models.AnalysisJob) error {
	resp, err := e.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(job).
		Post("/jobs")
	if err != nil {
		e.logger.Err(err).Str("func", "*httpAnalysisEngine.Submit").Int64("request_id", job.RequestID).Msg("engine request failed")
		return fmt.Errorf("submit job: %w: %w", ErrServiceUnavailable, err)
	}

	if err = mapHTTPError(resp); err != nil {
		return fmt.Errorf("submit job: %w", err)
	}
	return nil
}
