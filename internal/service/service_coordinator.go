package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-gene-consent/internal/adapter"
	"github.com/MKhiriev/go-gene-consent/internal/config"
	"github.com/MKhiriev/go-gene-consent/internal/crypto"
	"github.com/MKhiriev/go-gene-consent/internal/ledger"
	"github.com/MKhiriev/go-gene-consent/internal/logger"
	"github.com/MKhiriev/go-gene-consent/internal/store"
	"github.com/MKhiriev/go-gene-consent/models"
)

const reasonExpired = "expired"

type coordinator struct {
	identity crypto.AddressDeriver
	cache    store.RequestCache
	engine   adapter.AnalysisEngine
	issuer   *txIssuer
	tracker  *requestTracker
	ttl      time.Duration
	now      func() time.Time

	logger *logger.Logger
}

// NewCoordinator returns a Coordinator reading l through cache. Pending
// requests the subject issued expire after workers.RequestTTL.
func NewCoordinator(identity crypto.AddressDeriver, l ledger.Ledger, keys Keyring, cache store.RequestCache,
	engine adapter.AnalysisEngine, nonces NonceSource, adapterCfg config.Adapter, workers config.Workers, logger *logger.Logger) Coordinator {
	policy := newRetryPolicy(adapterCfg)
	now := time.Now

	return &coordinator{
		identity: identity,
		cache:    cache,
		engine:   engine,
		issuer:   &txIssuer{ledger: l, keys: keys, nonces: nonces, retry: policy, now: now},
		tracker:  &requestTracker{ledger: l, cache: cache, retry: policy, logger: logger},
		ttl:      workers.RequestTTL,
		now:      now,
		logger:   logger,
	}
}

func (c *coordinator) Get(ctx context.Context, requestID int64) (models.AnalysisRequest, error) {
	req, err := c.tracker.fetch(ctx, requestID)
	if err == nil || !ledger.IsRetryable(err) {
		return req, err
	}

	cached, cacheErr := c.cache.GetAnalysisRequest(ctx, requestID)
	if cacheErr != nil {
		return models.AnalysisRequest{}, err
	}

	c.logger.Warn().Err(err).Int64("request_id", requestID).Msg("ledger unavailable, serving cached request")
	return cached, nil
}

func (c *coordinator) Pending(ctx context.Context, subjectID string) ([]models.AnalysisRequest, error) {
	addr, err := c.identity.DeriveAddress(subjectID)
	if err != nil {
		return nil, err
	}

	reqs, err := c.Reconcile(ctx, subjectID)
	if err != nil {
		if !ledger.IsRetryable(err) {
			return nil, err
		}
		c.logger.Warn().Err(err).Msg("ledger unavailable, listing cached requests")
		if reqs, err = c.cache.ListAnalysisRequests(ctx, addr); err != nil {
			return nil, err
		}
	}

	var pending []models.AnalysisRequest
	for _, req := range reqs {
		if req.Target == addr && req.Status == models.StatusPending {
			pending = append(pending, req)
		}
	}
	return pending, nil
}

func (c *coordinator) Reconcile(ctx context.Context, subjectID string) ([]models.AnalysisRequest, error) {
	addr, err := c.identity.DeriveAddress(subjectID)
	if err != nil {
		return nil, err
	}

	reqs, err := c.tracker.fetchByAddress(ctx, addr)
	if err != nil {
		return nil, err
	}

	for i, req := range reqs {
		if !c.expired(req, addr) {
			continue
		}
		if reqs[i], err = c.expire(ctx, subjectID, req); err != nil {
			c.logger.Warn().Err(err).Int64("request_id", req.RequestID).Msg("could not expire request")
		}
	}

	c.logger.Debug().Str("address", addr.Hex()).Int("requests", len(reqs)).Msg("requests reconciled")
	return reqs, nil
}

func (c *coordinator) expired(req models.AnalysisRequest, addr models.Address) bool {
	return c.ttl > 0 &&
		req.Requester == addr &&
		req.Status == models.StatusPending &&
		c.now().Sub(req.CreatedAt) > c.ttl
}

// expire fails req with the expired reason. If the ledger refuses (the
// target answered meanwhile) the current ledger copy is returned instead.
func (c *coordinator) expire(ctx context.Context, subjectID string, req models.AnalysisRequest) (models.AnalysisRequest, error) {
	_, err := c.issuer.issue(ctx, subjectID, models.Transaction{
		Kind:      models.TxFailRequest,
		From:      req.Requester,
		RequestID: req.RequestID,
		Reason:    reasonExpired,
	}, nil)
	if err != nil {
		if ledger.IsRejected(err) {
			if fresh, fetchErr := c.tracker.fetch(ctx, req.RequestID); fetchErr == nil {
				return fresh, err
			}
		}
		return req, err
	}

	c.tracker.advance(ctx, req.RequestID, models.StatusFailed, "", reasonExpired)

	req.Status = models.StatusFailed
	req.FailureReason = reasonExpired
	req.UpdatedAt = c.now().UTC()

	c.logger.Info().Int64("request_id", req.RequestID).Msg("pending request expired")
	return req, nil
}

func (c *coordinator) Dispatch(ctx context.Context, requestID int64) error {
	req, err := c.Get(ctx, requestID)
	if err != nil {
		return err
	}
	if req.Status != models.StatusConsented {
		return fmt.Errorf("%w: request %d is %s", ErrNotConsented, requestID, req.Status)
	}

	if err = c.engine.Submit(ctx, models.AnalysisJob{
		RequestID: req.RequestID,
		Requester: req.Requester,
		Target:    req.Target,
	}); err != nil {
		c.logger.Err(err).Str("func", "*coordinator.Dispatch").Int64("request_id", requestID).Msg("engine refused job")
		return fmt.Errorf("dispatch request %d: %w", requestID, err)
	}

	c.logger.Info().Int64("request_id", requestID).Msg("analysis dispatched")
	return nil
}

func (c *coordinator) ReportResult(ctx context.Context, subjectID string, report models.AnalysisReport) (string, error) {
	if report.ResultRef == "" && !report.Failed() {
		return "", ErrEmptyReport
	}

	from, err := c.identity.DeriveAddress(subjectID)
	if err != nil {
		return "", err
	}

	req, err := c.tracker.fetch(ctx, report.RequestID)
	if err != nil {
		return "", err
	}
	if !req.Involves(from) {
		return "", ErrNotParticipant
	}

	tx := models.Transaction{From: from, RequestID: req.RequestID}
	next := models.StatusCompleted
	if report.Failed() {
		tx.Kind = models.TxFailRequest
		tx.Reason = report.Error
		next = models.StatusFailed
	} else {
		tx.Kind = models.TxCompleteRequest
		tx.ResultRef = report.ResultRef
	}

	if req.Status != models.StatusConsented {
		return "", fmt.Errorf("%w: request %d is %s", ledger.ErrInvalidTransition, req.RequestID, req.Status)
	}

	receipt, err := c.issuer.issue(ctx, subjectID, tx, nil)
	if err != nil {
		return "", err
	}

	c.tracker.advance(ctx, req.RequestID, next, report.ResultRef, report.Error)

	c.logger.Info().Int64("request_id", req.RequestID).Str("status", string(next)).Msg("analysis reported")
	return receipt.TxRef, nil
}

func (c *coordinator) Result(ctx context.Context, requestID int64) (string, error) {
	req, err := c.Get(ctx, requestID)
	if err != nil {
		return "", err
	}
	if req.Status != models.StatusCompleted {
		return "", fmt.Errorf("%w: request %d is %s", ErrNoResult, requestID, req.Status)
	}
	return req.ResultRef, nil
}
