package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-gene-consent/internal/ledger"
	"github.com/MKhiriev/go-gene-consent/internal/logger"
	"github.com/MKhiriev/go-gene-consent/internal/store"
	"github.com/MKhiriev/go-gene-consent/models"
)

// NonceSource issues the per-transaction nonce. Implemented by
// *utils.UUIDGenerator.
type NonceSource interface {
	Generate() string
}

// txIssuer stamps, signs and submits transactions under the retry policy.
type txIssuer struct {
	ledger ledger.Ledger
	keys   Keyring
	nonces NonceSource
	retry  retryPolicy
	now    func() time.Time
}

// issue signs tx with the key of subjectID and submits it. applied may be
// nil, in which case an unknown outcome is resolved by looking the
// transaction up in the audit chain.
func (i *txIssuer) issue(ctx context.Context, subjectID string, tx models.Transaction, applied effectCheck) (models.Receipt, error) {
	tx.Nonce = i.nonces.Generate()
	tx.IssuedAt = i.now().Unix()

	signer, err := i.keys.Signer(ctx, subjectID)
	if err != nil {
		return models.Receipt{}, fmt.Errorf("load signing key: %w", err)
	}
	signed, err := signer.Sign(tx)
	if err != nil {
		return models.Receipt{}, fmt.Errorf("sign %s: %w", tx.Kind, err)
	}

	if applied == nil {
		digest, err := signed.Tx.Digest()
		if err != nil {
			return models.Receipt{}, err
		}
		applied = appliedByDigest(i.ledger, digest)
	}

	return i.retry.write(ctx, func(ctx context.Context) (models.Receipt, error) {
		return i.ledger.Submit(ctx, signed)
	}, applied)
}

// requestTracker keeps the local request cache in step with the ledger.
// Cache failures are logged, never returned: the ledger already holds the
// truth and the next read repairs the cache.
type requestTracker struct {
	ledger ledger.Ledger
	cache  store.RequestCache
	retry  retryPolicy
	logger *logger.Logger
}

// fetch reads one request from the ledger and overwrites the cached copy.
func (t *requestTracker) fetch(ctx context.Context, requestID int64) (models.AnalysisRequest, error) {
	var req models.AnalysisRequest
	err := t.retry.read(ctx, func(ctx context.Context) (err error) {
		req, err = t.ledger.Request(ctx, requestID)
		return err
	})
	if err != nil {
		return models.AnalysisRequest{}, err
	}

	t.overwrite(ctx, req)
	return req, nil
}

// fetchByAddress reads every request of addr from the ledger and overwrites
// the cached copies.
func (t *requestTracker) fetchByAddress(ctx context.Context, addr models.Address) ([]models.AnalysisRequest, error) {
	var reqs []models.AnalysisRequest
	err := t.retry.read(ctx, func(ctx context.Context) (err error) {
		reqs, err = t.ledger.RequestsByAddress(ctx, addr)
		return err
	})
	if err != nil {
		return nil, err
	}

	for _, req := range reqs {
		t.overwrite(ctx, req)
	}
	return reqs, nil
}

func (t *requestTracker) track(ctx context.Context, req models.AnalysisRequest) {
	if err := t.cache.StoreAnalysisRequest(ctx, req); err != nil {
		t.logger.Warn().Err(err).Int64("request_id", req.RequestID).Msg("could not cache new request")
	}
}

// advance applies a transition the ledger has just confirmed. A missing or
// stale cached copy is replaced with a fresh ledger read.
func (t *requestTracker) advance(ctx context.Context, requestID int64, next models.RequestStatus, resultRef, reason string) {
	_, err := t.cache.UpdateAnalysisRequestStatus(ctx, requestID, next, resultRef, reason)
	if err == nil {
		return
	}
	if !errors.Is(err, store.ErrRequestNotCached) && !errors.Is(err, ledger.ErrInvalidTransition) {
		t.logger.Warn().Err(err).Int64("request_id", requestID).Msg("could not advance cached request")
		return
	}

	if _, err = t.fetch(ctx, requestID); err != nil {
		t.logger.Warn().Err(err).Int64("request_id", requestID).Msg("could not refresh cached request")
	}
}

func (t *requestTracker) overwrite(ctx context.Context, req models.AnalysisRequest) {
	if err := t.cache.OverwriteAnalysisRequest(ctx, req); err != nil {
		t.logger.Warn().Err(err).Int64("request_id", req.RequestID).Msg("could not overwrite cached request")
	}
}
