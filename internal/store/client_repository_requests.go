package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/MKhiriev/go-gene-consent/internal/ledger"
	"github.com/MKhiriev/go-gene-consent/internal/logger"
	"github.com/MKhiriev/go-gene-consent/models"
)

type localRequestCache struct {
	*DB
	logger *logger.Logger
	now    func() time.Time
}

func NewLocalRequestCache(db *DB, logger *logger.Logger) RequestCache {
	return &localRequestCache{
		DB:     db,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func requestArgs(req models.AnalysisRequest) []any {
	return []any{
		req.RequestID,
		req.Requester.Hex(),
		req.Target.Hex(),
		string(req.Status),
		req.ResultRef,
		req.FailureReason,
		req.CreatedAt,
		req.UpdatedAt,
	}
}

func (l *localRequestCache) StoreAnalysisRequest(ctx context.Context, req models.AnalysisRequest) error {
	if _, err := l.DB.ExecContext(ctx, insertCachedRequest, requestArgs(req)...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "localRequestCache.StoreAnalysisRequest").
			Int64("request_id", req.RequestID).
			Msg("failed to cache analysis request")
		return fmt.Errorf("failed to cache analysis request %d: %w", req.RequestID, err)
	}
	return nil
}

func (l *localRequestCache) OverwriteAnalysisRequest(ctx context.Context, req models.AnalysisRequest) error {
	if _, err := l.DB.ExecContext(ctx, overwriteCachedRequest, requestArgs(req)...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "localRequestCache.OverwriteAnalysisRequest").
			Int64("request_id", req.RequestID).
			Msg("failed to overwrite analysis request")
		return fmt.Errorf("failed to overwrite analysis request %d: %w", req.RequestID, err)
	}
	return nil
}

func (l *localRequestCache) UpdateAnalysisRequestStatus(ctx context.Context, requestID int64, next models.RequestStatus, resultRef, reason string) (models.AnalysisRequest, error) {
	log := logger.FromContext(ctx)

	tx, err := l.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "localRequestCache.UpdateAnalysisRequestStatus").Msg("failed to begin transaction")
		return models.AnalysisRequest{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	req, err := scanCachedRequest(tx.QueryRowContext(ctx, getCachedRequest, requestID))
	if err != nil {
		return models.AnalysisRequest{}, err
	}

	if !req.Status.CanTransitionTo(next) {
		return models.AnalysisRequest{}, fmt.Errorf("%w: request %d %s -> %s", ledger.ErrInvalidTransition, requestID, req.Status, next)
	}

	req.Status = next
	req.UpdatedAt = l.now()
	if resultRef != "" {
		req.ResultRef = resultRef
	}
	if reason != "" {
		req.FailureReason = reason
	}

	if _, err = tx.ExecContext(ctx, updateCachedRequestStatus, string(req.Status), req.ResultRef, req.FailureReason, req.UpdatedAt, requestID); err != nil {
		log.Err(err).
			Str("func", "localRequestCache.UpdateAnalysisRequestStatus").
			Int64("request_id", requestID).
			Msg("failed to update cached status")
		return models.AnalysisRequest{}, fmt.Errorf("failed to update cached request %d: %w", requestID, err)
	}

	if err = tx.Commit(); err != nil {
		return models.AnalysisRequest{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}
	return req, nil
}

func (l *localRequestCache) GetAnalysisRequest(ctx context.Context, requestID int64) (models.AnalysisRequest, error) {
	return scanCachedRequest(l.DB.QueryRowContext(ctx, getCachedRequest, requestID))
}

func (l *localRequestCache) ListAnalysisRequests(ctx context.Context, addr models.Address) ([]models.AnalysisRequest, error) {
	rows, err := l.DB.QueryContext(ctx, listCachedRequests, addr.Hex(), addr.Hex())
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "localRequestCache.ListAnalysisRequests").
			Str("address", addr.Hex()).
			Msg("failed to list cached requests")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var out []models.AnalysisRequest
	for rows.Next() {
		req, err := scanCachedRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func scanCachedRequest(row rowScanner) (models.AnalysisRequest, error) {
	var (
		req               models.AnalysisRequest
		requester, target string
		status            string
	)
	err := row.Scan(&req.RequestID, &requester, &target, &status, &req.ResultRef, &req.FailureReason, &req.CreatedAt, &req.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.AnalysisRequest{}, ErrRequestNotCached
	}
	if err != nil {
		return models.AnalysisRequest{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	req.Requester = common.HexToAddress(requester)
	req.Target = common.HexToAddress(target)
	req.Status = models.RequestStatus(status)
	return req, nil
}
