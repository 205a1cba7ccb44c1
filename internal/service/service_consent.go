// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/go-gene-consent/internal/config"
	"github.com/MKhiriev/go-gene-consent/internal/crypto"
	"github.com/MKhiriev/go-gene-consent/internal/ledger"
	"github.com/MKhiriev/go-gene-consent/internal/logger"
	"github.com/MKhiriev/go-gene-consent/internal/store"
	"github.com/MKhiriev/go-gene-consent/models"
)

const reasonDeclined = "declined"

type consentService struct {
	identity crypto.AddressDeriver
	ledger   ledger.Ledger
	issuer   *txIssuer
	tracker  *requestTracker
	now      func() time.Time

	logger *logger.Logger
}

// NewConsentService returns a ConsentService submitting to l. Transactions
// are signed with the subject's key from keys and new requests are tracked
// in cache.
func NewConsentService(identity crypto.AddressDeriver, l ledger.Ledger, keys Keyring, cache store.RequestCache,
	nonces NonceSource, cfg config.Adapter, logger *logger.Logger) ConsentService {
	policy := newRetryPolicy(cfg)
	now := time.Now

	return &consentService{
		identity: identity,
		ledger:   l,
		issuer:   &txIssuer{ledger: l, keys: keys, nonces: nonces, retry: policy, now: now},
		tracker:  &requestTracker{ledger: l, cache: cache, retry: policy, logger: logger},
		now:      now,
		logger:   logger,
	}
}

func (c *consentService) Address(subjectID string) (models.Address, error) {
	return c.identity.DeriveAddress(subjectID)
}

func (c *consentService) RegisterIdentity(ctx context.Context, subjectID string, dataHash models.Hash) (models.RegistrationResult, error) {
	tx, err := c.registrationTx(models.TxRegister, subjectID, dataHash)
	if err != nil {
		return models.RegistrationResult{}, err
	}

	receipt, err := c.issuer.issue(ctx, subjectID, tx, c.registrationBound(tx))
	if err != nil {
		c.logger.Err(err).Str("func", "*consentService.RegisterIdentity").Str("address", tx.From.Hex()).Msg("registration failed")
		return models.RegistrationResult{}, err
	}

	c.logger.Info().Str("address", tx.From.Hex()).Str("tx_ref", receipt.TxRef).Msg("identity registered")
	return models.RegistrationResult{Address: tx.From, TxRef: receipt.TxRef}, nil
}

func (c *consentService) UpdateRegistration(ctx context.Context, subjectID string, dataHash models.Hash) (string, error) {
	tx, err := c.registrationTx(models.TxUpdateRegistration, subjectID, dataHash)
	if err != nil {
		return "", err
	}

	receipt, err := c.issuer.issue(ctx, subjectID, tx, c.registrationBound(tx))
	if err != nil {
		c.logger.Err(err).Str("func", "*consentService.UpdateRegistration").Str("address", tx.From.Hex()).Msg("registration update failed")
		return "", err
	}
	return receipt.TxRef, nil
}

func (c *consentService) RequestAnalysis(ctx context.Context, requesterSubjectID string, target models.Address) (models.RequestResult, error) {
	from, err := c.identity.DeriveAddress(requesterSubjectID)
	if err != nil {
		return models.RequestResult{}, err
	}

	receipt, err := c.issuer.issue(ctx, requesterSubjectID, models.Transaction{
		Kind:   models.TxRequestAnalysis,
		From:   from,
		Target: target,
	}, nil)
	if err != nil {
		c.logger.Err(err).Str("func", "*consentService.RequestAnalysis").Str("target", target.Hex()).Msg("analysis request failed")
		return models.RequestResult{}, err
	}

	now := c.now().UTC()
	c.tracker.track(ctx, models.AnalysisRequest{
		RequestID: receipt.RequestID,
		Requester: from,
		Target:    target,
		Status:    models.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	})

	c.logger.Info().Int64("request_id", receipt.RequestID).Str("target", target.Hex()).Msg("analysis requested")
	return models.RequestResult{RequestID: receipt.RequestID, TxRef: receipt.TxRef}, nil
}

func (c *consentService) GrantConsent(ctx context.Context, subjectID string, requestID int64, method models.ConsentMethod, material []byte) (string, error) {
	if !method.IsValid() || len(material) == 0 {
		return "", ErrInvalidDataProvided
	}

	from, err := c.identity.DeriveAddress(subjectID)
	if err != nil {
		return "", err
	}

	tx := models.Transaction{
		Kind:      models.TxGrantConsent,
		From:      from,
		RequestID: requestID,
		Method:    method,
	}
	if method == models.MethodDirect {
		tx.KeyMaterial = material
	} else {
		tx.RetrievalRef = string(material)
	}

	receipt, err := c.issuer.issue(ctx, subjectID, tx, c.grantRecorded(requestID, from))
	if err != nil {
		c.logger.Err(err).Str("func", "*consentService.GrantConsent").Int64("request_id", requestID).Msg("grant failed")
		return "", err
	}

	c.tracker.advance(ctx, requestID, models.StatusConsented, "", "")

	c.logger.Info().Int64("request_id", requestID).Str("method", string(method)).Msg("consent granted")
	return receipt.TxRef, nil
}

func (c *consentService) DeclineRequest(ctx context.Context, subjectID string, requestID int64, reason string) (string, error) {
	from, err := c.identity.DeriveAddress(subjectID)
	if err != nil {
		return "", err
	}
	if reason == "" {
		reason = reasonDeclined
	}

	receipt, err := c.issuer.issue(ctx, subjectID, models.Transaction{
		Kind:      models.TxFailRequest,
		From:      from,
		RequestID: requestID,
		Reason:    reason,
	}, nil)
	if err != nil {
		return "", err
	}

	c.tracker.advance(ctx, requestID, models.StatusFailed, "", reason)
	return receipt.TxRef, nil
}

func (c *consentService) ListRequests(ctx context.Context, subjectID string) ([]int64, error) {
	addr, err := c.identity.DeriveAddress(subjectID)
	if err != nil {
		return nil, err
	}

	reqs, err := c.tracker.fetchByAddress(ctx, addr)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(reqs))
	for _, req := range reqs {
		ids = append(ids, req.RequestID)
	}
	return ids, nil
}

func (c *consentService) registrationTx(kind models.TxKind, subjectID string, dataHash models.Hash) (models.Transaction, error) {
	if dataHash == (models.Hash{}) {
		return models.Transaction{}, ErrInvalidDataProvided
	}

	addr, err := c.identity.DeriveAddress(subjectID)
	if err != nil {
		return models.Transaction{}, err
	}
	identityHash, err := c.identity.HashIdentity(subjectID)
	if err != nil {
		return models.Transaction{}, err
	}

	return models.Transaction{
		Kind:         kind,
		From:         addr,
		IdentityHash: identityHash,
		DataHash:     dataHash,
	}, nil
}

// registrationBound treats a binding with the same commitments as the
// effect of tx.
func (c *consentService) registrationBound(tx models.Transaction) effectCheck {
	return func(ctx context.Context) (models.Receipt, bool, error) {
		reg, err := c.ledger.Registration(ctx, tx.From)
		switch {
		case errors.Is(err, ledger.ErrNotFound):
			return models.Receipt{}, false, nil
		case err != nil:
			return models.Receipt{}, false, err
		}

		if reg.IdentityHash == tx.IdentityHash && reg.DataHash == tx.DataHash {
			return models.Receipt{TxRef: reg.TxRef}, true, nil
		}
		return models.Receipt{}, false, nil
	}
}

// grantRecorded treats a grant by the same granter as the effect of a
// grant transaction.
func (c *consentService) grantRecorded(requestID int64, granter models.Address) effectCheck {
	return func(ctx context.Context) (models.Receipt, bool, error) {
		grant, err := c.ledger.Grant(ctx, requestID)
		switch {
		case errors.Is(err, ledger.ErrNotFound):
			return models.Receipt{}, false, nil
		case err != nil:
			return models.Receipt{}, false, err
		}

		if grant.Granter != granter {
			return models.Receipt{}, false, nil
		}
		return models.Receipt{TxRef: grant.TxRef, RequestID: requestID, Status: models.StatusConsented}, true, nil
	}
}
