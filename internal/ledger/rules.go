package ledger

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-gene-consent/models"
)

// Every rule validates first and writes last, so a rejected transaction
// leaves nothing behind even before the store rolls back.

func applyRegister(ctx context.Context, stx StateTx, tx models.Transaction, event models.LedgerEvent) (models.Receipt, error) {
	_, err := stx.Registration(ctx, tx.From)
	switch {
	case err == nil:
		return models.Receipt{}, rejectf(ErrAlreadyRegistered, "%s", tx.From.Hex())
	case !errors.Is(err, ErrNotFound):
		return models.Receipt{}, err
	}

	reg := models.Registration{
		Address:      tx.From,
		IdentityHash: tx.IdentityHash,
		DataHash:     tx.DataHash,
		TxRef:        event.TxRef(),
		RegisteredAt: event.RecordedAt,
		UpdatedAt:    event.RecordedAt,
	}
	if err = stx.InsertRegistration(ctx, reg); err != nil {
		return models.Receipt{}, err
	}
	return models.Receipt{}, nil
}

func applyUpdateRegistration(ctx context.Context, stx StateTx, tx models.Transaction, event models.LedgerEvent) (models.Receipt, error) {
	reg, err := stx.Registration(ctx, tx.From)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return models.Receipt{}, rejectf(ErrNotFound, "no registration for %s", tx.From.Hex())
		}
		return models.Receipt{}, err
	}
	if reg.IdentityHash != tx.IdentityHash {
		return models.Receipt{}, rejectf(ErrForbidden, "identity hash does not match registration")
	}

	reg.DataHash = tx.DataHash
	reg.TxRef = event.TxRef()
	reg.UpdatedAt = event.RecordedAt
	if err = stx.UpdateRegistration(ctx, reg); err != nil {
		return models.Receipt{}, err
	}
	return models.Receipt{}, nil
}

func applyRequestAnalysis(ctx context.Context, stx StateTx, tx models.Transaction, event models.LedgerEvent) (models.Receipt, error) {
	if tx.From == tx.Target {
		return models.Receipt{}, reject(ErrSelfRequest)
	}
	if _, err := stx.Registration(ctx, tx.Target); err != nil {
		if errors.Is(err, ErrNotFound) {
			return models.Receipt{}, rejectf(ErrUnknownTarget, "%s", tx.Target.Hex())
		}
		return models.Receipt{}, err
	}

	id, err := stx.InsertRequest(ctx, models.AnalysisRequest{
		Requester: tx.From,
		Target:    tx.Target,
		Status:    models.StatusPending,
		CreatedAt: event.RecordedAt,
		UpdatedAt: event.RecordedAt,
	})
	if err != nil {
		return models.Receipt{}, err
	}
	return models.Receipt{RequestID: id, Status: models.StatusPending}, nil
}

func applyGrantConsent(ctx context.Context, stx StateTx, tx models.Transaction, event models.LedgerEvent) (models.Receipt, error) {
	req, err := loadRequest(ctx, stx, tx.RequestID)
	if err != nil {
		return models.Receipt{}, err
	}

	// An existing grant wins over every other check, whoever retries it.
	_, err = stx.Grant(ctx, req.RequestID)
	switch {
	case err == nil:
		return models.Receipt{}, rejectf(ErrAlreadyGranted, "request %d", req.RequestID)
	case !errors.Is(err, ErrNotFound):
		return models.Receipt{}, err
	}

	if req.Target != tx.From {
		return models.Receipt{}, rejectf(ErrForbidden, "%s is not the target of request %d", tx.From.Hex(), req.RequestID)
	}

	if !req.Status.CanTransitionTo(models.StatusConsented) {
		return models.Receipt{}, rejectf(ErrInvalidTransition, "%s -> %s", req.Status, models.StatusConsented)
	}

	grant := models.ConsentGrant{
		RequestID:            req.RequestID,
		Granter:              tx.From,
		Method:               tx.Method,
		EncryptedKeyMaterial: tx.KeyMaterial,
		RetrievalRef:         tx.RetrievalRef,
		TxRef:                event.TxRef(),
		GrantedAt:            event.RecordedAt,
	}
	if err = stx.InsertGrant(ctx, grant); err != nil {
		return models.Receipt{}, err
	}

	return transition(ctx, stx, req, models.StatusConsented, event, func(r *models.AnalysisRequest) {})
}

func applyFailRequest(ctx context.Context, stx StateTx, tx models.Transaction, event models.LedgerEvent) (models.Receipt, error) {
	req, err := loadParticipantRequest(ctx, stx, tx)
	if err != nil {
		return models.Receipt{}, err
	}
	return transition(ctx, stx, req, models.StatusFailed, event, func(r *models.AnalysisRequest) {
		r.FailureReason = tx.Reason
	})
}

func applyCompleteRequest(ctx context.Context, stx StateTx, tx models.Transaction, event models.LedgerEvent) (models.Receipt, error) {
	req, err := loadParticipantRequest(ctx, stx, tx)
	if err != nil {
		return models.Receipt{}, err
	}
	return transition(ctx, stx, req, models.StatusCompleted, event, func(r *models.AnalysisRequest) {
		r.ResultRef = tx.ResultRef
	})
}

func loadRequest(ctx context.Context, stx StateTx, requestID int64) (models.AnalysisRequest, error) {
	req, err := stx.Request(ctx, requestID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return models.AnalysisRequest{}, rejectf(ErrNotFound, "request %d", requestID)
		}
		return models.AnalysisRequest{}, err
	}
	return req, nil
}

func loadParticipantRequest(ctx context.Context, stx StateTx, tx models.Transaction) (models.AnalysisRequest, error) {
	req, err := loadRequest(ctx, stx, tx.RequestID)
	if err != nil {
		return models.AnalysisRequest{}, err
	}
	if !req.Involves(tx.From) {
		return models.AnalysisRequest{}, rejectf(ErrForbidden, "%s is not a party to request %d", tx.From.Hex(), req.RequestID)
	}
	return req, nil
}

func transition(ctx context.Context, stx StateTx, req models.AnalysisRequest, next models.RequestStatus,
	event models.LedgerEvent, mutate func(*models.AnalysisRequest)) (models.Receipt, error) {
	if !req.Status.CanTransitionTo(next) {
		return models.Receipt{}, rejectf(ErrInvalidTransition, "%s -> %s", req.Status, next)
	}

	req.Status = next
	req.UpdatedAt = event.RecordedAt
	mutate(&req)

	if err := stx.UpdateRequest(ctx, req); err != nil {
		return models.Receipt{}, err
	}
	return models.Receipt{RequestID: req.RequestID, Status: next}, nil
}
