// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-gene-consent/internal/logger"
	"github.com/MKhiriev/go-gene-consent/internal/validators"
	"github.com/MKhiriev/go-gene-consent/models"
)

// Processor enforces the ledger rules on top of a StateStore and implements
// Ledger. Every accepted transaction appends exactly one audit event.
type Processor struct {
	store     StateStore
	verifier  Verifier
	validator validators.Validator
	now       func() time.Time
	logger    *logger.Logger
}

type Option func(*Processor)

// WithClock overrides time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(p *Processor) { p.now = now }
}

func WithLogger(l *logger.Logger) Option {
	return func(p *Processor) { p.logger = l }
}

func NewProcessor(store StateStore, verifier Verifier, opts ...Option) *Processor {
	p := &Processor{
		store:     store,
		verifier:  verifier,
		validator: validators.NewTransactionValidator(),
		now:       func() time.Time { return time.Now().UTC() },
		logger:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Processor) Submit(ctx context.Context, signed models.SignedTx) (models.Receipt, error) {
	tx := signed.Tx
	log := p.logger.With().Str("kind", string(tx.Kind)).Str("from", tx.From.Hex()).Logger()

	if err := p.validator.Validate(ctx, signed); err != nil {
		log.Warn().Err(err).Msg("malformed transaction")
		return models.Receipt{}, reject(fmt.Errorf("malformed transaction: %w", err))
	}
	if err := p.verifier.Verify(signed); err != nil {
		log.Warn().Err(err).Msg("signature rejected")
		return models.Receipt{}, err
	}

	digest, err := tx.Digest()
	if err != nil {
		return models.Receipt{}, reject(err)
	}

	var receipt models.Receipt
	err = p.store.Atomically(ctx, func(stx StateTx) error {
		head, err := stx.Head(ctx)
		if err != nil {
			return err
		}

		bound, err := checkSigner(ctx, stx, tx)
		if err != nil {
			return err
		}

		event := nextEvent(head, tx, digest, p.now())
		receipt, err = p.apply(ctx, stx, tx, event)
		if err != nil {
			return err
		}

		if receipt.RequestID != event.RequestID {
			event.RequestID = receipt.RequestID
			event.Hash = eventHash(event)
		}
		if !bound {
			err = stx.BindSigner(ctx, models.SignerBinding{
				Address: tx.From,
				Signer:  tx.Signer,
				TxRef:   event.TxRef(),
				BoundAt: event.RecordedAt,
			})
			if err != nil {
				return err
			}
		}
		if err = stx.AppendEvent(ctx, event); err != nil {
			return err
		}

		receipt.TxRef = event.TxRef()
		receipt.Seq = event.Seq
		return nil
	})
	if err != nil {
		err = classify(err)
		if IsRejected(err) {
			log.Info().Err(err).Msg("transaction rejected")
		} else {
			log.Err(err).Msg("transaction failed")
		}
		return models.Receipt{}, err
	}

	log.Debug().Str("tx_ref", receipt.TxRef).Int64("seq", receipt.Seq).Int64("request_id", receipt.RequestID).Msg("transaction applied")
	return receipt, nil
}

// checkSigner rejects tx unless tx.Signer is the key bound to tx.From. It
// reports false when From has no binding yet; the caller binds it once the
// transaction is accepted.
func checkSigner(ctx context.Context, stx StateTx, tx models.Transaction) (bool, error) {
	binding, err := stx.SignerBinding(ctx, tx.From)
	switch {
	case errors.Is(err, ErrNotFound):
		return false, nil
	case err != nil:
		return false, err
	case binding.Signer != tx.Signer:
		return false, reject(fmt.Errorf("%w: %w: %s signs for %s, got %s",
			ErrInvalidSignature, ErrSignerBound, binding.Signer.Hex(), tx.From.Hex(), tx.Signer.Hex()))
	}
	return true, nil
}

func (p *Processor) apply(ctx context.Context, stx StateTx, tx models.Transaction, event models.LedgerEvent) (models.Receipt, error) {
	switch tx.Kind {
	case models.TxRegister:
		return applyRegister(ctx, stx, tx, event)
	case models.TxUpdateRegistration:
		return applyUpdateRegistration(ctx, stx, tx, event)
	case models.TxRequestAnalysis:
		return applyRequestAnalysis(ctx, stx, tx, event)
	case models.TxGrantConsent:
		return applyGrantConsent(ctx, stx, tx, event)
	case models.TxFailRequest:
		return applyFailRequest(ctx, stx, tx, event)
	case models.TxCompleteRequest:
		return applyCompleteRequest(ctx, stx, tx, event)
	default:
		return models.Receipt{}, reject(fmt.Errorf("unknown transaction kind %q", tx.Kind))
	}
}

// classify makes sure whatever escaped the store is either a rejection or
// unavailability. Unique-constraint hits surface as the matching rule.
func classify(err error) error {
	switch {
	case IsRejected(err), errors.Is(err, ErrLedgerUnavailable):
		return err
	case errors.Is(err, ErrAlreadyRegistered), errors.Is(err, ErrAlreadyGranted),
		errors.Is(err, ErrNotFound), errors.Is(err, ErrSignerBound):
		return reject(err)
	default:
		return unavailable(err)
	}
}

func (p *Processor) Registration(ctx context.Context, addr models.Address) (models.Registration, error) {
	return p.store.Registration(ctx, addr)
}

func (p *Processor) Request(ctx context.Context, requestID int64) (models.AnalysisRequest, error) {
	return p.store.Request(ctx, requestID)
}

func (p *Processor) RequestsByAddress(ctx context.Context, addr models.Address) ([]models.AnalysisRequest, error) {
	return p.store.RequestsByAddress(ctx, addr)
}

func (p *Processor) Grant(ctx context.Context, requestID int64) (models.ConsentGrant, error) {
	return p.store.Grant(ctx, requestID)
}

func (p *Processor) Events(ctx context.Context, afterSeq int64, limit int) ([]models.LedgerEvent, error) {
	return p.store.Events(ctx, afterSeq, limit)
}

var _ Ledger = (*Processor)(nil)
