// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package ledger holds the consent ledger: its rules, the append-only audit
// chain, transaction signing and the storage contract behind it.
//
// The same [Processor] backs the in-memory ledger used by tests and local
// runs and the Postgres-backed ledger server, so both enforce identical
// rules.
package ledger

import (
	"context"

	"github.com/MKhiriev/go-gene-consent/models"
)

//go:generate mockgen -source=ledger.go -destination=../mock/ledger_mock.go -package=mock

// Ledger is what clients see of the consent ledger. Submit either applies a
// transaction completely or not at all.
type Ledger interface {
	// Submit applies a signed transaction and returns its receipt.
	// Rule violations are joined with ErrLedgerRejected; transport and
	// commit failures wrap ErrLedgerUnavailable.
	Submit(ctx context.Context, signed models.SignedTx) (models.Receipt, error)

	// Registration returns the binding for addr or ErrNotFound.
	Registration(ctx context.Context, addr models.Address) (models.Registration, error)

	// Request returns the request with the given id or ErrNotFound.
	Request(ctx context.Context, requestID int64) (models.AnalysisRequest, error)

	// RequestsByAddress returns every request where addr is requester or
	// target, ordered by id.
	RequestsByAddress(ctx context.Context, addr models.Address) ([]models.AnalysisRequest, error)

	// Grant returns the consent recorded for requestID or ErrNotFound.
	Grant(ctx context.Context, requestID int64) (models.ConsentGrant, error)

	// Events returns up to limit audit events with Seq > afterSeq.
	Events(ctx context.Context, afterSeq int64, limit int) ([]models.LedgerEvent, error)
}

// StateTx is the view of ledger state inside one atomic unit.
type StateTx interface {
	// Head returns the latest event, or a zero event with Seq 0 if the chain
	// is empty.
	Head(ctx context.Context) (models.LedgerEvent, error)
	AppendEvent(ctx context.Context, event models.LedgerEvent) error

	Registration(ctx context.Context, addr models.Address) (models.Registration, error)
	InsertRegistration(ctx context.Context, reg models.Registration) error
	UpdateRegistration(ctx context.Context, reg models.Registration) error

	// InsertRequest stores req and returns the id it was assigned.
	InsertRequest(ctx context.Context, req models.AnalysisRequest) (int64, error)
	Request(ctx context.Context, requestID int64) (models.AnalysisRequest, error)
	UpdateRequest(ctx context.Context, req models.AnalysisRequest) error

	Grant(ctx context.Context, requestID int64) (models.ConsentGrant, error)
	InsertGrant(ctx context.Context, grant models.ConsentGrant) error

	// SignerBinding returns the key bound to addr or ErrNotFound.
	SignerBinding(ctx context.Context, addr models.Address) (models.SignerBinding, error)
	BindSigner(ctx context.Context, binding models.SignerBinding) error
}

// StateStore persists ledger state. Lookups of missing rows return
// ErrNotFound; failures to reach storage wrap ErrLedgerUnavailable.
type StateStore interface {
	// Atomically runs fn in a single transaction; if fn returns an error
	// nothing it wrote is kept. Concurrent calls are serialized.
	Atomically(ctx context.Context, fn func(tx StateTx) error) error

	Registration(ctx context.Context, addr models.Address) (models.Registration, error)
	Request(ctx context.Context, requestID int64) (models.AnalysisRequest, error)
	RequestsByAddress(ctx context.Context, addr models.Address) ([]models.AnalysisRequest, error)
	Grant(ctx context.Context, requestID int64) (models.ConsentGrant, error)
	Events(ctx context.Context, afterSeq int64, limit int) ([]models.LedgerEvent, error)
}

// Signer produces the signature a transaction is submitted with.
type Signer interface {
	Sign(tx models.Transaction) (models.SignedTx, error)
}

// Verifier checks that a signature was made by tx.Signer on behalf of
// tx.From and covers tx. Whether tx.Signer may act for tx.From is decided
// by the ledger's signer bindings.
type Verifier interface {
	Verify(signed models.SignedTx) error
}
