// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service holds the business logic of the consent protocol.
//
// The client side is made of four services sharing one ledger connection
// and one local SQLite store:
//   - VaultService keeps a subject's genomic payload encrypted at rest.
//   - ExportService moves a vault payload to and from the remote blob store
//     under a separate password.
//   - ConsentService issues the signed ledger transactions (register,
//     request, grant, decline) and owns the retry policy.
//   - Coordinator follows each analysis request through its lifecycle,
//     keeping a local cache that the ledger always overrides.
//
// The ledger node side is LedgerService (the rule processor with metrics)
// and AppInfoService.
package service

import (
	"context"

	"github.com/MKhiriev/go-gene-consent/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// VaultService stores one encrypted payload per identity. Writes for the same
// subject are serialized; distinct subjects proceed in parallel.
type VaultService interface {
	// Store encrypts payload and replaces any previous entry. Nothing is
	// written if encryption or its verification fails.
	Store(ctx context.Context, subjectID string, payload []byte, fileName string) (models.VaultEntry, error)

	// Retrieve returns the plaintext. Any authentication or hash failure is
	// crypto.ErrDecryptionFailed, a missing entry store.ErrVaultEntryNotFound.
	Retrieve(ctx context.Context, subjectID string) ([]byte, error)

	Exists(ctx context.Context, subjectID string) (bool, error)

	// HashOf returns the DataHash of the stored payload without decrypting.
	HashOf(ctx context.Context, subjectID string) (models.Hash, error)

	// Entry returns the stored metadata. Ciphertext fields are cleared.
	Entry(ctx context.Context, subjectID string) (models.VaultEntry, error)

	Delete(ctx context.Context, subjectID string) error
}

// ExportService carries vault payloads through the password export pipeline.
type ExportService interface {
	// Export seals the subject's payload under password, uploads the blob
	// and returns the blob store reference.
	Export(ctx context.Context, subjectID, password string) (string, error)

	// Import downloads ref, opens it with password and stores the payload
	// in the vault of subjectID.
	Import(ctx context.Context, subjectID, ref, password, fileName string) (models.VaultEntry, error)
}

// ConsentService issues ledger transactions on behalf of a subject. Reads
// are retried while the ledger is unavailable; writes re-query ledger state
// before resubmitting so that an applied transaction is never sent twice.
type ConsentService interface {
	RegisterIdentity(ctx context.Context, subjectID string, dataHash models.Hash) (models.RegistrationResult, error)
	UpdateRegistration(ctx context.Context, subjectID string, dataHash models.Hash) (string, error)

	// RequestAnalysis opens a pending request against target and starts
	// tracking it in the local cache.
	RequestAnalysis(ctx context.Context, requesterSubjectID string, target models.Address) (models.RequestResult, error)

	// GrantConsent records consent for requestID. For the direct method
	// material is the encrypted key material; for the indirect method it is
	// the retrieval reference.
	GrantConsent(ctx context.Context, subjectID string, requestID int64, method models.ConsentMethod, material []byte) (string, error)

	// DeclineRequest fails a pending request. The target uses it to refuse,
	// the requester to cancel.
	DeclineRequest(ctx context.Context, subjectID string, requestID int64, reason string) (string, error)

	ListRequests(ctx context.Context, subjectID string) ([]int64, error)

	// Address derives the ledger address of subjectID.
	Address(subjectID string) (models.Address, error)
}

// Coordinator tracks analysis requests for the local subject. The ledger is
// authoritative; the cache answers only while the ledger is unreachable.
type Coordinator interface {
	// Get reads through the cache.
	Get(ctx context.Context, requestID int64) (models.AnalysisRequest, error)

	// Pending reconciles and returns the pending requests targeting subjectID.
	Pending(ctx context.Context, subjectID string) ([]models.AnalysisRequest, error)

	// Reconcile refreshes every request of subjectID from the ledger and
	// expires the subject's own pending requests older than the TTL.
	Reconcile(ctx context.Context, subjectID string) ([]models.AnalysisRequest, error)

	// Dispatch hands a consented request to the analysis engine.
	Dispatch(ctx context.Context, requestID int64) error

	// ReportResult records what the engine reported: a result completes the
	// request, an error fails it.
	ReportResult(ctx context.Context, subjectID string, report models.AnalysisReport) (string, error)

	// Result returns the result reference of a completed request.
	Result(ctx context.Context, requestID int64) (string, error)
}

// LedgerService is the ledger node's view of the rule processor.
type LedgerService interface {
	Submit(ctx context.Context, signed models.SignedTx) (models.Receipt, error)
	Registration(ctx context.Context, addr models.Address) (models.Registration, error)
	Request(ctx context.Context, requestID int64) (models.AnalysisRequest, error)
	RequestsByAddress(ctx context.Context, addr models.Address) ([]models.AnalysisRequest, error)
	Grant(ctx context.Context, requestID int64) (models.ConsentGrant, error)
	Events(ctx context.Context, afterSeq int64, limit int) ([]models.LedgerEvent, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
