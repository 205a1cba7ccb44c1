package store

import (
	"context"

	"github.com/MKhiriev/go-gene-consent/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// VaultRepository persists encrypted vault entries keyed by the hex
// IdentityHash. It never sees plaintext.
type VaultRepository interface {
	// SaveVaultEntry inserts or replaces the entry in a single statement.
	SaveVaultEntry(ctx context.Context, entry models.VaultEntry) error
	// GetVaultEntry returns ErrVaultEntryNotFound if nothing is stored.
	GetVaultEntry(ctx context.Context, subjectKey string) (models.VaultEntry, error)
	VaultEntryExists(ctx context.Context, subjectKey string) (bool, error)
	// DeleteVaultEntry returns ErrVaultEntryNotFound if nothing was deleted.
	DeleteVaultEntry(ctx context.Context, subjectKey string) error
}

// RequestCache is the local, non-authoritative copy of analysis requests.
type RequestCache interface {
	// StoreAnalysisRequest starts tracking req. An already cached request is
	// left untouched.
	StoreAnalysisRequest(ctx context.Context, req models.AnalysisRequest) error

	// UpdateAnalysisRequestStatus moves a cached request to next. An illegal
	// transition fails with ledger.ErrInvalidTransition and changes nothing.
	UpdateAnalysisRequestStatus(ctx context.Context, requestID int64, next models.RequestStatus, resultRef, reason string) (models.AnalysisRequest, error)

	// OverwriteAnalysisRequest replaces the cached copy with ledger truth.
	OverwriteAnalysisRequest(ctx context.Context, req models.AnalysisRequest) error

	// GetAnalysisRequest returns ErrRequestNotCached if unknown.
	GetAnalysisRequest(ctx context.Context, requestID int64) (models.AnalysisRequest, error)

	// ListAnalysisRequests returns cached requests where addr is a party.
	ListAnalysisRequests(ctx context.Context, addr models.Address) ([]models.AnalysisRequest, error)
}
