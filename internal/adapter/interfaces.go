// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client side of every remote collaborator:
// the consent ledger node, the analysis engine and the blob store used by
// vault export.
//
// All implementations speak HTTP through resty. Ledger responses are mapped
// back to the ledger package errors by mapLedgerError, so a remote ledger
// fails exactly like an in-process one: rejections are joined with
// [ledger.ErrLedgerRejected], 5xx and transport failures wrap
// [ledger.ErrLedgerUnavailable].
package adapter

import (
	"context"

	"github.com/MKhiriev/go-gene-consent/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// AnalysisEngine runs comparisons for consented requests. Submit only hands
// the job over; the result arrives later as a [models.AnalysisReport].
type AnalysisEngine interface {
	Submit(ctx context.Context, job models.AnalysisJob) error
}

// BlobStore keeps password-encrypted vault exports.
type BlobStore interface {
	// Put uploads blob and returns the reference it can be fetched with.
	Put(ctx context.Context, blob string, fileName string) (string, error)

	// Get downloads the blob stored under ref.
	Get(ctx context.Context, ref string) (string, error)
}
