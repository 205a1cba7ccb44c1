// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
)

// TxKind enumerates the state changes the consent ledger accepts.
type TxKind string

const (
	TxRegister           TxKind = "register"
	TxUpdateRegistration TxKind = "update_registration"
	TxRequestAnalysis    TxKind = "request_analysis"
	TxGrantConsent       TxKind = "grant_consent"
	TxFailRequest        TxKind = "fail_request"
	TxCompleteRequest    TxKind = "complete_request"
)

// IsValid reports whether k is a known kind.
func (k TxKind) IsValid() bool {
	switch k {
	case TxRegister, TxUpdateRegistration, TxRequestAnalysis,
		TxGrantConsent, TxFailRequest, TxCompleteRequest:
		return true
	}
	return false
}

// Transaction is a single ledger-bound state change issued by From. Only the
// fields relevant to Kind are populated.
type Transaction struct {
	Kind TxKind  `json:"kind"`
	From Address `json:"from"`
	// Signer is the address of the key the transaction is signed with. The
	// ledger binds it to From the first time From transacts.
	Signer Address `json:"signer"`

	// register, update_registration
	IdentityHash Hash `json:"identity_hash"`
	DataHash     Hash `json:"data_hash"`

	// request_analysis
	Target Address `json:"target"`

	// grant_consent, fail_request, complete_request
	RequestID    int64         `json:"request_id,omitempty"`
	Method       ConsentMethod `json:"method,omitempty"`
	KeyMaterial  []byte        `json:"key_material,omitempty"`
	RetrievalRef string        `json:"retrieval_ref,omitempty"`
	ResultRef    string        `json:"result_ref,omitempty"`
	Reason       string        `json:"reason,omitempty"`

	// Nonce makes two otherwise identical transactions distinct.
	Nonce    string `json:"nonce"`
	IssuedAt int64  `json:"issued_at"`
}

// Digest is the Keccak-256 of the canonical JSON encoding. Signatures and the
// audit chain commit to this value.
func (t Transaction) Digest() (Hash, error) {
	payload, err := json.Marshal(t)
	if err != nil {
		return Hash{}, fmt.Errorf("marshal transaction: %w", err)
	}
	return crypto.Keccak256Hash(payload), nil
}

// SignedTx is a transaction plus the opaque signature produced by a signer.
type SignedTx struct {
	Tx        Transaction `json:"tx"`
	Signature string      `json:"signature"`
}

// Receipt is the structured result of a submitted transaction.
type Receipt struct {
	TxRef     string        `json:"tx_ref"`
	Seq       int64         `json:"seq"`
	RequestID int64         `json:"request_id,omitempty"`
	Status    RequestStatus `json:"status,omitempty"`
}

// LedgerEvent is one link of the append-only, hash-chained audit trail.
// Hash commits to every other field, PrevHash included, so rewriting any
// column of a stored event breaks the chain.
type LedgerEvent struct {
	Seq        int64     `json:"seq"`
	Kind       TxKind    `json:"kind"`
	From       Address   `json:"from"`
	RequestID  int64     `json:"request_id,omitempty"`
	Digest     Hash      `json:"digest"`
	PrevHash   Hash      `json:"prev_hash"`
	Hash       Hash      `json:"hash"`
	RecordedAt time.Time `json:"recorded_at"`
}

// TxRef returns the reference handed back to callers for this event.
func (e LedgerEvent) TxRef() string {
	return e.Hash.Hex()
}
