// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"encoding/binary"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/MKhiriev/go-gene-consent/models"
)

// Domain-separation tags. Changing either one changes every derived value.
const (
	addressTag  = "gene-consent/address/v1"
	identityTag = "gene-consent/identity/v1"
)

// IdentityDeriver maps an identity credential to its ledger address and
// commitments. It holds no mutable state and is safe for concurrent use.
type IdentityDeriver struct {
	protocolSalt []byte
}

// NewIdentityDeriver returns a deriver bound to the deployment-wide salt.
func NewIdentityDeriver(protocolSalt string) *IdentityDeriver {
	return &IdentityDeriver{protocolSalt: []byte(protocolSalt)}
}

// DeriveAddress returns the last 20 bytes of
// Keccak256(tag || len(subjectID) || subjectID || protocolSalt).
// The length prefix keeps ("ab","c") and ("a","bc") style splits apart.
func (d *IdentityDeriver) DeriveAddress(subjectID string) (models.Address, error) {
	if err := validateSubject(subjectID); err != nil {
		return models.Address{}, err
	}

	var length [8]byte
	binary.BigEndian.PutUint64(length[:], uint64(len(subjectID)))

	digest := crypto.Keccak256(
		[]byte(addressTag),
		length[:],
		[]byte(subjectID),
		d.protocolSalt,
	)
	return common.BytesToAddress(digest[common.HashLength-common.AddressLength:]), nil
}

// HashIdentity returns Keccak256(identityTag || subjectID). It does not use the
// protocol salt, so it is distinct from the address.
func (d *IdentityDeriver) HashIdentity(subjectID string) (models.Hash, error) {
	if err := validateSubject(subjectID); err != nil {
		return models.Hash{}, err
	}
	return crypto.Keccak256Hash([]byte(identityTag), []byte(subjectID)), nil
}

// HashPayload returns Keccak256(payload).
func (d *IdentityDeriver) HashPayload(payload []byte) models.Hash {
	return HashPayload(payload)
}

// HashPayload is the package-level form of [IdentityDeriver.HashPayload].
func HashPayload(payload []byte) models.Hash {
	return crypto.Keccak256Hash(payload)
}

func validateSubject(subjectID string) error {
	if strings.TrimSpace(subjectID) == "" {
		return ErrInvalidIdentity
	}
	return nil
}
