// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/hex"
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Address is the ledger-native, publicly referenceable handle derived from an
// identity credential. It has the width of an Ethereum account address.
type Address = common.Address

// Hash is a 32-byte Keccak-256 commitment (IdentityHash, DataHash, digests).
type Hash = common.Hash

// ErrInvalidAddress is returned by [ParseAddress] for malformed input.
var ErrInvalidAddress = errors.New("invalid address")

// ParseAddress parses a 0x-prefixed (or bare) 40-hex-digit address.
func ParseAddress(s string) (Address, error) {
	s = strings.TrimSpace(s)
	if !common.IsHexAddress(s) {
		return Address{}, ErrInvalidAddress
	}
	return common.HexToAddress(s), nil
}

// ErrInvalidHash is returned by [ParseHash] for malformed input.
var ErrInvalidHash = errors.New("invalid hash")

// ParseHash parses a 0x-prefixed (or bare) 64-hex-digit hash. HexToHash
// silently truncates and ignores bad digits, so it is not used here.
func ParseHash(s string) (Hash, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	if len(s) != 2*common.HashLength {
		return Hash{}, ErrInvalidHash
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return Hash{}, ErrInvalidHash
	}
	return common.BytesToHash(b), nil
}
