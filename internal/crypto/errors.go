// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "errors"

var (
	// ErrInvalidIdentity is returned for an empty identity credential.
	ErrInvalidIdentity = errors.New("invalid identity")

	// ErrDecryptionFailed is returned when a vault ciphertext does not
	// authenticate or does not match its recorded data hash.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrKeyPolicyMismatch is returned when an entry sealed under one key
	// policy is opened under another. It always wraps ErrDecryptionFailed.
	ErrKeyPolicyMismatch = errors.New("vault key policy mismatch")

	// ErrAuthenticationFailed is returned by the password pipeline for a wrong
	// password, a tampered blob or a malformed blob.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrEmptyPassphrase is returned when a passphrase policy is given an
	// empty secret.
	ErrEmptyPassphrase = errors.New("empty passphrase")
)
