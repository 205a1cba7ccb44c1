// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"encoding/base64"
	"fmt"
)

// PasswordCipher is the export pipeline: Argon2id(password, salt) feeding
// AES-256-GCM. It is independent of the vault key policies.
//
// Blob layout before base64 (standard encoding):
//
//	salt (16) || nonce (12) || ciphertext || tag (16)
type PasswordCipher struct {
	params Argon2Params
}

// NewPasswordCipher returns an export cipher with the given KDF parameters.
func NewPasswordCipher(params Argon2Params) *PasswordCipher {
	return &PasswordCipher{params: params}
}

// Encrypt seals plaintext under password and returns the base64 blob. Empty
// plaintext and an empty password are both valid.
func (p *PasswordCipher) Encrypt(plaintext []byte, password string) (string, error) {
	salt, err := randomBytes(saltSize)
	if err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	key := p.params.deriveKey(password, salt)

	nonce, ciphertext, err := seal(key, plaintext, nil)
	if err != nil {
		return "", fmt.Errorf("encrypt export: %w", err)
	}

	blob := make([]byte, 0, saltSize+nonceSize+len(ciphertext))
	blob = append(blob, salt...)
	blob = append(blob, nonce...)
	blob = append(blob, ciphertext...)

	return base64.StdEncoding.EncodeToString(blob), nil
}

// Decrypt opens a blob produced by Encrypt. A wrong password, a flipped byte
// or a malformed blob all fail with ErrAuthenticationFailed.
func (p *PasswordCipher) Decrypt(blobB64 string, password string) ([]byte, error) {
	blob, err := base64.StdEncoding.DecodeString(blobB64)
	if err != nil {
		return nil, fmt.Errorf("%w: decode base64: %w", ErrAuthenticationFailed, err)
	}
	if len(blob) < saltSize+nonceSize+tagSize {
		return nil, fmt.Errorf("%w: blob too short", ErrAuthenticationFailed)
	}

	salt := blob[:saltSize]
	nonce := blob[saltSize : saltSize+nonceSize]
	ciphertext := blob[saltSize+nonceSize:]

	plaintext, err := open(p.params.deriveKey(password, salt), nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAuthenticationFailed, err)
	}
	return plaintext, nil
}

var defaultPasswordCipher = NewPasswordCipher(DefaultArgon2Params())

// EncryptWithPassword seals plaintext with the default KDF parameters.
func EncryptWithPassword(plaintext []byte, password string) (string, error) {
	return defaultPasswordCipher.Encrypt(plaintext, password)
}

// DecryptWithPassword opens a blob sealed with the default KDF parameters.
func DecryptWithPassword(blob string, password string) ([]byte, error) {
	return defaultPasswordCipher.Decrypt(blob, password)
}
