// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/hkdf"
)

const (
	keySize   = 32 // AES-256
	nonceSize = 12
	tagSize   = 16
	saltSize  = 16
)

// Argon2Params are the Argon2id tuning parameters. They are kept in a value
// so they can be adjusted per deployment target (e.g. mobile vs. desktop).
type Argon2Params struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
}

// DefaultArgon2Params follows the OWASP (2024) recommendation:
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{
		Time:    1,
		Memory:  64 * 1024,
		Threads: 4,
	}
}

// LightArgon2Params are cheap parameters for tests.
func LightArgon2Params() Argon2Params {
	return Argon2Params{
		Time:    1,
		Memory:  8 * 1024,
		Threads: 1,
	}
}

func (p Argon2Params) deriveKey(secret string, salt []byte) []byte {
	return argon2.IDKey([]byte(secret), salt, p.Time, p.Memory, p.Threads, keySize)
}

// KeyPolicy decides how a vault entry's symmetric key is obtained. Two
// policies exist and are never mixed silently: the name is stored next to the
// ciphertext and checked on open.
type KeyPolicy interface {
	// Name is persisted with every entry.
	Name() string

	// NewKey returns a key for a fresh entry together with the salt that must
	// be stored to derive it again (nil if the policy needs none).
	NewKey(subjectID string) (key, salt []byte, err error)

	// DeriveKey re-derives the key of an existing entry.
	DeriveKey(subjectID string, salt []byte) ([]byte, error)
}

// Policy names.
const (
	PolicyPassphrase = "passphrase"
	PolicyIdentity   = "identity"
)

type passphrasePolicy struct {
	passphrase string
	params     Argon2Params
}

// NewPassphrasePolicy is the default vault key policy: Argon2id over a
// user-supplied passphrase with a fresh random salt per entry.
func NewPassphrasePolicy(passphrase string, params Argon2Params) (KeyPolicy, error) {
	if passphrase == "" {
		return nil, ErrEmptyPassphrase
	}
	return &passphrasePolicy{passphrase: passphrase, params: params}, nil
}

func (p *passphrasePolicy) Name() string { return PolicyPassphrase }

func (p *passphrasePolicy) NewKey(subjectID string) ([]byte, []byte, error) {
	salt, err := randomBytes(saltSize)
	if err != nil {
		return nil, nil, fmt.Errorf("generate salt: %w", err)
	}
	return p.params.deriveKey(p.passphrase, salt), salt, nil
}

func (p *passphrasePolicy) DeriveKey(subjectID string, salt []byte) ([]byte, error) {
	if len(salt) != saltSize {
		return nil, fmt.Errorf("%w: bad kdf salt length %d", ErrDecryptionFailed, len(salt))
	}
	return p.params.deriveKey(p.passphrase, salt), nil
}

type identityPolicy struct {
	protocolSalt []byte
}

// NewIdentityPolicy derives the key from the identity credential alone via
// HKDF-SHA256. It only protects against casual inspection of the storage:
// anyone who knows the credential and the protocol salt can recompute the key.
func NewIdentityPolicy(protocolSalt string) KeyPolicy {
	return &identityPolicy{protocolSalt: []byte(protocolSalt)}
}

func (p *identityPolicy) Name() string { return PolicyIdentity }

func (p *identityPolicy) NewKey(subjectID string) ([]byte, []byte, error) {
	key, err := p.DeriveKey(subjectID, nil)
	return key, nil, err
}

func (p *identityPolicy) DeriveKey(subjectID string, _ []byte) ([]byte, error) {
	if err := validateSubject(subjectID); err != nil {
		return nil, err
	}
	r := hkdf.New(sha256.New, []byte(subjectID), p.protocolSalt, []byte("vault-key/identity/v1"))
	key := make([]byte, keySize)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("hkdf: %w", err)
	}
	return key, nil
}

// seal encrypts plaintext with AES-256-GCM under a fresh random nonce.
func seal(key, plaintext, aad []byte) (nonce, ciphertext []byte, err error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, nil, err
	}

	nonce, err = randomBytes(gcm.NonceSize())
	if err != nil {
		return nil, nil, fmt.Errorf("generate nonce: %w", err)
	}

	return nonce, gcm.Seal(nil, nonce, plaintext, aad), nil
}

// open decrypts and verifies the auth tag. Any failure yields no plaintext.
func open(key, nonce, ciphertext, aad []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != gcm.NonceSize() || len(ciphertext) < tagSize {
		return nil, fmt.Errorf("ciphertext too short")
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, err
	}
	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != keySize {
		return nil, fmt.Errorf("invalid key length: %d", len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}

func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, err
	}
	return b, nil
}
