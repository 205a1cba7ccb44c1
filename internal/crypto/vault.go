package crypto

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-gene-consent/models"
)

// VaultCipher seals and opens vault payloads for one key policy. The
// IdentityHash is bound as associated data, so an entry copied under another
// identity does not authenticate.
type VaultCipher struct {
	deriver *IdentityDeriver
	policy  KeyPolicy
}

// NewVaultCipher returns a cipher using deriver for commitments and policy
// for keys.
func NewVaultCipher(deriver *IdentityDeriver, policy KeyPolicy) *VaultCipher {
	return &VaultCipher{deriver: deriver, policy: policy}
}

// Policy returns the name of the active key policy.
func (v *VaultCipher) Policy() string {
	return v.policy.Name()
}

// SubjectKey returns the storage key for subjectID (hex IdentityHash).
func (v *VaultCipher) SubjectKey(subjectID string) (string, error) {
	h, err := v.deriver.HashIdentity(subjectID)
	if err != nil {
		return "", err
	}
	return h.Hex(), nil
}

// Seal encrypts plaintext and returns an entry with SubjectKey, Ciphertext,
// Nonce, KDFSalt, KeyPolicy, DataHash and SizeBytes filled. The ciphertext is
// opened again and re-hashed before returning, so a returned entry always
// decrypts to data matching its DataHash.
func (v *VaultCipher) Seal(subjectID string, plaintext []byte) (models.VaultEntry, error) {
	identityHash, err := v.deriver.HashIdentity(subjectID)
	if err != nil {
		return models.VaultEntry{}, err
	}
	dataHash := HashPayload(plaintext)

	key, salt, err := v.policy.NewKey(subjectID)
	if err != nil {
		return models.VaultEntry{}, fmt.Errorf("derive vault key: %w", err)
	}

	nonce, ciphertext, err := seal(key, plaintext, identityHash.Bytes())
	if err != nil {
		return models.VaultEntry{}, fmt.Errorf("encrypt payload: %w", err)
	}

	check, err := open(key, nonce, ciphertext, identityHash.Bytes())
	if err != nil || HashPayload(check) != dataHash || !bytes.Equal(check, plaintext) {
		return models.VaultEntry{}, fmt.Errorf("verify sealed payload: %w", ErrDecryptionFailed)
	}

	return models.VaultEntry{
		SubjectKey: identityHash.Hex(),
		Ciphertext: ciphertext,
		Nonce:      nonce,
		KDFSalt:    salt,
		KeyPolicy:  v.policy.Name(),
		DataHash:   dataHash,
		SizeBytes:  int64(len(plaintext)),
	}, nil
}

// Open decrypts entry. Every failure, including a data-hash mismatch after a
// successful tag check, is reported as ErrDecryptionFailed.
func (v *VaultCipher) Open(subjectID string, entry models.VaultEntry) ([]byte, error) {
	identityHash, err := v.deriver.HashIdentity(subjectID)
	if err != nil {
		return nil, err
	}
	if entry.KeyPolicy != v.policy.Name() {
		return nil, errors.Join(ErrDecryptionFailed, ErrKeyPolicyMismatch)
	}

	key, err := v.policy.DeriveKey(subjectID, entry.KDFSalt)
	if err != nil {
		if errors.Is(err, ErrDecryptionFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: derive vault key: %w", ErrDecryptionFailed, err)
	}

	plaintext, err := open(key, entry.Nonce, entry.Ciphertext, identityHash.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecryptionFailed, err)
	}
	if HashPayload(plaintext) != entry.DataHash {
		return nil, fmt.Errorf("%w: data hash mismatch", ErrDecryptionFailed)
	}

	return plaintext, nil
}
