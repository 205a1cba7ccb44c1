package crypto

import "github.com/MKhiriev/go-gene-consent/models"

// AddressDeriver is the identity side of the package: credential to ledger
// address and commitments. Implemented by *IdentityDeriver.
type AddressDeriver interface {
	// DeriveAddress returns the 20-byte ledger address of subjectID.
	// The same credential always yields the same address.
	DeriveAddress(subjectID string) (models.Address, error)

	// HashIdentity returns the identity commitment used as vault key and
	// ledger IdentityHash.
	HashIdentity(subjectID string) (models.Hash, error)

	// HashPayload returns the 32-byte content commitment of payload.
	HashPayload(payload []byte) models.Hash
}

// Sealer encrypts vault payloads. Implemented by *VaultCipher.
type Sealer interface {
	Policy() string
	SubjectKey(subjectID string) (string, error)
	Seal(subjectID string, plaintext []byte) (models.VaultEntry, error)
	Open(subjectID string, entry models.VaultEntry) ([]byte, error)
}

// PasswordSealer is the export pipeline. Implemented by *PasswordCipher.
type PasswordSealer interface {
	Encrypt(plaintext []byte, password string) (string, error)
	Decrypt(blob string, password string) ([]byte, error)
}

var (
	_ AddressDeriver = (*IdentityDeriver)(nil)
	_ Sealer         = (*VaultCipher)(nil)
	_ PasswordSealer = (*PasswordCipher)(nil)
)
