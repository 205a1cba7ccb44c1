package models

import "time"

// VaultEntry is the at-rest record of one identity's genomic payload. It never
// carries plaintext. SubjectKey is the hex IdentityHash, not the credential.
type VaultEntry struct {
	SubjectKey string    `json:"subject_key"`
	Ciphertext []byte    `json:"-"`
	Nonce      []byte    `json:"-"`
	KDFSalt    []byte    `json:"-"`
	KeyPolicy  string    `json:"key_policy"`
	DataHash   Hash      `json:"data_hash"`
	UploadedAt time.Time `json:"uploaded_at"`
	SizeBytes  int64     `json:"size_bytes"`
	FileName   string    `json:"file_name,omitempty"`
}
