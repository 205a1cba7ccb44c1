package models

import "time"

// ConsentMethod tells the requester how the key material reaches them.
type ConsentMethod string

const (
	// MethodDirect attaches encrypted key material inline.
	MethodDirect ConsentMethod = "direct"
	// MethodIndirect references an out-of-band retrieval method.
	MethodIndirect ConsentMethod = "indirect"
)

// IsValid reports whether m is a known method.
func (m ConsentMethod) IsValid() bool {
	return m == MethodDirect || m == MethodIndirect
}

// ConsentGrant is immutable once recorded; at most one exists per request.
type ConsentGrant struct {
	RequestID            int64         `json:"request_id"`
	Granter              Address       `json:"granter"`
	Method               ConsentMethod `json:"method"`
	EncryptedKeyMaterial []byte        `json:"encrypted_key_material,omitempty"`
	RetrievalRef         string        `json:"retrieval_ref,omitempty"`
	TxRef                string        `json:"tx_ref"`
	GrantedAt            time.Time     `json:"granted_at"`
}

// Registration binds an address to the identity and data commitments.
type Registration struct {
	Address      Address   `json:"address"`
	IdentityHash Hash      `json:"identity_hash"`
	DataHash     Hash      `json:"data_hash"`
	TxRef        string    `json:"tx_ref"`
	RegisteredAt time.Time `json:"registered_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RegistrationResult is what a successful identity registration returns.
type RegistrationResult struct {
	Address Address `json:"address"`
	TxRef   string  `json:"tx_ref"`
}

// RequestResult is what a successful analysis request returns.
type RequestResult struct {
	RequestID int64  `json:"request_id"`
	TxRef     string `json:"tx_ref"`
}

// SignerBinding pins the key an address signs with. It is recorded with the
// first accepted transaction from Address and never changes afterwards.
type SignerBinding struct {
	Address Address   `json:"address"`
	Signer  Address   `json:"signer"`
	TxRef   string    `json:"tx_ref"`
	BoundAt time.Time `json:"bound_at"`
}
