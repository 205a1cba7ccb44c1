package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// TxClaims are the JWT claims a signer attaches to a transaction. Subject is
// the hex address of the signer and Digest the hex Keccak digest of the tx.
type TxClaims struct {
	jwt.RegisteredClaims

	Digest string `json:"txd"`
}
