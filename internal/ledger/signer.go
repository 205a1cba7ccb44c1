package ledger

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/MKhiriev/go-gene-consent/internal/utils"
	"github.com/MKhiriev/go-gene-consent/models"
)

const defaultSignatureTTL = 5 * time.Minute

// KeySigner signs transactions with one secp256k1 key. The token subject is
// the sender address and the txd claim is the transaction digest, which
// covers tx.Signer, so a signature cannot be replayed onto a modified
// transaction or attributed to another key.
type KeySigner struct {
	key     *ecdsa.PrivateKey
	address models.Address
	issuer  string
	ttl     time.Duration
}

// NewKeySigner returns a signer for key; ttl <= 0 uses five minutes.
func NewKeySigner(key *ecdsa.PrivateKey, issuer string, ttl time.Duration) (*KeySigner, error) {
	if key == nil || issuer == "" {
		return nil, errors.New("signing key and issuer are required")
	}
	if ttl <= 0 {
		ttl = defaultSignatureTTL
	}
	return &KeySigner{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
		issuer:  issuer,
		ttl:     ttl,
	}, nil
}

// Address is the signer address transactions are stamped with.
func (s *KeySigner) Address() models.Address {
	return s.address
}

func (s *KeySigner) Sign(tx models.Transaction) (models.SignedTx, error) {
	tx.Signer = s.address
	digest, err := tx.Digest()
	if err != nil {
		return models.SignedTx{}, err
	}

	sig, err := utils.GenerateTxToken(s.issuer, tx.From.Hex(), digest.Hex(), s.ttl, s.key)
	if err != nil {
		return models.SignedTx{}, fmt.Errorf("sign transaction: %w", err)
	}

	return models.SignedTx{Tx: tx, Signature: sig}, nil
}

// TokenVerifier checks signatures made by any KeySigner with the same
// issuer. It holds no keys: the signing address is recovered from the
// signature and must equal tx.Signer.
type TokenVerifier struct {
	issuer string
}

func NewTokenVerifier(issuer string) (*TokenVerifier, error) {
	if issuer == "" {
		return nil, errors.New("issuer is required")
	}
	return &TokenVerifier{issuer: issuer}, nil
}

// Verify fails with ErrInvalidSignature (joined with ErrLedgerRejected).
func (v *TokenVerifier) Verify(signed models.SignedTx) error {
	claims, err := utils.ValidateTxToken(signed.Signature, signed.Tx.Signer, v.issuer)
	if err != nil {
		return reject(fmt.Errorf("%w: %w", ErrInvalidSignature, err))
	}

	if claims.Subject != signed.Tx.From.Hex() {
		return rejectf(ErrInvalidSignature, "signed for %s, sent from %s", claims.Subject, signed.Tx.From.Hex())
	}

	digest, err := signed.Tx.Digest()
	if err != nil {
		return reject(fmt.Errorf("%w: %w", ErrInvalidSignature, err))
	}
	if claims.Digest != digest.Hex() {
		return rejectf(ErrInvalidSignature, "digest mismatch")
	}

	return nil
}

var (
	_ Signer   = (*KeySigner)(nil)
	_ Verifier = (*TokenVerifier)(nil)
)
