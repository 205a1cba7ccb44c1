package utils

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/go-gene-consent/models"
)

// SigningMethodES256KR signs tokens with a secp256k1 key: a recoverable
// 65-byte [R || S || V] signature over the Keccak-256 of the signing string.
//
// Sign takes an *ecdsa.PrivateKey. Verify takes the expected signer as a
// common.Address and compares it with the address recovered from the
// signature, so the verifier never needs the public key up front.
var SigningMethodES256KR jwt.SigningMethod = signingMethodES256KR{}

type signingMethodES256KR struct{}

func init() {
	jwt.RegisterSigningMethod(SigningMethodES256KR.Alg(), func() jwt.SigningMethod {
		return SigningMethodES256KR
	})
}

func (signingMethodES256KR) Alg() string {
	return "ES256K-R"
}

func (signingMethodES256KR) Sign(signingString string, key any) ([]byte, error) {
	priv, ok := key.(*ecdsa.PrivateKey)
	if !ok || priv == nil {
		return nil, jwt.ErrInvalidKeyType
	}
	return crypto.Sign(crypto.Keccak256([]byte(signingString)), priv)
}

func (signingMethodES256KR) Verify(signingString string, sig []byte, key any) error {
	want, ok := key.(common.Address)
	if !ok {
		return jwt.ErrInvalidKeyType
	}

	pub, err := crypto.SigToPub(crypto.Keccak256([]byte(signingString)), sig)
	if err != nil {
		return fmt.Errorf("%w: %w", jwt.ErrSignatureInvalid, err)
	}
	if crypto.PubkeyToAddress(*pub) != want {
		return jwt.ErrSignatureInvalid
	}
	return nil
}

// GenerateTxToken creates a JWT signed with key attesting that subject
// issued the transaction with the given digest.
//
// Claims:
//   - iss: issuer
//   - sub: hex address of the sender
//   - txd: hex Keccak digest of the transaction
//   - iat, exp: now and now+tokenDuration
//
// Example usage:
//
//	key, _ := crypto.GenerateKey()
//	sig, err := utils.GenerateTxToken("gene-consent", from.Hex(), digest.Hex(), time.Minute, key)
func GenerateTxToken(issuer, subject, digest string, tokenDuration time.Duration, key *ecdsa.PrivateKey) (string, error) {
	if issuer == "" || subject == "" || digest == "" || tokenDuration <= 0 || key == nil {
		return "", errors.New("invalid params for generating tx token")
	}

	now := time.Now()
	claims := &models.TxClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Digest: digest,
	}

	token := jwt.NewWithClaims(SigningMethodES256KR, claims)
	signed, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("error occurred during signing tx token: %w", err)
	}

	return signed, nil
}

// ValidateTxToken verifies that tokenString was signed by the key behind
// signer, checks issuer and expiry and returns the claims. Subject and
// digest must be present.
func ValidateTxToken(tokenString string, signer models.Address, issuer string) (models.TxClaims, error) {
	var claims models.TxClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return signer, nil
	}, jwt.WithIssuer(issuer), jwt.WithValidMethods([]string{SigningMethodES256KR.Alg()}))
	if err != nil {
		return models.TxClaims{}, fmt.Errorf("error occurred validating tx token: %w", err)
	}

	if claims.Subject == "" {
		return models.TxClaims{}, errors.New("empty subject error")
	}
	if claims.Digest == "" {
		return models.TxClaims{}, errors.New("empty digest error")
	}

	return claims, nil
}
