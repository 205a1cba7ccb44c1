package service

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"time"

	gethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/MKhiriev/go-gene-consent/internal/crypto"
	"github.com/MKhiriev/go-gene-consent/internal/ledger"
	"github.com/MKhiriev/go-gene-consent/internal/logger"
	"github.com/MKhiriev/go-gene-consent/internal/store"
)

// Keyring hands out the transaction signer of a subject.
type Keyring interface {
	// Signer returns the signer of subjectID, creating its key on first use.
	Signer(ctx context.Context, subjectID string) (ledger.Signer, error)
}

// sealedKeyring keeps one secp256k1 key per subject, sealed like a vault
// payload. The ledger binds a subject's address to the first key it signs
// with, so losing the stored key locks the address.
type sealedKeyring struct {
	sealer crypto.Sealer
	repo   store.VaultRepository
	issuer string
	ttl    time.Duration
	locks  *keyedMutex
	now    func() time.Time

	logger *logger.Logger
}

// NewKeyring returns a Keyring sealing keys with sealer into repo. Signatures
// carry issuer and expire after ttl.
func NewKeyring(sealer crypto.Sealer, repo store.VaultRepository, issuer string, ttl time.Duration, logger *logger.Logger) Keyring {
	return &sealedKeyring{
		sealer: sealer,
		repo:   repo,
		issuer: issuer,
		ttl:    ttl,
		locks:  newKeyedMutex(),
		now:    time.Now,
		logger: logger,
	}
}

func (k *sealedKeyring) Signer(ctx context.Context, subjectID string) (ledger.Signer, error) {
	subjectKey, err := k.sealer.SubjectKey(subjectID)
	if err != nil {
		return nil, err
	}

	unlock := k.locks.Lock(subjectKey)
	defer unlock()

	priv, err := k.load(ctx, subjectID, subjectKey)
	if errors.Is(err, store.ErrVaultEntryNotFound) {
		priv, err = k.create(ctx, subjectID)
	}
	if err != nil {
		return nil, err
	}

	return ledger.NewKeySigner(priv, k.issuer, k.ttl)
}

func (k *sealedKeyring) load(ctx context.Context, subjectID, subjectKey string) (*ecdsa.PrivateKey, error) {
	entry, err := k.repo.GetVaultEntry(ctx, subjectKey)
	if err != nil {
		return nil, err
	}

	raw, err := k.sealer.Open(subjectID, entry)
	if err != nil {
		k.logger.Warn().Err(err).Str("subject_key", subjectKey).Msg("signing key did not decrypt")
		return nil, fmt.Errorf("open signing key: %w", err)
	}

	priv, err := gethcrypto.ToECDSA(raw)
	if err != nil {
		return nil, fmt.Errorf("decode signing key: %w", err)
	}
	return priv, nil
}

func (k *sealedKeyring) create(ctx context.Context, subjectID string) (*ecdsa.PrivateKey, error) {
	priv, err := gethcrypto.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("generate signing key: %w", err)
	}

	entry, err := k.sealer.Seal(subjectID, gethcrypto.FromECDSA(priv))
	if err != nil {
		return nil, fmt.Errorf("seal signing key: %w", err)
	}
	entry.UploadedAt = k.now().UTC()

	if err = k.repo.SaveVaultEntry(ctx, entry); err != nil {
		return nil, err
	}

	k.logger.Info().
		Str("subject_key", entry.SubjectKey).
		Str("signer", gethcrypto.PubkeyToAddress(priv.PublicKey).Hex()).
		Msg("signing key created")
	return priv, nil
}
