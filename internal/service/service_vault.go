package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-gene-consent/internal/crypto"
	"github.com/MKhiriev/go-gene-consent/internal/logger"
	"github.com/MKhiriev/go-gene-consent/internal/store"
	"github.com/MKhiriev/go-gene-consent/models"
)

type vaultService struct {
	cipher crypto.Sealer
	repo   store.VaultRepository
	locks  *keyedMutex
	now    func() time.Time

	logger *logger.Logger
}

// NewVaultService returns a VaultService sealing with cipher and persisting
// into repo.
func NewVaultService(cipher crypto.Sealer, repo store.VaultRepository, logger *logger.Logger) VaultService {
	return &vaultService{
		cipher: cipher,
		repo:   repo,
		locks:  newKeyedMutex(),
		now:    time.Now,
		logger: logger,
	}
}

func (v *vaultService) Store(ctx context.Context, subjectID string, payload []byte, fileName string) (models.VaultEntry, error) {
	key, err := v.cipher.SubjectKey(subjectID)
	if err != nil {
		return models.VaultEntry{}, err
	}

	unlock := v.locks.Lock(key)
	defer unlock()

	entry, err := v.cipher.Seal(subjectID, payload)
	if err != nil {
		v.logger.Err(err).Str("func", "*vaultService.Store").Msg("sealing payload failed")
		return models.VaultEntry{}, fmt.Errorf("seal payload: %w", err)
	}
	entry.FileName = fileName
	entry.UploadedAt = v.now().UTC()

	if err = v.repo.SaveVaultEntry(ctx, entry); err != nil {
		return models.VaultEntry{}, err
	}

	v.logger.Debug().
		Str("subject_key", key).
		Str("data_hash", entry.DataHash.Hex()).
		Int64("size", entry.SizeBytes).
		Msg("vault entry stored")

	return metadata(entry), nil
}

func (v *vaultService) Retrieve(ctx context.Context, subjectID string) ([]byte, error) {
	entry, err := v.load(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	plaintext, err := v.cipher.Open(subjectID, entry)
	if err != nil {
		v.logger.Warn().Err(err).Str("subject_key", entry.SubjectKey).Msg("vault entry did not decrypt")
		return nil, err
	}
	return plaintext, nil
}

func (v *vaultService) Exists(ctx context.Context, subjectID string) (bool, error) {
	key, err := v.cipher.SubjectKey(subjectID)
	if err != nil {
		return false, err
	}
	return v.repo.VaultEntryExists(ctx, key)
}

func (v *vaultService) HashOf(ctx context.Context, subjectID string) (models.Hash, error) {
	entry, err := v.load(ctx, subjectID)
	if err != nil {
		return models.Hash{}, err
	}
	return entry.DataHash, nil
}

func (v *vaultService) Entry(ctx context.Context, subjectID string) (models.VaultEntry, error) {
	entry, err := v.load(ctx, subjectID)
	if err != nil {
		return models.VaultEntry{}, err
	}
	return metadata(entry), nil
}

func (v *vaultService) Delete(ctx context.Context, subjectID string) error {
	key, err := v.cipher.SubjectKey(subjectID)
	if err != nil {
		return err
	}

	unlock := v.locks.Lock(key)
	defer unlock()

	return v.repo.DeleteVaultEntry(ctx, key)
}

func (v *vaultService) load(ctx context.Context, subjectID string) (models.VaultEntry, error) {
	key, err := v.cipher.SubjectKey(subjectID)
	if err != nil {
		return models.VaultEntry{}, err
	}
	return v.repo.GetVaultEntry(ctx, key)
}

func metadata(entry models.VaultEntry) models.VaultEntry {
	entry.Ciphertext = nil
	entry.Nonce = nil
	entry.KDFSalt = nil
	return entry
}
