package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-gene-consent/internal/adapter"
	"github.com/MKhiriev/go-gene-consent/internal/crypto"
	"github.com/MKhiriev/go-gene-consent/internal/logger"
	"github.com/MKhiriev/go-gene-consent/models"
)

type exportService struct {
	vault  VaultService
	sealer crypto.PasswordSealer
	blobs  adapter.BlobStore

	logger *logger.Logger
}

func NewExportService(vault VaultService, sealer crypto.PasswordSealer, blobs adapter.BlobStore, logger *logger.Logger) ExportService {
	return &exportService{
		vault:  vault,
		sealer: sealer,
		blobs:  blobs,
		logger: logger,
	}
}

func (e *exportService) Export(ctx context.Context, subjectID, password string) (string, error) {
	plaintext, err := e.vault.Retrieve(ctx, subjectID)
	if err != nil {
		return "", err
	}

	entry, err := e.vault.Entry(ctx, subjectID)
	if err != nil {
		return "", err
	}

	blob, err := e.sealer.Encrypt(plaintext, password)
	if err != nil {
		return "", fmt.Errorf("seal export: %w", err)
	}

	ref, err := e.blobs.Put(ctx, blob, entry.FileName)
	if err != nil {
		e.logger.Err(err).Str("func", "*exportService.Export").Msg("blob upload failed")
		return "", fmt.Errorf("upload export: %w", err)
	}

	e.logger.Info().Str("ref", ref).Str("data_hash", entry.DataHash.Hex()).Msg("vault exported")
	return ref, nil
}

func (e *exportService) Import(ctx context.Context, subjectID, ref, password, fileName string) (models.VaultEntry, error) {
	blob, err := e.blobs.Get(ctx, ref)
	if err != nil {
		return models.VaultEntry{}, fmt.Errorf("download export: %w", err)
	}

	plaintext, err := e.sealer.Decrypt(blob, password)
	if err != nil {
		return models.VaultEntry{}, err
	}

	entry, err := e.vault.Store(ctx, subjectID, plaintext, fileName)
	if err != nil {
		return models.VaultEntry{}, err
	}

	e.logger.Info().Str("ref", ref).Str("data_hash", entry.DataHash.Hex()).Msg("vault imported")
	return entry, nil
}
