package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/MKhiriev/go-gene-consent/internal/logger"
	"github.com/MKhiriev/go-gene-consent/models"
)

type localVaultRepository struct {
	*DB
	queries sealedEntryQueries
	logger  *logger.Logger
}

func NewLocalVaultRepository(db *DB, logger *logger.Logger) VaultRepository {
	return &localVaultRepository{
		DB:      db,
		queries: vaultEntryQueries,
		logger:  logger,
	}
}

// NewLocalKeyRepository stores sealed signing keys. They are vault entries
// too, kept in their own table so deleting genomic data leaves the key.
func NewLocalKeyRepository(db *DB, logger *logger.Logger) VaultRepository {
	return &localVaultRepository{
		DB:      db,
		queries: signingKeyQueries,
		logger:  logger,
	}
}

func (l *localVaultRepository) SaveVaultEntry(ctx context.Context, entry models.VaultEntry) error {
	log := logger.FromContext(ctx)

	res, err := l.DB.ExecContext(ctx, l.queries.upsert,
		entry.SubjectKey,
		entry.Ciphertext,
		entry.Nonce,
		entry.KDFSalt,
		entry.KeyPolicy,
		entry.DataHash.Hex(),
		entry.UploadedAt,
		entry.SizeBytes,
		entry.FileName,
	)
	if err != nil {
		log.Err(err).
			Str("func", "localVaultRepository.SaveVaultEntry").
			Str("subject_key", entry.SubjectKey).
			Msg("failed to execute upsert for vault entry")
		return fmt.Errorf("failed to save vault entry: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrVaultEntryNotSaved
	}
	return nil
}

func (l *localVaultRepository) GetVaultEntry(ctx context.Context, subjectKey string) (models.VaultEntry, error) {
	log := logger.FromContext(ctx)

	var (
		entry    models.VaultEntry
		dataHash string
	)
	err := l.DB.QueryRowContext(ctx, l.queries.get, subjectKey).Scan(
		&entry.SubjectKey,
		&entry.Ciphertext,
		&entry.Nonce,
		&entry.KDFSalt,
		&entry.KeyPolicy,
		&dataHash,
		&entry.UploadedAt,
		&entry.SizeBytes,
		&entry.FileName,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.VaultEntry{}, ErrVaultEntryNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "localVaultRepository.GetVaultEntry").
			Str("subject_key", subjectKey).
			Msg("failed to scan vault entry row")
		return models.VaultEntry{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	entry.DataHash = common.HexToHash(dataHash)
	return entry, nil
}

func (l *localVaultRepository) VaultEntryExists(ctx context.Context, subjectKey string) (bool, error) {
	var exists bool
	if err := l.DB.QueryRowContext(ctx, l.queries.exists, subjectKey).Scan(&exists); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "localVaultRepository.VaultEntryExists").
			Str("subject_key", subjectKey).
			Msg("failed to check vault entry")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return exists, nil
}

func (l *localVaultRepository) DeleteVaultEntry(ctx context.Context, subjectKey string) error {
	res, err := l.DB.ExecContext(ctx, l.queries.remove, subjectKey)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "localVaultRepository.DeleteVaultEntry").
			Str("subject_key", subjectKey).
			Msg("failed to delete vault entry")
		return fmt.Errorf("failed to delete vault entry: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if n == 0 {
		return ErrVaultEntryNotFound
	}
	return nil
}
