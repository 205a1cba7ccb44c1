package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-gene-consent/internal/config"
	"github.com/MKhiriev/go-gene-consent/internal/logger"
)

// ClientStorages groups the client-side repositories, all backed by one
// local SQLite file.
type ClientStorages struct {
	Vault    VaultRepository
	Keys     VaultRepository
	Requests RequestCache

	db *DB
}

// NewClientStorages opens (creating if needed) the SQLite database at
// cfg.DSN, runs migrations and wires the repositories.
func NewClientStorages(ctx context.Context, cfg config.DBConfig, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating client storages...")

	db, err := NewConnectSQLite(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		Vault:    NewLocalVaultRepository(db, logger),
		Keys:     NewLocalKeyRepository(db, logger),
		Requests: NewLocalRequestCache(db, logger),
		db:       db,
	}, nil
}

func (s *ClientStorages) Close() error {
	return s.db.Close()
}
