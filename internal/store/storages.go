package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-gene-consent/internal/config"
	"github.com/MKhiriev/go-gene-consent/internal/ledger"
	"github.com/MKhiriev/go-gene-consent/internal/logger"
)

// Storages holds the ledger server's persistence.
type Storages struct {
	LedgerState ledger.StateStore

	db *DB
}

// NewStorages connects to Postgres, migrates the schema and wires the
// ledger state repository.
func NewStorages(ctx context.Context, cfg config.DBConfig, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating storages...")

	db, err := NewConnectPostgres(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		LedgerState: NewLedgerStateRepository(db, logger),
		db:          db,
	}, nil
}

// Ping reports whether the database is reachable. Used by health checks.
func (s *Storages) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Storages) Close() error {
	return s.db.Close()
}
