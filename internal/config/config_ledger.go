package config

import (
	"fmt"
	"time"
)

const (
	defaultTokenIssuer    = "gene-consent"
	defaultTokenDuration  = 5 * time.Minute
	defaultServerTimeout  = 30 * time.Second
	defaultAdapterTimeout = 10 * time.Second
	defaultRetryAttempts  = 3
	defaultRetryBackoff   = 200 * time.Millisecond
	defaultReconcile      = 30 * time.Second
	defaultRequestTTL     = 72 * time.Hour
)

// LedgerApp holds the settings the ledger node needs to verify transactions.
type LedgerApp struct {
	TokenIssuer string
	Version     string
}

// LedgerConfig is the ledger node view of [StructuredConfig].
type LedgerConfig struct {
	App     LedgerApp
	Storage Storage
	Server  Server
}

// GetLedgerConfig builds and validates the ledger node configuration from
// env, args and the optional JSON file. Unset timeouts and the token issuer
// get defaults.
func GetLedgerConfig(args []string) (*LedgerConfig, error) {
	cfg, err := GetStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return newLedgerConfig(cfg)
}

func newLedgerConfig(cfg *StructuredConfig) (*LedgerConfig, error) {
	ledgerCfg := &LedgerConfig{
		App: LedgerApp{
			TokenIssuer: orDefault(cfg.App.TokenIssuer, defaultTokenIssuer),
			Version:     cfg.App.Version,
		},
		Storage: cfg.Storage,
		Server: Server{
			HTTPAddress:    cfg.Server.HTTPAddress,
			GRPCAddress:    cfg.Server.GRPCAddress,
			RequestTimeout: orDefault(cfg.Server.RequestTimeout, defaultServerTimeout),
		},
	}

	return ledgerCfg, ledgerCfg.validate()
}

func orDefault[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
