// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
)

// Vault key policy names accepted in App.VaultKeyPolicy.
const (
	PolicyPassphrase = "passphrase"
	PolicyIdentity   = "identity"
)

// validate checks the merged [StructuredConfig] before any view is built.
// Only values that are wrong regardless of the role are rejected here.
func (cfg *StructuredConfig) validate() error {
	switch cfg.App.VaultKeyPolicy {
	case "", PolicyPassphrase, PolicyIdentity:
	default:
		return fmt.Errorf("%w: unknown vault key policy %q", ErrInvalidAppConfigs, cfg.App.VaultKeyPolicy)
	}
	return nil
}

func (cfg *LedgerConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.LedgerAddress == "" {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.ReconcileInterval <= 0 || cfg.Workers.RequestTTL <= 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.App.ProtocolSalt == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}
