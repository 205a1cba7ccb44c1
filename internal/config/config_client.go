package config

import (
	"fmt"
	"time"
)

// ClientApp holds client-side protocol settings.
type ClientApp struct {
	ProtocolSalt    string
	TokenIssuer     string
	TokenDuration   time.Duration
	VaultKeyPolicy  string
	VaultPassphrase string
	SubjectID       string
	LogFile         string
}

// ClientConfig is the client view of [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter Adapter
	Storage Storage
	Workers Workers
}

// GetClientConfig builds and validates the client configuration from env,
// args and the optional JSON file.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the client runtime, fills defaults and validates the resulting
// [ClientConfig].
func GetClientConfig(args []string) (*ClientConfig, error) {
	cfg, err := GetStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return newClientConfig(cfg)
}

func newClientConfig(cfg *StructuredConfig) (*ClientConfig, error) {
	clientCfg := &ClientConfig{
		App: ClientApp{
			ProtocolSalt:    cfg.App.ProtocolSalt,
			TokenIssuer:     orDefault(cfg.App.TokenIssuer, defaultTokenIssuer),
			TokenDuration:   orDefault(cfg.App.TokenDuration, defaultTokenDuration),
			VaultKeyPolicy:  orDefault(cfg.App.VaultKeyPolicy, PolicyPassphrase),
			VaultPassphrase: cfg.App.VaultPassphrase,
			SubjectID:       cfg.App.SubjectID,
			LogFile:         cfg.App.LogFile,
		},
		Adapter: Adapter{
			LedgerAddress:    cfg.Adapter.LedgerAddress,
			EngineAddress:    cfg.Adapter.EngineAddress,
			BlobStoreAddress: cfg.Adapter.BlobStoreAddress,
			RequestTimeout:   orDefault(cfg.Adapter.RequestTimeout, defaultAdapterTimeout),
			RetryAttempts:    orDefault(cfg.Adapter.RetryAttempts, defaultRetryAttempts),
			RetryBackoff:     orDefault(cfg.Adapter.RetryBackoff, defaultRetryBackoff),
		},
		Storage: cfg.Storage,
		Workers: Workers{
			ReconcileInterval: orDefault(cfg.Workers.ReconcileInterval, defaultReconcile),
			RequestTTL:        orDefault(cfg.Workers.RequestTTL, defaultRequestTTL),
		},
	}

	return clientCfg, clientCfg.validate()
}
