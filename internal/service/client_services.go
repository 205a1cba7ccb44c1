package service

import (
	"fmt"

	"github.com/MKhiriev/go-gene-consent/internal/adapter"
	"github.com/MKhiriev/go-gene-consent/internal/config"
	"github.com/MKhiriev/go-gene-consent/internal/crypto"
	"github.com/MKhiriev/go-gene-consent/internal/ledger"
	"github.com/MKhiriev/go-gene-consent/internal/logger"
	"github.com/MKhiriev/go-gene-consent/internal/store"
	"github.com/MKhiriev/go-gene-consent/internal/utils"
)

// ClientServices are the services of one client session. They share the
// identity deriver, the keyring and the local storages.
type ClientServices struct {
	VaultService   VaultService
	ExportService  ExportService
	ConsentService ConsentService
	Coordinator    Coordinator
}

// ClientRemotes are the collaborators reached over the network.
type ClientRemotes struct {
	Ledger ledger.Ledger
	Engine adapter.AnalysisEngine
	Blobs  adapter.BlobStore
}

func NewClientServices(cfg *config.ClientConfig, storages *store.ClientStorages, remotes ClientRemotes, logger *logger.Logger) (*ClientServices, error) {
	deriver := crypto.NewIdentityDeriver(cfg.App.ProtocolSalt)

	policy, err := newKeyPolicy(cfg.App)
	if err != nil {
		return nil, fmt.Errorf("vault key policy: %w", err)
	}

	sealer := crypto.NewVaultCipher(deriver, policy)
	keys := NewKeyring(sealer, storages.Keys, cfg.App.TokenIssuer, cfg.App.TokenDuration, logger.Component("keyring"))
	nonces := utils.NewUUIDGenerator()

	vault := NewVaultService(sealer, storages.Vault, logger.Component("vault"))

	return &ClientServices{
		VaultService:  vault,
		ExportService: NewExportService(vault, crypto.NewPasswordCipher(crypto.DefaultArgon2Params()), remotes.Blobs, logger.Component("export")),
		ConsentService: NewConsentService(deriver, remotes.Ledger, keys, storages.Requests, nonces,
			cfg.Adapter, logger.Component("consent")),
		Coordinator: NewCoordinator(deriver, remotes.Ledger, keys, storages.Requests, remotes.Engine, nonces,
			cfg.Adapter, cfg.Workers, logger.Component("coordinator")),
	}, nil
}

func newKeyPolicy(cfg config.ClientApp) (crypto.KeyPolicy, error) {
	if cfg.VaultKeyPolicy == config.PolicyIdentity {
		return crypto.NewIdentityPolicy(cfg.ProtocolSalt), nil
	}
	return crypto.NewPassphrasePolicy(cfg.VaultPassphrase, crypto.DefaultArgon2Params())
}
