package client

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-gene-consent/internal/config"
	"github.com/MKhiriev/go-gene-consent/internal/logger"
	"github.com/MKhiriev/go-gene-consent/models"
)

func newTestClientConfig(t *testing.T) *config.ClientConfig {
	return &config.ClientConfig{
		App: config.ClientApp{
			ProtocolSalt:   testSalt,
			TokenIssuer:    "gene-consent",
			TokenDuration:  time.Minute,
			VaultKeyPolicy: config.PolicyIdentity,
			SubjectID:      "alice",
		},
		Adapter: config.Adapter{
			LedgerAddress:  "http://127.0.0.1:1",
			RequestTimeout: time.Second,
			RetryAttempts:  1,
			RetryBackoff:   time.Millisecond,
		},
		Storage: config.Storage{DB: config.DBConfig{DSN: filepath.Join(t.TempDir(), "client.db")}},
		Workers: config.Workers{ReconcileInterval: time.Second, RequestTTL: time.Hour},
	}
}

func TestNewApp_OptionalRemotes(t *testing.T) {
	app, err := NewApp(context.Background(), newTestClientConfig(t), logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, app.Close()) })

	err = app.services.Coordinator.Dispatch(context.Background(), 1)
	assert.Error(t, err, "ledger is unreachable")

	_, err = app.services.ExportService.Import(context.Background(), "alice", "ref", "pw", "")
	assert.ErrorIs(t, err, ErrRemoteNotConfigured)
}

func TestNewApp_BadLedgerAddress(t *testing.T) {
	cfg := newTestClientConfig(t)
	cfg.Adapter.LedgerAddress = "://"

	_, err := NewApp(context.Background(), cfg, logger.Nop())
	assert.Error(t, err)
}

func TestUnconfiguredRemote(t *testing.T) {
	u := unconfigured("blob store")

	_, err := u.Put(context.Background(), "blob", "f")
	assert.ErrorIs(t, err, ErrRemoteNotConfigured)
	_, err = u.Get(context.Background(), "ref")
	assert.ErrorIs(t, err, ErrRemoteNotConfigured)
	assert.ErrorIs(t, u.Submit(context.Background(), models.AnalysisJob{}), ErrRemoteNotConfigured)
	assert.Contains(t, u.Submit(context.Background(), models.AnalysisJob{}).Error(), "blob store")
}

func TestApp_CloseWithoutCloser(t *testing.T) {
	assert.NoError(t, (&App{}).Close())
}
