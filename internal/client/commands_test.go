package client

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-gene-consent/internal/adapter"
	"github.com/MKhiriev/go-gene-consent/internal/config"
	"github.com/MKhiriev/go-gene-consent/internal/ledger"
	"github.com/MKhiriev/go-gene-consent/internal/logger"
	"github.com/MKhiriev/go-gene-consent/internal/mock"
	"github.com/MKhiriev/go-gene-consent/internal/service"
	"github.com/MKhiriev/go-gene-consent/internal/store"
	"github.com/MKhiriev/go-gene-consent/models"
)

const testSalt = "cli-test-salt"

func newTestLedger(t *testing.T) ledger.Ledger {
	t.Helper()
	verifier, err := ledger.NewTokenVerifier("gene-consent")
	require.NoError(t, err)
	return ledger.NewMemoryLedger(verifier)
}

func newTestApp(t *testing.T, l ledger.Ledger, engine adapter.AnalysisEngine, blobs adapter.BlobStore, subjectID string) *App {
	t.Helper()

	cfg := &config.ClientConfig{
		App: config.ClientApp{
			ProtocolSalt:   testSalt,
			TokenIssuer:    "gene-consent",
			TokenDuration:  time.Minute,
			VaultKeyPolicy: config.PolicyIdentity,
			SubjectID:      subjectID,
		},
		Adapter: config.Adapter{RetryAttempts: 1, RetryBackoff: time.Millisecond},
		Workers: config.Workers{ReconcileInterval: 5 * time.Millisecond, RequestTTL: time.Hour},
	}

	storages, err := store.NewClientStorages(context.Background(), config.DBConfig{DSN: ":memory:"}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storages.Close() })

	services, err := service.NewClientServices(cfg, storages, service.ClientRemotes{Ledger: l, Engine: engine, Blobs: blobs}, logger.Nop())
	require.NoError(t, err)

	return newApp(cfg, services, l, nil, logger.Nop())
}

func run(app *App, args ...string) (string, error) {
	root := newRootCommand(models.NewAppBuildInfo("1.0.0", "", ""), func(context.Context, []string) (*App, error) {
		return app, nil
	})

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "genome.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func addressOf(t *testing.T, app *App) string {
	t.Helper()
	out, err := run(app, "address")
	require.NoError(t, err)
	return strings.TrimSpace(out)
}

func TestVersion_DoesNotLoadApp(t *testing.T) {
	root := newRootCommand(models.NewAppBuildInfo("1.0.0", "", ""), func(context.Context, []string) (*App, error) {
		t.Fatal("version must not load the session")
		return nil, nil
	})

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.Equal(t, "Build version: 1.0.0\nBuild date: N/A\nBuild commit: N/A\n", out.String())
}

func TestRootOptions_ForwardedAsConfigFlags(t *testing.T) {
	var got []string
	root := newRootCommand(models.NewAppBuildInfo("", "", ""), func(_ context.Context, args []string) (*App, error) {
		got = args
		return nil, assert.AnError
	})
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"list", "--subject", "alice", "--db", "client.db", "--ledger", "http://ledger:8080", "-c", "cfg.json"})

	err := root.Execute()

	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, []string{
		"-c", "cfg.json",
		"-subject", "alice",
		"-d", "client.db",
		"-ledger-address", "http://ledger:8080",
	}, got)
}

func TestCommands_NoSubject(t *testing.T) {
	app := newTestApp(t, newTestLedger(t), unconfigured("engine"), unconfigured("blobs"), "")

	_, err := run(app, "list")
	assert.ErrorIs(t, err, ErrNoSubject)
}

func TestRegister_StoresAndBinds(t *testing.T) {
	l := newTestLedger(t)
	alice := newTestApp(t, l, unconfigured("engine"), unconfigured("blobs"), "alice")
	genome := writeFile(t, "ACGTACGT")

	out, err := run(alice, "register", genome)
	require.NoError(t, err)
	assert.Contains(t, out, addressOf(t, alice))

	info, err := run(alice, "vault", "info")
	require.NoError(t, err)
	assert.Contains(t, info, "genome.txt")
	assert.Contains(t, info, "size:      8")

	plain, err := run(alice, "vault", "get")
	require.NoError(t, err)
	assert.Equal(t, "ACGTACGT", plain)

	_, err = run(alice, "register", genome)
	assert.ErrorIs(t, err, ledger.ErrAlreadyRegistered)

	_, err = run(alice, "update", writeFile(t, "TTTT"))
	require.NoError(t, err)
	plain, err = run(alice, "vault", "get")
	require.NoError(t, err)
	assert.Equal(t, "TTTT", plain)
}

func TestRegister_MissingFile(t *testing.T) {
	alice := newTestApp(t, newTestLedger(t), unconfigured("engine"), unconfigured("blobs"), "alice")

	_, err := run(alice, "register", filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}

func TestConsentFlow(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine := mock.NewMockAnalysisEngine(ctrl)
	l := newTestLedger(t)

	alice := newTestApp(t, l, engine, unconfigured("blobs"), "alice")
	bob := newTestApp(t, l, engine, unconfigured("blobs"), "bob")

	_, err := run(alice, "register", writeFile(t, "alice"))
	require.NoError(t, err)
	_, err = run(bob, "register", writeFile(t, "bob"))
	require.NoError(t, err)

	out, err := run(bob, "request", addressOf(t, alice))
	require.NoError(t, err)
	assert.Contains(t, out, "request: 1")

	out, err = run(alice, "pending")
	require.NoError(t, err)
	assert.Contains(t, out, "1\tpending")

	_, err = run(bob, "grant", "1", "--material", "key")
	assert.ErrorIs(t, err, ledger.ErrForbidden)

	_, err = run(alice, "grant", "1", "--material", "key")
	require.NoError(t, err)

	out, err = run(bob, "status", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "1\tconsented")

	engine.EXPECT().Submit(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, job models.AnalysisJob) error {
		assert.Equal(t, int64(1), job.RequestID)
		return nil
	})
	out, err = run(bob, "dispatch", "1")
	require.NoError(t, err)
	assert.Equal(t, "dispatched 1\n", out)

	_, err = run(bob, "result", "1")
	assert.Error(t, err)

	_, err = run(bob, "report", "1", "--result-ref", "s3://results/1")
	require.NoError(t, err)

	out, err = run(bob, "result", "1")
	require.NoError(t, err)
	assert.Equal(t, "s3://results/1\n", out)

	out, err = run(alice, "list")
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)

	out, err = run(alice, "audit")
	require.NoError(t, err)
	assert.Contains(t, out, "events: 5")
	assert.Contains(t, out, "chain ok")
}

func TestDecline(t *testing.T) {
	l := newTestLedger(t)
	alice := newTestApp(t, l, unconfigured("engine"), unconfigured("blobs"), "alice")
	bob := newTestApp(t, l, unconfigured("engine"), unconfigured("blobs"), "bob")

	_, err := run(alice, "register", writeFile(t, "alice"))
	require.NoError(t, err)
	_, err = run(bob, "request", addressOf(t, alice))
	require.NoError(t, err)

	_, err = run(alice, "decline", "1", "--reason", "no thanks")
	require.NoError(t, err)

	out, err := run(bob, "status", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "failed")
	assert.Contains(t, out, "reason=no thanks")

	out, err = run(bob, "reconcile")
	require.NoError(t, err)
	assert.Contains(t, out, "1\tfailed")
}

func TestCommands_ArgumentValidation(t *testing.T) {
	alice := newTestApp(t, newTestLedger(t), unconfigured("engine"), unconfigured("blobs"), "alice")

	tests := []struct {
		name string
		args []string
		want error
	}{
		{name: "grant without material", args: []string{"grant", "1"}, want: errInvalidMaterial},
		{name: "grant with both materials", args: []string{"grant", "1", "--material", "k", "--material-file", "f"}, want: errInvalidMaterial},
		{name: "report without outcome", args: []string{"report", "1"}, want: errInvalidReport},
		{name: "report with both outcomes", args: []string{"report", "1", "--result-ref", "r", "--error", "e"}, want: errInvalidReport},
		{name: "request bad address", args: []string{"request", "not-an-address"}, want: models.ErrInvalidAddress},
		{name: "grant bad method", args: []string{"grant", "1", "--method", "telepathy", "--material", "k"}, want: service.ErrInvalidDataProvided},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(alice, tt.args...)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	for _, args := range [][]string{{"status", "0"}, {"status", "abc"}, {"dispatch", "-1"}} {
		_, err := run(alice, args...)
		assert.Error(t, err, "args %v", args)
	}
}

func TestDispatch_EngineNotConfigured(t *testing.T) {
	l := newTestLedger(t)
	alice := newTestApp(t, l, unconfigured("analysis engine"), unconfigured("blobs"), "alice")
	bob := newTestApp(t, l, unconfigured("analysis engine"), unconfigured("blobs"), "bob")

	_, err := run(alice, "register", writeFile(t, "alice"))
	require.NoError(t, err)
	_, err = run(bob, "request", addressOf(t, alice))
	require.NoError(t, err)
	_, err = run(alice, "grant", "1", "--method", "indirect", "--material", "ipfs://key")
	require.NoError(t, err)

	_, err = run(bob, "dispatch", "1")
	assert.ErrorIs(t, err, ErrRemoteNotConfigured)
}

func TestExportImport(t *testing.T) {
	ctrl := gomock.NewController(t)
	blobs := mock.NewMockBlobStore(ctrl)
	alice := newTestApp(t, newTestLedger(t), unconfigured("engine"), blobs, "alice")

	_, err := run(alice, "vault", "put", writeFile(t, "GATTACA"))
	require.NoError(t, err)

	var uploaded string
	blobs.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, blob, _ string) (string, error) {
		uploaded = blob
		return "blob-1", nil
	})
	out, err := run(alice, "export", "--password", "pw")
	require.NoError(t, err)
	assert.Equal(t, "blob-1\n", out)

	_, err = run(alice, "vault", "rm")
	require.NoError(t, err)
	_, err = run(alice, "vault", "get")
	assert.ErrorIs(t, err, store.ErrVaultEntryNotFound)

	blobs.EXPECT().Get(gomock.Any(), "blob-1").Return(uploaded, nil)
	_, err = run(alice, "import", "blob-1", "--password", "pw", "--name", "restored.txt")
	require.NoError(t, err)

	plain, err := run(alice, "vault", "get")
	require.NoError(t, err)
	assert.Equal(t, "GATTACA", plain)

	_, err = run(alice, "export")
	assert.Error(t, err, "password flag is required")
}

func TestVaultGet_ToFile(t *testing.T) {
	alice := newTestApp(t, newTestLedger(t), unconfigured("engine"), unconfigured("blobs"), "alice")
	_, err := run(alice, "vault", "put", writeFile(t, "ACGT"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.txt")
	_, err = run(alice, "vault", "get", "-o", path)
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ACGT", string(got))
}

func TestWatch_DispatchesConsented(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine := mock.NewMockAnalysisEngine(ctrl)
	l := newTestLedger(t)

	alice := newTestApp(t, l, engine, unconfigured("blobs"), "alice")
	bob := newTestApp(t, l, engine, unconfigured("blobs"), "bob")

	_, err := run(alice, "register", writeFile(t, "alice"))
	require.NoError(t, err)
	_, err = run(bob, "request", addressOf(t, alice))
	require.NoError(t, err)
	_, err = run(alice, "grant", "1", "--material", "key")
	require.NoError(t, err)

	dispatched := make(chan struct{})
	engine.EXPECT().Submit(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, models.AnalysisJob) error {
		close(dispatched)
		return nil
	}).Times(1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- bob.Watch(ctx) }()

	select {
	case <-dispatched:
	case <-time.After(2 * time.Second):
		t.Fatal("consented request was not dispatched")
	}
	time.Sleep(20 * time.Millisecond)
	cancel()
	require.NoError(t, <-done)
}

func TestAudit_EmptyLedger(t *testing.T) {
	alice := newTestApp(t, newTestLedger(t), unconfigured("engine"), unconfigured("blobs"), "alice")

	out, err := run(alice, "audit")
	require.NoError(t, err)
	assert.Contains(t, out, "events: 0")
}
