package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	gethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-gene-consent/internal/config"
	"github.com/MKhiriev/go-gene-consent/internal/crypto"
	"github.com/MKhiriev/go-gene-consent/internal/ledger"
	"github.com/MKhiriev/go-gene-consent/internal/logger"
	"github.com/MKhiriev/go-gene-consent/internal/mock"
	"github.com/MKhiriev/go-gene-consent/internal/store"
	"github.com/MKhiriev/go-gene-consent/internal/utils"
	"github.com/MKhiriev/go-gene-consent/models"
)

const (
	testSalt   = "test-protocol-salt"
	testIssuer = "gene-consent"

	targetSubject    = "user-42"
	requesterSubject = "user-7"
)

var testAdapterCfg = config.Adapter{RetryAttempts: 3, RetryBackoff: time.Millisecond}

func newTestVerifier(t *testing.T) *ledger.TokenVerifier {
	t.Helper()
	v, err := ledger.NewTokenVerifier(testIssuer)
	require.NoError(t, err)
	return v
}

func newTestSigner(t *testing.T) *ledger.KeySigner {
	t.Helper()
	key, err := gethcrypto.GenerateKey()
	require.NoError(t, err)
	s, err := ledger.NewKeySigner(key, testIssuer, time.Minute)
	require.NoError(t, err)
	return s
}

// newTestKeyring seals keys under the identity policy, which needs no
// passphrase and keeps Argon2 out of the tests.
func newTestKeyring(t *testing.T, repo store.VaultRepository) Keyring {
	t.Helper()
	sealer := crypto.NewVaultCipher(crypto.NewIdentityDeriver(testSalt), crypto.NewIdentityPolicy(testSalt))
	return NewKeyring(sealer, repo, testIssuer, time.Minute, logger.Nop())
}

func newTestStorages(t *testing.T) *store.ClientStorages {
	t.Helper()
	s, err := store.NewClientStorages(context.Background(), config.DBConfig{DSN: ":memory:"}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// flakyLedger answers ErrLedgerUnavailable for everything while down.
type flakyLedger struct {
	ledger.Ledger
	down atomic.Bool
}

func (f *flakyLedger) err() error {
	if f.down.Load() {
		return ledger.ErrLedgerUnavailable
	}
	return nil
}

func (f *flakyLedger) Submit(ctx context.Context, signed models.SignedTx) (models.Receipt, error) {
	if err := f.err(); err != nil {
		return models.Receipt{}, err
	}
	return f.Ledger.Submit(ctx, signed)
}

func (f *flakyLedger) Registration(ctx context.Context, addr models.Address) (models.Registration, error) {
	if err := f.err(); err != nil {
		return models.Registration{}, err
	}
	return f.Ledger.Registration(ctx, addr)
}

func (f *flakyLedger) Request(ctx context.Context, requestID int64) (models.AnalysisRequest, error) {
	if err := f.err(); err != nil {
		return models.AnalysisRequest{}, err
	}
	return f.Ledger.Request(ctx, requestID)
}

func (f *flakyLedger) RequestsByAddress(ctx context.Context, addr models.Address) ([]models.AnalysisRequest, error) {
	if err := f.err(); err != nil {
		return nil, err
	}
	return f.Ledger.RequestsByAddress(ctx, addr)
}

// testEnv is one ledger shared by two parties, each with its own local
// storages, plus a mocked analysis engine.
type testEnv struct {
	ledger  *flakyLedger
	deriver *crypto.IdentityDeriver
	engine  *mock.MockAnalysisEngine

	target    *party
	requester *party
}

type party struct {
	subjectID string
	address   models.Address
	storages  *store.ClientStorages
	consent   ConsentService
	coord     *coordinator
}

func newTestEnv(t *testing.T, ctrl *gomock.Controller) *testEnv {
	t.Helper()

	env := &testEnv{
		ledger:  &flakyLedger{Ledger: ledger.NewMemoryLedger(newTestVerifier(t))},
		deriver: crypto.NewIdentityDeriver(testSalt),
		engine:  mock.NewMockAnalysisEngine(ctrl),
	}
	env.target = env.newParty(t, targetSubject)
	env.requester = env.newParty(t, requesterSubject)
	return env
}

// newParty is one client: its own SQLite file, so its own signing keys.
func (e *testEnv) newParty(t *testing.T, subjectID string) *party {
	t.Helper()

	addr, err := e.deriver.DeriveAddress(subjectID)
	require.NoError(t, err)

	storages := newTestStorages(t)
	keys := newTestKeyring(t, storages.Keys)
	nonces := utils.NewUUIDGenerator()
	workers := config.Workers{RequestTTL: time.Hour}

	return &party{
		subjectID: subjectID,
		address:   addr,
		storages:  storages,
		consent:   NewConsentService(e.deriver, e.ledger, keys, storages.Requests, nonces, testAdapterCfg, logger.Nop()),
		coord: NewCoordinator(e.deriver, e.ledger, keys, storages.Requests, e.engine, nonces,
			testAdapterCfg, workers, logger.Nop()).(*coordinator),
	}
}

// registerBoth registers the target and requester with distinct payloads.
func (e *testEnv) registerBoth(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	_, err := e.target.consent.RegisterIdentity(ctx, e.target.subjectID, crypto.HashPayload([]byte("ACGT target")))
	require.NoError(t, err)
	_, err = e.requester.consent.RegisterIdentity(ctx, e.requester.subjectID, crypto.HashPayload([]byte("ACGT requester")))
	require.NoError(t, err)
}

// openRequest registers both parties and opens one pending request.
func (e *testEnv) openRequest(t *testing.T) int64 {
	t.Helper()
	e.registerBoth(t)

	res, err := e.requester.consent.RequestAnalysis(context.Background(), e.requester.subjectID, e.target.address)
	require.NoError(t, err)
	return res.RequestID
}
