package service

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-gene-consent/internal/config"
	"github.com/MKhiriev/go-gene-consent/internal/crypto"
	"github.com/MKhiriev/go-gene-consent/internal/ledger"
	"github.com/MKhiriev/go-gene-consent/internal/logger"
	"github.com/MKhiriev/go-gene-consent/internal/metrics"
	"github.com/MKhiriev/go-gene-consent/internal/mock"
	"github.com/MKhiriev/go-gene-consent/internal/store"
	"github.com/MKhiriev/go-gene-consent/models"
)

func newTestMetrics() *metrics.Metrics {
	reg := prometheus.NewRegistry()
	return metrics.NewWithRegistry(reg, reg)
}

// ─────────────────────────────────────────────
// LedgerValidationService
// ─────────────────────────────────────────────

func TestLedgerValidationService_RejectsBadIDs(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := mock.NewMockLedgerService(ctrl)
	inner.EXPECT().Request(gomock.Any(), gomock.Any()).Times(0)
	inner.EXPECT().Grant(gomock.Any(), gomock.Any()).Times(0)

	svc := NewLedgerValidationService().Wrap(inner)

	for _, id := range []int64{0, -1} {
		_, err := svc.Request(context.Background(), id)
		assert.ErrorIs(t, err, ErrInvalidDataProvided)

		_, err = svc.Grant(context.Background(), id)
		assert.ErrorIs(t, err, ErrInvalidDataProvided)
	}
}

func TestLedgerValidationService_EventsBounds(t *testing.T) {
	tests := []struct {
		name  string
		after int64
		limit int
		valid bool
	}{
		{name: "first page", after: 0, limit: 100, valid: true},
		{name: "max page", after: 10, limit: MaxEventsPage, valid: true},
		{name: "negative cursor", after: -1, limit: 10},
		{name: "zero limit", after: 0, limit: 0},
		{name: "over max", after: 0, limit: MaxEventsPage + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			inner := mock.NewMockLedgerService(ctrl)
			if tt.valid {
				inner.EXPECT().Events(gomock.Any(), tt.after, tt.limit).Return(nil, nil)
			}

			_, err := NewLedgerValidationService().Wrap(inner).Events(context.Background(), tt.after, tt.limit)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidDataProvided)
			}
		})
	}
}

func TestLedgerValidationService_PassesThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := mock.NewMockLedgerService(ctrl)
	want := models.AnalysisRequest{RequestID: 7, Status: models.StatusPending}
	inner.EXPECT().Request(gomock.Any(), int64(7)).Return(want, nil)
	inner.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(models.Receipt{TxRef: "0x1"}, nil)

	svc := NewLedgerValidationService().Wrap(inner)

	got, err := svc.Request(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	receipt, err := svc.Submit(context.Background(), models.SignedTx{})
	require.NoError(t, err)
	assert.Equal(t, "0x1", receipt.TxRef)
}

// ─────────────────────────────────────────────
// LedgerMetricsService
// ─────────────────────────────────────────────

func TestLedgerMetricsService_CountsOutcomes(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := mock.NewMockLedgerService(ctrl)
	m := newTestMetrics()
	svc := NewLedgerMetricsService(m).Wrap(inner)

	register := models.SignedTx{Tx: models.Transaction{Kind: models.TxRegister}}
	gomock.InOrder(
		inner.EXPECT().Submit(gomock.Any(), register).Return(models.Receipt{}, nil),
		inner.EXPECT().Submit(gomock.Any(), register).Return(models.Receipt{}, ledger.ErrLedgerUnavailable),
		inner.EXPECT().Submit(gomock.Any(), register).Return(models.Receipt{}, ledger.ErrLedgerRejected),
	)

	for range 3 {
		_, _ = svc.Submit(context.Background(), register)
	}

	kind := string(models.TxRegister)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SubmittedTx.WithLabelValues(kind, metrics.OutcomeApplied)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SubmittedTx.WithLabelValues(kind, metrics.OutcomeRejected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SubmittedTx.WithLabelValues(kind, metrics.OutcomeUnavailable)))
}

// ─────────────────────────────────────────────
// NewServices / NewLedgerService
// ─────────────────────────────────────────────

func TestNewServices_LedgerOverMemoryState(t *testing.T) {
	cfg := &config.LedgerConfig{App: config.LedgerApp{
		TokenIssuer: testIssuer,
		Version:     "1.2.3",
	}}
	storages := &store.Storages{LedgerState: ledger.NewMemoryStore()}

	services, err := NewServices(storages, cfg, newTestMetrics(), logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, "1.2.3", services.AppInfoService.GetAppVersion(context.Background()))

	addr, err := crypto.NewIdentityDeriver(testSalt).DeriveAddress(targetSubject)
	require.NoError(t, err)
	signed, err := newTestSigner(t).Sign(models.Transaction{
		Kind:         models.TxRegister,
		From:         addr,
		IdentityHash: crypto.HashPayload([]byte("id")),
		DataHash:     crypto.HashPayload([]byte("data")),
		Nonce:        "n-1",
		IssuedAt:     time.Now().Unix(),
	})
	require.NoError(t, err)

	receipt, err := services.LedgerService.Submit(context.Background(), signed)
	require.NoError(t, err)
	assert.EqualValues(t, 1, receipt.Seq)

	_, err = services.LedgerService.Events(context.Background(), 0, 0)
	assert.ErrorIs(t, err, ErrInvalidDataProvided, "validation wrapper is installed")
}

func TestNewServices_MissingIssuer(t *testing.T) {
	cfg := &config.LedgerConfig{App: config.LedgerApp{Version: "1"}}

	_, err := NewServices(&store.Storages{LedgerState: ledger.NewMemoryStore()}, cfg, newTestMetrics(), logger.Nop())
	assert.Error(t, err)
}

// ─────────────────────────────────────────────
// NewClientServices
// ─────────────────────────────────────────────

func TestNewClientServices_IdentityPolicy(t *testing.T) {
	ctrl := gomock.NewController(t)
	cfg := &config.ClientConfig{
		App: config.ClientApp{
			ProtocolSalt:   testSalt,
			TokenIssuer:    testIssuer,
			VaultKeyPolicy: config.PolicyIdentity,
		},
		Adapter: testAdapterCfg,
	}
	remotes := ClientRemotes{
		Ledger: ledger.NewMemoryLedger(newTestVerifier(t)),
		Engine: mock.NewMockAnalysisEngine(ctrl),
		Blobs:  mock.NewMockBlobStore(ctrl),
	}

	services, err := NewClientServices(cfg, newTestStorages(t), remotes, logger.Nop())
	require.NoError(t, err)

	ctx := context.Background()
	entry, err := services.VaultService.Store(ctx, targetSubject, []byte("ACGT"), "")
	require.NoError(t, err)
	assert.Equal(t, crypto.PolicyIdentity, entry.KeyPolicy)

	res, err := services.ConsentService.RegisterIdentity(ctx, targetSubject, entry.DataHash)
	require.NoError(t, err)

	addr, err := services.ConsentService.Address(targetSubject)
	require.NoError(t, err)
	assert.Equal(t, addr, res.Address)
}

func TestNewClientServices_PassphraseRequired(t *testing.T) {
	cfg := &config.ClientConfig{App: config.ClientApp{
		ProtocolSalt:   testSalt,
		TokenIssuer:    testIssuer,
		VaultKeyPolicy: config.PolicyPassphrase,
	}}

	_, err := NewClientServices(cfg, newTestStorages(t), ClientRemotes{}, logger.Nop())
	assert.ErrorIs(t, err, crypto.ErrEmptyPassphrase)
}
