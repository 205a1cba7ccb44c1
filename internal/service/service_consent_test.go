package service

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-gene-consent/internal/crypto"
	"github.com/MKhiriev/go-gene-consent/internal/ledger"
	"github.com/MKhiriev/go-gene-consent/internal/logger"
	"github.com/MKhiriev/go-gene-consent/internal/mock"
	"github.com/MKhiriev/go-gene-consent/internal/store"
	"github.com/MKhiriev/go-gene-consent/internal/utils"
	"github.com/MKhiriev/go-gene-consent/models"
)

// ─────────────────────────────────────────────
// RegisterIdentity / UpdateRegistration
// ─────────────────────────────────────────────

func TestRegisterIdentity_ReturnsDerivedAddress(t *testing.T) {
	env := newTestEnv(t, gomock.NewController(t))
	ctx := context.Background()
	dataHash := crypto.HashPayload([]byte("ACGT"))

	res, err := env.target.consent.RegisterIdentity(ctx, targetSubject, dataHash)
	require.NoError(t, err)

	assert.Equal(t, env.target.address, res.Address)
	assert.Len(t, res.Address.Bytes(), common.AddressLength)
	assert.NotEmpty(t, res.TxRef)

	reg, err := env.ledger.Registration(ctx, res.Address)
	require.NoError(t, err)
	assert.Equal(t, dataHash, reg.DataHash)
	assert.Equal(t, res.TxRef, reg.TxRef)
}

func TestRegisterIdentity_SecondCallIsAlreadyRegistered(t *testing.T) {
	env := newTestEnv(t, gomock.NewController(t))
	ctx := context.Background()

	_, err := env.target.consent.RegisterIdentity(ctx, targetSubject, crypto.HashPayload([]byte("a")))
	require.NoError(t, err)

	_, err = env.target.consent.RegisterIdentity(ctx, targetSubject, crypto.HashPayload([]byte("a")))
	assert.ErrorIs(t, err, ledger.ErrAlreadyRegistered)
	assert.ErrorIs(t, err, ledger.ErrLedgerRejected)
}

func TestRegisterIdentity_InvalidInput(t *testing.T) {
	env := newTestEnv(t, gomock.NewController(t))
	ctx := context.Background()

	_, err := env.target.consent.RegisterIdentity(ctx, "  ", crypto.HashPayload([]byte("a")))
	assert.ErrorIs(t, err, crypto.ErrInvalidIdentity)

	_, err = env.target.consent.RegisterIdentity(ctx, targetSubject, models.Hash{})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestUpdateRegistration_ReplacesDataHash(t *testing.T) {
	env := newTestEnv(t, gomock.NewController(t))
	ctx := context.Background()

	_, err := env.target.consent.UpdateRegistration(ctx, targetSubject, crypto.HashPayload([]byte("v2")))
	assert.ErrorIs(t, err, ledger.ErrNotFound, "update before register")

	_, err = env.target.consent.RegisterIdentity(ctx, targetSubject, crypto.HashPayload([]byte("v1")))
	require.NoError(t, err)

	txRef, err := env.target.consent.UpdateRegistration(ctx, targetSubject, crypto.HashPayload([]byte("v2")))
	require.NoError(t, err)

	reg, err := env.ledger.Registration(ctx, env.target.address)
	require.NoError(t, err)
	assert.Equal(t, crypto.HashPayload([]byte("v2")), reg.DataHash)
	assert.Equal(t, txRef, reg.TxRef)
}

// ─────────────────────────────────────────────
// RequestAnalysis
// ─────────────────────────────────────────────

func TestRequestAnalysis_IssuesIncreasingIDsAndCaches(t *testing.T) {
	env := newTestEnv(t, gomock.NewController(t))
	env.registerBoth(t)
	ctx := context.Background()

	first, err := env.requester.consent.RequestAnalysis(ctx, requesterSubject, env.target.address)
	require.NoError(t, err)
	second, err := env.requester.consent.RequestAnalysis(ctx, requesterSubject, env.target.address)
	require.NoError(t, err)

	assert.EqualValues(t, 1, first.RequestID)
	assert.EqualValues(t, 2, second.RequestID)
	assert.NotEqual(t, first.TxRef, second.TxRef)

	cached, err := env.requester.storages.Requests.GetAnalysisRequest(ctx, first.RequestID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, cached.Status)
	assert.Equal(t, env.target.address, cached.Target)
}

func TestRequestAnalysis_UnknownTarget(t *testing.T) {
	env := newTestEnv(t, gomock.NewController(t))
	ctx := context.Background()

	_, err := env.requester.consent.RequestAnalysis(ctx, requesterSubject, env.target.address)
	assert.ErrorIs(t, err, ledger.ErrUnknownTarget)

	_, err = env.requester.storages.Requests.GetAnalysisRequest(ctx, 1)
	assert.ErrorIs(t, err, store.ErrRequestNotCached)
}

func TestRequestAnalysis_SelfRequestRejected(t *testing.T) {
	env := newTestEnv(t, gomock.NewController(t))
	env.registerBoth(t)

	_, err := env.target.consent.RequestAnalysis(context.Background(), targetSubject, env.target.address)
	assert.ErrorIs(t, err, ledger.ErrSelfRequest)
	assert.ErrorIs(t, err, ledger.ErrLedgerRejected)
}

// ─────────────────────────────────────────────
// GrantConsent
// ─────────────────────────────────────────────

func TestGrantConsent_ByTarget(t *testing.T) {
	env := newTestEnv(t, gomock.NewController(t))
	id := env.openRequest(t)
	ctx := context.Background()

	txRef, err := env.target.consent.GrantConsent(ctx, targetSubject, id, models.MethodDirect, []byte("wrapped-key"))
	require.NoError(t, err)
	assert.NotEmpty(t, txRef)

	req, err := env.ledger.Request(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConsented, req.Status)

	grant, err := env.ledger.Grant(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []byte("wrapped-key"), grant.EncryptedKeyMaterial)
	assert.Equal(t, txRef, grant.TxRef)

	// the target had no cached copy; it is filled from the ledger
	cached, err := env.target.storages.Requests.GetAnalysisRequest(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConsented, cached.Status)
}

func TestGrantConsent_IndirectCarriesRetrievalRef(t *testing.T) {
	env := newTestEnv(t, gomock.NewController(t))
	id := env.openRequest(t)
	ctx := context.Background()

	_, err := env.target.consent.GrantConsent(ctx, targetSubject, id, models.MethodIndirect, []byte("vault://blob/9"))
	require.NoError(t, err)

	grant, err := env.ledger.Grant(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.MethodIndirect, grant.Method)
	assert.Equal(t, "vault://blob/9", grant.RetrievalRef)
	assert.Empty(t, grant.EncryptedKeyMaterial)
}

func TestGrantConsent_RequesterIsForbidden(t *testing.T) {
	env := newTestEnv(t, gomock.NewController(t))
	id := env.openRequest(t)
	ctx := context.Background()

	_, err := env.requester.consent.GrantConsent(ctx, requesterSubject, id, models.MethodDirect, []byte("k"))
	assert.ErrorIs(t, err, ledger.ErrForbidden)

	req, err := env.ledger.Request(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, req.Status)
}

func TestGrantConsent_SecondGrantIsAlreadyGranted(t *testing.T) {
	env := newTestEnv(t, gomock.NewController(t))
	id := env.openRequest(t)
	ctx := context.Background()

	_, err := env.target.consent.GrantConsent(ctx, targetSubject, id, models.MethodDirect, []byte("k"))
	require.NoError(t, err)

	_, err = env.target.consent.GrantConsent(ctx, targetSubject, id, models.MethodIndirect, []byte("ref"))
	assert.ErrorIs(t, err, ledger.ErrAlreadyGranted)
}

func TestGrantConsent_UnknownRequest(t *testing.T) {
	env := newTestEnv(t, gomock.NewController(t))
	env.registerBoth(t)

	_, err := env.target.consent.GrantConsent(context.Background(), targetSubject, 99, models.MethodDirect, []byte("k"))
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestGrantConsent_InvalidMethodOrMaterial(t *testing.T) {
	env := newTestEnv(t, gomock.NewController(t))
	ctx := context.Background()

	_, err := env.target.consent.GrantConsent(ctx, targetSubject, 1, "carrier-pigeon", []byte("k"))
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = env.target.consent.GrantConsent(ctx, targetSubject, 1, models.MethodDirect, nil)
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

// ─────────────────────────────────────────────
// DeclineRequest / ListRequests
// ─────────────────────────────────────────────

func TestDeclineRequest_FailsPendingRequest(t *testing.T) {
	env := newTestEnv(t, gomock.NewController(t))
	id := env.openRequest(t)
	ctx := context.Background()

	_, err := env.target.consent.DeclineRequest(ctx, targetSubject, id, "")
	require.NoError(t, err)

	req, err := env.ledger.Request(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusFailed, req.Status)
	assert.Equal(t, reasonDeclined, req.FailureReason)

	// terminal: neither a grant nor a second decline is accepted
	_, err = env.target.consent.GrantConsent(ctx, targetSubject, id, models.MethodDirect, []byte("k"))
	assert.ErrorIs(t, err, ledger.ErrInvalidTransition)
	_, err = env.target.consent.DeclineRequest(ctx, targetSubject, id, "again")
	assert.ErrorIs(t, err, ledger.ErrInvalidTransition)
}

func TestListRequests_BothParties(t *testing.T) {
	env := newTestEnv(t, gomock.NewController(t))
	env.registerBoth(t)
	ctx := context.Background()

	for range 2 {
		_, err := env.requester.consent.RequestAnalysis(ctx, requesterSubject, env.target.address)
		require.NoError(t, err)
	}

	forRequester, err := env.requester.consent.ListRequests(ctx, requesterSubject)
	require.NoError(t, err)
	forTarget, err := env.target.consent.ListRequests(ctx, targetSubject)
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 2}, forRequester)
	assert.Equal(t, []int64{1, 2}, forTarget)

	none, err := env.target.consent.ListRequests(ctx, "user-nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGrantConsent_OtherClientCannotSignForTarget(t *testing.T) {
	env := newTestEnv(t, gomock.NewController(t))
	id := env.openRequest(t)
	ctx := context.Background()

	// The requester's client knows the target's credential but holds only
	// keys it created itself; the ledger has the target's key on record.
	_, err := env.requester.consent.GrantConsent(ctx, targetSubject, id, models.MethodDirect, []byte("k"))
	assert.ErrorIs(t, err, ledger.ErrInvalidSignature)
	assert.ErrorIs(t, err, ledger.ErrSignerBound)

	req, err := env.ledger.Request(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, req.Status)

	_, err = env.target.consent.GrantConsent(ctx, targetSubject, id, models.MethodDirect, []byte("k"))
	require.NoError(t, err)
}

// ─────────────────────────────────────────────
// Retry policy
// ─────────────────────────────────────────────

func newMockedConsent(t *testing.T, l ledger.Ledger) *consentService {
	t.Helper()
	storages := newTestStorages(t)
	return NewConsentService(crypto.NewIdentityDeriver(testSalt), l, newTestKeyring(t, storages.Keys), storages.Requests,
		utils.NewUUIDGenerator(), testAdapterCfg, logger.Nop()).(*consentService)
}

func TestRegisterIdentity_UnknownOutcomeResolvedByRequery(t *testing.T) {
	ctrl := gomock.NewController(t)
	l := mock.NewMockLedger(ctrl)
	svc := newMockedConsent(t, l)
	ctx := context.Background()
	dataHash := crypto.HashPayload([]byte("ACGT"))

	identityHash, err := crypto.NewIdentityDeriver(testSalt).HashIdentity(targetSubject)
	require.NoError(t, err)

	gomock.InOrder(
		l.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(models.Receipt{}, ledger.ErrLedgerUnavailable),
		l.EXPECT().Registration(gomock.Any(), gomock.Any()).Return(models.Registration{
			IdentityHash: identityHash,
			DataHash:     dataHash,
			TxRef:        "0xapplied",
		}, nil),
	)

	res, err := svc.RegisterIdentity(ctx, targetSubject, dataHash)
	require.NoError(t, err)
	assert.Equal(t, "0xapplied", res.TxRef)
}

func TestRegisterIdentity_ResubmitsWhenEffectAbsent(t *testing.T) {
	ctrl := gomock.NewController(t)
	l := mock.NewMockLedger(ctrl)
	svc := newMockedConsent(t, l)

	gomock.InOrder(
		l.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(models.Receipt{}, ledger.ErrLedgerUnavailable),
		l.EXPECT().Registration(gomock.Any(), gomock.Any()).Return(models.Registration{}, ledger.ErrNotFound),
		l.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(models.Receipt{TxRef: "0xsecond"}, nil),
	)

	res, err := svc.RegisterIdentity(context.Background(), targetSubject, crypto.HashPayload([]byte("ACGT")))
	require.NoError(t, err)
	assert.Equal(t, "0xsecond", res.TxRef)
}

func TestRegisterIdentity_ResubmitsSameSignedTransaction(t *testing.T) {
	ctrl := gomock.NewController(t)
	l := mock.NewMockLedger(ctrl)
	svc := newMockedConsent(t, l)

	var sent []models.SignedTx
	record := func(_ context.Context, signed models.SignedTx) (models.Receipt, error) {
		sent = append(sent, signed)
		if len(sent) == 1 {
			return models.Receipt{}, ledger.ErrLedgerUnavailable
		}
		return models.Receipt{TxRef: "0xok"}, nil
	}

	l.EXPECT().Submit(gomock.Any(), gomock.Any()).DoAndReturn(record).Times(2)
	l.EXPECT().Registration(gomock.Any(), gomock.Any()).Return(models.Registration{}, ledger.ErrNotFound)

	_, err := svc.RegisterIdentity(context.Background(), targetSubject, crypto.HashPayload([]byte("ACGT")))
	require.NoError(t, err)
	require.Len(t, sent, 2)
	assert.Equal(t, sent[0], sent[1])
}

func TestRegisterIdentity_RejectionIsNotRetried(t *testing.T) {
	ctrl := gomock.NewController(t)
	l := mock.NewMockLedger(ctrl)
	svc := newMockedConsent(t, l)

	rejection := errors.Join(ledger.ErrLedgerRejected, ledger.ErrAlreadyRegistered)
	l.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(models.Receipt{}, rejection).Times(1)

	_, err := svc.RegisterIdentity(context.Background(), targetSubject, crypto.HashPayload([]byte("ACGT")))
	assert.ErrorIs(t, err, ledger.ErrAlreadyRegistered)
}

func TestRegisterIdentity_GivesUpAfterAttempts(t *testing.T) {
	ctrl := gomock.NewController(t)
	l := mock.NewMockLedger(ctrl)
	svc := newMockedConsent(t, l)

	attempts := int(testAdapterCfg.RetryAttempts) + 1
	l.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(models.Receipt{}, ledger.ErrLedgerUnavailable).Times(attempts)
	l.EXPECT().Registration(gomock.Any(), gomock.Any()).Return(models.Registration{}, ledger.ErrNotFound).Times(attempts - 1)

	_, err := svc.RegisterIdentity(context.Background(), targetSubject, crypto.HashPayload([]byte("ACGT")))
	assert.ErrorIs(t, err, ledger.ErrLedgerUnavailable)
}

func TestGrantConsent_UnknownOutcomeResolvedByGrantLookup(t *testing.T) {
	ctrl := gomock.NewController(t)
	l := mock.NewMockLedger(ctrl)
	svc := newMockedConsent(t, l)

	granter, err := crypto.NewIdentityDeriver(testSalt).DeriveAddress(targetSubject)
	require.NoError(t, err)

	gomock.InOrder(
		l.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(models.Receipt{}, ledger.ErrLedgerUnavailable),
		l.EXPECT().Grant(gomock.Any(), int64(5)).Return(models.ConsentGrant{RequestID: 5, Granter: granter, TxRef: "0xgrant"}, nil),
		// cache refresh after the confirmed grant
		l.EXPECT().Request(gomock.Any(), int64(5)).Return(models.AnalysisRequest{RequestID: 5, Target: granter, Status: models.StatusConsented}, nil),
	)

	txRef, err := svc.GrantConsent(context.Background(), targetSubject, 5, models.MethodDirect, []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, "0xgrant", txRef)
}

func TestRequestAnalysis_UnknownOutcomeResolvedByAuditChain(t *testing.T) {
	ctrl := gomock.NewController(t)
	l := mock.NewMockLedger(ctrl)
	svc := newMockedConsent(t, l)

	var digest models.Hash
	gomock.InOrder(
		l.EXPECT().Submit(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, signed models.SignedTx) (models.Receipt, error) {
			d, err := signed.Tx.Digest()
			require.NoError(t, err)
			digest = d
			return models.Receipt{}, ledger.ErrLedgerUnavailable
		}),
		l.EXPECT().Events(gomock.Any(), int64(0), eventsPageSize).DoAndReturn(func(context.Context, int64, int) ([]models.LedgerEvent, error) {
			return []models.LedgerEvent{
				{Seq: 1, Kind: models.TxRegister},
				{Seq: 2, Kind: models.TxRequestAnalysis, RequestID: 4, Digest: digest},
			}, nil
		}),
	)

	res, err := svc.RequestAnalysis(context.Background(), requesterSubject, common.HexToAddress("0x1000000000000000000000000000000000000001"))
	require.NoError(t, err)
	assert.EqualValues(t, 4, res.RequestID)
}

func TestListRequests_RetriesUnavailableReads(t *testing.T) {
	ctrl := gomock.NewController(t)
	l := mock.NewMockLedger(ctrl)
	svc := newMockedConsent(t, l)

	gomock.InOrder(
		l.EXPECT().RequestsByAddress(gomock.Any(), gomock.Any()).Return(nil, ledger.ErrLedgerUnavailable),
		l.EXPECT().RequestsByAddress(gomock.Any(), gomock.Any()).Return([]models.AnalysisRequest{{RequestID: 3}}, nil),
	)

	ids, err := svc.ListRequests(context.Background(), targetSubject)
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, ids)
}

func TestListRequests_NotFoundIsNotRetried(t *testing.T) {
	ctrl := gomock.NewController(t)
	l := mock.NewMockLedger(ctrl)
	svc := newMockedConsent(t, l)

	l.EXPECT().RequestsByAddress(gomock.Any(), gomock.Any()).Return(nil, assert.AnError).Times(1)

	_, err := svc.ListRequests(context.Background(), targetSubject)
	assert.ErrorIs(t, err, assert.AnError)
}
