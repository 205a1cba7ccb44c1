package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-gene-consent/internal/app"
	"github.com/MKhiriev/go-gene-consent/internal/ledger"
	"github.com/MKhiriev/go-gene-consent/internal/logger"
	"github.com/MKhiriev/go-gene-consent/internal/mock"
	"github.com/MKhiriev/go-gene-consent/internal/service"
	"github.com/MKhiriev/go-gene-consent/models"
)

var testAddr = common.HexToAddress("0x1000000000000000000000000000000000000001")

type testHandler struct {
	ledger  *mock.MockLedgerService
	appInfo *mock.MockAppInfoService
	router  http.Handler
}

func newTestHandler(t *testing.T) *testHandler {
	t.Helper()
	ctrl := gomock.NewController(t)

	th := &testHandler{
		ledger:  mock.NewMockLedgerService(ctrl),
		appInfo: mock.NewMockAppInfoService(ctrl),
	}
	h := NewHandler(&service.Services{LedgerService: th.ledger, AppInfoService: th.appInfo}, nil, logger.Nop())
	th.router = h.Init()
	return th
}

func (th *testHandler) do(method, target, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	rec := httptest.NewRecorder()
	th.router.ServeHTTP(rec, req)
	return rec
}

func bodyText(rec *httptest.ResponseRecorder) string {
	return strings.TrimSpace(rec.Body.String())
}

// ─────────────────────────────────────────────
// NewHandler
// ─────────────────────────────────────────────

func TestNewHandler_StoresDependencies(t *testing.T) {
	svc := &service.Services{}
	log := logger.Nop()

	h := NewHandler(svc, nil, log)

	require.NotNil(t, h)
	assert.Equal(t, svc, h.services)
	assert.Equal(t, log, h.logger)
	assert.Nil(t, h.metrics)
}

// ─────────────────────────────────────────────
// POST /api/ledger/tx
// ─────────────────────────────────────────────

func TestSubmitTx_Success(t *testing.T) {
	th := newTestHandler(t)
	th.ledger.EXPECT().Submit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, signed models.SignedTx) (models.Receipt, error) {
			assert.Equal(t, models.TxRequestAnalysis, signed.Tx.Kind)
			assert.Equal(t, "sig", signed.Signature)
			return models.Receipt{TxRef: "0xabc", Seq: 3, RequestID: 1, Status: models.StatusPending}, nil
		})

	rec := th.do(http.MethodPost, "/api/ledger/tx", `{"tx":{"kind":"request_analysis"},"signature":"sig"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"tx_ref":"0xabc","seq":3,"request_id":1,"status":"pending"}`, rec.Body.String())
}

func TestSubmitTx_InvalidJSON(t *testing.T) {
	th := newTestHandler(t)
	th.ledger.EXPECT().Submit(gomock.Any(), gomock.Any()).Times(0)

	rec := th.do(http.MethodPost, "/api/ledger/tx", `{not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, app.MsgInvalidDataProvided, bodyText(rec))
}

func TestSubmitTx_ErrorMapping(t *testing.T) {
	rejected := func(reason error) error { return errors.Join(ledger.ErrLedgerRejected, reason) }

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"invalid signature", rejected(ledger.ErrInvalidSignature), http.StatusUnauthorized, app.MsgInvalidSignature},
		{"signer bound", rejected(fmt.Errorf("%w: %w", ledger.ErrInvalidSignature, ledger.ErrSignerBound)), http.StatusUnauthorized, app.MsgSignerBound},
		{"forbidden", rejected(ledger.ErrForbidden), http.StatusForbidden, app.MsgForbidden},
		{"request not found", rejected(ledger.ErrNotFound), http.StatusNotFound, app.MsgNotFound},
		{"already registered", rejected(ledger.ErrAlreadyRegistered), http.StatusConflict, app.MsgAlreadyRegistered},
		{"already granted", rejected(ledger.ErrAlreadyGranted), http.StatusConflict, app.MsgAlreadyGranted},
		{"invalid transition", rejected(ledger.ErrInvalidTransition), http.StatusConflict, app.MsgInvalidTransition},
		{"unknown target", rejected(ledger.ErrUnknownTarget), http.StatusUnprocessableEntity, app.MsgUnknownTarget},
		{"self request", rejected(ledger.ErrSelfRequest), http.StatusUnprocessableEntity, app.MsgSelfRequest},
		{"malformed", rejected(errors.New("nonce is required")), http.StatusBadRequest, app.MsgTransactionRejected},
		{"unavailable", ledger.ErrLedgerUnavailable, http.StatusServiceUnavailable, app.MsgLedgerUnavailable},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, app.MsgInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := newTestHandler(t)
			th.ledger.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(models.Receipt{}, tt.err)

			rec := th.do(http.MethodPost, "/api/ledger/tx", `{"tx":{"kind":"register"}}`)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantBody, bodyText(rec))
		})
	}
}

// ─────────────────────────────────────────────
// GET routes
// ─────────────────────────────────────────────

func TestGetRegistration(t *testing.T) {
	th := newTestHandler(t)
	th.ledger.EXPECT().Registration(gomock.Any(), testAddr).Return(models.Registration{Address: testAddr, TxRef: "0x1"}, nil)

	rec := th.do(http.MethodGet, "/api/ledger/registrations/"+testAddr.Hex(), "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"tx_ref":"0x1"`)
}

func TestGetRegistration_BadAddress(t *testing.T) {
	th := newTestHandler(t)
	th.ledger.EXPECT().Registration(gomock.Any(), gomock.Any()).Times(0)

	rec := th.do(http.MethodGet, "/api/ledger/registrations/0x12", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, app.MsgInvalidAddress, bodyText(rec))
}

func TestGetRegistration_NotFound(t *testing.T) {
	th := newTestHandler(t)
	th.ledger.EXPECT().Registration(gomock.Any(), testAddr).Return(models.Registration{}, ledger.ErrNotFound)

	rec := th.do(http.MethodGet, "/api/ledger/registrations/"+testAddr.Hex(), "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, app.MsgNotFound, bodyText(rec))
}

func TestGetRequest(t *testing.T) {
	th := newTestHandler(t)
	th.ledger.EXPECT().Request(gomock.Any(), int64(5)).Return(models.AnalysisRequest{RequestID: 5, Status: models.StatusConsented}, nil)

	rec := th.do(http.MethodGet, "/api/ledger/requests/5", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"consented"`)
}

func TestGetRequest_BadID(t *testing.T) {
	for _, id := range []string{"0", "-3", "abc"} {
		t.Run(id, func(t *testing.T) {
			th := newTestHandler(t)
			th.ledger.EXPECT().Request(gomock.Any(), gomock.Any()).Times(0)

			rec := th.do(http.MethodGet, "/api/ledger/requests/"+id, "")

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, app.MsgInvalidRequestID, bodyText(rec))
		})
	}
}

func TestGetGrant(t *testing.T) {
	th := newTestHandler(t)
	th.ledger.EXPECT().Grant(gomock.Any(), int64(2)).Return(models.ConsentGrant{RequestID: 2, Method: models.MethodIndirect, RetrievalRef: "ref"}, nil)

	rec := th.do(http.MethodGet, "/api/ledger/requests/2/grant", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"retrieval_ref":"ref"`)
}

func TestListRequestsByAddress_EmptyIsArray(t *testing.T) {
	th := newTestHandler(t)
	th.ledger.EXPECT().RequestsByAddress(gomock.Any(), testAddr).Return(nil, nil)

	rec := th.do(http.MethodGet, "/api/ledger/addresses/"+testAddr.Hex()+"/requests", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"requests":[]}`, rec.Body.String())
}

func TestListEvents_Pagination(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantAfter int64
		wantLimit int
	}{
		{"defaults", "", 0, defaultEventsLimit},
		{"explicit", "?after=10&limit=5", 10, 5},
		{"clamped", "?limit=5000", 0, service.MaxEventsPage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := newTestHandler(t)
			th.ledger.EXPECT().Events(gomock.Any(), tt.wantAfter, tt.wantLimit).
				Return([]models.LedgerEvent{{Seq: tt.wantAfter + 1, Kind: models.TxRegister}}, nil)

			rec := th.do(http.MethodGet, "/api/ledger/events"+tt.query, "")

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), `"kind":"register"`)
		})
	}
}

func TestListEvents_BadParams(t *testing.T) {
	th := newTestHandler(t)
	th.ledger.EXPECT().Events(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	rec := th.do(http.MethodGet, "/api/ledger/events?after=x", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, app.MsgInvalidPagination, bodyText(rec))
}

func TestListEvents_ValidationError(t *testing.T) {
	th := newTestHandler(t)
	th.ledger.EXPECT().Events(gomock.Any(), int64(-1), defaultEventsLimit).Return(nil, service.ErrInvalidDataProvided)

	rec := th.do(http.MethodGet, "/api/ledger/events?after=-1", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, app.MsgInvalidDataProvided, bodyText(rec))
}

// ─────────────────────────────────────────────
// Version / metrics / routing
// ─────────────────────────────────────────────

func TestGetServerVersion(t *testing.T) {
	th := newTestHandler(t)
	th.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("1.2.3")

	rec := th.do(http.MethodGet, "/api/version/", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
	assert.Equal(t, "1.2.3", rec.Body.String())
}

func TestGetServerVersion_JSON(t *testing.T) {
	th := newTestHandler(t)
	th.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("1.2.3")

	req := httptest.NewRequest(http.MethodGet, "/api/version/", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	th.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"version":"1.2.3"}`, rec.Body.String())
}

func TestMetricsRoute_OnlyWithMetrics(t *testing.T) {
	th := newTestHandler(t)

	rec := th.do(http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRoutes_WrongMethodIsNotFound(t *testing.T) {
	th := newTestHandler(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/ledger/tx"},
		{http.MethodDelete, "/api/ledger/requests/1"},
		{http.MethodPost, "/api/version/"},
	} {
		rec := th.do(tc.method, tc.path, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, "%s %s", tc.method, tc.path)
	}
}

func TestRoutes_TraceIDEchoed(t *testing.T) {
	th := newTestHandler(t)
	th.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("v")

	req := httptest.NewRequest(http.MethodGet, "/api/version/", nil)
	req.Header.Set("X-Trace-ID", "trace-1")
	rec := httptest.NewRecorder()
	th.router.ServeHTTP(rec, req)

	assert.Equal(t, "trace-1", rec.Header().Get("X-Trace-ID"))
}
