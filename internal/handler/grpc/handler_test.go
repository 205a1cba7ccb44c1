package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"

	"github.com/MKhiriev/go-gene-consent/internal/ledger"
	"github.com/MKhiriev/go-gene-consent/internal/logger"
	"github.com/MKhiriev/go-gene-consent/internal/mock"
	"github.com/MKhiriev/go-gene-consent/internal/service"
)

// serve runs h on an in-memory listener and returns a health client.
func serve(t *testing.T, h *Handler) healthpb.HealthClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer()
	h.Register(s)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return healthpb.NewHealthClient(conn)
}

func newTestHandler(t *testing.T) (*Handler, *mock.MockLedgerService) {
	ctrl := gomock.NewController(t)
	ls := mock.NewMockLedgerService(ctrl)
	return NewHandler(&service.Services{LedgerService: ls}, logger.Nop()), ls
}

func check(t *testing.T, client healthpb.HealthClient, name string) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	resp, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: name})
	require.NoError(t, err)
	return resp.GetStatus()
}

func TestHandler_NotServingBeforeFirstCheck(t *testing.T) {
	h, _ := newTestHandler(t)
	client := serve(t, h)

	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, check(t, client, LedgerServiceName))
}

func TestHandler_StatusFollowsLedger(t *testing.T) {
	h, ls := newTestHandler(t)
	client := serve(t, h)

	gomock.InOrder(
		ls.EXPECT().Events(gomock.Any(), int64(0), 1).Return(nil, nil),
		ls.EXPECT().Events(gomock.Any(), int64(0), 1).Return(nil, ledger.ErrLedgerUnavailable),
	)

	h.checkLedger(context.Background())
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, check(t, client, LedgerServiceName))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, check(t, client, ""))

	h.checkLedger(context.Background())
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, check(t, client, LedgerServiceName))
}

func TestHandler_CancelledCheckKeepsStatus(t *testing.T) {
	h, ls := newTestHandler(t)
	client := serve(t, h)

	ls.EXPECT().Events(gomock.Any(), int64(0), 1).Return(nil, nil)
	h.checkLedger(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ls.EXPECT().Events(gomock.Any(), int64(0), 1).Return(nil, context.Canceled)
	h.checkLedger(ctx)

	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, check(t, client, LedgerServiceName))
}

func TestHandler_Watch(t *testing.T) {
	h, ls := newTestHandler(t)
	h.interval = 5 * time.Millisecond
	client := serve(t, h)

	ls.EXPECT().Events(gomock.Any(), int64(0), 1).Return(nil, nil).MinTimes(2)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		h.Watch(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return check(t, client, LedgerServiceName) == healthpb.HealthCheckResponse_SERVING
	}, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Watch did not return after cancel")
	}
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, check(t, client, LedgerServiceName))
}
