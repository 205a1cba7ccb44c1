package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddress(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{name: "prefixed", in: "0x1000000000000000000000000000000000000001"},
		{name: "bare", in: "1000000000000000000000000000000000000001"},
		{name: "surrounding spaces", in: "  0x1000000000000000000000000000000000000001 "},
		{name: "too short", in: "0x1234", wantErr: true},
		{name: "not hex", in: "0xZZ00000000000000000000000000000000000001", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, err := ParseAddress(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAddress)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "0x1000000000000000000000000000000000000001", addr.Hex())
		})
	}
}

func TestParseHash(t *testing.T) {
	valid := "0x" + "ab" + "00000000000000000000000000000000000000000000000000000000000000"

	h, err := ParseHash(valid)
	require.NoError(t, err)
	assert.Equal(t, valid, h.Hex())

	for _, in := range []string{"", "0xab", valid + "00", "0x" + "zz" + valid[4:]} {
		_, err = ParseHash(in)
		assert.ErrorIs(t, err, ErrInvalidHash, "input %q", in)
	}
}

func TestRequestStatus_Transitions(t *testing.T) {
	tests := []struct {
		from, to RequestStatus
		want     bool
	}{
		{StatusPending, StatusConsented, true},
		{StatusPending, StatusFailed, true},
		{StatusPending, StatusCompleted, false},
		{StatusConsented, StatusCompleted, true},
		{StatusConsented, StatusFailed, true},
		{StatusConsented, StatusPending, false},
		{StatusCompleted, StatusFailed, false},
		{StatusFailed, StatusConsented, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}

	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusFailed.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, RequestStatus("archived").IsValid())
}

func TestTransaction_Digest(t *testing.T) {
	tx := Transaction{Kind: TxRequestAnalysis, Nonce: "n-1", IssuedAt: 1700000000}

	d1, err := tx.Digest()
	require.NoError(t, err)
	d2, err := tx.Digest()
	require.NoError(t, err)
	assert.Equal(t, d1, d2)

	tx.Nonce = "n-2"
	d3, err := tx.Digest()
	require.NoError(t, err)
	assert.NotEqual(t, d1, d3, "nonce must change the digest")
}

func TestAnalysisRequest_Involves(t *testing.T) {
	a, _ := ParseAddress("0x1000000000000000000000000000000000000001")
	b, _ := ParseAddress("0x2000000000000000000000000000000000000002")
	c, _ := ParseAddress("0x3000000000000000000000000000000000000003")

	req := AnalysisRequest{Requester: a, Target: b}
	assert.True(t, req.Involves(a))
	assert.True(t, req.Involves(b))
	assert.False(t, req.Involves(c))
}

func TestAppBuildInfo(t *testing.T) {
	info := NewAppBuildInfo("1.2.3", "", "abc")

	assert.Equal(t, "1.2.3", info.BuildVersion())
	assert.Equal(t, "N/A", info.BuildDate())
	assert.Equal(t, "abc", info.BuildCommit())
	assert.Equal(t, "Build version: 1.2.3\nBuild date: N/A\nBuild commit: abc\n", info.String())
}

func TestTxKindAndMethod_IsValid(t *testing.T) {
	assert.True(t, TxGrantConsent.IsValid())
	assert.False(t, TxKind("mint").IsValid())
	assert.True(t, MethodIndirect.IsValid())
	assert.False(t, ConsentMethod("").IsValid())
}
