package ledger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(unavailable(errors.New("conn refused"))))
	assert.False(t, IsRetryable(reject(ErrForbidden)))
	assert.False(t, IsRetryable(ErrNotFound))
	assert.False(t, IsRetryable(nil))
}

func TestReject_Idempotent(t *testing.T) {
	err := reject(reject(ErrAlreadyGranted))
	assert.ErrorIs(t, err, ErrAlreadyGranted)
	assert.ErrorIs(t, err, ErrLedgerRejected)
	assert.True(t, IsRejected(err))
}

func TestClassify(t *testing.T) {
	assert.ErrorIs(t, classify(ErrAlreadyRegistered), ErrLedgerRejected)
	assert.ErrorIs(t, classify(errors.New("disk full")), ErrLedgerUnavailable)

	err := classify(unavailable(errors.New("timeout")))
	assert.True(t, IsRetryable(err))
}
