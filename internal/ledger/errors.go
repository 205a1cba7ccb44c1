// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrLedgerRejected is the class of every rule violation. Specific
	// reasons below are always joined with it.
	ErrLedgerRejected = errors.New("ledger rejected transaction")

	// ErrLedgerUnavailable means the ledger could not be reached or could
	// not commit. It is the only retryable error.
	ErrLedgerUnavailable = errors.New("ledger unavailable")

	ErrAlreadyRegistered = errors.New("address already registered")
	ErrUnknownTarget     = errors.New("target is not registered")
	ErrForbidden         = errors.New("sender is not allowed to perform this action")
	ErrAlreadyGranted    = errors.New("consent already granted")
	ErrInvalidTransition = errors.New("invalid request status transition")
	ErrNotFound          = errors.New("not found")
	ErrSelfRequest       = errors.New("requester and target must differ")
	ErrInvalidSignature  = errors.New("invalid transaction signature")
	ErrSignerBound       = errors.New("address is bound to another signer")

	// ErrBrokenChain is returned by VerifyChain.
	ErrBrokenChain = errors.New("audit chain is broken")
)

// reject marks err as a ledger rejection.
func reject(err error) error {
	if errors.Is(err, ErrLedgerRejected) {
		return err
	}
	return errors.Join(ErrLedgerRejected, err)
}

// rejectf is reject with context.
func rejectf(reason error, format string, args ...any) error {
	return reject(fmt.Errorf("%w: %s", reason, fmt.Sprintf(format, args...)))
}

// unavailable marks err as a transient ledger failure.
func unavailable(err error) error {
	if errors.Is(err, ErrLedgerUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrLedgerUnavailable, err)
}

// IsRetryable reports whether resubmitting (after re-checking state) may
// succeed. Rule violations are final.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrLedgerUnavailable) && !errors.Is(err, ErrLedgerRejected)
}

// IsRejected reports whether err is a rule violation.
func IsRejected(err error) bool {
	return errors.Is(err, ErrLedgerRejected)
}
