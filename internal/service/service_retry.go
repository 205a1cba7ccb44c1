package service

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-gene-consent/internal/config"
	"github.com/MKhiriev/go-gene-consent/internal/ledger"
	"github.com/MKhiriev/go-gene-consent/models"
)

const (
	defaultRetryBase = 100 * time.Millisecond
	eventsPageSize   = 500
)

// retryPolicy is the client's answer to ErrLedgerUnavailable: exponential
// backoff, bounded attempts. Rejections are never retried.
type retryPolicy struct {
	attempts uint64
	base     time.Duration
}

func newRetryPolicy(cfg config.Adapter) retryPolicy {
	base := cfg.RetryBackoff
	if base <= 0 {
		base = defaultRetryBase
	}
	return retryPolicy{attempts: cfg.RetryAttempts, base: base}
}

func (p retryPolicy) backoff() retry.Backoff {
	return retry.WithMaxRetries(p.attempts, retry.NewExponential(p.base))
}

// read runs fn until it succeeds, fails for good or attempts run out.
func (p retryPolicy) read(ctx context.Context, fn func(ctx context.Context) error) error {
	return retry.Do(ctx, p.backoff(), func(ctx context.Context) error {
		return retryable(fn(ctx))
	})
}

// effectCheck looks at ledger state after a submit with unknown outcome. ok
// means the transaction was applied and receipt describes it.
type effectCheck func(ctx context.Context) (receipt models.Receipt, ok bool, err error)

// write submits once and, after an unavailable error, consults applied
// before every resubmission. A transaction the ledger already holds is
// therefore never sent twice.
func (p retryPolicy) write(ctx context.Context, submit func(ctx context.Context) (models.Receipt, error), applied effectCheck) (models.Receipt, error) {
	var (
		receipt   models.Receipt
		uncertain bool
	)

	err := retry.Do(ctx, p.backoff(), func(ctx context.Context) error {
		if uncertain {
			r, ok, err := applied(ctx)
			if err != nil {
				return retryable(err)
			}
			if ok {
				receipt = r
				return nil
			}
		}

		r, err := submit(ctx)
		if err != nil {
			uncertain = ledger.IsRetryable(err)
			return retryable(err)
		}
		receipt = r
		return nil
	})

	return receipt, err
}

func retryable(err error) error {
	if err != nil && ledger.IsRetryable(err) {
		return retry.RetryableError(err)
	}
	return err
}

// appliedByDigest finds the event recording the transaction with digest.
// Every transaction carries a fresh nonce, so the digest is unique.
func appliedByDigest(l ledger.Ledger, digest models.Hash) effectCheck {
	return func(ctx context.Context) (models.Receipt, bool, error) {
		var after int64
		for {
			events, err := l.Events(ctx, after, eventsPageSize)
			if err != nil {
				return models.Receipt{}, false, err
			}
			for _, e := range events {
				if e.Digest == digest {
					return models.Receipt{TxRef: e.TxRef(), Seq: e.Seq, RequestID: e.RequestID}, true, nil
				}
			}
			if len(events) < eventsPageSize {
				return models.Receipt{}, false, nil
			}
			after = events[len(events)-1].Seq
		}
	}
}
