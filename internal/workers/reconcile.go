// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/go-gene-consent/internal/logger"
	"github.com/MKhiriev/go-gene-consent/models"
)

const defaultReconcileInterval = 30 * time.Second

// ReconcileWorker periodically reconciles the local subject's requests with
// the ledger and hands the consented requests the subject issued to the
// analysis engine, each at most once per worker lifetime.
type ReconcileWorker struct {
	reconciler Reconciler
	subjectID  string
	self       models.Address
	interval   time.Duration
	logger     *logger.Logger

	mu         sync.Mutex
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	dispatched map[int64]struct{}
}

// NewReconcileWorker creates a worker for subjectID whose ledger address is
// self. The worker is idle until Run is called. If interval is zero or
// negative it defaults to 30 seconds.
func NewReconcileWorker(reconciler Reconciler, subjectID string, self models.Address, interval time.Duration, logger *logger.Logger) *ReconcileWorker {
	if interval <= 0 {
		interval = defaultReconcileInterval
	}

	return &ReconcileWorker{
		reconciler: reconciler,
		subjectID:  subjectID,
		self:       self,
		interval:   interval,
		logger:     logger,
		dispatched: make(map[int64]struct{}),
	}
}

// Run stops any previously running loop, then launches a goroutine that
// reconciles every interval. The goroutine exits when ctx is cancelled or
// Stop is called.
func (w *ReconcileWorker) Run(ctx context.Context) {
	w.Stop()

	w.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.wg.Add(1)
	w.mu.Unlock()

	go func() {
		defer w.wg.Done()
		t := time.NewTicker(w.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				w.tick(jobCtx)
			}
		}
	}()
}

// Stop cancels the loop and blocks until it has exited. Safe to call when
// the worker is not running.
func (w *ReconcileWorker) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	w.wg.Wait()
}

func (w *ReconcileWorker) tick(ctx context.Context) {
	reqs, err := w.reconciler.Reconcile(ctx, w.subjectID)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			w.logger.Warn().Err(err).Msg("reconcile failed")
		}
		return
	}

	for _, req := range reqs {
		if req.Requester != w.self || req.Status != models.StatusConsented {
			continue
		}
		if _, done := w.dispatched[req.RequestID]; done {
			continue
		}

		if err = w.reconciler.Dispatch(ctx, req.RequestID); err != nil {
			w.logger.Warn().Err(err).Int64("request_id", req.RequestID).Msg("dispatch failed, will retry")
			continue
		}
		w.dispatched[req.RequestID] = struct{}{}
	}
}
