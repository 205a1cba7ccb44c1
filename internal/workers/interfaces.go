// Package workers runs the client's background jobs.
//
// A Worker is started with Run, which returns immediately and keeps working
// in its own goroutine until Stop is called or the context passed to Run is
// cancelled. Workers groups several of them behind one Run/Stop pair.
package workers

import (
	"context"

	"github.com/MKhiriev/go-gene-consent/models"
)

// Worker is the interface that must be implemented by any background worker.
type Worker interface {
	Run(ctx context.Context)
	Stop()
}

// Reconciler is the part of the request coordinator the reconcile worker
// drives. Implemented by service.Coordinator.
type Reconciler interface {
	Reconcile(ctx context.Context, subjectID string) ([]models.AnalysisRequest, error)
	Dispatch(ctx context.Context, requestID int64) error
}
