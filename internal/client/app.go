package client

import (
	"context"
	"fmt"
	"io"

	"github.com/MKhiriev/go-gene-consent/internal/adapter"
	"github.com/MKhiriev/go-gene-consent/internal/config"
	"github.com/MKhiriev/go-gene-consent/internal/ledger"
	"github.com/MKhiriev/go-gene-consent/internal/logger"
	"github.com/MKhiriev/go-gene-consent/internal/service"
	"github.com/MKhiriev/go-gene-consent/internal/store"
	"github.com/MKhiriev/go-gene-consent/internal/workers"
	"github.com/MKhiriev/go-gene-consent/models"
)

// App is one client session: the configured services plus the raw ledger
// used for audit reads.
type App struct {
	cfg      *config.ClientConfig
	services *service.ClientServices
	ledger   ledger.Ledger
	closer   io.Closer

	logger *logger.Logger
}

// NewApp opens the local storages and connects the remotes named in cfg.
// Engine and blob store are optional; commands that need them fail with
// ErrRemoteNotConfigured.
func NewApp(ctx context.Context, cfg *config.ClientConfig, logger *logger.Logger) (*App, error) {
	remoteLedger, err := adapter.NewHTTPLedger(cfg.Adapter, logger.Component("ledger-adapter"))
	if err != nil {
		return nil, fmt.Errorf("create ledger adapter: %w", err)
	}

	remotes := service.ClientRemotes{
		Ledger: remoteLedger,
		Engine: unconfigured("analysis engine"),
		Blobs:  unconfigured("blob store"),
	}
	if cfg.Adapter.EngineAddress != "" {
		if remotes.Engine, err = adapter.NewHTTPAnalysisEngine(cfg.Adapter, logger.Component("engine-adapter")); err != nil {
			return nil, fmt.Errorf("create engine adapter: %w", err)
		}
	}
	if cfg.Adapter.BlobStoreAddress != "" {
		if remotes.Blobs, err = adapter.NewHTTPBlobStore(cfg.Adapter, logger.Component("blob-adapter")); err != nil {
			return nil, fmt.Errorf("create blob store adapter: %w", err)
		}
	}

	storages, err := store.NewClientStorages(ctx, cfg.Storage.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}

	services, err := service.NewClientServices(cfg, storages, remotes, logger)
	if err != nil {
		_ = storages.Close()
		return nil, fmt.Errorf("create client services: %w", err)
	}

	return newApp(cfg, services, remoteLedger, storages, logger), nil
}

func newApp(cfg *config.ClientConfig, services *service.ClientServices, l ledger.Ledger, closer io.Closer, logger *logger.Logger) *App {
	return &App{
		cfg:      cfg,
		services: services,
		ledger:   l,
		closer:   closer,
		logger:   logger,
	}
}

// Close releases the local storages.
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

func (a *App) subject() (string, error) {
	if a.cfg.App.SubjectID == "" {
		return "", ErrNoSubject
	}
	return a.cfg.App.SubjectID, nil
}

// Watch runs the reconcile worker for the configured subject until ctx is
// cancelled.
func (a *App) Watch(ctx context.Context) error {
	subjectID, err := a.subject()
	if err != nil {
		return err
	}
	self, err := a.services.ConsentService.Address(subjectID)
	if err != nil {
		return err
	}

	w := workers.NewWorkers(
		workers.NewReconcileWorker(a.services.Coordinator, subjectID, self, a.cfg.Workers.ReconcileInterval, a.logger.Component("reconcile")),
	)
	w.Run(ctx)
	a.logger.Info().Str("address", self.Hex()).Msg("reconcile worker started")

	<-ctx.Done()
	w.Stop()
	a.logger.Info().Msg("reconcile worker stopped")
	return nil
}

// auditChain pages through the whole event log and verifies its hash chain.
func (a *App) auditChain(ctx context.Context) (int, models.Hash, error) {
	var (
		all   []models.LedgerEvent
		after int64
	)
	for {
		page, err := a.ledger.Events(ctx, after, service.MaxEventsPage)
		if err != nil {
			return 0, models.Hash{}, err
		}
		all = append(all, page...)
		if len(page) < service.MaxEventsPage {
			break
		}
		after = page[len(page)-1].Seq
	}

	if err := ledger.VerifyChain(all); err != nil {
		return 0, models.Hash{}, err
	}
	if len(all) == 0 {
		return 0, models.Hash{}, nil
	}
	return len(all), all[len(all)-1].Hash, nil
}

// unconfigured stands in for a remote whose address is not set.
type unconfigured string

func (u unconfigured) Submit(context.Context, models.AnalysisJob) error {
	return fmt.Errorf("%w: %s", ErrRemoteNotConfigured, string(u))
}

func (u unconfigured) Put(context.Context, string, string) (string, error) {
	return "", fmt.Errorf("%w: %s", ErrRemoteNotConfigured, string(u))
}

func (u unconfigured) Get(context.Context, string) (string, error) {
	return "", fmt.Errorf("%w: %s", ErrRemoteNotConfigured, string(u))
}
