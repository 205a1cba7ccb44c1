package server

import (
	"context"
	"os/signal"
	"sync"
	"syscall"

	"github.com/MKhiriev/go-gene-consent/internal/config"
	"github.com/MKhiriev/go-gene-consent/internal/handler"
	"github.com/MKhiriev/go-gene-consent/internal/logger"
)

// node owns the listeners of one ledger node.
type node struct {
	http *httpServer
	grpc *grpcServer

	logger *logger.Logger
}

// NewServer opens a listener for every handler that has an address in cfg.
// The gRPC port is bound here so a busy port fails startup.
func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	n := &node{logger: logger}

	if cfg.HTTPAddress != "" && handlers.HTTP != nil {
		n.http = newHTTPServer(handlers.HTTP.Init(), cfg, logger.Component("http-server"))
	}
	if cfg.GRPCAddress != "" && handlers.GRPC != nil {
		g, err := newGRPCServer(handlers.GRPC, cfg, logger.Component("grpc-server"))
		if err != nil {
			return nil, err
		}
		n.grpc = g
	}

	if n.http == nil && n.grpc == nil {
		return nil, errNoServersAreCreated
	}
	return n, nil
}

// RunServer serves until SIGTERM, SIGINT or SIGQUIT, then shuts down and
// waits for every listener to return.
func (n *node) RunServer() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	if err := n.serve(ctx); err != nil {
		n.logger.Err(err).Msg("error running server")
		return
	}
	n.logger.Info().Msg("ledger node stopped")
}

func (n *node) Shutdown() {
	if n.http != nil {
		n.http.Shutdown()
	}
	if n.grpc != nil {
		n.grpc.Shutdown()
	}
}

func (n *node) serve(ctx context.Context) error {
	if n.http == nil && n.grpc == nil {
		return errNoServersToRun
	}

	var wg sync.WaitGroup
	if n.http != nil {
		wg.Go(n.http.RunServer)
	}
	if n.grpc != nil {
		wg.Go(func() { n.grpc.RunServer(ctx) })
	}

	<-ctx.Done()
	n.logger.Info().Msg("stop signal received, shutting down")
	n.Shutdown()
	wg.Wait()

	return nil
}
