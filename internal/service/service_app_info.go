package service

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-gene-consent/internal/config"
	"github.com/MKhiriev/go-gene-consent/internal/logger"
)

// nodeInfo reports the build the ledger node runs.
type nodeInfo struct {
	version string
}

// NewAppInfoService fails with ErrVersionIsNotSpecified when the node has no
// version; cmd/ledger fills it from the build flags before this is called.
func NewAppInfoService(cfg config.LedgerApp, logger *logger.Logger) (AppInfoService, error) {
	version := strings.TrimSpace(cfg.Version)
	if version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	logger.Debug().Str("version", version).Msg("ledger node version set")
	return &nodeInfo{version: version}, nil
}

func (n *nodeInfo) GetAppVersion(context.Context) string {
	return n.version
}
