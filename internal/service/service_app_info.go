package service

import (
	"context"

	"github.com/MKhiriev/go-doc-vault/internal/config"
	"github.com/MKhiriev/go-doc-vault/internal/logger"
)

// appInfoService serves build metadata for the version endpoint. The version
// string is pinned at startup from configuration (set through ldflags in the
// release build), so a blank value is a deployment fault, not a runtime one.
type appInfoService struct {
	appVersion string

	logger *logger.Logger
}

func NewAppInfoService(cfg config.App, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		appVersion: cfg.Version,
		logger:     logger,
	}, nil
}

// GetAppVersion returns the running server's version string.
func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.appVersion
}
