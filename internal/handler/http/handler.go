package http

import (
	"context"

	"github.com/MKhiriev/go-doc-vault/internal/dispatch"
	"github.com/MKhiriev/go-doc-vault/internal/logger"
	"github.com/MKhiriev/go-doc-vault/internal/service"
)

// StoragePinger probes the liveness of the storage backend for the health
// endpoint. *store.DB satisfies it through the embedded *sql.DB.
type StoragePinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	services   *service.Services
	dispatcher *dispatch.Dispatcher
	classifier *dispatch.Classifier
	storage    StoragePinger

	logger *logger.Logger
}

func NewHandler(services *service.Services, dispatcher *dispatch.Dispatcher, classifier *dispatch.Classifier, storage StoragePinger, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:   services,
		dispatcher: dispatcher,
		classifier: classifier,
		storage:    storage,
		logger:     logger,
	}
}
