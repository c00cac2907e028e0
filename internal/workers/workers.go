package workers

import (
	"github.com/MKhiriev/go-doc-vault/internal/adapter"
	"github.com/MKhiriev/go-doc-vault/internal/config"
	"github.com/MKhiriev/go-doc-vault/internal/logger"
	"github.com/MKhiriev/go-doc-vault/internal/store"
)

// Workers aggregates all background workers of the application.
type Workers struct {
	workers []Worker
}

// NewWorkers wires every background worker over the given repositories and
// downstream clients. Today the only worker is the index sync worker draining
// the pending index queue towards the search indexer.
func NewWorkers(storages *store.Storages, indexer adapter.Indexer, cfg config.Workers, logger *logger.Logger) *Workers {
	logger.Debug().Msg("creating new workers...")

	return &Workers{
		workers: []Worker{
			newIndexSyncWorker(storages.DocumentRepository, storages.IndexQueueRepository, indexer, cfg, logger),
		},
	}
}

// Run starts every worker. It returns as soon as all workers have spawned
// their processing loops.
func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}

// Stop shuts every worker down and blocks until all of them have finished
// their in-flight work.
func (w *Workers) Stop() {
	for _, worker := range w.workers {
		worker.Stop()
	}
}
