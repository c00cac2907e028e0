// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/go-doc-vault/internal/adapter"
	"github.com/MKhiriev/go-doc-vault/internal/config"
	"github.com/MKhiriev/go-doc-vault/internal/logger"
	"github.com/MKhiriev/go-doc-vault/internal/store"
	"github.com/MKhiriev/go-doc-vault/models"
	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/pool"
)

// maxParallelPushes bounds how many indexer calls one drain round makes at a
// time, so a large backlog cannot flood the indexer.
const maxParallelPushes = 8

// indexSyncWorker drains the pending index queue towards the search indexer.
//
// Document mutations enqueue outbox entries instead of calling the indexer
// inline; this worker wakes up on a fixed interval, dequeues a batch, pushes
// each document to the indexer and reconciles the outcome: delivered entries
// leave the queue, failed ones get their attempt counter bumped and are
// retried on a later round.
type indexSyncWorker struct {
	documents store.DocumentRepository
	queue     store.IndexQueueRepository
	indexer   adapter.Indexer

	interval  time.Duration
	batchSize int
	logger    *logger.Logger

	// stopCtx is cancelled by Stop and aborts the loop and any in-flight
	// drain round.
	stopCtx context.Context
	stop    context.CancelFunc
	loopWG  conc.WaitGroup
}

// pushResult is the outcome of delivering one queue entry.
type pushResult struct {
	entryID   int64
	delivered bool
}

func newIndexSyncWorker(documents store.DocumentRepository, queue store.IndexQueueRepository, indexer adapter.Indexer, cfg config.Workers, log *logger.Logger) *indexSyncWorker {
	workerLogger := log.GetChildLogger()
	workerLogger.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("worker", "index_sync")
	})

	ctx, cancel := context.WithCancel(context.Background())

	return &indexSyncWorker{
		documents: documents,
		queue:     queue,
		indexer:   indexer,
		interval:  cfg.SyncInterval,
		batchSize: cfg.SyncBatchSize,
		logger:    workerLogger,
		stopCtx:   ctx,
		stop:      cancel,
	}
}

// Run spawns the drain loop and returns immediately.
func (w *indexSyncWorker) Run() {
	w.logger.Info().
		Dur("interval", w.interval).
		Int("batch_size", w.batchSize).
		Msg("starting index sync worker...")

	w.loopWG.Go(w.loop)
}

// Stop cancels the drain loop and blocks until the in-flight round, if any,
// has finished reconciling.
func (w *indexSyncWorker) Stop() {
	w.logger.Info().Msg("stopping index sync worker...")
	w.stop()
	w.loopWG.Wait()
}

func (w *indexSyncWorker) loop() {
	// Drain whatever accumulated while the process was down, then tick.
	w.drainQueue()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCtx.Done():
			return
		case <-ticker.C:
			w.drainQueue()
		}
	}
}

// drainQueue processes pending entries batch by batch until the queue is
// empty, a delivery fails, or the round runs out of time. A full batch with
// no failures means more entries are likely waiting, so the round continues;
// any failure ends the round early because retrying the same entries within
// one round would just hammer a struggling indexer.
func (w *indexSyncWorker) drainQueue() {
	ctx, cancel := context.WithTimeout(w.stopCtx, w.interval)
	defer cancel()

	// Repositories log through the context logger.
	ctx = w.logger.WithContext(ctx)

	for {
		entries, err := w.queue.DequeueIndexEntries(ctx, w.batchSize)
		if err != nil {
			w.logger.Error().Err(err).Msg("error dequeuing pending index entries")
			return
		}
		if len(entries) == 0 {
			return
		}

		delivered, failed := w.pushEntries(ctx, entries)

		if err := w.queue.ReconcileIndexEntries(ctx, delivered, failed); err != nil {
			w.logger.Error().Err(err).Msg("error reconciling index queue")
			return
		}

		w.logger.Info().
			Int("delivered", len(delivered)).
			Int("failed", len(failed)).
			Msg("index queue batch processed")

		if len(failed) > 0 || len(entries) < w.batchSize || ctx.Err() != nil {
			return
		}
	}
}

// pushEntries delivers a batch to the indexer with bounded parallelism and
// splits the entry IDs by outcome.
func (w *indexSyncWorker) pushEntries(ctx context.Context, entries []models.IndexEntry) (delivered, failed []int64) {
	p := pool.NewWithResults[pushResult]().WithMaxGoroutines(maxParallelPushes)

	for _, entry := range entries {
		entry := entry
		p.Go(func() pushResult {
			return pushResult{
				entryID:   entry.EntryID,
				delivered: w.pushEntry(ctx, entry),
			}
		})
	}

	for _, result := range p.Wait() {
		if result.delivered {
			delivered = append(delivered, result.entryID)
		} else {
			failed = append(failed, result.entryID)
		}
	}

	return delivered, failed
}

// pushEntry delivers one queue entry and reports whether it settled. A
// document deleted after its entry was enqueued is removed from the index
// instead of pushed, which also settles the entry.
func (w *indexSyncWorker) pushEntry(ctx context.Context, entry models.IndexEntry) bool {
	document, err := w.documents.FindDocumentByID(ctx, entry.DocumentID)

	switch {
	case errors.Is(err, store.ErrDocumentNotFound):
		if removeErr := w.indexer.RemoveDocument(ctx, entry.DocumentID); removeErr != nil {
			w.logger.Warn().Err(removeErr).
				Str("document_id", entry.DocumentID).
				Msg("error removing deleted document from index")
			return false
		}
		return true

	case err != nil:
		w.logger.Warn().Err(err).
			Str("document_id", entry.DocumentID).
			Msg("error loading document for indexing")
		return false
	}

	if indexErr := w.indexer.IndexDocument(ctx, document); indexErr != nil {
		w.logger.Warn().Err(indexErr).
			Str("document_id", entry.DocumentID).
			Int("attempts", entry.Attempts).
			Msg("error pushing document to index")
		return false
	}

	return true
}
