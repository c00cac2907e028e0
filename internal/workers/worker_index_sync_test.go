// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-doc-vault/internal/adapter"
	"github.com/MKhiriev/go-doc-vault/internal/config"
	"github.com/MKhiriev/go-doc-vault/internal/logger"
	"github.com/MKhiriev/go-doc-vault/internal/store"
	"github.com/MKhiriev/go-doc-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock: store.DocumentRepository
// ─────────────────────────────────────────────

// mockDocumentFinder implements store.DocumentRepository. The worker only
// reads documents, so the mutation methods are inert.
type mockDocumentFinder struct {
	mu     sync.Mutex
	findFn func(ctx context.Context, documentID string) (models.Document, error)
	finds  []string
}

func (m *mockDocumentFinder) FindDocumentByID(ctx context.Context, documentID string) (models.Document, error) {
	m.mu.Lock()
	m.finds = append(m.finds, documentID)
	m.mu.Unlock()

	if m.findFn != nil {
		return m.findFn(ctx, documentID)
	}
	return models.Document{ID: documentID}, nil
}

func (m *mockDocumentFinder) SaveDocument(context.Context, *models.Document) error { return nil }
func (m *mockDocumentFinder) ListDocuments(context.Context, models.ListDocumentsQuery) ([]models.Document, error) {
	return nil, nil
}
func (m *mockDocumentFinder) UpdateDocument(context.Context, models.DocumentUpdate) error {
	return nil
}
func (m *mockDocumentFinder) DeleteDocument(context.Context, string, int64) error { return nil }
func (m *mockDocumentFinder) ResolveDocumentOwner(context.Context, string) (int64, error) {
	return 0, nil
}

// ─────────────────────────────────────────────
// Mock: store.IndexQueueRepository
// ─────────────────────────────────────────────

type reconcileCall struct {
	delivered []int64
	failed    []int64
}

type mockIndexQueue struct {
	mu           sync.Mutex
	dequeueFn    func(ctx context.Context, limit int) ([]models.IndexEntry, error)
	reconcileErr error

	dequeueCalls int
	reconciled   []reconcileCall
}

func (m *mockIndexQueue) EnqueueIndexEntry(context.Context, *models.IndexEntry) error { return nil }

func (m *mockIndexQueue) DequeueIndexEntries(ctx context.Context, limit int) ([]models.IndexEntry, error) {
	m.mu.Lock()
	m.dequeueCalls++
	m.mu.Unlock()

	if m.dequeueFn != nil {
		return m.dequeueFn(ctx, limit)
	}
	return nil, nil
}

func (m *mockIndexQueue) ReconcileIndexEntries(_ context.Context, delivered, failed []int64) error {
	m.mu.Lock()
	m.reconciled = append(m.reconciled, reconcileCall{delivered: delivered, failed: failed})
	m.mu.Unlock()

	return m.reconcileErr
}

func (m *mockIndexQueue) RemoveDocumentEntries(context.Context, string) error { return nil }

func (m *mockIndexQueue) dequeueCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dequeueCalls
}

func (m *mockIndexQueue) reconcileCalls() []reconcileCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]reconcileCall(nil), m.reconciled...)
}

// ─────────────────────────────────────────────
// Mock: adapter.Indexer
// ─────────────────────────────────────────────

// mockIndexer records pushes under a mutex: one drain round delivers entries
// from several goroutines at once.
type mockIndexer struct {
	mu       sync.Mutex
	indexFn  func(ctx context.Context, document models.Document) error
	removeFn func(ctx context.Context, documentID string) error

	indexed []string
	removed []string
}

func (m *mockIndexer) IndexDocument(ctx context.Context, document models.Document) error {
	m.mu.Lock()
	m.indexed = append(m.indexed, document.ID)
	m.mu.Unlock()

	if m.indexFn != nil {
		return m.indexFn(ctx, document)
	}
	return nil
}

func (m *mockIndexer) RemoveDocument(ctx context.Context, documentID string) error {
	m.mu.Lock()
	m.removed = append(m.removed, documentID)
	m.mu.Unlock()

	if m.removeFn != nil {
		return m.removeFn(ctx, documentID)
	}
	return nil
}

func (m *mockIndexer) indexedIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.indexed...)
}

func (m *mockIndexer) removedIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.removed...)
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func newTestWorker(documents *mockDocumentFinder, queue *mockIndexQueue, indexer *mockIndexer, batchSize int) *indexSyncWorker {
	return newIndexSyncWorker(documents, queue, indexer, config.Workers{
		SyncInterval:  time.Hour,
		SyncBatchSize: batchSize,
	}, logger.Nop())
}

func pendingEntry(entryID int64, documentID string) models.IndexEntry {
	return models.IndexEntry{
		EntryID:    entryID,
		DocumentID: documentID,
		OwnerID:    1,
		EnqueuedAt: time.Now(),
	}
}

// singleBatch returns the given entries on the first dequeue and an empty
// queue afterwards.
func singleBatch(entries []models.IndexEntry) func(ctx context.Context, limit int) ([]models.IndexEntry, error) {
	served := false
	return func(_ context.Context, _ int) ([]models.IndexEntry, error) {
		if served {
			return nil, nil
		}
		served = true
		return entries, nil
	}
}

// ─────────────────────────────────────────────
// Drain round outcomes
// ─────────────────────────────────────────────

func TestIndexSync_DeliversBatch(t *testing.T) {
	documents := &mockDocumentFinder{}
	indexer := &mockIndexer{}
	queue := &mockIndexQueue{
		dequeueFn: singleBatch([]models.IndexEntry{
			pendingEntry(1, "doc-a"),
			pendingEntry(2, "doc-b"),
			pendingEntry(3, "doc-c"),
		}),
	}

	w := newTestWorker(documents, queue, indexer, 10)
	w.drainQueue()

	assert.ElementsMatch(t, []string{"doc-a", "doc-b", "doc-c"}, indexer.indexedIDs())

	calls := queue.reconcileCalls()
	require.Len(t, calls, 1)
	assert.ElementsMatch(t, []int64{1, 2, 3}, calls[0].delivered)
	assert.Empty(t, calls[0].failed)
}

func TestIndexSync_DeletedDocumentIsRemovedFromIndex(t *testing.T) {
	documents := &mockDocumentFinder{
		findFn: func(_ context.Context, documentID string) (models.Document, error) {
			return models.Document{}, store.ErrDocumentNotFound
		},
	}
	indexer := &mockIndexer{}
	queue := &mockIndexQueue{
		dequeueFn: singleBatch([]models.IndexEntry{pendingEntry(7, "gone")}),
	}

	w := newTestWorker(documents, queue, indexer, 10)
	w.drainQueue()

	// The entry settles by removal, not by an index push.
	assert.Equal(t, []string{"gone"}, indexer.removedIDs())
	assert.Empty(t, indexer.indexedIDs())

	calls := queue.reconcileCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, []int64{7}, calls[0].delivered)
	assert.Empty(t, calls[0].failed)
}

func TestIndexSync_RemoveFailureIsRetriedLater(t *testing.T) {
	documents := &mockDocumentFinder{
		findFn: func(_ context.Context, _ string) (models.Document, error) {
			return models.Document{}, store.ErrDocumentNotFound
		},
	}
	indexer := &mockIndexer{
		removeFn: func(_ context.Context, _ string) error {
			return adapter.ErrIndexerUnavailable
		},
	}
	queue := &mockIndexQueue{
		dequeueFn: singleBatch([]models.IndexEntry{pendingEntry(7, "gone")}),
	}

	w := newTestWorker(documents, queue, indexer, 10)
	w.drainQueue()

	calls := queue.reconcileCalls()
	require.Len(t, calls, 1)
	assert.Empty(t, calls[0].delivered)
	assert.Equal(t, []int64{7}, calls[0].failed)
}

func TestIndexSync_IndexerDownMarksFailed(t *testing.T) {
	documents := &mockDocumentFinder{}
	indexer := &mockIndexer{
		indexFn: func(_ context.Context, _ models.Document) error {
			return adapter.ErrIndexerUnavailable
		},
	}
	queue := &mockIndexQueue{
		dequeueFn: singleBatch([]models.IndexEntry{
			pendingEntry(1, "doc-a"),
			pendingEntry(2, "doc-b"),
		}),
	}

	w := newTestWorker(documents, queue, indexer, 10)
	w.drainQueue()

	calls := queue.reconcileCalls()
	require.Len(t, calls, 1)
	assert.Empty(t, calls[0].delivered)
	assert.ElementsMatch(t, []int64{1, 2}, calls[0].failed)
}

func TestIndexSync_MixedOutcomes(t *testing.T) {
	documents := &mockDocumentFinder{}
	indexer := &mockIndexer{
		indexFn: func(_ context.Context, document models.Document) error {
			if document.ID == "doc-b" {
				return adapter.ErrIndexerUnavailable
			}
			return nil
		},
	}
	queue := &mockIndexQueue{
		dequeueFn: singleBatch([]models.IndexEntry{
			pendingEntry(1, "doc-a"),
			pendingEntry(2, "doc-b"),
			pendingEntry(3, "doc-c"),
		}),
	}

	w := newTestWorker(documents, queue, indexer, 10)
	w.drainQueue()

	calls := queue.reconcileCalls()
	require.Len(t, calls, 1)
	assert.ElementsMatch(t, []int64{1, 3}, calls[0].delivered)
	assert.Equal(t, []int64{2}, calls[0].failed)
}

func TestIndexSync_RepositoryErrorMarksFailed(t *testing.T) {
	documents := &mockDocumentFinder{
		findFn: func(_ context.Context, _ string) (models.Document, error) {
			return models.Document{}, errors.New("db connection lost")
		},
	}
	indexer := &mockIndexer{}
	queue := &mockIndexQueue{
		dequeueFn: singleBatch([]models.IndexEntry{pendingEntry(5, "doc-a")}),
	}

	w := newTestWorker(documents, queue, indexer, 10)
	w.drainQueue()

	// Only a definite not-found triggers index removal.
	assert.Empty(t, indexer.removedIDs())
	assert.Empty(t, indexer.indexedIDs())

	calls := queue.reconcileCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, []int64{5}, calls[0].failed)
}

// ─────────────────────────────────────────────
// Round continuation
// ─────────────────────────────────────────────

func TestIndexSync_FullBatchContinuesDraining(t *testing.T) {
	documents := &mockDocumentFinder{}
	indexer := &mockIndexer{}

	batches := [][]models.IndexEntry{
		{pendingEntry(1, "doc-a"), pendingEntry(2, "doc-b")},
		{pendingEntry(3, "doc-c")},
	}
	queue := &mockIndexQueue{}
	queue.dequeueFn = func(_ context.Context, _ int) ([]models.IndexEntry, error) {
		if len(batches) == 0 {
			return nil, nil
		}
		batch := batches[0]
		batches = batches[1:]
		return batch, nil
	}

	w := newTestWorker(documents, queue, indexer, 2)
	w.drainQueue()

	// Full first batch keeps the round going; the short second one ends it.
	assert.Equal(t, 2, queue.dequeueCount())
	assert.ElementsMatch(t, []string{"doc-a", "doc-b", "doc-c"}, indexer.indexedIDs())

	calls := queue.reconcileCalls()
	require.Len(t, calls, 2)
	assert.ElementsMatch(t, []int64{1, 2}, calls[0].delivered)
	assert.Equal(t, []int64{3}, calls[1].delivered)
}

func TestIndexSync_FailureEndsRound(t *testing.T) {
	documents := &mockDocumentFinder{}
	indexer := &mockIndexer{
		indexFn: func(_ context.Context, _ models.Document) error {
			return adapter.ErrIndexerUnavailable
		},
	}

	// The queue keeps returning the same full batch: failed entries stay
	// pending until their attempt counter is bumped and a later round retries.
	queue := &mockIndexQueue{
		dequeueFn: func(_ context.Context, _ int) ([]models.IndexEntry, error) {
			return []models.IndexEntry{
				pendingEntry(1, "doc-a"),
				pendingEntry(2, "doc-b"),
			}, nil
		},
	}

	w := newTestWorker(documents, queue, indexer, 2)
	w.drainQueue()

	// The round must not spin on a struggling indexer.
	assert.Equal(t, 1, queue.dequeueCount())
	require.Len(t, queue.reconcileCalls(), 1)
}

func TestIndexSync_EmptyQueueDoesNothing(t *testing.T) {
	documents := &mockDocumentFinder{}
	indexer := &mockIndexer{}
	queue := &mockIndexQueue{}

	w := newTestWorker(documents, queue, indexer, 10)
	w.drainQueue()

	assert.Empty(t, queue.reconcileCalls())
	assert.Empty(t, indexer.indexedIDs())
	assert.Empty(t, indexer.removedIDs())
}

func TestIndexSync_DequeueErrorEndsRound(t *testing.T) {
	documents := &mockDocumentFinder{}
	indexer := &mockIndexer{}
	queue := &mockIndexQueue{
		dequeueFn: func(_ context.Context, _ int) ([]models.IndexEntry, error) {
			return nil, store.ErrStorageUnavailable
		},
	}

	w := newTestWorker(documents, queue, indexer, 10)
	w.drainQueue()

	assert.Empty(t, queue.reconcileCalls())
	assert.Empty(t, indexer.indexedIDs())
}

func TestIndexSync_ReconcileErrorEndsRound(t *testing.T) {
	documents := &mockDocumentFinder{}
	indexer := &mockIndexer{}
	queue := &mockIndexQueue{
		reconcileErr: store.ErrStorageUnavailable,
		dequeueFn: func(_ context.Context, _ int) ([]models.IndexEntry, error) {
			// Always a full batch; without the reconcile error the round
			// would keep draining.
			return []models.IndexEntry{
				pendingEntry(1, "doc-a"),
				pendingEntry(2, "doc-b"),
			}, nil
		},
	}

	w := newTestWorker(documents, queue, indexer, 2)
	w.drainQueue()

	assert.Equal(t, 1, queue.dequeueCount())
}

// ─────────────────────────────────────────────
// Lifecycle
// ─────────────────────────────────────────────

func TestIndexSync_RunDrainsOnInterval(t *testing.T) {
	documents := &mockDocumentFinder{}
	indexer := &mockIndexer{}
	queue := &mockIndexQueue{}

	w := newIndexSyncWorker(documents, queue, indexer, config.Workers{
		SyncInterval:  5 * time.Millisecond,
		SyncBatchSize: 10,
	}, logger.Nop())

	w.Run()

	// Initial drain plus at least one ticker round.
	require.Eventually(t, func() bool {
		return queue.dequeueCount() >= 2
	}, time.Second, time.Millisecond)

	w.Stop()

	// After Stop the loop must not touch the queue again.
	drained := queue.dequeueCount()
	time.Sleep(25 * time.Millisecond)
	assert.Equal(t, drained, queue.dequeueCount())
}

func TestIndexSync_StopWithoutRun(t *testing.T) {
	w := newTestWorker(&mockDocumentFinder{}, &mockIndexQueue{}, &mockIndexer{}, 10)

	assert.NotPanics(t, func() {
		w.Stop()
		w.Stop() // repeated Stop is a no-op
	})
}
