// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-doc-vault/internal/logger"
	"github.com/MKhiriev/go-doc-vault/models"
)

// indexQueueRepository is the SQL-backed implementation of
// [IndexQueueRepository]. The "index_queue" table is an outbox: document
// mutations enqueue an entry, the sync worker drains them towards the search
// indexer and reconciles the outcome.
type indexQueueRepository struct {
	*DB
	logger *logger.Logger
}

// NewIndexQueueRepository constructs an [IndexQueueRepository] backed by the
// provided database connection and logger.
func NewIndexQueueRepository(db *DB, logger *logger.Logger) IndexQueueRepository {
	logger.Debug().Msg("creating index queue repository")
	return &indexQueueRepository{
		DB:     db,
		logger: logger,
	}
}

// EnqueueIndexEntry records that a document needs (re)indexing. At most one
// pending entry exists per document: enqueueing an already-queued document
// refreshes its timestamp and resets the attempt counter. The generated
// entry ID is written back into entry.EntryID.
func (p *indexQueueRepository) EnqueueIndexEntry(ctx context.Context, entry *models.IndexEntry) error {
	log := logger.FromContext(ctx)

	log.Debug().
		Str("func", "indexQueueRepository.EnqueueIndexEntry").
		Str("document_id", entry.DocumentID).
		Int64("owner_id", entry.OwnerID).
		Msg("enqueueing document for indexing")

	queryRowErr := p.DB.executor(ctx).QueryRowContext(ctx, enqueueIndexEntry,
		entry.DocumentID,
		entry.OwnerID,
		entry.EnqueuedAt,
	).Scan(&entry.EntryID)
	if queryRowErr != nil {
		log.Err(queryRowErr).
			Str("func", "indexQueueRepository.EnqueueIndexEntry").
			Str("document_id", entry.DocumentID).
			Msg("failed to enqueue index entry")
		return p.DB.wrapQueryError(queryRowErr)
	}

	return nil
}

// DequeueIndexEntries returns up to limit pending entries, oldest first.
// Entries stay in the table until [ReconcileIndexEntries] removes them, so a
// crashed worker cycle loses nothing.
func (p *indexQueueRepository) DequeueIndexEntries(ctx context.Context, limit int) ([]models.IndexEntry, error) {
	log := logger.FromContext(ctx)

	rows, queryErr := p.DB.executor(ctx).QueryContext(ctx, dequeueIndexEntries, limit)
	if queryErr != nil {
		log.Err(queryErr).
			Str("func", "indexQueueRepository.DequeueIndexEntries").
			Int("limit", limit).
			Msg("failed to execute query for dequeuing index entries")
		return nil, p.DB.wrapQueryError(queryErr)
	}
	defer rows.Close()

	entries := make([]models.IndexEntry, 0, limit)

	for rows.Next() {
		var entry models.IndexEntry

		scanErr := rows.Scan(
			&entry.EntryID,
			&entry.DocumentID,
			&entry.OwnerID,
			&entry.Attempts,
			&entry.EnqueuedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "indexQueueRepository.DequeueIndexEntries").
				Msg("failed to scan index entry row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		entries = append(entries, entry)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "indexQueueRepository.DequeueIndexEntries").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return entries, nil
}

// ReconcileIndexEntries settles one worker cycle in a single transaction:
// delivered entries leave the queue, failed ones get their attempt counter
// bumped. Either both take effect or neither does, so a crash between the
// two statements cannot lose the failure history.
func (p *indexQueueRepository) ReconcileIndexEntries(ctx context.Context, delivered, failed []int64) error {
	log := logger.FromContext(ctx)

	if len(delivered) == 0 && len(failed) == 0 {
		log.Debug().
			Str("func", "indexQueueRepository.ReconcileIndexEntries").
			Msg("nothing to reconcile")
		return nil
	}

	tx, err := p.DB.executor(ctx).BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "indexQueueRepository.ReconcileIndexEntries").
			Int("delivered_count", len(delivered)).
			Int("failed_count", len(failed)).
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if len(delivered) > 0 {
		query, args, buildErr := buildDeleteIndexEntriesQuery(ctx, delivered)
		if buildErr != nil {
			log.Err(buildErr).
				Str("func", "indexQueueRepository.ReconcileIndexEntries").
				Msg("failed to build delete query")
			return buildErr
		}

		if _, execErr := tx.ExecContext(ctx, query, args...); execErr != nil {
			log.Err(execErr).
				Str("func", "indexQueueRepository.ReconcileIndexEntries").
				Int("delivered_count", len(delivered)).
				Msg("failed to delete delivered entries")
			return p.DB.wrapQueryError(execErr)
		}
	}

	if len(failed) > 0 {
		query, args, buildErr := buildMarkIndexAttemptsQuery(ctx, failed)
		if buildErr != nil {
			log.Err(buildErr).
				Str("func", "indexQueueRepository.ReconcileIndexEntries").
				Msg("failed to build attempts query")
			return buildErr
		}

		if _, execErr := tx.ExecContext(ctx, query, args...); execErr != nil {
			log.Err(execErr).
				Str("func", "indexQueueRepository.ReconcileIndexEntries").
				Int("failed_count", len(failed)).
				Msg("failed to bump attempt counters")
			return p.DB.wrapQueryError(execErr)
		}
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "indexQueueRepository.ReconcileIndexEntries").
			Int("delivered_count", len(delivered)).
			Int("failed_count", len(failed)).
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	log.Info().
		Str("func", "indexQueueRepository.ReconcileIndexEntries").
		Int("delivered_count", len(delivered)).
		Int("failed_count", len(failed)).
		Msg("successfully reconciled index entries")

	return nil
}

// RemoveDocumentEntries drops any pending entry of a document that no longer
// needs indexing (it was deleted). Removing an entry that is not queued is a
// no-op.
func (p *indexQueueRepository) RemoveDocumentEntries(ctx context.Context, documentID string) error {
	log := logger.FromContext(ctx)

	if _, execErr := p.DB.executor(ctx).ExecContext(ctx, removeDocumentIndexEntries, documentID); execErr != nil {
		log.Err(execErr).
			Str("func", "indexQueueRepository.RemoveDocumentEntries").
			Str("document_id", documentID).
			Msg("failed to remove index entries")
		return p.DB.wrapQueryError(execErr)
	}

	return nil
}
