package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-doc-vault/internal/adapter"
	"github.com/MKhiriev/go-doc-vault/internal/dispatch"
	"github.com/MKhiriev/go-doc-vault/internal/logger"
	"github.com/MKhiriev/go-doc-vault/internal/store"
	"github.com/MKhiriev/go-doc-vault/models"
	"github.com/oklog/ulid/v2"
)

// documentService implements DocumentService over the document repository and
// the search-index plumbing. Mutations never fail because of the indexer:
// they enqueue an index entry and leave delivery to the sync worker. Only the
// explicit reindex path talks to the indexer inline.
type documentService struct {
	documentRepository store.DocumentRepository
	indexQueue         store.IndexQueueRepository
	indexer            adapter.Indexer

	logger *logger.Logger
}

// NewDocumentService wires a DocumentService over the given repositories and
// indexer client.
func NewDocumentService(documentRepository store.DocumentRepository, indexQueue store.IndexQueueRepository, indexer adapter.Indexer, logger *logger.Logger) DocumentService {
	return &documentService{
		documentRepository: documentRepository,
		indexQueue:         indexQueue,
		indexer:            indexer,
		logger:             logger,
	}
}

func (d *documentService) CreateDocument(ctx context.Context, command models.CreateDocumentCommand) (models.Document, error) {
	now := time.Now()
	document := models.Document{
		ID:        ulid.Make().String(),
		OwnerID:   command.OwnerID,
		Title:     command.Title,
		Body:      command.Body,
		Type:      command.Type,
		Tags:      command.Tags,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := d.documentRepository.SaveDocument(ctx, &document); err != nil {
		return models.Document{}, err
	}

	d.enqueueForIndexing(ctx, document.ID, document.OwnerID)

	return document, nil
}

func (d *documentService) GetDocument(ctx context.Context, query models.GetDocumentQuery) (models.Document, error) {
	return d.documentRepository.FindDocumentByID(ctx, query.DocumentID)
}

func (d *documentService) ListDocuments(ctx context.Context, query models.ListDocumentsQuery) ([]models.Document, error) {
	if query.Limit == 0 {
		query.Limit = models.DefaultPageSize
	}

	return d.documentRepository.ListDocuments(ctx, query)
}

func (d *documentService) UpdateDocument(ctx context.Context, command models.UpdateDocumentCommand) (models.Document, error) {
	if err := d.documentRepository.UpdateDocument(ctx, command.Update); err != nil {
		return models.Document{}, err
	}

	// Re-read so the caller sees the bumped version and fresh timestamps.
	updatedDocument, err := d.documentRepository.FindDocumentByID(ctx, command.Update.ID)
	if err != nil {
		return models.Document{}, err
	}

	d.enqueueForIndexing(ctx, updatedDocument.ID, updatedDocument.OwnerID)

	return updatedDocument, nil
}

// DeleteDocument soft-deletes a document. The delete is versioned: the stored
// version is read first and passed back, so a concurrent update between the
// two statements surfaces as a conflict instead of silently discarding it.
func (d *documentService) DeleteDocument(ctx context.Context, command models.DeleteDocumentCommand) error {
	log := logger.FromContext(ctx)

	document, err := d.documentRepository.FindDocumentByID(ctx, command.DocumentID)
	if err != nil {
		return err
	}

	if err := d.documentRepository.DeleteDocument(ctx, command.DocumentID, document.Version); err != nil {
		return err
	}

	// The document is gone from the vault; pending index entries for it are
	// stale and the search index must drop it. Both steps are best-effort:
	// a missed removal leaves a dangling search hit, not a broken vault.
	if err := d.indexQueue.RemoveDocumentEntries(ctx, command.DocumentID); err != nil {
		log.Warn().Err(err).Str("document_id", command.DocumentID).Msg("removing pending index entries failed")
	}
	if err := d.indexer.RemoveDocument(ctx, command.DocumentID); err != nil {
		log.Warn().Err(err).Str("document_id", command.DocumentID).Msg("removing document from search index failed")
	}

	return nil
}

// ReindexDocument pushes one document to the search indexer synchronously,
// bypassing the background queue. Unlike regular mutations the indexer call
// is not best-effort here: an unavailable indexer fails the request.
func (d *documentService) ReindexDocument(ctx context.Context, command models.ReindexDocumentCommand) error {
	log := logger.FromContext(ctx)

	document, err := d.documentRepository.FindDocumentByID(ctx, command.DocumentID)
	if err != nil {
		return err
	}

	if err := d.indexer.IndexDocument(ctx, document); err != nil {
		return err
	}

	// Delivered inline; pending queue entries for the document are now stale.
	if err := d.indexQueue.RemoveDocumentEntries(ctx, command.DocumentID); err != nil {
		log.Warn().Err(err).Str("document_id", command.DocumentID).Msg("removing pending index entries failed")
	}

	return nil
}

func (d *documentService) ExportDocuments(ctx context.Context, command models.ExportDocumentsCommand) ([]models.Document, error) {
	return nil, fmt.Errorf("%w: vault export", dispatch.ErrNotImplemented)
}

// enqueueForIndexing records the document in the index queue for the sync
// worker. Failures are logged and swallowed: the mutation already succeeded
// and search freshness is not worth failing it over.
func (d *documentService) enqueueForIndexing(ctx context.Context, documentID string, ownerID int64) {
	entry := models.IndexEntry{
		DocumentID: documentID,
		OwnerID:    ownerID,
		EnqueuedAt: time.Now(),
	}

	if err := d.indexQueue.EnqueueIndexEntry(ctx, &entry); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("document_id", documentID).Msg("enqueueing document for indexing failed")
	}
}
