package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-doc-vault/internal/logger"
	"github.com/MKhiriev/go-doc-vault/models"
)

// documentRepository is the SQL-backed implementation of
// [DocumentRepository]. It executes all document CRUD operations against the
// "documents" table through the embedded [*DB] connection.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that all database interactions are traced
// with structured fields (document_id, owner_id, versions, etc.).
type documentRepository struct {
	*DB
	logger *logger.Logger
}

// NewDocumentRepository constructs a [DocumentRepository] backed by the
// provided database connection and logger.
//
// The logger parameter is stored for fallback logging; most methods prefer
// the context-scoped logger obtained via [logger.FromContext].
func NewDocumentRepository(db *DB, logger *logger.Logger) DocumentRepository {
	logger.Debug().Msg("creating document repository")
	return &documentRepository{
		DB:     db,
		logger: logger,
	}
}

// SaveDocument inserts a new document row.
//
// The document arrives fully populated from the service layer (identifier,
// initial version, timestamps). A collision on the identifier is reported as
// [ErrDocumentAlreadyExists].
func (p *documentRepository) SaveDocument(ctx context.Context, document *models.Document) error {
	log := logger.FromContext(ctx)

	tags, err := encodeTags(document.Tags)
	if err != nil {
		log.Err(err).
			Str("func", "documentRepository.SaveDocument").
			Str("document_id", document.ID).
			Msg("failed to encode tags")
		return err
	}

	log.Debug().
		Str("func", "documentRepository.SaveDocument").
		Str("document_id", document.ID).
		Int64("owner_id", document.OwnerID).
		Msg("saving new document")

	_, execErr := p.DB.executor(ctx).ExecContext(ctx, saveDocument,
		document.ID,
		document.OwnerID,
		document.Title,
		document.Body,
		document.Type,
		tags,
		document.Version,
		document.Deleted,
		document.CreatedAt,
		document.UpdatedAt,
	)
	if execErr != nil {
		if isUniqueViolation(execErr) {
			log.Warn().
				Str("func", "documentRepository.SaveDocument").
				Str("document_id", document.ID).
				Msg("document with the same id already exists")
			return ErrDocumentAlreadyExists
		}

		log.Err(execErr).
			Str("func", "documentRepository.SaveDocument").
			Str("document_id", document.ID).
			Int64("owner_id", document.OwnerID).
			Msg("failed to execute insert query")
		return p.DB.wrapQueryError(execErr)
	}

	return nil
}

// FindDocumentByID retrieves a single live document by identifier.
//
// Soft-deleted documents are reported as [ErrDocumentNotFound], same as
// documents that never existed.
func (p *documentRepository) FindDocumentByID(ctx context.Context, documentID string) (models.Document, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectDocumentQuery(ctx, documentID)
	if err != nil {
		log.Err(err).
			Str("func", "documentRepository.FindDocumentByID").
			Str("document_id", documentID).
			Msg("failed to create query")
		return models.Document{}, err
	}

	var document models.Document
	var tagsRaw string

	scanErr := p.DB.executor(ctx).QueryRowContext(ctx, query, args...).Scan(
		&document.ID,
		&document.OwnerID,
		&document.Title,
		&document.Body,
		&document.Type,
		&tagsRaw,
		&document.Version,
		&document.Deleted,
		&document.CreatedAt,
		&document.UpdatedAt,
	)
	if scanErr != nil {
		if errors.Is(scanErr, sql.ErrNoRows) {
			log.Warn().
				Str("func", "documentRepository.FindDocumentByID").
				Str("document_id", documentID).
				Msg("document not found")
			return models.Document{}, ErrDocumentNotFound
		}

		log.Err(scanErr).
			Str("func", "documentRepository.FindDocumentByID").
			Str("document_id", documentID).
			Msg("failed to execute query for getting document")
		return models.Document{}, p.DB.wrapQueryError(scanErr)
	}

	document.Tags, err = decodeTags(tagsRaw)
	if err != nil {
		log.Err(err).
			Str("func", "documentRepository.FindDocumentByID").
			Str("document_id", documentID).
			Msg("failed to decode document tags")
		return models.Document{}, err
	}

	return document, nil
}

// ListDocuments retrieves the caller's documents matching the filters in
// listQuery, newest first.
//
// Filtering is always applied by OwnerID. Type and Tag narrow the result
// when set; Limit and Offset page through it.
func (p *documentRepository) ListDocuments(ctx context.Context, listQuery models.ListDocumentsQuery) ([]models.Document, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListDocumentsQuery(ctx, listQuery)
	if err != nil {
		log.Err(err).
			Str("func", "documentRepository.ListDocuments").
			Int64("owner_id", listQuery.OwnerID).
			Msg("failed to create query")
		return nil, err
	}

	rows, queryErr := p.DB.executor(ctx).QueryContext(ctx, query, args...)
	if queryErr != nil {
		log.Err(queryErr).
			Str("func", "documentRepository.ListDocuments").
			Int64("owner_id", listQuery.OwnerID).
			Msg("failed to execute query for listing documents")
		return nil, p.DB.wrapQueryError(queryErr)
	}
	defer rows.Close()

	documents := make([]models.Document, 0, listQuery.Limit)

	for rows.Next() {
		var document models.Document
		var tagsRaw string

		scanErr := rows.Scan(
			&document.ID,
			&document.OwnerID,
			&document.Title,
			&document.Body,
			&document.Type,
			&tagsRaw,
			&document.Version,
			&document.Deleted,
			&document.CreatedAt,
			&document.UpdatedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "documentRepository.ListDocuments").
				Int64("owner_id", listQuery.OwnerID).
				Msg("failed to scan document row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		document.Tags, err = decodeTags(tagsRaw)
		if err != nil {
			log.Err(err).
				Str("func", "documentRepository.ListDocuments").
				Str("document_id", document.ID).
				Msg("failed to decode document tags")
			return nil, err
		}

		documents = append(documents, document)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "documentRepository.ListDocuments").
			Int64("owner_id", listQuery.OwnerID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return documents, nil
}

// UpdateDocument applies a partial update under optimistic locking.
//
// The method builds a dynamic UPDATE query via [buildUpdateDocumentQuery],
// executes it, and inspects the CTE result to determine the outcome:
//   - Both updatedID and currentDBVersion are non-NULL → success.
//   - currentDBVersion is NULL → record not found ([ErrDocumentNotFound]).
//   - updatedID is NULL but currentDBVersion is non-NULL → version mismatch ([ErrVersionConflict]).
func (p *documentRepository) UpdateDocument(ctx context.Context, update models.DocumentUpdate) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateDocumentQuery(ctx, update)
	if err != nil {
		log.Err(err).
			Str("func", "documentRepository.UpdateDocument").
			Str("document_id", update.ID).
			Msg("failed to build update query")
		return err
	}

	var updatedID *string
	var currentDBVersion *int64

	queryRowErr := p.DB.executor(ctx).QueryRowContext(ctx, query, args...).Scan(&updatedID, &currentDBVersion)
	if queryRowErr != nil {
		log.Err(queryRowErr).
			Str("func", "documentRepository.UpdateDocument").
			Str("document_id", update.ID).
			Msg("failed to execute update query")
		return p.DB.wrapQueryError(queryRowErr)
	}

	// not found: target_document empty -> both NULL
	if currentDBVersion == nil {
		log.Warn().
			Str("func", "documentRepository.UpdateDocument").
			Str("document_id", update.ID).
			Msg("document not found")
		return ErrDocumentNotFound
	}

	// document found, but UPDATE didn't work - version mismatch
	if updatedID == nil {
		log.Warn().
			Str("func", "documentRepository.UpdateDocument").
			Str("document_id", update.ID).
			Int64("db_version", *currentDBVersion).
			Int64("provided_version", update.Version).
			Msg("optimistic lock failed: version mismatch")
		return fmt.Errorf("failed to update document: %w", ErrVersionConflict)
	}

	log.Info().
		Str("func", "documentRepository.UpdateDocument").
		Str("document_id", update.ID).
		Msg("successfully updated document")

	return nil
}

// DeleteDocument performs a soft-delete under optimistic locking.
//
// Soft-delete sets the "deleted" flag to true and bumps the version,
// preserving the row so a later identifier collision is still detected.
// The CTE result is inspected identically to [UpdateDocument] (not found
// vs. version conflict).
func (p *documentRepository) DeleteDocument(ctx context.Context, documentID string, version int64) error {
	log := logger.FromContext(ctx)

	log.Debug().
		Str("func", "documentRepository.DeleteDocument").
		Str("document_id", documentID).
		Msg("soft-deleting document")

	var updatedID *string
	var currentDBVersion *int64

	queryRowErr := p.DB.executor(ctx).QueryRowContext(ctx, deleteDocumentQuery, documentID, version).Scan(&updatedID, &currentDBVersion)
	if queryRowErr != nil {
		log.Err(queryRowErr).
			Str("func", "documentRepository.DeleteDocument").
			Str("document_id", documentID).
			Msg("failed to execute soft delete query")
		return p.DB.wrapQueryError(queryRowErr)
	}

	// not found: target_document empty -> both NULL
	if currentDBVersion == nil {
		log.Warn().
			Str("func", "documentRepository.DeleteDocument").
			Str("document_id", documentID).
			Msg("document not found")
		return ErrDocumentNotFound
	}

	// found but not updated -> version mismatch
	if updatedID == nil {
		log.Warn().
			Str("func", "documentRepository.DeleteDocument").
			Str("document_id", documentID).
			Int64("db_version", *currentDBVersion).
			Int64("provided_version", version).
			Msg("optimistic lock failed: version mismatch on delete")
		return ErrVersionConflict
	}

	log.Info().
		Str("func", "documentRepository.DeleteDocument").
		Str("document_id", documentID).
		Msg("successfully soft-deleted document")

	return nil
}

// ResolveDocumentOwner returns the owner of a live document. It backs the
// ownership authorizer, so it runs before the handler on every
// document-scoped request and stays a cheap primary-key lookup.
func (p *documentRepository) ResolveDocumentOwner(ctx context.Context, documentID string) (int64, error) {
	log := logger.FromContext(ctx)

	var ownerID int64

	scanErr := p.DB.executor(ctx).QueryRowContext(ctx, resolveDocumentOwner, documentID).Scan(&ownerID)
	if scanErr != nil {
		if errors.Is(scanErr, sql.ErrNoRows) {
			log.Warn().
				Str("func", "documentRepository.ResolveDocumentOwner").
				Str("document_id", documentID).
				Msg("document not found")
			return 0, ErrDocumentNotFound
		}

		log.Err(scanErr).
			Str("func", "documentRepository.ResolveDocumentOwner").
			Str("document_id", documentID).
			Msg("failed to execute owner lookup query")
		return 0, p.DB.wrapQueryError(scanErr)
	}

	return ownerID, nil
}
