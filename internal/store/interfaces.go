package store

import (
	"context"

	"github.com/MKhiriev/go-doc-vault/models"
)

// UserRepository handles account creation and lookup against the
// "users" table.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
}

// DocumentRepository executes all document CRUD operations against the
// "documents" table. Reads exclude soft-deleted records; mutations enforce
// optimistic locking through the document version.
type DocumentRepository interface {
	SaveDocument(ctx context.Context, document *models.Document) error
	FindDocumentByID(ctx context.Context, documentID string) (models.Document, error)
	ListDocuments(ctx context.Context, query models.ListDocumentsQuery) ([]models.Document, error)
	UpdateDocument(ctx context.Context, update models.DocumentUpdate) error
	DeleteDocument(ctx context.Context, documentID string, version int64) error
	ResolveDocumentOwner(ctx context.Context, documentID string) (int64, error)
}

// IndexQueueRepository manages the outbox of documents awaiting delivery to
// the search indexer. Enqueueing is idempotent per document; reconciliation
// removes delivered entries and bumps the attempt counter on failed ones.
type IndexQueueRepository interface {
	EnqueueIndexEntry(ctx context.Context, entry *models.IndexEntry) error
	DequeueIndexEntries(ctx context.Context, limit int) ([]models.IndexEntry, error)
	ReconcileIndexEntries(ctx context.Context, delivered, failed []int64) error
	RemoveDocumentEntries(ctx context.Context, documentID string) error
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying. Implementations inspect driver-specific error codes.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
