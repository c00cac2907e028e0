package models

// Request-name constants identify the shape of every command and query the
// server dispatches. The dispatcher keys its handler table on these names,
// the authorization stage uses them to look up bound authorizers, and the
// validation stage uses them to look up bound validators.
const (
	RequestCreateDocument  = "CreateDocument"
	RequestGetDocument     = "GetDocument"
	RequestListDocuments   = "ListDocuments"
	RequestUpdateDocument  = "UpdateDocument"
	RequestDeleteDocument  = "DeleteDocument"
	RequestReindexDocument = "ReindexDocument"
	RequestExportDocuments = "ExportDocuments"
)

// Paging bounds for list queries. A zero limit in the query means
// DefaultPageSize; the validator rejects limits above MaxPageSize.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// CreateDocumentCommand asks the server to persist a new document for the
// given owner. Values are immutable once constructed; the dispatch pipeline
// never mutates a command.
type CreateDocumentCommand struct {
	// OwnerID is the user the document is created for.
	OwnerID int64 `json:"owner_id"`

	// Title is the display title of the new document.
	Title string `json:"title"`

	// Body is the document content.
	Body string `json:"body"`

	// Type declares how Body must be interpreted.
	Type ContentType `json:"type"`

	// Tags is an optional set of labels.
	Tags []string `json:"tags,omitempty"`
}

// Name returns the request shape identifier.
func (CreateDocumentCommand) Name() string { return RequestCreateDocument }

// Owner returns the user the request acts on behalf of.
func (c CreateDocumentCommand) Owner() int64 { return c.OwnerID }

// GetDocumentQuery asks for a single document by identifier.
type GetDocumentQuery struct {
	// OwnerID is the user whose vault is queried.
	OwnerID int64 `json:"owner_id"`

	// DocumentID is the identifier of the requested document.
	DocumentID string `json:"document_id"`
}

// Name returns the request shape identifier.
func (GetDocumentQuery) Name() string { return RequestGetDocument }

// Owner returns the user the request acts on behalf of.
func (q GetDocumentQuery) Owner() int64 { return q.OwnerID }

// TargetID returns the identifier of the document the request targets.
func (q GetDocumentQuery) TargetID() string { return q.DocumentID }

// ListDocumentsQuery asks for a filtered page of the owner's documents.
type ListDocumentsQuery struct {
	// OwnerID is the user whose vault is queried.
	OwnerID int64 `json:"owner_id"`

	// Type, when non-zero, restricts results to one content type.
	Type ContentType `json:"type,omitempty"`

	// Tag, when non-empty, restricts results to documents carrying the tag.
	Tag string `json:"tag,omitempty"`

	// Limit caps the number of returned documents. Zero means the server
	// default; the validator bounds the maximum.
	Limit int `json:"limit,omitempty"`

	// Offset skips the given number of documents for paging.
	Offset int `json:"offset,omitempty"`
}

// Name returns the request shape identifier.
func (ListDocumentsQuery) Name() string { return RequestListDocuments }

// Owner returns the user the request acts on behalf of.
func (q ListDocumentsQuery) Owner() int64 { return q.OwnerID }

// UpdateDocumentCommand applies a partial update to an existing document
// using optimistic concurrency.
type UpdateDocumentCommand struct {
	// OwnerID is the user whose document is updated.
	OwnerID int64 `json:"owner_id"`

	// Update carries the document identifier, the changed fields, and the
	// version the client last observed.
	Update DocumentUpdate `json:"update"`
}

// Name returns the request shape identifier.
func (UpdateDocumentCommand) Name() string { return RequestUpdateDocument }

// Owner returns the user the request acts on behalf of.
func (c UpdateDocumentCommand) Owner() int64 { return c.OwnerID }

// TargetID returns the identifier of the document the request targets.
func (c UpdateDocumentCommand) TargetID() string { return c.Update.ID }

// DeleteDocumentCommand soft-deletes a document.
type DeleteDocumentCommand struct {
	// OwnerID is the user whose document is deleted.
	OwnerID int64 `json:"owner_id"`

	// DocumentID identifies the document to delete.
	DocumentID string `json:"document_id"`
}

// Name returns the request shape identifier.
func (DeleteDocumentCommand) Name() string { return RequestDeleteDocument }

// Owner returns the user the request acts on behalf of.
func (c DeleteDocumentCommand) Owner() int64 { return c.OwnerID }

// TargetID returns the identifier of the document the request targets.
func (c DeleteDocumentCommand) TargetID() string { return c.DocumentID }

// ReindexDocumentCommand pushes one document to the search indexer
// synchronously, bypassing the background sync queue.
type ReindexDocumentCommand struct {
	// OwnerID is the user whose document is reindexed.
	OwnerID int64 `json:"owner_id"`

	// DocumentID identifies the document to push.
	DocumentID string `json:"document_id"`
}

// Name returns the request shape identifier.
func (ReindexDocumentCommand) Name() string { return RequestReindexDocument }

// Owner returns the user the request acts on behalf of.
func (c ReindexDocumentCommand) Owner() int64 { return c.OwnerID }

// TargetID returns the identifier of the document the request targets.
func (c ReindexDocumentCommand) TargetID() string { return c.DocumentID }

// ExportDocumentsCommand asks for a portable archive of the owner's vault.
type ExportDocumentsCommand struct {
	// OwnerID is the user whose vault is exported.
	OwnerID int64 `json:"owner_id"`
}

// Name returns the request shape identifier.
func (ExportDocumentsCommand) Name() string { return RequestExportDocuments }

// Owner returns the user the request acts on behalf of.
func (c ExportDocumentsCommand) Owner() int64 { return c.OwnerID }
