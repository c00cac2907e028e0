package models

import "time"

// ContentType defines the semantic type of the body stored inside a
// Document. The value determines how clients should render the payload.
type ContentType int

const (
	// PlainText represents free-form textual content.
	PlainText ContentType = 1

	// Markdown represents Markdown-formatted content.
	Markdown ContentType = 2

	// RichText represents content in the vault's structured rich-text format.
	RichText ContentType = 3

	// Attachment represents binary attachment metadata. The blob itself is
	// stored separately; the document body carries only a storage reference.
	Attachment ContentType = 4
)

// Document is a single versioned vault document owned by one user.
//
// Version implements optimistic concurrency: every successful update
// increments it, and updates carrying a stale version are rejected with a
// conflict. Deleted is a soft-delete marker; deleted documents are retained
// for synchronization and excluded from listings.
type Document struct {
	// ID is the document identifier, a ULID string minted at creation time.
	// ULIDs sort lexicographically by creation time, which keeps primary-key
	// indexes append-friendly.
	ID string `json:"id"`

	// OwnerID is the internal identifier of the owning user.
	OwnerID int64 `json:"owner_id"`

	// Title is the display title of the document.
	Title string `json:"title"`

	// Body is the document content, interpreted according to Type.
	Body string `json:"body"`

	// Type declares how Body must be interpreted.
	Type ContentType `json:"type"`

	// Tags is an optional set of user-assigned labels used for filtering.
	Tags []string `json:"tags,omitempty"`

	// Version is the optimistic-concurrency counter. Zero for documents that
	// have never been persisted; incremented on every successful update.
	Version int64 `json:"version"`

	// Deleted marks the document as soft-deleted.
	Deleted bool `json:"deleted"`

	// CreatedAt is the server-side creation timestamp.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the server-side timestamp of the last modification.
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Document model.
func (d Document) TableName() string {
	return "documents"
}

// DocumentUpdate describes a partial update of an existing document.
// Nil pointer fields mean "do not touch"; at least one payload field must be
// non-nil for the update to be meaningful.
type DocumentUpdate struct {
	// ID identifies the document to update.
	ID string `json:"id"`

	// Title, when non-nil, replaces the document title.
	Title *string `json:"title,omitempty"`

	// Body, when non-nil, replaces the document content.
	Body *string `json:"body,omitempty"`

	// Tags, when non-nil, replaces the tag set.
	Tags *[]string `json:"tags,omitempty"`

	// Version is the version the client last observed. The update is
	// rejected with a conflict when it does not match the stored version.
	Version int64 `json:"version"`
}
